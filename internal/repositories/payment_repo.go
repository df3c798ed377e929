package repositories

import (
	"context"

	"boardsuite/internal/models"

	"github.com/google/uuid"
)

type PaymentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	SetReceiptObject(ctx context.Context, id uuid.UUID, object string) (bool, error)
}

type paymentRepo struct {
	db Database
}

func NewPaymentRepo(db Database) PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	payment := &models.Payment{}
	query := `
		SELECT id, bill_id, tenant_id, user_id, amount_paid, payment_date, payment_method, notes, receipt_object, created_at
		FROM payments
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&payment.ID, &payment.BillID, &payment.TenantID, &payment.UserID, &payment.AmountPaid, &payment.PaymentDate, &payment.PaymentMethod, &payment.Notes, &payment.ReceiptObject, &payment.CreatedAt)
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// SetReceiptObject links an uploaded receipt object to a payment. The
// payment row itself stays immutable otherwise.
func (r *paymentRepo) SetReceiptObject(ctx context.Context, id uuid.UUID, object string) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE payments SET receipt_object = $1 WHERE id = $2`, object, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
