package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"boardsuite/internal/common"
	"boardsuite/internal/models"
	"boardsuite/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// RecordPaymentRequest is the validated input for payment reconciliation.
type RecordPaymentRequest struct {
	BillID        uuid.UUID
	AmountPaid    float64
	PaymentDate   time.Time
	PaymentMethod string
	Notes         *string
}

type PaymentService interface {
	// RecordPayment inserts the payment and reconciles the bill's status in
	// one transaction; on any failure nothing is persisted.
	RecordPayment(ctx context.Context, recordedBy uuid.UUID, req *RecordPaymentRequest) error

	// MarkTenantPaidToday stamps the tenant's last_payment_date without
	// touching any bill. It deliberately bypasses reconciliation, so the
	// tenant's payment display can diverge from actual bill state; callers
	// wanting bill-status consistency must use RecordPayment instead.
	MarkTenantPaidToday(ctx context.Context, tenantID uuid.UUID) (time.Time, error)

	AttachReceipt(ctx context.Context, paymentID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error)
	ReceiptURL(ctx context.Context, paymentID uuid.UUID) (string, error)
}

type paymentService struct {
	db          repositories.Database
	tenantRepo  repositories.TenantRepository
	paymentRepo repositories.PaymentRepository
	receipts    ReceiptStore
	now         func() time.Time
}

func NewPaymentService(db repositories.Database, tenantRepo repositories.TenantRepository, paymentRepo repositories.PaymentRepository, receipts ReceiptStore) PaymentService {
	return &paymentService{
		db:          db,
		tenantRepo:  tenantRepo,
		paymentRepo: paymentRepo,
		receipts:    receipts,
		now:         time.Now,
	}
}

func (s *paymentService) RecordPayment(ctx context.Context, recordedBy uuid.UUID, req *RecordPaymentRequest) error {
	if req.AmountPaid <= 0 {
		return &common.ValidationError{Message: "Amount paid must be positive."}
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		return &common.ValidationError{Message: "Unknown payment method."}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Lock the bill row so concurrent payments against the same bill
	// serialize and the paid total cannot be double-counted.
	var tenantID uuid.UUID
	var amountDue float64
	err = tx.QueryRow(ctx, `SELECT tenant_id, amount_due FROM bills WHERE id = $1 FOR UPDATE`, req.BillID).
		Scan(&tenantID, &amountDue)
	if errors.Is(err, pgx.ErrNoRows) {
		return &common.NotFoundError{Resource: "Bill"}
	}
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO payments (id, bill_id, tenant_id, user_id, amount_paid, payment_date, payment_method, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`, uuid.New(), req.BillID, tenantID, recordedBy, req.AmountPaid, req.PaymentDate, req.PaymentMethod, req.Notes)
	if err != nil {
		return err
	}

	var totalPaid float64
	err = tx.QueryRow(ctx, `SELECT COALESCE(SUM(amount_paid), 0) FROM payments WHERE bill_id = $1`, req.BillID).
		Scan(&totalPaid)
	if err != nil {
		return err
	}

	newStatus := models.BillPartiallyPaid
	if totalPaid >= amountDue {
		newStatus = models.BillPaid
	}

	_, err = tx.Exec(ctx, `UPDATE bills SET status = $1, updated_at = NOW() WHERE id = $2`, newStatus, req.BillID)
	if err != nil {
		return err
	}

	if newStatus == models.BillPaid {
		_, err = tx.Exec(ctx, `UPDATE tenants SET last_payment_date = $1 WHERE id = $2`, req.PaymentDate, tenantID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (s *paymentService) MarkTenantPaidToday(ctx context.Context, tenantID uuid.UUID) (time.Time, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	updated, err := s.tenantRepo.SetLastPaymentDate(ctx, tenantID, today)
	if err != nil {
		return time.Time{}, err
	}
	if !updated {
		return time.Time{}, &common.NotFoundError{Resource: "Tenant"}
	}
	return today, nil
}

func (s *paymentService) AttachReceipt(ctx context.Context, paymentID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	if _, err := s.paymentRepo.GetByID(ctx, paymentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", &common.NotFoundError{Resource: "Payment"}
		}
		return "", err
	}

	objectName := fmt.Sprintf("%s/%s", paymentID, filename)
	if err := s.receipts.Upload(ctx, objectName, reader, size, contentType); err != nil {
		return "", err
	}

	if _, err := s.paymentRepo.SetReceiptObject(ctx, paymentID, objectName); err != nil {
		return "", err
	}
	return objectName, nil
}

func (s *paymentService) ReceiptURL(ctx context.Context, paymentID uuid.UUID) (string, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", &common.NotFoundError{Resource: "Payment"}
		}
		return "", err
	}
	if payment.ReceiptObject == nil {
		return "", &common.NotFoundError{Resource: "Receipt"}
	}
	return s.receipts.PresignedURL(ctx, *payment.ReceiptObject, 15*time.Minute)
}
