package services

import (
	"context"
	"time"

	"boardsuite/internal/models"
	"boardsuite/internal/repositories"

	"github.com/google/uuid"
)

// fallbackDuePeriod is used when the settings row cannot supply one.
const fallbackDuePeriod = 15

type BillingService interface {
	// GenerateDueBills creates one Pending bill for every occupied tenancy
	// that is due and returns the number created. Zero is a normal outcome.
	GenerateDueBills(ctx context.Context, issuedBy uuid.UUID) (int, error)
	ListBills(ctx context.Context) ([]*models.BillWithTenant, error)
}

type billingService struct {
	billRepo     repositories.BillRepository
	settingsRepo repositories.SettingsRepository
	now          func() time.Time
}

func NewBillingService(billRepo repositories.BillRepository, settingsRepo repositories.SettingsRepository) BillingService {
	return &billingService{
		billRepo:     billRepo,
		settingsRepo: settingsRepo,
		now:          time.Now,
	}
}

// GenerateDueBills walks every currently-occupied tenancy. A tenant with no
// billing history is due immediately; otherwise they are due once a full
// calendar month has passed since their last bill date. The check is
// re-evaluated from the bills table on every run, so a second run in the
// same due period creates nothing. Inserts are sequential and best-effort:
// a failure aborts the batch but keeps the bills already created.
func (s *billingService) GenerateDueBills(ctx context.Context, issuedBy uuid.UUID) (int, error) {
	duePeriod := fallbackDuePeriod
	if settings, err := s.settingsRepo.Get(ctx); err == nil && settings.DefaultDuePeriod > 0 {
		duePeriod = settings.DefaultDuePeriod
	}

	tenancies, err := s.billRepo.OccupiedTenancies(ctx)
	if err != nil {
		return 0, err
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	created := 0
	for _, tenancy := range tenancies {
		last, err := s.billRepo.LastBillDate(ctx, tenancy.TenantID)
		if err != nil {
			return created, err
		}

		if last != nil {
			// Calendar-month rollover, not a fixed 30-day offset.
			nextBillingDate := last.AddDate(0, 1, 0)
			if today.Before(nextBillingDate) {
				continue
			}
		}

		bill := &models.Bill{
			ID:        uuid.New(),
			TenantID:  tenancy.TenantID,
			RoomID:    tenancy.RoomID,
			UserID:    issuedBy,
			AmountDue: tenancy.RatePerMonth,
			BillDate:  today,
			DueDate:   today.AddDate(0, 0, duePeriod),
			Status:    models.BillPending,
		}
		if err := s.billRepo.Create(ctx, bill); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func (s *billingService) ListBills(ctx context.Context) ([]*models.BillWithTenant, error) {
	return s.billRepo.ListWithTenant(ctx)
}
