package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"boardsuite/internal/common"
	"boardsuite/internal/models"
	"boardsuite/internal/repositories"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	mock       pgxmock.PgxPoolIface
	service    *paymentService
	recordedBy uuid.UUID
	billID     uuid.UUID
	tenantID   uuid.UUID
	payDate    time.Time
	ctx        context.Context
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.service = NewPaymentService(mock, repositories.NewTenantRepo(mock), repositories.NewPaymentRepo(mock), nil).(*paymentService)
	suite.recordedBy = uuid.New()
	suite.billID = uuid.New()
	suite.tenantID = uuid.New()
	suite.payDate = time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	suite.ctx = context.Background()
}

func (suite *PaymentServiceTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}

func (suite *PaymentServiceTestSuite) paymentRequest(amount float64) *RecordPaymentRequest {
	return &RecordPaymentRequest{
		BillID:        suite.billID,
		AmountPaid:    amount,
		PaymentDate:   suite.payDate,
		PaymentMethod: models.MethodCash,
	}
}

func (suite *PaymentServiceTestSuite) expectBillLock(amountDue float64) {
	suite.mock.ExpectQuery(`SELECT tenant_id, amount_due FROM bills WHERE id = \$1 FOR UPDATE`).
		WithArgs(suite.billID).
		WillReturnRows(pgxmock.NewRows([]string{"tenant_id", "amount_due"}).AddRow(suite.tenantID, amountDue))
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_FullPaymentStampsTenant() {
	suite.mock.ExpectBegin()
	suite.expectBillLock(2500)
	suite.mock.ExpectExec(`INSERT INTO payments`).
		WithArgs(pgxmock.AnyArg(), suite.billID, suite.tenantID, suite.recordedBy, 2500.0, suite.payDate, models.MethodCash, (*string)(nil)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount_paid\), 0\) FROM payments WHERE bill_id = \$1`).
		WithArgs(suite.billID).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(2500.0))
	suite.mock.ExpectExec(`UPDATE bills SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(models.BillPaid, suite.billID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(`UPDATE tenants SET last_payment_date = \$1 WHERE id = \$2`).
		WithArgs(suite.payDate, suite.tenantID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	err := suite.service.RecordPayment(suite.ctx, suite.recordedBy, suite.paymentRequest(2500))

	assert.NoError(suite.T(), err)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_PartialPaymentNeverStampsTenant() {
	suite.mock.ExpectBegin()
	suite.expectBillLock(2500)
	suite.mock.ExpectExec(`INSERT INTO payments`).
		WithArgs(pgxmock.AnyArg(), suite.billID, suite.tenantID, suite.recordedBy, 1000.0, suite.payDate, models.MethodCash, (*string)(nil)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount_paid\), 0\) FROM payments WHERE bill_id = \$1`).
		WithArgs(suite.billID).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(1000.0))
	suite.mock.ExpectExec(`UPDATE bills SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(models.BillPartiallyPaid, suite.billID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	err := suite.service.RecordPayment(suite.ctx, suite.recordedBy, suite.paymentRequest(1000))

	assert.NoError(suite.T(), err)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_SecondPartialCompletesBill() {
	// 1500 already on the books; 1000 more should tip the status to Paid.
	suite.mock.ExpectBegin()
	suite.expectBillLock(2500)
	suite.mock.ExpectExec(`INSERT INTO payments`).
		WithArgs(pgxmock.AnyArg(), suite.billID, suite.tenantID, suite.recordedBy, 1000.0, suite.payDate, models.MethodCash, (*string)(nil)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount_paid\), 0\) FROM payments WHERE bill_id = \$1`).
		WithArgs(suite.billID).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(2500.0))
	suite.mock.ExpectExec(`UPDATE bills SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(models.BillPaid, suite.billID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(`UPDATE tenants SET last_payment_date = \$1 WHERE id = \$2`).
		WithArgs(suite.payDate, suite.tenantID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	err := suite.service.RecordPayment(suite.ctx, suite.recordedBy, suite.paymentRequest(1000))

	assert.NoError(suite.T(), err)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_BillNotFoundRollsBack() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT tenant_id, amount_due FROM bills WHERE id = \$1 FOR UPDATE`).
		WithArgs(suite.billID).
		WillReturnRows(pgxmock.NewRows([]string{"tenant_id", "amount_due"}))
	suite.mock.ExpectRollback()

	err := suite.service.RecordPayment(suite.ctx, suite.recordedBy, suite.paymentRequest(1000))

	var notFound *common.NotFoundError
	assert.ErrorAs(suite.T(), err, &notFound)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_InsertFailureRollsBack() {
	suite.mock.ExpectBegin()
	suite.expectBillLock(2500)
	suite.mock.ExpectExec(`INSERT INTO payments`).
		WithArgs(pgxmock.AnyArg(), suite.billID, suite.tenantID, suite.recordedBy, 1000.0, suite.payDate, models.MethodCash, (*string)(nil)).
		WillReturnError(errors.New("connection reset"))
	suite.mock.ExpectRollback()

	err := suite.service.RecordPayment(suite.ctx, suite.recordedBy, suite.paymentRequest(1000))

	assert.Error(suite.T(), err)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_RejectsNonPositiveAmount() {
	err := suite.service.RecordPayment(suite.ctx, suite.recordedBy, suite.paymentRequest(0))

	var validErr *common.ValidationError
	assert.ErrorAs(suite.T(), err, &validErr)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_RejectsUnknownMethod() {
	req := suite.paymentRequest(1000)
	req.PaymentMethod = "Barter"

	err := suite.service.RecordPayment(suite.ctx, suite.recordedBy, req)

	var validErr *common.ValidationError
	assert.ErrorAs(suite.T(), err, &validErr)
}

func (suite *PaymentServiceTestSuite) TestMarkTenantPaidToday_StampsDateOnly() {
	suite.service.now = func() time.Time {
		return time.Date(2025, time.March, 15, 18, 45, 0, 0, time.UTC)
	}
	expectedDate := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)

	suite.mock.ExpectExec(`UPDATE tenants SET last_payment_date = \$1 WHERE id = \$2`).
		WithArgs(expectedDate, suite.tenantID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	paidDate, err := suite.service.MarkTenantPaidToday(suite.ctx, suite.tenantID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), expectedDate, paidDate)
}

func (suite *PaymentServiceTestSuite) TestMarkTenantPaidToday_UnknownTenant() {
	suite.mock.ExpectExec(`UPDATE tenants SET last_payment_date = \$1 WHERE id = \$2`).
		WithArgs(pgxmock.AnyArg(), suite.tenantID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	_, err := suite.service.MarkTenantPaidToday(suite.ctx, suite.tenantID)

	var notFound *common.NotFoundError
	assert.ErrorAs(suite.T(), err, &notFound)
}
