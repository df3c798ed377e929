package services

import (
	"context"
	"errors"
	"testing"

	"boardsuite/internal/common"
	"boardsuite/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) MonthlySales(ctx context.Context, year, month int) (float64, error) {
	args := m.Called(ctx, year, month)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockReportRepository) TotalPending(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockReportRepository) PaymentsForMonth(ctx context.Context, year, month int) ([]models.ReportPayment, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReportPayment), args.Error(1)
}

func (m *MockReportRepository) PendingBills(ctx context.Context) ([]models.ReportPendingBill, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReportPendingBill), args.Error(1)
}

func (m *MockReportRepository) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardStats), args.Error(1)
}

type ReportServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockReportRepository
	mockCache *MockCacheService
	service   ReportService
	ctx       context.Context
}

func (suite *ReportServiceTestSuite) SetupTest() {
	suite.mockRepo = &MockReportRepository{}
	suite.mockCache = &MockCacheService{}
	suite.service = NewReportService(suite.mockRepo, suite.mockCache)
	suite.ctx = context.Background()
}

func (suite *ReportServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func TestReportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}

func (suite *ReportServiceTestSuite) TestMonthlyReport_ServesCachedCopy() {
	cached := &models.MonthlyReport{MonthlySales: 5000, TotalPending: 1200}

	suite.mockCache.On("GetMonthlyReport", mock.Anything, 2025, 3).Return(cached, nil).Once()

	report, err := suite.service.MonthlyReport(suite.ctx, 2025, 3)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), cached, report)
}

func (suite *ReportServiceTestSuite) TestMonthlyReport_CacheMissAggregatesAndStores() {
	suite.mockCache.On("GetMonthlyReport", mock.Anything, 2025, 3).Return(nil, nil).Once()
	suite.mockRepo.On("MonthlySales", mock.Anything, 2025, 3).Return(5000.0, nil).Once()
	suite.mockRepo.On("TotalPending", mock.Anything).Return(1200.0, nil).Once()
	suite.mockRepo.On("PaymentsForMonth", mock.Anything, 2025, 3).Return([]models.ReportPayment{}, nil).Once()
	suite.mockRepo.On("PendingBills", mock.Anything).Return([]models.ReportPendingBill{}, nil).Once()
	suite.mockCache.On("SetMonthlyReport", mock.Anything, 2025, 3, mock.AnythingOfType("*models.MonthlyReport"), reportCacheTTL).Return(nil).Once()

	report, err := suite.service.MonthlyReport(suite.ctx, 2025, 3)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 5000.0, report.MonthlySales)
	assert.Equal(suite.T(), 1200.0, report.TotalPending)
}

func (suite *ReportServiceTestSuite) TestMonthlyReport_CacheFailureFallsThrough() {
	suite.mockCache.On("GetMonthlyReport", mock.Anything, 2025, 3).Return(nil, errors.New("redis down")).Once()
	suite.mockRepo.On("MonthlySales", mock.Anything, 2025, 3).Return(0.0, nil).Once()
	suite.mockRepo.On("TotalPending", mock.Anything).Return(0.0, nil).Once()
	suite.mockRepo.On("PaymentsForMonth", mock.Anything, 2025, 3).Return([]models.ReportPayment{}, nil).Once()
	suite.mockRepo.On("PendingBills", mock.Anything).Return([]models.ReportPendingBill{}, nil).Once()
	suite.mockCache.On("SetMonthlyReport", mock.Anything, 2025, 3, mock.Anything, reportCacheTTL).Return(errors.New("redis down")).Once()

	report, err := suite.service.MonthlyReport(suite.ctx, 2025, 3)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), report)
}

func (suite *ReportServiceTestSuite) TestMonthlyReport_RejectsBadMonth() {
	_, err := suite.service.MonthlyReport(suite.ctx, 2025, 13)

	var validErr *common.ValidationError
	assert.ErrorAs(suite.T(), err, &validErr)
}

func (suite *ReportServiceTestSuite) TestDashboardStats_CacheMiss() {
	stats := &models.DashboardStats{TotalTenants: 12, TotalRooms: 15, OccupiedRooms: 12}

	suite.mockCache.On("GetDashboardStats", mock.Anything).Return(nil, nil).Once()
	suite.mockRepo.On("DashboardStats", mock.Anything).Return(stats, nil).Once()
	suite.mockCache.On("SetDashboardStats", mock.Anything, stats, statsCacheTTL).Return(nil).Once()

	got, err := suite.service.DashboardStats(suite.ctx)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), stats, got)
}
