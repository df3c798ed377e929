package services

import (
	"context"
	"log"
	"time"

	"boardsuite/internal/caching"
	"boardsuite/internal/common"
	"boardsuite/internal/models"
	"boardsuite/internal/repositories"
)

const (
	reportCacheTTL = 5 * time.Minute
	statsCacheTTL  = 2 * time.Minute
)

type ReportService interface {
	// MonthlyReport serves from cache when possible; the cached copy can
	// trail the database by up to the cache TTL.
	MonthlyReport(ctx context.Context, year, month int) (*models.MonthlyReport, error)

	// RefreshMonthlyReport recomputes the report from the database and
	// rewrites the cache entry.
	RefreshMonthlyReport(ctx context.Context, year, month int) (*models.MonthlyReport, error)

	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
	RefreshDashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

type reportService struct {
	reportRepo repositories.ReportRepository
	cache      caching.CacheService
}

func NewReportService(reportRepo repositories.ReportRepository, cache caching.CacheService) ReportService {
	return &reportService{reportRepo: reportRepo, cache: cache}
}

func (s *reportService) MonthlyReport(ctx context.Context, year, month int) (*models.MonthlyReport, error) {
	if month < 1 || month > 12 {
		return nil, &common.ValidationError{Message: "Month must be between 1 and 12."}
	}
	if year < 2000 || year > 2100 {
		return nil, &common.ValidationError{Message: "Year is out of range."}
	}

	cached, err := s.cache.GetMonthlyReport(ctx, year, month)
	if err != nil {
		log.Printf("WARN: report cache read failed: %v", err)
	}
	if cached != nil {
		return cached, nil
	}

	return s.RefreshMonthlyReport(ctx, year, month)
}

func (s *reportService) RefreshMonthlyReport(ctx context.Context, year, month int) (*models.MonthlyReport, error) {
	sales, err := s.reportRepo.MonthlySales(ctx, year, month)
	if err != nil {
		return nil, err
	}
	pending, err := s.reportRepo.TotalPending(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.reportRepo.PaymentsForMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}
	pendingBills, err := s.reportRepo.PendingBills(ctx)
	if err != nil {
		return nil, err
	}

	report := &models.MonthlyReport{
		MonthlySales: sales,
		TotalPending: pending,
		Payments:     payments,
		PendingBills: pendingBills,
	}

	if err := s.cache.SetMonthlyReport(ctx, year, month, report, reportCacheTTL); err != nil {
		log.Printf("WARN: report cache write failed: %v", err)
	}
	return report, nil
}

func (s *reportService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	cached, err := s.cache.GetDashboardStats(ctx)
	if err != nil {
		log.Printf("WARN: stats cache read failed: %v", err)
	}
	if cached != nil {
		return cached, nil
	}

	return s.RefreshDashboardStats(ctx)
}

func (s *reportService) RefreshDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	stats, err := s.reportRepo.DashboardStats(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetDashboardStats(ctx, stats, statsCacheTTL); err != nil {
		log.Printf("WARN: stats cache write failed: %v", err)
	}
	return stats, nil
}
