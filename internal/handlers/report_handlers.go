package handlers

import (
	"net/http"
	"strconv"
	"time"

	"boardsuite/internal/common"
	"boardsuite/internal/services"

	"github.com/labstack/echo/v4"
)

type ReportHandlers struct {
	reportService  services.ReportService
	summaryService services.SummaryService
}

func NewReportHandlers(reportService services.ReportService, summaryService services.SummaryService) *ReportHandlers {
	return &ReportHandlers{reportService: reportService, summaryService: summaryService}
}

// GetMonthlyReport handles GET /reports?year=YYYY&month=M. Defaults to the
// current month when the query parameters are absent.
func (h *ReportHandlers) GetMonthlyReport(c echo.Context) error {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	if y := c.QueryParam("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			return common.SendValidationError(c, "Year must be a number")
		}
		year = parsed
	}
	if m := c.QueryParam("month"); m != "" {
		parsed, err := strconv.Atoi(m)
		if err != nil {
			return common.SendValidationError(c, "Month must be a number")
		}
		month = parsed
	}

	report, err := h.reportService.MonthlyReport(c.Request().Context(), year, month)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

// Summarize handles POST /reports/summarize
func (h *ReportHandlers) Summarize(c echo.Context) error {
	var req struct {
		ReportMonth  string  `json:"reportMonth"`
		MonthlySales float64 `json:"monthlySales"`
		TotalPending float64 `json:"totalPending"`
		PaymentCount int     `json:"paymentCount"`
		PendingCount int     `json:"pendingCount"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request body")
	}
	if req.ReportMonth == "" {
		return common.SendValidationError(c, "Report data is required.")
	}

	summary, err := h.summaryService.Summarize(c.Request().Context(), &services.SummaryRequest{
		ReportMonth:  req.ReportMonth,
		MonthlySales: req.MonthlySales,
		TotalPending: req.TotalPending,
		PaymentCount: req.PaymentCount,
		PendingCount: req.PendingCount,
	})
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"summary": summary})
}

// GetDashboardStats handles GET /dashboard/stats
func (h *ReportHandlers) GetDashboardStats(c echo.Context) error {
	stats, err := h.reportService.DashboardStats(c.Request().Context())
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
