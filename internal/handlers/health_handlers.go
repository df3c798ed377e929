package handlers

import (
	"net/http"

	"boardsuite/internal/caching"
	"boardsuite/internal/repositories"

	"github.com/labstack/echo/v4"
)

type HealthHandlers struct {
	db    repositories.Database
	cache caching.CacheService
}

func NewHealthHandlers(db repositories.Database, cache caching.CacheService) *HealthHandlers {
	return &HealthHandlers{db: db, cache: cache}
}

// Health handles GET /health. Redis being down degrades the status but
// does not fail the check; the database being down does.
func (h *HealthHandlers) Health(c echo.Context) error {
	ctx := c.Request().Context()

	var one int
	if err := h.db.QueryRow(ctx, `SELECT 1`).Scan(&one); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":   "unhealthy",
			"database": "down",
		})
	}

	cacheStatus := "up"
	if err := h.cache.Ping(ctx); err != nil {
		cacheStatus = "down"
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":   "healthy",
		"database": "up",
		"cache":    cacheStatus,
	})
}
