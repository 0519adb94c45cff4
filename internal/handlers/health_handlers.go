package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/geraud82/NeoPay-sub000/internal/jobs/background"
)

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	db        *pgxpool.Pool
	scheduler *background.JobScheduler
}

func NewHealthHandlers(db *pgxpool.Pool, scheduler *background.JobScheduler) *HealthHandlers {
	return &HealthHandlers{db: db, scheduler: scheduler}
}

type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Version   string            `json:"version"`
}

func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx := c.Request().Context()
	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
		Version:   "1.0.0",
	}

	if err := h.checkDatabase(ctx); err != nil {
		health.Services["database"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["database"] = "healthy"
	}

	statusCode := http.StatusOK
	if health.Status == "degraded" {
		statusCode = http.StatusPartialContent
	}

	return c.JSON(statusCode, health)
}

func (h *HealthHandlers) checkDatabase(ctx context.Context) error {
	_, err := h.db.Exec(ctx, "SELECT 1")
	return err
}

func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	if err := h.checkDatabase(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": "Database unavailable",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
	})
}

func (h *HealthHandlers) LivenessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// GetMetrics provides application metrics including background job status.
func (h *HealthHandlers) GetMetrics(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"timestamp":  time.Now().UTC(),
		"goroutines": runtime.NumGoroutine(),
		"database": map[string]interface{}{
			"max_connections": h.db.Config().MaxConns,
		},
		"jobs": h.scheduler.GetJobStatus(),
	})
}
