package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/reciters/internal/middleware"
	"github.com/deppfellow/reciters/internal/server"
)

// Pinger is a dependency the health endpoint can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler serves GET /status.
//
// The database check decides overall health. Redis is optional and only
// reported. The cache check reports the number of stored entries.
type HealthHandler struct {
	Handler
	database Pinger
	redis    Pinger
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	h := &HealthHandler{Handler: NewHandler(s)}
	if s.DB != nil {
		h.database = s.DB
	}
	if s.Redis != nil {
		h.redis = pingFunc(func(ctx context.Context) error {
			return s.Redis.Ping(ctx).Err()
		})
	}
	return h
}

// CheckResult is the outcome of one dependency check.
type CheckResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time,omitempty"`
	Error        string `json:"error,omitempty"`
	Entries      *int   `json:"entries,omitempty"`
}

// HealthResponse is the body of GET /status.
type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]CheckResult `json:"checks"`
}

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// CheckHealth returns 200 when every required check passes and 503
// otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	cfg := h.server.Config.Observability

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := HealthResponse{
		Status:      statusHealthy,
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]CheckResult),
	}

	timeout := 5 * time.Second
	if cfg != nil && cfg.HealthChecks.Timeout > 0 {
		timeout = cfg.HealthChecks.Timeout
	}

	enabled := func(name string) bool {
		return cfg == nil || cfg.HealthCheckEnabled(name)
	}

	if enabled("database") {
		result := h.probe(c.Request().Context(), "database", h.database, timeout)
		response.Checks["database"] = result
		if result.Status != statusHealthy {
			response.Status = statusUnhealthy
		}
	}

	if enabled("redis") && h.redis != nil {
		response.Checks["redis"] = h.probe(c.Request().Context(), "redis", h.redis, timeout)
	}

	if enabled("cache") && h.server.Cache != nil {
		entries := h.server.Cache.Len()
		response.Checks["cache"] = CheckResult{Status: statusHealthy, Entries: &entries}
	}

	if response.Status != statusHealthy {
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")
		h.recordFailure("overall", "overall_unhealthy", time.Since(start), "")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) probe(parent context.Context, name string, p Pinger, timeout time.Duration) CheckResult {
	if p == nil {
		return CheckResult{Status: statusUnhealthy, Error: name + " not configured"}
	}

	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	start := time.Now()
	err := p.Ping(ctx)
	elapsed := time.Since(start)

	if err != nil {
		h.server.Logger.Error().
			Err(err).
			Str("check", name).
			Dur("response_time", elapsed).
			Msg("health check failed")
		h.recordFailure(name, name+"_unhealthy", elapsed, err.Error())

		return CheckResult{
			Status:       statusUnhealthy,
			ResponseTime: elapsed.String(),
			Error:        err.Error(),
		}
	}

	return CheckResult{Status: statusHealthy, ResponseTime: elapsed.String()}
}

// recordFailure sends a HealthCheckError custom event to New Relic.
func (h *HealthHandler) recordFailure(checkType, errorType string, elapsed time.Duration, message string) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	attrs := map[string]any{
		"check_type":       checkType,
		"operation":        "health_check",
		"error_type":       errorType,
		"response_time_ms": elapsed.Milliseconds(),
	}
	if message != "" {
		attrs["error_message"] = message
	}
	app.RecordCustomEvent("HealthCheckError", attrs)
}
