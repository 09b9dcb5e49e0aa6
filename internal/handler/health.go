package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/bookstore/internal/errs"
	"github.com/deppfellow/bookstore/internal/middleware"
	"github.com/deppfellow/bookstore/internal/server"
)

const msgUnhealthy = "One or more required dependencies are unhealthy"

// dependencyCheck pings one backing service. A failing required check
// turns the whole status unhealthy; an optional one is only reported.
type dependencyCheck struct {
	name     string
	required bool
	ping     func(ctx context.Context) error
}

// HealthHandler reports whether the service and its dependencies are
// reachable, for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
	checks []dependencyCheck
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	var checks []dependencyCheck

	if s.DB != nil {
		checks = append(checks, dependencyCheck{name: "database", required: true, ping: s.DB.Ping})
	}

	// The rate limiter fails open without Redis, so it never makes the
	// service unhealthy.
	if s.Redis != nil {
		checks = append(checks, dependencyCheck{name: "redis", ping: func(ctx context.Context) error {
			return s.Redis.Ping(ctx).Err()
		}})
	}

	return &HealthHandler{
		Handler: NewHandler(s),
		checks:  checks,
	}
}

// CheckHealth returns 200 when every required dependency answers. Otherwise
// it returns a 503 HTTPError listing each failing required dependency under
// "errors", rendered by the global error handler.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{})
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	var failures []errs.FieldError
	healthCfg := h.server.Config.Observability.HealthChecks

	if healthCfg.Enabled {
		for _, check := range h.checks {
			ctx, cancel := context.WithTimeout(c.Request().Context(), healthCfg.Timeout)
			checkStart := time.Now()
			err := check.ping(ctx)
			elapsed := time.Since(checkStart)
			cancel()

			if err != nil {
				checks[check.name] = map[string]interface{}{
					"status":        "unhealthy",
					"response_time": elapsed.String(),
					"error":         err.Error(),
				}

				if check.required {
					failures = append(failures, errs.FieldError{Field: check.name, Error: err.Error()})
				}

				logger.Error().
					Err(err).
					Dur("response_time", elapsed).
					Msgf("%s health check failed", check.name)

				h.recordHealthCheckError(check.name, elapsed, err)
				continue
			}

			checks[check.name] = map[string]interface{}{
				"status":        "healthy",
				"response_time": elapsed.String(),
			}

			logger.Debug().
				Dur("response_time", elapsed).
				Msgf("%s health check passed", check.name)
		}
	}

	if len(failures) > 0 {
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		unavailable := errs.NewServiceUnavailableError(msgUnhealthy)
		unavailable.Errors = failures
		return unavailable
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) recordHealthCheckError(checkType string, elapsed time.Duration, err error) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
			"check_type":       checkType,
			"operation":        "health_check",
			"error_type":       checkType + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
	}
}
