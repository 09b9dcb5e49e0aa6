package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/deppfellow/bookstore/internal/errs"
	"github.com/deppfellow/bookstore/internal/server"
)

// rateLimitKeyPrefix namespaces the counters kept in Redis.
const rateLimitKeyPrefix = "bookstore:ratelimit:"

// RateLimitMiddleware limits how many requests a single client IP may issue
// per second. Counters live in Redis when it is configured so every
// instance shares them; otherwise each instance counts on its own.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// RecordRateLimitHit reports a rejected request to New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}

// Store picks the counter backend for the configured limit.
func (r *RateLimitMiddleware) Store() echomw.RateLimiterStore {
	limit := r.server.Config.Server.RateLimit

	if r.server.Redis != nil {
		return NewRedisRateLimiterStore(r.server.Redis, limit, time.Second, r.server.Logger)
	}

	return echomw.NewRateLimiterMemoryStore(rate.Limit(limit))
}

// Limit returns the Echo rate limiter middleware. Rejected requests get 429
// through the global error handler.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: r.Store(),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewInternalServerError().WithMessage("Could not identify client")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())

			GetLogger(c).Warn().
				Str("identifier", identifier).
				Str("path", c.Path()).
				Msg("rate limit exceeded")

			return errs.NewTooManyRequestsError(http.StatusText(http.StatusTooManyRequests))
		},
	})
}

// RedisRateLimiterStore is a fixed-window counter kept in Redis.
//
// Each identifier gets one key per window; the first hit sets its expiry.
// When Redis cannot be reached the request is allowed and the failure
// logged, so a Redis outage never takes the API down with it.
type RedisRateLimiterStore struct {
	client *redis.Client
	limit  int
	window time.Duration
	logger *zerolog.Logger
	now    func() time.Time
}

func NewRedisRateLimiterStore(client *redis.Client, limit int, window time.Duration, logger *zerolog.Logger) *RedisRateLimiterStore {
	return &RedisRateLimiterStore{
		client: client,
		limit:  limit,
		window: window,
		logger: logger,
		now:    time.Now,
	}
}

// Allow implements echomw.RateLimiterStore.
func (s *RedisRateLimiterStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.window)
	defer cancel()

	windowStart := s.now().UnixNano() / int64(s.window)
	key := fmt.Sprintf("%s%s:%d", rateLimitKeyPrefix, identifier, windowStart)

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, s.window)

	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Error().
			Err(err).
			Str("identifier", identifier).
			Msg("rate limiter store unavailable, allowing request")
		return true, nil
	}

	return incr.Val() <= int64(s.limit), nil
}
