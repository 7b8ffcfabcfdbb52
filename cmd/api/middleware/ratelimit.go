package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/touchly/directory/common/config"
	"github.com/touchly/directory/common/logger"
	"github.com/touchly/directory/common/ratelimit"
)

// RateLimit throttles requests with a global window plus a per-client window
// keyed by the caller's IP. Limiter failures let the request through; an
// unavailable Redis must not take the API down with it.
func RateLimit(limiter *ratelimit.RateLimiter, cfg config.RateLimitConfig, log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Enabled {
				return next(c)
			}

			ctx := c.Request().Context()

			global, err := limiter.CheckGlobalLimit(ctx, cfg.GlobalLimit, cfg.WindowSec)
			if err != nil {
				log.Warn("rate limiter unavailable", "error", err)
				return next(c)
			}
			if !global.Allowed {
				return tooManyRequests(c, global)
			}

			client, err := limiter.CheckClientLimit(ctx, c.RealIP(), cfg.ClientLimit, cfg.WindowSec)
			if err != nil {
				log.Warn("rate limiter unavailable", "error", err)
				return next(c)
			}
			if !client.Allowed {
				return tooManyRequests(c, client)
			}

			return next(c)
		}
	}
}

func tooManyRequests(c echo.Context, res *ratelimit.Result) error {
	return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
		"error":       "rate limit exceeded",
		"retry_after": res.RetryAfterSeconds,
	})
}
