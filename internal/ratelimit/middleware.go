package ratelimit

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/serviceconnect/api/internal/observability"
	apperrors "github.com/serviceconnect/api/pkg/util"
)

// MsgTooManyRequests is returned with every 429.
const MsgTooManyRequests = "Too many requests, please try again later"

// Middleware rejects requests over the limit with 429. Limiter errors fail open.
func Middleware(limiter Limiter, logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *fiber.Ctx) error {
		route := routeKey(c)
		allowed, err := limiter.Allow(c.UserContext(), c.IP()+":"+route)
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if !allowed {
			metrics.RecordRateLimited(route)
			return apperrors.NewRateLimited(MsgTooManyRequests)
		}
		return c.Next()
	}
}

// routeKey names the bucket after the matched route pattern, so case and
// trailing-slash variants the router folds together share one budget.
func routeKey(c *fiber.Ctx) string {
	if r := c.Route(); r != nil && r.Method != "USE" && r.Path != "" {
		return r.Path
	}
	path := strings.ToLower(strings.TrimRight(c.Path(), "/"))
	if path == "" {
		return "/"
	}
	return path
}
