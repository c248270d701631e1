package middleware

import (
	"fmt"
	"strconv"
	"time"

	"currency-management/config"
	"currency-management/internal/core/ports"
	"currency-management/pkg/apperror"
	"currency-management/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Endpoint groups with independent request budgets.
const (
	GroupCurrenciesRead  = "currencies_read"
	GroupCurrenciesWrite = "currencies_write"
)

// RateLimitRule defines a rate limit for an endpoint group.
type RateLimitRule struct {
	Limit  int64
	Window time.Duration
}

// RateLimitRules builds the per-group rules from configuration.
func RateLimitRules(cfg config.RateLimitConfig) map[string]RateLimitRule {
	return map[string]RateLimitRule{
		GroupCurrenciesRead:  {Limit: cfg.ReadLimit, Window: cfg.Window},
		GroupCurrenciesWrite: {Limit: cfg.WriteLimit, Window: cfg.Window},
	}
}

// RejectionRecorder is notified of every rejected request.
type RejectionRecorder interface {
	RecordRateLimited(group string)
}

// RateLimiter creates a rate-limiting middleware for a given endpoint group.
// Clients are identified by IP. When the store fails the request is let
// through.
func RateLimiter(store ports.RateLimitStore, group string, rule RateLimitRule, rec RejectionRecorder, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", c.ClientIP(), group)

		result, err := store.Allow(c.Request.Context(), key, rule.Limit, rule.Window)
		if err != nil {
			log.Warn().Err(err).Str("group", group).Msg("rate limit check failed, allowing request (degraded mode)")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

		if !result.Allowed {
			retryAfter := result.ResetAt - time.Now().Unix()
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			if rec != nil {
				rec.RecordRateLimited(group)
			}
			response.Error(c, apperror.ErrRateLimitExceeded())
			c.Abort()
			return
		}

		c.Next()
	}
}
