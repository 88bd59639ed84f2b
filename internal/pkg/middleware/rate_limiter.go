package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/thqlabel/thqlabel/internal/pkg/constants"
	"github.com/thqlabel/thqlabel/internal/pkg/logger"
	"github.com/thqlabel/thqlabel/internal/utils"
)

// RateLimiterConfig contains configuration for the rate limiter
type RateLimiterConfig struct {
	RedisClient *redis.Client
	Key         string        // Key prefix for Redis
	Limit       int           // Maximum number of requests
	Period      time.Duration // Time period for the limit
}

// RateLimiterMiddleware limits requests per user, or per client IP when
// unauthenticated, with a fixed window counter in Redis
func RateLimiterMiddleware(config RateLimiterConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identifier := c.RealIP()
			if userID, ok := UserID(c); ok {
				identifier = userID.String()
			}

			key := fmt.Sprintf("%s:%s:%s", config.Key, c.Path(), identifier)
			ctx := c.Request().Context()

			count, err := config.RedisClient.Incr(ctx, key).Result()
			if err != nil {
				logger.WarnCtx(ctx, "Rate limiter unavailable", logger.Err(err))
				return next(c)
			}
			if count == 1 {
				config.RedisClient.Expire(ctx, key, config.Period)
			}

			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(config.Limit))

			if count > int64(config.Limit) {
				ttl := config.RedisClient.TTL(ctx, key).Val()
				if ttl < 0 {
					ttl = config.Period
				}
				c.Response().Header().Set("X-RateLimit-Remaining", "0")
				c.Response().Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))
				c.Response().Header().Set("Retry-After", strconv.FormatInt(int64(ttl.Seconds()), 10))
				return utils.ErrorResponseHandler(c, http.StatusTooManyRequests, "Rate limit exceeded")
			}

			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(int64(config.Limit)-count, 10))
			return next(c)
		}
	}
}

// UserRateLimiter creates a user-based rate limiter
func UserRateLimiter(limit int, period time.Duration, redisClient *redis.Client) echo.MiddlewareFunc {
	return RateLimiterMiddleware(RateLimiterConfig{
		RedisClient: redisClient,
		Key:         constants.KeyRateLimitUser,
		Limit:       limit,
		Period:      period,
	})
}
