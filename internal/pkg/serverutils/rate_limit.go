package serverutils

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	cache "github.com/patrickmn/go-cache"
)

// RateLimitMiddleware applies a fixed-window request cap per client id
// (identity local when set, source IP otherwise).
func RateLimitMiddleware(maxRequests int, window time.Duration) fiber.Handler {
	counters := cache.New(window, window)

	return func(ctx *fiber.Ctx) error {
		key := ctx.IP()
		if userId, ok := ctx.Locals(UserIdLocal).(string); ok && userId != "" {
			key = userId
		}
		key = fmt.Sprintf("rl:%s", key)

		count, err := counters.IncrementInt(key, 1)
		if err != nil {
			counters.Set(key, 1, window)
			count = 1
		}
		if count > maxRequests {
			return ctx.Status(fiber.StatusTooManyRequests).
				JSON(ErrorResponse(fiber.StatusTooManyRequests, "Too many requests, slow down"))
		}
		return ctx.Next()
	}
}
