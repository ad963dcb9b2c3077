package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LoggingMiddleware logs one line per request. Errors are rendered here so
// the logged status is the one sent to the client.
func LoggingMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		fields := []zap.Field{
			zap.String("ip", c.IP()),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.String("userAgent", c.Get(fiber.HeaderUserAgent)),
		}
		if identity, ok := CurrentIdentity(c); ok {
			fields = append(fields, zap.Int64("userId", identity.UserID))
		}
		if chainErr != nil {
			fields = append(fields, zap.Error(chainErr))
		}
		logger.Info("request", fields...)

		return nil
	}
}
