package controllers

import (
	"errors"

	"bearinmind/backend/apperrors"
	"bearinmind/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var kindStatus = map[apperrors.Kind]int{
	apperrors.KindNotFound:     fiber.StatusNotFound,
	apperrors.KindValidation:   fiber.StatusBadRequest,
	apperrors.KindUnauthorized: fiber.StatusUnauthorized,
	apperrors.KindForbidden:    fiber.StatusForbidden,
}

// ErrorHandler renders application errors as {"code", "arguments"}. Anything
// unexpected becomes an empty 500.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if appErr, ok := apperrors.As(err); ok {
			status, known := kindStatus[appErr.Kind]
			if known {
				fields := []zap.Field{
					zap.String("code", appErr.Code),
					zap.String("resource", appErr.Resource),
					zap.Strings("arguments", appErr.Arguments),
					zap.Int("status", status),
				}
				if len(appErr.Properties) > 0 {
					fields = append(fields, zap.Any("properties", appErr.Properties))
				}
				logger.Info("request rejected", fields...)
				return utils.Error(c, status, appErr.Code, appErr.Arguments)
			}
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
			code := apperrors.REQUEST_ARGUMENT_INVALID
			switch fiberErr.Code {
			case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
				return c.SendStatus(fiberErr.Code)
			case fiber.StatusRequestEntityTooLarge:
				code = apperrors.FILE_SIZE_LIMIT_EXCEEDED
			}
			logger.Info("request rejected", zap.Int("status", fiberErr.Code), zap.Error(err))
			return utils.Error(c, fiberErr.Code, code, nil)
		}

		logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.SendStatus(fiber.StatusInternalServerError)
	}
}
