package controllers

import (
	"strconv"

	"bearinmind/backend/apperrors"
	"bearinmind/backend/dto"
	"bearinmind/backend/middleware"
	"bearinmind/backend/services"

	"github.com/gofiber/fiber/v2"
)

const (
	minListLength   = 1
	maxListLength   = 10
	defaultPageSize = 10
	maxPageSize     = 100
)

func invalidArgument(name string) error {
	return apperrors.Invalid("request", apperrors.REQUEST_ARGUMENT_INVALID).WithArguments(name)
}

// caller returns the authenticated identity. Routes are guarded by
// RequireAuth, so a missing identity is a routing mistake.
func caller(c *fiber.Ctx) (services.Identity, error) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return services.Identity{}, apperrors.Unauthorized("session", apperrors.INCORRECT_CREDENTIALS)
	}
	return identity, nil
}

// idParam reads a positive path id.
func idParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id < 1 {
		return 0, invalidArgument(name)
	}
	return id, nil
}

func intQuery(c *fiber.Ctx, name string, defaultValue, lo, hi int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		if defaultValue < lo {
			return 0, invalidArgument(name)
		}
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < lo || n > hi {
		return 0, invalidArgument(name)
	}
	return n, nil
}

// listLengthQuery reads the required listLength of main views.
func listLengthQuery(c *fiber.Ctx) (int, error) {
	return intQuery(c, "listLength", 0, minListLength, maxListLength)
}

func pageQuery(c *fiber.Ctx) (number, size int, err error) {
	if number, err = intQuery(c, "pageNumber", 0, 0, int(^uint(0)>>1)); err != nil {
		return 0, 0, err
	}
	if size, err = intQuery(c, "pageSize", defaultPageSize, 1, maxPageSize); err != nil {
		return 0, 0, err
	}
	return number, size, nil
}

// parseBody decodes and validates a JSON body.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.Invalid("request", apperrors.REQUEST_ARGUMENT_INVALID).Wrap(err)
	}
	return dto.Validate(out)
}
