package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"bearinmind/backend/apperrors"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func failingApp(err error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())})
	app.Get("/", func(c *fiber.Ctx) error { return err })
	return app
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			name:   "not found",
			err:    apperrors.NotFound("course").With("id", 7),
			status: fiber.StatusNotFound,
			body:   `{"code":"NOT_FOUND","arguments":[]}`,
		},
		{
			name:   "validation with arguments",
			err:    apperrors.Invalid("course", apperrors.INVALID_COURSE_LESSON_START_DATE_TIME_OR_END_DATE_TIME).WithArguments("0", "3"),
			status: fiber.StatusBadRequest,
			body:   `{"code":"INVALID_COURSE_LESSON_START_DATE_TIME_OR_END_DATE_TIME","arguments":["0","3"]}`,
		},
		{
			name:   "wrapped unauthorized",
			err:    errors.Join(errors.New("context"), apperrors.Unauthorized("user", apperrors.INCORRECT_CREDENTIALS)),
			status: fiber.StatusUnauthorized,
			body:   `{"code":"INCORRECT_CREDENTIALS","arguments":[]}`,
		},
		{
			name:   "forbidden",
			err:    apperrors.Forbidden("lesson", apperrors.NO_ACCESS_TO_LESSON),
			status: fiber.StatusForbidden,
			body:   `{"code":"NO_ACCESS_TO_LESSON","arguments":[]}`,
		},
		{
			name:   "body too large",
			err:    fiber.ErrRequestEntityTooLarge,
			status: fiber.StatusRequestEntityTooLarge,
			body:   `{"code":"FILE_SIZE_LIMIT_EXCEEDED","arguments":[]}`,
		},
		{
			name:   "bad request from fiber",
			err:    fiber.ErrUnprocessableEntity,
			status: fiber.StatusUnprocessableEntity,
			body:   `{"code":"REQUEST_ARGUMENT_INVALID","arguments":[]}`,
		},
		{
			name:   "route not found",
			err:    fiber.ErrNotFound,
			status: fiber.StatusNotFound,
		},
		{
			name:   "unexpected",
			err:    errors.New("database is down"),
			status: fiber.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := failingApp(tt.err).Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			if tt.body == "" {
				assert.NotContains(t, string(body), "database")
				return
			}
			assert.JSONEq(t, tt.body, string(body))
		})
	}
}

func TestPageQuery(t *testing.T) {
	tests := []struct {
		query      string
		number     int
		size       int
		invalidArg string
	}{
		{query: "", number: 0, size: defaultPageSize},
		{query: "?pageNumber=3&pageSize=25", number: 3, size: 25},
		{query: "?pageSize=0", invalidArg: "pageSize"},
		{query: "?pageSize=101", invalidArg: "pageSize"},
		{query: "?pageNumber=x", invalidArg: "pageNumber"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())})
			app.Get("/", func(c *fiber.Ctx) error {
				number, size, err := pageQuery(c)
				if err != nil {
					return err
				}
				return c.JSON([]int{number, size})
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/"+tt.query, nil))
			require.NoError(t, err)
			if tt.invalidArg != "" {
				assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
				var body struct{ Arguments []string }
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, []string{tt.invalidArg}, body.Arguments)
				return
			}
			var got []int
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			assert.Equal(t, []int{tt.number, tt.size}, got)
		})
	}
}
