package utils

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the body of every 4xx response.
type ErrorResponse struct {
	Code      string   `json:"code"`
	Arguments []string `json:"arguments"`
}

// IDResponse is returned when a resource is created.
type IDResponse struct {
	ID int64 `json:"id"`
}

// URLResponse is returned for uploaded files.
type URLResponse struct {
	URL string `json:"url"`
}

// Error writes an error code with its arguments.
func Error(c *fiber.Ctx, status int, code string, arguments []string) error {
	if arguments == nil {
		arguments = []string{}
	}
	return c.Status(status).JSON(ErrorResponse{Code: code, Arguments: arguments})
}

// Created sends 201 Created with the new id.
func Created(c *fiber.Ctx, id int64) error {
	return c.Status(fiber.StatusCreated).JSON(IDResponse{ID: id})
}

// OK sends 200 with data as the body.
func OK(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// NoContent sends 204 No Content.
func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
