package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// failureJSON is the error envelope shared with the sweep and
// delivery endpoints: a generic message plus the underlying error
// text.
func failureJSON(c *fiber.Ctx, status int, message string, cause error) error {
	details := "Unknown error"
	if cause != nil {
		details = cause.Error()
	}
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
		"details": details,
	})
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}
