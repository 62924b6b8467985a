package api

import (
	"crypto/subtle"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// CheckDeliveries runs one sweep. An external scheduler calls this
// with the cron bearer secret; the service never schedules itself.
func (handler *Handler) CheckDeliveries(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(handler.cronSecret)) != 1 {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	report, err := handler.sweep.Run(c.UserContext())
	if err != nil {
		return failureJSON(c, fiber.StatusInternalServerError, "Failed to check deliveries", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Processed %d users", report.UsersProcessed),
		"results": fiber.Map{
			"deliveries": report.Deliveries,
			"reminders":  report.Reminders,
		},
	})
}
