package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sheelganvir/lastnote/internal/models"
)

// CheckIn resets the caller's delivery countdown.
func (handler *Handler) CheckIn(c *fiber.Ctx) error {
	subject, ok := currentSubject(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	if err := handler.repositories.Users.TouchLastCheckIn(subject, time.Now()); err != nil {
		return failureJSON(c, fiber.StatusInternalServerError, "Failed to check in", err)
	}

	user, found, err := handler.repositories.Users.FindBySubjectID(subject)
	if err != nil {
		return failureJSON(c, fiber.StatusInternalServerError, "Failed to check in", err)
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "User not found")
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"message":     "Check-in successful",
		"lastCheckIn": user.LastCheckIn,
	})
}

// SyncUser reports whether the authenticated subject already has a
// local record; an existing user's visit counts as a check-in.
func (handler *Handler) SyncUser(c *fiber.Ctx) error {
	subject, ok := currentSubject(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	user, found, err := handler.repositories.Users.FindBySubjectID(subject)
	if err != nil {
		return failureJSON(c, fiber.StatusInternalServerError, "Failed to sync user data", err)
	}
	if !found {
		return c.JSON(fiber.Map{
			"success":       false,
			"needsUserData": true,
			"message":       "User not found in database. Please provide user details.",
		})
	}

	if err := handler.repositories.Users.TouchLastCheckIn(subject, time.Now()); err != nil {
		return failureJSON(c, fiber.StatusInternalServerError, "Failed to sync user data", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
		"message": "User check-in updated",
	})
}

type upsertUserRequest struct {
	Email            string `json:"email"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	CheckInFrequency string `json:"checkInFrequency"`
}

// UpsertUser creates the local record for a new subject or updates an
// existing one's profile. Either way the visit counts as a check-in.
func (handler *Handler) UpsertUser(c *fiber.Ctx) error {
	subject, ok := currentSubject(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var request upsertUserRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	request.Email = strings.TrimSpace(request.Email)
	if request.Email == "" {
		return apiError(c, fiber.StatusBadRequest, "Email is required")
	}
	if request.CheckInFrequency != "" && !models.ValidCheckInFrequency(request.CheckInFrequency) {
		return apiError(c, fiber.StatusBadRequest, "Invalid check-in frequency")
	}

	_, found, err := handler.repositories.Users.FindBySubjectID(subject)
	if err != nil {
		return failureJSON(c, fiber.StatusInternalServerError, "Failed to create/update user", err)
	}

	now := time.Now()
	if found {
		updates := map[string]any{
			"email":         request.Email,
			"first_name":    request.FirstName,
			"last_name":     request.LastName,
			"last_check_in": now,
		}
		if request.CheckInFrequency != "" {
			updates["check_in_frequency"] = request.CheckInFrequency
		}
		if err := handler.repositories.Users.UpdateBySubjectID(subject, updates); err != nil {
			return failureJSON(c, fiber.StatusInternalServerError, "Failed to create/update user", err)
		}

		user, _, err := handler.repositories.Users.FindBySubjectID(subject)
		if err != nil {
			return failureJSON(c, fiber.StatusInternalServerError, "Failed to create/update user", err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"user":    user,
			"message": "User updated successfully",
		})
	}

	frequency := request.CheckInFrequency
	if frequency == "" {
		frequency = models.CheckInFrequencyMonthly
	}
	user := models.User{
		SubjectID:        subject,
		Email:            request.Email,
		FirstName:        request.FirstName,
		LastName:         request.LastName,
		CheckInFrequency: frequency,
		IsActive:         true,
	}
	if err := handler.repositories.Users.Create(&user); err != nil {
		return failureJSON(c, fiber.StatusInternalServerError, "Failed to create/update user", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
		"message": "User created successfully",
	})
}
