package api

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sheelganvir/lastnote/internal/models"
	"github.com/sheelganvir/lastnote/internal/services"
)

type sendNoteEmailRequest struct {
	NoteID     string             `json:"noteId"`
	Recipients []models.Recipient `json:"recipients"`
	NoteURL    string             `json:"noteUrl"`
	Internal   bool               `json:"internal"`
}

// SendNoteEmail is the internal delivery collaborator. It accepts
// either the internal bearer secret (the sweep's path) or an
// authenticated owner performing a "send now"; both converge on the
// same delivery service.
func (handler *Handler) SendNoteEmail(c *fiber.Ctx) error {
	var request sendNoteEmailRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if request.NoteID == "" || len(request.Recipients) == 0 {
		return apiError(c, fiber.StatusBadRequest, "Missing required fields")
	}

	note, owner, errResponse := handler.resolveDeliverableNote(c, request)
	if errResponse != nil {
		return errResponse
	}

	if note.IsDelivered {
		return apiError(c, fiber.StatusConflict, "Note already delivered")
	}
	if note.Status == models.NoteStatusDraft {
		return apiError(c, fiber.StatusBadRequest, "Cannot deliver a draft note")
	}

	results, err := handler.delivery.Deliver(c.UserContext(), note, owner, request.Recipients, request.NoteURL)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyDelivered) {
			return apiError(c, fiber.StatusConflict, "Note already delivered")
		}
		return failureJSON(c, fiber.StatusInternalServerError, "Failed to send emails", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Note delivered to %d of %d recipients", len(results.Successful), results.TotalRecipients),
		"results": results,
	})
}

// resolveDeliverableNote authorizes the request and loads the note
// with its owner. A non-nil third return value is the error response
// to send.
func (handler *Handler) resolveDeliverableNote(c *fiber.Ctx, request sendNoteEmailRequest) (models.Note, models.User, error) {
	if request.Internal && handler.isInternalCall(c) {
		note, found, err := handler.repositories.Notes.FindByNoteID(request.NoteID)
		if err != nil {
			return models.Note{}, models.User{}, failureJSON(c, fiber.StatusInternalServerError, "Failed to send emails", err)
		}
		if !found {
			return models.Note{}, models.User{}, apiError(c, fiber.StatusNotFound, "Note not found")
		}
		owner, err := handler.repositories.Users.FindByID(note.UserID)
		if err != nil {
			return models.Note{}, models.User{}, failureJSON(c, fiber.StatusInternalServerError, "Failed to send emails", err)
		}
		return note, owner, nil
	}

	subject, err := handler.authenticateSubject(c)
	if err != nil {
		return models.Note{}, models.User{}, apiError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	owner, found, err := handler.repositories.Users.FindBySubjectID(subject)
	if err != nil {
		return models.Note{}, models.User{}, failureJSON(c, fiber.StatusInternalServerError, "Failed to send emails", err)
	}
	if !found {
		return models.Note{}, models.User{}, apiError(c, fiber.StatusNotFound, "User not found")
	}

	note, found, err := handler.repositories.Notes.FindByNoteIDAndUser(request.NoteID, owner.ID)
	if err != nil {
		return models.Note{}, models.User{}, failureJSON(c, fiber.StatusInternalServerError, "Failed to send emails", err)
	}
	if !found {
		return models.Note{}, models.User{}, apiError(c, fiber.StatusNotFound, "Note not found")
	}
	return note, owner, nil
}

func (handler *Handler) isInternalCall(c *fiber.Ctx) bool {
	token := bearerToken(c)
	if token == "" || handler.internalSecret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(handler.internalSecret)) == 1
}
