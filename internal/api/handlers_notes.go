package api

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sheelganvir/lastnote/internal/models"
)

// noteContent is the opaque serialized blob stored in Note.Content.
// Attachment bytes live with the external media host; only metadata
// passes through here.
type noteContent struct {
	TextNote      string               `json:"textNote"`
	SensitiveInfo string               `json:"sensitiveInfo"`
	Attachments   []attachmentMetadata `json:"attachments"`
}

type attachmentMetadata struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
	URL  string `json:"url,omitempty"`
}

type createNoteRequest struct {
	Title         string               `json:"title"`
	TextNote      string               `json:"textNote"`
	SensitiveInfo string               `json:"sensitiveInfo"`
	Attachments   []attachmentMetadata `json:"attachments"`
}

func (handler *Handler) CreateNote(c *fiber.Ctx) error {
	user, found, err := handler.currentUser(c)
	if err != nil {
		return failureJSON(c, fiber.StatusInternalServerError, "Failed to save note", err)
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "User not found")
	}

	var request createNoteRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(request.Title) == "" {
		return apiError(c, fiber.StatusBadRequest, "Title is required")
	}
	if strings.TrimSpace(request.TextNote) == "" && strings.TrimSpace(request.SensitiveInfo) == "" {
		return apiError(c, fiber.StatusBadRequest, "Note content is required")
	}

	content, err := json.Marshal(noteContent{
		TextNote:      request.TextNote,
		SensitiveInfo: request.SensitiveInfo,
		Attachments:   request.Attachments,
	})
	if err != nil {
		return failureJSON(c, fiber.StatusInternalServerError, "Failed to save note", err)
	}

	note := models.Note{
		NoteID:          uuid.NewString(),
		UserID:          user.ID,
		Title:           request.Title,
		Content:         string(content),
		Status:          models.NoteStatusDraft,
		Recipients:      make([]models.Recipient, 0),
		DeliveryTrigger: models.DeliveryTriggerAutomatic,
		CheckInPeriod:   models.DefaultCheckInPeriod,
		Priority:        models.PriorityMedium,
	}
	if err := handler.repositories.Notes.Create(&note); err != nil {
		return failureJSON(c, fiber.StatusInternalServerError, "Failed to save note", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"note": fiber.Map{
			"id":        note.ID,
			"noteId":    note.NoteID,
			"title":     note.Title,
			"createdAt": note.CreatedAt,
		},
		"message": "Note saved successfully",
	})
}

func (handler *Handler) ListNotes(c *fiber.Ctx) error {
	user, found, err := handler.currentUser(c)
	if err != nil {
		return failureJSON(c, fiber.StatusInternalServerError, "Failed to fetch notes", err)
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "User not found")
	}

	notes, err := handler.repositories.Notes.ListByUser(user.ID)
	if err != nil {
		return failureJSON(c, fiber.StatusInternalServerError, "Failed to fetch notes", err)
	}

	summaries := make([]fiber.Map, 0, len(notes))
	for _, note := range notes {
		summaries = append(summaries, fiber.Map{
			"id":          note.ID,
			"noteId":      note.NoteID,
			"title":       note.Title,
			"status":      note.Status,
			"recipients":  note.Recipients,
			"createdAt":   note.CreatedAt,
			"updatedAt":   note.UpdatedAt,
			"isDelivered": note.IsDelivered,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"notes":   summaries,
	})
}

func (handler *Handler) GetNote(c *fiber.Ctx) error {
	user, found, err := handler.currentUser(c)
	if err != nil {
		return failureJSON(c, fiber.StatusInternalServerError, "Failed to fetch note", err)
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "User not found")
	}

	note, found, err := handler.repositories.Notes.FindByNoteIDAndUser(c.Params("id"), user.ID)
	if err != nil {
		return failureJSON(c, fiber.StatusInternalServerError, "Failed to fetch note", err)
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "Note not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"note":    note,
	})
}

type updateNoteRequest struct {
	Title         *string               `json:"title"`
	Status        *string               `json:"status"`
	TextNote      *string               `json:"textNote"`
	SensitiveInfo *string               `json:"sensitiveInfo"`
	Attachments   *[]attachmentMetadata `json:"attachments"`
	Recipients    *[]models.Recipient   `json:"recipients"`
	Settings      *noteSettingsRequest  `json:"settings"`
}

type noteSettingsRequest struct {
	DeliveryTrigger *string `json:"deliveryTrigger"`
	CheckInPeriod   *string `json:"checkInPeriod"`
	Priority        *string `json:"priority"`
}

// UpdateNote applies a partial update: title, content fields,
// recipients, settings, or status. Marking a note delivered is not
// reachable from here; that transition belongs to the delivery path.
func (handler *Handler) UpdateNote(c *fiber.Ctx) error {
	user, found, err := handler.currentUser(c)
	if err != nil {
		return failureJSON(c, fiber.StatusInternalServerError, "Failed to update note", err)
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "User not found")
	}

	note, found, err := handler.repositories.Notes.FindByNoteIDAndUser(c.Params("id"), user.ID)
	if err != nil {
		return failureJSON(c, fiber.StatusInternalServerError, "Failed to update note", err)
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "Note not found")
	}

	var request updateNoteRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if request.Title != nil {
		if strings.TrimSpace(*request.Title) == "" {
			return apiError(c, fiber.StatusBadRequest, "Title is required")
		}
		note.Title = *request.Title
	}

	if request.Status != nil {
		status := *request.Status
		if status != models.NoteStatusDraft && status != models.NoteStatusSaved {
			return apiError(c, fiber.StatusBadRequest, "Invalid status")
		}
		note.Status = status
	}

	if request.TextNote != nil || request.SensitiveInfo != nil || request.Attachments != nil {
		var content noteContent
		if note.Content != "" {
			// Preserve fields the request does not touch.
			_ = json.Unmarshal([]byte(note.Content), &content)
		}
		if request.TextNote != nil {
			content.TextNote = *request.TextNote
		}
		if request.SensitiveInfo != nil {
			content.SensitiveInfo = *request.SensitiveInfo
		}
		if request.Attachments != nil {
			content.Attachments = *request.Attachments
		}
		encoded, err := json.Marshal(content)
		if err != nil {
			return failureJSON(c, fiber.StatusInternalServerError, "Failed to update note", err)
		}
		note.Content = string(encoded)
	}

	if request.Recipients != nil {
		recipients := *request.Recipients
		for _, recipient := range recipients {
			if strings.TrimSpace(recipient.Email) == "" {
				return apiError(c, fiber.StatusBadRequest, "Recipient email is required")
			}
		}
		note.Recipients = recipients
	}

	if request.Settings != nil {
		settings := request.Settings
		if settings.DeliveryTrigger != nil {
			if !models.ValidDeliveryTrigger(*settings.DeliveryTrigger) {
				return apiError(c, fiber.StatusBadRequest, "Invalid delivery trigger")
			}
			note.DeliveryTrigger = *settings.DeliveryTrigger
		}
		if settings.CheckInPeriod != nil {
			note.CheckInPeriod = *settings.CheckInPeriod
		}
		if settings.Priority != nil {
			if !models.ValidPriority(*settings.Priority) {
				return apiError(c, fiber.StatusBadRequest, "Invalid priority")
			}
			note.Priority = *settings.Priority
		}
	}

	if err := handler.repositories.Notes.Save(&note); err != nil {
		return failureJSON(c, fiber.StatusInternalServerError, "Failed to update note", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"note":    note,
		"message": "Note updated successfully",
	})
}

func (handler *Handler) DeleteNote(c *fiber.Ctx) error {
	user, found, err := handler.currentUser(c)
	if err != nil {
		return failureJSON(c, fiber.StatusInternalServerError, "Failed to delete note", err)
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "User not found")
	}

	deleted, err := handler.repositories.Notes.DeleteByNoteIDAndUser(c.Params("id"), user.ID)
	if err != nil {
		return failureJSON(c, fiber.StatusInternalServerError, "Failed to delete note", err)
	}
	if !deleted {
		return apiError(c, fiber.StatusNotFound, "Note not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Note deleted successfully",
	})
}
