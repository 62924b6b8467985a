package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sheelganvir/lastnote/internal/db"
	"github.com/sheelganvir/lastnote/internal/mailer"
	"github.com/sheelganvir/lastnote/internal/models"
)

var (
	ErrNoRecipients     = errors.New("note has no recipients")
	ErrAlreadyDelivered = errors.New("note already delivered")
)

// DeliveryService delivers one note to its recipients and records the
// outcome. Sends are best-effort, fire-once: failed recipients are
// recorded but never retried, and the note is marked delivered even
// if every send failed.
type DeliveryService struct {
	notes      *db.NoteRepository
	logs       *db.DeliveryLogRepository
	mail       mailer.Mailer
	appBaseURL string
}

func NewDeliveryService(notes *db.NoteRepository, logs *db.DeliveryLogRepository, mail mailer.Mailer, appBaseURL string) *DeliveryService {
	return &DeliveryService{
		notes:      notes,
		logs:       logs,
		mail:       mail,
		appBaseURL: strings.TrimRight(appBaseURL, "/"),
	}
}

// NoteURL builds the recipient-facing view link for a note.
func (service *DeliveryService) NoteURL(noteID string) string {
	return service.appBaseURL + "/view-note/" + noteID
}

type recipientOutcome struct {
	recipient models.Recipient
	err       error
}

// Deliver emails every recipient concurrently, waits for all
// outcomes, then marks the note delivered and appends one audit
// entry. Returns ErrAlreadyDelivered if another sweep won the
// conditional update first; the audit entry is written regardless,
// one per attempt.
func (service *DeliveryService) Deliver(ctx context.Context, note models.Note, sender models.User, recipients []models.Recipient, noteURL string) (models.DeliveryResults, error) {
	if len(recipients) == 0 {
		return models.DeliveryResults{}, ErrNoRecipients
	}
	if noteURL == "" {
		noteURL = service.NoteURL(note.NoteID)
	}

	deliveredAt := time.Now()
	outcomes := make([]recipientOutcome, len(recipients))

	var wg sync.WaitGroup
	for index, recipient := range recipients {
		wg.Add(1)
		go func(index int, recipient models.Recipient) {
			defer wg.Done()
			_, err := service.mail.SendNoteDelivery(ctx, mailer.DeliveryEmail{
				Recipient:   recipient,
				NoteTitle:   noteTitleOrFallback(note.Title),
				SenderName:  sender.DisplayName(),
				NoteURL:     noteURL,
				DeliveredAt: deliveredAt,
			})
			outcomes[index] = recipientOutcome{recipient: recipient, err: err}
		}(index, recipient)
	}
	wg.Wait()

	results := models.DeliveryResults{
		Successful:      make([]string, 0, len(recipients)),
		Failed:          make([]models.FailedRecipient, 0),
		TotalRecipients: len(recipients),
	}
	for _, outcome := range outcomes {
		if outcome.err != nil {
			results.Failed = append(results.Failed, models.FailedRecipient{
				Email: outcome.recipient.Email,
				Error: outcome.err.Error(),
			})
			continue
		}
		results.Successful = append(results.Successful, outcome.recipient.Email)
	}

	won, err := service.notes.MarkDelivered(note.NoteID, deliveredAt, results)
	if err != nil {
		return results, fmt.Errorf("mark note %s delivered: %w", note.NoteID, err)
	}

	if err := service.logs.Append(&models.DeliveryLogEntry{
		NoteID:      note.NoteID,
		UserID:      note.UserID,
		Recipients:  recipients,
		Successful:  results.Successful,
		Failed:      results.Failed,
		DeliveredAt: deliveredAt,
	}); err != nil {
		return results, fmt.Errorf("append delivery log for note %s: %w", note.NoteID, err)
	}

	if !won {
		return results, ErrAlreadyDelivered
	}
	return results, nil
}

// DeliverNote satisfies NoteDeliverer for in-process wiring, sending
// to the note's stored recipient list.
func (service *DeliveryService) DeliverNote(ctx context.Context, note models.Note, owner models.User) error {
	_, err := service.Deliver(ctx, note, owner, note.Recipients, "")
	return err
}

func noteTitleOrFallback(title string) string {
	if strings.TrimSpace(title) == "" {
		return "Untitled Note"
	}
	return title
}
