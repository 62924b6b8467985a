package mailer

import (
	"context"
	"time"

	"github.com/sheelganvir/lastnote/internal/models"
)

// DeliveryEmail is one recipient's copy of a delivered note.
type DeliveryEmail struct {
	Recipient   models.Recipient
	NoteTitle   string
	SenderName  string
	NoteURL     string
	DeliveredAt time.Time
}

// ReminderEmail nudges the user to check in before automatic delivery
// fires.
type ReminderEmail struct {
	UserEmail     string
	UserName      string
	CheckInURL    string
	DaysRemaining int
}

// Mailer is the transactional email collaborator. Both operations
// return the provider's message id on success.
type Mailer interface {
	SendNoteDelivery(ctx context.Context, email DeliveryEmail) (string, error)
	SendCheckInReminder(ctx context.Context, email ReminderEmail) (string, error)
}
