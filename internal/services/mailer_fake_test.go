package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sheelganvir/lastnote/internal/mailer"
)

// fakeMailer records outgoing mail and fails addresses listed in
// failFor. Safe for the delivery service's concurrent sends.
type fakeMailer struct {
	mu         sync.Mutex
	failFor    map[string]string
	deliveries []mailer.DeliveryEmail
	reminders  []mailer.ReminderEmail
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{failFor: make(map[string]string)}
}

func (mail *fakeMailer) SendNoteDelivery(_ context.Context, email mailer.DeliveryEmail) (string, error) {
	mail.mu.Lock()
	defer mail.mu.Unlock()

	if message, shouldFail := mail.failFor[email.Recipient.Email]; shouldFail {
		return "", errors.New(message)
	}
	mail.deliveries = append(mail.deliveries, email)
	return fmt.Sprintf("msg-%d", len(mail.deliveries)), nil
}

func (mail *fakeMailer) SendCheckInReminder(_ context.Context, email mailer.ReminderEmail) (string, error) {
	mail.mu.Lock()
	defer mail.mu.Unlock()

	if message, shouldFail := mail.failFor[email.UserEmail]; shouldFail {
		return "", errors.New(message)
	}
	mail.reminders = append(mail.reminders, email)
	return fmt.Sprintf("msg-%d", len(mail.reminders)), nil
}

func (mail *fakeMailer) sentDeliveries() []mailer.DeliveryEmail {
	mail.mu.Lock()
	defer mail.mu.Unlock()
	return append([]mailer.DeliveryEmail(nil), mail.deliveries...)
}

func (mail *fakeMailer) sentReminders() []mailer.ReminderEmail {
	mail.mu.Lock()
	defer mail.mu.Unlock()
	return append([]mailer.ReminderEmail(nil), mail.reminders...)
}
