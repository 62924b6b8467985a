package services

import (
	"context"
	"strings"

	"github.com/sheelganvir/lastnote/internal/mailer"
	"github.com/sheelganvir/lastnote/internal/models"
)

// ReminderService emails the user (not the recipients) that automatic
// delivery is approaching. Reminders are fire-and-forget: a failure
// changes no persisted state and the next sweep simply tries again.
type ReminderService struct {
	mail       mailer.Mailer
	appBaseURL string
}

func NewReminderService(mail mailer.Mailer, appBaseURL string) *ReminderService {
	return &ReminderService{
		mail:       mail,
		appBaseURL: strings.TrimRight(appBaseURL, "/"),
	}
}

func (service *ReminderService) RemindUser(ctx context.Context, user models.User, daysRemaining int) error {
	_, err := service.mail.SendCheckInReminder(ctx, mailer.ReminderEmail{
		UserEmail:     user.Email,
		UserName:      user.DisplayName(),
		CheckInURL:    service.appBaseURL + "/notes",
		DaysRemaining: daysRemaining,
	})
	return err
}
