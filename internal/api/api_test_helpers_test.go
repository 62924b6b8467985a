package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sheelganvir/lastnote/internal/config"
	"github.com/sheelganvir/lastnote/internal/db"
	"github.com/sheelganvir/lastnote/internal/mailer"
	"github.com/sheelganvir/lastnote/internal/models"
	"gorm.io/gorm"
)

const (
	testJWTSecret      = "test-jwt-secret"
	testCronSecret     = "test-cron-secret"
	testInternalSecret = "test-internal-secret"
	testAppBaseURL     = "http://localhost:8080"
)

// recordingMailer collects outgoing mail instead of calling the
// provider. Safe for the delivery service's concurrent sends.
type recordingMailer struct {
	mu         sync.Mutex
	failFor    map[string]string
	deliveries []mailer.DeliveryEmail
	reminders  []mailer.ReminderEmail
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{failFor: make(map[string]string)}
}

func (mail *recordingMailer) SendNoteDelivery(_ context.Context, email mailer.DeliveryEmail) (string, error) {
	mail.mu.Lock()
	defer mail.mu.Unlock()

	if message, shouldFail := mail.failFor[email.Recipient.Email]; shouldFail {
		return "", errors.New(message)
	}
	mail.deliveries = append(mail.deliveries, email)
	return fmt.Sprintf("msg-%d", len(mail.deliveries)), nil
}

func (mail *recordingMailer) SendCheckInReminder(_ context.Context, email mailer.ReminderEmail) (string, error) {
	mail.mu.Lock()
	defer mail.mu.Unlock()

	mail.reminders = append(mail.reminders, email)
	return fmt.Sprintf("msg-%d", len(mail.reminders)), nil
}

func (mail *recordingMailer) sentDeliveries() []mailer.DeliveryEmail {
	mail.mu.Lock()
	defer mail.mu.Unlock()
	return append([]mailer.DeliveryEmail(nil), mail.deliveries...)
}

func (mail *recordingMailer) sentReminders() []mailer.ReminderEmail {
	mail.mu.Lock()
	defer mail.mu.Unlock()
	return append([]mailer.ReminderEmail(nil), mail.reminders...)
}

func newTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:       "127.0.0.1",
			Port:       8080,
			AppBaseURL: testAppBaseURL,
		},
		Auth: config.AuthConfig{JWTSecret: testJWTSecret},
		Sweep: config.SweepConfig{
			CronSecret:     testCronSecret,
			InternalSecret: testInternalSecret,
		},
	}
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *recordingMailer) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "lastnote-api-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	mail := newRecordingMailer()
	handler := NewHandler(database, newTestConfig(), mail, nil)

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, database, mail
}

func signSubjectToken(t *testing.T, subject string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func jsonRequest(t *testing.T, app *fiber.App, method string, path string, bearer string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		request.Header.Set("Authorization", "Bearer "+bearer)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}

func decodeBody(t *testing.T, response *http.Response) map[string]any {
	t.Helper()
	defer response.Body.Close()

	payload := map[string]any{}
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return payload
}

func createAPITestUser(t *testing.T, database *gorm.DB, subject string, email string, lastCheckIn *time.Time) models.User {
	t.Helper()

	user := models.User{
		SubjectID:        subject,
		Email:            email,
		FirstName:        "Test",
		LastCheckIn:      lastCheckIn,
		CheckInFrequency: models.CheckInFrequencyMonthly,
		IsActive:         true,
	}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}

func createAPITestNote(t *testing.T, database *gorm.DB, userID uint, status string, trigger string, period string, recipients []models.Recipient) models.Note {
	t.Helper()

	note := models.Note{
		NoteID:          uuid.NewString(),
		UserID:          userID,
		Title:           "Test Note",
		Content:         `{"textNote":"hello","sensitiveInfo":"","attachments":[]}`,
		Status:          status,
		Recipients:      recipients,
		DeliveryTrigger: trigger,
		CheckInPeriod:   period,
		Priority:        models.PriorityMedium,
	}
	if err := database.Create(&note).Error; err != nil {
		t.Fatalf("create test note: %v", err)
	}
	return note
}

func apiDaysAgo(days int) *time.Time {
	moment := time.Now().Add(-time.Duration(days)*24*time.Hour - time.Hour)
	return &moment
}
