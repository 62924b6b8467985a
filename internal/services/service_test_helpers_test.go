package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sheelganvir/lastnote/internal/db"
	"github.com/sheelganvir/lastnote/internal/models"
	"gorm.io/gorm"
)

func newTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "lastnote-services-test.db")
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
	return database
}

func daysAgo(days int) *time.Time {
	moment := time.Now().Add(-time.Duration(days)*24*time.Hour - time.Hour)
	return &moment
}

func secondsAgo(seconds int) *time.Time {
	moment := time.Now().Add(-time.Duration(seconds) * time.Second)
	return &moment
}

func createTestUser(t *testing.T, database *gorm.DB, email string, lastCheckIn *time.Time) models.User {
	t.Helper()

	user := models.User{
		SubjectID:        "subject-" + uuid.NewString(),
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

func createTestNote(t *testing.T, database *gorm.DB, userID uint, status string, trigger string, period string, recipients []models.Recipient) models.Note {
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
