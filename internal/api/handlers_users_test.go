package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/sheelganvir/lastnote/internal/models"
)

func TestCheckInRejectsMissingToken(t *testing.T) {
	app, _, _ := newTestApp(t)

	response := jsonRequest(t, app, http.MethodPost, "/api/check-in", "", nil)
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", response.StatusCode)
	}
	if body := decodeBody(t, response); body["error"] != "Unauthorized" {
		t.Fatalf("unexpected error payload: %v", body)
	}
}

func TestCheckInRejectsTokenSignedWithWrongSecret(t *testing.T) {
	app, _, _ := newTestApp(t)

	// Signed with an unrelated secret; signature verification must fail.
	forged := "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
		"eyJzdWIiOiJzb21lb25lIn0." +
		"x1GzGzr0cHmCO9zO0YuUfFv1mPQZQm9bWqrPF0t4hVY"

	response := jsonRequest(t, app, http.MethodPost, "/api/check-in", forged, nil)
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", response.StatusCode)
	}
}

func TestCheckInUpdatesLastCheckIn(t *testing.T) {
	app, database, _ := newTestApp(t)
	createAPITestUser(t, database, "subject-1", "alice@example.com", apiDaysAgo(40))

	response := jsonRequest(t, app, http.MethodPost, "/api/check-in", signSubjectToken(t, "subject-1"), nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
	body := decodeBody(t, response)
	if body["success"] != true || body["message"] != "Check-in successful" {
		t.Fatalf("unexpected payload: %v", body)
	}
	if body["lastCheckIn"] == nil {
		t.Fatal("expected lastCheckIn in response")
	}

	var stored models.User
	if err := database.Where("subject_id = ?", "subject-1").First(&stored).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if stored.LastCheckIn == nil || time.Since(*stored.LastCheckIn) > time.Minute {
		t.Fatalf("expected a fresh check-in timestamp, got %v", stored.LastCheckIn)
	}
}

func TestCheckInUnknownSubjectReturnsNotFound(t *testing.T) {
	app, _, _ := newTestApp(t)

	response := jsonRequest(t, app, http.MethodPost, "/api/check-in", signSubjectToken(t, "ghost"), nil)
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", response.StatusCode)
	}
}

func TestSyncUserReportsMissingRecord(t *testing.T) {
	app, _, _ := newTestApp(t)

	response := jsonRequest(t, app, http.MethodPost, "/api/user/sync", signSubjectToken(t, "new-subject"), nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
	body := decodeBody(t, response)
	if body["success"] != false || body["needsUserData"] != true {
		t.Fatalf("expected needsUserData signal, got %v", body)
	}
}

func TestSyncUserTouchesExistingRecord(t *testing.T) {
	app, database, _ := newTestApp(t)
	createAPITestUser(t, database, "subject-2", "bob@example.com", apiDaysAgo(10))

	response := jsonRequest(t, app, http.MethodPost, "/api/user/sync", signSubjectToken(t, "subject-2"), nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
	body := decodeBody(t, response)
	if body["success"] != true || body["message"] != "User check-in updated" {
		t.Fatalf("unexpected payload: %v", body)
	}

	var stored models.User
	if err := database.Where("subject_id = ?", "subject-2").First(&stored).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if stored.LastCheckIn == nil || time.Since(*stored.LastCheckIn) > time.Minute {
		t.Fatalf("sync must count as a check-in, got %v", stored.LastCheckIn)
	}
}

func TestUpsertUserCreatesRecordWithDefaults(t *testing.T) {
	app, database, _ := newTestApp(t)

	response := jsonRequest(t, app, http.MethodPut, "/api/user/sync", signSubjectToken(t, "subject-3"), map[string]any{
		"email":     "carol@example.com",
		"firstName": "Carol",
		"lastName":  "Jones",
	})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
	body := decodeBody(t, response)
	if body["success"] != true || body["message"] != "User created successfully" {
		t.Fatalf("unexpected payload: %v", body)
	}

	var stored models.User
	if err := database.Where("subject_id = ?", "subject-3").First(&stored).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if stored.Email != "carol@example.com" || stored.CheckInFrequency != models.CheckInFrequencyMonthly {
		t.Fatalf("unexpected stored user: %+v", stored)
	}
	if !stored.IsActive {
		t.Fatal("new users start active")
	}
}

func TestUpsertUserUpdatesExistingRecord(t *testing.T) {
	app, database, _ := newTestApp(t)
	createAPITestUser(t, database, "subject-4", "old@example.com", nil)

	response := jsonRequest(t, app, http.MethodPut, "/api/user/sync", signSubjectToken(t, "subject-4"), map[string]any{
		"email":            "new@example.com",
		"firstName":        "Dana",
		"checkInFrequency": models.CheckInFrequencyQuarterly,
	})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
	body := decodeBody(t, response)
	if body["message"] != "User updated successfully" {
		t.Fatalf("unexpected payload: %v", body)
	}

	var stored models.User
	if err := database.Where("subject_id = ?", "subject-4").First(&stored).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if stored.Email != "new@example.com" || stored.CheckInFrequency != models.CheckInFrequencyQuarterly {
		t.Fatalf("unexpected stored user: %+v", stored)
	}
	if stored.LastCheckIn == nil {
		t.Fatal("upsert must count as a check-in")
	}
}

func TestUpsertUserValidation(t *testing.T) {
	app, _, _ := newTestApp(t)
	token := signSubjectToken(t, "subject-5")

	response := jsonRequest(t, app, http.MethodPut, "/api/user/sync", token, map[string]any{
		"firstName": "NoEmail",
	})
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing email: expected 400, got %d", response.StatusCode)
	}
	if body := decodeBody(t, response); body["error"] != "Email is required" {
		t.Fatalf("unexpected error payload: %v", body)
	}

	response = jsonRequest(t, app, http.MethodPut, "/api/user/sync", token, map[string]any{
		"email":            "eve@example.com",
		"checkInFrequency": "hourly",
	})
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad frequency: expected 400, got %d", response.StatusCode)
	}
}
