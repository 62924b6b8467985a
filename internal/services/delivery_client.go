package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sheelganvir/lastnote/internal/models"
)

// HTTPNoteDeliverer triggers delivery through the internal delivery
// endpoint, the same path a user-initiated "send now" takes, so both
// callers share one delivery implementation.
type HTTPNoteDeliverer struct {
	baseURL        string
	internalSecret string
	client         *http.Client
}

func NewHTTPNoteDeliverer(baseURL string, internalSecret string) *HTTPNoteDeliverer {
	return &HTTPNoteDeliverer{
		baseURL:        strings.TrimRight(baseURL, "/"),
		internalSecret: internalSecret,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type internalDeliveryRequest struct {
	NoteID     string             `json:"noteId"`
	Recipients []models.Recipient `json:"recipients"`
	NoteURL    string             `json:"noteUrl"`
	Internal   bool               `json:"internal"`
}

func (deliverer *HTTPNoteDeliverer) DeliverNote(ctx context.Context, note models.Note, owner models.User) error {
	recipients := note.Recipients
	if recipients == nil {
		recipients = make([]models.Recipient, 0)
	}

	payload, err := json.Marshal(internalDeliveryRequest{
		NoteID:     note.NoteID,
		Recipients: recipients,
		NoteURL:    deliverer.baseURL + "/view-note/" + note.NoteID,
		Internal:   true,
	})
	if err != nil {
		return fmt.Errorf("encode delivery payload: %w", err)
	}

	endpoint := deliverer.baseURL + "/api/send-note-email"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build delivery request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+deliverer.internalSecret)

	resp, err := deliverer.client.Do(req)
	if err != nil {
		return fmt.Errorf("delivery request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("delivery endpoint status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
