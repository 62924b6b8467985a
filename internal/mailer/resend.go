package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sheelganvir/lastnote/internal/config"
)

// ResendClient sends mail through a Resend-compatible HTTP API.
type ResendClient struct {
	apiKey    string
	apiBase   string
	fromEmail string
	fromName  string
	client    *http.Client
}

func NewResendClient(cfg config.EmailConfig) *ResendClient {
	return &ResendClient{
		apiKey:    cfg.APIKey,
		apiBase:   strings.TrimRight(cfg.APIBase, "/"),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		client: &http.Client{
			Timeout: 8 * time.Second,
		},
	}
}

func (client *ResendClient) SendNoteDelivery(ctx context.Context, email DeliveryEmail) (string, error) {
	relationship := ""
	if email.Recipient.Relationship != "" {
		relationship = fmt.Sprintf(" (%s)", email.Recipient.Relationship)
	}

	subject := fmt.Sprintf("You've received a note from %s", email.SenderName)
	body := fmt.Sprintf(
		"Hello %s%s,\n\n"+
			"You have received a personal note from %s titled %q.\n"+
			"It was prepared in advance and delivered automatically on %s as %s requested.\n\n"+
			"View your note here: %s\n",
		email.Recipient.Name,
		relationship,
		email.SenderName,
		email.NoteTitle,
		email.DeliveredAt.Format("January 2, 2006 15:04"),
		email.SenderName,
		email.NoteURL,
	)

	return client.send(ctx, email.Recipient.Email, subject, body)
}

func (client *ResendClient) SendCheckInReminder(ctx context.Context, email ReminderEmail) (string, error) {
	dayWord := "days"
	if email.DaysRemaining == 1 {
		dayWord = "day"
	}

	subject := fmt.Sprintf("Check-in reminder - %d %s remaining", email.DaysRemaining, dayWord)
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"You have %d %s left to check in. If you don't, your notes will be "+
			"delivered automatically to your designated recipients.\n\n"+
			"Check in now: %s\n",
		email.UserName,
		email.DaysRemaining,
		dayWord,
		email.CheckInURL,
	)

	return client.send(ctx, email.UserEmail, subject, body)
}

type sendMailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

type sendMailResponse struct {
	ID string `json:"id"`
}

func (client *ResendClient) send(ctx context.Context, to string, subject string, text string) (string, error) {
	payload, err := json.Marshal(sendMailRequest{
		From:    fmt.Sprintf("%s <%s>", client.fromName, client.fromEmail),
		To:      []string{to},
		Subject: subject,
		Text:    text,
	})
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}

	endpoint := client.apiBase + "/emails"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+client.apiKey)

	resp, err := client.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("email provider status %d: %s", resp.StatusCode, string(body))
	}

	var parsed sendMailResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return parsed.ID, nil
}
