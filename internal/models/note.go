package models

import "time"

const (
	NoteStatusDraft     = "draft"
	NoteStatusSaved     = "saved"
	NoteStatusDelivered = "delivered"
)

const (
	DeliveryTriggerManual    = "manual"
	DeliveryTriggerAutomatic = "automatic"
	DeliveryTriggerScheduled = "scheduled"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

const (
	// CheckInPeriodMinute is a test escape hatch meaning "immediate".
	CheckInPeriodMinute = "1 minute"
	CheckInPeriod30Days = "30 days"
	CheckInPeriod60Days = "60 days"
	CheckInPeriod90Days = "90 days"

	DefaultCheckInPeriod = CheckInPeriod60Days
)

type Recipient struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Relationship string `json:"relationship,omitempty"`
}

type FailedRecipient struct {
	Email string `json:"email"`
	Error string `json:"error"`
}

type DeliveryResults struct {
	Successful      []string          `json:"successful"`
	Failed          []FailedRecipient `json:"failed"`
	TotalRecipients int               `json:"totalRecipients"`
}

// Note belongs to exactly one user; UserID is immutable after
// creation. Content is an opaque serialized blob assembled by the
// editor (text, sensitive text, attachment metadata).
type Note struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	NoteID          string           `gorm:"uniqueIndex;not null" json:"noteId"`
	UserID          uint             `gorm:"index;not null" json:"userId"`
	Title           string           `gorm:"not null" json:"title"`
	Content         string           `json:"content,omitempty"`
	Status          string           `gorm:"not null;default:draft" json:"status"`
	Recipients      []Recipient      `gorm:"serializer:json" json:"recipients"`
	DeliveryTrigger string           `gorm:"not null;default:automatic" json:"deliveryTrigger"`
	CheckInPeriod   string           `gorm:"not null;default:60 days" json:"checkInPeriod"`
	Priority        string           `gorm:"not null;default:medium" json:"priority"`
	IsDelivered     bool             `gorm:"not null;default:false" json:"isDelivered"`
	DeliveredAt     *time.Time       `json:"deliveredAt,omitempty"`
	DeliveryResults *DeliveryResults `gorm:"serializer:json" json:"deliveryResults,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

func ValidNoteStatus(status string) bool {
	switch status {
	case NoteStatusDraft, NoteStatusSaved, NoteStatusDelivered:
		return true
	default:
		return false
	}
}

func ValidDeliveryTrigger(trigger string) bool {
	switch trigger {
	case DeliveryTriggerManual, DeliveryTriggerAutomatic, DeliveryTriggerScheduled:
		return true
	default:
		return false
	}
}

func ValidPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}
