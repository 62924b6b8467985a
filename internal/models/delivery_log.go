package models

import "time"

// DeliveryLogEntry is an append-only audit record of one delivery
// attempt. Entries are never mutated after creation.
type DeliveryLogEntry struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	NoteID      string            `gorm:"index;not null" json:"noteId"`
	UserID      uint              `gorm:"not null" json:"userId"`
	Recipients  []Recipient       `gorm:"serializer:json" json:"recipients"`
	Successful  []string          `gorm:"serializer:json" json:"successful"`
	Failed      []FailedRecipient `gorm:"serializer:json" json:"failed"`
	DeliveredAt time.Time         `gorm:"not null" json:"deliveredAt"`
	CreatedAt   time.Time         `json:"createdAt"`
}
