package models

import (
	"strings"
	"time"
)

const (
	CheckInFrequencyMonthly   = "monthly"
	CheckInFrequencyQuarterly = "quarterly"
	CheckInFrequencyAnnually  = "annually"
)

// User is created on first authenticated sync with the external
// identity provider. SubjectID is the provider's opaque subject id.
type User struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	SubjectID        string     `gorm:"uniqueIndex;not null" json:"-"`
	Email            string     `gorm:"not null" json:"email"`
	FirstName        string     `json:"firstName,omitempty"`
	LastName         string     `json:"lastName,omitempty"`
	LastCheckIn      *time.Time `json:"lastCheckIn,omitempty"`
	CheckInFrequency string     `gorm:"not null;default:monthly" json:"checkInFrequency"`
	IsActive         bool       `gorm:"not null;default:true" json:"isActive"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func ValidCheckInFrequency(frequency string) bool {
	switch frequency {
	case CheckInFrequencyMonthly, CheckInFrequencyQuarterly, CheckInFrequencyAnnually:
		return true
	default:
		return false
	}
}

// DisplayName is the sender name used in outgoing emails: first name
// plus last name when present, otherwise the local part of the email.
func (user User) DisplayName() string {
	if strings.TrimSpace(user.FirstName) != "" {
		return strings.TrimSpace(user.FirstName + " " + user.LastName)
	}
	if local, _, found := strings.Cut(user.Email, "@"); found && local != "" {
		return local
	}
	return user.Email
}
