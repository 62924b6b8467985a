package services

import (
	"strings"
	"time"

	"github.com/sheelganvir/lastnote/internal/models"
)

// remindWindowDays is how long before the deadline reminder emails
// start going out.
const remindWindowDays = 7

const defaultMaxDays = 60

type NoteAction int

const (
	ActionNone NoteAction = iota
	ActionRemind
	ActionDeliver
)

func (action NoteAction) String() string {
	switch action {
	case ActionRemind:
		return "remind"
	case ActionDeliver:
		return "deliver"
	default:
		return "none"
	}
}

// NoteDecision is the evaluator's classification for one note.
// DaysRemaining is meaningful only when Action is ActionRemind.
type NoteDecision struct {
	Action        NoteAction
	DaysRemaining int
}

// PeriodMaxDays maps a symbolic check-in period to its day threshold.
// Unrecognized or absent symbols fall back to 60 days, matching how
// existing note data has always been interpreted.
func PeriodMaxDays(checkInPeriod string) int {
	switch strings.TrimSpace(checkInPeriod) {
	case models.CheckInPeriodMinute:
		return 0
	case models.CheckInPeriod30Days:
		return 30
	case models.CheckInPeriod60Days:
		return 60
	case models.CheckInPeriod90Days:
		return 90
	default:
		return defaultMaxDays
	}
}

// DaysSinceCheckIn floors the elapsed time to whole days and never
// goes negative.
func DaysSinceCheckIn(now time.Time, lastCheckIn time.Time) int {
	days := int(now.Sub(lastCheckIn).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// EvaluateNote classifies one note given how many whole days have
// passed since the owner's last check-in. Delivery takes precedence
// over the remind window, and only automatic notes ever deliver.
// With a zero threshold the remind window is degenerate, so such
// notes classify as deliver or none, never remind.
func EvaluateNote(daysSinceCheckIn int, checkInPeriod string, deliveryTrigger string) NoteDecision {
	maxDays := PeriodMaxDays(checkInPeriod)

	if deliveryTrigger == models.DeliveryTriggerAutomatic && daysSinceCheckIn >= maxDays {
		return NoteDecision{Action: ActionDeliver}
	}

	if daysSinceCheckIn >= maxDays-remindWindowDays && daysSinceCheckIn < maxDays {
		return NoteDecision{
			Action:        ActionRemind,
			DaysRemaining: maxDays - daysSinceCheckIn,
		}
	}

	return NoteDecision{Action: ActionNone}
}
