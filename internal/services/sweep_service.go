package services

import (
	"context"
	"log"
	"time"

	"github.com/sheelganvir/lastnote/internal/db"
	"github.com/sheelganvir/lastnote/internal/models"
)

// NoteDeliverer performs the actual note delivery. The production
// wiring calls the internal delivery endpoint over HTTP; tests wire
// the delivery service directly.
type NoteDeliverer interface {
	DeliverNote(ctx context.Context, note models.Note, owner models.User) error
}

type DeliveryReportEntry struct {
	NoteID           string `json:"noteId"`
	UserID           uint   `json:"userId"`
	Status           string `json:"status"`
	DaysSinceCheckIn int    `json:"daysSinceCheckIn"`
}

type ReminderReportEntry struct {
	UserID        uint   `json:"userId"`
	Email         string `json:"email"`
	DaysRemaining int    `json:"daysRemaining"`
	Status        string `json:"status"`
}

// SweepReport aggregates one full pass: which notes were delivered
// and which users were reminded. Failed items are simply absent; they
// get re-evaluated on the next scheduled sweep.
type SweepReport struct {
	UsersProcessed int                   `json:"usersProcessed"`
	Deliveries     []DeliveryReportEntry `json:"deliveries"`
	Reminders      []ReminderReportEntry `json:"reminders"`
}

// SweepService runs one evaluation pass over all active users and
// their undelivered notes. It owns no schedule and keeps no state
// between invocations; an external scheduler triggers each run.
type SweepService struct {
	users     *db.UserRepository
	notes     *db.NoteRepository
	deliverer NoteDeliverer
	reminders *ReminderService
	now       func() time.Time
}

func NewSweepService(users *db.UserRepository, notes *db.NoteRepository, deliverer NoteDeliverer, reminders *ReminderService) *SweepService {
	return &SweepService{
		users:     users,
		notes:     notes,
		deliverer: deliverer,
		reminders: reminders,
		now:       time.Now,
	}
}

// WithNow overrides the sweep clock.
func (service *SweepService) WithNow(now func() time.Time) *SweepService {
	service.now = now
	return service
}

// Run performs one sweep. Only a failure to list the candidate users
// aborts the pass; every per-note and per-user dispatch failure is
// logged and skipped so one bad item cannot starve the rest.
func (service *SweepService) Run(ctx context.Context) (SweepReport, error) {
	users, err := service.users.ListActiveWithCheckIn()
	if err != nil {
		return SweepReport{}, err
	}

	report := SweepReport{
		UsersProcessed: len(users),
		Deliveries:     make([]DeliveryReportEntry, 0),
		Reminders:      make([]ReminderReportEntry, 0),
	}

	now := service.now()
	for _, user := range users {
		if user.LastCheckIn == nil {
			continue
		}
		daysSinceCheckIn := DaysSinceCheckIn(now, *user.LastCheckIn)

		notes, err := service.notes.ListDeliverable(user.ID)
		if err != nil {
			log.Printf("sweep: list notes for user %d failed: %v", user.ID, err)
			continue
		}

		for _, note := range notes {
			decision := EvaluateNote(daysSinceCheckIn, note.CheckInPeriod, note.DeliveryTrigger)
			switch decision.Action {
			case ActionDeliver:
				if err := service.deliverer.DeliverNote(ctx, note, user); err != nil {
					log.Printf("sweep: deliver note %s failed: %v", note.NoteID, err)
					continue
				}
				report.Deliveries = append(report.Deliveries, DeliveryReportEntry{
					NoteID:           note.NoteID,
					UserID:           user.ID,
					Status:           "delivered",
					DaysSinceCheckIn: daysSinceCheckIn,
				})
			case ActionRemind:
				// One reminder per note, not deduplicated across a
				// user's notes.
				if err := service.reminders.RemindUser(ctx, user, decision.DaysRemaining); err != nil {
					log.Printf("sweep: remind user %d failed: %v", user.ID, err)
					continue
				}
				report.Reminders = append(report.Reminders, ReminderReportEntry{
					UserID:        user.ID,
					Email:         user.Email,
					DaysRemaining: decision.DaysRemaining,
					Status:        "sent",
				})
			}
		}
	}

	return report, nil
}
