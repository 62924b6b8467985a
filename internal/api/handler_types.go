package api

import (
	"github.com/sheelganvir/lastnote/internal/config"
	"github.com/sheelganvir/lastnote/internal/db"
	"github.com/sheelganvir/lastnote/internal/mailer"
	"github.com/sheelganvir/lastnote/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	db             *gorm.DB
	repositories   *db.Repositories
	authSecret     []byte
	cronSecret     string
	internalSecret string
	delivery       *services.DeliveryService
	sweep          *services.SweepService
}

// NewHandler wires the handler's dependencies. A nil deliverer means
// the sweep calls the delivery service in-process instead of going
// through the internal HTTP endpoint.
func NewHandler(database *gorm.DB, cfg *config.Config, mail mailer.Mailer, deliverer services.NoteDeliverer) *Handler {
	repositories := db.NewRepositories(database)

	delivery := services.NewDeliveryService(repositories.Notes, repositories.DeliveryLogs, mail, cfg.Server.AppBaseURL)
	reminders := services.NewReminderService(mail, cfg.Server.AppBaseURL)
	if deliverer == nil {
		deliverer = delivery
	}
	sweep := services.NewSweepService(repositories.Users, repositories.Notes, deliverer, reminders)

	return &Handler{
		db:             database,
		repositories:   repositories,
		authSecret:     []byte(cfg.Auth.JWTSecret),
		cronSecret:     cfg.Sweep.CronSecret,
		internalSecret: cfg.Sweep.InternalSecret,
		delivery:       delivery,
		sweep:          sweep,
	}
}
