package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sheelganvir/lastnote/internal/api"
	"github.com/sheelganvir/lastnote/internal/config"
	"github.com/sheelganvir/lastnote/internal/db"
	"github.com/sheelganvir/lastnote/internal/mailer"
	"github.com/sheelganvir/lastnote/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	database, err := db.OpenSQLite(cfg.Database.Path)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	mail := mailer.NewResendClient(cfg.Email)

	// The sweep delivers through the internal endpoint so scheduled
	// and user-initiated sends share one code path.
	deliverer := services.NewHTTPNoteDeliverer(cfg.Server.AppBaseURL, cfg.Sweep.InternalSecret)
	handler := api.NewHandler(database, cfg, mail, deliverer)

	app := fiber.New(fiber.Config{
		AppName:               "lastnote",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("lastnote listening on http://%s (db: %s)", address, cfg.Database.Path)
	if err := app.Listen(address); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
