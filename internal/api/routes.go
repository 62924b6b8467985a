package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	// Secured by bearer secrets rather than user auth.
	api.Post("/check-deliveries", handler.CheckDeliveries)
	api.Post("/send-note-email", handler.SendNoteEmail)

	api.Post("/check-in", handler.AuthRequired, handler.CheckIn)

	user := api.Group("/user", handler.AuthRequired)
	user.Post("/sync", handler.SyncUser)
	user.Put("/sync", handler.UpsertUser)

	notes := api.Group("/notes", handler.AuthRequired)
	notes.Get("", handler.ListNotes)
	notes.Post("", handler.CreateNote)
	notes.Get("/:id", handler.GetNote)
	notes.Put("/:id", handler.UpdateNote)
	notes.Delete("/:id", handler.DeleteNote)
}
