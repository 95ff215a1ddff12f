package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/quill/internal/httpserver/deps"
	"github.com/MrSnakeDoc/quill/internal/httpserver/handlers"
)

func init() { Register(registerNotes) }

func registerNotes(r chi.Router, d deps.Deps) {
	api(r, d, false).Get("/api/notes", handlers.ListNotes(d))

	w := api(r, d, true)
	w.Post("/api/notes", handlers.CreateNote(d))
	w.Patch("/api/notes/{id}", handlers.UpdateNote(d))
	w.Post("/api/notes/{id}/pin", handlers.TogglePin(d))
	w.Delete("/api/notes/{id}", handlers.TrashNote(d))
}
