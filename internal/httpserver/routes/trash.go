package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/quill/internal/httpserver/deps"
	"github.com/MrSnakeDoc/quill/internal/httpserver/handlers"
)

func init() { Register(registerTrash) }

func registerTrash(r chi.Router, d deps.Deps) {
	w := api(r, d, true)
	w.Post("/api/trash/folders/{id}/restore", handlers.RestoreFolder(d))
	w.Delete("/api/trash/folders/{id}", handlers.PurgeFolder(d))
	w.Post("/api/trash/notes/{id}/restore", handlers.RestoreNote(d))
	w.Delete("/api/trash/notes/{id}", handlers.PurgeNote(d))
	w.Delete("/api/trash", handlers.EmptyTrash(d))
}
