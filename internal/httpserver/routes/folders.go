package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/quill/internal/httpserver/deps"
	"github.com/MrSnakeDoc/quill/internal/httpserver/handlers"
)

func init() { Register(registerFolders) }

func registerFolders(r chi.Router, d deps.Deps) {
	api(r, d, false).Get("/api/folders", handlers.ListFolders(d))

	w := api(r, d, true)
	w.Post("/api/folders", handlers.CreateFolder(d))
	w.Put("/api/folders/{id}", handlers.RenameFolder(d))
	w.Delete("/api/folders/{id}", handlers.TrashFolder(d))
}
