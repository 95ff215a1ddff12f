package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/quill/internal/httpserver/deps"
	"github.com/MrSnakeDoc/quill/internal/httpserver/handlers"
)

func init() { Register(registerWorkspace) }

func registerWorkspace(r chi.Router, d deps.Deps) {
	api(r, d, false).Get("/api/workspace", handlers.Workspace(d))

	w := api(r, d, true)
	w.Put("/api/background", handlers.SetBackground(d))
	w.Delete("/api/background", handlers.ResetBackground(d))
	w.Put("/api/profile", handlers.UpdateProfile(d))
}
