package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/quill/internal/httpserver/deps"
	"github.com/MrSnakeDoc/quill/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/quill/internal/httpserver/mw"
)

func init() { Register(registerHealth) }

func registerHealth(r chi.Router, d deps.Deps) {
	probe := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
	probe.Get("/healthz", handlers.Healthz(d))
	probe.Get("/readyz", handlers.Readyz(d))

	probe.With(mw.EnforceHost(d.AllowedHosts, d.Logger)).Get("/api/status", handlers.Status(d))
}
