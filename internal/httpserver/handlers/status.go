package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/quill/internal/httpserver/deps"
	"github.com/MrSnakeDoc/quill/internal/persistence"
	"github.com/MrSnakeDoc/quill/internal/query"
	"github.com/MrSnakeDoc/quill/internal/workspace"
)

type statusResponse struct {
	Mode    string                  `json:"mode"`
	Backend string                  `json:"backend"`
	Load    persistence.LoadOutcome `json:"load"`
	Save    workspace.SaveStatus    `json:"save"`
	Counts  query.Counts            `json:"counts"`
}

// Status reports how the workspace was loaded and whether the last save
// reached the backend.
func Status(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outcome := d.Store.Outcome()
		save := d.Store.SaveStatus()

		writeJSON(w, http.StatusOK, statusResponse{
			Mode:    determineMode(outcome, save),
			Backend: d.Backend.BackendName(),
			Load:    outcome,
			Save:    save,
			Counts:  query.CountAll(d.Store.Snapshot()),
		})
	}
}

func determineMode(outcome persistence.LoadOutcome, save workspace.SaveStatus) string {
	switch {
	case save.LastError != "":
		return "degraded" // changes live only in memory
	case outcome.Reset():
		return "reset"
	default:
		return "ok"
	}
}
