package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/quill/internal/httpserver/deps"
	"github.com/MrSnakeDoc/quill/internal/logger"
)

const pingTimeout = 2 * time.Second

type readyzResponse struct {
	Ready   bool   `json:"ready"`
	Backend string `json:"backend"`
	Error   string `json:"error,omitempty"`
}

// Readyz reports ready only while the storage backend answers a ping.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		resp := readyzResponse{Ready: true, Backend: d.Backend.BackendName()}
		if err := d.Backend.Ping(ctx); err != nil {
			d.Logger.Warn("readiness ping failed",
				logger.String("backend", resp.Backend),
				logger.Error(err))
			resp.Ready = false
			resp.Error = err.Error()
			writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
