package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/quill/internal/domain"
	"github.com/MrSnakeDoc/quill/internal/httpserver/deps"
)

func EmptyTrash(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := d.Store.EmptyTrash(r.Context())
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

type backgroundRequest struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type backgroundResponse struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func SetBackground(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req backgroundRequest
		if err := decodeJSON(w, r, d.MaxBodyBytes, &req); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		if err := d.Store.SetBackground(r.Context(), req.Type, req.Value); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeBackground(w, d)
	}
}

func ResetBackground(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Store.ResetBackground(r.Context()); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeBackground(w, d)
	}
}

func writeBackground(w http.ResponseWriter, d deps.Deps) {
	ws := d.Store.Snapshot()
	writeJSON(w, http.StatusOK, backgroundResponse{Type: ws.BackgroundType, Value: ws.BackgroundValue})
}

func UpdateProfile(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.Profile
		if err := decodeJSON(w, r, d.MaxBodyBytes, &req); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		p, err := d.Store.UpdateProfile(r.Context(), req)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}
