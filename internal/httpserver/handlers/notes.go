package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/quill/internal/domain"
	"github.com/MrSnakeDoc/quill/internal/httpserver/deps"
	"github.com/MrSnakeDoc/quill/internal/query"
	"github.com/MrSnakeDoc/quill/internal/workspace"
)

type notesResponse struct {
	Notes  []query.NoteView `json:"notes"`
	Counts query.Counts     `json:"counts"`
}

// ListNotes runs the query engine over the current snapshot.
// Params: scope (all|trash|<folder id>), tab (all|pinned), q, today (YYYY-MM-DD).
func ListNotes(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()
		q := query.Parse(params.Get("scope"), params.Get("tab"), params.Get("q"))

		today := domain.DateOf(d.Now())
		if s := strings.TrimSpace(params.Get("today")); s != "" {
			t, err := domain.ParseDate(s)
			if err != nil {
				writeError(w, d.Logger, err)
				return
			}
			today = t
		}

		ws := d.Store.Snapshot()
		writeJSON(w, http.StatusOK, notesResponse{
			Notes:  query.Notes(ws, q, today),
			Counts: query.CountAll(ws),
		})
	}
}

type createNoteRequest struct {
	FolderID *string `json:"folderId"`
}

func CreateNote(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createNoteRequest
		if err := decodeOptionalJSON(w, r, d.MaxBodyBytes, &req); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		n, err := d.Store.CreateNote(r.Context(), req.FolderID)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, n)
	}
}

type updateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Pinned  *bool   `json:"pinned"`

	// null or "" unfiles the note.
	FolderID nullable[string] `json:"folderId"`
	// null clears the due date.
	DueDate nullable[domain.Date] `json:"dueDate"`
}

func (req updateNoteRequest) toUpdate() workspace.NoteUpdate {
	u := workspace.NoteUpdate{
		Title:   req.Title,
		Content: req.Content,
		Pinned:  req.Pinned,
	}
	if req.FolderID.Set {
		if req.FolderID.Value == nil || *req.FolderID.Value == "" {
			u.ClearFolder = true
		} else {
			u.FolderID = req.FolderID.Value
		}
	}
	if req.DueDate.Set {
		if req.DueDate.Value == nil {
			u.ClearDueDate = true
		} else {
			u.DueDate = req.DueDate.Value
		}
	}
	return u
}

func UpdateNote(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateNoteRequest
		if err := decodeJSON(w, r, d.MaxBodyBytes, &req); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		n, err := d.Store.UpdateNote(r.Context(), chi.URLParam(r, "id"), req.toUpdate())
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, n)
	}
}

func TogglePin(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := d.Store.TogglePin(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, n)
	}
}

func TrashNote(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Store.TrashNote(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func RestoreNote(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := d.Store.RestoreNote(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, n)
	}
}

func PurgeNote(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Store.PurgeNote(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
