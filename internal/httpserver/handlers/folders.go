package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/quill/internal/httpserver/deps"
	"github.com/MrSnakeDoc/quill/internal/query"
)

type foldersResponse struct {
	Folders []query.FolderView `json:"folders"`
}

// ListFolders returns live folders, or trashed ones with scope=trash,
// filtered by q against name and tags.
func ListFolders(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()
		q := query.Parse(params.Get("scope"), "", params.Get("q"))
		writeJSON(w, http.StatusOK, foldersResponse{Folders: query.Folders(d.Store.Snapshot(), q)})
	}
}

type folderRequest struct {
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

func CreateFolder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req folderRequest
		if err := decodeJSON(w, r, d.MaxBodyBytes, &req); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		f, err := d.Store.CreateFolder(r.Context(), req.Name, req.Tags)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, f)
	}
}

func RenameFolder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req folderRequest
		if err := decodeJSON(w, r, d.MaxBodyBytes, &req); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		f, err := d.Store.RenameFolder(r.Context(), chi.URLParam(r, "id"), req.Name, req.Tags)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, f)
	}
}

type movedResponse struct {
	Notes int `json:"notes"`
}

func TrashFolder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := d.Store.TrashFolder(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, movedResponse{Notes: n})
	}
}

func RestoreFolder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := d.Store.RestoreFolder(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, movedResponse{Notes: n})
	}
}

func PurgeFolder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Store.PurgeFolder(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
