package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MrSnakeDoc/quill/internal/domain"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: note n1", domain.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: folder %q", domain.ErrDuplicateName, "Work"), http.StatusConflict},
		{domain.ErrInvalidInput, http.StatusBadRequest},
		{fmt.Errorf("%w: create note: redis down", domain.ErrSaveFailed), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestUpdateNoteRequest(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		clearFolder  bool
		folderID     string
		clearDueDate bool
		dueDate      string
	}{
		{name: "absent fields", body: `{"title":"x"}`},
		{name: "null folder", body: `{"folderId":null}`, clearFolder: true},
		{name: "empty folder", body: `{"folderId":""}`, clearFolder: true},
		{name: "move folder", body: `{"folderId":"f-1"}`, folderID: "f-1"},
		{name: "null due date", body: `{"dueDate":null}`, clearDueDate: true},
		{name: "set due date", body: `{"dueDate":"2024-01-10"}`, dueDate: "2024-01-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req updateNoteRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			u := req.toUpdate()

			if u.ClearFolder != tt.clearFolder {
				t.Errorf("ClearFolder = %v, want %v", u.ClearFolder, tt.clearFolder)
			}
			if got := deref(u.FolderID); got != tt.folderID {
				t.Errorf("FolderID = %q, want %q", got, tt.folderID)
			}
			if u.ClearDueDate != tt.clearDueDate {
				t.Errorf("ClearDueDate = %v, want %v", u.ClearDueDate, tt.clearDueDate)
			}
			gotDue := ""
			if u.DueDate != nil {
				gotDue = u.DueDate.String()
			}
			if gotDue != tt.dueDate {
				t.Errorf("DueDate = %q, want %q", gotDue, tt.dueDate)
			}
		})
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		max     int64
		wantErr bool
	}{
		{"valid", `{"name":"Work"}`, 0, false},
		{"empty body", ``, 0, true},
		{"malformed", `{"name":`, 0, true},
		{"unknown field", `{"nam":"Work"}`, 0, true},
		{"too large", `{"name":"` + strings.Repeat("a", 64) + `"}`, 16, true},
		{"inline image under default cap", `{"name":"data:image/png;base64,` + strings.Repeat("A", 8<<20) + `"}`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/folders", strings.NewReader(tt.body))
			var dst folderRequest
			err := decodeJSON(httptest.NewRecorder(), r, tt.max, &dst)
			if (err != nil) != tt.wantErr {
				t.Fatalf("decodeJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("decodeJSON() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}
