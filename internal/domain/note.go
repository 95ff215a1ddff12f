package domain

import (
	"strings"
	"time"
)

const (
	// UntitledNote replaces empty or whitespace-only titles.
	UntitledNote = "Untitled Note"
	// EmptyContent is the placeholder body of a freshly created note.
	EmptyContent = "<p><br></p>"
)

// Note is a single rich-text note. Content is opaque HTML owned by the editor.
type Note struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	ID string `json:"id"`

	// ─────────────────────────────
	// User-editable fields
	// ─────────────────────────────

	Title   string `json:"title"`
	Content string `json:"content"`

	// FolderID references a live or trashed folder; nil means unfiled.
	// It is kept while the note is in trash so restores can be targeted,
	// and cleared when the referenced folder is purged.
	FolderID *string `json:"folderId"`

	Pinned  bool  `json:"pinned"`
	DueDate *Date `json:"dueDate"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is bumped on every content mutation.
	UpdatedAt time.Time `json:"date"`

	// TrashedAt is set while the note sits in trash.
	TrashedAt *time.Time `json:"trashedAt,omitempty"`
}

// InFolder reports whether the note is filed under folderID.
func (n Note) InFolder(folderID string) bool {
	return n.FolderID != nil && *n.FolderID == folderID
}

// Clone returns a deep copy.
func (n Note) Clone() Note {
	out := n
	if n.FolderID != nil {
		id := *n.FolderID
		out.FolderID = &id
	}
	if n.DueDate != nil {
		d := *n.DueDate
		out.DueDate = &d
	}
	if n.TrashedAt != nil {
		t := *n.TrashedAt
		out.TrashedAt = &t
	}
	return out
}

// NormalizeTitle applies the "Untitled Note" placeholder.
func NormalizeTitle(title string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	return UntitledNote
}
