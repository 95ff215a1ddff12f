package domain

import (
	"strings"
	"time"
)

// Folder groups notes under a user-chosen name.
//
// A Folder lives either in Workspace.Folders or in Workspace.Trash.Folders,
// never both. Its name is unique across the union of the two.
type Folder struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier.
	// Example: folder-1718000000000-1a2b3c4d
	ID string `json:"id"`

	// ─────────────────────────────
	// User-editable fields
	// ─────────────────────────────

	// Name is trimmed and non-empty.
	Name string `json:"name"`

	// Tags are trimmed, never empty strings, order preserved.
	Tags []string `json:"tags"`

	// ─────────────────────────────
	// Trash bookkeeping
	// ─────────────────────────────

	// TrashedAt is set while the folder sits in trash.
	TrashedAt *time.Time `json:"trashedAt,omitempty"`
}

// Clone returns a deep copy.
func (f Folder) Clone() Folder {
	out := f
	out.Tags = append([]string{}, f.Tags...)
	if f.TrashedAt != nil {
		t := *f.TrashedAt
		out.TrashedAt = &t
	}
	return out
}

// CleanTags trims tags and drops empty ones, always returning a non-nil slice.
func CleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
