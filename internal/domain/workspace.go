package domain

import (
	"net/url"
	"strings"
)

// SchemaVersion tags persisted workspaces. Stored blobs with any other
// version are not migrated; they are replaced by a fresh workspace.
const SchemaVersion = 2

// Background kinds.
const (
	BackgroundColor = "color"
	BackgroundImage = "image"

	DefaultBackgroundValue = "#121212"
)

// Profile defaults.
const (
	DefaultProfileName = "Guest User"
	DefaultProfileRole = "Note Taker"
)

// Trash holds soft-deleted folders and notes, disjoint from the live collections.
type Trash struct {
	Folders []Folder `json:"folders"`
	Notes   []Note   `json:"notes"`
}

// Profile is the user card shown next to the workspace.
type Profile struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
	Bio    string `json:"bio"`
}

// Workspace is the aggregate root: everything one user owns, persisted as one blob.
type Workspace struct {
	Folders         []Folder `json:"folders"`
	Notes           []Note   `json:"notes"`
	Trash           Trash    `json:"trash"`
	BackgroundType  string   `json:"backgroundType"`
	BackgroundValue string   `json:"backgroundValue"`
	Profile         Profile  `json:"profile"`
	Version         int      `json:"version"`
}

// NewWorkspace returns the empty default workspace.
func NewWorkspace() *Workspace {
	return &Workspace{
		Folders:         []Folder{},
		Notes:           []Note{},
		Trash:           Trash{Folders: []Folder{}, Notes: []Note{}},
		BackgroundType:  BackgroundColor,
		BackgroundValue: DefaultBackgroundValue,
		Profile:         DefaultProfile(),
		Version:         SchemaVersion,
	}
}

// DefaultProfile returns the guest profile.
func DefaultProfile() Profile {
	return Profile{
		Name:   DefaultProfileName,
		Role:   DefaultProfileRole,
		Avatar: AvatarURL("Guest"),
	}
}

// AvatarURL builds a generated avatar for a display name.
func AvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(strings.TrimSpace(name)) + "&background=bb86fc&color=fff"
}

// Normalize replaces nil collections with empty ones so that encoded
// workspaces never carry nulls where arrays are expected.
func (w *Workspace) Normalize() {
	if w.Folders == nil {
		w.Folders = []Folder{}
	}
	if w.Notes == nil {
		w.Notes = []Note{}
	}
	if w.Trash.Folders == nil {
		w.Trash.Folders = []Folder{}
	}
	if w.Trash.Notes == nil {
		w.Trash.Notes = []Note{}
	}
	if w.BackgroundType == "" {
		w.BackgroundType, w.BackgroundValue = BackgroundColor, DefaultBackgroundValue
	}
	if w.Profile == (Profile{}) {
		w.Profile = DefaultProfile()
	}
	for i := range w.Folders {
		w.Folders[i].Tags = CleanTags(w.Folders[i].Tags)
	}
	for i := range w.Trash.Folders {
		w.Trash.Folders[i].Tags = CleanTags(w.Trash.Folders[i].Tags)
	}
}

// Clone returns a deep copy safe to hand to readers.
func (w *Workspace) Clone() *Workspace {
	out := *w
	out.Folders = cloneFolders(w.Folders)
	out.Notes = cloneNotes(w.Notes)
	out.Trash = Trash{
		Folders: cloneFolders(w.Trash.Folders),
		Notes:   cloneNotes(w.Trash.Notes),
	}
	return &out
}

// FindFolder returns the index of a live folder, or -1.
func (w *Workspace) FindFolder(id string) int {
	return indexFolder(w.Folders, id)
}

// FindTrashedFolder returns the index of a trashed folder, or -1.
func (w *Workspace) FindTrashedFolder(id string) int {
	return indexFolder(w.Trash.Folders, id)
}

// FindNote returns the index of a live note, or -1.
func (w *Workspace) FindNote(id string) int {
	return indexNote(w.Notes, id)
}

// FindTrashedNote returns the index of a trashed note, or -1.
func (w *Workspace) FindTrashedNote(id string) int {
	return indexNote(w.Trash.Notes, id)
}

// FolderName resolves a folder id against live then trashed folders.
func (w *Workspace) FolderName(id string) (string, bool) {
	if i := w.FindFolder(id); i >= 0 {
		return w.Folders[i].Name, true
	}
	if i := w.FindTrashedFolder(id); i >= 0 {
		return w.Trash.Folders[i].Name, true
	}
	return "", false
}

// NameTaken reports whether name is used by any live or trashed folder
// other than the one identified by exceptID.
func (w *Workspace) NameTaken(name, exceptID string) bool {
	for _, f := range w.Folders {
		if f.Name == name && f.ID != exceptID {
			return true
		}
	}
	for _, f := range w.Trash.Folders {
		if f.Name == name && f.ID != exceptID {
			return true
		}
	}
	return false
}

func indexFolder(folders []Folder, id string) int {
	for i := range folders {
		if folders[i].ID == id {
			return i
		}
	}
	return -1
}

func indexNote(notes []Note, id string) int {
	for i := range notes {
		if notes[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneFolders(in []Folder) []Folder {
	out := make([]Folder, len(in))
	for i, f := range in {
		out[i] = f.Clone()
	}
	return out
}

func cloneNotes(in []Note) []Note {
	out := make([]Note, len(in))
	for i, n := range in {
		out[i] = n.Clone()
	}
	return out
}
