package query

import (
	"slices"

	"github.com/MrSnakeDoc/quill/internal/domain"
)

// NoteView is a note as displayed in a list.
type NoteView struct {
	domain.Note
	FolderName string          `json:"folderName,omitempty"`
	DueState   domain.DueState `json:"dueState"`
	Preview    string          `json:"preview"`
}

// FolderView is a folder as displayed in the folder browser.
type FolderView struct {
	domain.Folder
	NoteCount int `json:"noteCount"`
}

// Counts are the workspace totals shown on the dashboard.
type Counts struct {
	Notes          int `json:"notes"`
	Pinned         int `json:"pinned"`
	Trashed        int `json:"trashed"`
	Folders        int `json:"folders"`
	TrashedFolders int `json:"trashedFolders"`
}

// Result is everything a view needs to render.
type Result struct {
	Notes   []NoteView   `json:"notes"`
	Folders []FolderView `json:"folders"`
	Counts  Counts       `json:"counts"`
}

// Run evaluates q against ws. It does not modify ws.
func Run(ws *domain.Workspace, q Query, today domain.Date) Result {
	return Result{
		Notes:   Notes(ws, q, today),
		Folders: Folders(ws, q),
		Counts:  CountAll(ws),
	}
}

// Notes returns the visible notes in display order: dated notes first by
// ascending due date, then undated notes most recently modified first.
func Notes(ws *domain.Workspace, q Query, today domain.Date) []NoteView {
	base := ws.Notes
	if q.InTrash() {
		base = ws.Trash.Notes
	}

	folderID, scoped := q.FolderID()
	if scoped && ws.FindFolder(folderID) < 0 {
		return []NoteView{}
	}

	var dated, undated []domain.Note
	for _, n := range base {
		if scoped && !n.InFolder(folderID) {
			continue
		}
		if q.Tab == TabPinned && !q.InTrash() && !n.Pinned {
			continue
		}
		folderName := ""
		if n.FolderID != nil {
			folderName, _ = ws.FolderName(*n.FolderID)
		}
		if !q.matches(n.Title, PlainText(n.Content), folderName) {
			continue
		}
		if n.DueDate != nil {
			dated = append(dated, n)
		} else {
			undated = append(undated, n)
		}
	}

	sortNotes(dated, undated)

	out := make([]NoteView, 0, len(dated)+len(undated))
	for _, n := range slices.Concat(dated, undated) {
		out = append(out, view(ws, n, today))
	}
	return out
}

func sortNotes(dated, undated []domain.Note) {
	slices.SortStableFunc(dated, func(a, b domain.Note) int {
		return a.DueDate.Compare(*b.DueDate)
	})
	slices.SortStableFunc(undated, func(a, b domain.Note) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
}

func view(ws *domain.Workspace, n domain.Note, today domain.Date) NoteView {
	v := NoteView{
		Note:     n.Clone(),
		DueState: domain.ClassifyDue(n.DueDate, today),
		Preview:  Preview(n.Content),
	}
	if n.FolderID != nil {
		v.FolderName, _ = ws.FolderName(*n.FolderID)
	}
	return v
}

// Folders returns the folders for the folder browser: trashed folders in the
// trash view, live folders otherwise, filtered by name and tags.
func Folders(ws *domain.Workspace, q Query) []FolderView {
	base, notes := ws.Folders, ws.Notes
	if q.InTrash() {
		base, notes = ws.Trash.Folders, ws.Trash.Notes
	}

	out := make([]FolderView, 0, len(base))
	for _, f := range base {
		if !q.matches(append([]string{f.Name}, f.Tags...)...) {
			continue
		}
		count := 0
		for _, n := range notes {
			if n.InFolder(f.ID) {
				count++
			}
		}
		out = append(out, FolderView{Folder: f.Clone(), NoteCount: count})
	}
	return out
}

// CountAll computes workspace totals.
func CountAll(ws *domain.Workspace) Counts {
	c := Counts{
		Notes:          len(ws.Notes),
		Trashed:        len(ws.Trash.Notes),
		Folders:        len(ws.Folders),
		TrashedFolders: len(ws.Trash.Folders),
	}
	for _, n := range ws.Notes {
		if n.Pinned {
			c.Pinned++
		}
	}
	return c
}
