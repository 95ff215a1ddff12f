package seed

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/MrSnakeDoc/quill/internal/domain"
	"github.com/MrSnakeDoc/quill/internal/logger"
	"github.com/MrSnakeDoc/quill/internal/workspace"
)

// Target is the part of the workspace store a seed is applied through.
type Target interface {
	Snapshot() *domain.Workspace
	CreateFolder(ctx context.Context, name string, tags []string) (domain.Folder, error)
	CreateNote(ctx context.Context, folderID *string) (domain.Note, error)
	UpdateNote(ctx context.Context, id string, u workspace.NoteUpdate) (domain.Note, error)
}

// Result counts what a seed created and skipped.
type Result struct {
	Folders int
	Notes   int
	Skipped int
}

// Apply creates the seeded folders, then the seeded notes, through the store
// so every invariant holds. Entries the store rejects are skipped with a
// warning. A failed save aborts the seed.
func Apply(ctx context.Context, t Target, file File, log logger.Logger) (Result, error) {
	var res Result

	folderIDs := map[string]string{}
	for _, f := range t.Snapshot().Folders {
		folderIDs[f.Name] = f.ID
	}

	for _, fs := range file.Folders {
		f, err := t.CreateFolder(ctx, fs.Name, fs.Tags)
		if errors.Is(err, domain.ErrSaveFailed) {
			return res, err
		}
		if err != nil {
			log.Warn("seed folder skipped", logger.String("name", fs.Name), logger.Error(err))
			res.Skipped++
			continue
		}
		folderIDs[f.Name] = f.ID
		res.Folders++
	}

	for _, ns := range file.Notes {
		u, folderID, err := noteUpdate(ns, folderIDs)
		if err != nil {
			log.Warn("seed note skipped", logger.String("title", ns.Title), logger.Error(err))
			res.Skipped++
			continue
		}

		n, err := t.CreateNote(ctx, folderID)
		if err != nil {
			return res, err
		}
		if _, err := t.UpdateNote(ctx, n.ID, u); err != nil {
			return res, err
		}
		res.Notes++
	}

	log.Info("seed applied",
		logger.Int("folders", res.Folders),
		logger.Int("notes", res.Notes),
		logger.Int("skipped", res.Skipped))
	return res, nil
}

func noteUpdate(ns NoteSeed, folderIDs map[string]string) (workspace.NoteUpdate, *string, error) {
	var folderID *string
	if name := strings.TrimSpace(ns.Folder); name != "" {
		id, ok := folderIDs[name]
		if !ok {
			return workspace.NoteUpdate{}, nil, fmt.Errorf("%w: folder %q", domain.ErrNotFound, name)
		}
		folderID = &id
	}

	title := ns.Title
	content := contentHTML(ns.Content)
	pinned := ns.Pinned
	u := workspace.NoteUpdate{
		Title:   &title,
		Content: &content,
		Pinned:  &pinned,
	}
	if due := strings.TrimSpace(ns.Due); due != "" {
		d, err := domain.ParseDate(due)
		if err != nil {
			return workspace.NoteUpdate{}, nil, err
		}
		u.DueDate = &d
	}
	return u, folderID, nil
}

// contentHTML wraps plain text in a paragraph. Content that already looks like
// markup is kept verbatim.
func contentHTML(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return domain.EmptyContent
	case strings.HasPrefix(s, "<"):
		return s
	default:
		return "<p>" + html.EscapeString(s) + "</p>"
	}
}
