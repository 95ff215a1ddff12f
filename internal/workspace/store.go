package workspace

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MrSnakeDoc/quill/internal/domain"
	"github.com/MrSnakeDoc/quill/internal/logger"
	"github.com/MrSnakeDoc/quill/internal/persistence"
)

// Persister writes the whole workspace after each mutation.
type Persister interface {
	Save(ctx context.Context, ws *domain.Workspace) error
}

// Store owns the workspace and is its only mutator.
//
// Every operation validates its input, mutates the in-memory workspace and
// saves it, all under one lock. A rejected operation leaves the workspace
// untouched. A failed save keeps the mutation in memory and is reported as
// domain.ErrSaveFailed; the next successful save persists it.
type Store struct {
	mu        sync.Mutex
	ws        *domain.Workspace
	persister Persister
	logger    logger.Logger
	now       func() time.Time
	newID     domain.IDGenerator

	outcome     persistence.LoadOutcome
	lastSaveErr error
	lastSavedAt time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces domain.NewID.
func WithIDGenerator(gen domain.IDGenerator) Option {
	return func(s *Store) { s.newID = gen }
}

// New wraps an already loaded workspace.
func New(ws *domain.Workspace, outcome persistence.LoadOutcome, p Persister, log logger.Logger, opts ...Option) *Store {
	if ws == nil {
		ws = domain.NewWorkspace()
	}
	ws.Normalize()
	s := &Store{
		ws:        ws,
		persister: p,
		logger:    log,
		now:       time.Now,
		newID:     domain.NewID,
		outcome:   outcome,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open loads the workspace through the gateway and wraps it.
func Open(ctx context.Context, gw *persistence.Gateway, log logger.Logger, opts ...Option) (*Store, error) {
	ws, outcome, err := gw.Load(ctx)
	if err != nil {
		return nil, err
	}
	return New(ws, outcome, gw, log, opts...), nil
}

// Purged counts entries erased from trash.
type Purged struct {
	Folders int `json:"folders"`
	Notes   int `json:"notes"`
}

// SaveStatus reports the result of the most recent save.
type SaveStatus struct {
	LastError   string    `json:"last_error,omitempty"`
	LastSavedAt time.Time `json:"last_saved_at,omitzero"`
}

// Snapshot returns a deep copy of the current workspace.
func (s *Store) Snapshot() *domain.Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ws.Clone()
}

// Outcome returns how the workspace was obtained at startup.
func (s *Store) Outcome() persistence.LoadOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// SaveStatus returns the result of the most recent save.
func (s *Store) SaveStatus() SaveStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := SaveStatus{LastSavedAt: s.lastSavedAt}
	if s.lastSaveErr != nil {
		st.LastError = s.lastSaveErr.Error()
	}
	return st
}

// ─────────────────────────────
// Folders
// ─────────────────────────────

// CreateFolder appends a folder. The name must be non-empty and unused by any
// live or trashed folder.
func (s *Store) CreateFolder(ctx context.Context, name string, tags []string) (domain.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Folder{}, fmt.Errorf("%w: folder name is required", domain.ErrInvalidInput)
	}
	if s.ws.NameTaken(name, "") {
		return domain.Folder{}, fmt.Errorf("%w: folder %q already exists", domain.ErrDuplicateName, name)
	}

	f := domain.Folder{
		ID:   s.newID(domain.KindFolder),
		Name: name,
		Tags: domain.CleanTags(tags),
	}
	s.ws.Folders = append(s.ws.Folders, f)

	s.logger.Info("folder created", logger.String("folder_id", f.ID), logger.String("name", name))
	return f.Clone(), s.commit(ctx, "create folder")
}

// RenameFolder replaces the name and tags of a live folder.
func (s *Store) RenameFolder(ctx context.Context, id, name string, tags []string) (domain.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.ws.FindFolder(id)
	if i < 0 {
		return domain.Folder{}, fmt.Errorf("%w: folder %s", domain.ErrNotFound, id)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Folder{}, fmt.Errorf("%w: folder name is required", domain.ErrInvalidInput)
	}
	if s.ws.NameTaken(name, id) {
		return domain.Folder{}, fmt.Errorf("%w: folder %q already exists", domain.ErrDuplicateName, name)
	}

	s.ws.Folders[i].Name = name
	s.ws.Folders[i].Tags = domain.CleanTags(tags)
	return s.ws.Folders[i].Clone(), s.commit(ctx, "rename folder")
}

// TrashFolder moves a live folder and every live note filed in it to trash.
// It returns the number of notes moved.
func (s *Store) TrashFolder(ctx context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.ws.FindFolder(id)
	if i < 0 {
		return 0, fmt.Errorf("%w: folder %s", domain.ErrNotFound, id)
	}

	now := s.now()
	f := s.ws.Folders[i]
	f.TrashedAt = &now
	s.ws.Folders = slices.Delete(s.ws.Folders, i, i+1)
	s.ws.Trash.Folders = append(s.ws.Trash.Folders, f)

	kept := s.ws.Notes[:0]
	moved := 0
	for _, n := range s.ws.Notes {
		if n.InFolder(id) {
			at := now
			n.TrashedAt = &at
			s.ws.Trash.Notes = append(s.ws.Trash.Notes, n)
			moved++
			continue
		}
		kept = append(kept, n)
	}
	s.ws.Notes = kept

	s.logger.Info("folder trashed",
		logger.String("folder_id", id),
		logger.Int("notes", moved))
	return moved, s.commit(ctx, "trash folder")
}

// RestoreFolder moves a trashed folder back to the live list together with the
// trashed notes that originated from it. Other trashed notes stay in trash.
// It returns the number of notes restored.
func (s *Store) RestoreFolder(ctx context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.ws.FindTrashedFolder(id)
	if i < 0 {
		return 0, fmt.Errorf("%w: trashed folder %s", domain.ErrNotFound, id)
	}

	f := s.ws.Trash.Folders[i]
	f.TrashedAt = nil
	s.ws.Trash.Folders = slices.Delete(s.ws.Trash.Folders, i, i+1)
	s.ws.Folders = append(s.ws.Folders, f)

	kept := s.ws.Trash.Notes[:0]
	restored := 0
	for _, n := range s.ws.Trash.Notes {
		if n.InFolder(id) {
			n.TrashedAt = nil
			s.ws.Notes = append(s.ws.Notes, n)
			restored++
			continue
		}
		kept = append(kept, n)
	}
	s.ws.Trash.Notes = kept

	s.logger.Info("folder restored",
		logger.String("folder_id", id),
		logger.Int("notes", restored))
	return restored, s.commit(ctx, "restore folder")
}

// PurgeFolder erases a trashed folder. Trashed notes that still reference it
// stay in trash and become unfiled.
func (s *Store) PurgeFolder(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.ws.FindTrashedFolder(id)
	if i < 0 {
		return fmt.Errorf("%w: trashed folder %s", domain.ErrNotFound, id)
	}
	s.purgeFolderAt(i)

	s.logger.Info("folder purged", logger.String("folder_id", id))
	return s.commit(ctx, "purge folder")
}

func (s *Store) purgeFolderAt(i int) {
	id := s.ws.Trash.Folders[i].ID
	s.ws.Trash.Folders = slices.Delete(s.ws.Trash.Folders, i, i+1)
	for j := range s.ws.Trash.Notes {
		if s.ws.Trash.Notes[j].InFolder(id) {
			s.ws.Trash.Notes[j].FolderID = nil
		}
	}
}

// ─────────────────────────────
// Notes
// ─────────────────────────────

// NoteUpdate carries the fields to merge into a note. Nil fields are left as is.
type NoteUpdate struct {
	Title   *string
	Content *string
	Pinned  *bool

	// FolderID moves the note to another live folder; ClearFolder unfiles it.
	FolderID    *string
	ClearFolder bool

	DueDate      *domain.Date
	ClearDueDate bool
}

// CreateNote appends an empty note. folderID, when set, must name a live folder;
// nil or empty means unfiled.
func (s *Store) CreateNote(ctx context.Context, folderID *string) (domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ref *string
	if folderID != nil && *folderID != "" {
		if s.ws.FindFolder(*folderID) < 0 {
			return domain.Note{}, fmt.Errorf("%w: folder %s", domain.ErrNotFound, *folderID)
		}
		id := *folderID
		ref = &id
	}

	now := s.now()
	n := domain.Note{
		ID:        s.newID(domain.KindNote),
		Title:     domain.UntitledNote,
		Content:   domain.EmptyContent,
		FolderID:  ref,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.ws.Notes = append(s.ws.Notes, n)

	s.logger.Debug("note created", logger.String("note_id", n.ID))
	return n.Clone(), s.commit(ctx, "create note")
}

// UpdateNote merges u into a live note and bumps its modification time.
func (s *Store) UpdateNote(ctx context.Context, id string, u NoteUpdate) (domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.ws.FindNote(id)
	if i < 0 {
		return domain.Note{}, fmt.Errorf("%w: note %s", domain.ErrNotFound, id)
	}
	if u.FolderID != nil && u.ClearFolder {
		return domain.Note{}, fmt.Errorf("%w: cannot both move and unfile a note", domain.ErrInvalidInput)
	}
	if u.DueDate != nil && u.ClearDueDate {
		return domain.Note{}, fmt.Errorf("%w: cannot both set and clear a due date", domain.ErrInvalidInput)
	}
	if u.FolderID != nil && s.ws.FindFolder(*u.FolderID) < 0 {
		return domain.Note{}, fmt.Errorf("%w: folder %s", domain.ErrNotFound, *u.FolderID)
	}

	n := &s.ws.Notes[i]
	if u.Title != nil {
		n.Title = domain.NormalizeTitle(*u.Title)
	}
	if u.Content != nil {
		n.Content = *u.Content
	}
	if u.Pinned != nil {
		n.Pinned = *u.Pinned
	}
	switch {
	case u.FolderID != nil:
		fid := *u.FolderID
		n.FolderID = &fid
	case u.ClearFolder:
		n.FolderID = nil
	}
	switch {
	case u.DueDate != nil:
		d := *u.DueDate
		n.DueDate = &d
	case u.ClearDueDate:
		n.DueDate = nil
	}
	n.UpdatedAt = s.now()

	return n.Clone(), s.commit(ctx, "update note")
}

// TogglePin flips the pinned flag of a live note.
func (s *Store) TogglePin(ctx context.Context, id string) (domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.ws.FindNote(id)
	if i < 0 {
		return domain.Note{}, fmt.Errorf("%w: note %s", domain.ErrNotFound, id)
	}
	s.ws.Notes[i].Pinned = !s.ws.Notes[i].Pinned
	return s.ws.Notes[i].Clone(), s.commit(ctx, "toggle pin")
}

// TrashNote moves a live note to trash, keeping its folder reference.
func (s *Store) TrashNote(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.ws.FindNote(id)
	if i < 0 {
		return fmt.Errorf("%w: note %s", domain.ErrNotFound, id)
	}
	now := s.now()
	n := s.ws.Notes[i]
	n.TrashedAt = &now
	s.ws.Notes = slices.Delete(s.ws.Notes, i, i+1)
	s.ws.Trash.Notes = append(s.ws.Trash.Notes, n)

	s.logger.Debug("note trashed", logger.String("note_id", id))
	return s.commit(ctx, "trash note")
}

// RestoreNote moves a trashed note back. It returns to its recorded folder when
// that folder is live, otherwise to the first live folder, otherwise unfiled.
func (s *Store) RestoreNote(ctx context.Context, id string) (domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.ws.FindTrashedNote(id)
	if i < 0 {
		return domain.Note{}, fmt.Errorf("%w: trashed note %s", domain.ErrNotFound, id)
	}
	n := s.ws.Trash.Notes[i]
	n.TrashedAt = nil
	if n.FolderID == nil || s.ws.FindFolder(*n.FolderID) < 0 {
		n.FolderID = nil
		if len(s.ws.Folders) > 0 {
			fid := s.ws.Folders[0].ID
			n.FolderID = &fid
		}
	}
	s.ws.Trash.Notes = slices.Delete(s.ws.Trash.Notes, i, i+1)
	s.ws.Notes = append(s.ws.Notes, n)

	return n.Clone(), s.commit(ctx, "restore note")
}

// PurgeNote erases a trashed note.
func (s *Store) PurgeNote(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.ws.FindTrashedNote(id)
	if i < 0 {
		return fmt.Errorf("%w: trashed note %s", domain.ErrNotFound, id)
	}
	s.ws.Trash.Notes = slices.Delete(s.ws.Trash.Notes, i, i+1)
	return s.commit(ctx, "purge note")
}

// ─────────────────────────────
// Trash
// ─────────────────────────────

// EmptyTrash erases every trashed folder and note. Live collections are untouched.
func (s *Store) EmptyTrash(ctx context.Context) (Purged, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := Purged{Folders: len(s.ws.Trash.Folders), Notes: len(s.ws.Trash.Notes)}
	s.ws.Trash = domain.Trash{Folders: []domain.Folder{}, Notes: []domain.Note{}}

	s.logger.Info("trash emptied",
		logger.Int("folders", p.Folders),
		logger.Int("notes", p.Notes))
	return p, s.commit(ctx, "empty trash")
}

// PurgeExpired erases trash entries trashed before cutoff. Entries without a
// trash time are kept. Nothing is saved when nothing expired.
func (s *Store) PurgeExpired(ctx context.Context, cutoff time.Time) (Purged, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var p Purged
	for i := len(s.ws.Trash.Folders) - 1; i >= 0; i-- {
		if expired(s.ws.Trash.Folders[i].TrashedAt, cutoff) {
			s.purgeFolderAt(i)
			p.Folders++
		}
	}
	notes := s.ws.Trash.Notes[:0]
	for _, n := range s.ws.Trash.Notes {
		if expired(n.TrashedAt, cutoff) {
			p.Notes++
			continue
		}
		notes = append(notes, n)
	}
	s.ws.Trash.Notes = notes

	if p == (Purged{}) {
		return p, nil
	}
	return p, s.commit(ctx, "purge expired trash")
}

func expired(trashedAt *time.Time, cutoff time.Time) bool {
	return trashedAt != nil && trashedAt.Before(cutoff)
}

// ─────────────────────────────
// Settings
// ─────────────────────────────

// SetBackground stores a background colour or image.
func (s *Store) SetBackground(ctx context.Context, kind, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if kind != domain.BackgroundColor && kind != domain.BackgroundImage {
		return fmt.Errorf("%w: background type %q", domain.ErrInvalidInput, kind)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%w: background value is required", domain.ErrInvalidInput)
	}
	s.ws.BackgroundType, s.ws.BackgroundValue = kind, value
	return s.commit(ctx, "set background")
}

// ResetBackground restores the default background colour.
func (s *Store) ResetBackground(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ws.BackgroundType, s.ws.BackgroundValue = domain.BackgroundColor, domain.DefaultBackgroundValue
	return s.commit(ctx, "reset background")
}

// UpdateProfile replaces the profile. Blank name and role fall back to the
// defaults; a blank avatar is generated from the name.
func (s *Store) UpdateProfile(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.Name = strings.TrimSpace(p.Name)
	p.Role = strings.TrimSpace(p.Role)
	p.Avatar = strings.TrimSpace(p.Avatar)
	p.Bio = strings.TrimSpace(p.Bio)
	if p.Name == "" {
		p.Name = domain.DefaultProfileName
	}
	if p.Role == "" {
		p.Role = domain.DefaultProfileRole
	}
	if p.Avatar == "" {
		p.Avatar = domain.AvatarURL(p.Name)
	}
	s.ws.Profile = p
	return p, s.commit(ctx, "update profile")
}

// commit saves the workspace. Callers hold s.mu.
func (s *Store) commit(ctx context.Context, op string) error {
	if err := s.persister.Save(ctx, s.ws); err != nil {
		s.lastSaveErr = err
		s.logger.Error("workspace change not persisted",
			logger.String("op", op),
			logger.Error(err))
		return fmt.Errorf("%w: %s: %v", domain.ErrSaveFailed, op, err)
	}
	s.lastSaveErr = nil
	s.lastSavedAt = s.now()
	return nil
}
