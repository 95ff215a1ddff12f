package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MrSnakeDoc/quill/internal/domain"
	"github.com/MrSnakeDoc/quill/internal/logger"
	"github.com/MrSnakeDoc/quill/internal/persistence"
	"github.com/MrSnakeDoc/quill/internal/workspace"
)

func TestTrashCollector_Collect(t *testing.T) {
	log := logger.New("error", false)
	now := time.Now()

	old := now.Add(-35 * 24 * time.Hour)
	recent := now.Add(-10 * 24 * time.Hour)
	ws := domain.NewWorkspace()
	ws.Trash.Folders = []domain.Folder{
		{ID: "folder-old", Name: "Old", Tags: []string{}, TrashedAt: &old},
	}
	folderID := "folder-old"
	ws.Trash.Notes = []domain.Note{
		{ID: "note-old", FolderID: &folderID, TrashedAt: &old},
		{ID: "note-recent", FolderID: &folderID, TrashedAt: &recent},
		{ID: "note-legacy"},
	}
	gw := persistence.NewGateway(persistence.NewMemoryBackend(), log)
	store := workspace.New(ws, persistence.LoadOutcome{Status: persistence.StatusLoaded}, gw, log)

	tc := NewTrashCollector(store, log, time.Hour, 30*24*time.Hour)

	purged, err := tc.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if purged != (workspace.Purged{Folders: 1, Notes: 1}) {
		t.Errorf("Collect() = %+v, want 1 folder 1 note", purged)
	}

	snap := store.Snapshot()
	if snap.FindTrashedNote("note-old") >= 0 {
		t.Error("Old trashed note was not removed")
	}
	i := snap.FindTrashedNote("note-recent")
	if i < 0 {
		t.Fatal("Recently trashed note was incorrectly removed")
	}
	if snap.Trash.Notes[i].FolderID != nil {
		t.Error("Recently trashed note should lose its reference to the purged folder")
	}
	if snap.FindTrashedNote("note-legacy") < 0 {
		t.Error("Note without trash time was incorrectly removed")
	}
}

type countingPurger struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (p *countingPurger) PurgeExpired(context.Context, time.Time) (workspace.Purged, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return workspace.Purged{}, p.err
}

func (p *countingPurger) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func TestTrashCollector_StartStop(t *testing.T) {
	p := &countingPurger{}
	tc := NewTrashCollector(p, logger.NewNop(), 10*time.Millisecond, time.Hour)

	if err := tc.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if p.count() < 1 {
		t.Error("Start() should collect immediately")
	}

	deadline := time.Now().Add(2 * time.Second)
	for p.count() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if p.count() < 3 {
		t.Errorf("collector ran %d times, want periodic runs", p.count())
	}

	tc.Stop()
	tc.Stop()
}

func TestTrashCollector_StartToleratesFailure(t *testing.T) {
	p := &countingPurger{err: errors.New("save failed")}
	tc := NewTrashCollector(p, logger.NewNop(), time.Hour, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := tc.Start(ctx); err != nil {
		t.Errorf("Start() should not fail on a collection error, got %v", err)
	}
}

func TestNewTrashCollectorDefaultInterval(t *testing.T) {
	tc := NewTrashCollector(&countingPurger{}, logger.NewNop(), 0, time.Hour)
	if tc.interval != DefaultSweepInterval {
		t.Errorf("interval = %v, want %v", tc.interval, DefaultSweepInterval)
	}
}
