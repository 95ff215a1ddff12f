package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/quill/internal/domain"
	"github.com/MrSnakeDoc/quill/internal/logger"
)

// Backend is a durable key-value slot holding one encoded workspace.
type Backend interface {
	// Get returns the stored blob, or ErrAbsent.
	Get(ctx context.Context) ([]byte, error)
	// Put overwrites the stored blob.
	Put(ctx context.Context, data []byte) error
	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
	Close() error
	// Name identifies the backend in logs and status output.
	Name() string
}

// LoadStatus describes what Load found in the backend.
type LoadStatus string

const (
	StatusLoaded       LoadStatus = "loaded"
	StatusEmpty        LoadStatus = "empty"
	StatusResetVersion LoadStatus = "reset_version"
	StatusResetCorrupt LoadStatus = "reset_corrupt"
)

// LoadOutcome reports how the workspace in memory came to be.
// Any status other than StatusLoaded means the caller got a fresh workspace.
type LoadOutcome struct {
	Status   LoadStatus `json:"status"`
	Reason   string     `json:"reason,omitempty"`
	Backend  string     `json:"backend"`
	LoadedAt time.Time  `json:"loaded_at"`
}

// Reset reports whether stored data was discarded.
func (o LoadOutcome) Reset() bool {
	return o.Status == StatusResetVersion || o.Status == StatusResetCorrupt
}

// Gateway saves and loads whole workspaces through a Backend.
type Gateway struct {
	backend Backend
	logger  logger.Logger
	now     func() time.Time
}

// NewGateway creates a gateway over backend.
func NewGateway(backend Backend, log logger.Logger) *Gateway {
	return &Gateway{
		backend: backend,
		logger:  log,
		now:     time.Now,
	}
}

// Save writes the workspace, overwriting any prior value.
// Failures are logged here and returned so the caller can signal them.
func (g *Gateway) Save(ctx context.Context, ws *domain.Workspace) error {
	data, err := Encode(ws)
	if err != nil {
		g.logger.Error("failed to encode workspace", logger.Error(err))
		return err
	}
	if err := g.backend.Put(ctx, data); err != nil {
		g.logger.Error("failed to save workspace",
			logger.String("backend", g.backend.Name()),
			logger.Int("bytes", len(data)),
			logger.Error(err))
		return fmt.Errorf("failed to save workspace: %w", err)
	}
	g.logger.Debug("workspace saved",
		logger.String("backend", g.backend.Name()),
		logger.Int("bytes", len(data)))
	return nil
}

// Load reads the stored workspace. Absent, corrupt or version-mismatched data
// yields a fresh default workspace together with an outcome describing why.
// Only backend I/O failures are returned as errors: falling back to defaults
// there would overwrite intact data on the next save.
func (g *Gateway) Load(ctx context.Context) (*domain.Workspace, LoadOutcome, error) {
	outcome := LoadOutcome{Backend: g.backend.Name(), LoadedAt: g.now()}

	data, err := g.backend.Get(ctx)
	if errors.Is(err, ErrAbsent) {
		g.logger.Info("no stored workspace, starting empty",
			logger.String("backend", g.backend.Name()))
		outcome.Status = StatusEmpty
		return domain.NewWorkspace(), outcome, nil
	}
	if err != nil {
		return nil, outcome, fmt.Errorf("failed to read workspace: %w", err)
	}

	ws, err := Decode(data)
	if err != nil {
		outcome.Reason = err.Error()
		if errors.Is(err, ErrVersionMismatch) {
			outcome.Status = StatusResetVersion
		} else {
			outcome.Status = StatusResetCorrupt
		}
		g.logger.Warn("stored workspace discarded, starting empty",
			logger.String("backend", g.backend.Name()),
			logger.String("status", string(outcome.Status)),
			logger.Error(err))
		return domain.NewWorkspace(), outcome, nil
	}

	g.logger.Info("workspace loaded",
		logger.String("backend", g.backend.Name()),
		logger.Int("folders", len(ws.Folders)),
		logger.Int("notes", len(ws.Notes)),
		logger.Int("trashed_notes", len(ws.Trash.Notes)))
	outcome.Status = StatusLoaded
	return ws, outcome, nil
}

// Ping checks the backend.
func (g *Gateway) Ping(ctx context.Context) error {
	return g.backend.Ping(ctx)
}

// Close releases the backend.
func (g *Gateway) Close() error {
	return g.backend.Close()
}

// BackendName returns the configured backend name.
func (g *Gateway) BackendName() string {
	return g.backend.Name()
}
