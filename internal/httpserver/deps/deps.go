package deps

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/quill/internal/logger"
	"github.com/MrSnakeDoc/quill/internal/workspace"
)

// Backend is the storage view the health endpoints need.
type Backend interface {
	Ping(ctx context.Context) error
	BackendName() string
}

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	TimeNow      func() time.Time // for testing, defaults to time.Now
	AllowedHosts []string         // Host headers allowed to access the API
	AllowedCIDRS []string         // IPs allowed to access healthz/readyz/status endpoints
	TrustProxy   bool             // true if running behind a trusted reverse proxy (e.g., cloudflared)
	Store        *workspace.Store // the single in-memory workspace
	Backend      Backend          // durable storage behind the store

	// WriteLimit is shared by every mutating route so they draw from one
	// bucket per client. Nil disables limiting.
	WriteLimit   func(http.Handler) http.Handler
	MaxBodyBytes int64 // request body cap for JSON payloads
}

// Now returns the current time through TimeNow when set.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
