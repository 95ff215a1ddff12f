package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/quill/internal/config"
	"github.com/MrSnakeDoc/quill/internal/httpserver"
	"github.com/MrSnakeDoc/quill/internal/httpserver/deps"
	"github.com/MrSnakeDoc/quill/internal/logger"
	"github.com/MrSnakeDoc/quill/internal/persistence"
	"github.com/MrSnakeDoc/quill/internal/scheduler"
	"github.com/MrSnakeDoc/quill/internal/sources/seed"
	"github.com/MrSnakeDoc/quill/internal/version"
	"github.com/MrSnakeDoc/quill/internal/workspace"
)

type App struct {
	cfg       *config.Config
	logger    logger.Logger
	server    *httpserver.Server
	gateway   *persistence.Gateway
	store     *workspace.Store
	collector *scheduler.TrashCollector // nil when trash retention is disabled
}

func New() (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	ctx := context.Background()

	backend, err := openBackend(ctx, cfg, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to open %s storage: %v", cfg.Store, err)
		return nil, err
	}
	gateway := persistence.NewGateway(backend, loggerClient)

	// A backend read failure is fatal: starting with defaults would
	// overwrite the stored workspace on the first save.
	store, err := workspace.Open(ctx, gateway, loggerClient)
	if err != nil {
		_ = gateway.Close()
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}

	if cfg.SeedFile != "" {
		if err := applySeed(ctx, cfg.SeedFile, store, loggerClient); err != nil {
			_ = gateway.Close()
			return nil, err
		}
	}

	var collector *scheduler.TrashCollector
	if cfg.TrashRetention > 0 {
		collector = scheduler.NewTrashCollector(store, loggerClient, cfg.TrashSweepInterval, cfg.TrashRetention)
	} else {
		loggerClient.Info("trash retention disabled, trashed entries are kept until purged")
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		TimeNow:      time.Now,
		AllowedHosts: cfg.AllowedHosts,
		AllowedCIDRS: cfg.AllowedCIDRS,
		TrustProxy:   cfg.TrustProxy,
		Store:        store,
		Backend:      gateway,
		MaxBodyBytes: cfg.MaxBodyBytes,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:       cfg,
		logger:    loggerClient,
		server:    server,
		gateway:   gateway,
		store:     store,
		collector: collector,
	}, nil
}

// applySeed fills a workspace that was not loaded from storage.
func applySeed(ctx context.Context, path string, store *workspace.Store, log logger.Logger) error {
	if outcome := store.Outcome(); outcome.Status == persistence.StatusLoaded {
		log.Debug("workspace loaded from storage, seed skipped",
			logger.String("file", path))
		return nil
	}

	file, err := seed.NewLoader(path).Load()
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}
	if _, err := seed.Apply(ctx, store, file, log); err != nil {
		return fmt.Errorf("failed to apply seed: %w", err)
	}
	return nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Quill v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Quill %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	outcome := a.store.Outcome()
	a.logger.Info("workspace ready",
		logger.String("backend", outcome.Backend),
		logger.String("load", string(outcome.Status)))

	// Start trash collector
	if a.collector != nil {
		if err := a.collector.Start(ctx); err != nil {
			return fmt.Errorf("failed to start trash collector: %w", err)
		}
		a.logger.Info("trash collector started",
			logger.Duration("interval", a.cfg.TrashSweepInterval),
			logger.Duration("retention", a.cfg.TrashRetention))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	// Stop trash collector
	if a.collector != nil {
		a.collector.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if err := a.gateway.Close(); err != nil {
		a.logger.Warnf("failed to close %s storage: %v", a.gateway.BackendName(), err)
	} else {
		a.logger.Infof("✅ %s storage closed cleanly", a.gateway.BackendName())
	}

	a.logger.Info("✅ Quill stopped cleanly")
	return nil
}
