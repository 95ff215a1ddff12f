package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/lib/pq"
)

const (
	postgresTableName        = "quill_workspace"
	postgresOperationTimeout = 5 * time.Second
)

type sqlOpenFunc func(driverName, dsn string) (*sql.DB, error)

// PostgresBackend stores the blob as one row of a key/snapshot table.
// The table is created on first use.
type PostgresBackend struct {
	dsn       string
	tableName string
	stateKey  string
	openDB    sqlOpenFunc

	initOnce sync.Once
	initErr  error
	db       *sql.DB
}

func NewPostgresBackend(dsn, namespace string) (*PostgresBackend, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("%w: empty postgres dsn", ErrInvalidInput)
	}
	return &PostgresBackend{
		dsn:       dsn,
		tableName: postgresTableName,
		stateKey:  WorkspaceKey(namespace),
		openDB:    sql.Open,
	}, nil
}

func (b *PostgresBackend) Get(ctx context.Context) ([]byte, error) {
	if err := b.ensureReady(ctx); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()

	query := fmt.Sprintf("SELECT snapshot FROM %s WHERE state_key = $1", quoteIdentifier(b.tableName))
	var payload string
	err := b.db.QueryRowContext(ctx, query, b.stateKey).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAbsent
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select workspace: %w", err)
	}
	return []byte(payload), nil
}

func (b *PostgresBackend) Put(ctx context.Context, data []byte) error {
	if err := b.ensureReady(ctx); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()

	query := fmt.Sprintf(`
		INSERT INTO %s (state_key, snapshot, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (state_key)
		DO UPDATE SET snapshot = EXCLUDED.snapshot, updated_at = NOW()`, quoteIdentifier(b.tableName))
	if _, err := b.db.ExecContext(ctx, query, b.stateKey, string(data)); err != nil {
		return fmt.Errorf("failed to upsert workspace: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Ping(ctx context.Context) error {
	if err := b.ensureReady(ctx); err != nil {
		return err
	}
	return b.db.PingContext(ctx)
}

func (b *PostgresBackend) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

func (b *PostgresBackend) Name() string { return "postgres" }

func (b *PostgresBackend) ensureReady(ctx context.Context) error {
	b.initOnce.Do(func() {
		db, err := b.openDB("postgres", b.dsn)
		if err != nil {
			b.initErr = err
			return
		}
		ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
		defer cancel()

		query := fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				state_key TEXT PRIMARY KEY,
				snapshot TEXT NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, quoteIdentifier(b.tableName))
		if _, err := db.ExecContext(ctx, query); err != nil {
			_ = db.Close()
			b.initErr = fmt.Errorf("failed to prepare workspace table: %w", err)
			return
		}
		b.db = db
	})
	return b.initErr
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
