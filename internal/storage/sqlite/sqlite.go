// Package sqlite implements storage.Adapter on an embedded SQLite database.
// This is the default on-device backend: a single table keyed by record name,
// schema managed by embedded goose migrations.
package sqlite

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/NigelSimon20/adnab-qr-code-app/internal/storage"
	"github.com/NigelSimon20/adnab-qr-code-app/internal/storage/sqlite/migrations"
)

type Adapter struct {
	db *sql.DB
}

// New wraps an already-open database. Callers normally use Open instead.
func New(db *sql.DB) *Adapter {
	return &Adapter{db: db}
}

// gooseUpContext is a seam for testing migration failures.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded schema migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

// Open opens (creating if needed) the database at dsn, applies migrations,
// and returns an adapter bound to it.
func Open(ctx context.Context, dsn string) (*Adapter, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return New(db), nil
}

func (a *Adapter) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := a.db.QueryRowContext(ctx, `SELECT value FROM session_store WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storage.NewError(storage.OpGet, key, err)
	}
	return value, nil
}

func (a *Adapter) Set(ctx context.Context, key string, value []byte) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO session_store (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return storage.NewError(storage.OpSet, key, err)
	}
	return nil
}

func (a *Adapter) Remove(ctx context.Context, key string) error {
	_, err := a.db.ExecContext(ctx, `DELETE FROM session_store WHERE key = ?`, key)
	if err != nil {
		return storage.NewError(storage.OpRemove, key, err)
	}
	return nil
}

// Close closes the underlying database.
func (a *Adapter) Close() error {
	return a.db.Close()
}
