package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	sqlite3migrate "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MemoryDSN opens a private in-memory database
const MemoryDSN = ":memory:"

// SQLite is a Backend on top of a SQLite database
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLite wraps an already migrated database
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db, now: time.Now}
}

// OpenSQLite opens (creating if needed) the database at path and applies the migrations
func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		path = MemoryDSN
	}
	if path != MemoryDSN {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if path == MemoryDSN {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	} else if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		log.Printf("[store] Warning: Failed to enable WAL mode: %v", err)
	}

	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewSQLite(db), nil
}

// Migrate applies the embedded schema migrations to db
func Migrate(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	drv, err := sqlite3migrate.WithInstance(db, &sqlite3migrate.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", drv)
	if err != nil {
		return fmt.Errorf("migration setup: %w", err)
	}
	// m.Close would close db as well
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// DB returns the underlying database connection
func (s *SQLite) DB() *sql.DB {
	return s.db
}

func (s *SQLite) Get(ctx context.Context, sid, key string) (string, bool, error) {
	if sid == "" {
		return "", false, ErrEmptySession
	}
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT v.value FROM session_values v
		LEFT JOIN sessions s ON s.id = v.session_id
		WHERE v.session_id = ? AND v.key = ? AND (s.id IS NULL OR s.expires_at > ?)
	`, sid, key, s.now().Unix()).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLite) Set(ctx context.Context, sid, key, value string) error {
	if sid == "" {
		return ErrEmptySession
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session_values (session_id, key, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (session_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, sid, key, value, s.now().Unix())
	return err
}

func (s *SQLite) Delete(ctx context.Context, sid string, keys ...string) error {
	if sid == "" {
		return ErrEmptySession
	}
	for _, k := range keys {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM session_values WHERE session_id = ? AND key = ?", sid, k); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLite) Touch(ctx context.Context, sid string, ttl time.Duration) error {
	if sid == "" {
		return ErrEmptySession
	}
	now := s.now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	// Defer a rollback in case anything fails.
	defer func() {
		_ = tx.Rollback()
	}()

	// an expired session comes back empty
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM session_values WHERE session_id = ?
		AND EXISTS (SELECT 1 FROM sessions WHERE id = ? AND expires_at <= ?)
	`, sid, sid, now.Unix()); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sessions (id, expires_at, created_at) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET expires_at = excluded.expires_at
	`, sid, now.Add(ttl).Unix(), now.Unix()); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLite) Drop(ctx context.Context, sid string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM session_values WHERE session_id = ?", sid); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", sid); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLite) CleanupExpired(ctx context.Context) (int64, error) {
	now := s.now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM session_values
		WHERE session_id IN (SELECT id FROM sessions WHERE expires_at <= ?)
	`, now); err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at <= ?", now)
	if err != nil {
		return 0, err
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return removed, tx.Commit()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
