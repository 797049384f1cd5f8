package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Veraticus/orderplace/internal/common"
	"github.com/Veraticus/orderplace/internal/service"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore keeps each document as one row of the documents table.
type SQLiteStore struct {
	db     *sql.DB
	codec  Codec
	dbPath string
}

// NewSQLiteStore opens (creating if needed) the database at dbPath.
// Use ":memory:" for a throwaway database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("%w: database path is empty", common.ErrInvalidConfig)
	}

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
			return nil, fmt.Errorf("%w: failed to create database directory: %w", common.ErrIO, err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %w", common.ErrIO, err)
	}

	// A single connection keeps ":memory:" databases alive and matches the
	// single-writer model.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: failed to ping database: %w", common.ErrIO, err)
	}

	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
		codec:  JSONCodec{},
	}, nil
}

// Exists reports whether the named document has been written.
func (s *SQLiteStore) Exists(ctx context.Context, name service.DocumentName) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateDocument(name); err != nil {
		return false, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents WHERE name = ?`, string(name)).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("%w: failed to look up %s: %w", common.ErrIO, name, err)
	}
	return count > 0, nil
}

// Load decodes the named document into out.
func (s *SQLiteStore) Load(ctx context.Context, name service.DocumentName, out any) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateDocument(name); err != nil {
		return err
	}

	var body []byte
	err := s.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE name = ?`, string(name)).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: document %s not found in %s", common.ErrIO, name, s.dbPath)
	}
	if err != nil {
		return fmt.Errorf("%w: failed to read %s: %w", common.ErrIO, name, err)
	}

	if err := s.codec.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s: %w", common.ErrParse, name, err)
	}
	return nil
}

// Save encodes v and replaces the named document.
func (s *SQLiteStore) Save(ctx context.Context, name service.DocumentName, v any) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateDocument(name); err != nil {
		return err
	}

	body, err := s.codec.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (name, body, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		string(name), body)
	if err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", common.ErrIO, name, err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
