// Package store provides summary history adapters.
// Clean Architecture: Adapters implementing ports.SummaryStore.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/0xcro3dile/lecturesum-go/internal/domain/entities"
	"github.com/0xcro3dile/lecturesum-go/internal/domain/ports"
)

// SQLiteStore implements ports.SummaryStore with SQLite persistence.
type SQLiteStore struct {
	mu       sync.RWMutex
	db       *sql.DB
	dataPath string
}

// NewSQLiteStore opens (or creates) summaries.db under dataPath.
func NewSQLiteStore(dataPath string) (*SQLiteStore, error) {
	if dataPath == "" {
		dataPath = "./data"
	}

	if err := os.MkdirAll(dataPath, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataPath, "summaries.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := &SQLiteStore{
		db:       db,
		dataPath: dataPath,
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return store, nil
}

// initSchema creates the necessary tables.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS summaries (
		id TEXT PRIMARY KEY,
		file_name TEXT NOT NULL,
		model TEXT NOT NULL,
		summary_type TEXT NOT NULL,
		characters INTEGER NOT NULL,
		pages INTEGER NOT NULL,
		chunks INTEGER NOT NULL,
		text TEXT NOT NULL,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_summaries_created_at ON summaries(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save inserts or replaces a summary.
func (s *SQLiteStore) Save(ctx context.Context, sum *entities.Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO summaries
			(id, file_name, model, summary_type, characters, pages, chunks, text, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		sum.ID,
		sum.FileName,
		sum.Model,
		string(sum.Type),
		sum.Characters,
		sum.Pages,
		sum.Chunks,
		sum.Text,
		sum.Duration.Milliseconds(),
		sum.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("inserting summary: %w", err)
	}
	return nil
}

// Get returns one summary or ports.ErrNotFound.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*entities.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, file_name, model, summary_type, characters, pages, chunks, text, duration_ms, created_at
		FROM summaries WHERE id = ?
	`, id)

	sum, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning row: %w", err)
	}
	return sum, nil
}

// List returns summaries newest first.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]entities.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, file_name, model, summary_type, characters, pages, chunks, text, duration_ms, created_at
		FROM summaries ORDER BY created_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying summaries: %w", err)
	}
	defer rows.Close()

	var results []entities.Summary
	for rows.Next() {
		sum, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, *sum)
	}
	return results, rows.Err()
}

// Delete removes a summary. Deleting an unknown id returns ports.ErrNotFound.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM summaries WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Count returns the number of stored summaries.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM summaries").Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSummary(row rowScanner) (*entities.Summary, error) {
	var (
		sum         entities.Summary
		summaryType string
		durationMS  int64
		createdAt   int64
	)
	err := row.Scan(
		&sum.ID,
		&sum.FileName,
		&sum.Model,
		&summaryType,
		&sum.Characters,
		&sum.Pages,
		&sum.Chunks,
		&sum.Text,
		&durationMS,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	sum.Type = entities.SummaryType(summaryType)
	sum.Duration = time.Duration(durationMS) * time.Millisecond
	sum.CreatedAt = time.Unix(0, createdAt)
	return &sum, nil
}
