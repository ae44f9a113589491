// Package registry keeps a local SQLite record of every paper that has
// been ingested, independent of the vector index. It backs the papers
// listing surfaces (CLI, MCP) and survives index rebuilds.
package registry

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/paperscout/paperscout/internal/catalog"
)

// Store wraps a sql.DB with paper-registry helpers.
type Store struct {
	*sql.DB
	path string
}

// Entry is one recorded paper.
type Entry struct {
	SourceID   string
	Title      string
	URL        string
	Authors    string
	Published  string
	Query      string
	IngestedAt time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS papers (
    source_id TEXT PRIMARY KEY,
    title TEXT NOT NULL DEFAULT '',
    url TEXT NOT NULL DEFAULT '',
    authors TEXT NOT NULL DEFAULT '',
    published TEXT NOT NULL DEFAULT '',
    query TEXT NOT NULL DEFAULT '',
    ingested_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_papers_query ON papers(query);
CREATE INDEX IF NOT EXISTS idx_papers_ingested_at ON papers(ingested_at);
`

// Open creates or opens the registry database at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating registry directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening registry: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging registry: %w", err)
	}

	s := &Store{DB: db, path: path}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("running registry migrations: %w", err)
	}

	return s, nil
}

// OpenMemory creates an in-memory registry (useful for testing).
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory registry: %w", err)
	}

	s := &Store{DB: db, path: ":memory:"}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("running registry migrations: %w", err)
	}

	return s, nil
}

// RecordBatch upserts one ingested batch. Re-ingesting a source id
// refreshes its row rather than duplicating it.
func (s *Store) RecordBatch(ctx context.Context, query string, papers []catalog.Paper) error {
	if len(papers) == 0 {
		return nil
	}

	tx, err := s.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin registry tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO papers (source_id, title, url, authors, published, query, ingested_at)
		VALUES (?, ?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT(source_id) DO UPDATE SET
			title = excluded.title,
			url = excluded.url,
			authors = excluded.authors,
			published = excluded.published,
			query = excluded.query,
			ingested_at = excluded.ingested_at`)
	if err != nil {
		return fmt.Errorf("prepare registry insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range papers {
		if _, err := stmt.ExecContext(ctx, p.ID, p.Title, p.URL, strings.Join(p.Authors, ", "), p.Published, query); err != nil {
			return fmt.Errorf("record paper %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// List returns up to limit papers, most recently ingested first.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.QueryContext(ctx, `
		SELECT source_id, title, url, authors, published, query, ingested_at
		FROM papers ORDER BY ingested_at DESC, source_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing papers: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ingestedAt string
		if err := rows.Scan(&e.SourceID, &e.Title, &e.URL, &e.Authors, &e.Published, &e.Query, &ingestedAt); err != nil {
			return nil, fmt.Errorf("scanning paper row: %w", err)
		}
		e.IngestedAt, _ = time.Parse("2006-01-02 15:04:05", ingestedAt)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Count returns the number of recorded papers.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.QueryRowContext(ctx, `SELECT COUNT(*) FROM papers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting papers: %w", err)
	}
	return n, nil
}
