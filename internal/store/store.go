// Package store persists photobooks as versioned JSON snapshots in
// Postgres. Each save writes a new snapshot row; loading a book returns
// the latest version.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bindery/bindery/internal/document"
)

var ErrNotFound = errors.New("book not found")

const schema = `
CREATE TABLE IF NOT EXISTS books (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS book_snapshots (
	id         UUID PRIMARY KEY,
	book_id    TEXT NOT NULL REFERENCES books(id) ON DELETE CASCADE,
	version    BIGINT NOT NULL,
	document   JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (book_id, version)
);
`

type Store struct {
	pool *pgxpool.Pool
}

// NewPool connects to Postgres and verifies the connection.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Migrate creates the tables when missing.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// BookInfo is one row of the book listing.
type BookInfo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SaveBook upserts the book row and writes the next snapshot version.
func (s *Store) SaveBook(ctx context.Context, book *document.PhotoBook) error {
	docJSON, err := json.Marshal(book)
	if err != nil {
		return fmt.Errorf("marshal book: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO books (id, title, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET title = $2, updated_at = $4`,
		book.ID, book.SpineTitle, book.CreatedAt, book.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert book: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO book_snapshots (id, book_id, version, document)
		VALUES ($1, $2,
			COALESCE((SELECT MAX(version) FROM book_snapshots WHERE book_id = $2), 0) + 1,
			$3)`,
		uuid.New(), book.ID, docJSON)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	return tx.Commit(ctx)
}

// LoadBook returns the latest snapshot of a book.
func (s *Store) LoadBook(ctx context.Context, bookID string) (*document.PhotoBook, error) {
	var docJSON []byte
	err := s.pool.QueryRow(ctx, `
		SELECT document FROM book_snapshots
		WHERE book_id = $1
		ORDER BY version DESC
		LIMIT 1`, bookID).Scan(&docJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	book, err := document.LoadJSON(docJSON)
	if err != nil {
		return nil, fmt.Errorf("decode book %s: %w", bookID, err)
	}
	return book, nil
}

// ListBooks returns every book with its latest snapshot version.
func (s *Store) ListBooks(ctx context.Context) ([]BookInfo, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT b.id, b.title, COALESCE(MAX(s.version), 0), b.created_at, b.updated_at
		FROM books b
		LEFT JOIN book_snapshots s ON s.book_id = b.id
		GROUP BY b.id
		ORDER BY b.updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var books []BookInfo
	for rows.Next() {
		var info BookInfo
		if err := rows.Scan(&info.ID, &info.Title, &info.Version, &info.CreatedAt, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, info)
	}
	return books, rows.Err()
}

// DeleteBook removes a book and all its snapshots.
func (s *Store) DeleteBook(ctx context.Context, bookID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, bookID)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
