package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/avoronov/clauselint/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	title      TEXT NOT NULL,
	text       TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

// SQLiteStore persists documents in a SQLite database. Use ":memory:" as the
// path for an ephemeral database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and ensures the
// schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Create inserts a new document.
func (s *SQLiteStore) Create(ctx context.Context, title, text string) (*model.Document, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (title, text, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		title, text, now, now)
	if err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return &model.Document{ID: id, Title: title, Text: text, CreatedAt: now, UpdatedAt: now}, nil
}

// Get returns the document with the given id.
func (s *SQLiteStore) Get(ctx context.Context, id int64) (*model.Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, text, created_at, updated_at FROM documents WHERE id = ?`, id)
	return scanDocument(row)
}

// List returns all documents ordered by id.
func (s *SQLiteStore) List(ctx context.Context) ([]*model.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, text, created_at, updated_at FROM documents ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []*model.Document
	for rows.Next() {
		var doc model.Document
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Text, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, &doc)
	}
	return docs, rows.Err()
}

// Update applies the non-nil fields and bumps the update timestamp.
func (s *SQLiteStore) Update(ctx context.Context, id int64, upd Update) (*model.Document, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		doc.Title = *upd.Title
	}
	if upd.Text != nil {
		doc.Text = *upd.Text
	}
	doc.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx,
		`UPDATE documents SET title = ?, text = ?, updated_at = ? WHERE id = ?`,
		doc.Title, doc.Text, doc.UpdatedAt, id)
	if err != nil {
		return nil, fmt.Errorf("update document: %w", err)
	}
	return doc, nil
}

// Delete removes the document with the given id.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

func scanDocument(row *sql.Row) (*model.Document, error) {
	var doc model.Document
	if err := row.Scan(&doc.ID, &doc.Title, &doc.Text, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}
	return &doc, nil
}
