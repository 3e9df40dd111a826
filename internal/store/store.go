// Package store persists raw document text for the HTTP host layer. The
// analysis core never touches the store; it only receives text by value.
package store

import (
	"context"
	"errors"

	"github.com/avoronov/clauselint/internal/model"
)

// ErrNotFound is returned when a document id does not exist.
var ErrNotFound = errors.New("document not found")

// Update carries optional field changes; nil means "leave unchanged".
type Update struct {
	Title *string
	Text  *string
}

// Store is the document repository interface. Both the in-memory and the
// SQLite implementations satisfy it.
type Store interface {
	Create(ctx context.Context, title, text string) (*model.Document, error)
	Get(ctx context.Context, id int64) (*model.Document, error)
	List(ctx context.Context) ([]*model.Document, error)
	Update(ctx context.Context, id int64, upd Update) (*model.Document, error)
	Delete(ctx context.Context, id int64) error
	Close() error
}
