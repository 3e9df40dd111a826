package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/avoronov/clauselint/internal/model"
)

// MemoryStore keeps documents in process memory. Contents are lost on
// restart; it is the default backend for local use and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	docs   map[int64]model.Document
	nextID int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[int64]model.Document), nextID: 1}
}

// Create stores a new document and assigns it the next id.
func (s *MemoryStore) Create(ctx context.Context, title, text string) (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	doc := model.Document{
		ID:        s.nextID,
		Title:     title,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextID++
	s.docs[doc.ID] = doc
	return &doc, nil
}

// Get returns the document with the given id.
func (s *MemoryStore) Get(ctx context.Context, id int64) (*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &doc, nil
}

// List returns all documents ordered by id.
func (s *MemoryStore) List(ctx context.Context) ([]*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]*model.Document, 0, len(s.docs))
	for id := range s.docs {
		doc := s.docs[id]
		docs = append(docs, &doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

// Update applies the non-nil fields and bumps the update timestamp.
func (s *MemoryStore) Update(ctx context.Context, id int64, upd Update) (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.Title != nil {
		doc.Title = *upd.Title
	}
	if upd.Text != nil {
		doc.Text = *upd.Text
	}
	doc.UpdatedAt = time.Now().UTC()
	s.docs[id] = doc
	return &doc, nil
}

// Delete removes the document with the given id.
func (s *MemoryStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }
