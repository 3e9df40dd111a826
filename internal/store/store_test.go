package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// testStore exercises the full CRUD contract against any backend.
func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	// Empty store.
	docs, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)

	_, err = s.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	// Create.
	created, err := s.Create(ctx, "Договор аренды", "1. Первый пункт.")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Договор аренды", created.Title)
	assert.False(t, created.CreatedAt.IsZero())

	second, err := s.Create(ctx, "Договор поставки", "1. Пункт.")
	require.NoError(t, err)
	assert.Greater(t, second.ID, created.ID)

	// Get.
	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.Text, got.Text)

	// List is ordered by id.
	docs, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, created.ID, docs[0].ID)
	assert.Equal(t, second.ID, docs[1].ID)

	// Partial update: only the text changes.
	updated, err := s.Update(ctx, created.ID, Update{Text: strPtr("2. Изменённый пункт.")})
	require.NoError(t, err)
	assert.Equal(t, "Договор аренды", updated.Title)
	assert.Equal(t, "2. Изменённый пункт.", updated.Text)

	_, err = s.Update(ctx, 9999, Update{Title: strPtr("x")})
	assert.ErrorIs(t, err, ErrNotFound)

	// Delete.
	require.NoError(t, s.Delete(ctx, created.ID))
	_, err = s.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, created.ID), ErrNotFound)

	docs, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	testStore(t, s)
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer s.Close()
	testStore(t, s)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	created, err := s.Create(ctx, "Договор", "текст")
	require.NoError(t, err)

	created.Title = "mutated"
	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Договор", got.Title)
}
