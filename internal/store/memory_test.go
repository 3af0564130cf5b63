package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/johanneslumpe/typescriptle/internal/session"
	"github.com/johanneslumpe/typescriptle/internal/words"
)

func TestMemoryStoreSaveGet(t *testing.T) {
	ctx := context.Background()
	list, err := words.New([]string{"crane"}, []string{"crane"}, 5)
	assert.NoError(t, err)
	s, err := session.New(list, "crane")
	assert.NoError(t, err)

	m := NewMemoryStore()
	assert.NoError(t, m.Save(ctx, s))

	got, err := m.Get(ctx, s.ID())
	assert.NoError(t, err)
	assert.Same(t, s, got)

	_, err = m.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
