package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateReturnsSameSession(t *testing.T) {
	repo := NewSessionRepository()

	first := repo.GetOrCreate("user-1")
	second := repo.GetOrCreate("user-1")
	assert.Same(t, first, second)

	other := repo.GetOrCreate("user-2")
	assert.NotSame(t, first, other)
}

func TestGet(t *testing.T) {
	repo := NewSessionRepository()

	_, found := repo.Get("user-1")
	assert.False(t, found)

	created := repo.GetOrCreate("user-1")
	got, found := repo.Get("user-1")
	require.True(t, found)
	assert.Same(t, created, got)
}

func TestDelete(t *testing.T) {
	repo := NewSessionRepository()

	first := repo.GetOrCreate("user-1")
	repo.Delete("user-1")

	_, found := repo.Get("user-1")
	assert.False(t, found)

	fresh := repo.GetOrCreate("user-1")
	assert.NotSame(t, first, fresh)
}
