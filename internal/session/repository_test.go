package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songzhibin97/pairscout/internal/models"
)

func listings(names ...string) []models.Listing {
	out := make([]models.Listing, 0, len(names))
	for _, n := range names {
		out = append(out, models.Listing{DisplayName: n})
	}
	return out
}

func TestRepository_ReplaceResetsCursor(t *testing.T) {
	r := NewRepository()
	r.Replace(1, listings("a", "b", "c"))

	_, ok := r.SetCursor(1, 2)
	require.True(t, ok)

	r.Replace(1, listings("x", "y"))

	s, ok := r.Get(1)
	require.True(t, ok)
	assert.Equal(t, 0, s.Cursor)
	assert.Equal(t, listings("x", "y"), s.Results)
}

func TestRepository_SetCursorClamps(t *testing.T) {
	r := NewRepository()
	r.Replace(1, listings("a", "b", "c"))

	tests := []struct {
		index int
		want  int
	}{
		{-5, 0},
		{0, 0},
		{1, 1},
		{2, 2},
		{99, 2},
	}

	for _, tt := range tests {
		s, ok := r.SetCursor(1, tt.index)
		require.True(t, ok)
		assert.Equal(t, tt.want, s.Cursor, "index %d", tt.index)
	}
}

func TestRepository_Missing(t *testing.T) {
	r := NewRepository()

	_, ok := r.Get(1)
	assert.False(t, ok)

	_, ok = r.SetCursor(1, 0)
	assert.False(t, ok)

	r.Replace(1, nil)
	_, ok = r.SetCursor(1, 0)
	assert.False(t, ok)
}

func TestRepository_SnapshotIsolation(t *testing.T) {
	r := NewRepository()
	in := listings("a")
	r.Replace(1, in)
	in[0].DisplayName = "mutated"

	s, _ := r.Get(1)
	s.Results[0].DisplayName = "also mutated"

	again, _ := r.Get(1)
	assert.Equal(t, "a", again.Results[0].DisplayName)
}

func TestRepository_UsersIndependent(t *testing.T) {
	r := NewRepository()
	r.Replace(1, listings("a", "b"))
	r.Replace(2, listings("c"))
	r.SetCursor(1, 1)

	s2, _ := r.Get(2)
	assert.Equal(t, 0, s2.Cursor)
	assert.Equal(t, listings("c"), s2.Results)
}
