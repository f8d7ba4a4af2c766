package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id string) Entry {
	return NewAnswer(EntryID(id), "book-1", "q-"+id, "a-"+id, "", nil)
}

func TestStore_Add_prepends_newest_first(t *testing.T) {
	s := NewStore("book-1")

	require.NoError(t, s.Add(entry("e1")))
	require.NoError(t, s.Add(entry("e2")))

	got := s.Entries()
	require.Len(t, got, 2)
	assert.Equal(t, EntryID("e2"), got[0].ID)
	assert.Equal(t, EntryID("e1"), got[1].ID)
}

func TestStore_Add_rejects_duplicate_id(t *testing.T) {
	s := NewStore("book-1")

	require.NoError(t, s.Add(entry("e1")))
	err := s.Add(entry("e1"))

	assert.ErrorIs(t, err, ErrDuplicateEntry)
	assert.Equal(t, 1, s.Len())
}

func TestStore_Init_replaces_prior_content(t *testing.T) {
	s := NewStore("book-1")
	require.NoError(t, s.Add(entry("optimistic")))

	s.Init([]Entry{entry("loaded-2"), entry("loaded-1")})

	got := s.Entries()
	require.Len(t, got, 2)
	assert.Equal(t, EntryID("loaded-2"), got[0].ID)
	assert.Equal(t, EntryID("loaded-1"), got[1].ID)
}

func TestStore_Init_preserves_given_order(t *testing.T) {
	s := NewStore("book-1")

	// The service returns histories already newest-first; the store must not
	// reorder them.
	s.Init([]Entry{entry("c"), entry("a"), entry("b")})

	got := s.Entries()
	assert.Equal(t, EntryID("c"), got[0].ID)
	assert.Equal(t, EntryID("a"), got[1].ID)
	assert.Equal(t, EntryID("b"), got[2].ID)
}

func TestStore_Delete_removes_by_id(t *testing.T) {
	s := NewStore("book-1")
	require.NoError(t, s.Add(entry("e1")))
	require.NoError(t, s.Add(entry("e2")))

	s.Delete("e1")

	got := s.Entries()
	require.Len(t, got, 1)
	assert.Equal(t, EntryID("e2"), got[0].ID)
}

func TestStore_Delete_is_idempotent(t *testing.T) {
	s := NewStore("book-1")
	require.NoError(t, s.Add(entry("e1")))

	s.Delete("e1")
	s.Delete("e1")
	s.Delete("never-existed")

	assert.Equal(t, 0, s.Len())
}

func TestStore_Entries_returns_snapshot(t *testing.T) {
	s := NewStore("book-1")
	require.NoError(t, s.Add(entry("e1")))

	snap := s.Entries()
	s.Delete("e1")

	require.Len(t, snap, 1)
	assert.Equal(t, 0, s.Len())
}

func TestEntry_Failed_discriminates_variants(t *testing.T) {
	ok := NewAnswer("e1", "book-1", "who?", "Dean.", "quote", nil)
	bad := NewFailure("e2", "book-1", "who?", "no relevant passages")

	assert.False(t, ok.Failed())
	assert.True(t, bad.Failed())
	assert.Empty(t, ok.Err)
	assert.Empty(t, bad.Answer)
}

func TestNewFailure_defaults_empty_message(t *testing.T) {
	e := NewFailure("e1", "book-1", "who?", "")

	assert.True(t, e.Failed())
	assert.NotEmpty(t, e.Err)
}
