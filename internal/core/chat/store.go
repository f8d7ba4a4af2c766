package chat

import "errors"

// ErrDuplicateEntry is returned by Store.Add when an entry with the same ID
// is already present. Duplicate IDs are a programming defect upstream; the
// store refuses the add and leaves the history unchanged.
var ErrDuplicateEntry = errors.New("duplicate history entry id")

// Store holds the newest-first history log for a single book. It is created
// empty when a book becomes active and discarded wholesale when the active
// book changes; histories are never merged across books.
//
// All transitions are synchronous and atomic with respect to each other. The
// store itself is not safe for concurrent use; the owning service serializes
// access.
type Store struct {
	bookID  BookID
	entries []Entry
}

// NewStore creates an empty history store for the given book.
func NewStore(bookID BookID) *Store {
	return &Store{bookID: bookID}
}

// BookID returns the book this store belongs to.
func (s *Store) BookID() BookID {
	return s.bookID
}

// Init replaces the store's entire content with entries, discarding anything
// added before. The caller provides entries already newest-first; the store
// does not sort. Last transition applied wins: an Init racing an earlier Add
// simply overwrites it.
func (s *Store) Init(entries []Entry) {
	s.entries = make([]Entry, len(entries))
	copy(s.entries, entries)
}

// Add prepends entry so the newest exchange is always at index 0. Returns
// ErrDuplicateEntry if an entry with the same ID already exists.
func (s *Store) Add(entry Entry) error {
	for _, e := range s.entries {
		if e.ID == entry.ID {
			return ErrDuplicateEntry
		}
	}
	s.entries = append([]Entry{entry}, s.entries...)
	return nil
}

// Delete removes the entry with the given ID. Deleting a missing ID is a
// no-op, so deletion is idempotent.
func (s *Store) Delete(id EntryID) {
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// Entries returns a snapshot copy of the history, newest first.
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries in the history.
func (s *Store) Len() int {
	return len(s.entries)
}
