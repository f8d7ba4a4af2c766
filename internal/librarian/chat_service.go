package librarian

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/colonyops/librarian/internal/core/chat"
	"github.com/colonyops/librarian/internal/core/logging"
)

// ChatService orchestrates the ask/delete flows for the currently active
// book and owns that book's history store. All collaborator failures are
// absorbed here and surfaced through the Notifier; nothing propagates past
// this service.
//
// Bubble Tea resolves commands on goroutines, so store access is serialized
// with a mutex even though transitions themselves stay synchronous. In-flight
// requests are tagged with the epoch captured at issue time; results arriving
// after the active book changed are dropped instead of landing in the wrong
// book's log.
type ChatService struct {
	client   Client
	notifier Notifier
	log      zerolog.Logger

	mu    sync.Mutex
	store *chat.Store
	epoch uint64
}

// NewChatService creates a chat service with no active book.
func NewChatService(client Client, notifier Notifier) *ChatService {
	return &ChatService{
		client:   client,
		notifier: notifier,
		log:      logging.Component("chat"),
	}
}

// SetActiveBook swaps in a fresh, empty store for bookID and invalidates any
// in-flight requests issued for the previous book. Switching books always
// replaces the whole log; histories are never merged.
func (s *ChatService) SetActiveBook(bookID chat.BookID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store = chat.NewStore(bookID)
	s.epoch++
}

// ActiveBook returns the book the service currently holds history for, or ""
// when no book is active.
func (s *ChatService) ActiveBook() chat.BookID {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return ""
	}
	return s.store.BookID()
}

// Entries returns a newest-first snapshot of the active book's history.
func (s *ChatService) Entries() []chat.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return nil
	}
	return s.store.Entries()
}

// LoadHistory fetches the active book's history from the service and
// replaces the store's content with it. Entries added optimistically while
// the load was in flight are discarded; the init result wins.
func (s *ChatService) LoadHistory(ctx context.Context) {
	bookID, epoch, ok := s.inFlight()
	if !ok {
		return
	}

	entries, err := s.client.ListHistory(ctx, bookID)
	if err != nil {
		s.log.Error().Err(err).Str("book_id", string(bookID)).Msg("failed to load history")
		s.notifier.Errorf("Failed to load history.")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		s.log.Debug().Str("book_id", string(bookID)).Msg("dropping stale history load")
		return
	}
	s.store.Init(entries)
}

// Submit asks a question about the active book and, on resolution, prepends
// the resulting entry to the history. Blank questions and a missing active
// book are silently absorbed. A transport or server failure is reported as a
// transient notification and leaves the history untouched; a failed ask
// never produces a partial entry.
//
// Submit may be called again before an earlier call resolves; entries land
// in completion order, not submission order.
func (s *ChatService) Submit(ctx context.Context, question string) {
	if strings.TrimSpace(question) == "" {
		return
	}
	bookID, epoch, ok := s.inFlight()
	if !ok {
		return
	}

	entry, err := s.client.Ask(ctx, bookID, question)
	if err != nil {
		s.log.Error().Err(err).Str("book_id", string(bookID)).Msg("ask failed")
		s.notifier.Errorf("Failed to ask question.")
		return
	}
	if entry == nil {
		// The service's signal for invalid input: nothing to add.
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		s.log.Debug().Str("book_id", string(bookID)).Str("log_id", string(entry.ID)).
			Msg("dropping answer for switched-away book")
		return
	}
	if err := s.store.Add(*entry); err != nil {
		if errors.Is(err, chat.ErrDuplicateEntry) {
			// Upstream defect; drop the duplicate and keep the log intact.
			s.log.Error().Str("log_id", string(entry.ID)).Msg("duplicate history entry dropped")
			return
		}
		s.log.Error().Err(err).Msg("failed to record history entry")
	}
}

// Remove deletes an entry remotely and then removes it from the local log
// unconditionally. The local removal is not rolled back when the remote
// delete fails; local Delete is idempotent, so retrying is always safe.
func (s *ChatService) Remove(ctx context.Context, id chat.EntryID) {
	bookID, _, ok := s.inFlight()
	if !ok {
		return
	}

	if err := s.client.DeleteEntry(ctx, bookID, id); err != nil {
		s.log.Error().Err(err).Str("log_id", string(id)).Msg("remote delete failed")
		s.notifier.Errorf("Failed to delete entry on the server.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store != nil && s.store.BookID() == bookID {
		s.store.Delete(id)
	}
}

// inFlight captures the active book and epoch for tagging a request.
func (s *ChatService) inFlight() (chat.BookID, uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil || s.store.BookID() == "" {
		return "", 0, false
	}
	return s.store.BookID(), s.epoch, true
}
