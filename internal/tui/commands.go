package tui

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/librarian/internal/core/chat"
	"github.com/colonyops/librarian/internal/librarian"
)

// Collaborator calls run on command goroutines and come back as messages.
// The chat service applies its own store mutations; the messages only tell
// the model to re-render and adjust in-flight accounting.
type (
	booksLoadedMsg struct {
		books []chat.Book
		err   error
	}
	historyLoadedMsg struct{}
	askResolvedMsg   struct{}
	entryDeletedMsg  struct{}
)

func loadBooksCmd(api librarian.Client, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		books, err := api.ListBooks(ctx)
		return booksLoadedMsg{books: books, err: err}
	}
}

func loadHistoryCmd(svc *librarian.ChatService, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		svc.LoadHistory(ctx)
		return historyLoadedMsg{}
	}
}

func askCmd(svc *librarian.ChatService, question string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		svc.Submit(ctx, question)
		return askResolvedMsg{}
	}
}

func deleteEntryCmd(svc *librarian.ChatService, id chat.EntryID, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		svc.Remove(ctx, id)
		return entryDeletedMsg{}
	}
}
