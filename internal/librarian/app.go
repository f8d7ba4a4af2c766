// Package librarian holds the application services that sit between the
// commands/TUI and the remote librarian service.
package librarian

import (
	"context"

	"github.com/colonyops/librarian/internal/core/chat"
	"github.com/colonyops/librarian/internal/core/config"
)

// Client is the narrow contract the services need from the remote librarian
// service. internal/client provides the HTTP implementation; tests provide
// fakes.
type Client interface {
	ListBooks(ctx context.Context) ([]chat.Book, error)
	ListHistory(ctx context.Context, bookID chat.BookID) ([]chat.Entry, error)
	Ask(ctx context.Context, bookID chat.BookID, question string) (*chat.Entry, error)
	DeleteEntry(ctx context.Context, bookID chat.BookID, id chat.EntryID) error
}

// Notifier receives transient user-facing notifications. The TUI notify bus
// implements it.
type Notifier interface {
	Errorf(format string, args ...any)
	Warnf(format string, args ...any)
	Infof(format string, args ...any)
}

// App is the central entry point for all librarian operations. Commands and
// TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Chat   *ChatService
	API    Client
	Config *config.Config
}

// NewApp constructs an App from explicit dependencies.
func NewApp(api Client, notifier Notifier, cfg *config.Config) *App {
	return &App{
		Chat:   NewChatService(api, notifier),
		API:    api,
		Config: cfg,
	}
}
