// Package client implements the HTTP client for the librarian service. It is
// the only component that knows the wire format; everything above it works
// with the domain types in internal/core/chat.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/colonyops/librarian/internal/core/chat"
	"github.com/colonyops/librarian/internal/core/logging"
	"github.com/colonyops/librarian/pkg/randid"
)

// ErrUnexpectedStatus wraps non-2xx responses from the service.
var ErrUnexpectedStatus = errors.New("unexpected response status")

// Client talks to the librarian HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client against baseURL. timeout bounds each request end to
// end; zero means no timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Wire types. Field names follow the service's JSON: books carry book_id and
// name, history entries carry log_id and rel_docs.
type bookJSON struct {
	BookID string `json:"book_id"`
	Name   string `json:"name"`
}

type refMetadataJSON struct {
	ChapterIndex int      `json:"chapter_index"`
	ChapterTitle string   `json:"chapter_title"`
	PrevID       string   `json:"prev_id"`
	NextID       string   `json:"next_id"`
	MergedIDs    []string `json:"merged_ids"`
}

type refJSON struct {
	ID       string           `json:"id"`
	Content  string           `json:"content"`
	Metadata *refMetadataJSON `json:"metadata"`
}

type entryJSON struct {
	LogID    string    `json:"log_id"`
	Question string    `json:"question"`
	Answer   *string   `json:"answer"`
	Quote    *string   `json:"quote"`
	Error    *string   `json:"error"`
	RelDocs  []refJSON `json:"rel_docs"`
}

// ListBooks returns the books registered with the service.
func (c *Client) ListBooks(ctx context.Context) ([]chat.Book, error) {
	var raw []bookJSON
	if err := c.get(ctx, "/api/books", &raw); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	books := make([]chat.Book, 0, len(raw))
	for _, b := range raw {
		books = append(books, chat.Book{ID: chat.BookID(b.BookID), Title: b.Name})
	}
	return books, nil
}

// ListHistory returns the question/answer history for a book, newest first.
// The service stores logs oldest first; the reversal happens here so callers
// never see server ordering.
func (c *Client) ListHistory(ctx context.Context, bookID chat.BookID) ([]chat.Entry, error) {
	if bookID == "" {
		return nil, nil
	}

	var raw []entryJSON
	path := fmt.Sprintf("/api/books/%s/history", url.PathEscape(string(bookID)))
	if err := c.get(ctx, path, &raw); err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	entries := make([]chat.Entry, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		entries = append(entries, raw[i].toEntry(bookID))
	}
	return entries, nil
}

// Ask submits a question about a book. A nil entry with a nil error signals
// invalid input (blank question or no book) and nothing to add; answer-level
// failures come back as the error variant of chat.Entry.
func (c *Client) Ask(ctx context.Context, bookID chat.BookID, question string) (*chat.Entry, error) {
	if bookID == "" || question == "" {
		return nil, nil
	}

	path := fmt.Sprintf("/api/books/%s/ask?q=%s",
		url.PathEscape(string(bookID)), url.QueryEscape(question))

	ctx = logging.WithRequestID(ctx, randid.Generate(8))
	ctx = logging.WithBookID(ctx, string(bookID))
	log.Debug().Ctx(ctx).Msg("asking question")

	var raw entryJSON
	if err := c.do(ctx, http.MethodPost, path, &raw); err != nil {
		return nil, fmt.Errorf("ask: %w", err)
	}

	entry := raw.toEntry(bookID)
	log.Debug().Ctx(ctx).Str("log_id", string(entry.ID)).
		Bool("failed", entry.Failed()).Msg("question answered")
	return &entry, nil
}

// DeleteEntry removes one history entry on the server.
func (c *Client) DeleteEntry(ctx context.Context, bookID chat.BookID, id chat.EntryID) error {
	path := fmt.Sprintf("/api/books/%s/history/%s",
		url.PathEscape(string(bookID)), url.PathEscape(string(id)))

	if err := c.do(ctx, http.MethodDelete, path, nil); err != nil {
		return fmt.Errorf("delete history entry: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, out)
}

func (c *Client) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		return fmt.Errorf("%s %s: %w: %d", method, path, ErrUnexpectedStatus, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// toEntry maps a wire entry onto the domain union. The service marks an
// answer-level failure with a non-empty error field; everything else is a
// success, with rel_docs defaulting to an empty reference list.
func (e entryJSON) toEntry(bookID chat.BookID) chat.Entry {
	id := chat.EntryID(e.LogID)

	if e.Error != nil && *e.Error != "" {
		return chat.NewFailure(id, bookID, e.Question, *e.Error)
	}

	var answer, quote string
	if e.Answer != nil {
		answer = *e.Answer
	}
	if e.Quote != nil {
		quote = *e.Quote
	}

	refs := make([]chat.Reference, 0, len(e.RelDocs))
	for _, r := range e.RelDocs {
		refs = append(refs, r.toReference())
	}
	return chat.NewAnswer(id, bookID, e.Question, answer, quote, refs)
}

func (r refJSON) toReference() chat.Reference {
	ref := chat.Reference{
		ID:      chat.RefID(r.ID),
		Content: r.Content,
	}
	if r.Metadata != nil {
		meta := &chat.RefMetadata{
			ChapterIndex: r.Metadata.ChapterIndex,
			ChapterTitle: r.Metadata.ChapterTitle,
			PrevID:       chat.RefID(r.Metadata.PrevID),
			NextID:       chat.RefID(r.Metadata.NextID),
		}
		for _, id := range r.Metadata.MergedIDs {
			meta.MergedIDs = append(meta.MergedIDs, chat.RefID(id))
		}
		ref.Metadata = meta
	}
	return ref
}
