// Package chat defines the book question-answering domain types and the
// per-book history store.
package chat

// BookID identifies a book registered with the librarian service.
type BookID string

// RefID identifies a single retrieved passage within a book.
type RefID string

// EntryID identifies one question/answer exchange in a book's history.
type EntryID string

// Book is a book the service can answer questions about.
type Book struct {
	ID    BookID
	Title string
}

// RefMetadata is descriptive positioning info attached to a reference.
// It is never mutated by the client.
type RefMetadata struct {
	ChapterIndex int
	ChapterTitle string
	PrevID       RefID
	NextID       RefID
	MergedIDs    []RefID
}

// Reference is a passage retrieved from a book as evidence for an answer.
// Content is immutable once received and may contain internal line breaks.
type Reference struct {
	ID       RefID
	Content  string
	Metadata *RefMetadata
}

// Entry is one immutable question/answer exchange. It is a tagged union over
// a success and an error variant: exactly one of Answer/Err carries the
// outcome. Construct entries with NewAnswer or NewFailure; the zero value is
// not a valid entry.
type Entry struct {
	ID       EntryID
	BookID   BookID
	Question string

	// Success variant. Quote may be empty when the service supplied no
	// supporting excerpt.
	Answer     string
	Quote      string
	References []Reference

	// Error variant. Non-empty exactly when the service failed to answer.
	Err string
}

// NewAnswer builds the success variant of an entry.
func NewAnswer(id EntryID, bookID BookID, question, answer, quote string, refs []Reference) Entry {
	return Entry{
		ID:         id,
		BookID:     bookID,
		Question:   question,
		Answer:     answer,
		Quote:      quote,
		References: refs,
	}
}

// NewFailure builds the error variant of an entry. An answer-level failure is
// valid, displayable data, not a transport error.
func NewFailure(id EntryID, bookID BookID, question, errMsg string) Entry {
	if errMsg == "" {
		errMsg = "the librarian could not answer this question"
	}
	return Entry{
		ID:       id,
		BookID:   bookID,
		Question: question,
		Err:      errMsg,
	}
}

// Failed reports whether the entry is the error variant.
func (e Entry) Failed() bool {
	return e.Err != ""
}
