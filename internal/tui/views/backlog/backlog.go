// Package backlog renders the question/answer history for the selected book:
// questions, markdown answers, supporting quotes, and reference passages with
// the located quote spans highlighted.
package backlog

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/librarian/internal/core/chat"
	"github.com/colonyops/librarian/internal/core/highlight"
	"github.com/colonyops/librarian/internal/core/styles"
)

const (
	cursorGlyph  = "▌ "
	refIndent    = "  "
	questionMark = "❯"
)

// Renderer renders history entries at a fixed width. Recreate it on resize;
// the glamour renderer is bound to a word-wrap width.
type Renderer struct {
	width    int
	markdown *glamour.TermRenderer
}

// NewRenderer creates a renderer for the given content width.
func NewRenderer(width int) *Renderer {
	if width <= 0 {
		width = 80
	}

	md, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		// Fall back to raw answers rather than failing the whole view.
		log.Debug().Err(err).Msg("failed to create markdown renderer, showing raw answers")
		md = nil
	}

	return &Renderer{width: width, markdown: md}
}

// Width returns the content width the renderer was built for.
func (r *Renderer) Width() int {
	return r.width
}

// Entry renders one history entry. selected draws the cursor gutter; expanded
// includes the full reference passages, collapsed shows only a count.
func (r *Renderer) Entry(e chat.Entry, selected, expanded bool) string {
	var b strings.Builder

	question := styles.QuestionStyle.Render(questionMark + " " + e.Question)
	if selected {
		question = styles.EntryCursorStyle.Render(cursorGlyph) + question
	}
	b.WriteString(question)
	b.WriteString("\n")

	if e.Failed() {
		b.WriteString(styles.AnswerErrorStyle.Render("Error: " + e.Err))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(r.renderAnswer(e.Answer))
	b.WriteString("\n")

	if e.Quote != "" {
		b.WriteString(styles.QuoteStyle.Render("“" + e.Quote + "”"))
		b.WriteString("\n")
	}

	if len(e.References) == 0 {
		return b.String()
	}

	if !expanded {
		b.WriteString(styles.TextMutedStyle.Render(
			fmt.Sprintf("… %d reference(s), enter to expand", len(e.References))))
		b.WriteString("\n")
		return b.String()
	}

	for _, ref := range e.References {
		b.WriteString(r.Reference(ref, e.Quote))
	}
	return b.String()
}

// Reference renders one passage with the quote's located spans highlighted.
func (r *Renderer) Reference(ref chat.Reference, quote string) string {
	var b strings.Builder

	header := string(ref.ID)
	if ref.Metadata != nil && ref.Metadata.ChapterTitle != "" {
		header = ref.Metadata.ChapterTitle + " " + header
	}
	b.WriteString(refIndent)
	b.WriteString(styles.RefHeaderStyle.Render(header))
	b.WriteString("\n")

	b.WriteString(refIndent)
	b.WriteString(Segments(highlight.Locate(quote, ref.Content)))
	b.WriteString("\n")

	if ref.Metadata != nil && len(ref.Metadata.MergedIDs) > 0 {
		merged := make([]string, 0, len(ref.Metadata.MergedIDs))
		for _, id := range ref.Metadata.MergedIDs {
			merged = append(merged, string(id))
		}
		b.WriteString(refIndent)
		b.WriteString(styles.RefMetaStyle.Render("merged: " + strings.Join(merged, ", ")))
		b.WriteString("\n")
	}

	return b.String()
}

// Segments renders located segments, styling the highlighted spans. The
// concatenated plain text is exactly what the localizer produced; styling
// never adds or removes characters.
func Segments(segs []highlight.Segment) string {
	var b strings.Builder
	for _, s := range segs {
		if s.Highlighted {
			b.WriteString(styles.RefHighlightStyle.Render(s.Text))
			continue
		}
		b.WriteString(styles.RefContentStyle.Render(s.Text))
	}
	return b.String()
}

func (r *Renderer) renderAnswer(answer string) string {
	if r.markdown == nil {
		return answer
	}
	rendered, err := r.markdown.Render(answer)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render markdown, showing raw answer")
		return answer
	}
	return strings.TrimRight(rendered, "\n")
}
