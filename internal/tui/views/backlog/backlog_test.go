package backlog

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/librarian/internal/core/chat"
	"github.com/colonyops/librarian/internal/core/highlight"
)

func TestSegments_plain_text_reconstructs_passage(t *testing.T) {
	segs := highlight.Locate("Dean stops.", "around, Dean stops.")

	rendered := Segments(segs)

	assert.Equal(t, "around, Dean stops.", ansi.Strip(rendered))
}

func TestSegments_no_quote_no_styling_surprises(t *testing.T) {
	segs := highlight.Locate("", "mirror Dean discovers a smile.")

	assert.Equal(t, "mirror Dean discovers a smile.", ansi.Strip(Segments(segs)))
}

func TestRenderer_Entry_error_variant(t *testing.T) {
	r := NewRenderer(60)
	e := chat.NewFailure("l1", "b1", "Who is Dean?", "no relevant passages")

	out := ansi.Strip(r.Entry(e, false, false))

	assert.Contains(t, out, "Who is Dean?")
	assert.Contains(t, out, "Error: no relevant passages")
	assert.NotContains(t, out, "reference")
}

func TestRenderer_Entry_collapsed_shows_reference_count(t *testing.T) {
	r := NewRenderer(60)
	e := chat.NewAnswer("l1", "b1", "Who is Dean?", "Dean is a character.", "", []chat.Reference{
		{ID: "r1", Content: "around, Dean stops."},
		{ID: "r2", Content: "mirror Dean discovers a smile."},
	})

	out := ansi.Strip(r.Entry(e, false, false))

	assert.Contains(t, out, "2 reference(s)")
	assert.NotContains(t, out, "around, Dean stops.")
}

func TestRenderer_Entry_expanded_includes_passages(t *testing.T) {
	r := NewRenderer(60)
	e := chat.NewAnswer("l1", "b1", "Who is Dean?", "Dean is a character.",
		"Dean stops.", []chat.Reference{
			{ID: "r1", Content: "around, Dean stops."},
		})

	out := ansi.Strip(r.Entry(e, false, true))

	assert.Contains(t, out, "around, Dean stops.")
	assert.Contains(t, out, "“Dean stops.”")
}

func TestRenderer_Entry_selected_draws_cursor(t *testing.T) {
	r := NewRenderer(60)
	e := chat.NewAnswer("l1", "b1", "Who is Dean?", "An answer.", "", nil)

	selected := ansi.Strip(r.Entry(e, true, false))
	unselected := ansi.Strip(r.Entry(e, false, false))

	assert.True(t, strings.HasPrefix(selected, "▌"))
	assert.False(t, strings.HasPrefix(unselected, "▌"))
}

func TestRenderer_Reference_includes_chapter_and_merged_ids(t *testing.T) {
	r := NewRenderer(60)
	ref := chat.Reference{
		ID:      "sentence:25:26-27/69",
		Content: "Afterwards Dean asks",
		Metadata: &chat.RefMetadata{
			ChapterIndex: 25,
			ChapterTitle: "[25]",
			MergedIDs:    []chat.RefID{"sentence:25:26/69", "sentence:25:27/69"},
		},
	}

	out := ansi.Strip(r.Reference(ref, ""))

	assert.Contains(t, out, "[25] sentence:25:26-27/69")
	assert.Contains(t, out, "merged: sentence:25:26/69, sentence:25:27/69")
}

func TestNewRenderer_defaults_non_positive_width(t *testing.T) {
	r := NewRenderer(0)

	require.NotNil(t, r)
	assert.Equal(t, 80, r.Width())
}
