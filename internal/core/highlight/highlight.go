// Package highlight locates a supporting quote inside a reference passage and
// splits the passage into plain and highlighted segments for rendering.
package highlight

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Segment is one run of passage text, annotated with whether it is part of
// the located quote. Segments are a presentation annotation only; they are
// never written back into stored data.
type Segment struct {
	Text        string
	Highlighted bool
}

// Segments shorter than this (in runes, after trimming) are discarded during
// the fallback scan. Matching fragments like "a" or "is" would highlight
// incidental words all over the passage.
const minSegmentRunes = 4

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	// Sentence-level delimiters the quote is split on when no unique exact
	// match exists: commas, periods, question and exclamation marks, and
	// smart quotes.
	segmentDelims = regexp.MustCompile(`[,.?!“”]`)
)

// normalize collapses every maximal whitespace run, newlines included, into a
// single space. Lossy for whitespace only; every other character is kept.
func normalize(s string) string {
	return whitespaceRun.ReplaceAllString(s, " ")
}

// Locate maps quote onto content and returns the passage as an ordered
// sequence of plain and highlighted segments. The concatenated segment texts
// reproduce the whitespace-normalized passage exactly (the original passage
// when the quote is blank); only the annotation is added, never new text.
//
// An exact case-insensitive occurrence of the whole quote is preferred, but
// only when it is unambiguous: zero or multiple occurrences both fall back to
// scanning for the quote's longer clauses individually.
func Locate(quote, content string) []Segment {
	if strings.TrimSpace(quote) == "" {
		return []Segment{{Text: content}}
	}

	q := strings.TrimSpace(normalize(quote))
	c := normalize(content)

	// Quote text is always escaped so pattern metacharacters in it cannot be
	// interpreted as syntax.
	exact := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(q))
	if locs := exact.FindAllStringIndex(c, -1); len(locs) == 1 {
		return split(c, locs)
	}

	segs := fallbackSegments(q)
	if len(segs) == 0 {
		return []Segment{{Text: c}}
	}

	alts := make([]string, len(segs))
	for i, s := range segs {
		alts[i] = regexp.QuoteMeta(s)
	}
	scan := regexp.MustCompile(`(?i)` + strings.Join(alts, "|"))
	return split(c, scan.FindAllStringIndex(c, -1))
}

// fallbackSegments splits the normalized quote into clauses worth matching on
// their own, longest first so the alternation prefers the longest match at
// any given position.
func fallbackSegments(q string) []string {
	var segs []string
	for _, part := range segmentDelims.Split(q, -1) {
		part = strings.TrimSpace(part)
		if utf8.RuneCountInString(part) < minSegmentRunes {
			continue
		}
		segs = append(segs, part)
	}
	sort.SliceStable(segs, func(i, j int) bool {
		return len(segs[i]) > len(segs[j])
	})
	return segs
}

// split partitions content around the matched spans, dropping empty leading
// and trailing pieces. Spans are non-overlapping and ordered left to right.
func split(content string, locs [][]int) []Segment {
	var out []Segment
	cur := 0
	for _, loc := range locs {
		if loc[0] > cur {
			out = append(out, Segment{Text: content[cur:loc[0]]})
		}
		out = append(out, Segment{Text: content[loc[0]:loc[1]], Highlighted: true})
		cur = loc[1]
	}
	if cur < len(content) {
		out = append(out, Segment{Text: content[cur:]})
	}
	if len(out) == 0 {
		out = []Segment{{Text: content}}
	}
	return out
}
