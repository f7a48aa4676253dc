// Package render serializes normalized records into BibTeX text.
package render

import (
	"fmt"
	"strings"

	"github.com/pont-us/bibgulp/internal/record"
)

// fieldOrder is the canonical emission order for the fields a reference
// manager cares about most. Everything else follows in the record's own
// order, with the abstract always last.
var fieldOrder = []string{
	"author", "title", "year", "journal", "volume", "number", "pages",
	"editor", "booktitle", "series", "keywords",
}

// Wrapping parameters for field lines.
const (
	wrapWidth     = 78
	initialIndent = "  "
	contIndent    = "    "
)

// Render serializes a record as one BibTeX block:
//
//	@article{smith1999rise,
//	  author = {Smith, John},
//	  ...
//	  abstract = {...}
//	}
//
// Fields are emitted in canonical order, long lines wrapped at 78 columns,
// and the block terminated with a blank line so consecutive records stay
// separated when pasted together.
func Render(r *record.Record) string {
	lines := []string{fmt.Sprintf("@%s{%s,", r.EntryType, r.Key)}

	ordered := make(map[string]bool, len(fieldOrder))
	for _, name := range fieldOrder {
		ordered[name] = true
		if r.Has(name) {
			lines = append(lines, fieldLines(name, r.Get(name))...)
		}
	}
	for _, name := range r.Names() {
		if ordered[name] || name == "abstract" {
			continue
		}
		lines = append(lines, fieldLines(name, r.Get(name))...)
	}
	// Abstract goes last, present even when empty.
	lines = append(lines, fieldLines("abstract", r.Abstract)...)

	// The final field keeps no trailing comma.
	last := len(lines) - 1
	lines[last] = strings.TrimSuffix(lines[last], ",")

	return strings.Join(lines, "\n") + "\n}\n\n"
}

// RenderAll serializes records in order into one text block.
func RenderAll(recs []*record.Record) string {
	var b strings.Builder
	for _, r := range recs {
		b.WriteString(Render(r))
	}
	return b.String()
}

// fieldLines renders one "name = {value}," line, word-wrapped.
func fieldLines(name, value string) []string {
	return wrap(fmt.Sprintf("%s = {%s},", name, value))
}

// wrap greedily wraps text at whitespace boundaries, never mid-word, with
// a two-space first-line indent and four-space continuation indent. Words
// longer than the width get a line of their own. Whitespace runs between
// words keep their width (tabs and newlines become spaces) while the words
// share a line, and are dropped at a break.
func wrap(text string) []string {
	var lines []string
	var cur strings.Builder
	cur.WriteString(initialIndent)
	width := cur.Len()

	for _, t := range words(text) {
		switch {
		case cur.Len() == width:
			cur.WriteString(t.word)
		case cur.Len()+t.gap+len(t.word) <= wrapWidth:
			cur.WriteString(strings.Repeat(" ", t.gap))
			cur.WriteString(t.word)
		default:
			lines = append(lines, cur.String())
			cur.Reset()
			cur.WriteString(contIndent)
			width = cur.Len()
			cur.WriteString(t.word)
		}
	}
	if cur.Len() > width {
		lines = append(lines, cur.String())
	}
	return lines
}

// chunk is one word plus the width of the whitespace run before it.
type chunk struct {
	gap  int
	word string
}

func words(text string) []chunk {
	var cs []chunk
	i := 0
	for i < len(text) {
		j := i
		for j < len(text) && isSpace(text[j]) {
			j++
		}
		k := j
		for k < len(text) && !isSpace(text[k]) {
			k++
		}
		if k == j {
			break
		}
		cs = append(cs, chunk{gap: j - i, word: text[j:k]})
		i = k
	}
	return cs
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
