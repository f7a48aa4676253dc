// Package normalize repairs the idiosyncratic BibTeX records emitted by
// publisher citation-export tools. Clean applies a fixed sequence of
// best-effort fixes to one record; every step checks field presence first
// and never fails, so a defect in one field can't take down the record.
package normalize

import (
	"regexp"
	"strings"

	"github.com/pont-us/bibgulp/internal/record"
)

// Clean normalizes a record in place. The step order matters only where
// one step feeds another: authors must be split before the citation key is
// derived from them, and the key must be derived before the author list is
// collapsed and the title is brace-protected.
func Clean(r *record.Record) {
	recoverKey(r)
	r.TrimSpace()
	r.Authors = SplitAuthors(r.Author)

	fixPages(r)
	if len(r.Authors) == 0 {
		r.Authors = []string{"Anonymous"}
	}
	if r.Has("link") {
		r.Set("url", r.Get("link"))
		r.Delete("link")
	}
	if r.Has("keyword") {
		r.Set("keywords", r.Get("keyword"))
		r.Delete("keyword")
	}
	fixKeywords(r)
	if r.Has("note") && r.Note == "" {
		r.Delete("note")
	}
	if !r.Has("year") {
		r.Year = "XXXX"
	}
	r.Number = strings.ReplaceAll(r.Number, "–", "--")

	r.Key = CiteKey(r)
	r.Author = ToLatex(strings.Join(r.Authors, " and "))
	r.Authors = nil
	protectTitle(r)
	stripDOI(r)
	cleanAbstract(r)
}

// recoverKey handles a known parser defect: a blank citation key swallows
// the entry's first field, leaving an identifier like "\ntitle=\"...".
// The left side of the first "=" (minus the leading newline) is the field
// name; the right side, minus one leading character (the opening quote),
// is its value. Identifiers without "=" are left alone.
func recoverKey(r *record.Record) {
	if !strings.HasPrefix(r.Key, "\n") || !strings.Contains(r.Key, "=") {
		return
	}
	name, value, _ := strings.Cut(strings.TrimPrefix(r.Key, "\n"), "=")
	if value != "" {
		value = value[1:]
	}
	r.Set(name, value)
}

// pageRange matches the first two maximal digit runs in a pages value.
var pageRange = regexp.MustCompile(`(\d+)\D+(\d+)`)

// fixPages rewrites page ranges like "123-145", "123 to 145" or
// "pp. 123-145" as "123--145". Values without two digit runs are left
// unchanged.
func fixPages(r *record.Record) {
	if r.Pages == "" {
		return
	}
	if m := pageRange.FindStringSubmatch(r.Pages); m != nil {
		r.Pages = m[1] + "--" + m[2]
	}
}

// fixKeywords lowercases the keywords field and settles on "; " as the
// separator: comma-separated lists are converted, and bare semicolons get
// a following space.
func fixKeywords(r *record.Record) {
	if r.Keywords == "" {
		return
	}
	kw := strings.ToLower(r.Keywords)
	if strings.Contains(kw, ",") && !strings.Contains(kw, ";") {
		kw = strings.ReplaceAll(kw, ",", ";")
	}
	if strings.Contains(kw, ";") && !strings.Contains(kw, "; ") {
		kw = strings.ReplaceAll(kw, ";", "; ")
	}
	r.Keywords = kw
}

// doiPrefix matches the URL dressing some publishers wrap around DOIs.
var doiPrefix = regexp.MustCompile(`^https?://(dx\.)?doi\.org/`)

// stripDOI reduces a DOI-as-URL to the bare DOI. Elsevier in particular
// exports "https://doi.org/10.X/Y" in the doi field.
func stripDOI(r *record.Record) {
	if r.DOI == "" {
		return
	}
	r.DOI = doiPrefix.ReplaceAllString(r.DOI, "")
}

// cleanAbstract removes escaped-brace artifacts, and for ScienceDirect
// downloads the literal "Abstract " prefix the exporter glues onto the
// abstract text.
func cleanAbstract(r *record.Record) {
	abs := r.Abstract
	abs = strings.ReplaceAll(abs, `\{`, "")
	abs = strings.ReplaceAll(abs, `\}`, "")
	if strings.Contains(r.URL, "sciencedirect") {
		abs = strings.TrimPrefix(abs, "Abstract ")
	}
	r.Abstract = abs
}
