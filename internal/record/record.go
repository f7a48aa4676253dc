// Package record defines the bibliographic record type that flows through
// the cleaning pipeline.
package record

import "strings"

// Field is a named BibTeX field value. It is used for fields that have no
// dedicated slot on Record.
type Field struct {
	Name  string
	Value string
}

// Record represents one parsed bibliography entry. Known BibTeX fields get
// explicit slots so the renderer can emit them in a fixed order; anything
// else lands in Extra, which preserves first-set order. A field assigned
// the empty string through Set is still present (publisher exports do
// emit "volume = {},") and renders as an empty value; only Delete removes
// a field.
//
// The author field is two-phase: parsers fill Author with the raw value,
// normalization splits it into Authors (one "Last, First" string per
// author) and later collapses the list back into Author as a single
// "and"-joined, LaTeX-escaped line. Authors is only populated between
// those two steps.
type Record struct {
	EntryType string // e.g. "article"
	Key       string // citation key, possibly malformed as parsed

	Author  string   // raw value in, collapsed line out
	Authors []string // normalization phase only

	Title     string
	Year      string
	Journal   string
	Volume    string
	Number    string
	Pages     string
	Editor    string
	Booktitle string
	Series    string
	Keywords  string

	URL  string
	DOI  string
	Note string

	Abstract string

	Extra []Field

	// empties tracks known fields explicitly set to the empty string,
	// since a bare slot can't distinguish "empty value" from "absent".
	empties map[string]bool
}

// New returns a record with the given entry type and raw citation key.
func New(entryType, key string) *Record {
	return &Record{EntryType: entryType, Key: key}
}

// Get returns the value of the named field, or "" if absent.
func (r *Record) Get(name string) string {
	if slot := r.slot(name); slot != nil {
		return *slot
	}
	for _, f := range r.Extra {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// Set assigns the named field, routing known names to their slots and
// everything else to the extras bag. Setting the empty string keeps the
// field present.
func (r *Record) Set(name, value string) {
	if slot := r.slot(name); slot != nil {
		*slot = value
		if value == "" {
			r.markEmpty(name)
		} else {
			delete(r.empties, name)
		}
		return
	}
	for i := range r.Extra {
		if r.Extra[i].Name == name {
			r.Extra[i].Value = value
			return
		}
	}
	r.Extra = append(r.Extra, Field{Name: name, Value: value})
}

// Delete removes the named field.
func (r *Record) Delete(name string) {
	if slot := r.slot(name); slot != nil {
		*slot = ""
		delete(r.empties, name)
		return
	}
	for i := range r.Extra {
		if r.Extra[i].Name == name {
			r.Extra = append(r.Extra[:i], r.Extra[i+1:]...)
			return
		}
	}
}

// Has reports whether the named field is present, including fields set to
// the empty string.
func (r *Record) Has(name string) bool {
	if slot := r.slot(name); slot != nil {
		return *slot != "" || r.empties[name]
	}
	for _, f := range r.Extra {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Names returns the names of all present fields: known slots in
// declaration order, then extras in first-set order. The entry type and
// citation key are metadata, not fields, and are excluded.
func (r *Record) Names() []string {
	var names []string
	for _, name := range slotNames {
		if r.Has(name) {
			names = append(names, name)
		}
	}
	for _, f := range r.Extra {
		names = append(names, f.Name)
	}
	return names
}

// TrimSpace strips leading and trailing whitespace from the entry type,
// the citation key, and every field value. A value that trims down to
// nothing stays present as an empty field.
func (r *Record) TrimSpace() {
	r.EntryType = strings.TrimSpace(r.EntryType)
	r.Key = strings.TrimSpace(r.Key)
	for _, name := range slotNames {
		slot := r.slot(name)
		if *slot == "" {
			continue
		}
		*slot = strings.TrimSpace(*slot)
		if *slot == "" {
			r.markEmpty(name)
		}
	}
	for i := range r.Extra {
		r.Extra[i].Value = strings.TrimSpace(r.Extra[i].Value)
	}
}

func (r *Record) markEmpty(name string) {
	if r.empties == nil {
		r.empties = make(map[string]bool)
	}
	r.empties[name] = true
}

// slotNames lists the fields with dedicated slots, in declaration order.
// This order defines the record's natural iteration order for fields
// outside the renderer's priority list.
var slotNames = []string{
	"author", "title", "year", "journal", "volume", "number", "pages",
	"editor", "booktitle", "series", "keywords",
	"url", "doi", "note",
	"abstract",
}

func (r *Record) slot(name string) *string {
	switch name {
	case "author":
		return &r.Author
	case "title":
		return &r.Title
	case "year":
		return &r.Year
	case "journal":
		return &r.Journal
	case "volume":
		return &r.Volume
	case "number":
		return &r.Number
	case "pages":
		return &r.Pages
	case "editor":
		return &r.Editor
	case "booktitle":
		return &r.Booktitle
	case "series":
		return &r.Series
	case "keywords":
		return &r.Keywords
	case "url":
		return &r.URL
	case "doi":
		return &r.DOI
	case "note":
		return &r.Note
	case "abstract":
		return &r.Abstract
	}
	return nil
}
