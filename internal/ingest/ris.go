package ingest

import (
	"bufio"
	"strings"

	"github.com/pont-us/bibgulp/internal/record"
)

// risTypes maps RIS reference types to BibTeX entry types.
var risTypes = map[string]string{
	"JOUR":   "article",
	"EJOUR":  "article",
	"MGZN":   "article",
	"CONF":   "inproceedings",
	"CPAPER": "inproceedings",
	"BOOK":   "book",
	"CHAP":   "incollection",
	"EDBOOK": "book",
	"THES":   "phdthesis",
	"RPRT":   "techreport",
	"UNPB":   "unpublished",
}

// risEntry accumulates one RIS record's tags before conversion.
type risEntry struct {
	entryType string
	fields    map[string]string
	authors   []string
	keywords  []string
	startPage string
	endPage   string
}

// parseRIS reads RIS tag lines ("XX  - value") into records. Entries end
// at an ER tag. Unknown tags are ignored; malformed lines are skipped
// rather than failing the file.
func parseRIS(content string) []*record.Record {
	var recs []*record.Record
	cur := newRISEntry()

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < 2 {
			continue
		}
		tag := line[:2]
		var value string
		if len(line) >= 5 && line[2:5] == "  -" {
			value = strings.TrimSpace(line[5:])
		} else if len(line) > 2 {
			// Continuation of the previous value is rare in publisher
			// exports; treat stray text as noise.
			continue
		}

		if tag == "ER" {
			if rec := cur.record(); rec != nil {
				recs = append(recs, rec)
			}
			cur = newRISEntry()
			continue
		}
		cur.add(tag, value)
	}

	// A final entry without ER still counts.
	if rec := cur.record(); rec != nil {
		recs = append(recs, rec)
	}
	return recs
}

func newRISEntry() *risEntry {
	return &risEntry{fields: make(map[string]string)}
}

// add stores one tag value. First-wins for scalar tags since exporters
// sometimes duplicate them (TI and T1, PY and Y1).
func (e *risEntry) add(tag, value string) {
	if value == "" {
		return
	}

	switch tag {
	case "TY":
		e.entryType = value
	case "AU", "A1", "A2", "A3":
		e.authors = append(e.authors, value)
	case "KW":
		e.keywords = append(e.keywords, value)
	case "SP":
		e.startPage = value
	case "EP":
		e.endPage = value
	case "TI", "T1":
		e.set("title", value)
	case "PY", "Y1":
		e.set("year", risYear(value))
	case "JO", "JF", "T2":
		e.set("journal", value)
	case "VL":
		e.set("volume", value)
	case "IS":
		e.set("number", value)
	case "DO":
		e.set("doi", value)
	case "AB", "N2":
		e.set("abstract", value)
	case "UR", "L1", "L2":
		e.set("url", value)
	case "SN":
		e.set("issn", value)
	case "PB":
		e.set("publisher", value)
	case "N1":
		e.set("note", value)
	}
}

func (e *risEntry) set(name, value string) {
	if _, ok := e.fields[name]; !ok {
		e.fields[name] = value
	}
}

// record converts the accumulated tags to a Record, or nil if the entry
// is empty.
func (e *risEntry) record() *record.Record {
	if e.entryType == "" && len(e.fields) == 0 && len(e.authors) == 0 {
		return nil
	}

	entryType, ok := risTypes[e.entryType]
	if !ok {
		entryType = "misc"
	}

	rec := record.New(entryType, "")
	if len(e.authors) > 0 {
		rec.Author = strings.Join(e.authors, " and ")
	}
	if e.startPage != "" {
		pages := e.startPage
		if e.endPage != "" {
			pages += "--" + e.endPage
		}
		rec.Pages = pages
	}
	if len(e.keywords) > 0 {
		rec.Keywords = strings.Join(e.keywords, ", ")
	}
	for _, name := range []string{
		"title", "year", "journal", "volume", "number",
		"doi", "abstract", "url", "issn", "publisher", "note",
	} {
		if v, ok := e.fields[name]; ok {
			rec.Set(name, v)
		}
	}
	return rec
}

// risYear extracts the year from RIS date values like "1999" or
// "1999/05//".
func risYear(value string) string {
	year, _, _ := strings.Cut(value, "/")
	return strings.TrimSpace(year)
}
