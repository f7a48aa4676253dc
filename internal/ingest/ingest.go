// Package ingest turns downloaded citation files into records. It accepts
// BibTeX directly and recognizes RIS exports, which some publishers hand
// out instead.
package ingest

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/nickng/bibtex"

	"github.com/pont-us/bibgulp/internal/record"
)

// ParseFile reads a downloaded citation file and returns its records.
// The format is sniffed from the content: a RIS type tag within the first
// few lines means RIS, anything else is treated as BibTeX.
func ParseFile(path string) ([]*record.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if isRIS(string(data)) {
		return parseRIS(string(data)), nil
	}
	return parseBibTeX(string(data))
}

// isRIS reports whether the content starts a RIS entry ("TY  - ...")
// within its first ten lines.
func isRIS(content string) bool {
	scanner := bufio.NewScanner(strings.NewReader(content))
	for i := 0; i < 10 && scanner.Scan(); i++ {
		if strings.HasPrefix(scanner.Text(), "TY  - ") {
			return true
		}
	}
	return false
}

// parseBibTeX parses BibTeX entries into records. Field names are
// lowercased; unknown fields are preserved in name order so output stays
// deterministic.
func parseBibTeX(content string) ([]*record.Record, error) {
	bib, err := bibtex.Parse(strings.NewReader(content + "\n"))
	if err != nil {
		return nil, fmt.Errorf("parsing bibtex: %w", err)
	}

	recs := make([]*record.Record, 0, len(bib.Entries))
	for _, entry := range bib.Entries {
		rec := record.New(strings.ToLower(entry.Type), entry.CiteName)

		names := make([]string, 0, len(entry.Fields))
		for name := range entry.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			rec.Set(strings.ToLower(name), entry.Fields[name].String())
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
