package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	return path
}

func TestParseFile_BibTeX(t *testing.T) {
	content := `@article{smith99,
  title = {A Study of Rocks},
  author = {John Smith and Jane Doe},
  journal = {Geology},
  year = {1999},
  pages = {12-34},
  volume = {},
  zzcustom = {kept}
}
`
	path := writeTemp(t, "export.bib", content)

	recs, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("ParseFile() returned %d records, want 1", len(recs))
	}

	r := recs[0]
	if r.EntryType != "article" {
		t.Errorf("EntryType = %q, want %q", r.EntryType, "article")
	}
	if r.Key != "smith99" {
		t.Errorf("Key = %q, want %q", r.Key, "smith99")
	}
	if r.Title != "A Study of Rocks" {
		t.Errorf("Title = %q", r.Title)
	}
	if r.Author != "John Smith and Jane Doe" {
		t.Errorf("Author = %q", r.Author)
	}
	if r.Pages != "12-34" {
		t.Errorf("Pages = %q", r.Pages)
	}
	if got := r.Get("zzcustom"); got != "kept" {
		t.Errorf("zzcustom = %q, want %q", got, "kept")
	}
	if !r.Has("volume") || r.Volume != "" {
		t.Errorf("empty volume field should be present with empty value, Has=%v Volume=%q",
			r.Has("volume"), r.Volume)
	}
}

func TestParseFile_BibTeXMultiple(t *testing.T) {
	content := `@article{a1,
  title = {First}
}

@misc{m1,
  title = {Second}
}
`
	path := writeTemp(t, "two.bib", content)

	recs, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("ParseFile() returned %d records, want 2", len(recs))
	}
	if recs[0].Key != "a1" || recs[1].Key != "m1" {
		t.Errorf("keys = %q, %q", recs[0].Key, recs[1].Key)
	}
	if recs[1].EntryType != "misc" {
		t.Errorf("EntryType = %q, want %q", recs[1].EntryType, "misc")
	}
}

func TestParseFile_RIS(t *testing.T) {
	content := `TY  - JOUR
AU  - Smith, John
AU  - Doe, Jane
TI  - On the Origin of Things
JO  - Nature
PY  - 1999/05//
VL  - 12
IS  - 3
SP  - 12
EP  - 34
DO  - 10.1000/xyz
KW  - Geology
KW  - Rocks
UR  - https://example.com/paper
AB  - A fine abstract.
ER  -
`
	path := writeTemp(t, "export.ris", content)

	recs, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("ParseFile() returned %d records, want 1", len(recs))
	}

	r := recs[0]
	if r.EntryType != "article" {
		t.Errorf("EntryType = %q, want %q", r.EntryType, "article")
	}
	if r.Author != "Smith, John and Doe, Jane" {
		t.Errorf("Author = %q", r.Author)
	}
	if r.Title != "On the Origin of Things" {
		t.Errorf("Title = %q", r.Title)
	}
	if r.Year != "1999" {
		t.Errorf("Year = %q, want %q", r.Year, "1999")
	}
	if r.Journal != "Nature" {
		t.Errorf("Journal = %q", r.Journal)
	}
	if r.Volume != "12" || r.Number != "3" {
		t.Errorf("Volume, Number = %q, %q", r.Volume, r.Number)
	}
	if r.Pages != "12--34" {
		t.Errorf("Pages = %q, want %q", r.Pages, "12--34")
	}
	if r.DOI != "10.1000/xyz" {
		t.Errorf("DOI = %q", r.DOI)
	}
	if r.Keywords != "Geology, Rocks" {
		t.Errorf("Keywords = %q", r.Keywords)
	}
	if r.URL != "https://example.com/paper" {
		t.Errorf("URL = %q", r.URL)
	}
	if r.Abstract != "A fine abstract." {
		t.Errorf("Abstract = %q", r.Abstract)
	}
}

func TestParseFile_RISMultipleEntries(t *testing.T) {
	content := `TY  - JOUR
TI  - First
ER  -
TY  - CONF
TI  - Second
ER  -
`
	path := writeTemp(t, "two.ris", content)

	recs, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("ParseFile() returned %d records, want 2", len(recs))
	}
	if recs[0].Title != "First" || recs[1].Title != "Second" {
		t.Errorf("titles = %q, %q", recs[0].Title, recs[1].Title)
	}
	if recs[1].EntryType != "inproceedings" {
		t.Errorf("EntryType = %q, want %q", recs[1].EntryType, "inproceedings")
	}
}

func TestParseFile_RISMissingFinalER(t *testing.T) {
	content := `TY  - JOUR
TI  - Unterminated
`
	path := writeTemp(t, "noend.ris", content)

	recs, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}
	if len(recs) != 1 || recs[0].Title != "Unterminated" {
		t.Fatalf("ParseFile() = %v, want the unterminated entry", recs)
	}
}

func TestIsRIS(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"ris first line", "TY  - JOUR\nER  - \n", true},
		{"ris after preamble", "Provider: X\nDatabase: Y\nTY  - JOUR\n", true},
		{"bibtex", "@article{x,\n  title = {T}\n}\n", false},
		{"ris tag too deep", strings11 + "TY  - JOUR\n", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRIS(tt.content); got != tt.want {
				t.Errorf("isRIS() = %v, want %v", got, tt.want)
			}
		})
	}
}

// strings11 is eleven filler lines, pushing any RIS tag past the sniff
// window.
const strings11 = "a\nb\nc\nd\ne\nf\ng\nh\ni\nj\nk\n"
