package history

import (
	"path/filepath"
	"testing"
	"time"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "bibgulp", "history.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSeen_ByDOI(t *testing.T) {
	db := openTemp(t)

	err := db.Add(Entry{
		CiteKey: "smith1999rise",
		DOI:     "10.1000/xyz",
		Title:   "The Rise of Geology",
		Body:    "@article{smith1999rise,\n}\n",
	})
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	tests := []struct {
		name    string
		citeKey string
		doi     string
		want    bool
	}{
		{"same doi", "otherkey2001foo", "10.1000/xyz", true},
		{"doi with url prefix", "otherkey2001foo", "https://doi.org/10.1000/xyz", true},
		{"doi case insensitive", "otherkey2001foo", "10.1000/XYZ", true},
		{"different doi", "smith1999rise", "10.1000/other", false},
		{"no doi, same key", "smith1999rise", "", true},
		{"no doi, different key", "doe2001study", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.Seen(tt.citeKey, tt.doi)
			if err != nil {
				t.Fatalf("Seen() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Seen(%q, %q) = %v, want %v", tt.citeKey, tt.doi, got, tt.want)
			}
		})
	}
}

func TestSeen_EmptyDatabase(t *testing.T) {
	db := openTemp(t)

	seen, err := db.Seen("smith1999rise", "10.1000/xyz")
	if err != nil {
		t.Fatalf("Seen() error: %v", err)
	}
	if seen {
		t.Error("Seen() = true on empty database")
	}
}

func TestRecent_Order(t *testing.T) {
	db := openTemp(t)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	keys := []string{"a2001one", "b2002two", "c2003three"}
	for i, key := range keys {
		err := db.Add(Entry{
			CiteKey:   key,
			Body:      "@article{" + key + ",\n}\n",
			CleanedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Add(%q) error: %v", key, err)
		}
	}

	entries, err := db.Recent(2)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Recent(2) returned %d entries", len(entries))
	}
	if entries[0].CiteKey != "c2003three" || entries[1].CiteKey != "b2002two" {
		t.Errorf("Recent order = %q, %q; want newest first",
			entries[0].CiteKey, entries[1].CiteKey)
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if err := db.Add(Entry{CiteKey: "k1999x", Body: "body"}); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopening: %v", err)
	}
	defer db.Close()

	seen, err := db.Seen("k1999x", "")
	if err != nil {
		t.Fatalf("Seen() error: %v", err)
	}
	if !seen {
		t.Error("entry lost across reopen")
	}
}

func TestNormalizeDOI(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"10.1000/xyz", "10.1000/xyz"},
		{"https://doi.org/10.1000/xyz", "10.1000/xyz"},
		{"doi:10.1000/XYZ", "10.1000/xyz"},
		{" 10.1000/xyz ", "10.1000/xyz"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeDOI(tt.in); got != tt.want {
			t.Errorf("normalizeDOI(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
