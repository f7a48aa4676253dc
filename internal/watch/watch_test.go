package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRun_SeesNewFile(t *testing.T) {
	dir := t.TempDir()
	got := make(chan string, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, dir, Options{Settle: 10 * time.Millisecond},
			func(path string) {
				select {
				case got <- path:
				default:
				}
			})
	}()

	// Give the watcher a moment to register before creating the file.
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(dir, "citation.bib")
	if err := os.WriteFile(path, []byte("@article{x,\n}\n"), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	select {
	case p := <-got:
		if p != path {
			t.Errorf("callback got %q, want %q", p, path)
		}
	case <-ctx.Done():
		t.Fatal("callback never fired")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run() = %v, want context cancellation", err)
	}
}

func TestRun_SkipsPartialDownloads(t *testing.T) {
	dir := t.TempDir()
	got := make(chan string, 4)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, dir, Options{Settle: 10 * time.Millisecond},
			func(path string) { got <- path })
	}()

	time.Sleep(100 * time.Millisecond)

	partial := filepath.Join(dir, "download.bib.part")
	if err := os.WriteFile(partial, []byte("x"), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	final := filepath.Join(dir, "download.bib")
	if err := os.WriteFile(final, []byte("@article{x,\n}\n"), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	select {
	case p := <-got:
		if p != final {
			t.Errorf("callback got %q, want %q", p, final)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("callback never fired for the final file")
	}

	cancel()
	<-done
}

func TestRun_MissingDirectory(t *testing.T) {
	err := Run(context.Background(), filepath.Join(t.TempDir(), "nope"),
		Options{}, func(string) {})
	if err == nil {
		t.Fatal("Run() on missing directory: want error")
	}
}

func TestRun_FileNotDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	if err := Run(context.Background(), path, Options{}, func(string) {}); err == nil {
		t.Fatal("Run() on a plain file: want error")
	}
}

func TestIsPDF(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"paper.pdf", true},
		{"paper.PDF", true},
		{"/downloads/paper.Pdf", true},
		{"paper.bib", false},
		{"paper.pdf.part", false},
		{"paper", false},
	}
	for _, tt := range tests {
		if got := IsPDF(tt.path); got != tt.want {
			t.Errorf("IsPDF(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
