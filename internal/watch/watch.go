// Package watch monitors a download directory and hands new citation
// files to a callback. Browsers write downloads incrementally, so new
// files get a settle delay before processing, and partial-download
// artifacts are skipped entirely.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// partialDownload matches in-progress browser download names.
var partialDownload = regexp.MustCompile(`(?i)\.(part|crdownload|tmp)$`)

// Options configures a watch loop.
type Options struct {
	// Settle is how long to wait after a file appears before it is
	// handed to the callback.
	Settle time.Duration
	// Limit caps how many files are processed per second. Browsers can
	// emit bursts of rename events for one download; the default of 5/s
	// absorbs them without delaying interactive use.
	Limit rate.Limit
}

// Run watches dir until the context is cancelled, invoking onFile for
// every newly created or renamed file that is not a partial download.
// onFile runs on the watch goroutine; records within a file therefore
// stay strictly sequential.
func Run(ctx context.Context, dir string, opts Options, onFile func(path string)) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch directory: %s is not a directory", dir)
	}

	if opts.Settle <= 0 {
		opts.Settle = 300 * time.Millisecond
	}
	if opts.Limit <= 0 {
		opts.Limit = 5
	}
	limiter := rate.NewLimiter(opts.Limit, 1)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			path := event.Name
			if partialDownload.MatchString(path) {
				continue
			}
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
			if !settled(ctx, path, opts.Settle) {
				continue
			}
			onFile(path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}

// settled waits the settle delay and then confirms the path still exists
// as a regular file. Renamed-away temp files and directories are dropped.
func settled(ctx context.Context, path string, delay time.Duration) bool {
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
	}

	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsPDF reports whether the path names a PDF download.
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}
