package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pont-us/bibgulp/internal/clipboard"
	"github.com/pont-us/bibgulp/internal/config"
	"github.com/pont-us/bibgulp/internal/history"
	"github.com/pont-us/bibgulp/internal/ingest"
	"github.com/pont-us/bibgulp/internal/normalize"
	"github.com/pont-us/bibgulp/internal/pdfdoi"
	"github.com/pont-us/bibgulp/internal/render"
	"github.com/pont-us/bibgulp/internal/watch"
)

// pipeline holds the sinks a cleaning run writes to. A nil clip or hist
// simply disables that sink.
type pipeline struct {
	clip *clipboard.Writer
	hist *history.DB
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	target := cfg.WatchDir
	if len(args) == 1 {
		target = args[0]
	}
	if target == "" {
		exitWithError(ExitConfigError,
			"no input file or directory (pass one, or set watch_dir in %s)",
			config.Path())
	}

	p := newPipeline(cfg)
	if p.hist != nil {
		defer p.hist.Close()
	}

	info, err := os.Stat(target)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if info.IsDir() {
		return watchDir(cmd.Context(), cfg, target, p)
	}

	if err := p.processFile(target); err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	return nil
}

// newPipeline wires the clipboard and history sinks according to config
// and flags. Neither sink is fatal when unavailable; cleaning still runs
// and prints.
func newPipeline(cfg *config.Config) *pipeline {
	p := &pipeline{}

	if !noClipboard && cfg.Clipboard != "off" {
		clip, err := clipboard.New(cfg.Clipboard)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v; printing only\n", err)
		} else {
			p.clip = clip
		}
	}

	if cfg.HistoryEnabled() {
		if path := history.DefaultPath(); path != "" {
			hist, err := history.Open(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: history disabled: %v\n", err)
			} else {
				p.hist = hist
			}
		}
	}
	return p
}

// processFile cleans every record in one downloaded file: parse,
// normalize, render, print, copy to clipboard, and log to history.
func (p *pipeline) processFile(path string) error {
	recs, err := ingest.ParseFile(path)
	if err != nil {
		return err
	}

	for _, rec := range recs {
		normalize.Clean(rec)
		out := render.Render(rec)

		fmt.Print(out)

		if p.clip != nil {
			if err := p.clip.Copy(out); err != nil {
				fmt.Fprintf(os.Stderr, "warning: clipboard: %v\n", err)
			}
		}
		p.remember(rec.Key, rec.DOI, rec.EntryType, rec.Title, out)
	}
	return nil
}

// remember logs a cleaned record and warns when it was cleaned before.
func (p *pipeline) remember(key, doi, entryType, title, body string) {
	if p.hist == nil {
		return
	}
	seen, err := p.hist.Seen(key, doi)
	if err == nil && seen && humanOutput {
		fmt.Fprintf(os.Stderr, "note: %s was cleaned before (same DOI or key)\n", key)
	}
	if err := p.hist.Add(history.Entry{
		CiteKey:   key,
		DOI:       doi,
		EntryType: entryType,
		Title:     title,
		Body:      body,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: history: %v\n", err)
	}
}

// watchDir watches a download directory until interrupted, cleaning each
// new citation file and printing a DOI hint for PDFs.
func watchDir(ctx context.Context, cfg *config.Config, dir string, p *pipeline) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	settle := cfg.Settle()
	if settleFlag > 0 {
		settle = time.Duration(settleFlag) * time.Millisecond
	}

	if humanOutput {
		fmt.Fprintf(os.Stderr, "watching %s\n", dir)
	}
	err := watch.Run(ctx, dir, watch.Options{Settle: settle}, func(path string) {
		if watch.IsPDF(path) {
			if humanOutput {
				if doi, err := pdfdoi.Extract(path); err == nil && doi != "" {
					fmt.Fprintf(os.Stderr, "note: %s contains DOI %s\n", path, doi)
				}
			}
			return
		}
		if humanOutput {
			fmt.Fprintf(os.Stderr, "parsing %s\n", path)
		}
		if err := p.processFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", path, err)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// exitWithError prints an error to stderr and exits with the given code.
func exitWithError(code int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(code)
}
