// Package main provides the bibgulp CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(ExitError)
	}
}

var (
	noClipboard bool
	settleFlag  int

	// humanOutput controls whether progress and duplicate notes are
	// printed to stderr.
	humanOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "bibgulp [file-or-directory]",
	Short: "Prettify downloaded BibTeX records and put them on the clipboard",
	Long: `bibgulp reformats the messy BibTeX records that publisher sites
export: it normalizes field names and page ranges, strips URL dressing
from DOIs, protects title capitalization, generates a citation key, and
copies the cleaned record to the clipboard ready for pasting into a
reference manager. RIS downloads are converted on the fly.

Given a file, it cleans every record in it once. Given a directory (or no
argument, with watch_dir configured), it watches for new downloads and
cleans each one as it arrives.`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runRoot,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Load .env file if present (for XDG overrides in dev setups)
	_ = godotenv.Load()

	rootCmd.Flags().BoolVar(&noClipboard, "no-clipboard", false, "Print records without copying to the clipboard")
	rootCmd.Flags().IntVar(&settleFlag, "settle", 0, "Watch-mode settle delay in milliseconds (default from config, else 300)")
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Print progress and duplicate notes to stderr")
	rootCmd.Version = Version
}
