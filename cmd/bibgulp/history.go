package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pont-us/bibgulp/internal/history"
)

var historyLimit int

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Number of entries to show")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently cleaned records",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := history.DefaultPath()
	if path == "" {
		exitWithError(ExitConfigError, "cannot determine history database location")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("no history yet")
		return nil
	}

	db, err := history.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := db.Recent(historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no history yet")
		return nil
	}

	for _, e := range entries {
		line := fmt.Sprintf("%s  %-24s", e.CleanedAt.Format("2006-01-02 15:04"), e.CiteKey)
		if e.DOI != "" {
			line += "  doi:" + e.DOI
		}
		fmt.Println(line)
		if e.Title != "" {
			fmt.Printf("                    %s\n", truncate(e.Title, 70))
		}
	}
	return nil
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
