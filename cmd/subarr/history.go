package main

import (
	"encoding/json"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/vmunix/subarr/internal/config"
	"github.com/vmunix/subarr/internal/history"
)

var (
	historyLimit    int
	historyJSON     bool
	historyDecision string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show decisions from recent runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "Maximum entries to show")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output as JSON")
	historyCmd.Flags().StringVar(&historyDecision, "decision", "", "Filter by decision (e.g. uploaded, skip-duplicate)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	filter := history.Filter{Limit: historyLimit}
	if historyDecision != "" {
		filter.Decision = &historyDecision
	}
	entries, err := store.List(filter)
	if err != nil {
		return err
	}

	if historyJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Time", "Key", "Title", "Decision", "Detail"})
	for _, e := range entries {
		t.AppendRow(table.Row{
			e.CreatedAt.Format("2006-01-02 15:04"),
			e.ItemKey,
			e.Title,
			e.Decision,
			e.Detail,
		})
	}
	t.Render()
	return nil
}
