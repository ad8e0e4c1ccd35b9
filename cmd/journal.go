package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/journal"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/pkg/export"
)

var (
	exportFormat    string
	exportOutput    string
	exportStart     string
	exportEnd       string
	exportTEGActive string
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect the braking journal",
}

var journalExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export journaled braking events as CSV or JSON",
	RunE:  exportJournal,
}

func init() {
	f := journalExportCmd.Flags()
	f.StringVarP(&exportFormat, "format", "f", "csv", "output format: csv or json")
	f.StringVarP(&exportOutput, "output", "o", "", "output file (stdout when empty)")
	f.StringVar(&exportStart, "start", "", "only events at or after this RFC3339 time")
	f.StringVar(&exportEnd, "end", "", "only events at or before this RFC3339 time")
	f.StringVar(&exportTEGActive, "teg-active", "", "filter on TEG activation: true or false")
	journalCmd.AddCommand(journalExportCmd)
	rootCmd.AddCommand(journalCmd)
}

func exportJournal(cmd *cobra.Command, args []string) error {
	var write func(io.Writer, []journal.Record) error
	switch exportFormat {
	case "csv":
		write = export.WriteCSV
	case "json":
		write = export.WriteJSON
	default:
		return fmt.Errorf("unknown format %q", exportFormat)
	}
	q, err := exportQuery()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := journal.Open(cfg.Journal)
	if err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	defer func() { _ = store.Close() }()
	records, err := store.Query(cmd.Context(), q)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		w = f
	}
	return write(w, records)
}

func exportQuery() (journal.Query, error) {
	var q journal.Query
	if exportStart != "" {
		t, err := time.Parse(time.RFC3339, exportStart)
		if err != nil {
			return q, fmt.Errorf("start: %w", err)
		}
		q.Start = t
	}
	if exportEnd != "" {
		t, err := time.Parse(time.RFC3339, exportEnd)
		if err != nil {
			return q, fmt.Errorf("end: %w", err)
		}
		q.End = t
	}
	switch exportTEGActive {
	case "":
	case "true", "false":
		v := exportTEGActive == "true"
		q.TEGActive = &v
	default:
		return q, fmt.Errorf("teg-active must be true or false")
	}
	return q, nil
}
