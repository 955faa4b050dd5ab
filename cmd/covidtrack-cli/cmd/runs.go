package cmd

import (
	"log"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var runsLimit int

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum number of runs to print")
	rootCmd.AddCommand(runsCmd)
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Prints the most recent scrape runs from the journal.",
	Run: func(cmd *cobra.Command, args []string) {
		journal, closeJournal, err := openJournal()
		if err != nil {
			log.Fatal(err)
		}
		defer closeJournal()

		entries, err := journal.Recent(cmd.Context(), runsLimit)
		if err != nil {
			log.Fatal(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Run", "Trigger", "Started", "Duration", "Outcome", "Record date", "Error"})
		for _, entry := range entries {
			errText := entry.Error
			if entry.Stage != "" {
				errText = entry.Stage + ": " + errText
			}
			t.AppendRow(table.Row{
				entry.RunID,
				entry.Trigger,
				entry.StartedAt.Format(time.RFC3339),
				entry.FinishedAt.Sub(entry.StartedAt).String(),
				entry.Outcome,
				entry.RecordDate,
				errText,
			})
		}
		t.Render()
	},
}
