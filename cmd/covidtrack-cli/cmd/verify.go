package cmd

import (
	"fmt"
	"log"
	"os"

	"covidtrack-backend/lib/covid"
	"covidtrack-backend/lib/scrapers/coronavirus"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(verifyCmd)
}

var verifyCmd = &cobra.Command{
	Use:   "verify <date>",
	Short: "Re-runs the consistency checks against a stored record.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		store, closeStore, err := openStore(ctx)
		if err != nil {
			log.Fatal(err)
		}
		defer closeStore()

		rec, err := store.FindByDate(ctx, args[0])
		if err != nil {
			log.Fatal(err)
		}

		result := coronavirus.Verify(rec)
		fmt.Println("condition:", result.Condition)
		if result.Condition == covid.ConditionApproved {
			return
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Check", "Expected", "Actual"})
		for name, check := range result.Checks {
			t.AppendRow(table.Row{name, check.Expected, check.Actual})
		}
		t.SortBy([]table.SortBy{{Name: "Check", Mode: table.Asc}})
		t.Render()
	},
}
