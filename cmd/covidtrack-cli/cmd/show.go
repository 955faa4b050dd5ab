package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	"covidtrack-backend/lib/covid"
	"covidtrack-backend/lib/covidstore"
	"covidtrack-backend/lib/regions"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show [date]",
	Short: "Prints a stored day's statistics, the latest one when no date is given.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		store, closeStore, err := openStore(ctx)
		if err != nil {
			log.Fatal(err)
		}
		defer closeStore()

		var rec *covid.DailyStatistics
		if len(args) == 1 {
			rec, err = store.FindByDate(ctx, args[0])
		} else {
			rec, err = store.Latest(ctx)
		}
		if errors.Is(err, covidstore.ErrNotFound) {
			log.Fatal("no record found")
		}
		if err != nil {
			log.Fatal(err)
		}

		fmt.Println("date:", rec.Date)
		fmt.Println("scraped:", rec.Scraped)
		fmt.Println("condition:", rec.ConditionResult.Condition)
		if rec.ConditionResult.Description != "" {
			fmt.Println("discrepancies:", rec.ConditionResult.Description)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Counter", "Total", "Last 24h"})
		t.AppendRows([]table.Row{
			{"Tested", rec.Overall.Tested.Total, rec.Overall.Tested.Last24},
			{"Confirmed", rec.Overall.Confirmed.Total, rec.Overall.Confirmed.Last24},
			{"Active", rec.Overall.Active.Current, ""},
			{"Hospitalized", rec.Overall.Active.CurrentByType.Hospitalized, ""},
			{"In ICU", rec.Overall.Active.CurrentByType.ICU, ""},
			{"Recovered", rec.Overall.Recovered.Total, rec.Overall.Recovered.Last},
			{"Deceased", rec.Overall.Deceased.Total, rec.Overall.Deceased.Last},
			{"Vaccinated", rec.Overall.Vaccinated.Total, rec.Overall.Vaccinated.Last24},
			{"Medical staff", rec.Overall.Confirmed.Medical.Total, rec.Overall.Confirmed.Medical.Last24},
		})
		t.Render()

		t = table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Region", "Confirmed", "Confirmed 24h", "Vaccinated", "Vaccinated 24h"})
		for code, region := range rec.Regions {
			name := code
			if r, ok := regions.Lookup(code); ok {
				name = r.Name
			}
			t.AppendRow(table.Row{
				name,
				region.Confirmed.Total,
				region.Confirmed.Last,
				region.Vaccinated.Total,
				region.Vaccinated.Last24,
			})
		}
		t.SortBy([]table.SortBy{{Name: "Region", Mode: table.Asc}})
		t.Render()
	},
}
