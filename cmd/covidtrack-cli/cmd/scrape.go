package cmd

import (
	"fmt"
	"log"

	"covidtrack-backend/lib/scrapers/coronavirus"
	"covidtrack-backend/services/covidtrack"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Runs the scrape pipeline once against the live source page.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		store, closeStore, err := openStore(ctx)
		if err != nil {
			log.Fatal(err)
		}
		defer closeStore()

		if err := store.EnsureIndexes(ctx); err != nil {
			log.Fatal(err)
		}

		journal, closeJournal, err := openJournal()
		if err != nil {
			log.Fatal(err)
		}
		defer closeJournal()

		service := covidtrack.NewService(
			coronavirus.NewClient(),
			store,
			journal,
			covidtrack.Options{BaseURL: baseUrl},
		)

		outcome, err := service.ScrapeOnce(ctx, "manual")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println("outcome:", outcome)
	},
}
