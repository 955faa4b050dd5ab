package cmd

import (
	"context"
	"fmt"
	"os"

	"covidtrack-backend/lib/covidstore"
	"covidtrack-backend/lib/runlog"
	"covidtrack-backend/lib/telemetry"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	mongoUri      string
	mongoDatabase string
	journalPath   string
	baseUrl       string
)

var rootCmd = &cobra.Command{
	Use:   "covidtrack-cli",
	Short: "covidtrack-cli inspects and operates the covid statistics pipeline.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&mongoUri, "mongo-uri", "mongodb://localhost:27017", "mongodb connection uri")
	rootCmd.PersistentFlags().StringVar(&mongoDatabase, "db", "covidtrack", "mongodb database name")
	rootCmd.PersistentFlags().StringVar(&journalPath, "journal", "runs.db", "path to the run journal sqlite database")
	rootCmd.PersistentFlags().StringVar(&baseUrl, "base-url", "", "source page base url override")
}

func Execute() {
	telemetry.InitSlog(false)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openStore(ctx context.Context) (*covidstore.Store, func(), error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoUri))
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = client.Disconnect(context.Background())
	}
	return covidstore.New(client.Database(mongoDatabase)), cleanup, nil
}

func openJournal() (*runlog.Journal, func(), error) {
	journal, err := runlog.Open(journalPath)
	if err != nil {
		return nil, nil, err
	}
	return journal, func() { journal.Close() }, nil
}
