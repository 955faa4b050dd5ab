package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"covidtrack-backend/lib/configutil"
	"covidtrack-backend/lib/covidstore"
	"covidtrack-backend/lib/runlog"
	"covidtrack-backend/lib/scrapers/coronavirus"
	"covidtrack-backend/lib/serviceutil"
	"covidtrack-backend/lib/telemetry"
	"covidtrack-backend/lib/timezone"
	"covidtrack-backend/services/covidtrack"
	"covidtrack-backend/services/covidtrack/api"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type HttpConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

type MongoConfig struct {
	Uri      string `json:"uri"`
	Database string `json:"database"`
}

type ScraperConfig struct {
	BaseUrl string `json:"base_url"`
	// cron expression evaluated in the source locale's timezone
	Schedule string `json:"schedule"`
}

type AlertsConfig struct {
	Smtp       covidtrack.SmtpConfig `json:"smtp"`
	Recipients []string              `json:"recipients"`
}

type Config struct {
	Debug      bool          `json:"debug"`
	Http       HttpConfig    `json:"http"`
	Mongo      MongoConfig   `json:"mongo"`
	RunJournal string        `json:"run_journal"`
	Scraper    ScraperConfig `json:"scraper"`
	Alerts     AlertsConfig  `json:"alerts"`
}

func main() {
	ctx := serviceutil.SignalContext()

	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if config.Scraper.Schedule == "" {
		// the source page publishes in the morning
		config.Scraper.Schedule = "0 9 * * *"
	}
	if config.RunJournal == "" {
		config.RunJournal = "runs.db"
	}

	telemetry.InitSlog(config.Debug)
	tel, err := telemetry.SetupFromEnv(ctx, "covidtrackd")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer tel.Shutdown(context.Background())
	telemetry.InstrumentPerfStats(ctx)

	slog.Info("connecting to mongodb...")
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.Mongo.Uri))
	if err != nil {
		serviceutil.Fatal("failed to connect to mongodb", err)
	}
	defer client.Disconnect(context.Background())

	store := covidstore.New(client.Database(config.Mongo.Database))
	err = store.EnsureIndexes(ctx)
	if err != nil {
		serviceutil.Fatal("failed to ensure store indexes", err)
	}

	slog.Info("opening run journal...", "path", config.RunJournal)
	journal, err := runlog.Open(config.RunJournal)
	if err != nil {
		serviceutil.Fatal("failed to open run journal", err)
	}
	defer journal.Close()

	var alerter *covidtrack.Alerter
	if config.Alerts.Smtp.Server != "" {
		alerter = covidtrack.NewAlerter(config.Alerts.Smtp, config.Alerts.Recipients)
	}

	service := covidtrack.NewService(
		coronavirus.NewClient(),
		store,
		journal,
		covidtrack.Options{
			BaseURL: config.Scraper.BaseUrl,
			Alerts:  alerter,
		},
	)

	scheduler := cron.New(cron.WithLocation(timezone.Location))
	_, err = scheduler.AddFunc(config.Scraper.Schedule, func() {
		_, err := service.ScrapeOnce(ctx, "schedule")
		if err != nil {
			slog.Error("scheduled scrape failed", "err", err)
		}
	})
	if err != nil {
		serviceutil.Fatal("failed to schedule scrape", err)
	}
	scheduler.Start()
	defer scheduler.Stop()
	slog.Info("scheduled daily scrape", "schedule", config.Scraper.Schedule, "timezone", timezone.Location.String())

	addr := fmt.Sprintf("%s:%d", config.Http.Host, config.Http.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: api.NewServer(store, service).Router(),
	}
	go func() {
		<-ctx.Done()
		slog.Info("shutting down...")
		_ = httpServer.Shutdown(context.Background())
	}()

	slog.Info("serving dashboard api...", "addr", addr)
	err = httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		serviceutil.Fatal("failed to serve http", err)
	}
}
