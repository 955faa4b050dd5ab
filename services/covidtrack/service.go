// Package covidtrack orchestrates one scrape run end to end: fetch
// and decode the source page, cross-check the assembled record and
// persist exactly one document per day.
package covidtrack

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"covidtrack-backend/lib/covid"
	"covidtrack-backend/lib/covidstore"
	"covidtrack-backend/lib/runlog"
	"covidtrack-backend/lib/scrapers/coronavirus"
	"covidtrack-backend/lib/telemetry"
	"covidtrack-backend/lib/timezone"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("covidtrack.services.covidtrack")

// Store is the slice of the record store one scrape run needs.
type Store interface {
	Insert(ctx context.Context, rec *covid.DailyStatistics) error
	FindByDate(ctx context.Context, date string) (*covid.DailyStatistics, error)
	MedicalByDate(ctx context.Context, date string) (*covid.MedicalStaff, error)
}

type Options struct {
	// source page base url, coronavirus.DefaultBaseURL when empty
	BaseURL string
	// optional operator alerting
	Alerts *Alerter
}

type Service struct {
	source  coronavirus.DocumentSource
	store   Store
	journal *runlog.Journal
	options Options
}

func NewService(source coronavirus.DocumentSource, store Store, journal *runlog.Journal, options Options) Service {
	if options.BaseURL == "" {
		options.BaseURL = coronavirus.DefaultBaseURL
	}
	return Service{
		source:  source,
		store:   store,
		journal: journal,
		options: options,
	}
}

// ScrapeOnce runs the whole pipeline once. The trigger label records
// what started the run ("schedule", "manual", "api"). The run ends in
// one of three outcomes: a record inserted, a silent skip because the
// day is already stored, or a failure that wrote nothing.
func (s Service) ScrapeOnce(ctx context.Context, trigger string) (runlog.Outcome, error) {
	ctx, span := tracer.Start(ctx, "ScrapeOnce")
	defer span.End()

	runID, err := random.String(6)
	if err != nil {
		return runlog.OutcomeFailed, err
	}
	span.SetAttributes(
		attribute.String("run_id", runID),
		attribute.String("trigger", trigger),
	)

	log := slog.With("run_id", runID, "trigger", trigger)
	log.InfoContext(ctx, "starting scrape run")
	started := time.Now()

	outcome, date, stage, err := s.run(ctx, log)

	finished := time.Now()
	scrapeDuration.Observe(finished.Sub(started).Seconds())
	scrapeRunsTotal.WithLabelValues(string(outcome), trigger).Inc()

	entry := runlog.Entry{
		RunID:      runID,
		Trigger:    trigger,
		RecordDate: date,
		Outcome:    outcome,
		StartedAt:  started,
		FinishedAt: finished,
	}
	if err != nil {
		entry.Stage = stage
		entry.Error = err.Error()

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.ErrorContext(ctx, "scrape run failed", "stage", stage, "err", err)

		if s.options.Alerts != nil {
			if alertErr := s.options.Alerts.ScrapeFailed(ctx, runID, stage, err); alertErr != nil {
				log.ErrorContext(ctx, "failed to alert operators", "err", alertErr)
			}
		}
	} else {
		log.InfoContext(ctx, "scrape run finished", "outcome", outcome, "date", date)
	}

	if journalErr := s.journal.Record(ctx, entry); journalErr != nil {
		log.ErrorContext(ctx, "failed to journal run", "err", journalErr)
	}

	return outcome, err
}

// run executes the pipeline stages. No store write happens before the
// final insert, so a failure at any stage leaves the store untouched.
func (s Service) run(ctx context.Context, log *slog.Logger) (outcome runlog.Outcome, date, stage string, err error) {
	page, err := coronavirus.Extract(ctx, s.source, s.options.BaseURL)
	if err != nil {
		return runlog.OutcomeFailed, "", "extract", err
	}

	dates, err := coronavirus.ResolveDates(page.Header, timezone.Now())
	if err != nil {
		return runlog.OutcomeFailed, "", "resolve-dates", err
	}
	date = dates.DataDate

	_, err = s.store.FindByDate(ctx, date)
	if err == nil {
		log.InfoContext(ctx, "record already stored", "date", date)
		return runlog.OutcomeSkipped, date, "", nil
	}
	if !errors.Is(err, covidstore.ErrNotFound) {
		return runlog.OutcomeFailed, date, "store-lookup", err
	}

	rec, err := coronavirus.Assemble(ctx, page, dates, s.store.MedicalByDate)
	if err != nil {
		return runlog.OutcomeFailed, date, "assemble", err
	}

	rec.ConditionResult = coronavirus.Verify(rec)
	if rec.ConditionResult.Condition == covid.ConditionDiscrepancy {
		scrapeDiscrepanciesTotal.Inc()
		log.WarnContext(ctx, "consistency checks found discrepancies",
			"date", date,
			"description", rec.ConditionResult.Description)
	}

	err = s.store.Insert(ctx, rec)
	if errors.Is(err, covidstore.ErrAlreadyExists) {
		// a concurrent run won the insert, same as finding the record
		log.InfoContext(ctx, "record inserted concurrently", "date", date)
		return runlog.OutcomeSkipped, date, "", nil
	}
	if err != nil {
		return runlog.OutcomeFailed, date, "insert", err
	}

	return runlog.OutcomeInserted, date, "", nil
}
