package covidtrack

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scrapeRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "covidtrack_scrape_runs_total",
			Help: "Total number of scrape runs by outcome and trigger",
		},
		[]string{"outcome", "trigger"},
	)

	scrapeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "covidtrack_scrape_duration_seconds",
			Help:    "Duration of one full scrape run in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	scrapeDiscrepanciesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "covidtrack_scrape_discrepancies_total",
			Help: "Total number of runs whose consistency checks found a discrepancy",
		},
	)
)
