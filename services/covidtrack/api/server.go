// Package api exposes the stored daily statistics to the browser
// dashboard over a small JSON API.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"covidtrack-backend/lib/covid"
	"covidtrack-backend/lib/covidstore"
	"covidtrack-backend/lib/runlog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Store is the read surface the handlers need.
type Store interface {
	FindByDate(ctx context.Context, date string) (*covid.DailyStatistics, error)
	Range(ctx context.Context, from, to string) ([]covid.DailyStatistics, error)
	Latest(ctx context.Context) (*covid.DailyStatistics, error)
}

// Scraper triggers one manual scrape run.
type Scraper interface {
	ScrapeOnce(ctx context.Context, trigger string) (runlog.Outcome, error)
}

type Server struct {
	store   Store
	scraper Scraper
}

func NewServer(store Store, scraper Scraper) *Server {
	return &Server{store: store, scraper: scraper}
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "covidtrack"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	covidGroup := router.Group("/api/covid")
	{
		covidGroup.GET("/statistics", s.getStatisticsRange)
		covidGroup.GET("/statistics/latest", s.getLatest)
		covidGroup.GET("/statistics/:date", s.getByDate)
		covidGroup.GET("/analysis", s.getAnalysis)
		covidGroup.POST("/scrape", s.triggerScrape)
	}

	return router
}

func (s *Server) getLatest(c *gin.Context) {
	rec, err := s.store.Latest(c.Request.Context())
	if errors.Is(err, covidstore.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no statistics stored yet"})
		return
	}
	if err != nil {
		s.storeFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) getByDate(c *gin.Context) {
	date := c.Param("date")
	rec, err := s.store.FindByDate(c.Request.Context(), date)
	if errors.Is(err, covidstore.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no statistics for this date", "date": date})
		return
	}
	if err != nil {
		s.storeFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) getStatisticsRange(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "both from and to query parameters are required"})
		return
	}

	days, err := s.store.Range(c.Request.Context(), from, to)
	if err != nil {
		s.storeFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(days), "days": days})
}

// analysisPoint is one chart sample of the dashboard's time series.
type analysisPoint struct {
	Date         string `json:"date"`
	Active       int    `json:"active"`
	Hospitalized int    `json:"hospitalized"`
	ICU          int    `json:"icu"`
	Confirmed    int    `json:"confirmed"`
	Tested       int    `json:"tested"`
	Deceased     int    `json:"deceased"`
	Vaccinated   int    `json:"vaccinated"`
	Medical      int    `json:"medical"`
}

func (s *Server) getAnalysis(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "both from and to query parameters are required"})
		return
	}

	days, err := s.store.Range(c.Request.Context(), from, to)
	if err != nil {
		s.storeFailure(c, err)
		return
	}

	series := make([]analysisPoint, len(days))
	for i, day := range days {
		series[i] = analysisPoint{
			Date:         day.Date,
			Active:       day.Overall.Active.Current,
			Hospitalized: day.Overall.Active.CurrentByType.Hospitalized,
			ICU:          day.Overall.Active.CurrentByType.ICU,
			Confirmed:    day.Overall.Confirmed.Last24,
			Tested:       day.Overall.Tested.Last24,
			Deceased:     day.Overall.Deceased.Last,
			Vaccinated:   day.Overall.Vaccinated.Last24,
			Medical:      day.Overall.Confirmed.Medical.Last24,
		}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(series), "series": series})
}

func (s *Server) triggerScrape(c *gin.Context) {
	outcome, err := s.scraper.ScrapeOnce(c.Request.Context(), "api")
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"outcome": string(outcome), "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcome": string(outcome)})
}

func (s *Server) storeFailure(c *gin.Context, err error) {
	slog.ErrorContext(c.Request.Context(), "store read failed", "path", c.FullPath(), "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "store unavailable"})
}
