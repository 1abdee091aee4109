package web

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"KrakenCandles/internal/collector"
	"KrakenCandles/internal/config"
	"KrakenCandles/internal/model"
	"KrakenCandles/internal/recorder"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	// displayDateLayout renders dates on the page, e.g. "2021 03 01 UTC".
	displayDateLayout = "2006 01 02 MST"

	defaultHistoryLimit = 20
	maxHistoryLimit     = 500
)

// Handler serves the chart page and the JSON API.
type Handler struct {
	Collector *collector.Collector
	Recorder  recorder.Recorder
	// Defaults are used for every parameter a request does not override.
	Defaults model.Query
}

// NewHandler creates a new Handler.
func NewHandler(col *collector.Collector, rec recorder.Recorder, defaults model.Query) *Handler {
	return &Handler{Collector: col, Recorder: rec, Defaults: defaults}
}

// RegisterRoutes sets up the JSON endpoints under the /api group.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, limiter gin.HandlerFunc) {
	api.GET("/health", h.health)
	api.HEAD("/health", h.health)
	api.GET("/ohlc", limiter, h.ohlc)
	api.GET("/history", h.history)
}

// Index renders the candlestick page.
func (h *Handler) Index(c *gin.Context) {
	q, err := h.resolveQuery(c)
	if err != nil {
		renderError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	report, err := h.Collector.Collect(c.Request.Context(), q)
	if err != nil {
		log.Error().Err(err).Str("pair", q.Pair).Msg("collect for page failed")
		renderError(c, statusFor(err), "Market data unavailable", describe(err))
		return
	}
	h.record(model.SourcePage, report)

	c.HTML(http.StatusOK, "index.html", IndexContext(report))
}

// IndexContext is the template context for a report.
func IndexContext(report *model.Report) gin.H {
	q := report.Query
	return gin.H{
		"heading":    collector.Heading(q.Pair),
		"start_date": q.Start.UTC().Format(displayDateLayout),
		"end_date":   q.End.UTC().Format(displayDateLayout),
		"interval":   q.Interval,
		"chart":      template.HTML(report.ChartHTML),
		"mean":       report.Summary.Mean,
		"median":     report.Summary.Median,
		"summary":    report.Summary,
		"has_data":   report.Summary.Count > 0,
	}
}

func (h *Handler) ohlc(c *gin.Context) {
	q, err := h.resolveQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.Collector.Collect(c.Request.Context(), q)
	if err != nil {
		log.Error().Err(err).Str("pair", q.Pair).Msg("collect for api failed")
		c.JSON(statusFor(err), gin.H{"error": describe(err)})
		return
	}
	h.record(model.SourceAPI, report)

	c.JSON(http.StatusOK, gin.H{
		"query":   report.Query,
		"candles": report.Series.Candles(),
		"summary": report.Summary,
	})
}

func (h *Handler) history(c *gin.Context) {
	limit := defaultHistoryLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	snaps, err := h.Recorder.Recent(limit)
	if err != nil {
		log.Error().Err(err).Msg("read history failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "history unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": snaps})
}

func (h *Handler) health(c *gin.Context) {
	c.Status(http.StatusOK)
}

// resolveQuery applies request overrides on top of the defaults.
// The pair is passed through unchecked.
func (h *Handler) resolveQuery(c *gin.Context) (model.Query, error) {
	q := h.Defaults
	if v := strings.TrimSpace(c.Query("pair")); v != "" {
		q.Pair = v
	}
	if v := c.Query("start"); v != "" {
		t, err := time.Parse(config.DateLayout, v)
		if err != nil {
			return q, fmt.Errorf("start must look like %s", config.DateLayout)
		}
		q.Start = t
	}
	if v := c.Query("end"); v != "" {
		t, err := time.Parse(config.DateLayout, v)
		if err != nil {
			return q, fmt.Errorf("end must look like %s", config.DateLayout)
		}
		q.End = t
	}
	if v := c.Query("interval"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return q, fmt.Errorf("interval must be an integer number of minutes")
		}
		q.Interval = n
	}
	if q.End.Before(q.Start) {
		return q, fmt.Errorf("end must not be before start")
	}
	return q, nil
}

// record stores a summary; failures never fail the request.
func (h *Handler) record(source model.Source, report *model.Report) {
	if err := h.Recorder.RecordSnapshot(recorder.NewSnapshot(source, report)); err != nil {
		log.Warn().Err(err).Str("pair", report.Query.Pair).Msg("record snapshot failed")
	}
}

func statusFor(err error) int {
	if errors.Is(err, collector.ErrUpstreamUnavailable) || errors.Is(err, collector.ErrMalformedResponse) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func describe(err error) string {
	switch {
	case errors.Is(err, collector.ErrUpstreamUnavailable):
		return "The Kraken API could not be reached."
	case errors.Is(err, collector.ErrMalformedResponse):
		return "The Kraken API returned an unexpected response."
	default:
		return "The chart could not be built."
	}
}

func renderError(c *gin.Context, status int, title, message string) {
	c.HTML(status, "error.html", gin.H{"title": title, "message": message})
}
