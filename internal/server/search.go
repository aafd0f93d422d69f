package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/HatD3V/mountx-the-inner-browser/internal/telemetry"
	"github.com/HatD3V/mountx-the-inner-browser/models"
	"github.com/HatD3V/mountx-the-inner-browser/repository/redis_repository"
	"github.com/HatD3V/mountx-the-inner-browser/tools/web_search/brave"
)

// SearchHandler relays search queries upstream so the API key never reaches
// the client. History is optional and best-effort.
type SearchHandler struct {
	Brave   brave.Search
	History *redis_repository.HistoryRepository
	Metrics *telemetry.Metrics
	Logger  *log.Logger
}

func (h *SearchHandler) search(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		h.observe("invalid", 0)
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"error": "Missing search query."})
	}
	region := models.ParseRegion(c.QueryParam("region"))

	start := time.Now()
	resp, err := h.Brave.Search(c.Request().Context(), q, region)
	elapsed := time.Since(start)
	if err != nil {
		var upstream *models.UpstreamError
		switch {
		case errors.Is(err, models.ErrMissingCredential):
			h.observe("error", elapsed)
			return c.JSON(http.StatusInternalServerError, map[string]interface{}{
				"error": "Brave API key is not configured.",
			})
		case errors.As(err, &upstream):
			h.Logger.Printf("upstream status %d for %q", upstream.Status, q)
			h.observe("error", elapsed)
			if h.Metrics != nil {
				h.Metrics.UpstreamFailures.WithLabelValues("brave").Inc()
			}
			return c.JSON(upstream.Status, map[string]interface{}{
				"error":   "Search provider request failed.",
				"details": upstream.Body,
			})
		default:
			h.Logger.Printf("search failed for %q: %v", q, err)
			h.observe("error", elapsed)
			return c.JSON(http.StatusInternalServerError, map[string]interface{}{"error": "Search request failed."})
		}
	}

	h.observe("ok", elapsed)
	h.recordHistory(q)
	return c.JSON(http.StatusOK, resp)
}

func (h *SearchHandler) observe(outcome string, elapsed time.Duration) {
	if h.Metrics == nil {
		return
	}
	h.Metrics.SearchesTotal.WithLabelValues(outcome).Inc()
	if elapsed > 0 {
		h.Metrics.SearchDuration.Observe(elapsed.Seconds())
	}
}

func (h *SearchHandler) recordHistory(q string) {
	if h.History == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if _, err := h.History.Add(ctx, redis_repository.HistoryEntry{
			Kind:  redis_repository.HistoryKindSearch,
			Query: q,
		}); err != nil {
			h.Logger.Printf("history record failed: %v", err)
		}
	}()
}
