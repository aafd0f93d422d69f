package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/HatD3V/mountx-the-inner-browser/repository/redis_repository"
	"github.com/HatD3V/mountx-the-inner-browser/utils"
)

// HistoryHandler exposes the visit history kept in Redis.
type HistoryHandler struct {
	History *redis_repository.HistoryRepository
}

func (h *HistoryHandler) Register(g *echo.Group) {
	g.GET("", h.list)
	g.POST("", h.record)
	g.DELETE("", h.clear)
}

func (h *HistoryHandler) list(c echo.Context) error {
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]interface{}{"error": "limit must be a positive integer"})
		}
		limit = n
	}
	entries, err := h.History.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"entries": entries})
}

type recordHistoryRequest struct {
	Kind  string `json:"kind"`
	Query string `json:"query"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

func (h *HistoryHandler) record(c echo.Context) error {
	var req recordHistoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	switch req.Kind {
	case redis_repository.HistoryKindSearch:
		if strings.TrimSpace(req.Query) == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "query is required for search entries")
		}
	case redis_repository.HistoryKindVisit:
		if !utils.IsURL(req.URL) {
			return echo.NewHTTPError(http.StatusBadRequest, "a valid url is required for visit entries")
		}
		req.URL = utils.NormalizeURL(req.URL)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "kind must be search or visit")
	}
	entry, err := h.History.Add(c.Request().Context(), redis_repository.HistoryEntry{
		Kind:  req.Kind,
		Query: strings.TrimSpace(req.Query),
		URL:   req.URL,
		Title: req.Title,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}

func (h *HistoryHandler) clear(c echo.Context) error {
	if err := h.History.Clear(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
