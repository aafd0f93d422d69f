package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HatD3V/mountx-the-inner-browser/tools/web_fetch"
	"github.com/HatD3V/mountx-the-inner-browser/utils"
)

// PreviewHandler renders a page headlessly and returns its readable summary.
type PreviewHandler struct {
	Fetcher web_fetch.WebFetcher
}

func (h *PreviewHandler) preview(c echo.Context) error {
	raw := c.QueryParam("url")
	if !utils.IsURL(raw) {
		return echo.NewHTTPError(http.StatusBadRequest, "a valid url is required")
	}
	p, err := h.Fetcher.Exec(c.Request().Context(), utils.NormalizeURL(raw))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "page preview failed")
	}
	return c.JSON(http.StatusOK, p)
}
