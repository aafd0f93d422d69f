package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/HatD3V/mountx-the-inner-browser/internal/store"
	"github.com/HatD3V/mountx-the-inner-browser/utils"
)

// FavoritesHandler exposes saved results backed by Postgres.
type FavoritesHandler struct {
	Store *store.Store
}

func (h *FavoritesHandler) Register(g *echo.Group) {
	g.GET("", h.list)
	g.POST("", h.add)
	g.DELETE("/:id", h.remove)
}

type addFavoriteRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

func (h *FavoritesHandler) add(c echo.Context) error {
	var req addFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Title) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if !utils.IsURL(req.URL) {
		return echo.NewHTTPError(http.StatusBadRequest, "a valid url is required")
	}
	fav, err := h.Store.AddFavorite(c.Request().Context(), strings.TrimSpace(req.Title), utils.NormalizeURL(req.URL))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, fav)
}

func (h *FavoritesHandler) list(c echo.Context) error {
	favs, err := h.Store.ListFavorites(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"favorites": favs})
}

func (h *FavoritesHandler) remove(c echo.Context) error {
	err := h.Store.DeleteFavorite(c.Request().Context(), c.Param("id"))
	if errors.Is(err, store.ErrFavoriteNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "favorite not found")
	}
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
