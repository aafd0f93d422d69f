package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/HatD3V/mountx-the-inner-browser/config"
	"github.com/HatD3V/mountx-the-inner-browser/internal/store"
	"github.com/HatD3V/mountx-the-inner-browser/internal/telemetry"
	"github.com/HatD3V/mountx-the-inner-browser/repository/redis_repository"
	"github.com/HatD3V/mountx-the-inner-browser/tools/web_fetch"
	"github.com/HatD3V/mountx-the-inner-browser/tools/web_search/brave"
)

// Run starts the relay. The Brave credential is deliberately not required at
// startup: the server always listens, and a missing key surfaces as a
// per-request error on the search endpoint.
func Run(cfg *config.Config, addr string) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(200, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	metrics := telemetry.NewMetrics(prometheus.DefaultRegisterer)
	api := e.Group("/api")

	ctx := context.Background()

	// History is available only when Redis is configured.
	var history *redis_repository.HistoryRepository
	if cfg.Storage.Redis.Enabled() {
		rdb, err := redis_repository.Conn(ctx,
			cfg.Storage.Redis.Host, cfg.Storage.Redis.Port,
			cfg.Storage.Redis.Password, cfg.Storage.Redis.DB,
			cfg.Storage.Redis.Timeout)
		if err != nil {
			return fmt.Errorf("redis connection failed (%s:%s): %w", cfg.Storage.Redis.Host, cfg.Storage.Redis.Port, err)
		}
		history = &redis_repository.HistoryRepository{Client: rdb, MaxEntries: cfg.History.MaxEntries}
		hh := &HistoryHandler{History: history}
		hh.Register(api.Group("/history"))

		sweeper := &Sweeper{
			History:   history,
			Rdb:       rdb,
			CronSpec:  cfg.History.SweepCron,
			Retention: cfg.History.Retention,
			Stop:      make(chan struct{}),
		}
		sweeper.Start()
	}

	sh := &SearchHandler{
		Brave: brave.Search{
			ApiKey:   cfg.Providers.Brave.APIKey,
			Endpoint: cfg.Providers.Brave.Endpoint,
		},
		History: history,
		Metrics: metrics,
		Logger:  log.New(log.Writer(), "[SEARCH] ", log.LstdFlags),
	}
	searchRoute := api.Group("")
	if cfg.Server.RateLimit > 0 {
		searchRoute.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
				Rate:  rate.Limit(cfg.Server.RateLimit),
				Burst: cfg.Server.RateBurst,
			}),
		}))
	}
	searchRoute.GET("/search", sh.search)

	// Favorites are available only when Postgres is configured.
	if cfg.Storage.Postgres.Enabled() {
		st, err := store.NewWithDSN(ctx, cfg.Storage.Postgres.DSN())
		if err != nil {
			return err
		}
		fh := &FavoritesHandler{Store: st}
		fh.Register(api.Group("/favorites"))
	}

	fetcher, err := web_fetch.NewWebFetcher(web_fetch.ChromedpFetcherType, 0, 0)
	if err != nil {
		return err
	}
	ph := &PreviewHandler{Fetcher: fetcher}
	api.GET("/preview", ph.preview)

	if addr == "" {
		addr = ":" + cfg.Server.Port
	}
	log.Printf("search relay listening on %s", addr)
	return e.Start(addr)
}
