package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HatD3V/mountx-the-inner-browser/config"
	srv "github.com/HatD3V/mountx-the-inner-browser/internal/server"
	"github.com/HatD3V/mountx-the-inner-browser/models"
	"github.com/HatD3V/mountx-the-inner-browser/tools/web_search"
)

func main() {
	var cfgPath string
	var root = &cobra.Command{Use: "mountx"}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file")

	var serveAddr string
	var serve = &cobra.Command{
		Use:   "serve",
		Short: "Run the search relay server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(cfgPath)
			return srv.Run(cfg, serveAddr)
		},
	}
	serve.Flags().StringVar(&serveAddr, "addr", "", "listen address (defaults to :<server.port>)")

	var migDir, direction string
	var steps int
	var migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(cfgPath)
			return srv.Migrate(migDir, cfg.Storage.Postgres.DSN(), direction, steps)
		},
	}
	migrateCmd.Flags().StringVar(&migDir, "dir", "file://migrations", "migrations source (file://migrations)")
	migrateCmd.Flags().StringVar(&direction, "direction", "up", "up or down")
	migrateCmd.Flags().IntVar(&steps, "steps", 0, "number of steps (0 = all)")

	var region string
	var search = &cobra.Command{
		Use:   "search [query]",
		Short: "Run one aggregated search and print the JSON response",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(cfgPath)
			agg, err := buildAggregator(cfg)
			if err != nil {
				return err
			}
			resp, err := agg.SearchWeb(context.Background(), strings.Join(args, " "), models.ParseRegion(region))
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	}
	search.Flags().StringVar(&region, "region", "", "region hint (global, us, eu, asia)")

	root.AddCommand(serve, migrateCmd, search)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildAggregator(cfg *config.Config) (*web_search.Aggregator, error) {
	results, err := web_search.NewResultProvider(web_search.Provider(cfg.Search.Provider), web_search.ProviderConfig{
		Endpoint:      providerEndpoint(cfg),
		APIKey:        cfg.Providers.Brave.APIKey,
		ProxyTemplate: cfg.Providers.DuckDuckGo.ProxyTemplate,
	})
	if err != nil {
		return nil, err
	}
	logger := log.New(log.Writer(), "[SEARCH] ", log.LstdFlags)
	if cfg.Search.Breaker {
		results = web_search.NewBreakerProvider(results, logger)
	}
	images, err := web_search.NewImageProvider(web_search.ImageSource(cfg.Search.ImageSource), web_search.ProviderConfig{
		Endpoint: cfg.Providers.Wikimedia.Endpoint,
	})
	if err != nil {
		return nil, err
	}
	return web_search.NewAggregator(web_search.AggregatorConfig{
		Results:        results,
		Images:         images,
		Policy:         web_search.Policy(cfg.Search.Policy),
		Timeout:        cfg.Search.Timeout,
		MaxResults:     cfg.Search.MaxResults,
		MaxImages:      cfg.Search.MaxImages,
		FallbackImages: cfg.Search.FallbackImages,
		Logger:         logger,
	})
}

func providerEndpoint(cfg *config.Config) string {
	switch cfg.Search.Provider {
	case "brave":
		return cfg.Providers.Brave.Endpoint
	case "duckduckgo":
		return cfg.Providers.DuckDuckGo.Endpoint
	default:
		return cfg.Providers.Relay.Endpoint
	}
}
