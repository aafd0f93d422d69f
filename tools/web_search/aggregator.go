package web_search

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/HatD3V/mountx-the-inner-browser/models"
	"github.com/HatD3V/mountx-the-inner-browser/tools/web_search/placeholder"
	"github.com/HatD3V/mountx-the-inner-browser/tools/web_search/static"
)

// Policy fixes what SearchWeb does when the results provider fails. The
// choice is made once at construction; it is never switched at runtime.
type Policy string

const (
	// PolicyResilient resolves to empty results plus an advisory notice.
	PolicyResilient Policy = "resilient"
	// PolicyStrict propagates the provider failure to the caller.
	PolicyStrict Policy = "strict"
	// PolicyCanned substitutes fixed suggestion links, labeled via the notice.
	PolicyCanned Policy = "canned"
)

const (
	DefaultTimeout = 8 * time.Second

	noticeUnavailable = "Search is temporarily unavailable. Showing no results."
	noticeSuggestions = "Live search is unavailable. Showing suggested links instead."
)

// Aggregator orchestrates one results provider and an optional image
// provider, merging their outputs into the unified response. Providers run
// concurrently and produce independent values, so no locking is needed
// beyond the join.
type Aggregator struct {
	results        ResultProvider
	images         ImageProvider
	policy         Policy
	timeout        time.Duration
	maxResults     int
	maxImages      int
	fallbackImages bool
	logger         *log.Logger
}

// AggregatorConfig selects the providers and merge behavior for one
// Aggregator. Results is required; Images may be nil.
type AggregatorConfig struct {
	Results        ResultProvider
	Images         ImageProvider
	Policy         Policy
	Timeout        time.Duration
	MaxResults     int
	MaxImages      int
	FallbackImages bool
	Logger         *log.Logger
}

func NewAggregator(cfg AggregatorConfig) (*Aggregator, error) {
	if cfg.Results == nil {
		return nil, &Error{"aggregator requires a results provider"}
	}
	if cfg.Policy == "" {
		cfg.Policy = PolicyResilient
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.MaxImages <= 0 {
		cfg.MaxImages = DefaultMaxImages
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(log.Writer(), "[SEARCH] ", log.LstdFlags)
	}
	return &Aggregator{
		results:        cfg.Results,
		images:         cfg.Images,
		policy:         cfg.Policy,
		timeout:        cfg.Timeout,
		maxResults:     cfg.MaxResults,
		maxImages:      cfg.MaxImages,
		fallbackImages: cfg.FallbackImages,
		logger:         cfg.Logger,
	}, nil
}

// SearchWeb answers one query. The returned response is freshly constructed
// per call and never mutated afterwards. Image failures always degrade;
// results failures follow the configured policy. A single attempt is made
// per provider, bounded by the aggregator timeout.
func (a *Aggregator) SearchWeb(ctx context.Context, query string, region models.Region) (models.SearchResponse, error) {
	out := models.SearchResponse{Results: []models.SearchResult{}, Images: []models.SearchImage{}}
	if strings.TrimSpace(query) == "" {
		return out, models.ErrInvalidQuery
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var (
		wg      sync.WaitGroup
		resResp models.SearchResponse
		resErr  error
		imgs    []models.SearchImage
		imgsErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		resResp, resErr = a.results.Search(ctx, query, region)
	}()
	if a.images != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			imgs, imgsErr = a.images.Images(ctx, query)
		}()
	}
	wg.Wait()

	if resErr != nil {
		a.logger.Printf("results provider %s failed: %v", a.results.Name(), resErr)
		switch a.policy {
		case PolicyStrict:
			return out, resErr
		case PolicyCanned:
			out.Results = static.Suggestions(query)
			out.Notice = noticeSuggestions
		default:
			out.Notice = noticeUnavailable
		}
	} else {
		out.Results = capResults(resResp.Results, a.maxResults)
		out.Images = resResp.Images
	}

	if a.images != nil {
		if imgsErr != nil {
			a.logger.Printf("image provider %s failed: %v", a.images.Name(), imgsErr)
		} else if len(imgs) > 0 {
			out.Images = imgs
		}
	}
	if len(out.Images) == 0 && a.fallbackImages {
		out.Images = placeholder.Build(query)
	}
	out.Images = capImages(out.Images, a.maxImages)
	if out.Images == nil {
		out.Images = []models.SearchImage{}
	}
	if out.Results == nil {
		out.Results = []models.SearchResult{}
	}
	return out, nil
}

func capResults(in []models.SearchResult, max int) []models.SearchResult {
	if len(in) > max {
		return in[:max]
	}
	return in
}

func capImages(in []models.SearchImage, max int) []models.SearchImage {
	if len(in) > max {
		return in[:max]
	}
	return in
}
