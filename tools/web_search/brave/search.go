package brave

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/HatD3V/mountx-the-inner-browser/models"
)

const DefaultEndpoint = "https://api.search.brave.com/res/v1/web/search"

// Search talks to the Brave web search API directly. It is the provider the
// relay wraps: the API key travels in the X-Subscription-Token header and
// must never reach a browser-side caller.
// https://api.search.brave.com/app/documentation/web-search
type Search struct {
	ApiKey   string
	Endpoint string
	Client   *http.Client
}

func (s Search) Name() string { return "brave" }

func (s Search) Search(ctx context.Context, q string, region models.Region) (models.SearchResponse, error) {
	if s.ApiKey == "" {
		return models.SearchResponse{}, models.ErrMissingCredential
	}
	endpoint := s.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return models.SearchResponse{}, fmt.Errorf("invalid endpoint: %w", err)
	}
	params := u.Query()
	params.Set("q", q)
	if region.Valid() {
		params.Set("region", string(region))
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return models.SearchResponse{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", s.ApiKey)

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return models.SearchResponse{}, fmt.Errorf("brave request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return models.SearchResponse{}, &models.UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	var raw struct {
		Web struct {
			Results []struct {
				Title       string `json:"title"`
				URL         string `json:"url"`
				Description string `json:"description"`
			} `json:"results"`
		} `json:"web"`
		Images struct {
			Results []struct {
				Title   string `json:"title"`
				URL     string `json:"url"`
				PageURL string `json:"page_url"`
			} `json:"results"`
		} `json:"images"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return models.SearchResponse{}, fmt.Errorf("decode brave response: %w", err)
	}

	out := models.SearchResponse{Results: []models.SearchResult{}, Images: []models.SearchImage{}}
	for _, r := range raw.Web.Results {
		if r.Title == "" || r.URL == "" {
			continue
		}
		out.Results = append(out.Results, models.SearchResult{Title: r.Title, URL: r.URL, Snippet: r.Description})
	}
	for _, img := range raw.Images.Results {
		if img.Title == "" || img.URL == "" {
			continue
		}
		out.Images = append(out.Images, models.SearchImage{Title: img.Title, URL: img.URL, SourceURL: img.PageURL})
	}
	return out, nil
}
