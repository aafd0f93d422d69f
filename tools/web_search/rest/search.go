package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"context"

	"github.com/HatD3V/mountx-the-inner-browser/models"
	"github.com/HatD3V/mountx-the-inner-browser/tools/web_search/normalize"
)

// Search queries any endpoint speaking the generic {results, images} shape,
// typically the relay endpoint of this repo. The response body is never
// trusted: both arrays run through the normalizer and malformed entries are
// dropped.
type Search struct {
	Endpoint string
	Client   *http.Client
}

func (s Search) Name() string { return "rest" }

func (s Search) Search(ctx context.Context, q string, region models.Region) (models.SearchResponse, error) {
	u, err := url.Parse(s.Endpoint)
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

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return models.SearchResponse{}, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return models.SearchResponse{}, &models.UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return models.SearchResponse{}, fmt.Errorf("decode search response: %w", err)
	}

	return models.SearchResponse{
		Results: normalize.Results(raw["results"]),
		Images:  normalize.Images(raw["images"]),
	}, nil
}
