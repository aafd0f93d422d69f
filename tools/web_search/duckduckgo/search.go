package duckduckgo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/HatD3V/mountx-the-inner-browser/models"
)

const DefaultEndpoint = "https://api.duckduckgo.com/"

// Search adapts the DuckDuckGo instant-answer API. The upstream returns a
// tree of topics; leaves are flattened depth-first into results, branches
// contribute only their descendants. When the tree yields nothing but the
// payload carries an abstract, exactly one result is synthesized from it.
//
// The API has no CORS-free variant, so deployments may route it through a
// proxy: ProxyTemplate either contains a {url} marker or is used as a prefix
// for the encoded target URL.
type Search struct {
	Endpoint      string
	ProxyTemplate string
	Client        *http.Client
	MaxResults    int
}

func (s Search) Name() string { return "duckduckgo" }

func (s Search) Search(ctx context.Context, q string, _ models.Region) (models.SearchResponse, error) {
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
	params.Set("format", "json")
	params.Set("no_redirect", "1")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")
	u.RawQuery = params.Encode()

	target := u.String()
	if s.ProxyTemplate != "" {
		if strings.Contains(s.ProxyTemplate, "{url}") {
			target = strings.Replace(s.ProxyTemplate, "{url}", url.QueryEscape(target), 1)
		} else {
			target = s.ProxyTemplate + url.QueryEscape(target)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
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
		return models.SearchResponse{}, fmt.Errorf("duckduckgo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return models.SearchResponse{}, &models.UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return models.SearchResponse{}, fmt.Errorf("decode duckduckgo response: %w", err)
	}

	max := s.MaxResults
	if max <= 0 {
		max = 8
	}
	return models.SearchResponse{Results: Normalize(raw, q, max)}, nil
}

// Normalize flattens a raw instant-answer payload into results. Exposed
// separately so the shape rules are testable without a network call.
func Normalize(raw map[string]any, query string, max int) []models.SearchResult {
	var results []models.SearchResult
	for _, key := range []string{"Results", "RelatedTopics"} {
		if list, ok := raw[key].([]any); ok {
			for _, t := range list {
				flatten(t, &results)
			}
		}
	}

	results = dropSelfReferences(results)

	if len(results) == 0 {
		if abstract, ok := synthesizeAbstract(raw, query); ok {
			results = append(results, abstract)
		}
	}

	if len(results) > max {
		results = results[:max]
	}
	return results
}

func flatten(raw any, out *[]models.SearchResult) {
	m, ok := raw.(map[string]any)
	if !ok {
		return
	}
	if nested, ok := m["Topics"].([]any); ok {
		for _, t := range nested {
			flatten(t, out)
		}
		return
	}
	text, _ := m["Text"].(string)
	firstURL, _ := m["FirstURL"].(string)
	if text == "" || firstURL == "" {
		return
	}
	title, snippet := splitTopicText(text)
	*out = append(*out, models.SearchResult{Title: title, URL: firstURL, Snippet: snippet})
}

// splitTopicText splits a topic's display text on the first " - " separator
// into title and snippet. Without a separator the whole text is the title.
func splitTopicText(text string) (string, string) {
	parts := strings.SplitN(text, " - ", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return text, ""
}

// dropSelfReferences filters out the provider's own disambiguation links,
// which would otherwise masquerade as organic results.
func dropSelfReferences(results []models.SearchResult) []models.SearchResult {
	var out []models.SearchResult
	for _, r := range results {
		u, err := url.Parse(r.URL)
		if err == nil && strings.HasSuffix(u.Hostname(), "duckduckgo.com") {
			continue
		}
		out = append(out, r)
	}
	return out
}

func synthesizeAbstract(raw map[string]any, query string) (models.SearchResult, bool) {
	abstractURL, _ := raw["AbstractURL"].(string)
	if abstractURL == "" {
		return models.SearchResult{}, false
	}
	title, _ := raw["Heading"].(string)
	if title == "" {
		title = query
	}
	snippet, _ := raw["AbstractText"].(string)
	if snippet == "" {
		snippet, _ = raw["Abstract"].(string)
	}
	if snippet == "" {
		snippet = fmt.Sprintf("Learn more about %s.", query)
	}
	return models.SearchResult{Title: title, URL: abstractURL, Snippet: snippet}, true
}
