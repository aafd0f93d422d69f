package static

import (
	"context"
	"fmt"
	"net/url"

	"github.com/HatD3V/mountx-the-inner-browser/models"
)

// Search returns canned suggestion links built from the query, with no
// upstream at all. It backs the canned failure policy and doubles as the
// mock provider in tests and offline development.
type Search struct{}

func (Search) Name() string { return "static" }

func (Search) Search(_ context.Context, q string, _ models.Region) (models.SearchResponse, error) {
	return models.SearchResponse{Results: Suggestions(q)}, nil
}

// Suggestions builds the fixed suggestion set for a query.
func Suggestions(q string) []models.SearchResult {
	escaped := url.QueryEscape(q)
	return []models.SearchResult{
		{
			Title:   fmt.Sprintf("%s - Wikipedia", q),
			URL:     "https://en.wikipedia.org/wiki/Special:Search?search=" + escaped,
			Snippet: fmt.Sprintf("Encyclopedia articles about %s.", q),
		},
		{
			Title:   fmt.Sprintf("%s on GitHub", q),
			URL:     "https://github.com/search?q=" + escaped,
			Snippet: fmt.Sprintf("Repositories and code matching %s.", q),
		},
		{
			Title:   fmt.Sprintf("%s on Stack Overflow", q),
			URL:     "https://stackoverflow.com/search?q=" + escaped,
			Snippet: fmt.Sprintf("Questions and answers about %s.", q),
		},
	}
}
