// Package normalize turns untrusted upstream JSON into well-formed search
// results. A candidate survives only when title and url are both present as
// strings; nothing is coerced. Malformed entries are dropped silently so
// callers never see partial data.
package normalize

import (
	"github.com/HatD3V/mountx-the-inner-browser/models"
)

func stringField(m map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if s, ok := m[k].(string); ok {
			return s, true
		}
	}
	return "", false
}

// Result validates a single raw candidate into a SearchResult. The snippet
// resolves from the first string among snippet and description and defaults
// to the empty string.
func Result(raw any) (models.SearchResult, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return models.SearchResult{}, false
	}
	title, ok := stringField(m, "title")
	if !ok || title == "" {
		return models.SearchResult{}, false
	}
	url, ok := stringField(m, "url")
	if !ok || url == "" {
		return models.SearchResult{}, false
	}
	snippet, _ := stringField(m, "snippet", "description")
	return models.SearchResult{Title: title, URL: url, Snippet: snippet}, true
}

// Image validates a single raw candidate into a SearchImage. sourceUrl is
// accepted in both camelCase and snake_case upstream spellings and stays
// absent when neither is present.
func Image(raw any) (models.SearchImage, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return models.SearchImage{}, false
	}
	title, ok := stringField(m, "title")
	if !ok || title == "" {
		return models.SearchImage{}, false
	}
	url, ok := stringField(m, "url")
	if !ok || url == "" {
		return models.SearchImage{}, false
	}
	sourceURL, _ := stringField(m, "sourceUrl", "source_url")
	return models.SearchImage{Title: title, URL: url, SourceURL: sourceURL}, true
}

// Results treats a non-array value as empty rather than an error.
func Results(raw any) []models.SearchResult {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	var out []models.SearchResult
	for _, it := range items {
		if r, ok := Result(it); ok {
			out = append(out, r)
		}
	}
	return out
}

// Images treats a non-array value as empty rather than an error.
func Images(raw any) []models.SearchImage {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	var out []models.SearchImage
	for _, it := range items {
		if img, ok := Image(it); ok {
			out = append(out, img)
		}
	}
	return out
}
