package wikimedia

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

const DefaultEndpoint = "https://en.wikipedia.org/w/api.php"

// Images adapts the MediaWiki pageimages API. The upstream keys its answer
// by opaque page ids with no guaranteed order; entries without a thumbnail
// are skipped. Any failure here is secondary data and degrades to an empty
// list at the aggregator.
type Images struct {
	Endpoint  string
	Client    *http.Client
	MaxImages int
}

func (i Images) Name() string { return "wikimedia" }

func (i Images) Images(ctx context.Context, q string) ([]models.SearchImage, error) {
	endpoint := i.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	params := u.Query()
	params.Set("action", "query")
	params.Set("generator", "search")
	params.Set("gsrsearch", q)
	params.Set("gsrlimit", "12")
	params.Set("prop", "pageimages")
	params.Set("piprop", "thumbnail")
	params.Set("pithumbsize", "400")
	params.Set("format", "json")
	params.Set("origin", "*")
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	client := i.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wikimedia request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &models.UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode wikimedia response: %w", err)
	}

	max := i.MaxImages
	if max <= 0 {
		max = 6
	}
	return Normalize(raw, max), nil
}

// Normalize extracts thumbnails from a raw pages-map payload.
func Normalize(raw map[string]any, max int) []models.SearchImage {
	query, _ := raw["query"].(map[string]any)
	pages, _ := query["pages"].(map[string]any)

	var out []models.SearchImage
	for _, p := range pages {
		page, ok := p.(map[string]any)
		if !ok {
			continue
		}
		title, _ := page["title"].(string)
		thumb, _ := page["thumbnail"].(map[string]any)
		source, _ := thumb["source"].(string)
		if title == "" || source == "" {
			continue
		}
		out = append(out, models.SearchImage{
			Title:     title,
			URL:       source,
			SourceURL: PageURL(title),
		})
		if len(out) >= max {
			break
		}
	}
	return out
}

// PageURL derives the canonical article link from a page title.
func PageURL(title string) string {
	return "https://en.wikipedia.org/wiki/" + url.PathEscape(strings.ReplaceAll(title, " ", "_"))
}
