package placeholder

import (
	"context"
	"fmt"
	"net/url"

	"github.com/HatD3V/mountx-the-inner-browser/models"
)

const imageCount = 6

// Images is the deterministic stand-in image source for deployments that
// must always show something: six synthetic entries keyed by the query text
// and an index. No network calls, no failure modes.
type Images struct{}

func (Images) Name() string { return "placeholder" }

func (Images) Images(_ context.Context, q string) ([]models.SearchImage, error) {
	return Build(q), nil
}

// Build generates the placeholder set for a query.
func Build(q string) []models.SearchImage {
	escaped := url.QueryEscape(q)
	out := make([]models.SearchImage, 0, imageCount)
	for i := 0; i < imageCount; i++ {
		out = append(out, models.SearchImage{
			Title:     fmt.Sprintf("%s image %d", q, i+1),
			URL:       fmt.Sprintf("https://source.unsplash.com/featured/400x300?%s&sig=%d", escaped, i),
			SourceURL: "https://unsplash.com/s/photos/" + escaped,
		})
	}
	return out
}
