package web_search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HatD3V/mountx-the-inner-browser/models"
)

type fakeResults struct {
	resp  models.SearchResponse
	err   error
	delay time.Duration
}

func (f fakeResults) Name() string { return "fake" }

func (f fakeResults) Search(ctx context.Context, q string, _ models.Region) (models.SearchResponse, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return models.SearchResponse{}, ctx.Err()
		}
	}
	return f.resp, f.err
}

type fakeImages struct {
	imgs  []models.SearchImage
	err   error
	delay time.Duration
}

func (f fakeImages) Name() string { return "fake-images" }

func (f fakeImages) Images(ctx context.Context, q string) ([]models.SearchImage, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.imgs, f.err
}

func manyResults(n int) []models.SearchResult {
	out := make([]models.SearchResult, n)
	for i := range out {
		out[i] = models.SearchResult{Title: "t", URL: "https://example.com", Snippet: ""}
	}
	return out
}

func manyImages(n int) []models.SearchImage {
	out := make([]models.SearchImage, n)
	for i := range out {
		out[i] = models.SearchImage{Title: "t", URL: "https://example.com/i.png"}
	}
	return out
}

func TestSearchWebRejectsBlankQuery(t *testing.T) {
	agg, err := NewAggregator(AggregatorConfig{Results: fakeResults{}})
	require.NoError(t, err)

	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := agg.SearchWeb(context.Background(), q, "")
		assert.ErrorIs(t, err, models.ErrInvalidQuery, "query %q", q)
	}
}

func TestSearchWebResilientPolicy(t *testing.T) {
	agg, err := NewAggregator(AggregatorConfig{
		Results: fakeResults{err: &models.UpstreamError{Status: 502}},
		Images:  fakeImages{imgs: manyImages(2)},
		Policy:  PolicyResilient,
	})
	require.NoError(t, err)

	resp, err := agg.SearchWeb(context.Background(), "golang", "")
	require.NoError(t, err, "resilient policy must not surface provider failure")
	assert.Empty(t, resp.Results)
	assert.NotEmpty(t, resp.Notice)
	assert.Len(t, resp.Images, 2, "image provider output survives a results failure")
}

func TestSearchWebStrictPolicy(t *testing.T) {
	upstream := &models.UpstreamError{Status: 503}
	agg, err := NewAggregator(AggregatorConfig{
		Results: fakeResults{err: upstream},
		Policy:  PolicyStrict,
	})
	require.NoError(t, err)

	_, err = agg.SearchWeb(context.Background(), "golang", "")
	var ue *models.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, 503, ue.Status)
}

func TestSearchWebCannedPolicy(t *testing.T) {
	agg, err := NewAggregator(AggregatorConfig{
		Results: fakeResults{err: errors.New("connection refused")},
		Policy:  PolicyCanned,
	})
	require.NoError(t, err)

	resp, err := agg.SearchWeb(context.Background(), "golang", "")
	require.NoError(t, err)
	require.Len(t, resp.Results, 3)
	assert.Contains(t, resp.Results[0].URL, "wikipedia.org")
	assert.NotEmpty(t, resp.Notice)
}

func TestSearchWebImageFailureDegrades(t *testing.T) {
	agg, err := NewAggregator(AggregatorConfig{
		Results: fakeResults{resp: models.SearchResponse{Results: manyResults(3)}},
		Images:  fakeImages{err: errors.New("dns failure")},
	})
	require.NoError(t, err)

	resp, err := agg.SearchWeb(context.Background(), "golang", models.RegionUS)
	require.NoError(t, err)
	assert.Len(t, resp.Results, 3)
	assert.Empty(t, resp.Images)
	assert.Empty(t, resp.Notice, "a degraded image set is not advisory-worthy")
}

func TestSearchWebFallbackImages(t *testing.T) {
	agg, err := NewAggregator(AggregatorConfig{
		Results:        fakeResults{resp: models.SearchResponse{Results: manyResults(1)}},
		Images:         fakeImages{err: errors.New("boom")},
		FallbackImages: true,
	})
	require.NoError(t, err)

	resp, err := agg.SearchWeb(context.Background(), "mountains", "")
	require.NoError(t, err)
	require.Len(t, resp.Images, 6)
	assert.Contains(t, resp.Images[0].Title, "mountains")
}

func TestSearchWebCaps(t *testing.T) {
	agg, err := NewAggregator(AggregatorConfig{
		Results: fakeResults{resp: models.SearchResponse{
			Results: manyResults(20),
			Images:  manyImages(20),
		}},
	})
	require.NoError(t, err)

	resp, err := agg.SearchWeb(context.Background(), "golang", "")
	require.NoError(t, err)
	assert.Len(t, resp.Results, DefaultMaxResults)
	assert.Len(t, resp.Images, DefaultMaxImages)
}

func TestSearchWebRunsProvidersConcurrently(t *testing.T) {
	agg, err := NewAggregator(AggregatorConfig{
		Results: fakeResults{resp: models.SearchResponse{Results: manyResults(1)}, delay: 100 * time.Millisecond},
		Images:  fakeImages{imgs: manyImages(1), delay: 300 * time.Millisecond},
	})
	require.NoError(t, err)

	start := time.Now()
	_, err = agg.SearchWeb(context.Background(), "golang", "")
	elapsed := time.Since(start)
	require.NoError(t, err)
	assert.Less(t, elapsed, 390*time.Millisecond, "providers must run concurrently, not sequentially")
	assert.GreaterOrEqual(t, elapsed, 300*time.Millisecond)
}

func TestSearchWebTimeoutIsProviderFailure(t *testing.T) {
	agg, err := NewAggregator(AggregatorConfig{
		Results: fakeResults{resp: models.SearchResponse{Results: manyResults(1)}, delay: time.Second},
		Timeout: 50 * time.Millisecond,
	})
	require.NoError(t, err)

	resp, err := agg.SearchWeb(context.Background(), "golang", "")
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.NotEmpty(t, resp.Notice)
}
