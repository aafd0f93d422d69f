package web_search

import (
	"context"
	"log"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/HatD3V/mountx-the-inner-browser/models"
)

const (
	breakerMaxFailures uint32 = 5
	breakerTimeout            = 30 * time.Second
	breakerInterval           = 60 * time.Second
)

// BreakerProvider wraps a ResultProvider with a circuit breaker. When the
// upstream fails repeatedly the circuit opens and calls fail fast without
// reaching it; the aggregator handles the fast failure through the normal
// policy path. One probe is allowed in the half-open state.
type BreakerProvider struct {
	inner   ResultProvider
	breaker *gobreaker.CircuitBreaker[models.SearchResponse]
}

func NewBreakerProvider(inner ResultProvider, logger *log.Logger) *BreakerProvider {
	if logger == nil {
		logger = log.New(log.Writer(), "[BREAKER] ", log.LstdFlags)
	}
	cb := gobreaker.NewCircuitBreaker[models.SearchResponse](gobreaker.Settings{
		Name:        "search:" + inner.Name(),
		MaxRequests: 1,
		Interval:    breakerInterval,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerMaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Printf("%s: %s -> %s", name, from.String(), to.String())
		},
	})
	return &BreakerProvider{inner: inner, breaker: cb}
}

func (b *BreakerProvider) Name() string { return b.inner.Name() }

func (b *BreakerProvider) Search(ctx context.Context, q string, region models.Region) (models.SearchResponse, error) {
	return b.breaker.Execute(func() (models.SearchResponse, error) {
		return b.inner.Search(ctx, q, region)
	})
}
