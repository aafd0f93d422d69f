package web_fetch

import (
	"context"
	"time"

	"github.com/HatD3V/mountx-the-inner-browser/tools/web_fetch/chromedp"
	"github.com/HatD3V/mountx-the-inner-browser/tools/web_fetch/models"
)

const (
	DefaultTimeout  = 15 * time.Second
	MaxCharsDefault = 600
)

// WebFetcher renders a page and extracts a readable preview of it.
type WebFetcher interface {
	Exec(ctx context.Context, url string) (models.Preview, error)
}

type FetcherType string

const (
	ChromedpFetcherType FetcherType = "chromedp"
)

type Error struct{ Msg string }

func (e *Error) Error() string { return e.Msg }

func NewWebFetcher(fetcherType FetcherType, timeout time.Duration, maxChars int) (WebFetcher, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxChars <= 0 {
		maxChars = MaxCharsDefault
	}

	switch fetcherType {
	case ChromedpFetcherType:
		return &chromedp.Fetch{Timeout: timeout, MaxChars: maxChars}, nil
	default:
		return nil, &Error{"unsupported fetcher type"}
	}
}
