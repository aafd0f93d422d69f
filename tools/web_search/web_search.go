package web_search

import (
	"context"

	"github.com/HatD3V/mountx-the-inner-browser/models"
	"github.com/HatD3V/mountx-the-inner-browser/tools/web_search/brave"
	"github.com/HatD3V/mountx-the-inner-browser/tools/web_search/duckduckgo"
	"github.com/HatD3V/mountx-the-inner-browser/tools/web_search/placeholder"
	"github.com/HatD3V/mountx-the-inner-browser/tools/web_search/rest"
	"github.com/HatD3V/mountx-the-inner-browser/tools/web_search/static"
	"github.com/HatD3V/mountx-the-inner-browser/tools/web_search/wikimedia"
)

// Default caps applied to the unified response, in upstream order.
const (
	DefaultMaxResults = 8
	DefaultMaxImages  = 6
)

// ResultProvider produces organic results for a query. Providers that return
// images alongside results (the generic REST shape) include them in the
// response; providers without images leave the slice empty.
type ResultProvider interface {
	Name() string
	Search(ctx context.Context, q string, region models.Region) (models.SearchResponse, error)
}

// ImageProvider produces image results for a query, independent of the
// results provider.
type ImageProvider interface {
	Name() string
	Images(ctx context.Context, q string) ([]models.SearchImage, error)
}

type Provider string

const (
	RestProvider       Provider = "rest"
	BraveProvider      Provider = "brave"
	DuckDuckGoProvider Provider = "duckduckgo"
	StaticProvider     Provider = "static"
)

type ImageSource string

const (
	WikimediaImages   ImageSource = "wikimedia"
	PlaceholderImages ImageSource = "placeholder"
	NoImages          ImageSource = "none"
)

type Error struct{ Msg string }

func (e *Error) Error() string { return e.Msg }

var ErrUnsupportedProvider = &Error{"unsupported provider"}

// ProviderConfig carries the endpoint selection for one provider. There is
// no process-wide default; every adapter is constructed from an explicit
// config at startup.
type ProviderConfig struct {
	Endpoint      string
	APIKey        string
	ProxyTemplate string
}

func NewResultProvider(provider Provider, cfg ProviderConfig) (ResultProvider, error) {
	switch provider {
	case RestProvider:
		return rest.Search{Endpoint: cfg.Endpoint}, nil
	case BraveProvider:
		return brave.Search{ApiKey: cfg.APIKey, Endpoint: cfg.Endpoint}, nil
	case DuckDuckGoProvider:
		return duckduckgo.Search{Endpoint: cfg.Endpoint, ProxyTemplate: cfg.ProxyTemplate}, nil
	case StaticProvider:
		return static.Search{}, nil
	default:
		return nil, ErrUnsupportedProvider
	}
}

func NewImageProvider(source ImageSource, cfg ProviderConfig) (ImageProvider, error) {
	switch source {
	case WikimediaImages:
		return wikimedia.Images{Endpoint: cfg.Endpoint}, nil
	case PlaceholderImages:
		return placeholder.Images{}, nil
	case NoImages:
		return nil, nil
	default:
		return nil, ErrUnsupportedProvider
	}
}
