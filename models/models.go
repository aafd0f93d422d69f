package models

// SearchResult is one organic web result in the unified contract.
// Title and URL are guaranteed non-empty after normalization; Snippet may be
// empty but is always present.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// SearchImage is one image result. SourceURL is the click-through page when
// one is known; it is omitted entirely otherwise.
type SearchImage struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	SourceURL string `json:"sourceUrl,omitempty"`
}

// SearchResponse is the unified answer to one query. Order follows upstream
// order. Notice carries an advisory message when the response is degraded
// (empty results after an upstream failure, canned suggestions, placeholder
// images); it is empty for a healthy response.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
	Images  []SearchImage  `json:"images"`
	Notice  string         `json:"notice,omitempty"`
}

// Region hints geo-scoped results. The zero value means no region constraint.
type Region string

const (
	RegionGlobal Region = "global"
	RegionUS     Region = "us"
	RegionEU     Region = "eu"
	RegionAsia   Region = "asia"
)

// ParseRegion maps a raw string onto the closed region set. Unknown or blank
// input yields the empty Region, never an error.
func ParseRegion(s string) Region {
	switch Region(s) {
	case RegionGlobal, RegionUS, RegionEU, RegionAsia:
		return Region(s)
	default:
		return ""
	}
}

func (r Region) Valid() bool {
	return ParseRegion(string(r)) != ""
}
