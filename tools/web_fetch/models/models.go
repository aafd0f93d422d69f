package models

// Preview is the readable summary of one fetched page, rendered for the URL
// preview surface. Excerpt is plain text, already truncated.
type Preview struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Byline   string `json:"byline,omitempty"`
	Excerpt  string `json:"excerpt"`
	TopImage string `json:"top_image,omitempty"`
	Status   int    `json:"status"`
	RenderMS int    `json:"render_ms"`
}
