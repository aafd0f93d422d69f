package normalize

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return v
}

func TestResultRejectsMalformed(t *testing.T) {
	cases := []string{
		`{"url": "https://x.com"}`,
		`{"title": "no url"}`,
		`{"title": 42, "url": "https://x.com"}`,
		`{"title": "x", "url": null}`,
		`{"title": "", "url": "https://x.com"}`,
		`"just a string"`,
		`[1,2,3]`,
		`null`,
	}
	for _, c := range cases {
		if _, ok := Result(decode(t, c)); ok {
			t.Errorf("Result accepted malformed input %s", c)
		}
	}
}

func TestResultSnippetAlwaysPresent(t *testing.T) {
	r, ok := Result(decode(t, `{"title": "t", "url": "u"}`))
	if !ok {
		t.Fatal("valid candidate rejected")
	}
	if r.Snippet != "" {
		t.Errorf("expected empty snippet, got %q", r.Snippet)
	}

	r, _ = Result(decode(t, `{"title": "t", "url": "u", "description": "from description"}`))
	if r.Snippet != "from description" {
		t.Errorf("description should resolve into snippet, got %q", r.Snippet)
	}

	r, _ = Result(decode(t, `{"title": "t", "url": "u", "snippet": "s", "description": "d"}`))
	if r.Snippet != "s" {
		t.Errorf("snippet should win over description, got %q", r.Snippet)
	}
}

func TestImageSourceURLSpellings(t *testing.T) {
	img, ok := Image(decode(t, `{"title": "t", "url": "u", "source_url": "snake"}`))
	if !ok || img.SourceURL != "snake" {
		t.Errorf("snake_case sourceUrl not resolved: %+v", img)
	}
	img, _ = Image(decode(t, `{"title": "t", "url": "u", "sourceUrl": "camel"}`))
	if img.SourceURL != "camel" {
		t.Errorf("camelCase sourceUrl not resolved: %+v", img)
	}
	img, _ = Image(decode(t, `{"title": "t", "url": "u"}`))
	if img.SourceURL != "" {
		t.Errorf("absent sourceUrl should stay absent, got %q", img.SourceURL)
	}
}

func TestResultsNonArray(t *testing.T) {
	if got := Results(decode(t, `{"not": "an array"}`)); got != nil {
		t.Errorf("non-array should yield empty, got %v", got)
	}
	if got := Results(nil); got != nil {
		t.Errorf("nil should yield empty, got %v", got)
	}
}

func TestResultsDropsInvalidEntries(t *testing.T) {
	raw := decode(t, `[
		{"title": "A", "url": "https://a.com", "snippet": "a"},
		{"url": "https://missing-title.com"},
		{"title": "B", "url": "https://b.com"},
		17
	]`)
	out := Results(raw)
	if len(out) != 2 {
		t.Fatalf("expected 2 surviving results, got %d", len(out))
	}
	if out[0].Title != "A" || out[1].Title != "B" {
		t.Errorf("order not preserved: %+v", out)
	}
}
