package wikimedia

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizeSkipsPagesWithoutThumbnail(t *testing.T) {
	var raw map[string]any
	err := json.Unmarshal([]byte(`{
		"query": {"pages": {
			"1": {"title": "Go (programming language)", "thumbnail": {"source": "https://img.example/go.png"}},
			"2": {"title": "No Thumbnail Here"},
			"3": {"thumbnail": {"source": "https://img.example/untitled.png"}}
		}}
	}`), &raw)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	imgs := Normalize(raw, 6)
	if len(imgs) != 1 {
		t.Fatalf("expected 1 image, got %d: %+v", len(imgs), imgs)
	}
	if imgs[0].URL != "https://img.example/go.png" {
		t.Errorf("url = %q", imgs[0].URL)
	}
	if imgs[0].SourceURL != "https://en.wikipedia.org/wiki/Go_(programming_language)" {
		t.Errorf("sourceUrl = %q", imgs[0].SourceURL)
	}
}

func TestNormalizeCapsImages(t *testing.T) {
	pages := map[string]any{}
	for i := 0; i < 20; i++ {
		pages[string(rune('a'+i))] = map[string]any{
			"title":     "Page",
			"thumbnail": map[string]any{"source": "https://img.example/t.png"},
		}
	}
	raw := map[string]any{"query": map[string]any{"pages": pages}}
	if got := len(Normalize(raw, 6)); got != 6 {
		t.Fatalf("cap not applied, got %d", got)
	}
}

func TestNormalizeTolerantOfMissingShape(t *testing.T) {
	if got := Normalize(map[string]any{}, 6); len(got) != 0 {
		t.Fatalf("empty payload should yield no images, got %d", len(got))
	}
	if got := Normalize(map[string]any{"query": "wrong type"}, 6); len(got) != 0 {
		t.Fatalf("wrong-typed query should yield no images, got %d", len(got))
	}
}

func TestImagesRequestShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("generator") != "search" || q.Get("gsrsearch") != "gophers" {
			t.Errorf("unexpected query params: %v", q)
		}
		w.Write([]byte(`{"query": {"pages": {}}}`))
	}))
	defer srv.Close()

	imgs, err := (Images{Endpoint: srv.URL}).Images(context.Background(), "gophers")
	if err != nil {
		t.Fatalf("Images: %v", err)
	}
	if len(imgs) != 0 {
		t.Errorf("expected no images, got %d", len(imgs))
	}
}
