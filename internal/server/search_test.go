package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/HatD3V/mountx-the-inner-browser/models"
	"github.com/HatD3V/mountx-the-inner-browser/tools/web_search/brave"
)

func newSearchContext(e *echo.Echo, target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func TestSearchMissingQuery(t *testing.T) {
	e := echo.New()
	handler := &SearchHandler{Brave: brave.Search{ApiKey: "k"}, Logger: quietLogger()}

	ctx, rec := newSearchContext(e, "/api/search?q=%20%20")
	if err := handler.search(ctx); err != nil {
		t.Fatalf("search: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["error"] != "Missing search query." {
		t.Fatalf("unexpected error message: %q", body["error"])
	}
}

func TestSearchMissingCredential(t *testing.T) {
	e := echo.New()
	handler := &SearchHandler{Brave: brave.Search{}, Logger: quietLogger()}

	ctx, rec := newSearchContext(e, "/api/search?q=golang")
	if err := handler.search(ctx); err != nil {
		t.Fatalf("search: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500 got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["error"] != "Brave API key is not configured." {
		t.Fatalf("unexpected error message: %q", body["error"])
	}
}

func TestSearchMirrorsUpstreamStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"message":"rate limited"}`))
	}))
	defer upstream.Close()

	e := echo.New()
	handler := &SearchHandler{
		Brave:  brave.Search{ApiKey: "k", Endpoint: upstream.URL},
		Logger: quietLogger(),
	}

	ctx, rec := newSearchContext(e, "/api/search?q=golang")
	if err := handler.search(ctx); err != nil {
		t.Fatalf("search: %v", err)
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429 got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["error"] != "Search provider request failed." {
		t.Fatalf("unexpected error message: %q", body["error"])
	}
	if body["details"] != `{"message":"rate limited"}` {
		t.Fatalf("unexpected details: %q", body["details"])
	}
}

func TestSearchSuccessShape(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Subscription-Token"); got != "k" {
			t.Errorf("expected subscription token header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"web": {"results": [{"title": "Go", "url": "https://go.dev", "description": "The Go language"}]}
		}`))
	}))
	defer upstream.Close()

	e := echo.New()
	handler := &SearchHandler{
		Brave:  brave.Search{ApiKey: "k", Endpoint: upstream.URL},
		Logger: quietLogger(),
	}

	ctx, rec := newSearchContext(e, "/api/search?q=golang")
	if err := handler.search(ctx); err != nil {
		t.Fatalf("search: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 got %d", rec.Code)
	}
	var resp models.SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].Snippet != "The Go language" {
		t.Fatalf("unexpected results: %+v", resp.Results)
	}
	if resp.Images == nil || len(resp.Images) != 0 {
		t.Fatalf("expected empty images array, got %+v", resp.Images)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode raw response: %v", err)
	}
	if string(raw["images"]) != "[]" {
		t.Fatalf("images must serialize as an empty array, got %s", raw["images"])
	}
	if _, ok := raw["notice"]; ok {
		t.Fatalf("notice must be omitted from relay responses")
	}
}
