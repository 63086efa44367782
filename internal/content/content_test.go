package content

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hnmcp/hnmcp/internal/convert"
	"github.com/hnmcp/hnmcp/internal/fetch"
	"github.com/hnmcp/hnmcp/internal/hn"
)

// newService builds a Service whose HN client points at a fake upstream
// serving the given item JSON for /item/1.json.
func newService(t *testing.T, itemJSON string) (*Service, *httptest.Server) {
	t.Helper()
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/item/1.json" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(itemJSON))
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(api.Close)

	svc := &Service{
		HN:        &hn.Client{BaseURL: api.URL, HTTPClient: api.Client()},
		Fetcher:   &fetch.Client{Timeout: 2 * time.Second},
		Converter: convert.New(),
		Logger:    zerolog.Nop(),
	}
	return svc, api
}

func TestStoryContent_NoURLShortCircuits(t *testing.T) {
	var articleFetched bool
	article := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		articleFetched = true
	}))
	defer article.Close()

	svc, _ := newService(t, `{"id":1,"type":"story","title":"Ask HN: anyone?","text":"inline question","by":"pg","score":5}`)
	res := svc.StoryContent(context.Background(), 1, FormatMarkdown)

	if res.Content != "inline question" {
		t.Fatalf("expected inline text, got %q", res.Content)
	}
	if res.ContentType != "text" {
		t.Fatalf("expected text kind, got %q", res.ContentType)
	}
	if res.Error != "story has no URL" {
		t.Fatalf("expected no-URL note, got %q", res.Error)
	}
	if articleFetched {
		t.Fatal("expected no network fetch for a story without a URL")
	}
}

func TestStoryContent_HTMLToMarkdown(t *testing.T) {
	article := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><nav>menu</nav><article><h1>Title</h1><p>Hello <a href="http://x.com">link</a></p></article></body></html>`))
	}))
	defer article.Close()

	svc, _ := newService(t, fmt.Sprintf(`{"id":1,"type":"story","title":"A story","url":%q,"by":"alice","score":42,"descendants":7}`, article.URL))
	res := svc.StoryContent(context.Background(), 1, FormatMarkdown)

	if res.ContentType != "markdown" {
		t.Fatalf("expected markdown, got %q (err: %s)", res.ContentType, res.Error)
	}
	if !strings.Contains(res.Content, "Hello") || !strings.Contains(res.Content, "http://x.com") {
		t.Fatalf("expected converted article with link, got %q", res.Content)
	}
	if strings.Contains(res.Content, "menu") {
		t.Fatalf("expected nav stripped, got %q", res.Content)
	}
	if res.Title != "A story" || res.By != "alice" || res.Score != 42 || res.Descendants != 7 {
		t.Fatalf("expected story metadata carried through, got %+v", res)
	}
}

func TestStoryContent_HTMLPassThrough(t *testing.T) {
	article := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><article><p>raw html stays</p></article></body></html>`))
	}))
	defer article.Close()

	svc, _ := newService(t, fmt.Sprintf(`{"id":1,"type":"story","title":"t","url":%q}`, article.URL))
	res := svc.StoryContent(context.Background(), 1, FormatHTML)

	if res.ContentType != "html" {
		t.Fatalf("expected html, got %q", res.ContentType)
	}
	if !strings.Contains(res.Content, "<p>raw html stays</p>") {
		t.Fatalf("expected extracted html fragment, got %q", res.Content)
	}
}

func TestStoryContent_NonHTMLVerbatim(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantKind    string
	}{
		{"json", "application/json", `{"a":1}`, "json"},
		{"plain text", "text/plain", "plain body", "text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			article := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer article.Close()

			svc, _ := newService(t, fmt.Sprintf(`{"id":1,"type":"story","title":"t","url":%q}`, article.URL))
			res := svc.StoryContent(context.Background(), 1, FormatMarkdown)

			if res.Content != tt.body {
				t.Fatalf("expected verbatim body %q, got %q", tt.body, res.Content)
			}
			if res.ContentType != tt.wantKind {
				t.Fatalf("expected kind %q, got %q", tt.wantKind, res.ContentType)
			}
			if res.Error != "" {
				t.Fatalf("expected no error, got %q", res.Error)
			}
		})
	}
}

func TestStoryContent_FetchErrorPropagates(t *testing.T) {
	article := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer article.Close()

	svc, _ := newService(t, fmt.Sprintf(`{"id":1,"type":"story","title":"broken","url":%q,"by":"bob"}`, article.URL))
	res := svc.StoryContent(context.Background(), 1, FormatMarkdown)

	if res.ContentType != "error" {
		t.Fatalf("expected error kind, got %q", res.ContentType)
	}
	if res.Content != "" {
		t.Fatalf("expected empty content on error, got %q", res.Content)
	}
	if res.Error == "" {
		t.Fatal("expected non-empty error message")
	}
	// Metadata known before the failure is preserved.
	if res.Title != "broken" || res.By != "bob" {
		t.Fatalf("expected metadata preserved, got %+v", res)
	}
}

func TestStoryContent_StoryNotFound(t *testing.T) {
	svc, _ := newService(t, `null`)
	res := svc.StoryContent(context.Background(), 1, FormatMarkdown)

	if res.ContentType != "error" || res.Error == "" {
		t.Fatalf("expected error result for missing story, got %+v", res)
	}
}

func TestStoryContent_Idempotent(t *testing.T) {
	article := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><article><p>same every time</p></article></body></html>`))
	}))
	defer article.Close()

	svc, _ := newService(t, fmt.Sprintf(`{"id":1,"type":"story","title":"t","url":%q}`, article.URL))
	first := svc.StoryContent(context.Background(), 1, FormatMarkdown)
	second := svc.StoryContent(context.Background(), 1, FormatMarkdown)

	if first != second {
		t.Fatalf("expected identical results:\n%+v\n%+v", first, second)
	}
}
