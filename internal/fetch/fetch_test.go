package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGet_HTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	c := &Client{UserAgent: "hnmcp-test", Timeout: 2 * time.Second}
	res := c.Get(context.Background(), srv.URL)
	if res.Kind != KindHTML {
		t.Fatalf("expected html kind, got %q (err: %s)", res.Kind, res.Err)
	}
	if res.Body == "" || res.Err != "" {
		t.Fatalf("expected body and no error, got body=%q err=%q", res.Body, res.Err)
	}
}

func TestGet_ClassifiesByContentType(t *testing.T) {
	tests := []struct {
		contentType string
		want        Kind
	}{
		{"text/html", KindHTML},
		{"text/html; charset=utf-8", KindHTML},
		{"application/xhtml+xml", KindHTML},
		{"application/json", KindJSON},
		{"text/plain", KindText},
		{"application/pdf", KindText},
		{"", KindText},
	}
	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.contentType != "" {
					w.Header().Set("Content-Type", tt.contentType)
				}
				_, _ = w.Write([]byte("payload"))
			}))
			defer srv.Close()

			c := &Client{Timeout: 2 * time.Second}
			res := c.Get(context.Background(), srv.URL)
			if res.Kind != tt.want {
				t.Fatalf("content type %q: expected kind %q, got %q", tt.contentType, tt.want, res.Kind)
			}
			if res.Body != "payload" {
				t.Fatalf("expected verbatim body, got %q", res.Body)
			}
		})
	}
}

func TestGet_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := &Client{Timeout: 2 * time.Second}
	res := c.Get(context.Background(), srv.URL)
	if res.Kind != KindError {
		t.Fatalf("expected error kind, got %q", res.Kind)
	}
	if res.Body != "" {
		t.Fatalf("expected empty body on error, got %q", res.Body)
	}
	if !strings.Contains(res.Err, "502") {
		t.Fatalf("expected status in message, got %q", res.Err)
	}
}

func TestGet_TimeoutIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	c := &Client{Timeout: 50 * time.Millisecond}
	res := c.Get(context.Background(), srv.URL)
	if res.Kind != KindError {
		t.Fatalf("expected error kind on timeout, got %q", res.Kind)
	}
	if res.Err == "" {
		t.Fatal("expected non-empty error message")
	}
}

func TestGet_FollowsRedirects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.Redirect(w, r, "/final", http.StatusFound)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("landed"))
	}))
	defer srv.Close()

	c := &Client{Timeout: 2 * time.Second}
	res := c.Get(context.Background(), srv.URL)
	if res.Kind != KindHTML || res.Body != "landed" {
		t.Fatalf("expected redirect to be followed, got kind=%q body=%q err=%q", res.Kind, res.Body, res.Err)
	}
	if !strings.HasSuffix(res.URL, "/final") {
		t.Fatalf("expected resolved URL to be the redirect target, got %q", res.URL)
	}
}

func TestGet_RedirectLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/loop", http.StatusFound)
	}))
	defer srv.Close()

	c := &Client{Timeout: 2 * time.Second, RedirectMaxHops: 2}
	res := c.Get(context.Background(), srv.URL)
	if res.Kind != KindError {
		t.Fatalf("expected error kind on redirect loop, got %q", res.Kind)
	}
}

func TestGet_RejectsNonHTTP(t *testing.T) {
	c := &Client{Timeout: time.Second}
	res := c.Get(context.Background(), "file:///etc/hosts")
	if res.Kind != KindError {
		t.Fatalf("expected error kind for non-http scheme, got %q", res.Kind)
	}
}

func TestGet_BodyCap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(strings.Repeat("x", 4096)))
	}))
	defer srv.Close()

	c := &Client{Timeout: 2 * time.Second, MaxBodyBytes: 1024}
	res := c.Get(context.Background(), srv.URL)
	if res.Kind != KindText {
		t.Fatalf("unexpected kind %q", res.Kind)
	}
	if len(res.Body) != 1024 {
		t.Fatalf("expected body capped at 1024 bytes, got %d", len(res.Body))
	}
}
