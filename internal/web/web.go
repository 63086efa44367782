// Package web serves the HTTP surface: a REST mirror of the MCP tools under
// /api, a health probe, and the mounted MCP transports.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/hnmcp/hnmcp/internal/content"
	"github.com/hnmcp/hnmcp/internal/hn"
	"github.com/hnmcp/hnmcp/internal/search"
)

// MCPHandlers is the slice of the MCP server the web layer mounts. Keeping it
// an interface lets tests run the REST surface without a live MCP server.
type MCPHandlers interface {
	StreamableHandler() http.Handler
	SSEHandlers(baseURL string) (sse http.Handler, message http.Handler)
}

// Server is the HTTP front of the service.
type Server struct {
	HN      *hn.Client
	Search  *search.Service
	Content *content.Service
	MCP     MCPHandlers
	Logger  zerolog.Logger

	// BaseURL is the externally visible address, used by the SSE transport
	// to advertise its message endpoint.
	BaseURL string

	srv *http.Server
}

// Router assembles the full route tree.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(hlog.NewHandler(s.Logger))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("elapsed", duration).
			Msg("request")
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/sse-info", s.handleSSEInfo)

	r.Route("/api", func(r chi.Router) {
		r.Get("/item/{id}", s.handleItem)
		r.Get("/user/{username}", s.handleUser)
		r.Get("/maxitem", s.handleMaxItem)
		r.Get("/updates", s.handleUpdates)
		r.Get("/stories/{list}", s.handleStories)
		r.Get("/stories/search", s.handleSearchStories)
		r.Get("/stories/by-date", s.handleStoriesByDate)
		r.Get("/story/by-title", s.handleStoryByTitle)
		r.Get("/story/{id}/comments", s.handleStoryComments)
		r.Get("/story/{id}/content", s.handleStoryContent)
	})

	if s.MCP != nil {
		r.Mount("/mcp", s.MCP.StreamableHandler())
		sse, message := s.MCP.SSEHandlers(s.BaseURL)
		r.Mount("/sse", sse)
		r.Mount("/message", message)
	}

	return r
}

// ListenAndServe runs the HTTP server on addr until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- s.srv.ListenAndServe()
	}()
	s.Logger.Info().Str("addr", addr).Msg("http server listening")

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
