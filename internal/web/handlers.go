package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hnmcp/hnmcp/internal/content"
	"github.com/hnmcp/hnmcp/internal/hn"
)

// handleHealth probes the upstream API by fetching the max item id. A failed
// probe reports unhealthy with a 500.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	maxID, err := s.HN.MaxItem(r.Context())
	if err != nil {
		s.Logger.Error().Err(err).Msg("health check failed")
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"status":    "unhealthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "hacker-news-mcp",
			"error":     err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().Format(time.RFC3339),
		"service":     "hacker-news-mcp",
		"max_item_id": maxID,
	})
}

func (s *Server) handleSSEInfo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"sse_endpoint": s.BaseURL + "/sse",
		"description":  "Server-Sent Events endpoint for MCP integration",
		"usage":        "Connect to this endpoint to use the MCP protocol over SSE",
	})
}

func (s *Server) handleItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	item, err := s.HN.Item(r.Context(), id)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	user, err := s.HN.User(r.Context(), username)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleMaxItem(w http.ResponseWriter, r *http.Request) {
	id, err := s.HN.MaxItem(r.Context())
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"max_item_id": id})
}

func (s *Server) handleUpdates(w http.ResponseWriter, r *http.Request) {
	updates, err := s.HN.Updates(r.Context())
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updates)
}

func (s *Server) handleStories(w http.ResponseWriter, r *http.Request) {
	list := hn.List(chi.URLParam(r, "list"))
	ids, err := s.HN.Stories(r.Context(), list, queryInt(r, "limit", hn.DefaultLimit))
	if err != nil {
		if errors.Is(err, hn.ErrUnknownList) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

func (s *Server) handleSearchStories(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query parameter is required")
		return
	}
	matches, err := s.Search.StoriesByTitle(r.Context(), query, queryInt(r, "limit", 0))
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

func (s *Server) handleStoryByTitle(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		writeError(w, http.StatusBadRequest, "title parameter is required")
		return
	}
	res, err := s.Search.StoryByTitle(r.Context(), title)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleStoryComments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	thread, err := s.Search.StoryWithComments(r.Context(), id, queryInt(r, "comment_limit", 0))
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, thread)
}

func (s *Server) handleStoriesByDate(w http.ResponseWriter, r *http.Request) {
	daysAgo := queryInt(r, "days_ago", 1)
	if daysAgo < 0 {
		writeError(w, http.StatusBadRequest, "days_ago must not be negative")
		return
	}
	stories, err := s.Search.StoriesByDate(r.Context(), daysAgo, queryInt(r, "limit", 0))
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stories)
}

// handleStoryContent never maps pipeline failures to HTTP errors; the Result
// carries its own error field.
func (s *Server) handleStoryContent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	format := content.FormatMarkdown
	if r.URL.Query().Get("format") == string(content.FormatHTML) {
		format = content.FormatHTML
	}
	writeJSON(w, http.StatusOK, s.Content.StoryContent(r.Context(), id, format))
}

func writeUpstreamError(w http.ResponseWriter, err error) {
	if errors.Is(err, hn.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusBadGateway, err.Error())
}

func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || v <= 0 {
		writeError(w, http.StatusBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return v, true
}

func queryInt(r *http.Request, name string, defaultVal int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}
	return v
}
