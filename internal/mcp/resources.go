package mcp

// Resource templates expose items, users, and the story listings under the
// hn:// scheme. Listing resources hydrate a bounded number of stories so a
// single read stays cheap.

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/hnmcp/hnmcp/internal/hn"
)

// resourceHydrateLimit caps how many stories a listing resource fetches in
// full. Callers wanting more ids use the listing tools instead.
const resourceHydrateLimit = 10

func (s *Server) registerResources(srv *mcpsrv.MCPServer) {
	srv.AddResourceTemplate(
		mcplib.NewResourceTemplate("hn://item/{id}", "Hacker News item",
			mcplib.WithTemplateDescription("A single Hacker News item (story, comment, job, poll) as JSON."),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		s.readItemResource,
	)
	srv.AddResourceTemplate(
		mcplib.NewResourceTemplate("hn://user/{id}", "Hacker News user",
			mcplib.WithTemplateDescription("A Hacker News user profile as JSON."),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		s.readUserResource,
	)

	listings := []struct {
		segment string
		list    hn.List
		desc    string
	}{
		{"top", hn.Top, "Current top stories, hydrated."},
		{"best", hn.Best, "Current best stories, hydrated."},
		{"new", hn.New, "Newest stories, hydrated."},
		{"ask", hn.Ask, "Latest Ask HN stories, hydrated."},
		{"show", hn.Show, "Latest Show HN stories, hydrated."},
		{"jobs", hn.Job, "Latest job stories, hydrated."},
	}
	for _, l := range listings {
		list := l.list
		srv.AddResourceTemplate(
			mcplib.NewResourceTemplate(
				fmt.Sprintf("hn://%s/{limit}", l.segment),
				fmt.Sprintf("Hacker News %s stories", l.segment),
				mcplib.WithTemplateDescription(l.desc),
				mcplib.WithTemplateMIMEType("application/json"),
			),
			func(ctx context.Context, req mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
				return s.readListResource(ctx, req, list)
			},
		)
	}
}

func (s *Server) readItemResource(ctx context.Context, req mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	id, err := trailingID(req.Params.URI)
	if err != nil {
		return nil, err
	}
	item, err := s.hn.Item(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", req.Params.URI, err)
	}
	return jsonResource(req.Params.URI, item)
}

func (s *Server) readUserResource(ctx context.Context, req mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	username := req.Params.URI[strings.LastIndex(req.Params.URI, "/")+1:]
	if username == "" {
		return nil, fmt.Errorf("read %s: missing username", req.Params.URI)
	}
	user, err := s.hn.User(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", req.Params.URI, err)
	}
	return jsonResource(req.Params.URI, user)
}

// readListResource returns the listing ids plus the first few stories in
// full, so a reader sees titles without issuing follow-up fetches.
func (s *Server) readListResource(ctx context.Context, req mcplib.ReadResourceRequest, list hn.List) ([]mcplib.ResourceContents, error) {
	limit, err := trailingID(req.Params.URI)
	if err != nil {
		return nil, err
	}
	ids, err := s.hn.Stories(ctx, list, limit)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", req.Params.URI, err)
	}

	hydrate := ids
	if len(hydrate) > resourceHydrateLimit {
		hydrate = hydrate[:resourceHydrateLimit]
	}
	stories := make([]*hn.Item, 0, len(hydrate))
	for _, id := range hydrate {
		item, err := s.hn.Item(ctx, id)
		if err != nil {
			s.logger.Debug().Err(err).Int("id", id).Msg("resource hydration: skipping item")
			continue
		}
		stories = append(stories, item)
	}

	return jsonResource(req.Params.URI, map[string]any{
		"ids":     ids,
		"stories": stories,
	})
}

func jsonResource(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode resource %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// trailingID parses the last path segment of a resource URI as a positive
// integer.
func trailingID(uri string) (int, error) {
	seg := uri[strings.LastIndex(uri, "/")+1:]
	id, err := strconv.Atoi(seg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("resource %s: %q is not a positive integer", uri, seg)
	}
	return id, nil
}
