package mcp

// Tool definitions and handlers. Every handler returns errors inside the
// CallToolResult (IsError=true) rather than as a Go error, so a failed
// Hacker News lookup reads as tool output instead of a protocol fault.

import (
	"context"
	"errors"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/hnmcp/hnmcp/internal/content"
	"github.com/hnmcp/hnmcp/internal/hn"
)

func (s *Server) tools() []mcpsrv.ServerTool {
	tools := []mcpsrv.ServerTool{
		{
			Tool: mcplib.NewTool("get_item",
				mcplib.WithDescription("Get a Hacker News item (story, comment, job, poll) by its id."),
				mcplib.WithNumber("item_id",
					mcplib.Required(),
					mcplib.Description("Numeric id of the item to fetch."),
				),
				mcplib.WithReadOnlyHintAnnotation(true),
			),
			Handler: s.handleGetItem,
		},
		{
			Tool: mcplib.NewTool("get_user",
				mcplib.WithDescription("Get a Hacker News user profile by username."),
				mcplib.WithString("username",
					mcplib.Required(),
					mcplib.Description("Case-sensitive username."),
				),
				mcplib.WithReadOnlyHintAnnotation(true),
			),
			Handler: s.handleGetUser,
		},
		{
			Tool: mcplib.NewTool("get_max_item_id",
				mcplib.WithDescription("Get the current largest item id on Hacker News."),
				mcplib.WithReadOnlyHintAnnotation(true),
			),
			Handler: s.handleGetMaxItemID,
		},
		{
			Tool: mcplib.NewTool("get_updates",
				mcplib.WithDescription("Get recently changed items and profiles."),
				mcplib.WithReadOnlyHintAnnotation(true),
			),
			Handler: s.handleGetUpdates,
		},
		{
			Tool: mcplib.NewTool("find_stories_by_title",
				mcplib.WithDescription("Search current top and new stories for titles containing every query term (case-insensitive)."),
				mcplib.WithString("query",
					mcplib.Required(),
					mcplib.Description("Space-separated keywords; all must appear in the title."),
				),
				mcplib.WithNumber("limit",
					mcplib.Description("Maximum matches to return (default 5)."),
				),
				mcplib.WithReadOnlyHintAnnotation(true),
			),
			Handler: s.handleFindStoriesByTitle,
		},
		{
			Tool: mcplib.NewTool("get_story_with_comments",
				mcplib.WithDescription("Get a story and its top-level comments."),
				mcplib.WithNumber("story_id",
					mcplib.Required(),
					mcplib.Description("Numeric id of the story."),
				),
				mcplib.WithNumber("comment_limit",
					mcplib.Description("Maximum top-level comments to include (default 10)."),
				),
				mcplib.WithReadOnlyHintAnnotation(true),
			),
			Handler: s.handleGetStoryWithComments,
		},
		{
			Tool: mcplib.NewTool("get_story_by_title",
				mcplib.WithDescription("Find the best story matching a title and return it with its comments."),
				mcplib.WithString("title",
					mcplib.Required(),
					mcplib.Description("Title keywords to match."),
				),
				mcplib.WithReadOnlyHintAnnotation(true),
			),
			Handler: s.handleGetStoryByTitle,
		},
		{
			Tool: mcplib.NewTool("search_by_date",
				mcplib.WithDescription("Find stories from approximately N days ago. Best effort: item ids are probed around an estimated position."),
				mcplib.WithNumber("days_ago",
					mcplib.Required(),
					mcplib.Description("How many days back to look."),
				),
				mcplib.WithNumber("limit",
					mcplib.Description("Maximum stories to return (default 30)."),
				),
				mcplib.WithReadOnlyHintAnnotation(true),
			),
			Handler: s.handleSearchByDate,
		},
		{
			Tool: mcplib.NewTool("read_story_content",
				mcplib.WithDescription("Fetch the article a story links to, strip page boilerplate, and return it as markdown (or raw HTML). Stories without a URL return their inline text."),
				mcplib.WithNumber("story_id",
					mcplib.Required(),
					mcplib.Description("Numeric id of the story whose article to read."),
				),
				mcplib.WithString("format",
					mcplib.Description("Output format: markdown (default) or html."),
				),
				mcplib.WithReadOnlyHintAnnotation(true),
			),
			Handler: s.handleReadStoryContent,
		},
	}
	return append(tools, s.listTools()...)
}

// listTools builds one tool per story listing. The descriptions and limit
// caps differ per listing, so they are driven from a table.
func (s *Server) listTools() []mcpsrv.ServerTool {
	listings := []struct {
		name string
		list hn.List
		desc string
	}{
		{"get_top_stories", hn.Top, "Get current top story ids (up to 500)."},
		{"get_new_stories", hn.New, "Get newest story ids (up to 500)."},
		{"get_best_stories", hn.Best, "Get best story ids (up to 500)."},
		{"get_ask_stories", hn.Ask, "Get latest Ask HN story ids (up to 200)."},
		{"get_show_stories", hn.Show, "Get latest Show HN story ids (up to 200)."},
		{"get_job_stories", hn.Job, "Get latest job story ids (up to 200)."},
	}

	tools := make([]mcpsrv.ServerTool, 0, len(listings))
	for _, l := range listings {
		list := l.list
		tools = append(tools, mcpsrv.ServerTool{
			Tool: mcplib.NewTool(l.name,
				mcplib.WithDescription(l.desc),
				mcplib.WithNumber("limit",
					mcplib.Description("Maximum ids to return (default 30)."),
				),
				mcplib.WithReadOnlyHintAnnotation(true),
			),
			Handler: func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
				return s.stories(ctx, list, intArg(req, "limit", hn.DefaultLimit))
			},
		})
	}
	return tools
}

func (s *Server) handleGetItem(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	id := intArg(req, "item_id", 0)
	if id <= 0 {
		return resultErr(errors.New("item_id must be a positive integer")), nil
	}
	item, err := s.hn.Item(ctx, id)
	if err != nil {
		return resultErr(fmt.Errorf("get item %d: %w", id, err)), nil
	}
	return resultJSON(item)
}

func (s *Server) handleGetUser(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	username, ok := stringArg(req, "username")
	if !ok || username == "" {
		return resultErr(errors.New("username is required")), nil
	}
	user, err := s.hn.User(ctx, username)
	if err != nil {
		return resultErr(fmt.Errorf("get user %q: %w", username, err)), nil
	}
	return resultJSON(user)
}

func (s *Server) handleGetMaxItemID(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	id, err := s.hn.MaxItem(ctx)
	if err != nil {
		return resultErr(fmt.Errorf("get max item id: %w", err)), nil
	}
	return resultText(fmt.Sprintf("%d", id)), nil
}

func (s *Server) handleGetUpdates(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	updates, err := s.hn.Updates(ctx)
	if err != nil {
		return resultErr(fmt.Errorf("get updates: %w", err)), nil
	}
	return resultJSON(updates)
}

func (s *Server) stories(ctx context.Context, list hn.List, limit int) (*mcplib.CallToolResult, error) {
	ids, err := s.hn.Stories(ctx, list, limit)
	if err != nil {
		return resultErr(fmt.Errorf("get %s stories: %w", list, err)), nil
	}
	return resultJSON(ids)
}

func (s *Server) handleFindStoriesByTitle(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	query, ok := stringArg(req, "query")
	if !ok || query == "" {
		return resultErr(errors.New("query is required")), nil
	}
	matches, err := s.search.StoriesByTitle(ctx, query, intArg(req, "limit", 0))
	if err != nil {
		return resultErr(fmt.Errorf("search stories: %w", err)), nil
	}
	return resultJSON(matches)
}

func (s *Server) handleGetStoryWithComments(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	id := intArg(req, "story_id", 0)
	if id <= 0 {
		return resultErr(errors.New("story_id must be a positive integer")), nil
	}
	thread, err := s.search.StoryWithComments(ctx, id, intArg(req, "comment_limit", 0))
	if err != nil {
		return resultErr(fmt.Errorf("get story %d with comments: %w", id, err)), nil
	}
	return resultJSON(thread)
}

func (s *Server) handleGetStoryByTitle(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	title, ok := stringArg(req, "title")
	if !ok || title == "" {
		return resultErr(errors.New("title is required")), nil
	}
	res, err := s.search.StoryByTitle(ctx, title)
	if err != nil {
		return resultErr(fmt.Errorf("get story by title: %w", err)), nil
	}
	return resultJSON(res)
}

func (s *Server) handleSearchByDate(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	daysAgo := intArg(req, "days_ago", -1)
	if daysAgo < 0 {
		return resultErr(errors.New("days_ago must be a non-negative integer")), nil
	}
	stories, err := s.search.StoriesByDate(ctx, daysAgo, intArg(req, "limit", 0))
	if err != nil {
		return resultErr(fmt.Errorf("search by date: %w", err)), nil
	}
	return resultJSON(stories)
}

func (s *Server) handleReadStoryContent(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	id := intArg(req, "story_id", 0)
	if id <= 0 {
		return resultErr(errors.New("story_id must be a positive integer")), nil
	}
	format := content.FormatMarkdown
	if f, ok := stringArg(req, "format"); ok && f == string(content.FormatHTML) {
		format = content.FormatHTML
	}
	res := s.content.StoryContent(ctx, id, format)
	return resultJSON(res)
}
