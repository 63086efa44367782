package mcp

// In this file: MCP server construction, transport management, and the small
// result/argument helpers shared by all handlers.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/hnmcp/hnmcp/internal/content"
	"github.com/hnmcp/hnmcp/internal/hn"
	"github.com/hnmcp/hnmcp/internal/search"
)

const (
	serverName    = "hacker-news-mcp"
	serverVersion = "1.0.0"
)

// Server wraps an MCP server around the Hacker News client, the search
// heuristics, and the article content pipeline.
type Server struct {
	mcp     *mcpsrv.MCPServer
	hn      *hn.Client
	search  *search.Service
	content *content.Service
	logger  zerolog.Logger
}

// Deps carries the collaborators a Server needs. All fields are required.
type Deps struct {
	HN      *hn.Client
	Search  *search.Service
	Content *content.Service
	Logger  zerolog.Logger
}

// New creates the MCP server and registers every tool, resource, and prompt.
// It does not start listening until one of the Serve* methods is called.
func New(deps Deps) (*Server, error) {
	if deps.HN == nil || deps.Search == nil || deps.Content == nil {
		return nil, errors.New("mcp: all dependencies are required")
	}

	s := &Server{
		hn:      deps.HN,
		search:  deps.Search,
		content: deps.Content,
		logger:  deps.Logger,
	}

	srv := mcpsrv.NewMCPServer(
		serverName,
		serverVersion,
		mcpsrv.WithInstructions(instructions),
		mcpsrv.WithToolCapabilities(false),
		mcpsrv.WithResourceCapabilities(false, false),
		mcpsrv.WithPromptCapabilities(false),
	)

	for _, t := range s.tools() {
		srv.AddTool(t.Tool, t.Handler)
	}
	s.registerResources(srv)
	s.registerPrompts(srv)

	s.mcp = srv
	return s, nil
}

const instructions = `You are connected to a read-only Hacker News MCP server.

Available tools let you:
- Fetch items (stories, comments, jobs, polls) and user profiles by id
- List top, new, best, Ask HN, Show HN, and job stories
- Search stories by title keywords or by approximate date
- Fetch a story together with its top comments
- Fetch the article a story links to, converted to readable markdown

Item ids are numeric; usernames are case-sensitive strings. All data comes
live from the public Hacker News API.`

// ServeStdio runs the MCP server over stdin/stdout until ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := mcpsrv.NewStdioServer(s.mcp)
	s.logger.Info().Msg("mcp server listening on stdio")
	if err := srv.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("mcp stdio server: %w", err)
	}
	return nil
}

// StreamableHandler returns an http.Handler speaking the Streamable HTTP
// transport, for mounting into an HTTP router.
func (s *Server) StreamableHandler() http.Handler {
	return mcpsrv.NewStreamableHTTPServer(s.mcp)
}

// SSEHandlers returns the SSE stream handler and its message endpoint
// handler for mounting at /sse and /message.
func (s *Server) SSEHandlers(baseURL string) (sse http.Handler, message http.Handler) {
	srv := mcpsrv.NewSSEServer(s.mcp,
		mcpsrv.WithBaseURL(baseURL),
		mcpsrv.WithSSEEndpoint("/sse"),
		mcpsrv.WithMessageEndpoint("/message"),
	)
	return srv.SSEHandler(), srv.MessageHandler()
}

// resultText wraps text in a successful CallToolResult.
func resultText(text string) *mcplib.CallToolResult {
	return mcplib.NewToolResultText(text)
}

// resultErr wraps an error in a CallToolResult with IsError=true.
func resultErr(err error) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(err.Error())},
		IsError: true,
	}
}

// resultJSON serialises v to indented JSON and returns it as a
// CallToolResult. Indentation keeps large items readable in transcripts.
func resultJSON(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialise result: %w", err)
	}
	return mcplib.NewToolResultText(string(data)), nil
}

// stringArg extracts a named string argument from a tool call request.
func stringArg(req mcplib.CallToolRequest, name string) (string, bool) {
	args := req.GetArguments()
	if args == nil {
		return "", false
	}
	v, ok := args[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// intArg extracts a named int argument. The MCP protocol serialises numbers
// as float64, so both are accepted.
func intArg(req mcplib.CallToolRequest, name string, defaultVal int) int {
	args := req.GetArguments()
	if args == nil {
		return defaultVal
	}
	v, ok := args[name]
	if !ok {
		return defaultVal
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return defaultVal
}
