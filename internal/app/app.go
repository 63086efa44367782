// Package app wires the service together: configuration, logging, the
// shared HTTP client, and the selected MCP transport.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/hnmcp/hnmcp/internal/content"
	"github.com/hnmcp/hnmcp/internal/convert"
	"github.com/hnmcp/hnmcp/internal/fetch"
	"github.com/hnmcp/hnmcp/internal/hn"
	"github.com/hnmcp/hnmcp/internal/mcp"
	"github.com/hnmcp/hnmcp/internal/search"
	"github.com/hnmcp/hnmcp/internal/web"
)

// Transport names for Config.Transport.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// Defaults applied by flag parsing and config validation.
const (
	DefaultAddr      = "127.0.0.1:8000"
	DefaultUserAgent = "hnmcp/1.0 (+https://github.com/hnmcp/hnmcp)"
)

// Config carries all settings for a single run.
type Config struct {
	// Transport selects how the MCP server is exposed: stdio for a direct
	// client connection, sse for the HTTP server with SSE and streamable
	// endpoints plus the REST surface.
	Transport string
	// Addr is the HTTP listen address when Transport is sse.
	Addr string
	// BaseURL is the externally visible address advertised to SSE clients.
	// Derived from Addr when empty.
	BaseURL string

	// HNBaseURL overrides the upstream Hacker News API endpoint.
	HNBaseURL string
	// UserAgent is sent on upstream and article requests.
	UserAgent string

	// FetchTimeout bounds a single article fetch.
	FetchTimeout time.Duration
	// MaxBodyBytes caps how much of an article body is read.
	MaxBodyBytes int64
	// RedirectMaxHops caps redirect chains on article fetches.
	RedirectMaxHops int

	Verbose      bool
	DebugVerbose bool
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	switch c.Transport {
	case TransportStdio, TransportSSE:
	default:
		return fmt.Errorf("config: unknown transport %q (want %s or %s)", c.Transport, TransportStdio, TransportSSE)
	}
	if c.Transport == TransportSSE && c.Addr == "" {
		return fmt.Errorf("config: listen address is required for %s transport", TransportSSE)
	}
	if c.FetchTimeout < 0 || c.MaxBodyBytes < 0 || c.RedirectMaxHops < 0 {
		return fmt.Errorf("config: negative limits are not allowed")
	}
	return nil
}

// Run builds the component graph and serves until ctx is cancelled.
func Run(ctx context.Context, cfg Config, logger zerolog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	// One shared transport for both the API client and article fetches.
	httpClient := &http.Client{}

	hnClient := &hn.Client{
		BaseURL:    cfg.HNBaseURL,
		UserAgent:  userAgent,
		HTTPClient: httpClient,
	}
	fetcher := &fetch.Client{
		HTTPClient:      httpClient,
		UserAgent:       userAgent,
		Timeout:         cfg.FetchTimeout,
		MaxBodyBytes:    cfg.MaxBodyBytes,
		RedirectMaxHops: cfg.RedirectMaxHops,
	}
	searchSvc := &search.Service{HN: hnClient, Logger: logger}
	contentSvc := &content.Service{
		HN:        hnClient,
		Fetcher:   fetcher,
		Converter: convert.New(),
		Logger:    logger,
	}

	mcpServer, err := mcp.New(mcp.Deps{
		HN:      hnClient,
		Search:  searchSvc,
		Content: contentSvc,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	switch cfg.Transport {
	case TransportStdio:
		return mcpServer.ServeStdio(ctx)
	default:
		webServer := &web.Server{
			HN:      hnClient,
			Search:  searchSvc,
			Content: contentSvc,
			MCP:     mcpServer,
			Logger:  logger,
			BaseURL: baseURL(cfg),
		}
		return webServer.ListenAndServe(ctx, cfg.Addr)
	}
}

func baseURL(cfg Config) string {
	if cfg.BaseURL != "" {
		return cfg.BaseURL
	}
	addr := cfg.Addr
	if len(addr) > 0 && addr[0] == ':' {
		addr = "127.0.0.1" + addr
	}
	return "http://" + addr
}
