package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hnmcp/hnmcp/internal/app"
)

func main() {
	// Logging setup. Stdout is reserved for the stdio transport, so all logs
	// go to stderr.
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	_ = godotenv.Load()

	var (
		transport    string
		addr         string
		baseURL      string
		hnBase       string
		userAgent    string
		fetchTimeout time.Duration
		maxBodyBytes int64
		redirectHops int
		configPath   string
		verbose      bool
		debugVerbose bool
	)

	flag.StringVar(&transport, "transport", envOr("HNMCP_TRANSPORT", app.TransportSSE), "Transport protocol: stdio or sse")
	flag.StringVar(&addr, "addr", envOr("HNMCP_ADDR", app.DefaultAddr), "HTTP listen address for the sse transport")
	flag.StringVar(&baseURL, "base-url", os.Getenv("HNMCP_BASE_URL"), "Externally visible base URL advertised to SSE clients")
	flag.StringVar(&hnBase, "hn.base", os.Getenv("HN_BASE_URL"), "Hacker News API base URL override")
	flag.StringVar(&userAgent, "hn.ua", "", "Custom User-Agent for upstream requests")
	flag.DurationVar(&fetchTimeout, "fetch.timeout", 0, "Timeout for a single article fetch (0 uses the built-in default)")
	flag.Int64Var(&maxBodyBytes, "fetch.maxBodyBytes", 0, "Maximum article body bytes to read (0 uses the built-in default)")
	flag.IntVar(&redirectHops, "fetch.redirectHops", 0, "Maximum redirects to follow on article fetches (0 uses the built-in default)")
	flag.StringVar(&configPath, "config", os.Getenv("HNMCP_CONFIG"), "Path to YAML or JSON config file")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.BoolVar(&debugVerbose, "debug-verbose", false, "Trace-level logging, including skipped-item details")
	flag.Parse()

	cfg := app.Config{
		Transport:       transport,
		Addr:            addr,
		BaseURL:         baseURL,
		HNBaseURL:       hnBase,
		UserAgent:       userAgent,
		FetchTimeout:    fetchTimeout,
		MaxBodyBytes:    maxBodyBytes,
		RedirectMaxHops: redirectHops,
		Verbose:         verbose,
		DebugVerbose:    debugVerbose,
	}

	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", configPath).Msg("load config file")
		}
		app.ApplyFileConfig(&cfg, fc)
	}

	switch {
	case cfg.DebugVerbose:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case cfg.Verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg, log.Logger); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
