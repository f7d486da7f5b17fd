package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"github.com/user/opendota-mcp/cmd"
	"github.com/user/opendota-mcp/config"
	"github.com/user/opendota-mcp/logging"
	"github.com/user/opendota-mcp/opendota"
	"github.com/user/opendota-mcp/server"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Println("opendota-mcp v" + server.Version)
			return
		case "help":
			printHelp()
			return
		}
	}

	args := cmd.ParseArgs()

	// A .env file is optional; real environment variables win.
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logLevel := cfg.LogLevel
	if args.LogLevel != "" {
		logLevel = args.LogLevel
	}

	logger, err := logging.New(logLevel, cfg.LogDir)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer logger.Close()

	clientOpts := []opendota.Option{
		opendota.WithTimeout(cfg.Timeout()),
		opendota.WithLogger(logger),
	}
	if cfg.APIKey != "" {
		clientOpts = append(clientOpts, opendota.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, opendota.WithBaseURL(cfg.BaseURL))
	}
	if cfg.UserAgent != "" {
		clientOpts = append(clientOpts, opendota.WithUserAgent(cfg.UserAgent))
	}
	client := opendota.New(clientOpts...)

	stats := server.NewStatsTracker()

	audit, err := server.OpenAuditLog(args.DBPath, logger)
	if err != nil {
		log.Fatalf("audit log error: %v", err)
	}
	defer audit.Close()

	srv := server.New(client, logger, stats, audit, cfg.Development())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("received shutdown signal")
		cancel()
	}()

	switch args.Mode {
	case "stdio":
		err = srv.Run(ctx)
	case "http":
		err = srv.ListenAndServe(ctx, args.ListenAddr)
	default:
		fmt.Fprintf(os.Stderr, "unknown mode: %s\n", args.Mode)
		os.Exit(1)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "%s mode error: %v\n", args.Mode, err)
		os.Exit(1)
	}

	snap := stats.Snapshot()
	logger.Info("shutdown complete calls=%d failed=%d uptime=%.0fs", snap.TotalCalls, snap.FailedTotal, snap.Uptime)
}

func printHelp() {
	fmt.Print(`
OpenDota MCP Server v` + server.Version + `

USAGE:
  opendota-mcp [FLAGS] [COMMAND]

COMMANDS:
  version       Print version
  help          Print this help message

FLAGS:
  -mode STRING         Serve mode: stdio or http (default: stdio)
  -listen STRING       HTTP listen address (default: :8080)
  -log-level STRING    Log level: debug, info, warn, error
  -db STRING           SQLite audit database path (default: in-memory)

ENVIRONMENT:
  OPENDOTA_API_KEY     API key forwarded to OpenDota as a query parameter
  OPENDOTA_BASE_URL    Upstream base URL override
  OPENDOTA_TIMEOUT_MS  Per-request timeout in milliseconds (default: 30000)
  OPENDOTA_USER_AGENT  Identifying User-Agent header override
  LOG_LEVEL            Log level (default: info)
  LOG_DIR              Write logs to a file in this directory instead of stderr
  APP_ENV              "development" includes error details in tool responses

EXAMPLES:
  # Run as stdio MCP server
  opendota-mcp

  # Run as HTTP MCP server on port 8080 with a persistent audit log
  opendota-mcp -mode http -db ~/.opendota-mcp/audit.db
`)
}
