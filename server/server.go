// Package server bridges MCP tool invocations to the OpenDota client and
// the free-text dispatcher. Transport and session handling belong to the
// MCP SDK; this package owns tool registration, argument validation,
// response serialization, and error normalization.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/user/opendota-mcp/logging"
	"github.com/user/opendota-mcp/opendota"
)

// Version is reported to MCP clients during initialization.
const Version = "1.0.0"

// API is the slice of the OpenDota client the router invokes. Tests
// substitute a stub to assert that validation failures never reach
// upstream.
type API interface {
	GetMatch(ctx context.Context, matchID int64) (*opendota.Match, error)
	GetPlayer(ctx context.Context, accountID int64) (*opendota.PlayerData, error)
	GetPlayerMatches(ctx context.Context, accountID int64, opts opendota.PlayerMatchesOptions) (json.RawMessage, error)
	GetPlayerRecentMatches(ctx context.Context, accountID int64) (json.RawMessage, error)
	GetPlayerHeroes(ctx context.Context, accountID int64) (json.RawMessage, error)
	GetHeroes(ctx context.Context) ([]opendota.Hero, error)
	SearchPlayers(ctx context.Context, query string) (json.RawMessage, error)
	GetProMatches(ctx context.Context) (json.RawMessage, error)
}

// Server holds the wiring for one MCP server instance. Each invocation is
// stateless; the only mutable shared components (stats, audit) guard
// themselves.
type Server struct {
	api         API
	log         *logging.Logger
	stats       *StatsTracker
	audit       *AuditLog
	development bool
}

func New(api API, logger *logging.Logger, stats *StatsTracker, audit *AuditLog, development bool) *Server {
	return &Server{
		api:         api,
		log:         logger,
		stats:       stats,
		audit:       audit,
		development: development,
	}
}

// MCPServer builds the SDK server with all nine tools registered.
func (s *Server) MCPServer() *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "opendota-mcp",
		Version: Version,
	}, nil)

	mcp.AddTool(srv, &mcp.Tool{Name: "get_match", Description: toolDescriptions["get_match"]}, s.handleGetMatch)
	mcp.AddTool(srv, &mcp.Tool{Name: "get_player", Description: toolDescriptions["get_player"]}, s.handleGetPlayer)
	mcp.AddTool(srv, &mcp.Tool{Name: "get_player_matches", Description: toolDescriptions["get_player_matches"]}, s.handleGetPlayerMatches)
	mcp.AddTool(srv, &mcp.Tool{Name: "get_player_recent_matches", Description: toolDescriptions["get_player_recent_matches"]}, s.handleGetPlayerRecentMatches)
	mcp.AddTool(srv, &mcp.Tool{Name: "get_player_heroes", Description: toolDescriptions["get_player_heroes"]}, s.handleGetPlayerHeroes)
	mcp.AddTool(srv, &mcp.Tool{Name: "get_heroes", Description: toolDescriptions["get_heroes"]}, s.handleGetHeroes)
	mcp.AddTool(srv, &mcp.Tool{Name: "search_players", Description: toolDescriptions["search_players"]}, s.handleSearchPlayers)
	mcp.AddTool(srv, &mcp.Tool{Name: "get_pro_matches", Description: toolDescriptions["get_pro_matches"]}, s.handleGetProMatches)
	mcp.AddTool(srv, &mcp.Tool{Name: "query", Description: toolDescriptions["query"]}, s.handleQuery)

	return srv
}

// Run serves MCP over stdio until the context is cancelled or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("stdio server started")
	defer s.log.Info("stdio server stopped")

	return s.MCPServer().Run(ctx, &mcp.StdioTransport{})
}

// ListenAndServe serves MCP over SSE at /mcp on the given address.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	mcpSrv := s.MCPServer()
	handler := mcp.NewSSEHandler(func(r *http.Request) *mcp.Server {
		if r.URL.Path == "/mcp" {
			return mcpSrv
		}
		return nil
	}, nil)

	httpSrv := &http.Server{Addr: addr, Handler: handler}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()

	s.log.Info("http server started addr=%s", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpSrv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
