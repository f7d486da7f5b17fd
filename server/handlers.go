package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/user/opendota-mcp/dispatch"
	"github.com/user/opendota-mcp/opendota"
)

// invoke wraps one tool invocation: start/completion logging, stats and
// audit recording, and normalization of every failure into a failed tool
// result. Errors never propagate as protocol faults.
func (s *Server) invoke(ctx context.Context, tool string, args any, fn func(context.Context) (string, error)) (*mcp.CallToolResult, any, error) {
	s.log.Info("tool call start tool=%s args=%+v", tool, args)

	start := time.Now()
	text, err := fn(ctx)
	elapsed := time.Since(start)

	if s.audit != nil {
		s.audit.Record(tool, args, err == nil, err, elapsed)
	}

	if err != nil {
		if s.stats != nil {
			s.stats.RecordFailure(tool)
		}
		s.log.Error("tool call failed tool=%s duration=%s err=%v", tool, elapsed, err)
		return s.errorResult(err), nil, nil
	}

	if s.stats != nil {
		s.stats.RecordSuccess(tool)
	}
	s.log.Info("tool call complete tool=%s duration=%s success=true", tool, elapsed)
	return textResult(text), nil, nil
}

// errorResult converts any error into the uniform failed-response envelope.
// The detail payload is included only in development mode.
func (s *Server) errorResult(err error) *mcp.CallToolResult {
	e := opendota.AsError(err)

	msg := fmt.Sprintf("Error: %s", e.Message)
	if s.development && e.Detail != "" {
		msg += fmt.Sprintf("\nDetails: %s", e.Detail)
	}

	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// marshalText formats a typed upstream value as indented JSON.
func marshalText(v any) (string, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", opendota.AsError(err)
	}
	return string(out), nil
}

// indentRaw re-indents a raw passthrough payload without interpreting it.
func indentRaw(raw json.RawMessage) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", opendota.AsError(err)
	}
	return buf.String(), nil
}

func (s *Server) handleGetMatch(ctx context.Context, _ *mcp.CallToolRequest, a MatchArgs) (*mcp.CallToolResult, any, error) {
	return s.invoke(ctx, "get_match", a, func(ctx context.Context) (string, error) {
		if a.MatchID <= 0 {
			return "", opendota.Validation("match_id is required and must be a positive integer")
		}
		m, err := s.api.GetMatch(ctx, a.MatchID)
		if err != nil {
			return "", err
		}
		return marshalText(m)
	})
}

func (s *Server) handleGetPlayer(ctx context.Context, _ *mcp.CallToolRequest, a PlayerArgs) (*mcp.CallToolResult, any, error) {
	return s.invoke(ctx, "get_player", a, func(ctx context.Context) (string, error) {
		if a.AccountID <= 0 {
			return "", opendota.Validation("account_id is required and must be a positive integer")
		}
		d, err := s.api.GetPlayer(ctx, a.AccountID)
		if err != nil {
			return "", err
		}
		return marshalText(d)
	})
}

func (s *Server) handleGetPlayerMatches(ctx context.Context, _ *mcp.CallToolRequest, a PlayerMatchesArgs) (*mcp.CallToolResult, any, error) {
	return s.invoke(ctx, "get_player_matches", a, func(ctx context.Context) (string, error) {
		if a.AccountID <= 0 {
			return "", opendota.Validation("account_id is required and must be a positive integer")
		}
		raw, err := s.api.GetPlayerMatches(ctx, a.AccountID, opendota.PlayerMatchesOptions{
			Limit:     a.Limit,
			HeroID:    a.HeroID,
			GameMode:  a.GameMode,
			LobbyType: a.LobbyType,
		})
		if err != nil {
			return "", err
		}
		return indentRaw(raw)
	})
}

func (s *Server) handleGetPlayerRecentMatches(ctx context.Context, _ *mcp.CallToolRequest, a PlayerArgs) (*mcp.CallToolResult, any, error) {
	return s.invoke(ctx, "get_player_recent_matches", a, func(ctx context.Context) (string, error) {
		if a.AccountID <= 0 {
			return "", opendota.Validation("account_id is required and must be a positive integer")
		}
		raw, err := s.api.GetPlayerRecentMatches(ctx, a.AccountID)
		if err != nil {
			return "", err
		}
		return indentRaw(raw)
	})
}

func (s *Server) handleGetPlayerHeroes(ctx context.Context, _ *mcp.CallToolRequest, a PlayerArgs) (*mcp.CallToolResult, any, error) {
	return s.invoke(ctx, "get_player_heroes", a, func(ctx context.Context) (string, error) {
		if a.AccountID <= 0 {
			return "", opendota.Validation("account_id is required and must be a positive integer")
		}
		raw, err := s.api.GetPlayerHeroes(ctx, a.AccountID)
		if err != nil {
			return "", err
		}
		return indentRaw(raw)
	})
}

func (s *Server) handleGetHeroes(ctx context.Context, _ *mcp.CallToolRequest, a EmptyArgs) (*mcp.CallToolResult, any, error) {
	return s.invoke(ctx, "get_heroes", a, func(ctx context.Context) (string, error) {
		heroes, err := s.api.GetHeroes(ctx)
		if err != nil {
			return "", err
		}
		return marshalText(heroes)
	})
}

func (s *Server) handleSearchPlayers(ctx context.Context, _ *mcp.CallToolRequest, a SearchPlayersArgs) (*mcp.CallToolResult, any, error) {
	return s.invoke(ctx, "search_players", a, func(ctx context.Context) (string, error) {
		if a.Query == "" {
			return "", opendota.Validation("query is required")
		}
		raw, err := s.api.SearchPlayers(ctx, a.Query)
		if err != nil {
			return "", err
		}
		return indentRaw(raw)
	})
}

func (s *Server) handleGetProMatches(ctx context.Context, _ *mcp.CallToolRequest, a EmptyArgs) (*mcp.CallToolResult, any, error) {
	return s.invoke(ctx, "get_pro_matches", a, func(ctx context.Context) (string, error) {
		raw, err := s.api.GetProMatches(ctx)
		if err != nil {
			return "", err
		}
		return indentRaw(raw)
	})
}

// handleQuery runs the free-text dispatcher and forwards to the matching
// client call. The switch covers five of the dispatcher's six operations:
// get_heroes and get_pro_matches have no natural-language phrasing, and the
// search fallback explains itself without touching the upstream API.
func (s *Server) handleQuery(ctx context.Context, _ *mcp.CallToolRequest, a QueryArgs) (*mcp.CallToolResult, any, error) {
	return s.invoke(ctx, "query", a, func(ctx context.Context) (string, error) {
		if a.Query == "" {
			return "", opendota.Validation("query is required")
		}

		res := dispatch.Dispatch(a.Query)
		switch res.Op {
		case dispatch.OpGetMatch:
			m, err := s.api.GetMatch(ctx, res.MatchID)
			if err != nil {
				return "", err
			}
			text, err := marshalText(m)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Match %d:\n%s", res.MatchID, text), nil

		case dispatch.OpGetPlayer:
			d, err := s.api.GetPlayer(ctx, res.AccountID)
			if err != nil {
				return "", err
			}
			text, err := marshalText(d)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Player %d:\n%s", res.AccountID, text), nil

		case dispatch.OpSearchPlayers:
			raw, err := s.api.SearchPlayers(ctx, res.Query)
			if err != nil {
				return "", err
			}
			text, err := indentRaw(raw)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Players matching %q:\n%s", res.Query, text), nil

		case dispatch.OpGetPlayerRecentMatches:
			raw, err := s.api.GetPlayerRecentMatches(ctx, res.AccountID)
			if err != nil {
				return "", err
			}
			text, err := indentRaw(raw)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Recent matches for player %d:\n%s", res.AccountID, text), nil

		case dispatch.OpGetPlayerHeroes:
			raw, err := s.api.GetPlayerHeroes(ctx, res.AccountID)
			if err != nil {
				return "", err
			}
			text, err := indentRaw(raw)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Heroes for player %d:\n%s", res.AccountID, text), nil

		default:
			return fmt.Sprintf(
				"I could not map %q to a specific lookup. Try phrases like \"match 8054301932\", \"player 111620041\", \"recent matches for player 111620041\", \"heroes for player 111620041\", or player \"name\" in quotes.",
				a.Query,
			), nil
		}
	})
}
