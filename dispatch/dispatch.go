// Package dispatch maps free-text queries onto structured OpenDota
// operations. There is no NLU here: an ordered list of regular expressions
// is tried against the input and the first match wins, so inputs that would
// satisfy several patterns resolve deterministically.
package dispatch

import (
	"regexp"
	"strconv"
)

// Operation names which client call a dispatched query resolves to.
type Operation string

const (
	OpGetMatch               Operation = "get_match"
	OpGetPlayer              Operation = "get_player"
	OpSearchPlayers          Operation = "search_players"
	OpGetPlayerRecentMatches Operation = "get_player_recent_matches"
	OpGetPlayerHeroes        Operation = "get_player_heroes"

	// OpSearch is the fallback when no pattern matches; Query carries the
	// original input verbatim.
	OpSearch Operation = "search"
)

// Result is the outcome of dispatching one query. Only the parameters
// relevant to Op are set.
type Result struct {
	Op        Operation
	MatchID   int64
	AccountID int64
	Query     string
}

// Evaluation order matters: "match 5 player 9" must resolve to get_match,
// and "player 5 heroes" must be claimed by the heroes patterns before the
// bare player-id pattern sees it.
var (
	matchPattern        = regexp.MustCompile(`(?i)\b(?:match|game)\s+(?:id\s+)?(\d+)`)
	namedPlayerPattern  = regexp.MustCompile(`(?i)\b(?:player|user)\s+(?:named\s+)?"([^"]+)"`)
	recentPattern       = regexp.MustCompile(`(?i)\brecent\s+match(?:es)?(?:\s+(?:for|player|id))*\s+(\d+)`)
	heroesForPattern    = regexp.MustCompile(`(?i)\bheroes\s+(?:for\s+)?(?:player\s+)?(?:id\s+)?(\d+)`)
	playerHeroesPattern = regexp.MustCompile(`(?i)\b(?:player|user)\s+(?:id\s+)?(\d+)\s+heroes\b`)
	playerPattern       = regexp.MustCompile(`(?i)\b(?:player|user)\s+(?:id\s+)?(\d+)`)
)

// Dispatch translates one free-text query into exactly one operation.
// It never fails: unmatched input falls through to OpSearch carrying the
// raw text.
func Dispatch(query string) Result {
	if m := matchPattern.FindStringSubmatch(query); m != nil {
		if id, ok := parseID(m[1]); ok {
			return Result{Op: OpGetMatch, MatchID: id}
		}
	}

	if m := namedPlayerPattern.FindStringSubmatch(query); m != nil {
		return Result{Op: OpSearchPlayers, Query: m[1]}
	}

	if m := recentPattern.FindStringSubmatch(query); m != nil {
		if id, ok := parseID(m[1]); ok {
			return Result{Op: OpGetPlayerRecentMatches, AccountID: id}
		}
	}

	if m := heroesForPattern.FindStringSubmatch(query); m != nil {
		if id, ok := parseID(m[1]); ok {
			return Result{Op: OpGetPlayerHeroes, AccountID: id}
		}
	}
	if m := playerHeroesPattern.FindStringSubmatch(query); m != nil {
		if id, ok := parseID(m[1]); ok {
			return Result{Op: OpGetPlayerHeroes, AccountID: id}
		}
	}

	if m := playerPattern.FindStringSubmatch(query); m != nil {
		if id, ok := parseID(m[1]); ok {
			return Result{Op: OpGetPlayer, AccountID: id}
		}
	}

	return Result{Op: OpSearch, Query: query}
}

// parseID parses a base-10 capture. A digit run that overflows int64 does
// not satisfy its pattern; evaluation continues and the query eventually
// falls back to OpSearch.
func parseID(s string) (int64, bool) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
