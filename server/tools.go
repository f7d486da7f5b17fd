package server

// Argument shapes for the nine exposed tools. The MCP SDK derives each
// tool's input schema from these structs; handlers still check required
// fields explicitly so a malformed call is rejected before any upstream
// request is made.

type MatchArgs struct {
	MatchID int64 `json:"match_id" jsonschema:"numeric match identifier"`
}

type PlayerArgs struct {
	AccountID int64 `json:"account_id" jsonschema:"numeric account identifier"`
}

type PlayerMatchesArgs struct {
	AccountID int64 `json:"account_id" jsonschema:"numeric account identifier"`
	Limit     int   `json:"limit,omitempty" jsonschema:"maximum number of matches to return"`
	HeroID    int64 `json:"hero_id,omitempty" jsonschema:"only matches on this hero"`
	GameMode  int   `json:"game_mode,omitempty" jsonschema:"only matches with this game mode"`
	LobbyType int   `json:"lobby_type,omitempty" jsonschema:"only matches with this lobby type"`
}

type SearchPlayersArgs struct {
	Query string `json:"query" jsonschema:"player name to search for"`
}

type EmptyArgs struct{}

type QueryArgs struct {
	Query string `json:"query" jsonschema:"free-text question about Dota matches, players, or heroes"`
}

// toolDescription holds the human descriptions in one place so tests and
// registration stay in sync.
var toolDescriptions = map[string]string{
	"get_match":                 "Fetch full data for a Dota 2 match by numeric match id",
	"get_player":                "Fetch a player's profile by numeric account id",
	"get_player_matches":        "List a player's matches with optional limit, hero, game-mode, and lobby filters",
	"get_player_recent_matches": "List a player's most recent matches",
	"get_player_heroes":         "List the heroes a player has played, with per-hero stats",
	"get_heroes":                "List all Dota 2 heroes",
	"search_players":            "Search players by name",
	"get_pro_matches":           "List recent professional matches",
	"query":                     "Answer a free-text question by dispatching it to the matching OpenDota lookup",
}
