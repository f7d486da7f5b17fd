package opendota

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/user/opendota-mcp/fixtures"
)

const heroListJSON = `[
	{"id":1,"name":"npc_dota_hero_antimage","localized_name":"Anti-Mage","primary_attr":"agi","attack_type":"Melee","roles":["Carry","Escape","Nuker"],"legs":2},
	{"id":2,"name":"npc_dota_hero_axe","localized_name":"Axe","primary_attr":"str","attack_type":"Melee","roles":["Initiator","Durable"],"legs":2}
]`

func newTestClient(t *testing.T, fake *fixtures.FakeOpenDota, opts ...Option) *Client {
	t.Helper()
	all := append([]Option{WithBaseURL(fake.URL())}, opts...)
	return New(all...)
}

func TestGetHeroesRoundTrip(t *testing.T) {
	fake := fixtures.NewFakeOpenDota(t)
	fake.Respond("/heroes", 200, heroListJSON)

	client := newTestClient(t, fake)
	heroes, err := client.GetHeroes(context.Background())
	if err != nil {
		t.Fatalf("GetHeroes: %v", err)
	}

	if len(heroes) != 2 {
		t.Fatalf("expected 2 heroes, got %d", len(heroes))
	}
	if heroes[0].LocalizedName != "Anti-Mage" {
		t.Errorf("expected Anti-Mage, got %s", heroes[0].LocalizedName)
	}

	// No field renaming or loss: re-marshaling yields the same objects,
	// including fields this package does not type (legs).
	got, err := json.Marshal(heroes)
	if err != nil {
		t.Fatalf("marshal heroes: %v", err)
	}

	var want, round []map[string]any
	if err := json.Unmarshal([]byte(heroListJSON), &want); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}
	if err := json.Unmarshal(got, &round); err != nil {
		t.Fatalf("unmarshal round trip: %v", err)
	}
	if !reflect.DeepEqual(want, round) {
		t.Errorf("hero list changed in round trip:\nwant %v\ngot  %v", want, round)
	}
}

func TestGetMatch(t *testing.T) {
	fake := fixtures.NewFakeOpenDota(t)
	fake.Respond("/matches/8054301932", 200, `{
		"match_id":8054301932,"duration":2150,"start_time":1700000000,"radiant_win":true,
		"players":[{"account_id":111,"hero_id":1,"player_slot":0,"kills":10,"deaths":2,"assists":14,"personaname":"mid or feed","gold_per_min":612}],
		"tower_status_radiant":1974
	}`)

	client := newTestClient(t, fake)
	m, err := client.GetMatch(context.Background(), 8054301932)
	if err != nil {
		t.Fatalf("GetMatch: %v", err)
	}

	if m.MatchID != 8054301932 {
		t.Errorf("expected match id 8054301932, got %d", m.MatchID)
	}
	if !m.RadiantWin {
		t.Error("expected radiant win")
	}
	if len(m.Players) != 1 || m.Players[0].Kills != 10 {
		t.Errorf("unexpected players: %+v", m.Players)
	}
	if _, ok := m.Extra["tower_status_radiant"]; !ok {
		t.Error("expected tower_status_radiant preserved in extras")
	}
	if _, ok := m.Players[0].Extra["gold_per_min"]; !ok {
		t.Error("expected gold_per_min preserved in player extras")
	}
}

func TestTimeoutClassified(t *testing.T) {
	fake := fixtures.NewFakeOpenDota(t)
	fake.Hang("/matches/1")

	client := newTestClient(t, fake, WithTimeout(100*time.Millisecond))
	_, err := client.GetMatch(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error from hanging upstream")
	}

	e := AsError(err)
	if e.Kind != KindTimeout {
		t.Errorf("expected timeout kind, got %s (%v)", e.Kind, err)
	}
}

func TestNon2xxClassified(t *testing.T) {
	fake := fixtures.NewFakeOpenDota(t)
	fake.Respond("/matches/999", 404, `{"error":"not found"}`)

	client := newTestClient(t, fake)
	_, err := client.GetMatch(context.Background(), 999)
	if err == nil {
		t.Fatal("expected error from 404")
	}

	e := AsError(err)
	if e.Kind != KindAPI {
		t.Errorf("expected api kind, got %s", e.Kind)
	}
	if e.Status != 404 {
		t.Errorf("expected status 404, got %d", e.Status)
	}
	if e.Detail != `{"error":"not found"}` {
		t.Errorf("expected body preserved in detail, got %q", e.Detail)
	}
}

func TestAPIKeyForwarded(t *testing.T) {
	fake := fixtures.NewFakeOpenDota(t)
	fake.Respond("/proMatches", 200, `[]`)

	client := newTestClient(t, fake, WithAPIKey("secret-key"))
	if _, err := client.GetProMatches(context.Background()); err != nil {
		t.Fatalf("GetProMatches: %v", err)
	}

	if got := fake.LastQuery("/proMatches").Get("api_key"); got != "secret-key" {
		t.Errorf("expected api_key forwarded, got %q", got)
	}
}

func TestNoAPIKeyByDefault(t *testing.T) {
	fake := fixtures.NewFakeOpenDota(t)
	fake.Respond("/proMatches", 200, `[]`)

	client := newTestClient(t, fake)
	if _, err := client.GetProMatches(context.Background()); err != nil {
		t.Fatalf("GetProMatches: %v", err)
	}

	if q := fake.LastQuery("/proMatches"); q.Has("api_key") {
		t.Errorf("api_key should not be sent when unconfigured, got %v", q)
	}
}

func TestIdentifyingHeader(t *testing.T) {
	fake := fixtures.NewFakeOpenDota(t)
	fake.Respond("/heroes", 200, `[]`)

	client := newTestClient(t, fake, WithUserAgent("my-bot/2.0"))
	if _, err := client.GetHeroes(context.Background()); err != nil {
		t.Fatalf("GetHeroes: %v", err)
	}

	if ua := fake.LastUserAgent(); ua != "my-bot/2.0" {
		t.Errorf("expected custom user agent, got %q", ua)
	}
}

func TestPlayerMatchesFilters(t *testing.T) {
	fake := fixtures.NewFakeOpenDota(t)
	fake.Respond("/players/111/matches", 200, `[{"match_id":1}]`)

	client := newTestClient(t, fake)
	raw, err := client.GetPlayerMatches(context.Background(), 111, PlayerMatchesOptions{
		Limit:     5,
		HeroID:    14,
		GameMode:  22,
		LobbyType: 7,
	})
	if err != nil {
		t.Fatalf("GetPlayerMatches: %v", err)
	}
	if string(raw) != `[{"match_id":1}]` {
		t.Errorf("expected raw passthrough, got %s", raw)
	}

	q := fake.LastQuery("/players/111/matches")
	if q.Get("limit") != "5" || q.Get("hero_id") != "14" || q.Get("game_mode") != "22" || q.Get("lobby_type") != "7" {
		t.Errorf("unexpected filter params: %v", q)
	}
}

func TestPlayerMatchesOmitsUnsetFilters(t *testing.T) {
	fake := fixtures.NewFakeOpenDota(t)
	fake.Respond("/players/111/matches", 200, `[]`)

	client := newTestClient(t, fake)
	if _, err := client.GetPlayerMatches(context.Background(), 111, PlayerMatchesOptions{}); err != nil {
		t.Fatalf("GetPlayerMatches: %v", err)
	}

	if q := fake.LastQuery("/players/111/matches"); len(q) != 0 {
		t.Errorf("expected no query params, got %v", q)
	}
}

func TestSearchPlayersQueryParam(t *testing.T) {
	fake := fixtures.NewFakeOpenDota(t)
	fake.Respond("/search", 200, `[{"account_id":111,"personaname":"Dendi"}]`)

	client := newTestClient(t, fake)
	raw, err := client.SearchPlayers(context.Background(), "Dendi")
	if err != nil {
		t.Fatalf("SearchPlayers: %v", err)
	}
	if len(raw) == 0 {
		t.Fatal("expected search payload")
	}

	if got := fake.LastQuery("/search").Get("q"); got != "Dendi" {
		t.Errorf("expected q=Dendi, got %q", got)
	}
}

func TestGetPlayerRecentMatchesPath(t *testing.T) {
	fake := fixtures.NewFakeOpenDota(t)
	fake.Respond("/players/42/recentMatches", 200, `[{"match_id":7}]`)

	client := newTestClient(t, fake)
	raw, err := client.GetPlayerRecentMatches(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetPlayerRecentMatches: %v", err)
	}
	if string(raw) != `[{"match_id":7}]` {
		t.Errorf("unexpected payload: %s", raw)
	}
}
