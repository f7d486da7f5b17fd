package opendota

import "encoding/json"

// The upstream shapes are trusted and passed through verbatim: known fields
// are typed, everything else survives a round trip in the Extra side-map.

// Match is the response shape of /matches/{id}.
type Match struct {
	MatchID    int64         `json:"match_id"`
	Duration   int64         `json:"duration"`
	StartTime  int64         `json:"start_time"`
	RadiantWin bool          `json:"radiant_win"`
	Players    []MatchPlayer `json:"players"`

	Extra map[string]json.RawMessage `json:"-"`
}

var matchKnown = []string{"match_id", "duration", "start_time", "radiant_win", "players"}

func (m *Match) UnmarshalJSON(data []byte) error {
	type alias Match
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := splitExtra(data, matchKnown)
	if err != nil {
		return err
	}
	a.Extra = extra
	*m = Match(a)
	return nil
}

func (m Match) MarshalJSON() ([]byte, error) {
	type alias Match
	return mergeExtra(alias(m), m.Extra)
}

// MatchPlayer is one participant inside a Match.
type MatchPlayer struct {
	AccountID   int64  `json:"account_id"`
	HeroID      int64  `json:"hero_id"`
	PlayerSlot  int    `json:"player_slot"`
	Kills       int    `json:"kills"`
	Deaths      int    `json:"deaths"`
	Assists     int    `json:"assists"`
	Personaname string `json:"personaname,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var matchPlayerKnown = []string{"account_id", "hero_id", "player_slot", "kills", "deaths", "assists", "personaname"}

func (p *MatchPlayer) UnmarshalJSON(data []byte) error {
	type alias MatchPlayer
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := splitExtra(data, matchPlayerKnown)
	if err != nil {
		return err
	}
	a.Extra = extra
	*p = MatchPlayer(a)
	return nil
}

func (p MatchPlayer) MarshalJSON() ([]byte, error) {
	type alias MatchPlayer
	return mergeExtra(alias(p), p.Extra)
}

// PlayerData is the response shape of /players/{id}.
type PlayerData struct {
	Profile PlayerProfile `json:"profile"`

	Extra map[string]json.RawMessage `json:"-"`
}

var playerDataKnown = []string{"profile"}

func (d *PlayerData) UnmarshalJSON(data []byte) error {
	type alias PlayerData
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := splitExtra(data, playerDataKnown)
	if err != nil {
		return err
	}
	a.Extra = extra
	*d = PlayerData(a)
	return nil
}

func (d PlayerData) MarshalJSON() ([]byte, error) {
	type alias PlayerData
	return mergeExtra(alias(d), d.Extra)
}

// PlayerProfile is the nested profile block of PlayerData.
type PlayerProfile struct {
	AccountID   int64  `json:"account_id"`
	Personaname string `json:"personaname"`
	Name        string `json:"name,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var playerProfileKnown = []string{"account_id", "personaname", "name"}

func (p *PlayerProfile) UnmarshalJSON(data []byte) error {
	type alias PlayerProfile
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := splitExtra(data, playerProfileKnown)
	if err != nil {
		return err
	}
	a.Extra = extra
	*p = PlayerProfile(a)
	return nil
}

func (p PlayerProfile) MarshalJSON() ([]byte, error) {
	type alias PlayerProfile
	return mergeExtra(alias(p), p.Extra)
}

// Hero is one entry of the /heroes list.
type Hero struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	LocalizedName string   `json:"localized_name"`
	PrimaryAttr   string   `json:"primary_attr"`
	AttackType    string   `json:"attack_type"`
	Roles         []string `json:"roles"`

	Extra map[string]json.RawMessage `json:"-"`
}

var heroKnown = []string{"id", "name", "localized_name", "primary_attr", "attack_type", "roles"}

func (h *Hero) UnmarshalJSON(data []byte) error {
	type alias Hero
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := splitExtra(data, heroKnown)
	if err != nil {
		return err
	}
	a.Extra = extra
	*h = Hero(a)
	return nil
}

func (h Hero) MarshalJSON() ([]byte, error) {
	type alias Hero
	return mergeExtra(alias(h), h.Extra)
}

// splitExtra returns the keys of data not listed in known, or nil when the
// object carries no unknown fields.
func splitExtra(data []byte, known []string) (map[string]json.RawMessage, error) {
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(raw, k)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

// mergeExtra marshals v and folds the extra side-map back into the object.
func mergeExtra(v any, extra map[string]json.RawMessage) ([]byte, error) {
	base, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return base, nil
	}
	merged := make(map[string]json.RawMessage)
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, raw := range extra {
		merged[k] = raw
	}
	return json.Marshal(merged)
}
