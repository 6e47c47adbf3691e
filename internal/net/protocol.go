package net

// Message types for the JSON protocol over TCP.

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "choose_action"
	Actions []ActionView `json:"actions,omitempty"`
	State   *StateView   `json:"state,omitempty"`

	// For "game_over"
	Winner int    `json:"winner"`
	Result string `json:"result,omitempty"`
}

// EventView is a game event with its rendered text.
type EventView struct {
	Seq     int    `json:"seq"`
	Round   int    `json:"round"`
	Phase   string `json:"phase"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Target  string `json:"target,omitempty"`
	Details string `json:"details"`
}

// ActionView is a numbered action choice.
type ActionView struct {
	Index int    `json:"index"`
	Type  string `json:"type"`
	Desc  string `json:"desc"`
}

// CardView describes a card in hand or on offer.
type CardView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Attack  int    `json:"attack"`
	Defense int    `json:"defense"`
	Class   string `json:"class"`
}

// StateView is the game state from one player's perspective.
type StateView struct {
	Round         int          `json:"round"`
	Phase         string       `json:"phase"`
	You           int          `json:"you"`
	CurrentPlayer int          `json:"current_player"`
	IsYourTurn    bool         `json:"is_your_turn"`
	TurnOrder     []int        `json:"turn_order"`
	Winner        int          `json:"winner"`
	Players       []PlayerView `json:"players"`
	Board         []TileView   `json:"board"`
	DraftOptions  []CardView   `json:"draft_options,omitempty"`
	Deploy        bool         `json:"can_deploy"`
}

// PlayerView shows one seat. Hand contents are only filled for "you".
type PlayerView struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Faction      string     `json:"faction"`
	Score        int        `json:"score"`
	Projected    int        `json:"projected"`
	HandCount    int        `json:"hand_count"`
	Hand         []CardView `json:"hand,omitempty"`
	DeckCount    int        `json:"deck_count"`
	DiscardCount int        `json:"discard_count"`
	Eliminated   bool       `json:"eliminated,omitempty"`
}

// TileView describes one board hex and its occupant.
type TileView struct {
	Q         int    `json:"q"`
	R         int    `json:"r"`
	Points    int    `json:"points"`
	Card      string `json:"card,omitempty"`
	Name      string `json:"name,omitempty"`
	Owner     int    `json:"owner"`
	Health    int    `json:"health,omitempty"`
	MaxHealth int    `json:"max_health,omitempty"`
	Attack    int    `json:"attack,omitempty"`
	Defense   int    `json:"defense,omitempty"`
	Class     string `json:"class,omitempty"`
	Ability   bool   `json:"ability_ready,omitempty"`
}

// Empty reports whether no champion stands on the tile.
func (t TileView) Empty() bool {
	return t.Card == ""
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "action"
	Index int `json:"index,omitempty"`

	// For "join" (initial handshake)
	Faction string `json:"faction,omitempty"`
}
