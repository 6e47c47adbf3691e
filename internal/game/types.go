package game

import (
	"fmt"

	"github.com/peterkuimelis/hexarena/internal/hex"
)

// --- Enums ---

type Phase int

const (
	PhaseDraft Phase = iota
	PhaseInterstitial
	PhasePlacement
	PhaseTurn
	PhaseVictory
)

func (p Phase) String() string {
	switch p {
	case PhaseDraft:
		return "Draft"
	case PhaseInterstitial:
		return "Interstitial"
	case PhasePlacement:
		return "Placement"
	case PhaseTurn:
		return "Turn"
	case PhaseVictory:
		return "Victory"
	default:
		return "None"
	}
}

// Class is a champion's combat role. It decides which ability the champion has.
type Class int

const (
	ClassBruiser Class = iota
	ClassAttacker
	ClassDefender
)

func (c Class) String() string {
	switch c {
	case ClassAttacker:
		return "attacker"
	case ClassDefender:
		return "defender"
	default:
		return "bruiser"
	}
}

// --- Rules constants ---

const (
	BaseHealth    = 20
	HandLimit     = 5
	DraftShown    = 5
	DraftPicks    = 2
	KillScore     = 3
	VictoryScore  = 50
	LoneWolfBonus = 2
	HealAmount    = 10

	MaxAttack  = 10
	MaxDefense = 8
	StatCap    = 12 // attack + defense
	ClassGap   = 3

	MinPlayers = 2
	MaxPlayers = hex.MaxPlayers
)

// CardID identifies one card for the whole game, in every zone.
type CardID string

// --- Card definition (immutable template) ---

type Card struct {
	ID         CardID
	ChampionID string
	Name       string
	FactionID  string

	Attack    int
	Defense   int
	Health    int
	MaxHealth int
	Class     Class

	ReturnRate     float64
	StabilityScore float64
}

func (c *Card) String() string {
	return fmt.Sprintf("%s (%s %d/%d)", c.Name, c.Class, c.Attack, c.Defense)
}

// --- Champion (board instance of a card) ---

// Champion is the mutable on-board state of a card. It exists only while the
// card is on the board; stats come from the card template.
type Champion struct {
	Card     CardID
	Owner    int
	Position hex.Coord
	Health   int
}

// Tile is one board hex and its occupant reference ("" when empty).
type Tile struct {
	Coord    hex.Coord
	Points   int
	Occupant CardID
}

// Empty reports whether no champion stands on the tile.
func (t Tile) Empty() bool {
	return t.Occupant == ""
}

// Player holds one seat's zones and standing.
type Player struct {
	ID         int
	FactionID  string
	Hand       []CardID
	DrawPile   []CardID // top of the pile is index 0
	Discard    []CardID
	Score      int
	Eliminated bool
	SpawnZone  []hex.Coord

	Drafted    bool
	TurnsTaken int // completed turns; even counts allow deployment
}

// TurnFlags is the per-turn capability record of the current player. It is
// replaced with a fresh record whenever control passes to another player.
type TurnFlags struct {
	Moved    map[CardID]bool
	Attacked map[CardID]bool
	Deployed bool
	Drew     bool
}

func newTurnFlags() TurnFlags {
	return TurnFlags{
		Moved:    make(map[CardID]bool),
		Attacked: make(map[CardID]bool),
	}
}
