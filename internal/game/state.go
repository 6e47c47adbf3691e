package game

import (
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"

	"github.com/peterkuimelis/hexarena/internal/hex"
	"github.com/peterkuimelis/hexarena/internal/log"
)

// PlayerConfig describes one seat at game creation.
type PlayerConfig struct {
	FactionID string
	Deck      []Card // card templates; IDs are reassigned per seat
}

// GameConfig holds configuration for creating a new game.
type GameConfig struct {
	Players   []PlayerConfig
	Seed      uint64 // RNG seed for shuffles and draft bonus draws
	NoShuffle bool   // keep deck order (for deterministic tests)
}

// GameState holds the complete state of a game. Operations never modify a
// GameState in place: they return a modified Clone.
type GameState struct {
	Phase          Phase
	Players        []Player
	Board          []Tile
	Cards          map[CardID]*Card // immutable templates, shared between clones
	Champions      map[CardID]Champion
	CurrentPlayer  int
	TurnNumber     int
	TurnOrder      []int
	TurnOrderIndex int
	Winner         int // -1 until the game is won

	Turn          TurnFlags
	UsedAbilities map[CardID]bool
	LastCombat    []CombatResult // one entry per resolution of the last attack or ability
	Events        []log.GameEvent

	Seed     uint64
	RandStep uint64

	tileIndex map[hex.Coord]int // shared, never mutated after creation
}

// NewGameState creates a game in the draft phase with player 0 to act.
func NewGameState(cfg GameConfig) (*GameState, error) {
	if len(cfg.Players) < MinPlayers || len(cfg.Players) > MaxPlayers {
		return nil, fmt.Errorf("new game with %d players: %w", len(cfg.Players), ErrPlayerCount)
	}

	layout := hex.GenerateBoard()
	gs := &GameState{
		Phase:         PhaseDraft,
		Board:         make([]Tile, len(layout)),
		Cards:         make(map[CardID]*Card),
		Champions:     make(map[CardID]Champion),
		Winner:        -1,
		Turn:          newTurnFlags(),
		UsedAbilities: make(map[CardID]bool),
		Seed:          cfg.Seed,
		tileIndex:     make(map[hex.Coord]int, len(layout)),
	}
	for i, t := range layout {
		gs.Board[i] = Tile{Coord: t.Coord, Points: t.Points}
		gs.tileIndex[t.Coord] = i
	}

	zones := hex.SpawnZones()
	for i, pc := range cfg.Players {
		if len(pc.Deck) == 0 {
			return nil, fmt.Errorf("new game: player %d: %w", i, ErrEmptyDeck)
		}
		p := Player{
			ID:        i,
			FactionID: pc.FactionID,
			SpawnZone: zones[i],
		}
		for j, tmpl := range pc.Deck {
			card := tmpl
			card.ID = CardID(fmt.Sprintf("p%d-%02d-%s", i+1, j+1, tmpl.ChampionID))
			if card.MaxHealth == 0 {
				card.MaxHealth = BaseHealth
			}
			if card.Health == 0 {
				card.Health = card.MaxHealth
			}
			gs.Cards[card.ID] = &card
			p.DrawPile = append(p.DrawPile, card.ID)
		}
		if !cfg.NoShuffle {
			Shuffle(p.DrawPile, gs.rng())
		}
		gs.Players = append(gs.Players, p)
		gs.TurnOrder = append(gs.TurnOrder, i)
	}

	gs.emit(log.GameEvent{Type: log.EventPhaseChange, Player: 0, Label: gs.Phase.String()})
	return gs, nil
}

// Clone returns a deep copy of every mutable part of the state.
func (s *GameState) Clone() *GameState {
	c := *s
	c.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		p.Hand = slices.Clone(p.Hand)
		p.DrawPile = slices.Clone(p.DrawPile)
		p.Discard = slices.Clone(p.Discard)
		c.Players[i] = p
	}
	c.Board = slices.Clone(s.Board)
	c.Champions = maps.Clone(s.Champions)
	c.TurnOrder = slices.Clone(s.TurnOrder)
	c.Turn = TurnFlags{
		Moved:    maps.Clone(s.Turn.Moved),
		Attacked: maps.Clone(s.Turn.Attacked),
		Deployed: s.Turn.Deployed,
		Drew:     s.Turn.Drew,
	}
	c.UsedAbilities = maps.Clone(s.UsedAbilities)
	c.LastCombat = slices.Clone(s.LastCombat)
	// Clip so appends on sibling clones never share a backing array.
	c.Events = slices.Clip(s.Events)
	return &c
}

// Current returns the player whose turn it is.
func (s *GameState) Current() *Player {
	return &s.Players[s.CurrentPlayer]
}

// Card returns the template for id, or nil.
func (s *GameState) Card(id CardID) *Card {
	return s.Cards[id]
}

// CardName returns the display name for id.
func (s *GameState) CardName(id CardID) string {
	if c := s.Cards[id]; c != nil {
		return c.Name
	}
	return string(id)
}

// TileAt returns the tile at c and whether it is on the board.
func (s *GameState) TileAt(c hex.Coord) (Tile, bool) {
	i, ok := s.tileIndex[c]
	if !ok {
		return Tile{}, false
	}
	return s.Board[i], true
}

// OccupantAt returns the champion standing on c, if any.
func (s *GameState) OccupantAt(c hex.Coord) (Champion, bool) {
	t, ok := s.TileAt(c)
	if !ok || t.Empty() {
		return Champion{}, false
	}
	ch, ok := s.Champions[t.Occupant]
	if !ok {
		panic(fmt.Sprintf("tile %s references %s which is not on the board", c, t.Occupant))
	}
	return ch, true
}

// Alive returns the ids of players that are not eliminated, in id order.
func (s *GameState) Alive() []int {
	var ids []int
	for _, p := range s.Players {
		if !p.Eliminated {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func (s *GameState) tileRef(c hex.Coord) *Tile {
	i, ok := s.tileIndex[c]
	if !ok {
		panic(fmt.Sprintf("coordinate %s is off the board", c))
	}
	return &s.Board[i]
}

// rng returns a generator for one random step and advances RandStep.
// Must only be called on a state that is being built (a fresh clone).
func (s *GameState) rng() *rand.Rand {
	s.RandStep++
	return rand.New(rand.NewPCG(s.Seed, s.RandStep))
}

// emit appends a structured event stamped with the current round and phase.
func (s *GameState) emit(e log.GameEvent) {
	e.Seq = len(s.Events) + 1
	e.Round = s.TurnNumber
	e.Phase = s.Phase.String()
	if e.Card != "" && e.CardName == "" {
		e.CardName = s.CardName(CardID(e.Card))
	}
	if e.Target != "" && e.TargetName == "" {
		e.TargetName = s.CardName(CardID(e.Target))
	}
	s.Events = append(s.Events, e)
}

// setPhase switches phase and records the transition.
func (s *GameState) setPhase(p Phase) {
	s.Phase = p
	s.emit(log.GameEvent{Type: log.EventPhaseChange, Player: s.CurrentPlayer, Label: p.String()})
}

// putChampion creates a board instance for a card at c.
func (s *GameState) putChampion(id CardID, owner int, c hex.Coord) {
	t := s.tileRef(c)
	if !t.Empty() {
		panic(fmt.Sprintf("putChampion: tile %s already holds %s", c, t.Occupant))
	}
	card := s.Cards[id]
	t.Occupant = id
	s.Champions[id] = Champion{Card: id, Owner: owner, Position: c, Health: card.MaxHealth}
}

// relocate moves a champion to an empty tile.
func (s *GameState) relocate(id CardID, to hex.Coord) {
	ch := s.Champions[id]
	s.tileRef(ch.Position).Occupant = ""
	s.tileRef(to).Occupant = id
	ch.Position = to
	s.Champions[id] = ch
}

// destroy removes a champion from the board and discards its card.
func (s *GameState) destroy(id CardID) {
	ch, ok := s.Champions[id]
	if !ok {
		panic(fmt.Sprintf("destroy: %s is not on the board", id))
	}
	s.tileRef(ch.Position).Occupant = ""
	delete(s.Champions, id)
	owner := &s.Players[ch.Owner]
	owner.Discard = append(owner.Discard, id)
	s.emit(log.GameEvent{Type: log.EventDestroy, Player: ch.Owner, Target: string(id), To: ch.Position})
}

func removeCard(ids []CardID, id CardID) []CardID {
	i := slices.Index(ids, id)
	if i < 0 {
		return ids
	}
	return slices.Delete(ids, i, i+1)
}
