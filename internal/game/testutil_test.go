package game

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/hexarena/internal/hex"
	"github.com/peterkuimelis/hexarena/internal/log"
)

// --- Test card helpers ---

func vanillaChampion(name string, atk, def int) Card {
	return Card{
		ChampionID: strings.ToLower(strings.ReplaceAll(name, " ", "-")),
		Name:       name,
		Attack:     atk,
		Defense:    def,
		Health:     BaseHealth,
		MaxHealth:  BaseHealth,
		Class:      Classify(atk, def),
	}
}

func makeDeck(cards ...Card) []Card {
	return append([]Card(nil), cards...)
}

// uniformDeck returns n copies of an atk/def champion with distinct names.
func uniformDeck(prefix string, n, atk, def int) []Card {
	deck := make([]Card, n)
	for i := range deck {
		deck[i] = vanillaChampion(fmt.Sprintf("%s %d", prefix, i+1), atk, def)
	}
	return deck
}

// newTestGame creates an unshuffled game, one deck per seat.
func newTestGame(t *testing.T, decks ...[]Card) *GameState {
	t.Helper()
	cfg := GameConfig{Seed: 7, NoShuffle: true}
	for i, d := range decks {
		cfg.Players = append(cfg.Players, PlayerConfig{FactionID: fmt.Sprintf("faction-%d", i), Deck: d})
	}
	s, err := NewGameState(cfg)
	require.NoError(t, err)
	return s
}

// battleState returns a game already in player 0's first turn with an empty
// board and every card still in its owner's draw pile. Tests arrange the
// board with putOnBoard and moveToHand.
func battleState(t *testing.T, decks ...[]Card) *GameState {
	t.Helper()
	s := newTestGame(t, decks...)
	for i := range s.Players {
		s.Players[i].Drafted = true
	}
	s.Phase = PhaseTurn
	s.TurnNumber = 1
	s.CurrentPlayer = 0
	s.TurnOrderIndex = 0
	s.Turn = newTurnFlags()
	s.Turn.Drew = true
	return s
}

// idOf finds a player's card by name.
func idOf(t *testing.T, s *GameState, player int, name string) CardID {
	t.Helper()
	for id, c := range s.Cards {
		if c.Name == name && strings.HasPrefix(string(id), fmt.Sprintf("p%d-", player+1)) {
			return id
		}
	}
	t.Fatalf("no card %q for player %d", name, player)
	return ""
}

// putOnBoard moves a card out of its owner's zones and onto c.
func putOnBoard(t *testing.T, s *GameState, player int, name string, c hex.Coord) CardID {
	t.Helper()
	id := idOf(t, s, player, name)
	p := &s.Players[player]
	p.DrawPile = removeCard(p.DrawPile, id)
	p.Hand = removeCard(p.Hand, id)
	s.putChampion(id, player, c)
	return id
}

// moveToHand moves a card from the draw pile to its owner's hand.
func moveToHand(t *testing.T, s *GameState, player int, name string) CardID {
	t.Helper()
	id := idOf(t, s, player, name)
	p := &s.Players[player]
	p.DrawPile = removeCard(p.DrawPile, id)
	p.Hand = append(p.Hand, id)
	return id
}

// clearZones empties a player's hand and draw pile.
func clearZones(s *GameState, player int) {
	s.Players[player].Hand = nil
	s.Players[player].DrawPile = nil
}

func setHealth(s *GameState, id CardID, hp int) {
	ch := s.Champions[id]
	ch.Health = hp
	s.Champions[id] = ch
}

// must fails the test on a rejected operation. Call as must(t)(EndTurn(s)).
func must(t *testing.T) func(*GameState, error) *GameState {
	return func(s *GameState, err error) *GameState {
		t.Helper()
		require.NoError(t, err)
		require.NotNil(t, s)
		return s
	}
}

// playToFirstTurn drafts the first offered cards and places the first hand
// card on the first valid tile for every seat.
func playToFirstTurn(t *testing.T, s *GameState) *GameState {
	t.Helper()
	for s.Phase != PhaseTurn {
		var next *GameState
		var err error
		switch s.Phase {
		case PhaseDraft:
			opts := DraftOptions(s)
			next, err = CompleteDraft(s, opts[:DraftPickCount(s)])
		case PhaseInterstitial:
			next, err = LeaveInterstitial(s)
		case PhasePlacement:
			next, err = PlaceChampion(s, s.Current().Hand[0], ValidPlacementTiles(s)[0])
		default:
			t.Fatalf("unexpected phase %s before first turn", s.Phase)
		}
		if err != nil {
			t.Logf("Event log:\n%s", log.FormatAll(s.Events))
			t.Fatalf("setup: %v", err)
		}
		s = next
	}
	return s
}
