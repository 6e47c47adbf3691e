package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/hexarena/internal/hex"
	"github.com/peterkuimelis/hexarena/internal/log"
)

func TestNewGameStateValidation(t *testing.T) {
	_, err := NewGameState(GameConfig{Players: []PlayerConfig{{Deck: uniformDeck("A", 3, 4, 4)}}})
	assert.ErrorIs(t, err, ErrPlayerCount)

	_, err = NewGameState(GameConfig{Players: []PlayerConfig{{Deck: uniformDeck("A", 3, 4, 4)}, {}}})
	assert.ErrorIs(t, err, ErrEmptyDeck)

	s := newTestGame(t, uniformDeck("A", 3, 4, 4), uniformDeck("B", 3, 4, 4))
	assert.Equal(t, PhaseDraft, s.Phase)
	assert.Equal(t, 0, s.CurrentPlayer)
	assert.Equal(t, -1, s.Winner)
	assert.Len(t, s.Board, 37)
	assert.Len(t, s.Cards, 6)
	assert.Equal(t, hex.SpawnZones()[1], s.Players[1].SpawnZone)
}

func TestSeededGamesAreReplayable(t *testing.T) {
	cfg := func() GameConfig {
		return GameConfig{Seed: 42, Players: []PlayerConfig{
			{Deck: uniformDeck("A", 9, 4, 4)},
			{Deck: uniformDeck("B", 9, 4, 4)},
		}}
	}
	a, err := NewGameState(cfg())
	require.NoError(t, err)
	b, err := NewGameState(cfg())
	require.NoError(t, err)
	assert.Equal(t, a.Players[0].DrawPile, b.Players[0].DrawPile)

	a = must(t)(CompleteDraft(a, DraftOptions(a)[:2]))
	b = must(t)(CompleteDraft(b, DraftOptions(b)[:2]))
	assert.Equal(t, a.Players[0].Hand, b.Players[0].Hand)
	assert.Equal(t, a.Players[0].DrawPile, b.Players[0].DrawPile)
}

func TestCompleteDraft(t *testing.T) {
	s := newTestGame(t, uniformDeck("A", 8, 4, 4), uniformDeck("B", 8, 4, 4))
	opts := DraftOptions(s)
	require.Len(t, opts, DraftShown)
	assert.Equal(t, s.Players[0].DrawPile[:DraftShown], opts)

	next := must(t)(CompleteDraft(s, []CardID{opts[3], opts[1]}))
	p := next.Players[0]
	require.Len(t, p.Hand, 3)
	assert.Equal(t, []CardID{opts[3], opts[1]}, p.Hand[:2])
	assert.NotContains(t, opts, p.Hand[2], "bonus comes from beyond the shown cards")
	assert.Len(t, p.DrawPile, 5)
	assert.True(t, p.Drafted)
	assert.Len(t, s.Players[0].Hand, 0, "input state must not change")

	bonus := log.Filter(next.Events, log.EventDraw)
	require.Len(t, bonus, 1)
	assert.Equal(t, "draft bonus", bonus[0].Label)

	assert.Equal(t, PhaseInterstitial, next.Phase)
	assert.Equal(t, 1, next.CurrentPlayer)
	next = must(t)(LeaveInterstitial(next))
	assert.Equal(t, PhaseDraft, next.Phase)
}

func TestDraftBonusFallsBackToUnselected(t *testing.T) {
	s := newTestGame(t, uniformDeck("A", 5, 4, 4), uniformDeck("B", 5, 4, 4))
	opts := DraftOptions(s)
	next := must(t)(CompleteDraft(s, opts[:2]))
	p := next.Players[0]
	require.Len(t, p.Hand, 3)
	assert.Contains(t, opts[2:], p.Hand[2])
	assert.Len(t, p.DrawPile, 2)
}

func TestDraftSmallPile(t *testing.T) {
	s := newTestGame(t, uniformDeck("A", 1, 4, 4), uniformDeck("B", 1, 4, 4))
	assert.Equal(t, 1, DraftPickCount(s))
	next := must(t)(CompleteDraft(s, DraftOptions(s)))
	assert.Len(t, next.Players[0].Hand, 1)
	assert.Empty(t, next.Players[0].DrawPile)
}

func TestDraftRejections(t *testing.T) {
	s := newTestGame(t, uniformDeck("A", 8, 4, 4), uniformDeck("B", 8, 4, 4))
	opts := DraftOptions(s)
	before := s.Clone()

	cases := []struct {
		name string
		sel  []CardID
	}{
		{"too few", opts[:1]},
		{"too many", opts[:3]},
		{"duplicate", []CardID{opts[0], opts[0]}},
		{"not offered", []CardID{opts[0], s.Players[0].DrawPile[6]}},
		{"other player's card", []CardID{opts[0], s.Players[1].DrawPile[0]}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, err := CompleteDraft(s, tc.sel)
			assert.Nil(t, next)
			assert.ErrorIs(t, err, ErrInvalidSelection)
		})
	}
	assert.Equal(t, before, s)

	_, err := PlaceChampion(s, opts[0], s.Players[0].SpawnZone[0])
	assert.ErrorIs(t, err, ErrWrongPhase)
}

func TestPlacementStartsFirstTurn(t *testing.T) {
	s := newTestGame(t, uniformDeck("Soft", 6, 6, 2), uniformDeck("Hard", 6, 2, 6))
	s = must(t)(CompleteDraft(s, DraftOptions(s)[:2]))
	s = must(t)(LeaveInterstitial(s))
	s = must(t)(CompleteDraft(s, DraftOptions(s)[:2]))
	require.Equal(t, 0, s.CurrentPlayer)
	s = must(t)(LeaveInterstitial(s))
	require.Equal(t, PhasePlacement, s.Phase)

	hand := s.Players[0].Hand
	_, err := PlaceChampion(s, hand[0], hex.Coord{Q: 0, R: 0})
	assert.ErrorIs(t, err, ErrInvalidTile)
	_, err = PlaceChampion(s, s.Players[1].Hand[0], s.Players[0].SpawnZone[0])
	assert.ErrorIs(t, err, ErrNotInHand)
	assert.Len(t, ValidPlacementTiles(s), 3)

	s = must(t)(PlaceChampion(s, hand[0], s.Players[0].SpawnZone[1]))
	assert.Equal(t, PhaseInterstitial, s.Phase)
	assert.Equal(t, 1, s.CurrentPlayer)
	s = must(t)(LeaveInterstitial(s))
	require.Equal(t, PhasePlacement, s.Phase)

	handBefore := len(s.Players[1].Hand)
	s = must(t)(PlaceChampion(s, s.Players[1].Hand[0], s.Players[1].SpawnZone[0]))

	assert.Equal(t, PhaseTurn, s.Phase)
	assert.Equal(t, 1, s.TurnNumber)
	assert.Equal(t, 1, s.CurrentPlayer, "higher board defense acts first")
	assert.Equal(t, []int{1, 0}, s.TurnOrder)
	assert.Equal(t, handBefore, len(s.Players[1].Hand), "placed one, drew one")
	assert.True(t, s.Turn.Drew)
}
