package net

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/peterkuimelis/hexarena/internal/game"
	"github.com/peterkuimelis/hexarena/internal/log"
	"github.com/peterkuimelis/hexarena/internal/match"
)

func testDeck(prefix string, n int) []game.Card {
	deck := make([]game.Card, n)
	for i := range deck {
		atk, def := 4+i%4, 6-i%4
		deck[i] = game.Card{
			ChampionID: fmt.Sprintf("%s-%d", prefix, i+1),
			Name:       fmt.Sprintf("%s %d", prefix, i+1),
			Attack:     atk,
			Defense:    def,
			Class:      game.Classify(atk, def),
		}
	}
	return deck
}

// firstTurn plays the first legal action until player 0's first turn.
func firstTurn(t *testing.T) *game.GameState {
	t.Helper()
	s, err := game.NewGameState(game.GameConfig{
		Seed: 3,
		Players: []game.PlayerConfig{
			{FactionID: "north", Deck: testDeck("North", 8)},
			{FactionID: "south", Deck: testDeck("South", 8)},
		},
	})
	require.NoError(t, err)
	for s.Phase != game.PhaseTurn {
		legal := game.LegalActions(s)
		require.NotEmpty(t, legal)
		s, err = legal[0].Apply(s)
		require.NoError(t, err)
	}
	return s
}

func TestBuildStateViewHidesOtherHands(t *testing.T) {
	s := firstTurn(t)
	me := s.CurrentPlayer
	other := 1 - me

	sv := BuildStateView(s, me)
	assert.True(t, sv.IsYourTurn)
	assert.Equal(t, "Turn", sv.Phase)
	require.Len(t, sv.Players, 2)
	assert.Len(t, sv.Players[me].Hand, len(s.Players[me].Hand))
	assert.Nil(t, sv.Players[other].Hand)
	assert.Equal(t, len(s.Players[other].Hand), sv.Players[other].HandCount)
	assert.Len(t, sv.Board, 37)

	occupied := 0
	for _, tv := range sv.Board {
		if !tv.Empty() {
			occupied++
			assert.Equal(t, game.BaseHealth, tv.Health)
			assert.True(t, tv.Ability)
		} else {
			assert.Equal(t, -1, tv.Owner)
		}
	}
	assert.Equal(t, 2, occupied)

	theirs := BuildStateView(s, other)
	assert.False(t, theirs.IsYourTurn)
	assert.False(t, theirs.Deploy)
}

func TestBuildEventView(t *testing.T) {
	ev := BuildEventView(log.GameEvent{Seq: 4, Round: 2, Phase: "Turn", Player: 1, Type: log.EventHeal, Card: "p2-01-x", CardName: "Warden", Amount: 10})
	assert.Equal(t, "Heal", ev.Type)
	assert.Equal(t, "Warden", ev.Card)
	assert.Equal(t, "Warden heals 10", ev.Details)
}

func TestRenderStateDrawsBoard(t *testing.T) {
	s := firstTurn(t)
	out := RenderState(BuildStateView(s, s.CurrentPlayer))

	assert.Contains(t, out, "P1 (north)")
	assert.Contains(t, out, "P2 (south)")
	assert.Contains(t, out, " (5) ")
	assert.Contains(t, out, "Your turn")
	assert.Contains(t, out, "Hand: ")
	for _, ch := range s.Champions {
		assert.Contains(t, out, s.CardName(ch.Card))
	}
}

func TestLocalSeatRoundTrip(t *testing.T) {
	s := firstTurn(t)
	legal := game.LegalActions(s)
	require.Greater(t, len(legal), 1)

	var out bytes.Buffer
	ctrl, done := LocalSeat(context.Background(), s.CurrentPlayer, strings.NewReader("x\n99\n2\n"), &out)

	require.NoError(t, ctrl.Notify(context.Background(), s.Events[len(s.Events)-1]))
	got, err := ctrl.ChooseAction(context.Background(), s, legal)
	require.NoError(t, err)
	assert.Equal(t, legal[1].String(), got.String())

	require.NoError(t, ctrl.SendGameOver(0, "P1 wins by score after 9 rounds"))
	require.NoError(t, <-done)

	text := out.String()
	assert.Contains(t, text, "Enter a number between 1 and")
	assert.Contains(t, text, "2) "+legal[1].String())
	assert.Contains(t, text, "GAME OVER")
	assert.Contains(t, text, "P1 wins by score after 9 rounds")
}

func TestLocalSeatInputClosed(t *testing.T) {
	s := firstTurn(t)
	ctrl, done := LocalSeat(context.Background(), s.CurrentPlayer, strings.NewReader(""), io.Discard)
	defer ctrl.Close()

	_, err := ctrl.ChooseAction(context.Background(), s, game.LegalActions(s))
	assert.Error(t, err)
	assert.ErrorIs(t, <-done, ErrInputClosed)
}

func TestChooseActionCancelled(t *testing.T) {
	s := firstTurn(t)
	ctrl, _ := LocalSeat(context.Background(), s.CurrentPlayer, strings.NewReader("1\n"), io.Discard)
	defer ctrl.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ctrl.ChooseAction(ctx, s, game.LegalActions(s))
	assert.ErrorIs(t, err, context.Canceled)
}

const hostRoster = `
factions:
  - id: north
    name: Northern Fund
    champions:
      - {id: n1, name: Aster, return_rate: 0.30, stability_score: 20}
      - {id: n2, name: Birch, return_rate: 0.10, stability_score: 80}
      - {id: n3, name: Cedar, return_rate: 0.20, stability_score: 50}
      - {id: n4, name: Dune, return_rate: 0.05, stability_score: 60}
  - id: south
    name: Southern Fund
    champions:
      - {id: s1, name: Ember, return_rate: 0.25, stability_score: 30}
      - {id: s2, name: Flint, return_rate: 0.15, stability_score: 70}
      - {id: s3, name: Grove, return_rate: 0.02, stability_score: 90}
      - {id: s4, name: Heath, return_rate: 0.12, stability_score: 40}
  - id: east
    name: Eastern Fund
    champions:
      - {id: e1, name: Iris, return_rate: 0.18, stability_score: 55}
      - {id: e2, name: Juniper, return_rate: 0.08, stability_score: 65}
`

func TestHostPlaysJoiner(t *testing.T) {
	rf, err := game.ParseRoster([]byte(hostRoster))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	h := &Host{
		Roster:    rf,
		Seed:      11,
		AISeats:   1,
		MaxRounds: 2,
		Log:       zaptest.NewLogger(t),
		In:        strings.NewReader(strings.Repeat("1\n", 2000)),
		Out:       io.Discard,
	}
	type result struct {
		winner int
		err    error
	}
	hostDone := make(chan result, 1)
	go func() {
		out, err := h.Serve(ctx, ln)
		hostDone <- result{out.Winner, err}
	}()

	var joinerOut bytes.Buffer
	err = Connect(ctx, ln.Addr().String(), "south", strings.NewReader(strings.Repeat("1\n", 2000)), &joinerOut)
	require.NoError(t, err)

	res := <-hostDone
	require.NoError(t, res.err)
	assert.Contains(t, joinerOut.String(), "GAME OVER")
	assert.Contains(t, joinerOut.String(), "P2 (south)")
	assert.Contains(t, joinerOut.String(), "P3 (east)")
}

func TestHostServeCancelled(t *testing.T) {
	rf, err := game.ParseRoster([]byte(hostRoster))
	require.NoError(t, err)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = (&Host{Roster: rf, In: strings.NewReader(""), Out: io.Discard}).Serve(ctx, ln)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSeatFactions(t *testing.T) {
	rf, err := game.ParseRoster([]byte(hostRoster))
	require.NoError(t, err)

	h := &Host{Roster: rf}
	seats, err := h.seatFactions("")
	require.NoError(t, err)
	assert.Equal(t, []string{"north", "south"}, seats)

	h = &Host{Roster: rf, Faction: "south", AISeats: 3}
	seats, err = h.seatFactions("south")
	require.NoError(t, err)
	assert.Equal(t, []string{"south", "south", "north"}, seats)
}

func TestResult(t *testing.T) {
	assert.Equal(t, "No winner: round limit reached (2 rounds)", Result(match.Outcome{Winner: -1, Reason: "round limit reached (2 rounds)", Rounds: 2}))
	assert.Equal(t, "P2 wins by score after 14 rounds", Result(match.Outcome{Winner: 1, Reason: "score", Rounds: 14}))
}
