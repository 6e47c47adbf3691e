package game

import (
	"fmt"
	"slices"

	"github.com/peterkuimelis/hexarena/internal/hex"
	"github.com/peterkuimelis/hexarena/internal/log"
)

// PlaceChampion puts a card from the current player's hand onto an empty tile
// of their spawn zone. The last placement starts turn play: the player with
// the most defense on the board acts first and draws.
func PlaceChampion(s *GameState, id CardID, at hex.Coord) (*GameState, error) {
	if s.Phase != PhasePlacement {
		return nil, fmt.Errorf("place: %w", ErrWrongPhase)
	}
	if !InHand(s, id) {
		return nil, fmt.Errorf("place %s: %w", id, ErrNotInHand)
	}
	if !slices.Contains(s.Current().SpawnZone, at) {
		return nil, fmt.Errorf("place %s at %s: %w", id, at, ErrInvalidTile)
	}
	if t, _ := s.TileAt(at); !t.Empty() {
		return nil, fmt.Errorf("place %s at %s: %w", id, at, ErrTileOccupied)
	}

	next := s.Clone()
	me := next.CurrentPlayer
	p := next.Current()
	p.Hand = removeCard(p.Hand, id)
	next.putChampion(id, me, at)
	next.emit(log.GameEvent{Type: log.EventPlace, Player: me, Card: string(id), To: at})

	if me+1 < len(next.Players) {
		next.CurrentPlayer = me + 1
		next.setPhase(PhaseInterstitial)
		return next, nil
	}

	first := FirstPlayer(next)
	next.TurnOrder = RotationFrom(next, first)
	next.TurnOrderIndex = 0
	next.TurnNumber = 1
	next.emit(log.GameEvent{Type: log.EventTurnOrder, Player: first, Values: next.TurnOrder})
	next.beginTurn(first)
	return next, nil
}
