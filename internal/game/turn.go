package game

import (
	"fmt"

	"github.com/peterkuimelis/hexarena/internal/hex"
	"github.com/peterkuimelis/hexarena/internal/log"
)

// beginTurn hands control to player and performs the automatic draw.
func (s *GameState) beginTurn(player int) {
	s.CurrentPlayer = player
	s.Turn = newTurnFlags()
	s.LastCombat = nil
	s.setPhase(PhaseTurn)
	s.emit(log.GameEvent{Type: log.EventNewTurn, Player: player})
	s.drawForTurn()
}

// drawForTurn draws one card for the current player unless the hand is full
// or the pile is empty. It consumes the turn's draw either way.
func (s *GameState) drawForTurn() {
	s.Turn.Drew = true
	p := s.Current()
	if len(p.Hand) >= HandLimit || len(p.DrawPile) == 0 {
		return
	}
	drawn, rest := Draw(p.DrawPile, 1)
	p.DrawPile = rest
	p.Hand = append(p.Hand, drawn...)
	s.emit(log.GameEvent{Type: log.EventDraw, Player: p.ID, Card: string(drawn[0])})
}

// LeaveInterstitial routes the current player out of the interstitial phase:
// to draft if they have not drafted, to placement before the first round, or
// into their turn (with its automatic draw).
func LeaveInterstitial(s *GameState) (*GameState, error) {
	if s.Phase != PhaseInterstitial {
		return nil, fmt.Errorf("leave interstitial: %w", ErrWrongPhase)
	}
	next := s.Clone()
	switch {
	case !next.Current().Drafted:
		next.setPhase(PhaseDraft)
	case next.TurnNumber == 0:
		next.setPhase(PhasePlacement)
	default:
		next.beginTurn(next.CurrentPlayer)
	}
	return next, nil
}

// AutoDrawCard draws the current player's card for the turn, capped at
// HandLimit cards in hand. Turns begin with this draw already taken, so it
// only succeeds once per turn.
func AutoDrawCard(s *GameState) (*GameState, error) {
	if s.Phase != PhaseTurn {
		return nil, fmt.Errorf("draw: %w", ErrWrongPhase)
	}
	if s.Turn.Drew {
		return nil, fmt.Errorf("draw: %w", ErrAlreadyDrawn)
	}
	next := s.Clone()
	next.drawForTurn()
	return next, nil
}

// MoveChampion steps a champion to an adjacent tile. Moving onto a friendly
// champion that has not moved swaps the two, and both count as moved.
func MoveChampion(s *GameState, id CardID, to hex.Coord) (*GameState, error) {
	if s.Phase != PhaseTurn {
		return nil, fmt.Errorf("move: %w", ErrWrongPhase)
	}
	ch, ok := s.Champions[id]
	if !ok {
		return nil, fmt.Errorf("move %s: %w", id, ErrUnknownCard)
	}
	if ch.Owner != s.CurrentPlayer {
		return nil, fmt.Errorf("move %s: %w", id, ErrNotYourChampion)
	}
	if s.Turn.Moved[id] {
		return nil, fmt.Errorf("move %s: %w", id, ErrAlreadyMoved)
	}
	if !hex.InBounds(to) {
		return nil, fmt.Errorf("move %s to %s: %w", id, to, ErrInvalidTile)
	}
	if !ch.Position.IsNeighbor(to) {
		return nil, fmt.Errorf("move %s to %s: %w", id, to, ErrNotAdjacent)
	}

	other, occupied := s.OccupantAt(to)
	if occupied && (other.Owner != ch.Owner || s.Turn.Moved[other.Card]) {
		return nil, fmt.Errorf("move %s to %s: %w", id, to, ErrTileOccupied)
	}

	next := s.Clone()
	from := ch.Position
	if !occupied {
		next.relocate(id, to)
		next.Turn.Moved[id] = true
		next.emit(log.GameEvent{Type: log.EventMove, Player: ch.Owner, Card: string(id), From: from, To: to})
		return next, nil
	}

	next.tileRef(from).Occupant = other.Card
	next.tileRef(to).Occupant = id
	ch.Position = to
	other.Position = from
	next.Champions[id] = ch
	next.Champions[other.Card] = other
	next.Turn.Moved[id] = true
	next.Turn.Moved[other.Card] = true
	next.emit(log.GameEvent{Type: log.EventSwap, Player: ch.Owner, Card: string(id), Target: string(other.Card), From: from, To: to})
	return next, nil
}

// PlayChampionFromHand deploys a card from hand onto a valid deployment tile.
// The new champion can take no further action this turn.
func PlayChampionFromHand(s *GameState, id CardID, at hex.Coord) (*GameState, error) {
	if s.Phase != PhaseTurn {
		return nil, fmt.Errorf("deploy: %w", ErrWrongPhase)
	}
	if !CanDeployThisTurn(s) {
		return nil, fmt.Errorf("deploy %s: %w", id, ErrDeployUnavailable)
	}
	if !InHand(s, id) {
		return nil, fmt.Errorf("deploy %s: %w", id, ErrNotInHand)
	}
	valid := false
	for _, c := range ValidDeploymentTiles(s) {
		if c == at {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("deploy %s at %s: %w", id, at, ErrInvalidTile)
	}

	next := s.Clone()
	p := next.Current()
	p.Hand = removeCard(p.Hand, id)
	next.putChampion(id, p.ID, at)
	next.Turn.Moved[id] = true
	next.Turn.Attacked[id] = true
	next.Turn.Deployed = true
	next.emit(log.GameEvent{Type: log.EventDeploy, Player: p.ID, Card: string(id), To: at})
	return next, nil
}

// EndTurn passes control to the next non-eliminated player in turn order.
// Passing the end of the order completes a round: territory is scored and
// the order is rebuilt. Victory is checked before control passes.
func EndTurn(s *GameState) (*GameState, error) {
	if s.Phase != PhaseTurn {
		return nil, fmt.Errorf("end turn: %w", ErrWrongPhase)
	}

	next := s.Clone()
	finished := next.CurrentPlayer
	next.Players[finished].TurnsTaken++
	for _, p := range next.Players {
		next.checkElimination(p.ID)
	}

	idx := -1
	for i := next.TurnOrderIndex + 1; i < len(next.TurnOrder); i++ {
		if !next.Players[next.TurnOrder[i]].Eliminated {
			idx = i
			break
		}
	}
	if idx < 0 {
		next.scoreRound()
		next.emit(log.GameEvent{Type: log.EventRoundEnd, Player: finished, Amount: next.TurnNumber})
		next.TurnNumber++
		next.TurnOrder = RebuildTurnOrder(next)
		next.emit(log.GameEvent{Type: log.EventTurnOrder, Player: finished, Values: next.TurnOrder})
		idx = 0
	}

	next.Turn = newTurnFlags()
	next.LastCombat = nil

	if winner, reason, ok := CheckVictory(next); ok {
		next.Winner = winner
		next.CurrentPlayer = winner
		next.setPhase(PhaseVictory)
		next.emit(log.GameEvent{Type: log.EventWin, Player: winner, Label: reason})
		return next, nil
	}

	next.TurnOrderIndex = idx
	next.CurrentPlayer = next.TurnOrder[idx]
	next.setPhase(PhaseInterstitial)
	return next, nil
}

// Over reports whether the game has a winner.
func (s *GameState) Over() bool {
	return s.Phase == PhaseVictory
}
