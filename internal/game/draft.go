package game

import (
	"fmt"
	"slices"

	"github.com/peterkuimelis/hexarena/internal/log"
)

// CompleteDraft moves the selected options into the current player's hand,
// adds one random bonus card from the rest of the draw pile (or, failing
// that, from the unselected options) and shuffles everything else back.
//
// A selection must hold exactly DraftPickCount distinct offered cards.
func CompleteDraft(s *GameState, selected []CardID) (*GameState, error) {
	if s.Phase != PhaseDraft {
		return nil, fmt.Errorf("draft: %w", ErrWrongPhase)
	}
	options := DraftOptions(s)
	if len(selected) != DraftPickCount(s) {
		return nil, fmt.Errorf("draft: selected %d of %d options, need %d: %w",
			len(selected), len(options), DraftPickCount(s), ErrInvalidSelection)
	}
	for i, id := range selected {
		if !slices.Contains(options, id) {
			return nil, fmt.Errorf("draft: %s was not offered: %w", id, ErrInvalidSelection)
		}
		if slices.Contains(selected[:i], id) {
			return nil, fmt.Errorf("draft: %s selected twice: %w", id, ErrInvalidSelection)
		}
	}

	next := s.Clone()
	me := next.CurrentPlayer
	p := next.Current()

	_, remainder := Draw(p.DrawPile, len(options))
	var unselected []CardID
	for _, id := range options {
		if !slices.Contains(selected, id) {
			unselected = append(unselected, id)
		}
	}

	p.Hand = append(p.Hand, selected...)
	r := next.rng()
	var bonus CardID
	switch {
	case len(remainder) > 0:
		k := r.IntN(len(remainder))
		bonus = remainder[k]
		remainder = slices.Delete(remainder, k, k+1)
	case len(unselected) > 0:
		k := r.IntN(len(unselected))
		bonus = unselected[k]
		unselected = slices.Delete(unselected, k, k+1)
	}
	if bonus != "" {
		p.Hand = append(p.Hand, bonus)
	}

	pile := append(unselected, remainder...)
	Shuffle(pile, r)
	p.DrawPile = pile
	p.Drafted = true

	next.emit(log.GameEvent{Type: log.EventDraft, Player: me, Amount: len(selected)})
	if bonus != "" {
		next.emit(log.GameEvent{Type: log.EventDraw, Player: me, Card: string(bonus), Label: "draft bonus"})
	}
	next.emit(log.GameEvent{Type: log.EventShuffle, Player: me, Amount: len(pile)})

	if me+1 < len(next.Players) {
		next.CurrentPlayer = me + 1
	} else {
		next.CurrentPlayer = next.TurnOrder[0]
	}
	next.setPhase(PhaseInterstitial)
	return next, nil
}
