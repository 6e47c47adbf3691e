package ai

import (
	"math/rand/v2"
	"slices"

	"github.com/peterkuimelis/hexarena/internal/game"
)

// Draft chooses the current player's draft selection.
func Draft(s *game.GameState, d Difficulty, r *rand.Rand) game.Action {
	options := game.DraftOptions(s)
	k := game.DraftPickCount(s)

	var sel []game.CardID
	switch d {
	case Easy:
		for _, i := range r.Perm(len(options))[:k] {
			sel = append(sel, options[i])
		}
	case Medium:
		ranked := slices.Clone(options)
		slices.SortStableFunc(ranked, func(a, b game.CardID) int {
			return statTotal(s.Cards[b]) - statTotal(s.Cards[a])
		})
		sel = ranked[:k]
	default:
		sel = hardDraft(s, options, k)
	}
	return game.NewDraftAction(s, sel)
}

func statTotal(c *game.Card) int {
	return c.Attack + c.Defense
}

// hardDraft picks greedily by weighted stats, favouring classes the hand
// does not have yet and bruisers.
func hardDraft(s *game.GameState, options []game.CardID, k int) []game.CardID {
	have := make(map[game.Class]bool)
	for _, id := range s.Current().Hand {
		have[s.Cards[id].Class] = true
	}

	var sel []game.CardID
	for len(sel) < k {
		best, bestVal := game.CardID(""), 0.0
		for _, id := range options {
			if slices.Contains(sel, id) {
				continue
			}
			c := s.Cards[id]
			v := float64(c.Attack)*1.3 + float64(c.Defense) + float64(c.MaxHealth)*0.1
			if !have[c.Class] {
				v += 2
			}
			if c.Class == game.ClassBruiser {
				v++
			}
			if best == "" || v > bestVal {
				best, bestVal = id, v
			}
		}
		sel = append(sel, best)
		have[s.Cards[best].Class] = true
	}
	return sel
}
