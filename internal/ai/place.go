package ai

import (
	"math/rand/v2"

	"github.com/peterkuimelis/hexarena/internal/game"
	"github.com/peterkuimelis/hexarena/internal/hex"
)

// Place chooses the current player's placement during the placement phase.
func Place(s *game.GameState, d Difficulty, r *rand.Rand) game.Action {
	switch d {
	case Easy:
		return pick(r, ofType(game.LegalActions(s), game.ActionPlace))
	case Medium:
		id := strongestInHand(s)
		return game.NewPlaceAction(s, id, closestToCenter(game.ValidPlacementTiles(s)))
	default:
		id, at := bestPairing(s, game.ValidPlacementTiles(s), game.PlaceChampion)
		return game.NewPlaceAction(s, id, at)
	}
}

// strongestInHand returns the first hand card with the highest attack+defense.
func strongestInHand(s *game.GameState) game.CardID {
	var best game.CardID
	for _, id := range s.Current().Hand {
		if best == "" || statTotal(s.Cards[id]) > statTotal(s.Cards[best]) {
			best = id
		}
	}
	return best
}

func closestToCenter(tiles []hex.Coord) hex.Coord {
	best := tiles[0]
	for _, c := range tiles[1:] {
		if hex.Distance(c, hex.Origin) < hex.Distance(best, hex.Origin) {
			best = c
		}
	}
	return best
}

type putFunc func(*game.GameState, game.CardID, hex.Coord) (*game.GameState, error)

// bestPairing simulates every hand card on every tile and returns the pair
// that leaves the board in the best shape for the current player.
func bestPairing(s *game.GameState, tiles []hex.Coord, put putFunc) (game.CardID, hex.Coord) {
	me := s.CurrentPlayer
	var (
		bestID  game.CardID
		bestAt  hex.Coord
		bestVal float64
	)
	for _, id := range s.Current().Hand {
		for _, at := range tiles {
			next, err := put(s, id, at)
			if err != nil {
				continue
			}
			if v := score(next, me); bestID == "" || v > bestVal {
				bestID, bestAt, bestVal = id, at, v
			}
		}
	}
	return bestID, bestAt
}
