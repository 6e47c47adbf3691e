package game

import (
	"slices"

	"github.com/peterkuimelis/hexarena/internal/hex"
)

// PlayerChampionsOnBoard returns a player's champions in board order.
func PlayerChampionsOnBoard(s *GameState, player int) []Champion {
	var out []Champion
	for _, t := range s.Board {
		if t.Empty() {
			continue
		}
		if ch := s.Champions[t.Occupant]; ch.Owner == player {
			out = append(out, ch)
		}
	}
	return out
}

// DraftOptions returns the cards the current player is shown during draft.
func DraftOptions(s *GameState) []CardID {
	if s.Phase != PhaseDraft {
		return nil
	}
	shown, _ := Draw(s.Current().DrawPile, DraftShown)
	return shown
}

// DraftPickCount is how many cards a valid selection must contain.
func DraftPickCount(s *GameState) int {
	return min(DraftPicks, len(DraftOptions(s)))
}

// ValidPlacementTiles returns the empty tiles of the current player's spawn zone.
func ValidPlacementTiles(s *GameState) []hex.Coord {
	if s.Phase != PhasePlacement {
		return nil
	}
	return emptyOf(s, s.Current().SpawnZone)
}

func emptyOf(s *GameState, coords []hex.Coord) []hex.Coord {
	var out []hex.Coord
	for _, c := range coords {
		if t, ok := s.TileAt(c); ok && t.Empty() {
			out = append(out, c)
		}
	}
	return out
}

// ownChampion returns a champion owned by the current player during a turn.
func ownChampion(s *GameState, id CardID) (Champion, bool) {
	if s.Phase != PhaseTurn {
		return Champion{}, false
	}
	ch, ok := s.Champions[id]
	if !ok || ch.Owner != s.CurrentPlayer {
		return Champion{}, false
	}
	return ch, true
}

// MovableChampions returns the current player's champions that have not moved.
func MovableChampions(s *GameState) []Champion {
	if s.Phase != PhaseTurn {
		return nil
	}
	var out []Champion
	for _, ch := range PlayerChampionsOnBoard(s, s.CurrentPlayer) {
		if !s.Turn.Moved[ch.Card] {
			out = append(out, ch)
		}
	}
	return out
}

// ValidMoves returns the empty neighbour tiles a champion may step to.
func ValidMoves(s *GameState, id CardID) []hex.Coord {
	ch, ok := ownChampion(s, id)
	if !ok || s.Turn.Moved[id] {
		return nil
	}
	var out []hex.Coord
	for _, n := range ch.Position.Neighbors() {
		if t, ok := s.TileAt(n); ok && t.Empty() {
			out = append(out, n)
		}
	}
	return out
}

// SwapTargets returns adjacent friendly champions that have not moved and can
// trade places with id.
func SwapTargets(s *GameState, id CardID) []Champion {
	ch, ok := ownChampion(s, id)
	if !ok || s.Turn.Moved[id] {
		return nil
	}
	var out []Champion
	for _, n := range ch.Position.Neighbors() {
		other, ok := s.OccupantAt(n)
		if ok && other.Owner == ch.Owner && !s.Turn.Moved[other.Card] {
			out = append(out, other)
		}
	}
	return out
}

// enemiesAdjacent returns champions next to c not owned by owner, in
// neighbour-direction order.
func enemiesAdjacent(s *GameState, c hex.Coord, owner int) []Champion {
	var out []Champion
	for _, n := range c.Neighbors() {
		if other, ok := s.OccupantAt(n); ok && other.Owner != owner {
			out = append(out, other)
		}
	}
	return out
}

// AttackTargets returns the enemies adjacent to a champion of the current player.
func AttackTargets(s *GameState, id CardID) []Champion {
	ch, ok := ownChampion(s, id)
	if !ok {
		return nil
	}
	return enemiesAdjacent(s, ch.Position, ch.Owner)
}

// AttackableChampions returns the current player's champions that may still
// attack and have at least one adjacent enemy.
func AttackableChampions(s *GameState) []Champion {
	if s.Phase != PhaseTurn {
		return nil
	}
	var out []Champion
	for _, ch := range PlayerChampionsOnBoard(s, s.CurrentPlayer) {
		if s.Turn.Attacked[ch.Card] {
			continue
		}
		if len(enemiesAdjacent(s, ch.Position, ch.Owner)) > 0 {
			out = append(out, ch)
		}
	}
	return out
}

// CanDeployThisTurn reports whether the current player may deploy from hand:
// an even number of completed turns, no deployment yet this turn, and a
// non-empty hand.
func CanDeployThisTurn(s *GameState) bool {
	if s.Phase != PhaseTurn {
		return false
	}
	p := s.Current()
	return p.TurnsTaken%2 == 0 && !s.Turn.Deployed && len(p.Hand) > 0
}

// WillDeployBeAvailable reports whether the player's next turn falls on the
// deployment cadence.
func WillDeployBeAvailable(s *GameState, player int) bool {
	taken := s.Players[player].TurnsTaken
	if s.Phase == PhaseTurn && player == s.CurrentPlayer {
		taken++
	}
	return taken%2 == 0
}

// ValidDeploymentTiles returns empty tiles adjacent to a friendly champion and
// not adjacent to any enemy. A player with no champion on the board has none.
func ValidDeploymentTiles(s *GameState) []hex.Coord {
	if !CanDeployThisTurn(s) {
		return nil
	}
	me := s.CurrentPlayer
	var out []hex.Coord
	for _, t := range s.Board {
		if !t.Empty() {
			continue
		}
		friendly, hostile := false, false
		for _, n := range t.Coord.Neighbors() {
			if other, ok := s.OccupantAt(n); ok {
				if other.Owner == me {
					friendly = true
				} else {
					hostile = true
				}
			}
		}
		if friendly && !hostile {
			out = append(out, t.Coord)
		}
	}
	return out
}

// HasAbilityAvailable reports whether a champion of the current player can
// use its class ability now.
func HasAbilityAvailable(s *GameState, id CardID) bool {
	ch, ok := ownChampion(s, id)
	if !ok || s.UsedAbilities[id] || s.Turn.Attacked[id] {
		return false
	}
	switch s.Cards[id].Class {
	case ClassDefender:
		return true
	default:
		return len(enemiesAdjacent(s, ch.Position, ch.Owner)) > 0
	}
}

// AbilityName returns the display name of a class ability.
func AbilityName(c Class) string {
	switch c {
	case ClassDefender:
		return "Heal"
	case ClassAttacker:
		return "Cleave"
	default:
		return "Lifesteal"
	}
}

// ProjectedPoints is what a player would score if the round ended now.
func ProjectedPoints(s *GameState, player int) int {
	total := 0
	for _, ch := range PlayerChampionsOnBoard(s, player) {
		if t, ok := s.TileAt(ch.Position); ok {
			total += t.Points
		}
	}
	return total
}

// InHand reports whether the current player holds id.
func InHand(s *GameState, id CardID) bool {
	return slices.Contains(s.Current().Hand, id)
}
