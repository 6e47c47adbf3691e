package game

import (
	"slices"

	"github.com/peterkuimelis/hexarena/internal/log"
)

// BoardDefense sums the base defense of a player's champions on the board.
func BoardDefense(s *GameState, player int) int {
	total := 0
	for _, ch := range PlayerChampionsOnBoard(s, player) {
		total += s.Cards[ch.Card].Defense
	}
	return total
}

// FirstPlayer returns the player with the highest board defense; ties go to
// the lower player id.
func FirstPlayer(s *GameState) int {
	best, bestDef := -1, 0
	for _, id := range s.Alive() {
		def := BoardDefense(s, id)
		if best < 0 || def > bestDef {
			best, bestDef = id, def
		}
	}
	return best
}

// RotationFrom returns the non-eliminated players in seat order starting at first.
func RotationFrom(s *GameState, first int) []int {
	alive := s.Alive()
	start := slices.Index(alive, first)
	if start < 0 {
		return alive
	}
	return append(slices.Clone(alive[start:]), alive[:start]...)
}

// RebuildTurnOrder orders the non-eliminated players by score descending,
// then board defense descending, then player id.
func RebuildTurnOrder(s *GameState) []int {
	order := s.Alive()
	defense := make(map[int]int, len(order))
	for _, id := range order {
		defense[id] = BoardDefense(s, id)
	}
	slices.SortStableFunc(order, func(a, b int) int {
		if d := s.Players[b].Score - s.Players[a].Score; d != 0 {
			return d
		}
		return defense[b] - defense[a]
	})
	return order
}

// ShouldEliminate reports whether a player has nothing left anywhere: no
// champions on the board, no hand and no draw pile.
func ShouldEliminate(s *GameState, player int) bool {
	p := &s.Players[player]
	return len(p.Hand) == 0 && len(p.DrawPile) == 0 && len(PlayerChampionsOnBoard(s, player)) == 0
}

// checkElimination flags a player once they meet the elimination condition.
// Elimination is permanent.
func (s *GameState) checkElimination(player int) {
	p := &s.Players[player]
	if p.Eliminated || !ShouldEliminate(s, player) {
		return
	}
	p.Eliminated = true
	s.emit(log.GameEvent{Type: log.EventEliminated, Player: player})
}

// CheckVictory returns the winner if the game is decided: a score at or
// above VictoryScore (highest score wins, ties to the lower id), or a single
// surviving player.
func CheckVictory(s *GameState) (winner int, reason string, ok bool) {
	leader := -1
	for _, p := range s.Players {
		if p.Score >= VictoryScore && (leader < 0 || p.Score > s.Players[leader].Score) {
			leader = p.ID
		}
	}
	if leader >= 0 {
		return leader, "score", true
	}

	alive := s.Alive()
	switch len(alive) {
	case 1:
		return alive[0], "last player standing", true
	case 0:
		best := 0
		for _, p := range s.Players {
			if p.Score > s.Players[best].Score {
				best = p.ID
			}
		}
		return best, "all players eliminated", true
	}
	return -1, "", false
}

// scoreRound awards every non-eliminated owner the points of the tiles they hold.
func (s *GameState) scoreRound() {
	gained := make([]int, len(s.Players))
	for _, t := range s.Board {
		if t.Empty() || t.Points == 0 {
			continue
		}
		owner := s.Champions[t.Occupant].Owner
		if s.Players[owner].Eliminated {
			continue
		}
		gained[owner] += t.Points
	}
	for id, pts := range gained {
		if pts == 0 {
			continue
		}
		s.Players[id].Score += pts
		s.emit(log.GameEvent{Type: log.EventScore, Player: id, Amount: pts, Label: "territory"})
	}
}
