package ai

import (
	"github.com/peterkuimelis/hexarena/internal/game"
	"github.com/peterkuimelis/hexarena/internal/hex"
)

const (
	winValue         = 1000
	criticalBonus    = 2  // per enemy champion at or below a quarter of its health
	eliminationBonus = 25 // per eliminated opponent
	abilityReserve   = 1.5
)

// adjacency counts occupied neighbours of c as friendly to owner or hostile,
// ignoring the champion skip.
func adjacency(s *game.GameState, c hex.Coord, owner int, skip game.CardID) (friendly, hostile int) {
	for _, n := range c.Neighbors() {
		other, ok := s.OccupantAt(n)
		if !ok || other.Card == skip {
			continue
		}
		if other.Owner == owner {
			friendly++
		} else {
			hostile++
		}
	}
	return friendly, hostile
}

// score rates a board from me's point of view.
func score(s *game.GameState, me int) float64 {
	if s.Over() {
		if s.Winner == me {
			return winValue
		}
		return -winValue
	}

	v := float64(s.Players[me].Score) * 2
	for _, t := range s.Board {
		if t.Empty() {
			continue
		}
		ch := s.Champions[t.Occupant]
		card := s.Cards[ch.Card]
		if ch.Owner == me {
			friendly, _ := adjacency(s, t.Coord, me, ch.Card)
			v += float64(t.Points)*3 + float64(ch.Health)*0.3 + float64(card.Attack)*0.5 + float64(friendly)*0.5
			continue
		}
		v -= float64(t.Points) * 2
		if ch.Health*4 <= card.MaxHealth {
			v += criticalBonus
		}
	}
	for _, p := range s.Players {
		if p.ID != me && p.Eliminated {
			v += eliminationBonus
		}
	}
	return v
}

// tileValue is the greedy positional value of standing on c.
func tileValue(s *game.GameState, c hex.Coord, owner int, self game.CardID) int {
	t, _ := s.TileAt(c)
	friendly, hostile := adjacency(s, c, owner, self)
	return t.Points*3 - hex.Distance(c, hex.Origin) - 2*hostile + friendly
}

// strikeValue is damage*2 plus 15 for a kill.
func strikeValue(r game.CombatResult) int {
	v := r.Damage * 2
	if r.Destroyed {
		v += 15
	}
	return v
}

// bestStrike returns the best plain attack available to id, if any.
func bestStrike(s *game.GameState, id game.CardID) (target game.CardID, value int) {
	if s.Turn.Attacked[id] {
		return "", 0
	}
	for _, t := range game.AttackTargets(s, id) {
		res, err := game.PreviewAttack(s, id, t.Card)
		if err != nil {
			continue
		}
		if v := strikeValue(res); target == "" || v > value {
			target, value = t.Card, v
		}
	}
	return target, value
}
