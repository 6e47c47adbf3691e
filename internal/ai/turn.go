package ai

import (
	"math/rand/v2"

	"github.com/peterkuimelis/hexarena/internal/game"
)

// PlanTurn plans the current player's whole turn. The plan is ordered, each
// action is valid on the state produced by the ones before it, and the last
// action ends the turn. It returns nil outside the turn phase.
func PlanTurn(s *game.GameState, d Difficulty, r *rand.Rand) []game.Action {
	if s.Phase != game.PhaseTurn {
		return nil
	}
	p := newPlanner(s)
	switch d {
	case Easy:
		p.easyTurn(r)
	case Medium:
		p.mediumTurn()
	default:
		p.hardTurn()
	}
	return p.finish()
}

func (p *planner) easyTurn(r *rand.Rand) {
	for {
		a := pick(r, game.LegalActions(p.cur))
		if a.Type == game.ActionEndTurn || !p.do(a) {
			return
		}
	}
}

// --- Medium: greedy per champion ---

func (p *planner) mediumTurn() {
	if game.CanDeployThisTurn(p.cur) {
		if tiles := game.ValidDeploymentTiles(p.cur); len(tiles) > 0 {
			best := tiles[0]
			for _, c := range tiles[1:] {
				if tileValue(p.cur, c, p.me, "") > tileValue(p.cur, best, p.me, "") {
					best = c
				}
			}
			p.do(game.NewDeployAction(p.cur, strongestInHand(p.cur), best))
		}
	}

	for _, ch := range game.PlayerChampionsOnBoard(p.cur, p.me) {
		id := ch.Card
		from := p.cur.Champions[id].Position
		best, bestVal := from, tileValue(p.cur, from, p.me, id)
		for _, c := range game.ValidMoves(p.cur, id) {
			if v := tileValue(p.cur, c, p.me, id); v > bestVal {
				best, bestVal = c, v
			}
		}
		if best != from {
			p.do(game.NewMoveAction(p.cur, id, best))
		}
	}

	for _, ch := range game.PlayerChampionsOnBoard(p.cur, p.me) {
		p.mediumStrike(ch.Card)
	}
}

func (p *planner) mediumStrike(id game.CardID) {
	if p.cur.Turn.Attacked[id] {
		return
	}
	ch := p.cur.Champions[id]
	card := p.cur.Cards[id]
	if game.HasAbilityAvailable(p.cur, id) {
		switch card.Class {
		case game.ClassDefender:
			if ch.Health*2 < card.MaxHealth {
				p.do(game.NewHealAction(p.cur, id))
				return
			}
		case game.ClassAttacker:
			if len(game.AttackTargets(p.cur, id)) >= 2 {
				p.do(game.NewCleaveAction(p.cur, id))
				return
			}
		}
	}
	if target, v := bestStrike(p.cur, id); target != "" && v > 0 {
		p.do(game.NewAttackAction(p.cur, id, target))
	}
}

// --- Hard: simulate and score ---

func (p *planner) hardTurn() {
	if game.CanDeployThisTurn(p.cur) {
		if tiles := game.ValidDeploymentTiles(p.cur); len(tiles) > 0 {
			if id, at := bestPairing(p.cur, tiles, game.PlayChampionFromHand); id != "" {
				p.do(game.NewDeployAction(p.cur, id, at))
			}
		}
	}

	for _, ch := range game.PlayerChampionsOnBoard(p.cur, p.me) {
		p.hardMove(ch.Card)
	}
	for _, ch := range game.PlayerChampionsOnBoard(p.cur, p.me) {
		p.hardStrike(ch.Card)
	}
}

// positionValue scores a state plus the best attack id could make from it.
func (p *planner) positionValue(s *game.GameState, id game.CardID) float64 {
	_, strike := bestStrike(s, id)
	return score(s, p.me) + float64(strike)*0.5
}

// hardMove compares staying put with every legal step or swap for id.
func (p *planner) hardMove(id game.CardID) {
	if p.cur.Turn.Moved[id] {
		return
	}
	dests := game.ValidMoves(p.cur, id)
	for _, other := range game.SwapTargets(p.cur, id) {
		dests = append(dests, other.Position)
	}

	var (
		best    game.Action
		found   bool
		bestVal = p.positionValue(p.cur, id)
	)
	for _, c := range dests {
		a := game.NewMoveAction(p.cur, id, c)
		next, err := a.Apply(p.cur)
		if err != nil {
			continue
		}
		if v := p.positionValue(next, id); v > bestVal {
			best, bestVal, found = a, v, true
		}
	}
	if found {
		p.do(best)
	}
}

// hardStrike picks the best attack or ability for id, if any improves the board.
func (p *planner) hardStrike(id game.CardID) {
	if p.cur.Turn.Attacked[id] {
		return
	}
	var candidates []game.Action
	targets := game.AttackTargets(p.cur, id)
	for _, t := range targets {
		candidates = append(candidates, game.NewAttackAction(p.cur, id, t.Card))
	}
	if game.HasAbilityAvailable(p.cur, id) {
		switch p.cur.Cards[id].Class {
		case game.ClassDefender:
			candidates = append(candidates, game.NewHealAction(p.cur, id))
		case game.ClassAttacker:
			candidates = append(candidates, game.NewCleaveAction(p.cur, id))
		case game.ClassBruiser:
			for _, t := range targets {
				candidates = append(candidates, game.NewLifestealAction(p.cur, id, t.Card))
			}
		}
	}

	var (
		best    game.Action
		found   bool
		bestVal = score(p.cur, p.me)
	)
	for _, a := range candidates {
		next, err := a.Apply(p.cur)
		if err != nil {
			continue
		}
		v := score(next, p.me)
		switch a.Type {
		case game.ActionHeal, game.ActionCleave:
			v -= abilityReserve
		case game.ActionLifesteal:
			v += p.lifestealBonus(id, next) - abilityReserve
		}
		if v > bestVal {
			best, bestVal, found = a, v, true
		}
	}
	if found {
		p.do(best)
	}
}

// lifestealBonus weights the heal by how hurt the bruiser was.
func (p *planner) lifestealBonus(id game.CardID, next *game.GameState) float64 {
	if len(next.LastCombat) == 0 {
		return 0
	}
	card := p.cur.Cards[id]
	missing := card.MaxHealth - p.cur.Champions[id].Health
	return float64(next.LastCombat[0].Healed) * float64(missing) / float64(card.MaxHealth)
}
