package game

import (
	"fmt"

	"github.com/peterkuimelis/hexarena/internal/log"
)

// validateAbility checks the preconditions shared by every class ability.
func validateAbility(s *GameState, op string, id CardID, class Class) error {
	if s.Phase != PhaseTurn {
		return fmt.Errorf("%s: %w", op, ErrWrongPhase)
	}
	ch, ok := s.Champions[id]
	if !ok {
		return fmt.Errorf("%s %s: %w", op, id, ErrUnknownCard)
	}
	if ch.Owner != s.CurrentPlayer {
		return fmt.Errorf("%s %s: %w", op, id, ErrNotYourChampion)
	}
	if s.Cards[id].Class != class {
		return fmt.Errorf("%s %s: %w", op, id, ErrWrongClass)
	}
	if s.UsedAbilities[id] {
		return fmt.Errorf("%s %s: %w", op, id, ErrAbilityUsed)
	}
	if s.Turn.Attacked[id] {
		return fmt.Errorf("%s %s: %w", op, id, ErrAlreadyAttacked)
	}
	return nil
}

func (s *GameState) markAbility(id CardID, class Class) {
	s.UsedAbilities[id] = true
	s.Turn.Attacked[id] = true
	s.emit(log.GameEvent{Type: log.EventAbility, Player: s.CurrentPlayer, Card: string(id), Label: AbilityName(class)})
}

// ResolveDefenderAbility heals a defender by HealAmount, capped at max health.
func ResolveDefenderAbility(s *GameState, id CardID) (*GameState, error) {
	if err := validateAbility(s, "heal", id, ClassDefender); err != nil {
		return nil, err
	}

	next := s.Clone()
	next.markAbility(id, ClassDefender)
	ch := next.Champions[id]
	healed := min(HealAmount, next.Cards[id].MaxHealth-ch.Health)
	ch.Health += healed
	next.Champions[id] = ch
	next.emit(log.GameEvent{Type: log.EventHeal, Player: ch.Owner, Card: string(id), Amount: healed})
	next.LastCombat = nil
	return next, nil
}

// ResolveAttackerAbility strikes every adjacent enemy in neighbour order. Each
// strike is computed against the board as left by the previous one, so a kill
// can change the adjacency terms of later strikes. The attacker never moves.
func ResolveAttackerAbility(s *GameState, id CardID) (*GameState, error) {
	if err := validateAbility(s, "cleave", id, ClassAttacker); err != nil {
		return nil, err
	}
	ch := s.Champions[id]
	targets := enemiesAdjacent(s, ch.Position, ch.Owner)
	if len(targets) == 0 {
		return nil, fmt.Errorf("cleave %s: %w", id, ErrNoTarget)
	}

	next := s.Clone()
	next.markAbility(id, ClassAttacker)
	results := make([]CombatResult, 0, len(targets))
	for _, t := range targets {
		if _, alive := next.Champions[t.Card]; !alive {
			continue
		}
		res := calculateCombat(next, id, t.Card)
		next.applyCombat(res, false)
		results = append(results, res)
	}
	next.LastCombat = results
	return next, nil
}

// previewLifesteal adds the attacker's heal to a combat calculation.
func previewLifesteal(s *GameState, id, targetID CardID) CombatResult {
	res := calculateCombat(s, id, targetID)
	missing := s.Cards[id].MaxHealth - s.Champions[id].Health
	res.Healed = min(res.Damage, missing)
	return res
}

// PreviewBruiserAbility evaluates Lifesteal without applying it.
func PreviewBruiserAbility(s *GameState, id, targetID CardID) (CombatResult, error) {
	if err := validateAbility(s, "preview lifesteal", id, ClassBruiser); err != nil {
		return CombatResult{}, err
	}
	if err := validateStrike(s, "preview lifesteal", id, targetID); err != nil {
		return CombatResult{}, err
	}
	return previewLifesteal(s, id, targetID), nil
}

// ResolveBruiserAbility strikes one adjacent enemy and heals the bruiser by
// the damage dealt, capped at its missing health. A kill advances the bruiser.
func ResolveBruiserAbility(s *GameState, id, targetID CardID) (*GameState, error) {
	if err := validateAbility(s, "lifesteal", id, ClassBruiser); err != nil {
		return nil, err
	}
	if err := validateStrike(s, "lifesteal", id, targetID); err != nil {
		return nil, err
	}

	next := s.Clone()
	next.markAbility(id, ClassBruiser)
	res := previewLifesteal(next, id, targetID)
	next.applyCombat(res, true)
	if res.Healed > 0 {
		ch := next.Champions[id]
		ch.Health += res.Healed
		next.Champions[id] = ch
		next.emit(log.GameEvent{Type: log.EventHeal, Player: ch.Owner, Card: string(id), Amount: res.Healed})
	}
	next.LastCombat = []CombatResult{res}
	return next, nil
}
