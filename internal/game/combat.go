package game

import (
	"fmt"

	"github.com/peterkuimelis/hexarena/internal/hex"
	"github.com/peterkuimelis/hexarena/internal/log"
)

// CombatResult records every term of one damage resolution.
type CombatResult struct {
	Attacker      CardID
	Defender      CardID
	AttackerOwner int
	DefenderOwner int
	From          hex.Coord // attacker position before resolution
	At            hex.Coord // defender position

	BaseAttack      int
	LoneWolf        int
	EffectiveAttack int

	BaseDefense      int
	FriendlyAdj      int
	HostileAdj       int
	EffectiveDefense int

	Damage          int
	RemainingHealth int
	Destroyed       bool
	Healed          int // lifesteal only
}

// adjacency counts the occupied neighbours of c as friendly (owned by owner)
// or hostile, ignoring the champion skip.
func adjacency(s *GameState, c hex.Coord, owner int, skip CardID) (friendly, hostile int) {
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

// calculateCombat evaluates the damage formula on s without changing it.
// The attacker itself does not count toward the defender's hostile adjacency.
func calculateCombat(s *GameState, attackerID, defenderID CardID) CombatResult {
	a := s.Champions[attackerID]
	d := s.Champions[defenderID]
	aCard := s.Cards[attackerID]
	dCard := s.Cards[defenderID]

	res := CombatResult{
		Attacker:      attackerID,
		Defender:      defenderID,
		AttackerOwner: a.Owner,
		DefenderOwner: d.Owner,
		From:          a.Position,
		At:            d.Position,
		BaseAttack:    aCard.Attack,
		BaseDefense:   dCard.Defense,
	}

	res.FriendlyAdj, res.HostileAdj = adjacency(s, d.Position, d.Owner, attackerID)
	res.EffectiveDefense = dCard.Defense + res.FriendlyAdj - res.HostileAdj

	if attackerFriends, _ := adjacency(s, a.Position, a.Owner, attackerID); attackerFriends == 0 {
		res.LoneWolf = LoneWolfBonus
	}
	res.EffectiveAttack = aCard.Attack + res.LoneWolf

	res.Damage = max(0, res.EffectiveAttack-res.EffectiveDefense)
	res.RemainingHealth = max(0, d.Health-res.Damage)
	res.Destroyed = res.RemainingHealth <= 0
	return res
}

// applyCombat writes a resolution to the board. On a kill the defender's card
// is discarded, the attacker's owner scores, and, when advance is set, the
// attacker steps into the vacated tile.
func (s *GameState) applyCombat(res CombatResult, advance bool) {
	s.emit(log.GameEvent{
		Type:   log.EventDamageCalc,
		Player: res.AttackerOwner,
		Card:   string(res.Attacker),
		Target: string(res.Defender),
		From:   res.From,
		To:     res.At,
		Amount: res.Damage,
		Values: []int{res.EffectiveAttack, res.EffectiveDefense},
	})

	d := s.Champions[res.Defender]
	d.Health = res.RemainingHealth
	s.Champions[res.Defender] = d
	if !res.Destroyed {
		return
	}

	s.destroy(res.Defender)
	s.Players[res.AttackerOwner].Score += KillScore
	s.emit(log.GameEvent{Type: log.EventScore, Player: res.AttackerOwner, Amount: KillScore, Label: "kill"})
	if advance {
		s.relocate(res.Attacker, res.At)
		s.emit(log.GameEvent{Type: log.EventAdvance, Player: res.AttackerOwner, Card: string(res.Attacker), From: res.From, To: res.At})
	}
	s.checkElimination(res.DefenderOwner)
}

// validateStrike checks the shared preconditions of a single-target strike.
func validateStrike(s *GameState, op string, attackerID, targetID CardID) error {
	if s.Phase != PhaseTurn {
		return fmt.Errorf("%s: %w", op, ErrWrongPhase)
	}
	a, ok := s.Champions[attackerID]
	if !ok {
		return fmt.Errorf("%s %s: %w", op, attackerID, ErrUnknownCard)
	}
	if a.Owner != s.CurrentPlayer {
		return fmt.Errorf("%s %s: %w", op, attackerID, ErrNotYourChampion)
	}
	if s.Turn.Attacked[attackerID] {
		return fmt.Errorf("%s %s: %w", op, attackerID, ErrAlreadyAttacked)
	}
	d, ok := s.Champions[targetID]
	if !ok || d.Owner == a.Owner {
		return fmt.Errorf("%s %s → %s: %w", op, attackerID, targetID, ErrNoTarget)
	}
	if !a.Position.IsNeighbor(d.Position) {
		return fmt.Errorf("%s %s → %s: %w", op, attackerID, targetID, ErrNotAdjacent)
	}
	return nil
}

// PreviewAttack evaluates an attack without applying it.
func PreviewAttack(s *GameState, attackerID, targetID CardID) (CombatResult, error) {
	if err := validateStrike(s, "preview attack", attackerID, targetID); err != nil {
		return CombatResult{}, err
	}
	return calculateCombat(s, attackerID, targetID), nil
}

// ResolveAttack performs a basic attack against an adjacent enemy.
func ResolveAttack(s *GameState, attackerID, targetID CardID) (*GameState, error) {
	if err := validateStrike(s, "attack", attackerID, targetID); err != nil {
		return nil, err
	}

	next := s.Clone()
	next.emit(log.GameEvent{Type: log.EventAttackDeclare, Player: next.CurrentPlayer, Card: string(attackerID), Target: string(targetID)})
	res := calculateCombat(next, attackerID, targetID)
	next.applyCombat(res, true)
	next.Turn.Attacked[attackerID] = true
	next.LastCombat = []CombatResult{res}
	return next, nil
}
