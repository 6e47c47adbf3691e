package game

import (
	"fmt"
	"strings"

	"github.com/peterkuimelis/hexarena/internal/hex"
)

// --- Action types ---

type ActionType int

const (
	ActionDraft ActionType = iota
	ActionLeaveInterstitial
	ActionPlace
	ActionDraw
	ActionMove
	ActionAttack
	ActionHeal
	ActionCleave
	ActionLifesteal
	ActionDeploy
	ActionEndTurn
)

func (a ActionType) String() string {
	switch a {
	case ActionDraft:
		return "Draft"
	case ActionLeaveInterstitial:
		return "Continue"
	case ActionPlace:
		return "Place"
	case ActionDraw:
		return "Draw"
	case ActionMove:
		return "Move"
	case ActionAttack:
		return "Attack"
	case ActionHeal:
		return "Heal"
	case ActionCleave:
		return "Cleave"
	case ActionLifesteal:
		return "Lifesteal"
	case ActionDeploy:
		return "Deploy"
	case ActionEndTurn:
		return "End Turn"
	default:
		return "Unknown"
	}
}

// Action is one player intent. Apply dispatches it to exactly one public
// engine operation, so an Action can never bypass the engine's rules.
type Action struct {
	Type      ActionType
	Player    int
	Card      CardID    // acting card (placed, deployed, moved, attacking)
	Target    CardID    // attack or lifesteal target; swap partner
	To        hex.Coord // destination tile
	Selection []CardID  // draft picks
	Desc      string    // human-readable description
}

func (a Action) String() string {
	if a.Desc != "" {
		return a.Desc
	}
	return a.Type.String()
}

// Apply performs the action on s.
func (a Action) Apply(s *GameState) (*GameState, error) {
	if s.Over() {
		return nil, fmt.Errorf("apply %s: %w", a.Type, ErrGameOver)
	}
	switch a.Type {
	case ActionDraft:
		return CompleteDraft(s, a.Selection)
	case ActionLeaveInterstitial:
		return LeaveInterstitial(s)
	case ActionPlace:
		return PlaceChampion(s, a.Card, a.To)
	case ActionDraw:
		return AutoDrawCard(s)
	case ActionMove:
		return MoveChampion(s, a.Card, a.To)
	case ActionAttack:
		return ResolveAttack(s, a.Card, a.Target)
	case ActionHeal:
		return ResolveDefenderAbility(s, a.Card)
	case ActionCleave:
		return ResolveAttackerAbility(s, a.Card)
	case ActionLifesteal:
		return ResolveBruiserAbility(s, a.Card, a.Target)
	case ActionDeploy:
		return PlayChampionFromHand(s, a.Card, a.To)
	case ActionEndTurn:
		return EndTurn(s)
	}
	return nil, fmt.Errorf("apply %s: unknown action type", a.Type)
}

// --- Constructors (fill Desc from the state the action is planned on) ---

func NewDraftAction(s *GameState, selection []CardID) Action {
	names := make([]string, len(selection))
	for i, id := range selection {
		names[i] = s.CardName(id)
	}
	return Action{
		Type:      ActionDraft,
		Player:    s.CurrentPlayer,
		Selection: selection,
		Desc:      "Draft " + strings.Join(names, " + "),
	}
}

func NewContinueAction(s *GameState) Action {
	return Action{Type: ActionLeaveInterstitial, Player: s.CurrentPlayer, Desc: "Continue"}
}

func NewPlaceAction(s *GameState, id CardID, at hex.Coord) Action {
	return Action{Type: ActionPlace, Player: s.CurrentPlayer, Card: id, To: at,
		Desc: fmt.Sprintf("Place %s at %s", s.Cards[id], at)}
}

func NewDeployAction(s *GameState, id CardID, at hex.Coord) Action {
	return Action{Type: ActionDeploy, Player: s.CurrentPlayer, Card: id, To: at,
		Desc: fmt.Sprintf("Deploy %s at %s", s.Cards[id], at)}
}

func NewMoveAction(s *GameState, id CardID, to hex.Coord) Action {
	a := Action{Type: ActionMove, Player: s.CurrentPlayer, Card: id, To: to}
	if other, ok := s.OccupantAt(to); ok {
		a.Target = other.Card
		a.Desc = fmt.Sprintf("Swap %s with %s", s.CardName(id), s.CardName(other.Card))
	} else {
		a.Desc = fmt.Sprintf("Move %s %s → %s", s.CardName(id), s.Champions[id].Position, to)
	}
	return a
}

func NewAttackAction(s *GameState, id, target CardID) Action {
	return Action{Type: ActionAttack, Player: s.CurrentPlayer, Card: id, Target: target,
		Desc: fmt.Sprintf("Attack with %s → %s", s.CardName(id), s.CardName(target))}
}

func NewHealAction(s *GameState, id CardID) Action {
	return Action{Type: ActionHeal, Player: s.CurrentPlayer, Card: id,
		Desc: fmt.Sprintf("Heal with %s", s.CardName(id))}
}

func NewCleaveAction(s *GameState, id CardID) Action {
	return Action{Type: ActionCleave, Player: s.CurrentPlayer, Card: id,
		Desc: fmt.Sprintf("Cleave with %s", s.CardName(id))}
}

func NewLifestealAction(s *GameState, id, target CardID) Action {
	return Action{Type: ActionLifesteal, Player: s.CurrentPlayer, Card: id, Target: target,
		Desc: fmt.Sprintf("Lifesteal with %s → %s", s.CardName(id), s.CardName(target))}
}

func NewEndTurnAction(s *GameState) Action {
	return Action{Type: ActionEndTurn, Player: s.CurrentPlayer, Desc: "End turn"}
}

// LegalActions enumerates every action the current player may take.
func LegalActions(s *GameState) []Action {
	var actions []Action
	switch s.Phase {
	case PhaseDraft:
		for _, sel := range combinations(DraftOptions(s), DraftPickCount(s)) {
			actions = append(actions, NewDraftAction(s, sel))
		}
	case PhaseInterstitial:
		actions = append(actions, NewContinueAction(s))
	case PhasePlacement:
		for _, id := range s.Current().Hand {
			for _, c := range ValidPlacementTiles(s) {
				actions = append(actions, NewPlaceAction(s, id, c))
			}
		}
	case PhaseTurn:
		actions = turnActions(s)
	}
	return actions
}

func turnActions(s *GameState) []Action {
	var actions []Action
	if !s.Turn.Drew {
		actions = append(actions, Action{Type: ActionDraw, Player: s.CurrentPlayer, Desc: "Draw"})
	}
	if CanDeployThisTurn(s) {
		tiles := ValidDeploymentTiles(s)
		for _, id := range s.Current().Hand {
			for _, c := range tiles {
				actions = append(actions, NewDeployAction(s, id, c))
			}
		}
	}
	for _, ch := range PlayerChampionsOnBoard(s, s.CurrentPlayer) {
		id := ch.Card
		for _, c := range ValidMoves(s, id) {
			actions = append(actions, NewMoveAction(s, id, c))
		}
		for _, other := range SwapTargets(s, id) {
			actions = append(actions, NewMoveAction(s, id, other.Position))
		}
		if !s.Turn.Attacked[id] {
			for _, t := range AttackTargets(s, id) {
				actions = append(actions, NewAttackAction(s, id, t.Card))
			}
		}
		if HasAbilityAvailable(s, id) {
			switch s.Cards[id].Class {
			case ClassDefender:
				actions = append(actions, NewHealAction(s, id))
			case ClassAttacker:
				actions = append(actions, NewCleaveAction(s, id))
			case ClassBruiser:
				for _, t := range AttackTargets(s, id) {
					actions = append(actions, NewLifestealAction(s, id, t.Card))
				}
			}
		}
	}
	actions = append(actions, NewEndTurnAction(s))
	return actions
}

// combinations returns every k-subset of ids, preserving order.
func combinations(ids []CardID, k int) [][]CardID {
	if k == 0 {
		return [][]CardID{{}}
	}
	var out [][]CardID
	var walk func(start int, acc []CardID)
	walk = func(start int, acc []CardID) {
		if len(acc) == k {
			out = append(out, append([]CardID(nil), acc...))
			return
		}
		for i := start; i < len(ids); i++ {
			walk(i+1, append(acc, ids[i]))
		}
	}
	walk(0, nil)
	return out
}
