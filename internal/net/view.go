package net

import (
	"github.com/peterkuimelis/hexarena/internal/game"
	"github.com/peterkuimelis/hexarena/internal/log"
)

// BuildStateView creates a StateView from the perspective of the given player.
func BuildStateView(state *game.GameState, player int) *StateView {
	sv := &StateView{
		Round:         state.TurnNumber,
		Phase:         state.Phase.String(),
		You:           player,
		CurrentPlayer: state.CurrentPlayer,
		IsYourTurn:    state.CurrentPlayer == player && !state.Over(),
		TurnOrder:     append([]int(nil), state.TurnOrder...),
		Winner:        state.Winner,
	}

	for _, p := range state.Players {
		pv := PlayerView{
			ID:           p.ID,
			Name:         log.PlayerName(p.ID),
			Faction:      p.FactionID,
			Score:        p.Score,
			Projected:    game.ProjectedPoints(state, p.ID),
			HandCount:    len(p.Hand),
			DeckCount:    len(p.DrawPile),
			DiscardCount: len(p.Discard),
			Eliminated:   p.Eliminated,
		}
		// Hand names (visible to you)
		if p.ID == player {
			for _, id := range p.Hand {
				pv.Hand = append(pv.Hand, CardViewOf(state.Cards[id]))
			}
		}
		sv.Players = append(sv.Players, pv)
	}

	for _, t := range state.Board {
		tv := TileView{Q: t.Coord.Q, R: t.Coord.R, Points: t.Points, Owner: -1}
		if !t.Empty() {
			ch := state.Champions[t.Occupant]
			card := state.Cards[t.Occupant]
			tv.Card = string(t.Occupant)
			tv.Name = card.Name
			tv.Owner = ch.Owner
			tv.Health = ch.Health
			tv.MaxHealth = card.MaxHealth
			tv.Attack = card.Attack
			tv.Defense = card.Defense
			tv.Class = card.Class.String()
			tv.Ability = !state.UsedAbilities[t.Occupant]
		}
		sv.Board = append(sv.Board, tv)
	}

	if state.CurrentPlayer == player {
		for _, id := range game.DraftOptions(state) {
			sv.DraftOptions = append(sv.DraftOptions, CardViewOf(state.Cards[id]))
		}
		sv.Deploy = game.CanDeployThisTurn(state)
	}
	return sv
}

// CardViewOf describes a card template.
func CardViewOf(c *game.Card) CardView {
	return CardView{
		ID:      string(c.ID),
		Name:    c.Name,
		Attack:  c.Attack,
		Defense: c.Defense,
		Class:   c.Class.String(),
	}
}

// BuildEventView converts a game event for the wire.
func BuildEventView(e log.GameEvent) EventView {
	return EventView{
		Seq:     e.Seq,
		Round:   e.Round,
		Phase:   e.Phase,
		Player:  e.Player,
		Type:    e.Type.String(),
		Card:    e.CardName,
		Target:  e.TargetName,
		Details: log.Describe(e),
	}
}

// BuildActionViews numbers the actions from zero.
func BuildActionViews(actions []game.Action) []ActionView {
	views := make([]ActionView, len(actions))
	for i, a := range actions {
		views[i] = ActionView{Index: i, Type: a.Type.String(), Desc: a.String()}
	}
	return views
}
