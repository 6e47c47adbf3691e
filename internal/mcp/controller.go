package mcp

import (
	"context"

	"github.com/peterkuimelis/hexarena/internal/game"
	"github.com/peterkuimelis/hexarena/internal/log"
	"github.com/peterkuimelis/hexarena/internal/net"
)

// MCPController implements match.Controller by sending decisions to the
// session's pending channel and blocking on a response channel.
type MCPController struct {
	player     int
	session    *Session
	responseCh chan int
}

// NewMCPController creates a controller for the given player.
func NewMCPController(player int, session *Session) *MCPController {
	return &MCPController{
		player:     player,
		session:    session,
		responseCh: make(chan int),
	}
}

// ChooseAction implements match.Controller.
func (c *MCPController) ChooseAction(ctx context.Context, state *game.GameState, actions []game.Action) (game.Action, error) {
	pending := &PendingDecision{
		Type:    DecisionChooseAction,
		Player:  c.player,
		State:   net.BuildStateView(state, c.player),
		Actions: net.BuildActionViews(actions),
		game:    state,
	}
	select {
	case c.session.pendingCh <- pending:
	case <-ctx.Done():
		return game.Action{}, ctx.Err()
	}

	var index int
	select {
	case index = <-c.responseCh:
	case <-ctx.Done():
		return game.Action{}, ctx.Err()
	}

	if index < 0 || index >= len(actions) {
		return actions[0], nil
	}
	return actions[index], nil
}

// Notify implements match.Controller. Events are buffered until the next
// tool response.
func (c *MCPController) Notify(ctx context.Context, event log.GameEvent) error {
	c.session.appendEvent(net.BuildEventView(event))
	return nil
}
