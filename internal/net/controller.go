package net

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/peterkuimelis/hexarena/internal/game"
	"github.com/peterkuimelis/hexarena/internal/log"
)

// NetworkController implements match.Controller over a connection.
type NetworkController struct {
	conn   net.Conn
	enc    *json.Encoder
	dec    *json.Decoder
	player int // seat this controller plays
	mu     sync.Mutex
}

// NewNetworkController creates a new controller for the given connection.
func NewNetworkController(conn net.Conn, player int) *NetworkController {
	return &NetworkController{
		conn:   conn,
		enc:    json.NewEncoder(conn),
		dec:    json.NewDecoder(conn),
		player: player,
	}
}

// send sends a server message to the client. Must be called with mu held.
func (nc *NetworkController) send(msg ServerMessage) error {
	return nc.enc.Encode(msg)
}

// recv reads a client message. Must be called with mu held.
func (nc *NetworkController) recv() (ClientMessage, error) {
	var msg ClientMessage
	err := nc.dec.Decode(&msg)
	return msg, err
}

// ChooseAction implements match.Controller.
func (nc *NetworkController) ChooseAction(ctx context.Context, state *game.GameState, actions []game.Action) (game.Action, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return game.Action{}, err
	}
	// Unblock a pending read when the match is cancelled.
	stop := context.AfterFunc(ctx, func() { nc.conn.SetDeadline(time.Now()) })
	defer stop()

	msg := ServerMessage{
		Type:    "choose_action",
		Actions: BuildActionViews(actions),
		State:   BuildStateView(state, nc.player),
	}
	if err := nc.send(msg); err != nil {
		return game.Action{}, fmt.Errorf("send choose_action: %w", err)
	}

	resp, err := nc.recv()
	if err != nil {
		if ctx.Err() != nil {
			return game.Action{}, ctx.Err()
		}
		return game.Action{}, fmt.Errorf("recv action: %w", err)
	}

	if resp.Index < 0 || resp.Index >= len(actions) {
		return actions[0], nil // fallback to first action
	}
	return actions[resp.Index], nil
}

// Notify implements match.Controller.
func (nc *NetworkController) Notify(ctx context.Context, event log.GameEvent) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	ev := BuildEventView(event)
	return nc.send(ServerMessage{Type: "notify", Event: &ev})
}

// SendGameOver sends a game_over message to the client.
func (nc *NetworkController) SendGameOver(winner int, result string) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.send(ServerMessage{Type: "game_over", Winner: winner, Result: result})
}

// Close closes the underlying connection.
func (nc *NetworkController) Close() error {
	return nc.conn.Close()
}
