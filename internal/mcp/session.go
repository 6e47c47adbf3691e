package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peterkuimelis/hexarena/internal/ai"
	"github.com/peterkuimelis/hexarena/internal/game"
	"github.com/peterkuimelis/hexarena/internal/log"
	"github.com/peterkuimelis/hexarena/internal/match"
	"github.com/peterkuimelis/hexarena/internal/net"
)

// DecisionType identifies what kind of decision the game engine is waiting for.
type DecisionType string

const (
	DecisionChooseAction DecisionType = "choose_action"
	DecisionGameOver     DecisionType = "game_over"
)

// PendingDecision represents a decision the game engine is waiting for.
type PendingDecision struct {
	Type    DecisionType     `json:"type"`
	Player  int              `json:"player"`
	State   *net.StateView   `json:"state"`
	Actions []net.ActionView `json:"actions,omitempty"`

	game *game.GameState // state the decision was asked on
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	GameID   string          `json:"game_id"`
	Events   []net.EventView `json:"events"`
	State    *net.StateView  `json:"state,omitempty"`
	Pending  *PendingView    `json:"pending,omitempty"`
	GameOver bool            `json:"game_over"`
	Winner   int             `json:"winner"`
	Result   string          `json:"result,omitempty"`
}

// PendingView is the pending decision as presented in the tool response JSON.
type PendingView struct {
	Type      DecisionType     `json:"type"`
	ForPlayer string           `json:"for_player"`
	Actions   []net.ActionView `json:"actions,omitempty"`
}

// SessionConfig describes a new game against AI seats.
type SessionConfig struct {
	Roster     *game.RosterFile
	Players    int
	Seat       int // seat played through the tools
	Difficulty ai.Difficulty
	Seed       uint64
	MaxRounds  int
	Log        *zap.Logger
}

// Session holds the state of a single MCP game.
type Session struct {
	ID   string
	seat int

	ctrl   *MCPController
	match  *match.Match
	cancel context.CancelFunc

	pendingCh      chan *PendingDecision
	currentPending *PendingDecision
	turn           sync.Mutex // serialises tool calls on this session

	mu       sync.Mutex
	events   []net.EventView
	gameOver bool
	winner   int
	result   string
}

// NewSession creates the game and starts the match. Every seat other than
// cfg.Seat is played by the AI.
func NewSession(cfg SessionConfig) (*Session, error) {
	if cfg.Seat < 0 || cfg.Seat >= cfg.Players {
		return nil, fmt.Errorf("seat %d out of range for %d players", cfg.Seat, cfg.Players)
	}
	ids := cfg.Roster.FactionIDs()
	if len(ids) == 0 {
		return nil, errors.New("roster has no factions")
	}
	zl := cfg.Log
	if zl == nil {
		zl = zap.NewNop()
	}

	sess := &Session{
		ID:        uuid.NewString(),
		seat:      cfg.Seat,
		pendingCh: make(chan *PendingDecision, 1),
		winner:    -1,
	}
	sess.ctrl = NewMCPController(cfg.Seat, sess)

	mcfg := match.Config{
		Game:      game.GameConfig{Seed: cfg.Seed},
		Log:       zl.With(zap.String("game_id", sess.ID)),
		MaxRounds: cfg.MaxRounds,
	}
	seats := make([]match.Controller, cfg.Players)
	for i := range seats {
		faction := ids[i%len(ids)]
		deck, err := cfg.Roster.DeckFor(faction)
		if err != nil {
			return nil, err
		}
		mcfg.Game.Players = append(mcfg.Game.Players, game.PlayerConfig{FactionID: faction, Deck: deck})
		if i == cfg.Seat {
			seats[i] = sess.ctrl
		} else {
			seats[i] = ai.NewController(i, cfg.Difficulty, cfg.Seed)
		}
	}

	m, err := match.New(mcfg, seats...)
	if err != nil {
		return nil, err
	}
	sess.match = m

	ctx, cancel := context.WithCancel(context.Background())
	sess.cancel = cancel

	// Start the match in a goroutine
	go func() {
		out, err := m.Run(ctx)
		result := net.Result(out)
		if err != nil {
			result = fmt.Sprintf("error: %v", err)
		}

		sess.mu.Lock()
		sess.gameOver = true
		sess.winner = out.Winner
		sess.result = result
		sess.mu.Unlock()

		select {
		case sess.pendingCh <- &PendingDecision{
			Type:   DecisionGameOver,
			Player: out.Winner,
			State:  net.BuildStateView(m.State, sess.seat),
			game:   m.State,
		}:
		case <-ctx.Done():
		}
	}()

	return sess, nil
}

// Close stops the match.
func (s *Session) Close() {
	s.cancel()
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *Session) appendEvent(ev net.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *Session) drainEvents() []net.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	if events == nil {
		events = []net.EventView{}
	}
	return events
}

// waitForPending blocks until the next decision arrives from the match,
// then builds a ToolResponse with accumulated events + the pending decision.
// Must be called with turn held.
func (s *Session) waitForPending(ctx context.Context) (*ToolResponse, error) {
	select {
	case pending := <-s.pendingCh:
		s.currentPending = pending
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return s.snapshot(), nil
}

// snapshot reports the current pending decision without waiting. Must be
// called with turn held.
func (s *Session) snapshot() *ToolResponse {
	resp := &ToolResponse{GameID: s.ID, Events: s.drainEvents(), Winner: -1}
	pending := s.currentPending
	if pending == nil {
		return resp
	}
	resp.State = pending.State

	if pending.Type == DecisionGameOver {
		s.mu.Lock()
		resp.GameOver = true
		resp.Winner = s.winner
		resp.Result = s.result
		s.mu.Unlock()
		return resp
	}

	resp.Pending = &PendingView{
		Type:      pending.Type,
		ForPlayer: s.playerLabel(pending.Player),
		Actions:   pending.Actions,
	}
	return resp
}

// playerLabel returns "you" for the tool seat and the player name otherwise.
func (s *Session) playerLabel(player int) string {
	if player == s.seat {
		return "you"
	}
	return log.PlayerName(player)
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp any) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
