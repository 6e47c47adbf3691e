package mcp

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/peterkuimelis/hexarena/internal/ai"
	"github.com/peterkuimelis/hexarena/internal/game"
)

// Options configures a Manager.
type Options struct {
	Roster      *game.RosterFile
	Difficulty  ai.Difficulty // used when start_game names none
	MaxSessions int
	MaxRounds   int
	Log         *zap.Logger
}

// Manager owns the running game sessions and serves the MCP tools.
type Manager struct {
	opts Options
	log  *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
	starting int // slots reserved by start_game calls still in progress
}

// NewManager creates a manager with no sessions.
func NewManager(opts Options) *Manager {
	zl := opts.Log
	if zl == nil {
		zl = zap.NewNop()
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = 16
	}
	return &Manager{opts: opts, log: zl, sessions: make(map[string]*Session)}
}

// RegisterTools adds all game tools to the MCP server.
func (m *Manager) RegisterTools(s *server.MCPServer) {
	s.AddTool(startGameTool(), m.handleStartGame)
	s.AddTool(takeActionTool(), m.handleTakeAction)
	s.AddTool(getGameStateTool(), m.handleGetGameState)
	s.AddTool(previewAttackTool(), m.handlePreviewAttack)
	s.AddTool(endGameTool(), m.handleEndGame)
}

// Close stops every running session.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, sess := range m.sessions {
		sess.Close()
		delete(m.sessions, id)
	}
}

func (m *Manager) session(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	return sess, ok
}

func (m *Manager) remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[id]; ok {
		sess.Close()
		delete(m.sessions, id)
	}
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new hex arena game against AI opponents. Returns a game_id, the initial game state "+
			"and the first pending decision. Every seat except yours is played by the AI."),
		mcp.WithString("difficulty", mcp.Description("AI difficulty"), mcp.Enum("easy", "medium", "hard")),
		mcp.WithNumber("seat", mcp.Description("Your seat: 0 acts first in the draft"), mcp.DefaultNumber(0), mcp.Min(0), mcp.Max(2)),
		mcp.WithNumber("players", mcp.Description("Number of players (2 or 3)"), mcp.DefaultNumber(2), mcp.Min(2), mcp.Max(3)),
		mcp.WithNumber("seed", mcp.Description("RNG seed for a reproducible game; random when omitted"), mcp.Min(0)),
	)
}

func takeActionTool() mcp.Tool {
	return mcp.NewTool("take_action",
		mcp.WithDescription("Choose an action from the pending action list. AI seats then play until you must act again or the game ends."),
		mcp.WithString("game_id", mcp.Required(), mcp.Description("Game id returned by start_game")),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index of the action to take from the actions list")),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current game state, accumulated events, and pending decision without submitting a response. Read-only."),
		mcp.WithString("game_id", mcp.Required(), mcp.Description("Game id returned by start_game")),
	)
}

func previewAttackTool() mcp.Tool {
	return mcp.NewTool("preview_attack",
		mcp.WithDescription("Show the damage an attack would deal, with its attack and defense terms, without playing it. Read-only."),
		mcp.WithString("game_id", mcp.Required(), mcp.Description("Game id returned by start_game")),
		mcp.WithString("attacker", mcp.Required(), mcp.Description("Card id of your attacking champion")),
		mcp.WithString("target", mcp.Required(), mcp.Description("Card id of the adjacent enemy champion")),
	)
}

func endGameTool() mcp.Tool {
	return mcp.NewTool("end_game",
		mcp.WithDescription("Abandon a game and free its session."),
		mcp.WithString("game_id", mcp.Required(), mcp.Description("Game id returned by start_game")),
	)
}

// --- Tool inputs ---

type startGameInput struct {
	Difficulty string  `json:"difficulty"`
	Seat       int     `json:"seat"`
	Players    int     `json:"players"`
	Seed       *uint64 `json:"seed"`
}

type takeActionInput struct {
	GameID string `json:"game_id"`
	Index  *int   `json:"index"`
}

type gameInput struct {
	GameID string `json:"game_id"`
}

type previewInput struct {
	GameID   string `json:"game_id"`
	Attacker string `json:"attacker"`
	Target   string `json:"target"`
}

// PreviewResponse is returned by preview_attack.
type PreviewResponse struct {
	GameID      string `json:"game_id"`
	Attacker    string `json:"attacker"`
	Target      string `json:"target"`
	Attack      int    `json:"attack"`
	Defense     int    `json:"defense"`
	Damage      int    `json:"damage"`
	TargetHP    int    `json:"target_hp_after"`
	Kill        bool   `json:"kill"`
	FriendlyAdj int    `json:"friendly_adjacent"`
	HostileAdj  int    `json:"hostile_adjacent"`
}

// --- Tool handlers ---

func (m *Manager) handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input startGameInput
	if err := request.BindArguments(&input); err != nil {
		return mcp.NewToolResultErrorFromErr("invalid start_game arguments", err), nil
	}

	difficulty := m.opts.Difficulty
	if input.Difficulty != "" {
		d, err := ai.ParseDifficulty(input.Difficulty)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		difficulty = d
	}
	players := input.Players
	if players == 0 {
		players = 2
	}
	if players < game.MinPlayers || players > game.MaxPlayers {
		return mcp.NewToolResultErrorf("players must be between %d and %d", game.MinPlayers, game.MaxPlayers), nil
	}
	if input.Seat < 0 || input.Seat >= players {
		return mcp.NewToolResultErrorf("seat must be between 0 and %d", players-1), nil
	}
	seed := rand.Uint64()
	if input.Seed != nil {
		seed = *input.Seed
	}

	m.mu.Lock()
	if len(m.sessions)+m.starting >= m.opts.MaxSessions {
		m.mu.Unlock()
		return mcp.NewToolResultErrorf("Too many games running (limit %d). End one with end_game first.", m.opts.MaxSessions), nil
	}
	m.starting++
	m.mu.Unlock()

	sess, err := NewSession(SessionConfig{
		Roster:     m.opts.Roster,
		Players:    players,
		Seat:       input.Seat,
		Difficulty: difficulty,
		Seed:       seed,
		MaxRounds:  m.opts.MaxRounds,
		Log:        m.log,
	})

	m.mu.Lock()
	m.starting--
	if err == nil {
		m.sessions[sess.ID] = sess
	}
	m.mu.Unlock()
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}
	m.log.Info("game started",
		zap.String("game_id", sess.ID),
		zap.Int("players", players),
		zap.Int("seat", input.Seat),
		zap.Stringer("difficulty", difficulty),
		zap.Uint64("seed", seed),
	)

	sess.turn.Lock()
	defer sess.turn.Unlock()
	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for first decision: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (m *Manager) handleTakeAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input takeActionInput
	if err := request.BindArguments(&input); err != nil {
		return mcp.NewToolResultErrorFromErr("invalid take_action arguments", err), nil
	}
	sess, ok := m.session(input.GameID)
	if !ok {
		return mcp.NewToolResultErrorf("No game %q. Use start_game first.", input.GameID), nil
	}

	sess.turn.Lock()
	defer sess.turn.Unlock()

	pending := sess.currentPending
	if pending == nil {
		return mcp.NewToolResultError("No pending decision."), nil
	}
	if pending.Type == DecisionGameOver {
		return mcp.NewToolResultError("The game is over."), nil
	}
	if input.Index == nil {
		return mcp.NewToolResultError("index is required"), nil
	}
	index := *input.Index
	if index < 0 || index >= len(pending.Actions) {
		return mcp.NewToolResultErrorf("Invalid index %d. Must be 0-%d.", index, len(pending.Actions)-1), nil
	}

	select {
	case sess.ctrl.responseCh <- index:
	case <-ctx.Done():
		return mcp.NewToolResultErrorf("Cancelled: %v", ctx.Err()), nil
	}

	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (m *Manager) handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input gameInput
	if err := request.BindArguments(&input); err != nil {
		return mcp.NewToolResultErrorFromErr("invalid get_game_state arguments", err), nil
	}
	sess, ok := m.session(input.GameID)
	if !ok {
		return mcp.NewToolResultErrorf("No game %q. Use start_game first.", input.GameID), nil
	}

	sess.turn.Lock()
	defer sess.turn.Unlock()
	return mcp.NewToolResultText(respondJSON(sess.snapshot())), nil
}

func (m *Manager) handlePreviewAttack(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input previewInput
	if err := request.BindArguments(&input); err != nil {
		return mcp.NewToolResultErrorFromErr("invalid preview_attack arguments", err), nil
	}
	sess, ok := m.session(input.GameID)
	if !ok {
		return mcp.NewToolResultErrorf("No game %q. Use start_game first.", input.GameID), nil
	}

	sess.turn.Lock()
	defer sess.turn.Unlock()

	pending := sess.currentPending
	if pending == nil || pending.Type != DecisionChooseAction {
		return mcp.NewToolResultError("No decision is pending."), nil
	}
	state := pending.game
	res, err := game.PreviewAttack(state, game.CardID(input.Attacker), game.CardID(input.Target))
	if err != nil {
		return mcp.NewToolResultErrorFromErr("Attack not possible", err), nil
	}
	return mcp.NewToolResultText(respondJSON(PreviewResponse{
		GameID:      sess.ID,
		Attacker:    state.CardName(res.Attacker),
		Target:      state.CardName(res.Defender),
		Attack:      res.EffectiveAttack,
		Defense:     res.EffectiveDefense,
		Damage:      res.Damage,
		TargetHP:    res.RemainingHealth,
		Kill:        res.Destroyed,
		FriendlyAdj: res.FriendlyAdj,
		HostileAdj:  res.HostileAdj,
	})), nil
}

func (m *Manager) handleEndGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input gameInput
	if err := request.BindArguments(&input); err != nil {
		return mcp.NewToolResultErrorFromErr("invalid end_game arguments", err), nil
	}
	if _, ok := m.session(input.GameID); !ok {
		return mcp.NewToolResultErrorf("No game %q.", input.GameID), nil
	}
	m.remove(input.GameID)
	m.log.Info("game ended", zap.String("game_id", input.GameID))
	return mcp.NewToolResultText(respondJSON(map[string]string{"game_id": input.GameID, "status": "ended"})), nil
}
