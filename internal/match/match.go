// Package match drives a game from creation to victory, asking one
// controller per seat for every decision.
package match

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/peterkuimelis/hexarena/internal/game"
	"github.com/peterkuimelis/hexarena/internal/log"
)

// Controller is implemented by everything that can sit at a seat: the AI,
// the terminal and the MCP bridge.
type Controller interface {
	// ChooseAction picks one of the legal actions for the current state.
	ChooseAction(ctx context.Context, state *game.GameState, actions []game.Action) (game.Action, error)

	// Notify delivers a game event (no response needed).
	Notify(ctx context.Context, event log.GameEvent) error
}

// Config holds configuration for creating a new match.
type Config struct {
	Game      game.GameConfig
	Logger    log.EventLogger // receives every game event; defaults to a MemoryLogger
	Log       *zap.Logger     // process log; defaults to a no-op logger
	MaxRounds int             // stop after this many rounds (0 = 200)
}

// Outcome is how a match ended.
type Outcome struct {
	Winner int // -1 when the round limit stopped the match
	Reason string
	Rounds int
}

// Match orchestrates one game between its controllers.
type Match struct {
	State       *game.GameState
	Controllers []Controller
	Logger      log.EventLogger

	log       *zap.Logger
	maxRounds int
	forwarded int // events already sent to Logger and controllers
}

// New creates the game and binds one controller per seat.
func New(cfg Config, controllers ...Controller) (*Match, error) {
	if len(controllers) != len(cfg.Game.Players) {
		return nil, fmt.Errorf("new match: %d controllers for %d players", len(controllers), len(cfg.Game.Players))
	}
	gs, err := game.NewGameState(cfg.Game)
	if err != nil {
		return nil, fmt.Errorf("new match: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	zl := cfg.Log
	if zl == nil {
		zl = zap.NewNop()
	}
	maxRounds := cfg.MaxRounds
	if maxRounds == 0 {
		maxRounds = 200 // safety limit
	}

	return &Match{
		State:       gs,
		Controllers: controllers,
		Logger:      logger,
		log:         zl,
		maxRounds:   maxRounds,
	}, nil
}

// Run plays until someone wins, the round limit is reached or ctx is done.
func (m *Match) Run(ctx context.Context) (Outcome, error) {
	m.log.Info("match started",
		zap.Int("players", len(m.State.Players)),
		zap.Uint64("seed", m.State.Seed),
	)
	if err := m.forward(ctx); err != nil {
		return Outcome{Winner: -1}, err
	}

	for !m.State.Over() {
		if err := ctx.Err(); err != nil {
			return Outcome{Winner: -1, Rounds: m.State.TurnNumber}, err
		}
		if m.State.TurnNumber > m.maxRounds {
			out := Outcome{Winner: -1, Reason: fmt.Sprintf("round limit reached (%d rounds)", m.maxRounds), Rounds: m.maxRounds}
			m.log.Warn("match stopped", zap.String("reason", out.Reason))
			return out, nil
		}
		if err := m.Step(ctx); err != nil {
			return Outcome{Winner: -1, Rounds: m.State.TurnNumber}, err
		}
	}

	out := Outcome{Winner: m.State.Winner, Reason: winReason(m.State), Rounds: m.State.TurnNumber}
	m.log.Info("match over",
		zap.String("winner", log.PlayerName(out.Winner)),
		zap.String("reason", out.Reason),
		zap.Int("rounds", out.Rounds),
	)
	return out, nil
}

// Step resolves one decision. Interstitial pauses are passed through
// without asking a controller.
func (m *Match) Step(ctx context.Context) error {
	s := m.State
	player := s.CurrentPlayer

	var a game.Action
	if s.Phase == game.PhaseInterstitial {
		a = game.NewContinueAction(s)
	} else {
		legal := game.LegalActions(s)
		if len(legal) == 0 {
			return fmt.Errorf("%s: no legal actions in phase %s", log.PlayerName(player), s.Phase)
		}
		var err error
		a, err = m.Controllers[player].ChooseAction(ctx, s, legal)
		if err != nil {
			return fmt.Errorf("%s choose action: %w", log.PlayerName(player), err)
		}
	}

	next, err := a.Apply(s)
	if err != nil {
		return fmt.Errorf("%s played %q: %w", log.PlayerName(player), a, err)
	}
	m.State = next
	m.log.Debug("action applied",
		zap.String("player", log.PlayerName(player)),
		zap.Stringer("action", a),
		zap.Int("round", next.TurnNumber),
	)
	if next.TurnNumber > s.TurnNumber && s.TurnNumber > 0 {
		m.log.Info("round complete",
			zap.Int("round", s.TurnNumber),
			zap.Ints("scores", Scores(next)),
		)
	}
	return m.forward(ctx)
}

// forward sends events appended since the last call to the logger and to
// every controller.
func (m *Match) forward(ctx context.Context) error {
	events := m.State.Events[m.forwarded:]
	m.forwarded = len(m.State.Events)
	for _, e := range events {
		m.Logger.Log(e)
		for _, c := range m.Controllers {
			if err := c.Notify(ctx, e); err != nil {
				return fmt.Errorf("notify %s: %w", e.Type, err)
			}
		}
	}
	return nil
}

// Scores returns every player's score in seat order.
func Scores(s *game.GameState) []int {
	out := make([]int, len(s.Players))
	for i, p := range s.Players {
		out[i] = p.Score
	}
	return out
}

func winReason(s *game.GameState) string {
	wins := log.Filter(s.Events, log.EventWin)
	if len(wins) == 0 {
		return ""
	}
	return wins[len(wins)-1].Label
}
