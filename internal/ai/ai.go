// Package ai plans draft picks, placements and whole turns for computer
// seats. Every action it returns has been applied to a simulated copy of the
// state it was planned against, so the engine accepts it.
package ai

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/peterkuimelis/hexarena/internal/game"
)

type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

// ParseDifficulty parses "easy", "medium" or "hard" (case-insensitive).
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium", "":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Medium, fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", s)
}

// planner accumulates a plan against a working copy of the state. An action
// only joins the plan if the engine accepts it.
type planner struct {
	cur  *game.GameState
	me   int
	plan []game.Action
}

func newPlanner(s *game.GameState) *planner {
	return &planner{cur: s, me: s.CurrentPlayer}
}

func (p *planner) do(a game.Action) bool {
	next, err := a.Apply(p.cur)
	if err != nil {
		return false
	}
	p.cur = next
	p.plan = append(p.plan, a)
	return true
}

// finish appends the closing EndTurn.
func (p *planner) finish() []game.Action {
	p.do(game.NewEndTurnAction(p.cur))
	return p.plan
}

func pick[T any](r *rand.Rand, xs []T) T {
	return xs[r.IntN(len(xs))]
}

func ofType(actions []game.Action, t game.ActionType) []game.Action {
	var out []game.Action
	for _, a := range actions {
		if a.Type == t {
			out = append(out, a)
		}
	}
	return out
}
