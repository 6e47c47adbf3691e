package ai

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/peterkuimelis/hexarena/internal/game"
	"github.com/peterkuimelis/hexarena/internal/log"
)

// Controller plays one seat with the planner. It plans a whole turn at once
// and hands the actions out one at a time.
type Controller struct {
	Player     int
	Difficulty Difficulty

	rng   *rand.Rand
	queue []game.Action
}

// NewController creates a controller whose random choices derive from seed.
func NewController(player int, d Difficulty, seed uint64) *Controller {
	return &Controller{
		Player:     player,
		Difficulty: d,
		rng:        rand.New(rand.NewPCG(seed, uint64(player)+1)),
	}
}

// ChooseAction returns the next planned action for s.
func (c *Controller) ChooseAction(ctx context.Context, s *game.GameState, legal []game.Action) (game.Action, error) {
	if err := ctx.Err(); err != nil {
		return game.Action{}, err
	}
	switch s.Phase {
	case game.PhaseDraft:
		return Draft(s, c.Difficulty, c.rng), nil
	case game.PhasePlacement:
		return Place(s, c.Difficulty, c.rng), nil
	case game.PhaseTurn:
		// A queued action that no longer applies means the state moved on
		// without us; plan again.
		if len(c.queue) > 0 {
			if _, err := c.queue[0].Apply(s); err != nil {
				c.queue = nil
			}
		}
		if len(c.queue) == 0 {
			c.queue = PlanTurn(s, c.Difficulty, c.rng)
		}
		a := c.queue[0]
		c.queue = c.queue[1:]
		return a, nil
	}
	if len(legal) == 0 {
		return game.Action{}, fmt.Errorf("%s: no legal action in phase %s", log.PlayerName(c.Player), s.Phase)
	}
	return legal[0], nil
}

// Notify implements the match controller interface. The planner reads
// everything it needs from the state.
func (c *Controller) Notify(ctx context.Context, event log.GameEvent) error {
	return nil
}
