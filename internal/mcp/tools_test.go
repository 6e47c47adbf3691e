package mcp

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/peterkuimelis/hexarena/internal/ai"
	"github.com/peterkuimelis/hexarena/internal/game"
)

const testRoster = `
factions:
  - id: north
    name: Northern Fund
    champions:
      - {id: n1, name: Aster, return_rate: 0.30, stability_score: 20}
      - {id: n2, name: Birch, return_rate: 0.10, stability_score: 80}
      - {id: n3, name: Cedar, return_rate: 0.20, stability_score: 50}
      - {id: n4, name: Dune, return_rate: 0.05, stability_score: 60}
  - id: south
    name: Southern Fund
    champions:
      - {id: s1, name: Ember, return_rate: 0.25, stability_score: 30}
      - {id: s2, name: Flint, return_rate: 0.15, stability_score: 70}
      - {id: s3, name: Grove, return_rate: 0.02, stability_score: 90}
      - {id: s4, name: Heath, return_rate: 0.12, stability_score: 40}
`

func newTestManager(t *testing.T, maxSessions int) *Manager {
	t.Helper()
	rf, err := game.ParseRoster([]byte(testRoster))
	require.NoError(t, err)
	m := NewManager(Options{
		Roster:      rf,
		Difficulty:  ai.Easy,
		MaxSessions: maxSessions,
		MaxRounds:   3,
		Log:         zaptest.NewLogger(t, zaptest.Level(zap.WarnLevel)),
	})
	t.Cleanup(m.Close)
	return m
}

// newCallToolRequest builds a tool call request with arguments.
func newCallToolRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func decode(t *testing.T, result *mcp.CallToolResult) ToolResponse {
	t.Helper()
	require.False(t, result.IsError, resultText(t, result))
	var resp ToolResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &resp))
	return resp
}

func startGame(t *testing.T, m *Manager, args map[string]any) ToolResponse {
	t.Helper()
	result, err := m.handleStartGame(context.Background(), newCallToolRequest("start_game", args))
	require.NoError(t, err)
	return decode(t, result)
}

func TestStartGameReturnsFirstDecision(t *testing.T) {
	m := newTestManager(t, 4)
	resp := startGame(t, m, map[string]any{"seed": 5, "difficulty": "hard"})

	assert.NotEmpty(t, resp.GameID)
	assert.False(t, resp.GameOver)
	require.NotNil(t, resp.Pending)
	assert.Equal(t, DecisionChooseAction, resp.Pending.Type)
	assert.Equal(t, "you", resp.Pending.ForPlayer)
	assert.NotEmpty(t, resp.Pending.Actions)
	require.NotNil(t, resp.State)
	assert.Equal(t, "Draft", resp.State.Phase)
	assert.Equal(t, 0, resp.State.You)
	assert.NotEmpty(t, resp.Events)
}

func TestPlayUntilGameOver(t *testing.T) {
	m := newTestManager(t, 4)
	resp := startGame(t, m, map[string]any{"seed": 9, "seat": 1, "players": 3})
	id := resp.GameID

	for i := 0; i < 5000 && !resp.GameOver; i++ {
		require.NotNil(t, resp.Pending)
		result, err := m.handleTakeAction(context.Background(),
			newCallToolRequest("take_action", map[string]any{"game_id": id, "index": 0}))
		require.NoError(t, err)
		resp = decode(t, result)
		assert.Equal(t, id, resp.GameID)
	}
	require.True(t, resp.GameOver)
	assert.NotEmpty(t, resp.Result)
	assert.Nil(t, resp.Pending)

	result, err := m.handleTakeAction(context.Background(),
		newCallToolRequest("take_action", map[string]any{"game_id": id, "index": 0}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestGetGameStateRepeatsPending(t *testing.T) {
	m := newTestManager(t, 4)
	started := startGame(t, m, map[string]any{"seed": 2})

	result, err := m.handleGetGameState(context.Background(),
		newCallToolRequest("get_game_state", map[string]any{"game_id": started.GameID}))
	require.NoError(t, err)
	resp := decode(t, result)

	require.NotNil(t, resp.Pending)
	assert.Equal(t, started.Pending.Actions, resp.Pending.Actions)
	assert.Empty(t, resp.Events, "events are only reported once")
	assert.NotNil(t, resp.Events)
}

func TestToolRejections(t *testing.T) {
	m := newTestManager(t, 1)
	started := startGame(t, m, map[string]any{"seed": 1})
	id := started.GameID

	tests := []struct {
		name    string
		handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
		args    map[string]any
	}{
		{"unknown game", m.handleTakeAction, map[string]any{"game_id": "nope", "index": 0}},
		{"index out of range", m.handleTakeAction, map[string]any{"game_id": id, "index": 999}},
		{"missing index", m.handleTakeAction, map[string]any{"game_id": id}},
		{"state of unknown game", m.handleGetGameState, map[string]any{"game_id": "nope"}},
		{"preview unknown cards", m.handlePreviewAttack, map[string]any{"game_id": id, "attacker": "a", "target": "b"}},
		{"end unknown game", m.handleEndGame, map[string]any{"game_id": "nope"}},
		{"session limit", m.handleStartGame, map[string]any{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.handler(context.Background(), newCallToolRequest("tool", tt.args))
			require.NoError(t, err)
			assert.True(t, result.IsError, resultText(t, result))
		})
	}
}

func TestStartGameValidation(t *testing.T) {
	m := newTestManager(t, 4)
	for _, args := range []map[string]any{
		{"difficulty": "impossible"},
		{"players": 4},
		{"players": 2, "seat": 2},
		{"seat": -1},
	} {
		result, err := m.handleStartGame(context.Background(), newCallToolRequest("start_game", args))
		require.NoError(t, err)
		assert.True(t, result.IsError, "args %v: %s", args, resultText(t, result))
	}
	assert.Empty(t, m.sessions)
}

func TestEndGameFreesSession(t *testing.T) {
	m := newTestManager(t, 1)
	started := startGame(t, m, map[string]any{"seed": 4})

	result, err := m.handleEndGame(context.Background(),
		newCallToolRequest("end_game", map[string]any{"game_id": started.GameID}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "ended")

	// The slot is free again.
	startGame(t, m, map[string]any{"seed": 4})
}

func TestConcurrentStartsRespectSessionLimit(t *testing.T) {
	m := newTestManager(t, 2)

	var started, refused atomic.Int32
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := m.handleStartGame(context.Background(),
				newCallToolRequest("start_game", map[string]any{"seed": i + 1}))
			if err != nil || result == nil {
				return
			}
			if result.IsError {
				refused.Add(1)
			} else {
				started.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(2), started.Load())
	assert.Equal(t, int32(6), refused.Load())
	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Len(t, m.sessions, 2)
	assert.Zero(t, m.starting)
}

func TestPreviewAttack(t *testing.T) {
	m := newTestManager(t, 4)
	resp := startGame(t, m, map[string]any{"seed": 3})
	sess, ok := m.session(resp.GameID)
	require.True(t, ok)

	// Play to a turn where an attack is on offer, or until the game ends.
	for i := 0; i < 5000 && !resp.GameOver; i++ {
		var attack *game.Action
		sess.turn.Lock()
		if p := sess.currentPending; p != nil && p.game != nil && p.Type == DecisionChooseAction {
			for _, a := range game.LegalActions(p.game) {
				if a.Type == game.ActionAttack {
					attack = &a
					break
				}
			}
		}
		sess.turn.Unlock()

		if attack != nil {
			result, err := m.handlePreviewAttack(context.Background(), newCallToolRequest("preview_attack", map[string]any{
				"game_id":  resp.GameID,
				"attacker": string(attack.Card),
				"target":   string(attack.Target),
			}))
			require.NoError(t, err)
			require.False(t, result.IsError, resultText(t, result))
			var pv PreviewResponse
			require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &pv))
			assert.Equal(t, max(0, pv.Attack-pv.Defense), pv.Damage)
			return
		}

		result, err := m.handleTakeAction(context.Background(),
			newCallToolRequest("take_action", map[string]any{"game_id": resp.GameID, "index": 0}))
		require.NoError(t, err)
		resp = decode(t, result)
	}
	t.Skip("no attack was offered before the game ended")
}

func TestRegisterTools(t *testing.T) {
	m := newTestManager(t, 1)
	assert.NotPanics(t, func() { m.RegisterTools(server.NewMCPServer("hexarena", "test")) })
}
