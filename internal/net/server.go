package net

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"slices"

	"go.uber.org/zap"

	"github.com/peterkuimelis/hexarena/internal/ai"
	"github.com/peterkuimelis/hexarena/internal/game"
	"github.com/peterkuimelis/hexarena/internal/log"
	"github.com/peterkuimelis/hexarena/internal/match"
)

// Host runs a match between the local player (seat 0) and one TCP joiner
// (seat 1). Extra seats, if any, are played by the AI.
type Host struct {
	Roster     *game.RosterFile
	Addr       string // listen address, e.g. ":7777"
	Faction    string // host's faction; the first roster faction if empty
	Seed       uint64
	AISeats    int
	Difficulty ai.Difficulty
	MaxRounds  int
	Log        *zap.Logger

	In  io.Reader // host's choices
	Out io.Writer // host's view
}

// Run starts the server, waits for a client to join, then runs the match.
func (h *Host) Run(ctx context.Context) (match.Outcome, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", h.Addr)
	if err != nil {
		return match.Outcome{Winner: -1}, fmt.Errorf("listen: %w", err)
	}
	defer ln.Close()

	fmt.Fprintf(h.Out, "Waiting for opponent on %s...\n", ln.Addr())
	return h.Serve(ctx, ln)
}

// Serve accepts exactly one joiner on ln and plays the match.
func (h *Host) Serve(ctx context.Context, ln net.Listener) (match.Outcome, error) {
	zl := h.Log
	if zl == nil {
		zl = zap.NewNop()
	}
	fail := match.Outcome{Winner: -1}

	stop := context.AfterFunc(ctx, func() { ln.Close() })
	conn, err := ln.Accept()
	stop()
	if err != nil {
		if ctx.Err() != nil {
			return fail, ctx.Err()
		}
		return fail, fmt.Errorf("accept: %w", err)
	}
	defer conn.Close()

	fmt.Fprintf(h.Out, "Opponent connected from %s\n", conn.RemoteAddr())
	zl.Info("opponent connected", zap.Stringer("remote", conn.RemoteAddr()))

	// Read the joiner's faction choice
	dec := json.NewDecoder(conn)
	var joinMsg ClientMessage
	if err := dec.Decode(&joinMsg); err != nil {
		return fail, fmt.Errorf("read join message: %w", err)
	}
	if joinMsg.Type != "join" {
		return fail, fmt.Errorf("expected join message, got %q", joinMsg.Type)
	}

	factions, err := h.seatFactions(joinMsg.Faction)
	if err != nil {
		return fail, err
	}
	cfg := match.Config{
		Game:      game.GameConfig{Seed: h.Seed},
		Log:       zl,
		MaxRounds: h.MaxRounds,
	}
	for _, f := range factions {
		deck, err := h.Roster.DeckFor(f)
		if err != nil {
			return fail, fmt.Errorf("load deck: %w", err)
		}
		cfg.Game.Players = append(cfg.Game.Players, game.PlayerConfig{FactionID: f, Deck: deck})
	}
	fmt.Fprintf(h.Out, "Host: %s  Joiner: %s\n", factions[0], factions[1])

	// Player 0 = host, Player 1 = joiner
	hostCtrl, replDone := LocalSeat(ctx, 0, h.In, h.Out)
	defer hostCtrl.Close()
	joinerCtrl := &NetworkController{conn: conn, enc: json.NewEncoder(conn), dec: dec, player: 1}

	seats := []match.Controller{hostCtrl, joinerCtrl}
	for i := 2; i < len(factions); i++ {
		seats = append(seats, ai.NewController(i, h.Difficulty, h.Seed))
	}

	m, err := match.New(cfg, seats...)
	if err != nil {
		return fail, err
	}

	out, err := m.Run(ctx)
	if err != nil {
		return out, fmt.Errorf("match: %w", err)
	}

	result := Result(out)
	_ = joinerCtrl.SendGameOver(out.Winner, result)
	if err := hostCtrl.SendGameOver(out.Winner, result); err != nil {
		return out, err
	}
	return out, <-replDone
}

// seatFactions picks a faction per seat: the host's, the joiner's, then
// the remaining roster factions in file order for AI seats.
func (h *Host) seatFactions(joiner string) ([]string, error) {
	ids := h.Roster.FactionIDs()
	if len(ids) == 0 {
		return nil, fmt.Errorf("roster has no factions")
	}
	host := h.Faction
	if host == "" {
		host = ids[0]
	}
	if joiner == "" {
		joiner = ids[0]
		for _, id := range ids {
			if id != host {
				joiner = id
				break
			}
		}
	}
	seats := []string{host, joiner}
	for i := 0; i < h.AISeats && len(seats) < game.MaxPlayers; i++ {
		next := ids[i%len(ids)]
		for _, id := range ids {
			if !slices.Contains(seats, id) {
				next = id
				break
			}
		}
		seats = append(seats, next)
	}
	return seats, nil
}

// Result renders a match outcome for the game_over message.
func Result(out match.Outcome) string {
	if out.Winner < 0 {
		return fmt.Sprintf("No winner: %s", out.Reason)
	}
	return fmt.Sprintf("%s wins by %s after %d rounds", log.PlayerName(out.Winner), out.Reason, out.Rounds)
}
