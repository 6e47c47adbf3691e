package net

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"

	"github.com/peterkuimelis/hexarena/internal/hex"
	"github.com/peterkuimelis/hexarena/internal/log"
)

// ErrInputClosed is returned when the player's input ends mid-game.
var ErrInputClosed = errors.New("input closed")

// Client connects to a game server and provides a terminal REPL.
type Client struct {
	conn net.Conn
	in   *bufio.Reader
	out  io.Writer
}

// NewClient wraps an established connection. Choices are read from in and
// everything is rendered to out.
func NewClient(conn net.Conn, in io.Reader, out io.Writer) *Client {
	return &Client{conn: conn, in: bufio.NewReader(in), out: out}
}

// Connect connects to a server, sends the faction choice, and runs the REPL.
func Connect(ctx context.Context, addr, faction string, in io.Reader, out io.Writer) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	// Send join message with faction choice
	enc := json.NewEncoder(conn)
	if err := enc.Encode(ClientMessage{Type: "join", Faction: faction}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	fmt.Fprintln(out, "Connected! Waiting for game to start...")

	return NewClient(conn, in, out).RunREPL(ctx)
}

// LocalSeat runs a REPL for one seat over an in-memory pipe. The returned
// controller goes to the match; the channel yields the REPL's result once
// the game is over or the pipe is closed.
func LocalSeat(ctx context.Context, player int, in io.Reader, out io.Writer) (*NetworkController, <-chan error) {
	clientConn, serverConn := net.Pipe()
	done := make(chan error, 1)
	go func() {
		defer clientConn.Close()
		done <- NewClient(clientConn, in, out).RunREPL(ctx)
	}()
	return NewNetworkController(serverConn, player), done
}

// RunREPL reads server messages and handles them interactively.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)

	for {
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		switch msg.Type {
		case "notify":
			c.renderEvent(msg.Event)

		case "choose_action":
			c.renderState(msg.State)
			c.renderActions(msg.Actions)
			idx, err := c.readChoice(len(msg.Actions))
			if err != nil {
				return err
			}
			if err := enc.Encode(ClientMessage{Type: "action", Index: idx}); err != nil {
				return fmt.Errorf("send action: %w", err)
			}

		case "game_over":
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, "          GAME OVER")
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, msg.Result)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			return nil
		}
	}
}

func (c *Client) renderEvent(ev *EventView) {
	if ev == nil {
		return
	}
	// Format like the TextLogger
	phase := ev.Phase
	for len(phase) < 12 {
		phase += " "
	}
	fmt.Fprintf(c.out, "R%-2d %s| %s\n", ev.Round, phase, ev.Details)
}

func (c *Client) renderState(sv *StateView) {
	if sv == nil {
		return
	}
	fmt.Fprintln(c.out)
	fmt.Fprint(c.out, RenderState(sv))
}

// RenderState draws the board, the seats and the viewer's hand as text.
func RenderState(sv *StateView) string {
	var sb strings.Builder

	sb.WriteString("╔══════════════════════════════════════════════════════╗\n")
	for _, p := range sv.Players {
		marker := " "
		if p.ID == sv.CurrentPlayer {
			marker = "▶"
		}
		status := ""
		if p.Eliminated {
			status = "  ELIMINATED"
		}
		fmt.Fprintf(&sb, "║ %s %s (%s)  Score: %d (+%d)  Hand: %d  Deck: %d  Discard: %d%s\n",
			marker, p.Name, p.Faction, p.Score, p.Projected, p.HandCount, p.DeckCount, p.DiscardCount, status)
	}
	sb.WriteString("║──────────────────────────────────────────────────────\n")
	sb.WriteString(renderBoard(sv.Board))
	sb.WriteString("║──────────────────────────────────────────────────────\n")
	for _, t := range sv.Board {
		if t.Empty() {
			continue
		}
		ready := ""
		if t.Ability {
			ready = "  *"
		}
		fmt.Fprintf(&sb, "║  %s  P%d %s %s %d/%d  HP %d/%d at (%d,%d)%s\n",
			tileLabel(t), t.Owner+1, t.Name, t.Class, t.Attack, t.Defense,
			t.Health, t.MaxHealth, t.Q, t.R, ready)
	}
	sb.WriteString("╚══════════════════════════════════════════════════════╝\n")

	turnInfo := fmt.Sprintf("Round %d | %s", sv.Round, sv.Phase)
	if sv.IsYourTurn {
		turnInfo += " | Your turn"
	} else {
		turnInfo += fmt.Sprintf(" | %s's turn", log.PlayerName(sv.CurrentPlayer))
	}
	if sv.Deploy {
		turnInfo += " | Deploy available"
	}
	sb.WriteString(turnInfo + "\n")

	// Show hand
	if sv.You >= 0 && sv.You < len(sv.Players) {
		if hand := sv.Players[sv.You].Hand; len(hand) > 0 {
			sb.WriteString("\nHand: ")
			for i, c := range hand {
				fmt.Fprintf(&sb, "[%d] %s %d/%d  ", i+1, c.Name, c.Attack, c.Defense)
			}
			sb.WriteString("\n")
		}
	}
	if len(sv.DraftOptions) > 0 && sv.Phase == "Draft" {
		sb.WriteString("\nOn offer: ")
		for _, c := range sv.DraftOptions {
			fmt.Fprintf(&sb, "%s %d/%d (%s)  ", c.Name, c.Attack, c.Defense, c.Class)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderBoard draws the hex grid row by row, offsetting each row by half a
// cell per step away from the middle row.
func renderBoard(tiles []TileView) string {
	byCoord := make(map[hex.Coord]TileView, len(tiles))
	for _, t := range tiles {
		byCoord[hex.Coord{Q: t.Q, R: t.R}] = t
	}

	var sb strings.Builder
	for r := -hex.BoardRadius; r <= hex.BoardRadius; r++ {
		sb.WriteString("║  ")
		sb.WriteString(strings.Repeat("   ", abs(r)))
		for q := -hex.BoardRadius; q <= hex.BoardRadius; q++ {
			t, ok := byCoord[hex.Coord{Q: q, R: r}]
			if !ok {
				continue
			}
			sb.WriteString(tileLabel(t))
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// tileLabel is a five-character cell: owner, class initial and health for
// an occupied tile, the tile's points otherwise.
func tileLabel(t TileView) string {
	if t.Empty() {
		return fmt.Sprintf(" (%d) ", t.Points)
	}
	class := "?"
	if t.Class != "" {
		class = strings.ToUpper(t.Class[:1])
	}
	return fmt.Sprintf("%d%s%-3d", t.Owner+1, class, t.Health)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (c *Client) renderActions(actions []ActionView) {
	fmt.Fprintln(c.out, "\nActions:")
	for _, a := range actions {
		fmt.Fprintf(c.out, "  %d) %s\n", a.Index+1, a.Desc)
	}
}

func (c *Client) readChoice(count int) (int, error) {
	for {
		fmt.Fprint(c.out, "> ")
		line, err := c.in.ReadString('\n')
		if err != nil && line == "" {
			return 0, ErrInputClosed
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil || n < 1 || n > count {
			fmt.Fprintf(c.out, "Enter a number between 1 and %d\n", count)
			if err != nil {
				return 0, ErrInputClosed
			}
			continue
		}
		return n - 1, nil // convert to 0-indexed
	}
}
