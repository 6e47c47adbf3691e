package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	return Filter(l.events, t)
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// Filter returns the events of type t, in order.
func Filter(events []GameEvent, t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// PlayerName returns "P1", "P2", ... for display.
func PlayerName(p int) string {
	return fmt.Sprintf("P%d", p+1)
}

func cardLabel(id, name string) string {
	if name != "" {
		return name
	}
	return id
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	// Pad phase to 12 chars for alignment
	for len(phase) < 12 {
		phase += " "
	}
	return fmt.Sprintf("R%-2d %s| %s", e.Round, phase, Describe(e))
}

// Describe renders the narrative text for an event.
func Describe(e GameEvent) string {
	who := PlayerName(e.Player)
	card := cardLabel(e.Card, e.CardName)
	target := cardLabel(e.Target, e.TargetName)

	switch e.Type {
	case EventPhaseChange:
		return fmt.Sprintf("Phase → %s (%s)", e.Label, who)
	case EventDraft:
		return fmt.Sprintf("%s drafts %d card(s)", who, e.Amount)
	case EventDraw:
		return fmt.Sprintf("%s draws %s", who, card)
	case EventShuffle:
		return fmt.Sprintf("%s shuffles %d card(s) back into their deck", who, e.Amount)
	case EventPlace:
		return fmt.Sprintf("%s places %s at %s", who, card, e.To)
	case EventDeploy:
		return fmt.Sprintf("%s deploys %s at %s", who, card, e.To)
	case EventMove:
		return fmt.Sprintf("%s moves %s %s → %s", who, card, e.From, e.To)
	case EventSwap:
		return fmt.Sprintf("%s swaps %s and %s", who, card, target)
	case EventAttackDeclare:
		return fmt.Sprintf("%s: %s → %s", who, card, target)
	case EventDamageCalc:
		if len(e.Values) == 2 {
			return fmt.Sprintf("%s deals %d damage to %s (ATK %d vs DEF %d)", card, e.Amount, target, e.Values[0], e.Values[1])
		}
		return fmt.Sprintf("%s deals %d damage to %s", card, e.Amount, target)
	case EventDestroy:
		return fmt.Sprintf("%s is destroyed", target)
	case EventAdvance:
		return fmt.Sprintf("%s advances to %s", card, e.To)
	case EventHeal:
		return fmt.Sprintf("%s heals %d", card, e.Amount)
	case EventAbility:
		return fmt.Sprintf("%s uses %s", card, e.Label)
	case EventScore:
		return fmt.Sprintf("%s scores %d (%s)", who, e.Amount, e.Label)
	case EventRoundEnd:
		return fmt.Sprintf("=== Round %d complete ===", e.Amount)
	case EventTurnOrder:
		names := make([]string, len(e.Values))
		for i, p := range e.Values {
			names[i] = PlayerName(p)
		}
		return fmt.Sprintf("Turn order: %s", strings.Join(names, ", "))
	case EventNewTurn:
		return fmt.Sprintf("--- %s to act ---", who)
	case EventEliminated:
		return fmt.Sprintf("%s is eliminated", who)
	case EventWin:
		return fmt.Sprintf("%s wins! (%s)", who, e.Label)
	default:
		return e.Type.String()
	}
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}
