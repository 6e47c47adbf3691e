package log

import "github.com/peterkuimelis/hexarena/internal/hex"

// EventType enumerates all observable game events.
type EventType int

const (
	EventPhaseChange EventType = iota
	EventDraft
	EventDraw
	EventShuffle
	EventPlace
	EventDeploy
	EventMove
	EventSwap
	EventAttackDeclare
	EventDamageCalc
	EventDestroy
	EventAdvance
	EventHeal
	EventAbility
	EventScore
	EventRoundEnd
	EventTurnOrder
	EventNewTurn
	EventEliminated
	EventWin
)

func (e EventType) String() string {
	switch e {
	case EventPhaseChange:
		return "PhaseChange"
	case EventDraft:
		return "Draft"
	case EventDraw:
		return "Draw"
	case EventShuffle:
		return "Shuffle"
	case EventPlace:
		return "Place"
	case EventDeploy:
		return "Deploy"
	case EventMove:
		return "Move"
	case EventSwap:
		return "Swap"
	case EventAttackDeclare:
		return "AttackDeclare"
	case EventDamageCalc:
		return "DamageCalc"
	case EventDestroy:
		return "Destroy"
	case EventAdvance:
		return "Advance"
	case EventHeal:
		return "Heal"
	case EventAbility:
		return "Ability"
	case EventScore:
		return "Score"
	case EventRoundEnd:
		return "RoundEnd"
	case EventTurnOrder:
		return "TurnOrder"
	case EventNewTurn:
		return "NewTurn"
	case EventEliminated:
		return "Eliminated"
	case EventWin:
		return "Win"
	default:
		return "Unknown"
	}
}

// GameEvent is a single structured event. The engine fills the payload
// fields; presentation text is derived by FormatEvent.
type GameEvent struct {
	Seq    int       // monotonic sequence number within a game
	Round  int       // turnNumber at the time of the event
	Phase  string    // phase name
	Player int       // acting player id
	Type   EventType // event type

	Card       string // card id of the acting champion, if any
	CardName   string
	Target     string // card id of the affected champion, if any
	TargetName string
	From       hex.Coord
	To         hex.Coord
	Amount     int   // damage, heal, score or card count depending on Type
	Values     []int // extra numeric payload (e.g. attack/defense terms, turn order)
	Label      string
}
