package game

// Phase is the turn/phase state machine's current state. waiting, action,
// buy and game_over are the main line; the rest are suspension states that
// exist only while a pending action awaits player input.
type Phase string

const (
	PhaseWaiting  Phase = "waiting"
	PhaseAction   Phase = "action"
	PhaseBuy      Phase = "buy"
	PhaseGameOver Phase = "game_over"

	// Suspension states. The previous phase is not restored on resolution:
	// control always returns to PhaseAction.
	PhaseDiscard Phase = "discard"
	PhaseGain    Phase = "gain"
	PhaseTrash   Phase = "trash"
	PhaseTopdeck Phase = "topdeck"
	PhaseReveal  Phase = "reveal"
)

func (p Phase) String() string {
	return string(p)
}

// Suspended reports whether p is a suspension state.
func (p Phase) Suspended() bool {
	switch p {
	case PhaseDiscard, PhaseGain, PhaseTrash, PhaseTopdeck, PhaseReveal:
		return true
	}
	return false
}
