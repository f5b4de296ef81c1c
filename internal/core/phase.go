// Package core provides the shared vocabulary for parlor game sessions:
// phases, actions, notices and the scoring constants every game replicates.
// Game packages contain pure session logic with no UI dependencies; the
// platform handles input mapping, ticking, and rendering.
package core

// Phase is the state-machine state of a live game session.
// Transitions only move forward (Memorize -> Playing -> Won/Lost) except
// for an explicit new-game reset, which re-enters Memorize.
type Phase int

const (
	PhaseMemorize Phase = iota // Target visible, countdown running
	PhasePlaying               // Accepting guesses
	PhaseWon                   // Terminal until new game
	PhaseLost                  // Terminal until new game
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseMemorize:
		return "Memorize"
	case PhasePlaying:
		return "Playing"
	case PhaseWon:
		return "Won"
	case PhaseLost:
		return "Lost"
	default:
		return "Unknown"
	}
}

// Terminal reports whether the phase accepts no further guesses.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}
