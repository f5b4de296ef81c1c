package core

// Session constants shared by every game variant. The scoring formulas are
// exact contracts: 10 * units * level for a partial hit, 100 * level for a
// full solve. Variants swap the payload shape, never these numbers.
const (
	// StartingAttempts is the number of wrong guesses a session tolerates.
	StartingAttempts = 6

	// MemorizeSeconds is how long the target stays visible before play.
	MemorizeSeconds = 3

	// LetterPoints is the per-occurrence score unit for a partial hit,
	// multiplied by the current level.
	LetterPoints = 10

	// SolvePoints is the score for completing a level, multiplied by the
	// current level.
	SolvePoints = 100

	// RestartDelaySeconds is how many ticks a won session lingers before
	// automatically starting the next one.
	RestartDelaySeconds = 2
)

// Snapshot is the render-ready view of a session. The presentation shell
// consumes snapshots and notices only; it never reaches into session state.
type Snapshot struct {
	Phase     Phase
	Level     int
	Score     int      // Cumulative score from the progress record
	Attempts  int      // Wrong guesses remaining
	Countdown int      // Memorize seconds remaining (0 outside Memorize)
	Board     []string // Game-specific display lines
	Commands  []string // Recognized voice/text commands, for the header list
}
