package core

// Action is a structured game action produced by the command interpreter
// from free-form text (typed or voice-recognized). Sessions consume actions
// without knowing where the text came from.
type Action interface {
	// Name returns a short identifier used in logs and tests.
	Name() string
}

// GuessLetter guesses a single symbol of the target.
type GuessLetter struct {
	Letter rune
}

// SolveAttempt proposes the whole target at once.
type SolveAttempt struct {
	Word string
}

// NewGame restarts the session with freshly drawn content.
type NewGame struct{}

// Answer picks a multiple-choice option (1-based).
type Answer struct {
	Choice int
}

// GuessNumber guesses the hidden number.
type GuessNumber struct {
	N int
}

// Press enters the next symbol of a pattern sequence.
type Press struct {
	Symbol rune
}

// Flip turns over two cells of a memory grid, by 1-based cell number.
type Flip struct {
	A, B int
}

// Choose follows a numbered branch of a story node (1-based).
type Choose struct {
	Option int
}

func (GuessLetter) Name() string  { return "guess" }
func (SolveAttempt) Name() string { return "solve" }
func (NewGame) Name() string      { return "new-game" }
func (Answer) Name() string       { return "answer" }
func (GuessNumber) Name() string  { return "guess-number" }
func (Press) Name() string        { return "press" }
func (Flip) Name() string         { return "flip" }
func (Choose) Name() string       { return "choose" }
