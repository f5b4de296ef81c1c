// Package wordguess implements the word-guessing session: memorize the
// word, then uncover it letter by letter or solve it outright.
package wordguess

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/vkotlar/parlor/internal/command"
	"github.com/vkotlar/parlor/internal/content"
	"github.com/vkotlar/parlor/internal/core"
	"github.com/vkotlar/parlor/internal/progress"
	"github.com/vkotlar/parlor/internal/registry"
)

// GameID is the identifier used for commands and progress storage.
const GameID = "wordguess"

// Session owns the live word-guess state machine.
type Session struct {
	levels []content.WordLevel
	prog   *progress.Store
	feed   *core.Feed

	target    string // Uppercase secret word
	hint      string
	guessed   map[rune]bool // Every guessed symbol, right or wrong
	attempts  int
	countdown int
	restart   int // Ticks until auto-restart after a win; 0 = idle
	level     int // Level this session was drawn at
	phase     core.Phase
}

func init() {
	registry.Register(GameID, "Word Guess", func(d registry.Deps) (registry.Session, error) {
		return New(d)
	})
}

// New loads the word pack and builds an unstarted session.
func New(d registry.Deps) (*Session, error) {
	levels, err := content.Words(d.ContentPath)
	if err != nil {
		return nil, err
	}
	return &Session{
		levels: levels,
		prog:   d.Progress,
		feed:   d.Feed,
	}, nil
}

// ID returns the game identifier.
func (s *Session) ID() string { return GameID }

// Title returns the display name.
func (s *Session) Title() string { return "Word Guess" }

// Start draws the word for the current level and resets the session.
// The word is fully visible only while the memorize countdown runs.
func (s *Session) Start() {
	rec := s.prog.Get(GameID)
	s.level = rec.CurrentLevel
	lvl := s.levels[(rec.CurrentLevel-1)%len(s.levels)]

	s.target = strings.ToUpper(lvl.Word)
	s.hint = lvl.Hint
	s.guessed = make(map[rune]bool)
	s.attempts = core.StartingAttempts
	s.countdown = core.MemorizeSeconds
	s.restart = 0
	s.phase = core.PhaseMemorize
}

// Tick advances the memorize countdown, and after a win counts down the
// fixed delay before the next session starts automatically.
func (s *Session) Tick() {
	switch {
	case s.phase == core.PhaseMemorize:
		s.countdown--
		if s.countdown <= 0 {
			s.countdown = 0
			s.phase = core.PhasePlaying
		}
	case s.phase == core.PhaseWon && s.restart > 0:
		s.restart--
		if s.restart == 0 {
			s.Start()
		}
	}
}

// Phase returns the current state-machine phase.
func (s *Session) Phase() core.Phase { return s.phase }

// Apply dispatches one structured action.
func (s *Session) Apply(a core.Action) {
	switch a := a.(type) {
	case core.NewGame:
		s.Start()
	case core.GuessLetter:
		s.guessLetter(a.Letter)
	case core.SolveAttempt:
		s.solve(a.Word)
	}
}

// guessLetter handles a single-symbol guess. Valid only while playing;
// duplicates are a no-op apart from the notice.
func (s *Session) guessLetter(r rune) {
	if s.phase != core.PhasePlaying {
		return
	}
	r = unicode.ToUpper(r)
	if s.guessed[r] {
		s.feed.Error(fmt.Sprintf("already guessed %c", r))
		return
	}
	s.guessed[r] = true

	occ := strings.Count(s.target, string(r))
	if occ > 0 {
		pts := core.LetterPoints * occ * s.level
		s.prog.AddScore(GameID, pts)
		s.feed.Success(fmt.Sprintf("%c is in the word, +%d", r, pts))
	} else {
		s.attempts--
		s.feed.Error(fmt.Sprintf("no %c in the word", r))
	}
	s.evaluate()
}

// solve handles a whole-word attempt. An exact (case-insensitive) match
// wins the level and advances progress; a miss costs one attempt
// regardless of how far off it was.
func (s *Session) solve(word string) {
	if s.phase != core.PhasePlaying {
		return
	}
	if strings.EqualFold(strings.TrimSpace(word), s.target) {
		for _, r := range s.target {
			s.guessed[r] = true
		}
		pts := core.SolvePoints * s.level
		s.prog.AddScore(GameID, pts)
		s.prog.IncrementLevel(GameID)
		s.feed.Success(fmt.Sprintf("solved it, +%d", pts))
		s.win()
		return
	}
	s.attempts--
	s.feed.Error("that is not the word")
	s.evaluate()
}

// evaluate runs the win and loss checks after a state change.
func (s *Session) evaluate() {
	if s.phase != core.PhasePlaying {
		return
	}
	if s.allRevealed() {
		s.feed.Success("word complete")
		s.win()
		return
	}
	if s.attempts <= 0 {
		s.phase = core.PhaseLost
		s.feed.Error(fmt.Sprintf("out of attempts, the word was %s", s.target))
	}
}

// allRevealed reports whether every distinct symbol of the target has
// been guessed.
func (s *Session) allRevealed() bool {
	for _, r := range s.target {
		if !s.guessed[r] {
			return false
		}
	}
	return true
}

func (s *Session) win() {
	s.phase = core.PhaseWon
	s.restart = core.RestartDelaySeconds
}

// Rules returns the word-guess command set. Order is the tie-break for
// ambiguous input: guess beats solve beats new game.
func (s *Session) Rules() []command.Rule {
	return []command.Rule{
		command.Regex("guess <letter>", `\bguess\s+(\pL)\b`, func(m []string) (core.Action, bool) {
			rs := []rune(m[1])
			return core.GuessLetter{Letter: rs[0]}, true
		}),
		command.Regex("solve <word>", `\bsolve\s+(\pL+)`, func(m []string) (core.Action, bool) {
			return core.SolveAttempt{Word: m[1]}, true
		}),
	}
}

// Snapshot returns the render-ready view: the hint, the masked word, and
// the wrong guesses so far.
func (s *Session) Snapshot() core.Snapshot {
	rec := s.prog.Get(GameID)

	board := []string{
		"Hint: " + s.hint,
		"",
		s.masked(),
	}
	if wrong := s.wrongGuesses(); wrong != "" {
		board = append(board, "", "Tried: "+wrong)
	}
	switch s.phase {
	case core.PhaseWon:
		board = append(board, "", "Next word coming up...")
	case core.PhaseLost:
		board = append(board, "", "Say \"new game\" to try again.")
	}

	return core.Snapshot{
		Phase:     s.phase,
		Level:     s.level,
		Score:     rec.TotalScore,
		Attempts:  s.attempts,
		Countdown: s.countdown,
		Board:     board,
		Commands:  []string{"guess <letter>", "solve <word>", "new game"},
	}
}

// masked renders the word with unguessed letters hidden. The full word
// shows during the memorize window and once the session is over.
func (s *Session) masked() string {
	var b strings.Builder
	for i, r := range s.target {
		if i > 0 {
			b.WriteByte(' ')
		}
		if s.phase == core.PhaseMemorize || s.phase.Terminal() || s.guessed[r] {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// wrongGuesses lists guessed symbols that are not in the target, sorted.
func (s *Session) wrongGuesses() string {
	var wrong []rune
	for r := range s.guessed {
		if !strings.ContainsRune(s.target, r) {
			wrong = append(wrong, r)
		}
	}
	sort.Slice(wrong, func(i, j int) bool { return wrong[i] < wrong[j] })
	var b strings.Builder
	for i, r := range wrong {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteRune(r)
	}
	return b.String()
}
