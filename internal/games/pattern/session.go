// Package pattern implements the pattern-repeat session: a symbol
// sequence shown during the memorize window, reproduced one press at a
// time once it is hidden. A wrong press costs an attempt and rewinds the
// player to the start of the sequence.
package pattern

import (
	"fmt"
	"math/rand"
	"strings"
	"unicode"

	"github.com/vkotlar/parlor/internal/command"
	"github.com/vkotlar/parlor/internal/content"
	"github.com/vkotlar/parlor/internal/core"
	"github.com/vkotlar/parlor/internal/progress"
	"github.com/vkotlar/parlor/internal/registry"
)

// GameID is the identifier used for commands and progress storage.
const GameID = "pattern"

// Session owns the live pattern-repeat state machine.
type Session struct {
	levels []content.PatternLevel
	prog   *progress.Store
	feed   *core.Feed
	rng    *rand.Rand

	sequence  []rune
	pos       int // Next index to reproduce
	attempts  int
	countdown int
	restart   int
	level     int
	phase     core.Phase
}

func init() {
	registry.Register(GameID, "Pattern Echo", func(d registry.Deps) (registry.Session, error) {
		return New(d)
	})
}

// New loads the patterns pack and builds an unstarted session.
func New(d registry.Deps) (*Session, error) {
	levels, err := content.Patterns(d.ContentPath)
	if err != nil {
		return nil, err
	}
	rng := d.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Session{levels: levels, prog: d.Progress, feed: d.Feed, rng: rng}, nil
}

func (s *Session) ID() string    { return GameID }
func (s *Session) Title() string { return "Pattern Echo" }

// Start draws a fresh sequence for the current level.
func (s *Session) Start() {
	rec := s.prog.Get(GameID)
	s.level = rec.CurrentLevel
	lvl := s.levels[(rec.CurrentLevel-1)%len(s.levels)]

	pool := []rune(lvl.Symbols)
	s.sequence = make([]rune, lvl.Length)
	for i := range s.sequence {
		s.sequence[i] = pool[s.rng.Intn(len(pool))]
	}
	s.pos = 0
	s.attempts = core.StartingAttempts
	s.countdown = core.MemorizeSeconds
	s.restart = 0
	s.phase = core.PhaseMemorize
}

// Tick advances the countdowns, as in every session.
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

func (s *Session) Phase() core.Phase { return s.phase }

// Apply dispatches one structured action.
func (s *Session) Apply(a core.Action) {
	switch a := a.(type) {
	case core.NewGame:
		s.Start()
	case core.Press:
		s.press(a.Symbol)
	}
}

// press handles the next symbol of the reproduction.
func (s *Session) press(r rune) {
	if s.phase != core.PhasePlaying {
		return
	}
	r = unicode.ToUpper(r)

	if r == s.sequence[s.pos] {
		pts := core.LetterPoints * s.level
		s.prog.AddScore(GameID, pts)
		s.pos++
		s.feed.Success(fmt.Sprintf("step %d of %d, +%d", s.pos, len(s.sequence), pts))
		if s.pos >= len(s.sequence) {
			pts := core.SolvePoints * s.level
			s.prog.AddScore(GameID, pts)
			s.prog.IncrementLevel(GameID)
			s.feed.Success(fmt.Sprintf("pattern complete, +%d", pts))
			s.phase = core.PhaseWon
			s.restart = core.RestartDelaySeconds
		}
		return
	}

	s.attempts--
	s.pos = 0
	s.feed.Error("wrong symbol, back to the start")
	if s.attempts <= 0 {
		s.phase = core.PhaseLost
		s.feed.Error(fmt.Sprintf("out of attempts, the pattern was %s", string(s.sequence)))
	}
}

// Rules returns the pattern command set.
func (s *Session) Rules() []command.Rule {
	return []command.Rule{
		command.Regex("press <symbol>", `\bpress\s+(\pL)\b`, func(m []string) (core.Action, bool) {
			rs := []rune(m[1])
			return core.Press{Symbol: rs[0]}, true
		}),
	}
}

// Snapshot returns the render-ready view. The sequence shows only during
// the memorize window and after the session ends.
func (s *Session) Snapshot() core.Snapshot {
	rec := s.prog.Get(GameID)

	var shown string
	if s.phase == core.PhaseMemorize || s.phase.Terminal() {
		shown = spaced(s.sequence)
	} else {
		marks := make([]rune, len(s.sequence))
		for i := range marks {
			if i < s.pos {
				marks[i] = s.sequence[i]
			} else {
				marks[i] = '·'
			}
		}
		shown = spaced(marks)
	}

	board := []string{
		fmt.Sprintf("Repeat the %d-symbol pattern:", len(s.sequence)),
		"",
		shown,
	}
	switch s.phase {
	case core.PhaseWon:
		board = append(board, "", "Next pattern coming up...")
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
		Commands:  []string{"press <symbol>", "new game"},
	}
}

func spaced(rs []rune) string {
	var b strings.Builder
	for i, r := range rs {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
