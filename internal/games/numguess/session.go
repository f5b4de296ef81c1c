// Package numguess implements the number-guessing session: a hidden
// number in a level-sized range, with higher/lower hints on misses.
package numguess

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/vkotlar/parlor/internal/command"
	"github.com/vkotlar/parlor/internal/content"
	"github.com/vkotlar/parlor/internal/core"
	"github.com/vkotlar/parlor/internal/progress"
	"github.com/vkotlar/parlor/internal/registry"
)

// GameID is the identifier used for commands and progress storage.
const GameID = "numguess"

// Session owns the live number-guess state machine.
type Session struct {
	levels []content.NumberLevel
	prog   *progress.Store
	feed   *core.Feed
	rng    *rand.Rand

	min, max  int
	target    int
	tried     map[int]bool
	attempts  int
	countdown int
	restart   int
	level     int
	phase     core.Phase
}

func init() {
	registry.Register(GameID, "Number Hunt", func(d registry.Deps) (registry.Session, error) {
		return New(d)
	})
}

// New loads the numbers pack and builds an unstarted session.
func New(d registry.Deps) (*Session, error) {
	levels, err := content.Numbers(d.ContentPath)
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
func (s *Session) Title() string { return "Number Hunt" }

// Start draws a target in the current level's range. The memorize window
// shows the range before guessing opens.
func (s *Session) Start() {
	rec := s.prog.Get(GameID)
	s.level = rec.CurrentLevel
	lvl := s.levels[(rec.CurrentLevel-1)%len(s.levels)]

	s.min, s.max = lvl.Min, lvl.Max
	s.target = lvl.Min + s.rng.Intn(lvl.Max-lvl.Min+1)
	s.tried = make(map[int]bool)
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
	case core.GuessNumber:
		s.guess(a.N)
	}
}

// guess handles one number. Repeats are a no-op; misses cost an attempt
// and hint at the direction.
func (s *Session) guess(n int) {
	if s.phase != core.PhasePlaying {
		return
	}
	if s.tried[n] {
		s.feed.Error(fmt.Sprintf("already guessed %d", n))
		return
	}
	s.tried[n] = true

	if n == s.target {
		pts := core.SolvePoints * s.level
		s.prog.AddScore(GameID, pts)
		s.prog.IncrementLevel(GameID)
		s.feed.Success(fmt.Sprintf("%d is right, +%d", n, pts))
		s.phase = core.PhaseWon
		s.restart = core.RestartDelaySeconds
		return
	}

	s.attempts--
	if n < s.target {
		s.feed.Error(fmt.Sprintf("%d is too low", n))
	} else {
		s.feed.Error(fmt.Sprintf("%d is too high", n))
	}
	if s.attempts <= 0 {
		s.phase = core.PhaseLost
		s.feed.Error(fmt.Sprintf("out of attempts, it was %d", s.target))
	}
}

// Rules returns the number-guess command set.
func (s *Session) Rules() []command.Rule {
	return []command.Rule{
		command.Regex("guess <number>", `\bguess\s+(\d+)\b`, func(m []string) (core.Action, bool) {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, false
			}
			return core.GuessNumber{N: n}, true
		}),
	}
}

// Snapshot returns the render-ready view.
func (s *Session) Snapshot() core.Snapshot {
	rec := s.prog.Get(GameID)

	board := []string{fmt.Sprintf("A number hides between %d and %d.", s.min, s.max)}
	switch s.phase {
	case core.PhaseWon:
		board = append(board, "", fmt.Sprintf("Found it: %d. Next range coming up...", s.target))
	case core.PhaseLost:
		board = append(board, "", fmt.Sprintf("It was %d. Say \"new game\" to try again.", s.target))
	default:
		if len(s.tried) > 0 {
			board = append(board, "", fmt.Sprintf("Guesses so far: %d", len(s.tried)))
		}
	}

	return core.Snapshot{
		Phase:     s.phase,
		Level:     s.level,
		Score:     rec.TotalScore,
		Attempts:  s.attempts,
		Countdown: s.countdown,
		Board:     board,
		Commands:  []string{"guess <number>", "new game"},
	}
}
