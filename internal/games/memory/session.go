// Package memory implements the pair-matching session: a grid of symbol
// pairs face-up during the memorize window, matched two cells at a time
// once they turn face-down.
package memory

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/vkotlar/parlor/internal/command"
	"github.com/vkotlar/parlor/internal/content"
	"github.com/vkotlar/parlor/internal/core"
	"github.com/vkotlar/parlor/internal/progress"
	"github.com/vkotlar/parlor/internal/registry"
)

// GameID is the identifier used for commands and progress storage.
const GameID = "memory"

// Session owns the live pair-matching state machine.
type Session struct {
	levels []content.MemoryLevel
	prog   *progress.Store
	feed   *core.Feed
	rng    *rand.Rand

	cells     []rune // Shuffled symbols, two of each
	matched   []bool
	attempts  int
	countdown int
	restart   int
	level     int
	phase     core.Phase
}

func init() {
	registry.Register(GameID, "Pair Up", func(d registry.Deps) (registry.Session, error) {
		return New(d)
	})
}

// New loads the memory pack and builds an unstarted session.
func New(d registry.Deps) (*Session, error) {
	levels, err := content.Memory(d.ContentPath)
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
func (s *Session) Title() string { return "Pair Up" }

// Start deals a fresh shuffled grid for the current level.
func (s *Session) Start() {
	rec := s.prog.Get(GameID)
	s.level = rec.CurrentLevel
	lvl := s.levels[(rec.CurrentLevel-1)%len(s.levels)]

	pool := []rune(lvl.Symbols)
	s.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	s.cells = make([]rune, 0, lvl.Pairs*2)
	for _, r := range pool[:lvl.Pairs] {
		s.cells = append(s.cells, r, r)
	}
	s.rng.Shuffle(len(s.cells), func(i, j int) { s.cells[i], s.cells[j] = s.cells[j], s.cells[i] })

	s.matched = make([]bool, len(s.cells))
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
	case core.Flip:
		s.flip(a.A, a.B)
	}
}

// flip turns over cells a and b (1-based). Matched or out-of-range cells
// are a no-op notice; a mismatch costs an attempt.
func (s *Session) flip(a, b int) {
	if s.phase != core.PhasePlaying {
		return
	}
	if a < 1 || a > len(s.cells) || b < 1 || b > len(s.cells) {
		s.feed.Error(fmt.Sprintf("pick cells between 1 and %d", len(s.cells)))
		return
	}
	if a == b {
		s.feed.Error("pick two different cells")
		return
	}
	ai, bi := a-1, b-1
	if s.matched[ai] || s.matched[bi] {
		s.feed.Error("that cell is already matched")
		return
	}

	if s.cells[ai] == s.cells[bi] {
		s.matched[ai], s.matched[bi] = true, true
		pts := core.LetterPoints * s.level
		s.prog.AddScore(GameID, pts)
		s.feed.Success(fmt.Sprintf("pair found, +%d", pts))
		if s.allMatched() {
			pts := core.SolvePoints * s.level
			s.prog.AddScore(GameID, pts)
			s.prog.IncrementLevel(GameID)
			s.feed.Success(fmt.Sprintf("grid cleared, +%d", pts))
			s.phase = core.PhaseWon
			s.restart = core.RestartDelaySeconds
		}
		return
	}

	s.attempts--
	s.feed.Error(fmt.Sprintf("%c and %c do not match", s.cells[ai], s.cells[bi]))
	if s.attempts <= 0 {
		s.phase = core.PhaseLost
		s.feed.Error("out of attempts")
	}
}

func (s *Session) allMatched() bool {
	for _, m := range s.matched {
		if !m {
			return false
		}
	}
	return true
}

// Rules returns the pair-matching command set.
func (s *Session) Rules() []command.Rule {
	return []command.Rule{
		command.Regex("flip <cell> <cell>", `\bflip\s+(\d+)\s+(?:and\s+)?(\d+)\b`, func(m []string) (core.Action, bool) {
			a, err1 := strconv.Atoi(m[1])
			b, err2 := strconv.Atoi(m[2])
			if err1 != nil || err2 != nil {
				return nil, false
			}
			return core.Flip{A: a, B: b}, true
		}),
	}
}

// Snapshot returns the render-ready view. Symbols show face-up during
// memorize and when matched or at session end; otherwise the cell number.
func (s *Session) Snapshot() core.Snapshot {
	rec := s.prog.Get(GameID)

	var row strings.Builder
	for i, r := range s.cells {
		if i > 0 {
			row.WriteString("  ")
		}
		faceUp := s.phase == core.PhaseMemorize || s.phase.Terminal() || s.matched[i]
		if faceUp {
			row.WriteString(fmt.Sprintf("[%c]", r))
		} else {
			row.WriteString(fmt.Sprintf("[%d]", i+1))
		}
	}

	board := []string{
		fmt.Sprintf("Match the %d pairs:", len(s.cells)/2),
		"",
		row.String(),
	}
	switch s.phase {
	case core.PhaseWon:
		board = append(board, "", "Next grid coming up...")
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
		Commands:  []string{"flip <cell> <cell>", "new game"},
	}
}
