// Package adventure implements the branching-story session. A level is a
// small node graph: numbered choices follow edges, fatal edges cost an
// attempt and leave the player where they stand, and reaching an ending
// node wins the level.
package adventure

import (
	"fmt"
	"strconv"

	"github.com/vkotlar/parlor/internal/command"
	"github.com/vkotlar/parlor/internal/content"
	"github.com/vkotlar/parlor/internal/core"
	"github.com/vkotlar/parlor/internal/progress"
	"github.com/vkotlar/parlor/internal/registry"
)

// GameID is the identifier used for commands and progress storage.
const GameID = "adventure"

// Session owns the live story state machine.
type Session struct {
	levels []content.AdventureLevel
	prog   *progress.Store
	feed   *core.Feed

	story     content.AdventureLevel
	node      *content.StoryNode
	attempts  int
	countdown int
	restart   int
	level     int
	phase     core.Phase
}

func init() {
	registry.Register(GameID, "Tiny Adventure", func(d registry.Deps) (registry.Session, error) {
		return New(d)
	})
}

// New loads the adventure pack and builds an unstarted session.
func New(d registry.Deps) (*Session, error) {
	levels, err := content.Adventure(d.ContentPath)
	if err != nil {
		return nil, err
	}
	return &Session{levels: levels, prog: d.Progress, feed: d.Feed}, nil
}

func (s *Session) ID() string    { return GameID }
func (s *Session) Title() string { return "Tiny Adventure" }

// Start opens the story for the current level at its start node. The
// memorize window shows the title as a prologue.
func (s *Session) Start() {
	rec := s.prog.Get(GameID)
	s.level = rec.CurrentLevel
	s.story = s.levels[(rec.CurrentLevel-1)%len(s.levels)]

	s.node = s.story.Node(s.story.Start)
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
	case core.Choose:
		s.choose(a.Option)
	}
}

// choose follows the 1-based branch of the current node.
func (s *Session) choose(option int) {
	if s.phase != core.PhasePlaying || s.node == nil {
		return
	}
	if option < 1 || option > len(s.node.Choices) {
		s.feed.Error(fmt.Sprintf("pick a choice between 1 and %d", len(s.node.Choices)))
		return
	}
	c := s.node.Choices[option-1]

	if c.Fatal {
		s.attempts--
		s.feed.Error("that went badly, you scramble back")
		if s.attempts <= 0 {
			s.phase = core.PhaseLost
			s.feed.Error("your luck has run out")
		}
		return
	}

	next := s.story.Node(c.Next)
	if next == nil {
		// Authoring error in a content pack; treat as a dead end, not a crash.
		s.feed.Error("the way is blocked")
		return
	}
	s.node = next

	if next.Ending {
		pts := core.SolvePoints * s.level
		s.prog.AddScore(GameID, pts)
		s.prog.IncrementLevel(GameID)
		s.feed.Success(fmt.Sprintf("the end, +%d", pts))
		s.phase = core.PhaseWon
		s.restart = core.RestartDelaySeconds
	}
}

// Rules returns the adventure command set.
func (s *Session) Rules() []command.Rule {
	return []command.Rule{
		command.Regex("choose <number>", `\bchoose\s+(\d+)\b`, func(m []string) (core.Action, bool) {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, false
			}
			return core.Choose{Option: n}, true
		}),
	}
}

// Snapshot returns the render-ready view: the current scene and its
// numbered choices.
func (s *Session) Snapshot() core.Snapshot {
	rec := s.prog.Get(GameID)

	var board []string
	switch {
	case s.phase == core.PhaseMemorize:
		board = []string{s.story.Title, "", "The story begins..."}
	case s.node == nil:
		board = []string{s.story.Title}
	default:
		board = []string{s.story.Title, "", s.node.Text}
		if s.phase == core.PhasePlaying {
			board = append(board, "")
			for i, c := range s.node.Choices {
				board = append(board, fmt.Sprintf("  %d. %s", i+1, c.Label))
			}
		}
		switch s.phase {
		case core.PhaseWon:
			board = append(board, "", "Next tale coming up...")
		case core.PhaseLost:
			board = append(board, "", "Say \"new game\" to try again.")
		}
	}

	return core.Snapshot{
		Phase:     s.phase,
		Level:     s.level,
		Score:     rec.TotalScore,
		Attempts:  s.attempts,
		Countdown: s.countdown,
		Board:     board,
		Commands:  []string{"choose <number>", "new game"},
	}
}
