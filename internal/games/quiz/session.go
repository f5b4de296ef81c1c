// Package quiz implements the multiple-choice quiz session. A level is an
// ordered question set; every right answer scores, every wrong one costs
// an attempt, and clearing the whole set wins the level.
package quiz

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
const GameID = "quiz"

// Session owns the live quiz state machine.
type Session struct {
	levels []content.QuizLevel
	prog   *progress.Store
	feed   *core.Feed

	topic     string
	questions []content.Question
	index     int          // Current question
	tried     map[int]bool // Wrong choices already tried on this question
	attempts  int
	countdown int
	restart   int
	level     int
	phase     core.Phase
}

func init() {
	registry.Register(GameID, "Quick Quiz", func(d registry.Deps) (registry.Session, error) {
		return New(d)
	})
}

// New loads the quiz pack and builds an unstarted session.
func New(d registry.Deps) (*Session, error) {
	levels, err := content.Quiz(d.ContentPath)
	if err != nil {
		return nil, err
	}
	return &Session{levels: levels, prog: d.Progress, feed: d.Feed}, nil
}

func (s *Session) ID() string    { return GameID }
func (s *Session) Title() string { return "Quick Quiz" }

// Start draws the question set for the current level. The memorize window
// shows the topic before the first question appears.
func (s *Session) Start() {
	rec := s.prog.Get(GameID)
	s.level = rec.CurrentLevel
	lvl := s.levels[(rec.CurrentLevel-1)%len(s.levels)]

	s.topic = lvl.Topic
	s.questions = lvl.Questions
	s.index = 0
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
	case core.Answer:
		s.answer(a.Choice)
	}
}

// answer handles a 1-based choice for the current question.
func (s *Session) answer(choice int) {
	if s.phase != core.PhasePlaying {
		return
	}
	q := s.questions[s.index]
	if choice < 1 || choice > len(q.Choices) {
		s.feed.Error(fmt.Sprintf("pick an answer between 1 and %d", len(q.Choices)))
		return
	}
	if s.tried[choice] {
		s.feed.Error("already tried that one")
		return
	}

	if choice == q.Answer {
		pts := core.LetterPoints * s.level
		s.prog.AddScore(GameID, pts)
		s.feed.Success(fmt.Sprintf("correct, +%d", pts))
		s.index++
		s.tried = make(map[int]bool)
		if s.index >= len(s.questions) {
			pts := core.SolvePoints * s.level
			s.prog.AddScore(GameID, pts)
			s.prog.IncrementLevel(GameID)
			s.feed.Success(fmt.Sprintf("round complete, +%d", pts))
			s.phase = core.PhaseWon
			s.restart = core.RestartDelaySeconds
		}
		return
	}

	s.tried[choice] = true
	s.attempts--
	s.feed.Error("wrong answer")
	if s.attempts <= 0 {
		s.phase = core.PhaseLost
		s.feed.Error("out of attempts")
	}
}

// Rules returns the quiz command set.
func (s *Session) Rules() []command.Rule {
	return []command.Rule{
		command.Regex("answer <number>", `\banswer\s+(\d+)\b`, func(m []string) (core.Action, bool) {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, false
			}
			return core.Answer{Choice: n}, true
		}),
	}
}

// Snapshot returns the render-ready view. During memorize only the topic
// shows; during play the current question and its choices.
func (s *Session) Snapshot() core.Snapshot {
	rec := s.prog.Get(GameID)

	var board []string
	switch {
	case s.phase == core.PhaseMemorize:
		board = []string{"Topic: " + s.topic, "", "Get ready..."}
	case s.phase == core.PhaseLost:
		board = []string{"Topic: " + s.topic, "", "Say \"new game\" to try again."}
	case s.phase == core.PhaseWon:
		board = []string{"Topic: " + s.topic, "", "Round complete. Next round coming up..."}
	default:
		q := s.questions[s.index]
		board = []string{
			fmt.Sprintf("Question %d of %d: %s", s.index+1, len(s.questions), q.Prompt),
			"",
		}
		for i, c := range q.Choices {
			board = append(board, fmt.Sprintf("  %d. %s", i+1, c))
		}
	}

	return core.Snapshot{
		Phase:     s.phase,
		Level:     s.level,
		Score:     rec.TotalScore,
		Attempts:  s.attempts,
		Countdown: s.countdown,
		Board:     board,
		Commands:  []string{"answer <number>", "new game"},
	}
}
