package quiz

import (
	"testing"

	"github.com/vkotlar/parlor/internal/core"
	"github.com/vkotlar/parlor/internal/progress"
	"github.com/vkotlar/parlor/internal/registry"
)

func newTestSession(t *testing.T) (*Session, *progress.Store) {
	t.Helper()
	store := progress.NewStore(nil, nil)
	s, err := New(registry.Deps{Progress: store, Feed: core.NewFeed()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Start()
	for i := 0; i < core.MemorizeSeconds; i++ {
		s.Tick()
	}
	return s, store
}

func TestCorrectAnswersClearRound(t *testing.T) {
	s, store := newTestSession(t)

	total := len(s.questions)
	for i := 0; i < total; i++ {
		s.Apply(core.Answer{Choice: s.questions[s.index].Answer})
	}

	if s.Phase() != core.PhaseWon {
		t.Fatalf("phase = %v, want Won", s.Phase())
	}
	rec := store.Get(GameID)
	// 10 per question plus the 100 round bonus, all at level 1.
	want := core.LetterPoints*total + core.SolvePoints
	if rec.TotalScore != want {
		t.Errorf("score = %d, want %d", rec.TotalScore, want)
	}
	if rec.CurrentLevel != 2 {
		t.Errorf("level = %d, want 2", rec.CurrentLevel)
	}
}

func TestWrongAnswerCostsAttempt(t *testing.T) {
	s, store := newTestSession(t)

	q := s.questions[0]
	wrong := q.Answer%len(q.Choices) + 1 // Any choice that is not the answer

	s.Apply(core.Answer{Choice: wrong})
	if s.attempts != core.StartingAttempts-1 {
		t.Errorf("attempts = %d, want %d", s.attempts, core.StartingAttempts-1)
	}
	if s.index != 0 {
		t.Error("wrong answer should not advance the question")
	}
	if got := store.Get(GameID).TotalScore; got != 0 {
		t.Errorf("score = %d, want 0", got)
	}
}

func TestRepeatWrongChoiceIsNoOp(t *testing.T) {
	s, _ := newTestSession(t)

	q := s.questions[0]
	wrong := q.Answer%len(q.Choices) + 1

	s.Apply(core.Answer{Choice: wrong})
	attempts := s.attempts
	s.Apply(core.Answer{Choice: wrong})
	if s.attempts != attempts {
		t.Errorf("repeat wrong choice changed attempts: %d -> %d", attempts, s.attempts)
	}
}

func TestOutOfRangeChoiceIsNoOp(t *testing.T) {
	s, _ := newTestSession(t)

	s.Apply(core.Answer{Choice: 99})
	if s.attempts != core.StartingAttempts {
		t.Errorf("out-of-range choice cost an attempt: %d", s.attempts)
	}
}

func TestTriedResetsPerQuestion(t *testing.T) {
	s, _ := newTestSession(t)

	q := s.questions[0]
	wrong := q.Answer%len(q.Choices) + 1
	s.Apply(core.Answer{Choice: wrong})
	s.Apply(core.Answer{Choice: q.Answer})

	if s.index != 1 {
		t.Fatalf("index = %d, want 1", s.index)
	}
	// The same choice number must be selectable again on the next question.
	if len(s.tried) != 0 {
		t.Errorf("tried not reset for next question: %v", s.tried)
	}
}
