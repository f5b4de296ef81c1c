package numguess

import (
	"math/rand"
	"testing"

	"github.com/vkotlar/parlor/internal/core"
	"github.com/vkotlar/parlor/internal/progress"
	"github.com/vkotlar/parlor/internal/registry"
)

func newTestSession(t *testing.T) (*Session, *progress.Store) {
	t.Helper()
	store := progress.NewStore(nil, nil)
	s, err := New(registry.Deps{
		Progress: store,
		Feed:     core.NewFeed(),
		Rand:     rand.New(rand.NewSource(7)),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Start()
	for i := 0; i < core.MemorizeSeconds; i++ {
		s.Tick()
	}
	return s, store
}

func TestTargetInRange(t *testing.T) {
	s, _ := newTestSession(t)
	if s.target < s.min || s.target > s.max {
		t.Errorf("target %d outside [%d, %d]", s.target, s.min, s.max)
	}
}

func TestExactGuessWins(t *testing.T) {
	s, store := newTestSession(t)

	s.Apply(core.GuessNumber{N: s.target})
	if s.Phase() != core.PhaseWon {
		t.Fatalf("phase = %v, want Won", s.Phase())
	}
	rec := store.Get(GameID)
	if rec.TotalScore != core.SolvePoints {
		t.Errorf("score = %d, want %d", rec.TotalScore, core.SolvePoints)
	}
	if rec.CurrentLevel != 2 {
		t.Errorf("level = %d, want 2", rec.CurrentLevel)
	}
}

func TestMissCostsAttemptWithHint(t *testing.T) {
	s, _ := newTestSession(t)

	var notices []core.Notice
	feed := core.NewFeed()
	feed.Subscribe(func(n core.Notice) { notices = append(notices, n) })
	s.feed = feed

	s.Apply(core.GuessNumber{N: s.target - 1})
	if s.attempts != core.StartingAttempts-1 {
		t.Errorf("attempts = %d, want %d", s.attempts, core.StartingAttempts-1)
	}
	if len(notices) == 0 || notices[len(notices)-1].Kind != core.NoticeError {
		t.Error("miss should produce an error notice")
	}
}

func TestRepeatGuessIsNoOp(t *testing.T) {
	s, _ := newTestSession(t)

	miss := s.target - 1
	s.Apply(core.GuessNumber{N: miss})
	attempts := s.attempts
	s.Apply(core.GuessNumber{N: miss})
	if s.attempts != attempts {
		t.Errorf("repeat guess changed attempts: %d -> %d", attempts, s.attempts)
	}
}

func TestSixMissesLose(t *testing.T) {
	s, _ := newTestSession(t)

	for i := 0; i < core.StartingAttempts; i++ {
		s.Apply(core.GuessNumber{N: s.target + 1 + i})
	}
	if s.Phase() != core.PhaseLost {
		t.Fatalf("phase = %v, want Lost", s.Phase())
	}
}

func TestAutoRestartAdvancesRange(t *testing.T) {
	s, _ := newTestSession(t)

	s.Apply(core.GuessNumber{N: s.target})
	for i := 0; i < core.RestartDelaySeconds; i++ {
		s.Tick()
	}
	if s.Phase() != core.PhaseMemorize {
		t.Fatalf("phase = %v, want Memorize", s.Phase())
	}
	if s.level != 2 {
		t.Errorf("restarted at level %d, want 2", s.level)
	}
}
