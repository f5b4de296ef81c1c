package pattern

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
		Rand:     rand.New(rand.NewSource(3)),
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

func TestSequenceDrawnFromPool(t *testing.T) {
	s, _ := newTestSession(t)

	if len(s.sequence) != s.levels[0].Length {
		t.Fatalf("sequence length = %d, want %d", len(s.sequence), s.levels[0].Length)
	}
	pool := s.levels[0].Symbols
	for _, r := range s.sequence {
		found := false
		for _, p := range pool {
			if r == p {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("symbol %c not in pool %s", r, pool)
		}
	}
}

func TestFullReproductionWins(t *testing.T) {
	s, store := newTestSession(t)

	seq := append([]rune(nil), s.sequence...)
	for _, r := range seq {
		s.Apply(core.Press{Symbol: r})
	}

	if s.Phase() != core.PhaseWon {
		t.Fatalf("phase = %v, want Won", s.Phase())
	}
	rec := store.Get(GameID)
	want := core.LetterPoints*len(seq) + core.SolvePoints
	if rec.TotalScore != want {
		t.Errorf("score = %d, want %d", rec.TotalScore, want)
	}
	if rec.CurrentLevel != 2 {
		t.Errorf("level = %d, want 2", rec.CurrentLevel)
	}
}

func TestWrongPressRewinds(t *testing.T) {
	s, _ := newTestSession(t)

	s.Apply(core.Press{Symbol: s.sequence[0]})
	if s.pos != 1 {
		t.Fatalf("pos = %d, want 1", s.pos)
	}

	// Press something that is not the next symbol.
	wrong := 'Q'
	if s.sequence[1] == wrong {
		wrong = 'X'
	}
	s.Apply(core.Press{Symbol: wrong})
	if s.pos != 0 {
		t.Errorf("pos = %d after miss, want rewind to 0", s.pos)
	}
	if s.attempts != core.StartingAttempts-1 {
		t.Errorf("attempts = %d, want %d", s.attempts, core.StartingAttempts-1)
	}
}

func TestPressIsCaseInsensitive(t *testing.T) {
	s, _ := newTestSession(t)

	lower := s.sequence[0] + ('a' - 'A') // Pool symbols are uppercase letters
	s.Apply(core.Press{Symbol: lower})
	if s.pos != 1 {
		t.Errorf("lowercase press not accepted, pos = %d", s.pos)
	}
}

func TestSixMissesLose(t *testing.T) {
	s, _ := newTestSession(t)

	wrong := 'Q'
	if s.sequence[0] == wrong {
		wrong = 'X'
	}
	for i := 0; i < core.StartingAttempts; i++ {
		s.Apply(core.Press{Symbol: wrong})
	}
	if s.Phase() != core.PhaseLost {
		t.Fatalf("phase = %v, want Lost", s.Phase())
	}
}
