package core

import "testing"

func TestPhaseTerminal(t *testing.T) {
	tests := []struct {
		phase Phase
		want  bool
	}{
		{PhaseMemorize, false},
		{PhasePlaying, false},
		{PhaseWon, true},
		{PhaseLost, true},
	}
	for _, tt := range tests {
		if got := tt.phase.Terminal(); got != tt.want {
			t.Errorf("%v.Terminal() = %v, want %v", tt.phase, got, tt.want)
		}
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseMemorize, "Memorize"},
		{PhasePlaying, "Playing"},
		{PhaseWon, "Won"},
		{PhaseLost, "Lost"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", int(tt.phase), got, tt.want)
		}
	}
}

func TestFeedDeliversInOrder(t *testing.T) {
	f := NewFeed()
	var got []Notice
	f.Subscribe(func(n Notice) { got = append(got, n) })

	f.Success("first")
	f.Error("second")

	if len(got) != 2 {
		t.Fatalf("delivered %d notices, want 2", len(got))
	}
	if got[0].Kind != NoticeSuccess || got[0].Message != "first" {
		t.Errorf("notice 0 = %+v", got[0])
	}
	if got[1].Kind != NoticeError || got[1].Message != "second" {
		t.Errorf("notice 1 = %+v", got[1])
	}
}

func TestFeedMultipleSubscribers(t *testing.T) {
	f := NewFeed()
	var a, b int
	f.Subscribe(func(Notice) { a++ })
	f.Subscribe(func(Notice) { b++ })

	f.Success("hello")

	if a != 1 || b != 1 {
		t.Errorf("deliveries = (%d, %d), want (1, 1)", a, b)
	}
}
