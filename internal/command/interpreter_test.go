package command

import (
	"testing"

	"github.com/vkotlar/parlor/internal/core"
)

func TestFirstMatchWins(t *testing.T) {
	// Two rules that both match "go"; registration order decides.
	first := Contains("first", "go", func() core.Action { return core.NewGame{} })
	second := Contains("second", "go", func() core.Action { return core.SolveAttempt{Word: "x"} })

	in := New(first, second)
	a, ok := in.Interpret("go go go")
	if !ok {
		t.Fatal("expected a match")
	}
	if _, isFirst := a.(core.NewGame); !isFirst {
		t.Errorf("got %T, want the first rule's action", a)
	}
}

func TestRegexCaseInsensitive(t *testing.T) {
	rule := Regex("guess <letter>", `\bguess\s+(\pL)\b`, func(m []string) (core.Action, bool) {
		return core.GuessLetter{Letter: []rune(m[1])[0]}, true
	})
	in := New(rule)

	for _, text := range []string{"guess a", "GUESS A", "Guess a", "  guess a  "} {
		if _, ok := in.Interpret(text); !ok {
			t.Errorf("Interpret(%q): no match", text)
		}
	}
}

func TestNoMatchIsSilent(t *testing.T) {
	in := New(NewGameRule())

	for _, text := range []string{"", "   ", "hello", "newgame", "game new"} {
		if a, ok := in.Interpret(text); ok {
			t.Errorf("Interpret(%q) = %v, want miss", text, a)
		}
	}
}

func TestNewGameRuleMatchesAnywhere(t *testing.T) {
	in := New(NewGameRule())

	for _, text := range []string{"new game", "NEW GAME", "start a new game please"} {
		a, ok := in.Interpret(text)
		if !ok {
			t.Errorf("Interpret(%q): no match", text)
			continue
		}
		if _, isNew := a.(core.NewGame); !isNew {
			t.Errorf("Interpret(%q) = %T, want NewGame", text, a)
		}
	}
}

func TestUsages(t *testing.T) {
	in := New(
		Contains("a", "a", func() core.Action { return core.NewGame{} }),
		Contains("b", "b", func() core.Action { return core.NewGame{} }),
	)
	u := in.Usages()
	if len(u) != 2 || u[0] != "a" || u[1] != "b" {
		t.Errorf("Usages() = %v, want [a b] in order", u)
	}
}
