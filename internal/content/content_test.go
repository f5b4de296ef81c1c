package content

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedWords(t *testing.T) {
	levels, err := Words("")
	if err != nil {
		t.Fatalf("Words: %v", err)
	}
	if len(levels) == 0 {
		t.Fatal("no word levels")
	}
	for i, l := range levels {
		if l.Word == "" {
			t.Errorf("level %d: empty word", i+1)
		}
		if l.Hint == "" {
			t.Errorf("level %d: empty hint", i+1)
		}
	}
	if levels[0].Word != "cat" {
		t.Errorf("level 1 word = %q, want cat", levels[0].Word)
	}
}

func TestEmbeddedQuiz(t *testing.T) {
	levels, err := Quiz("")
	if err != nil {
		t.Fatalf("Quiz: %v", err)
	}
	for i, l := range levels {
		if len(l.Questions) == 0 {
			t.Errorf("level %d: no questions", i+1)
		}
		for j, q := range l.Questions {
			if len(q.Choices) < 2 {
				t.Errorf("level %d question %d: %d choices", i+1, j+1, len(q.Choices))
			}
			if q.Answer < 1 || q.Answer > len(q.Choices) {
				t.Errorf("level %d question %d: answer %d out of range", i+1, j+1, q.Answer)
			}
		}
	}
}

func TestEmbeddedNumbers(t *testing.T) {
	levels, err := Numbers("")
	if err != nil {
		t.Fatalf("Numbers: %v", err)
	}
	for i, l := range levels {
		if l.Min >= l.Max {
			t.Errorf("level %d: range [%d, %d] is empty", i+1, l.Min, l.Max)
		}
	}
}

func TestEmbeddedPatterns(t *testing.T) {
	levels, err := Patterns("")
	if err != nil {
		t.Fatalf("Patterns: %v", err)
	}
	for i, l := range levels {
		if l.Length < 1 {
			t.Errorf("level %d: length %d", i+1, l.Length)
		}
		if len([]rune(l.Symbols)) < 2 {
			t.Errorf("level %d: pool %q too small", i+1, l.Symbols)
		}
	}
}

func TestEmbeddedMemory(t *testing.T) {
	levels, err := Memory("")
	if err != nil {
		t.Fatalf("Memory: %v", err)
	}
	for i, l := range levels {
		if l.Pairs < 1 {
			t.Errorf("level %d: %d pairs", i+1, l.Pairs)
		}
		if len([]rune(l.Symbols)) < l.Pairs {
			t.Errorf("level %d: pool %q smaller than %d pairs", i+1, l.Symbols, l.Pairs)
		}
	}
}

func TestEmbeddedAdventure(t *testing.T) {
	levels, err := Adventure("")
	if err != nil {
		t.Fatalf("Adventure: %v", err)
	}
	for i, l := range levels {
		if l.Node(l.Start) == nil {
			t.Errorf("level %d: start node %q missing", i+1, l.Start)
			continue
		}
		hasEnding := false
		for _, n := range l.Nodes {
			if n.Ending {
				hasEnding = true
			}
			for _, c := range n.Choices {
				if l.Node(c.Next) == nil {
					t.Errorf("level %d node %q: edge to missing node %q", i+1, n.ID, c.Next)
				}
			}
			if !n.Ending && len(n.Choices) == 0 {
				t.Errorf("level %d node %q: dead end", i+1, n.ID)
			}
		}
		if !hasEnding {
			t.Errorf("level %d: no ending node", i+1)
		}
	}
}

func TestCustomPackDir(t *testing.T) {
	dir := t.TempDir()
	data := "levels:\n  - {word: zebra, hint: stripes}\n"
	if err := os.WriteFile(filepath.Join(dir, "words.yaml"), []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	levels, err := Words(dir)
	if err != nil {
		t.Fatalf("Words(custom): %v", err)
	}
	if len(levels) != 1 || levels[0].Word != "zebra" {
		t.Errorf("custom pack = %+v", levels)
	}
}

func TestMissingCustomPackErrors(t *testing.T) {
	if _, err := Words(t.TempDir()); err == nil {
		t.Error("expected error for custom dir without the pack")
	}
}
