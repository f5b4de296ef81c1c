// Package content provides level-indexed puzzle payloads for every game.
// Packs are YAML documents embedded in the binary, overridable from the
// user's content directory. Each pack is an ordered list of levels; games
// index with currentLevel-1 and wrap modulo the pack length so the arcade
// keeps playing past the last authored level.
package content

// WordLevel is one word-guess puzzle.
type WordLevel struct {
	Word string `yaml:"word"`
	Hint string `yaml:"hint"`
}

// Question is one multiple-choice quiz question. Answer is 1-based.
type Question struct {
	Prompt  string   `yaml:"prompt"`
	Choices []string `yaml:"choices"`
	Answer  int      `yaml:"answer"`
}

// QuizLevel is an ordered question set played in one session.
type QuizLevel struct {
	Topic     string     `yaml:"topic"`
	Questions []Question `yaml:"questions"`
}

// NumberLevel is the inclusive range a hidden number is drawn from.
type NumberLevel struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// PatternLevel describes a sequence to memorize: its length and the
// symbol pool it is drawn from.
type PatternLevel struct {
	Length  int    `yaml:"length"`
	Symbols string `yaml:"symbols"`
}

// MemoryLevel describes a pair-matching grid: how many pairs, drawn from
// the symbol pool.
type MemoryLevel struct {
	Pairs   int    `yaml:"pairs"`
	Symbols string `yaml:"symbols"`
}

// StoryChoice is one branch out of a story node. Fatal branches cost an
// attempt and leave the player where they stand.
type StoryChoice struct {
	Label string `yaml:"label"`
	Next  string `yaml:"next"`
	Fatal bool   `yaml:"fatal"`
}

// StoryNode is one scene of an adventure level.
type StoryNode struct {
	ID      string        `yaml:"id"`
	Text    string        `yaml:"text"`
	Choices []StoryChoice `yaml:"choices"`
	Ending  bool          `yaml:"ending"`
}

// AdventureLevel is a small narrative node graph with a single start node.
type AdventureLevel struct {
	Title string      `yaml:"title"`
	Start string      `yaml:"start"`
	Nodes []StoryNode `yaml:"nodes"`
}

// Node returns the node with the given id, or nil.
func (l AdventureLevel) Node(id string) *StoryNode {
	for i := range l.Nodes {
		if l.Nodes[i].ID == id {
			return &l.Nodes[i]
		}
	}
	return nil
}
