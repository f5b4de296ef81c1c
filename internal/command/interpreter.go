// Package command parses free-form text commands into structured game
// actions. Each game contributes an ordered list of rules; evaluation is
// first-match-wins in that order, so overlapping inputs resolve by rule
// priority rather than by accident. Matching is case-insensitive and
// unrecognized text is reported as a miss for the caller to drop silently.
package command

import (
	"regexp"
	"strings"

	"github.com/vkotlar/parlor/internal/core"
)

// Rule pairs a matcher with an action constructor.
type Rule struct {
	// Usage is the human-readable command form shown in the UI,
	// e.g. "guess <letter>".
	Usage string

	// Match returns the action for text, or ok=false when the rule
	// does not apply.
	Match func(text string) (core.Action, bool)
}

// Interpreter evaluates rules in fixed priority order.
type Interpreter struct {
	rules []Rule
}

// New builds an interpreter from rules. Rule order is the tie-break for
// ambiguous input and must be preserved by callers.
func New(rules ...Rule) *Interpreter {
	return &Interpreter{rules: rules}
}

// Interpret parses text into an action. The boolean is false when no rule
// matches; callers ignore such input without notifying the user.
func (in *Interpreter) Interpret(text string) (core.Action, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}
	for _, r := range in.rules {
		if a, ok := r.Match(text); ok {
			return a, true
		}
	}
	return nil, false
}

// Usages returns the usage strings of all rules, in priority order.
func (in *Interpreter) Usages() []string {
	out := make([]string, len(in.rules))
	for i, r := range in.rules {
		out[i] = r.Usage
	}
	return out
}

// Regex builds a rule from a case-insensitive pattern. The pattern is not
// anchored, so a command phrase is recognized anywhere inside recognized
// speech ("please guess x"); patterns anchor themselves where needed.
// The build func receives the submatch groups (index 0 is the full match).
func Regex(usage, pattern string, build func(groups []string) (core.Action, bool)) Rule {
	re := regexp.MustCompile(`(?i)` + pattern)
	return Rule{
		Usage: usage,
		Match: func(text string) (core.Action, bool) {
			m := re.FindStringSubmatch(text)
			if m == nil {
				return nil, false
			}
			return build(m)
		},
	}
}

// Contains builds a rule that fires when text contains substr anywhere,
// case-insensitively. Used for loose phrases like "new game".
func Contains(usage, substr string, build func() core.Action) Rule {
	needle := strings.ToLower(substr)
	return Rule{
		Usage: usage,
		Match: func(text string) (core.Action, bool) {
			if !strings.Contains(strings.ToLower(text), needle) {
				return nil, false
			}
			return build(), true
		},
	}
}

// NewGameRule matches any text containing "new game". Every session
// appends it after its own rules so game commands win the tie-break.
func NewGameRule() Rule {
	return Contains("new game", "new game", func() core.Action {
		return core.NewGame{}
	})
}
