// Package registry provides a global registry for game session factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate sessions without hardcoded dependencies.
package registry

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/vkotlar/parlor/internal/command"
	"github.com/vkotlar/parlor/internal/core"
	"github.com/vkotlar/parlor/internal/progress"
)

// Session is the interface every mini-game implements. Sessions contain
// pure state-machine logic with no UI dependencies; the platform maps
// input to actions, drives the one-second tick, and renders snapshots.
type Session interface {
	// ID returns a unique identifier (e.g. "wordguess", "quiz").
	// Used for CLI commands and progress storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Start draws fresh content at the progress record's current level and
	// resets the session into the Memorize phase. Called once before play
	// and again by a NewGame action or the post-win restart.
	Start()

	// Tick advances session-owned countdowns by one second: the memorize
	// window and the delay before a won session restarts. Called at 1 Hz
	// by the platform; tests call it directly.
	Tick()

	// Apply feeds one structured action into the state machine. Invalid or
	// out-of-phase actions produce notices, never errors: the session is
	// always left in a well-defined state.
	Apply(a core.Action)

	// Phase returns the current state-machine phase.
	Phase() core.Phase

	// Rules returns the game's command rules in priority order, without
	// the shared "new game" rule the platform appends last.
	Rules() []command.Rule

	// Snapshot returns the render-ready view of the session.
	Snapshot() core.Snapshot
}

// Deps carries the collaborators a session needs. Sessions read the
// current level from Progress and push score/level deltas back; Feed
// receives notices; Rand seeds content draws for determinism in tests.
type Deps struct {
	Progress    *progress.Store
	Feed        *core.Feed
	Rand        *rand.Rand
	ContentPath string // Optional override pack directory, usually empty
}

// Info contains metadata about a registered game.
type Info struct {
	ID    string
	Title string
}

// Factory creates a new session instance with its collaborators.
// It fails only when the game's content pack cannot be loaded.
type Factory func(d Deps) (Session, error)

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a session factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
	titles[id] = title
}

// List returns information about all registered games, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for id := range factories {
		result = append(result, Info{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a new session by its ID.
// Returns an error if the game ID is not registered.
func Create(id string, d Deps) (Session, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(d)
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Title returns the display title for a registered game id, or the id
// itself when unknown.
func Title(id string) string {
	mu.RLock()
	defer mu.RUnlock()

	if t, ok := titles[id]; ok {
		return t
	}
	return id
}
