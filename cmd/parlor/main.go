// parlor is a terminal arcade of short command-driven games. Every game
// follows the same loop: memorize the target, then guess piece by piece
// or solve outright, with spoken or typed commands.
//
// Usage:
//
//	parlor list              - List available games
//	parlor play <game>       - Play a game
//	parlor menu              - Start a game picker menu
//	parlor serve             - Start SSH server for remote play
//	parlor progress [game]   - Show saved progress and history
//	parlor reset <game>      - Reset a game's saved progress
//
// Global flags:
//
//	--db <path>      - Progress database path (default: ~/.parlor/parlor.db)
//	--seed <value>   - RNG seed for reproducible content draws
//	--config <path>  - Application config YAML
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vkotlar/parlor/internal/config"
	"github.com/vkotlar/parlor/internal/core"
	"github.com/vkotlar/parlor/internal/progress"
	"github.com/vkotlar/parlor/internal/registry"
	"github.com/vkotlar/parlor/internal/storage"

	// Import games to register them
	_ "github.com/vkotlar/parlor/internal/games/adventure"
	_ "github.com/vkotlar/parlor/internal/games/memory"
	_ "github.com/vkotlar/parlor/internal/games/numguess"
	_ "github.com/vkotlar/parlor/internal/games/pattern"
	_ "github.com/vkotlar/parlor/internal/games/quiz"
	_ "github.com/vkotlar/parlor/internal/games/wordguess"
)

var (
	// Global flags
	flagDBPath  string
	flagSeed    int64
	flagConfig  string
	flagContent string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "parlor",
	Short: "Parlor - memorize-and-guess games in your terminal",
	Long: `Parlor is a terminal arcade of short command-driven games.

Each game shows you a target for a few seconds, then takes guesses one
piece at a time or a full solve. Commands can be typed or piped in from
a speech recognizer. Level and score survive restarts.

Available commands:
  list      - Show all available games
  play      - Play a specific game directly
  menu      - Interactive game picker menu
  serve     - Start SSH server for remote play
  progress  - View saved progress and history
  reset     - Reset a game's saved progress

Examples:
  parlor list
  parlor play wordguess
  parlor play wordguess --listen /tmp/voice.fifo
  parlor menu
  parlor serve --ssh :2222
  parlor progress wordguess`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to progress database (default: ~/.parlor/parlor.db)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to application config YAML")
	rootCmd.PersistentFlags().StringVar(&flagContent, "content", "", "Path to a content pack directory override")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(resetCmd)
}

// loadConfig resolves the application config and applies flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagContent != "" {
		cfg.Content.Dir = flagContent
	}
	return cfg, nil
}

// newLogger builds the CLI logger shared by all commands.
func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "parlor",
	})
}

// openStores opens the progress database and builds the in-memory
// progress store on top of it. A missing or broken database is not
// fatal: progress then lives in memory for the run.
func openStores(cfg config.Config, logger *log.Logger) (*storage.Store, *progress.Store) {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		logger.Warn("could not open progress database, progress will not persist", "error", err)
		store = nil
	}

	var persister progress.Persister
	if store != nil {
		persister = store
	} else {
		persister = &progress.MemoryPersister{}
	}
	return store, progress.NewStore(persister, logger)
}

// newDeps builds the collaborator set handed to session factories.
func newDeps(ps *progress.Store, contentDir string) registry.Deps {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return registry.Deps{
		Progress:    ps,
		Feed:        core.NewFeed(),
		Rand:        rand.New(rand.NewSource(seed)),
		ContentPath: contentDir,
	}
}
