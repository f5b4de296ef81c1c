package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vkotlar/parlor/internal/platform/tui"
	"github.com/vkotlar/parlor/internal/registry"
	"github.com/vkotlar/parlor/internal/voice"
)

var flagListen string

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Type commands at the prompt, or pipe recognized speech into a FIFO and
point --listen at it. Both go through the same command matcher, so
"guess a", "solve cat" and "new game" work either way.

Controls:
  Enter    - Submit the typed command
  Esc      - Quit back to the shell
  Ctrl+C   - Quit

Examples:
  parlor play wordguess
  parlor play quiz --seed 42
  parlor play wordguess --listen /tmp/voice.fifo`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagListen, "listen", "", "Path to a file or FIFO of newline-delimited recognized speech")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'parlor list' to see available games.")
		os.Exit(1)
	}

	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, ps := openStores(cfg, logger)
	deps := newDeps(ps, cfg.Content.Dir)

	session, err := registry.Create(gameID, deps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	listener, stopListener := openListener(flagListen, cfg.Voice.Source, logger)
	if stopListener != nil {
		defer stopListener()
	}

	runErr := tui.Run(session, deps.Feed, store, listener)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// openListener opens the recognized-speech stream. The keyboard owns
// stdin in the TUI, so "stdin" (the piped-input default) means no
// separate listener: typed text already goes through the interpreter.
func openListener(flagValue, configSource string, logger *log.Logger) (voice.Listener, func()) {
	source := flagValue
	if source == "" {
		source = configSource
	}
	if source == "" || source == "stdin" {
		return nil, nil
	}

	f, err := os.Open(source)
	if err != nil {
		logger.Warn("could not open voice source, keyboard only", "source", source, "error", err)
		return nil, nil
	}

	l := voice.NewLineListener(f)
	if err := l.Start(); err != nil {
		logger.Warn("could not start voice listener, keyboard only", "error", err)
		f.Close()
		return nil, nil
	}
	return l, func() {
		l.Stop()
		f.Close()
	}
}
