package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vkotlar/parlor/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the parlor with a game picker menu",
	Long: `Start the parlor in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
Esc in a game returns to the menu; progress is saved as you play.

Examples:
  parlor menu
  parlor menu --db ./parlor.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagListen, "listen", "", "Path to a file or FIFO of newline-delimited recognized speech")
}

func runMenu(_ *cobra.Command, _ []string) {
	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, ps := openStores(cfg, logger)
	deps := newDeps(ps, cfg.Content.Dir)

	listener, stopListener := openListener(flagListen, cfg.Voice.Source, logger)
	if stopListener != nil {
		defer stopListener()
	}

	menuErr := tui.RunMenu(deps, store, listener)

	if store != nil {
		store.Close()
	}

	if menuErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", menuErr)
		os.Exit(1)
	}
}
