package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vkotlar/parlor/internal/registry"
)

var flagResetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset <game>",
	Short: "Reset a game's saved progress",
	Long: `Reset the saved progress for one game back to level 1, score 0.

Result history is kept; only the progress record is cleared.

Examples:
  parlor reset wordguess
  parlor reset wordguess --yes`,
	Args: cobra.ExactArgs(1),
	Run:  runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetYes, "yes", false, "Skip the confirmation prompt")
}

func runReset(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'parlor list' to see available games.")
		os.Exit(1)
	}

	if !flagResetYes {
		fmt.Printf("Reset all progress for %s? [y/N] ", registry.Title(gameID))
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" && answer != "yes" {
			fmt.Println("Aborted.")
			return
		}
	}

	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, ps := openStores(cfg, logger)
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	ps.Reset(gameID)
	fmt.Printf("Progress for %s reset to level 1, score 0.\n", registry.Title(gameID))
}
