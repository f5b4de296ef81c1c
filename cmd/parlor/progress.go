package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vkotlar/parlor/internal/platform/tui"
	"github.com/vkotlar/parlor/internal/registry"
)

var progressCmd = &cobra.Command{
	Use:   "progress [game]",
	Short: "Show saved progress and recent results",
	Long: `Display saved progress for your games.

With no arguments, opens an interactive board you can browse.
With a game ID, prints that game's progress and recent results.

Examples:
  parlor progress
  parlor progress wordguess`,
	Args: cobra.MaximumNArgs(1),
	Run:  runProgress,
}

func runProgress(cmd *cobra.Command, args []string) {
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

	if len(args) == 0 {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunBoard(ps, store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'parlor list' to see available games.")
		os.Exit(1)
	}

	rec := ps.Get(gameID)
	fmt.Printf("Progress - %s\n", registry.Title(gameID))
	fmt.Println()
	fmt.Printf("  Current level:  %d\n", rec.CurrentLevel)
	fmt.Printf("  Highest level:  %d\n", rec.HighestLevel)
	fmt.Printf("  Total score:    %d\n", rec.TotalScore)
	fmt.Println()

	if store == nil {
		fmt.Println("No database available, history not recorded.")
		return
	}

	entries, err := store.RecentResults(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}

	if len(entries) == 0 {
		fmt.Println("No games finished yet.")
		fmt.Println()
		fmt.Printf("Play 'parlor play %s' to record the first one!\n", gameID)
		return
	}

	fmt.Println("Recent results:")
	fmt.Printf("  %-18s  %-6s  %-8s  %s\n", "When", "Level", "Score", "Outcome")
	fmt.Printf("  %-18s  %-6s  %-8s  %s\n", "----", "-----", "-----", "-------")
	for _, e := range entries {
		fmt.Printf("  %-18s  %-6d  %-8d  %s\n",
			e.CreatedAt.Format("2006-01-02 15:04"), e.Level, e.Score, e.Outcome)
	}

	if best, err := store.BestScore(gameID); err == nil && best > 0 {
		fmt.Println()
		fmt.Printf("Best single game: %d\n", best)
	}
}
