package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pebble-arcade/internal/registry"
	"github.com/vovakirdan/pebble-arcade/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every game registered in the arcade with its best stored score.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	// Best scores are optional; the list works without a database.
	store, err := storage.Open(flagDBPath)
	if err != nil {
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	fmt.Println("Available games:")
	fmt.Println()

	idW, titleW := len("ID"), len("Title")
	for _, g := range games {
		idW = max(idW, len(g.ID))
		titleW = max(titleW, len(g.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", idW, "ID", titleW, "Title", "Best")
	fmt.Printf("  %-*s  %-*s  %s\n", idW, "--", titleW, "-----", "----")

	for _, g := range games {
		best := "-"
		if store != nil {
			if hs, err := store.HighScore(g.ID); err == nil && hs > 0 {
				best = fmt.Sprint(hs)
			}
		}
		fmt.Printf("  %-*s  %-*s  %s\n", idW, g.ID, titleW, g.Title, best)
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
}
