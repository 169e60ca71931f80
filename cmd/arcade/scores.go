package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pebble-arcade/internal/registry"
	"github.com/vovakirdan/pebble-arcade/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top 10 high scores for the specified game.

Examples:
  arcade scores brawler
  arcade scores gems`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	info, _ := registry.Lookup(gameID)
	title := info.Title

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}

	// Get top scores
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// Display scores
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return
	}

	playerW := len("Player")
	for _, e := range scores {
		playerW = max(playerW, len(e.Player))
	}

	fmt.Printf("  %-4s  %-10s  %-*s  %s\n", "Rank", "Score", playerW, "Player", "Date")
	fmt.Printf("  %-4s  %-10s  %-*s  %s\n", "----", "-----", playerW, "------", "----")

	for i, e := range scores {
		player := e.Player
		if player == "" {
			player = "local"
		}
		fmt.Printf("  %-4d  %-10d  %-*s  %s\n", i+1, e.Score, playerW, player, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	// Show summary
	fmt.Println()
	stats, err := store.Stats(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}
	fmt.Printf("Best: %d  Games: %d  Average: %.0f  Last played: %s\n",
		stats.Best, stats.Games, stats.Average, stats.Last.Format("2006-01-02 15:04"))
}
