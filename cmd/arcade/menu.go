package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pebble-arcade/internal/audio"
	"github.com/vovakirdan/pebble-arcade/internal/core"
	"github.com/vovakirdan/pebble-arcade/internal/platform/tui"
	"github.com/vovakirdan/pebble-arcade/internal/registry"
	"github.com/vovakirdan/pebble-arcade/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  1-9          - Play game by number
  Tab          - Scoreboard
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --db ./scores.db
  arcade menu --sound 0.4`,
	Run: runMenu,
}

func init() {
	// --fps, --seed, --db and --log are persistent flags on the root command.
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	menuCmd.Flags().Float64Var(&flagSound, "sound", 0, "Sound effect volume 0..1 (0 = off)")
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := openLogger()
	defer closeLog()

	fx, closeAudio := openAudio(logger)
	defer closeAudio()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: scores disabled: %v\n", err)
		store = nil
	} else {
		defer store.Close()
	}

	cfg := runtimeConfig()
	for {
		choice, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = choice.Config

		switch {
		case choice.Quit, choice.GameID == "" && !choice.WantsScoreboard:
			return

		case choice.WantsScoreboard:
			back, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if !back {
				return
			}

		default:
			if flagSeed == 0 {
				cfg.Seed = time.Now().UnixNano()
			}
			if err := playFromMenu(choice.GameID, store, cfg, logger, fx); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}

// playFromMenu runs one game and returns to the menu loop. Backing out of
// the stage picker is not an error.
func playFromMenu(id string, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger, fx audio.Player) error {
	ok, err := prepareGame(id, cfg, logger, fx, true)
	if err != nil || !ok {
		return err
	}
	game, err := registry.Create(id)
	if err != nil {
		return err
	}
	return tui.Run(game, store, cfg, logger)
}
