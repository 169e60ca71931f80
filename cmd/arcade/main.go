// arcade is a terminal arcade built on a shared tick-driven simulation
// core: Stone Brawl, a side-view brawler, Gem Combo, a cluster-clearing
// puzzle, and Pong against the CPU.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores <game>     - Show high scores for a game
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.arcade/scores.db)
//	--log                - Write a log to ~/.arcade/arcade.log
//	--log-level <level>  - Log level: debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pebble-arcade/internal/core"
	"github.com/vovakirdan/pebble-arcade/internal/platform/tui"

	// Import games to register them
	_ "github.com/vovakirdan/pebble-arcade/internal/games/brawler"
	_ "github.com/vovakirdan/pebble-arcade/internal/games/gems"
	_ "github.com/vovakirdan/pebble-arcade/internal/games/pong"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLog      bool
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Pebble Arcade - Play brawler, puzzle and paddle games in your terminal",
	Long: `Pebble Arcade is a terminal-based gaming platform with three games:

  brawler  - Stone Brawl: walk, jump, swing and throw stones at guards
  gems     - Gem Combo: clear clusters of matching gems
  pong     - Pong: first to five against the CPU paddle

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  arcade list
  arcade play brawler
  arcade play gems --seed 42
  arcade menu --log
  arcade serve --ssh :2222
  arcade scores brawler`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.DefaultTickRate, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().BoolVar(&flagLog, "log", false, "Write a log file to "+tui.DefaultLogPath)
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// openLogger returns the session logger. Without --log everything is
// discarded, since the game owns the terminal.
func openLogger() (*log.Logger, func()) {
	discard := log.New(io.Discard)
	if !flagLog {
		return discard, func() {}
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
		level = log.InfoLevel
	}

	logger, closer, err := tui.OpenLogFile(tui.DefaultLogPath, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return discard, func() {}
	}
	return logger, func() { closer.Close() }
}
