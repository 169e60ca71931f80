package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pebble-arcade/internal/audio"
	"github.com/vovakirdan/pebble-arcade/internal/audio/synth"
	"github.com/vovakirdan/pebble-arcade/internal/core"
	"github.com/vovakirdan/pebble-arcade/internal/games/brawler"
	"github.com/vovakirdan/pebble-arcade/internal/games/gems"
	"github.com/vovakirdan/pebble-arcade/internal/games/pong"
	"github.com/vovakirdan/pebble-arcade/internal/platform/tui"
	"github.com/vovakirdan/pebble-arcade/internal/registry"
	"github.com/vovakirdan/pebble-arcade/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      string
	flagMap        string
	flagSound      float64
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Stone Brawl controls:
  A/D, Left/Right  - Walk (keeps walking until S/Down)
  S/Down           - Stop
  W/Up/Space       - Jump
  J/X              - Swing
  K/C              - Throw a stone

Gem Combo controls:
  Arrows/WASD      - Move cursor
  Space/Enter      - Clear the combo under the cursor

Common:
  P/Esc      - Pause
  R          - Restart (after game over)
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play brawler
  arcade play brawler --level 02-rooftops
  arcade play brawler --map ./my-stage.tmx
  arcade play gems --difficulty hard
  arcade play brawler --sound 0.5
  arcade play gems --config ./my-gems.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Brawler stage to start from (skips the level picker)")
	playCmd.Flags().StringVar(&flagMap, "map", "", "Play a single brawler stage from a TMX file")
	playCmd.Flags().Float64Var(&flagSound, "sound", 0, "Sound effect volume 0..1 (0 = off)")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	logger, closeLog := openLogger()
	defer closeLog()

	fx, closeAudio := openAudio(logger)
	defer closeAudio()

	cfg := runtimeConfig()

	proceed, err := prepareGame(gameID, cfg, logger, fx, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	// User pressed back or quit
	if !proceed {
		return
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	// Run the game
	runErr := tui.Run(game, store, cfg, logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig builds the runtime config from the global flags and the
// current terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openAudio starts the synthesiser when --sound is set. Games fall back to
// silence if the speaker cannot be opened.
func openAudio(logger *log.Logger) (audio.Player, func()) {
	if flagSound <= 0 {
		return audio.Nop{}, func() {}
	}
	s := synth.New(flagSound)
	if err := s.Start(); err != nil {
		logger.Warn("sound disabled", "error", err)
		fmt.Fprintf(os.Stderr, "Warning: sound disabled: %v\n", err)
		return audio.Nop{}, func() {}
	}
	logger.Info("sound enabled", "volume", flagSound)
	return s, s.Close
}

// prepareGame hands the command-line settings to the game package before
// the game is created. With pick set, the brawler asks for a stage unless
// --level or --map chose one. It reports false when the user backed out.
func prepareGame(gameID string, cfg core.RuntimeConfig, logger *log.Logger, fx audio.Player, pick bool) (bool, error) {
	switch gameID {
	case "brawler":
		brawler.SetConfigPath(flagConfig)
		brawler.SetDifficultyPreset(flagDifficulty)
		brawler.SetLogger(logger)
		brawler.SetAudio(fx)
		brawler.SetLevelFile(flagMap)
		brawler.SetStartLevel(flagLevel)

		if !pick || flagMap != "" || flagLevel != "" {
			return true, nil
		}

		// Show the stage picker
		selection, err := tui.RunLevelSelector(cfg)
		if err != nil {
			return false, err
		}
		if selection == nil {
			return false, nil
		}
		brawler.SetStartLevel(selection.Level)

	case "gems":
		gems.SetConfigPath(flagConfig)
		gems.SetDifficultyPreset(flagDifficulty)
		gems.SetLogger(logger)
		gems.SetAudio(fx)

	case "pong":
		pong.SetLogger(logger)
		pong.SetAudio(fx)
	}
	return true, nil
}
