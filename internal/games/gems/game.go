// Package gems implements Gem Combo, a same-game style puzzle. Picking a
// gem clears the whole same-type cluster around it; the rest falls down
// and empty columns close up. The game ends when no cluster is large
// enough to clear.
package gems

import (
	"errors"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/pebble-arcade/internal/audio"
	"github.com/vovakirdan/pebble-arcade/internal/combo"
	"github.com/vovakirdan/pebble-arcade/internal/config"
	"github.com/vovakirdan/pebble-arcade/internal/core"
	"github.com/vovakirdan/pebble-arcade/internal/registry"
)

// countUpTicks is how long the HUD score takes to catch up with a clear.
const countUpTicks = 30

// Game implements the Gem Combo game logic.
type Game struct {
	runtime    core.RuntimeConfig
	cfg        config.GemsConfig
	difficulty *config.DifficultyManager
	logger     *log.Logger
	audio      audio.Player
	rng        *rand.Rand

	grid     *combo.Grid
	detector *combo.Detector
	cursor   combo.Cell
	types    int // gem types on the current board

	tick      uint64
	score     int
	shown     float32 // score as displayed by the HUD
	countUp   *gween.Tween
	boards    int // boards emptied
	lastCombo int
	gameOver  bool
	paused    bool
	err       error
}

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	effects          audio.Player = audio.Nop{}
	gameLogger       *log.Logger
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetAudio routes sound effects of games created afterwards to p.
func SetAudio(p audio.Player) {
	if p == nil {
		p = audio.Nop{}
	}
	effects = p
}

// SetLogger routes diagnostics of games created afterwards to l.
func SetLogger(l *log.Logger) {
	gameLogger = l
}

// New creates a new Gem Combo game instance.
func New() *Game {
	logger := gameLogger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		logger: logger.WithPrefix("gems"),
		audio:  effects,
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "gems"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Gem Combo"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	cfg, err := config.LoadGems(configPath)
	if err != nil {
		g.logger.Warn("config fallback to defaults", "error", err)
		cfg = config.DefaultGemsConfig()
	}
	if difficultyPreset != "" {
		config.ApplyGemsPreset(&cfg, difficultyPreset)
	}
	cfg.Board.Rows = max(1, cfg.Board.Rows)
	cfg.Board.Cols = max(1, cfg.Board.Cols)
	cfg.Scoring.MinCombo = max(2, cfg.Scoring.MinCombo)
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.tick = 0
	g.score = 0
	g.shown = 0
	g.countUp = nil
	g.boards = 0
	g.lastCombo = 0
	g.gameOver = false
	g.paused = false
	g.err = nil
	g.cursor = combo.At(0, 0)

	if err := g.newBoard(); err != nil {
		g.fail(err)
	}
}

func (g *Game) fail(err error) {
	g.err = err
	g.gameOver = true
	g.logger.Error("gems unavailable", "error", err)
}

// newBoard deals a full board. Boards after the first may hold more gem
// types as difficulty rises.
func (g *Game) newBoard() error {
	g.types = g.difficulty.GemTypes(g.cfg.Board.Types, g.score, int(g.tick))
	grid, err := fillBoard(g.rng, g.cfg.Board.Rows, g.cfg.Board.Cols, g.types)
	if err != nil {
		return err
	}
	g.setGrid(grid)
	g.logger.Debug("new board", "rows", grid.Rows(), "cols", grid.Cols(), "types", g.types)
	return g.checkMoves()
}

func (g *Game) setGrid(grid *combo.Grid) {
	g.grid = grid
	g.detector = combo.NewDetector(grid)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		g.tickCountUp()
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	g.tickCountUp()

	switch {
	case in.Has(core.ActionUp):
		g.moveCursor(-1, 0)
	case in.Has(core.ActionDown):
		g.moveCursor(1, 0)
	}
	switch {
	case in.Has(core.ActionLeft):
		g.moveCursor(0, -1)
	case in.Has(core.ActionRight):
		g.moveCursor(0, 1)
	}

	if in.Has(core.ActionSelect) {
		if err := g.pick(g.cursor); err != nil {
			g.fail(err)
		}
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) moveCursor(dr, dc int) {
	g.cursor = combo.At(
		core.Clamp(g.cursor.Row+dr, 0, g.grid.Rows()-1),
		core.Clamp(g.cursor.Col+dc, 0, g.grid.Cols()-1),
	)
}

// pick clears the combo under cell when it is large enough. Picking an
// empty cell or a small combo does nothing.
func (g *Game) pick(cell combo.Cell) error {
	c, err := g.detector.ComboAt(cell)
	if errors.Is(err, combo.ErrEmptyCell) {
		return nil
	}
	if err != nil {
		return err
	}
	if c.Len() < g.cfg.Scoring.MinCombo {
		return nil
	}

	for _, pos := range c.Cells() {
		if err := g.grid.Remove(pos); err != nil {
			return err
		}
	}
	grid, err := collapse(g.grid)
	if err != nil {
		return err
	}
	g.setGrid(grid)

	g.lastCombo = c.Len()
	g.addScore(comboScore(c.Len()))
	g.audio.Play(audio.EffectHit)
	g.logger.Debug("combo cleared", "type", c.Type, "size", c.Len(), "score", g.score)

	if g.grid.Len() == 0 {
		g.boards++
		g.addScore(g.cfg.Scoring.ClearBonus)
		g.audio.Play(audio.EffectClear)
		g.logger.Info("board cleared", "boards", g.boards, "score", g.score)
		return g.newBoard()
	}
	return g.checkMoves()
}

// checkMoves ends the game when no combo can be cleared.
func (g *Game) checkMoves() error {
	largest, err := g.detector.Largest()
	if err != nil {
		return err
	}
	if largest < g.cfg.Scoring.MinCombo {
		g.gameOver = true
		g.logger.Info("no moves left", "score", g.score, "gems", g.grid.Len())
	}
	return nil
}

// addScore raises the score and restarts the HUD count-up from the value
// currently shown.
func (g *Game) addScore(n int) {
	if n <= 0 {
		return
	}
	g.score += n
	g.countUp = gween.New(g.shown, float32(g.score), countUpTicks, ease.OutCubic)
}

func (g *Game) tickCountUp() {
	if g.countUp == nil {
		return
	}
	v, done := g.countUp.Update(1)
	g.shown = v
	if done {
		g.shown = float32(g.score)
		g.countUp = nil
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Register the game with the registry
func init() {
	registry.Register("gems", func() registry.Game {
		return New()
	})
}
