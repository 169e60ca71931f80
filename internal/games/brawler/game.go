// Package brawler implements Stone Brawl, a side-view platform brawler.
// The player walks, jumps, swings and throws stones at guards that patrol
// the floors of Tiled-built stages and strike back when the player comes
// close.
package brawler

import (
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"

	"github.com/vovakirdan/pebble-arcade/internal/audio"
	"github.com/vovakirdan/pebble-arcade/internal/config"
	"github.com/vovakirdan/pebble-arcade/internal/core"
	"github.com/vovakirdan/pebble-arcade/internal/levels"
	"github.com/vovakirdan/pebble-arcade/internal/registry"
	"github.com/vovakirdan/pebble-arcade/internal/sim"
)

// stageClearTicks is how long the "stage cleared" banner holds the game.
const stageClearTicks = 90

// Game implements the Stone Brawl game logic.
type Game struct {
	runtime    core.RuntimeConfig
	cfg        config.BrawlerConfig
	difficulty *config.DifficultyManager
	logger     *log.Logger
	audio      audio.Player

	playerKind sim.ActorKind
	guardKind  sim.ActorKind
	stoneKind  sim.StoneKind

	stages     []*levels.Level
	stageIndex int
	stage      *levels.Level
	level      *sim.Level
	player     *sim.Actor
	guards     []*sim.Actor

	walk        sim.Facing // latched walk direction, 0 when standing
	attackTicks int        // ticks left in the current player swing
	swingHits   map[donburi.Entity]bool
	guardSwung  map[donburi.Entity]bool // guards whose current swing already landed
	invulnTicks int
	flash       *gween.Tween

	tick       uint64
	score      int
	kills      int
	clearTicks int
	cleared    bool
	won        bool
	gameOver   bool
	paused     bool
	err        error
}

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	startLevel       string
	levelFile        string
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

// SetStartLevel selects the built-in stage to start from. Empty starts
// the campaign at its first stage.
func SetStartLevel(name string) {
	startLevel = name
}

// SetLevelFile plays a single TMX map from disk instead of the campaign.
func SetLevelFile(path string) {
	levelFile = path
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

// New creates a new Stone Brawl game instance.
func New() *Game {
	logger := gameLogger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		logger: logger.WithPrefix("brawler"),
		audio:  effects,
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "brawler"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Stone Brawl"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadBrawler(configPath)
	if err != nil {
		g.logger.Warn("config fallback to defaults", "error", err)
		cfg = config.DefaultBrawlerConfig()
	}
	if difficultyPreset != "" {
		config.ApplyBrawlerPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.tick = 0
	g.score = 0
	g.kills = 0
	g.won = false
	g.gameOver = false
	g.paused = false
	g.err = nil

	if err := g.loadKinds(); err != nil {
		g.fail(err)
		return
	}
	if err := g.loadStages(); err != nil {
		g.fail(err)
		return
	}
	g.startStage(g.stageIndex, g.playerKind.Health)
}

func (g *Game) fail(err error) {
	g.err = err
	g.gameOver = true
	g.logger.Error("brawler unavailable", "error", err)
}

func (g *Game) loadKinds() error {
	var err error
	if g.playerKind, err = actorKind("player", g.cfg.Player); err != nil {
		return err
	}
	if g.guardKind, err = actorKind("guard", g.cfg.Guard); err != nil {
		return err
	}
	g.stoneKind, err = stoneKind(g.cfg.Stone)
	return err
}

// loadStages reads the campaign (or the single custom map) and picks the
// starting stage.
func (g *Game) loadStages() error {
	g.stages = g.stages[:0]
	g.stageIndex = 0

	if levelFile != "" {
		lv, err := levels.Load(os.DirFS(filepath.Dir(levelFile)), filepath.Base(levelFile))
		if err != nil {
			return err
		}
		g.stages = append(g.stages, lv)
		return nil
	}

	for i, name := range levels.Names() {
		lv, err := levels.Builtin(name)
		if err != nil {
			return err
		}
		g.stages = append(g.stages, lv)
		if name == startLevel {
			g.stageIndex = i
		}
	}
	if len(g.stages) == 0 {
		return fmt.Errorf("brawler: %w", fs.ErrNotExist)
	}
	if startLevel != "" && g.stages[g.stageIndex].Name != startLevel {
		g.logger.Warn("unknown start level, starting campaign", "level", startLevel)
	}
	return nil
}

// startStage builds a fresh simulation for stage i. The player keeps the
// health it finished the previous stage with.
func (g *Game) startStage(i int, health int) {
	g.stageIndex = i
	g.stage = g.stages[i]
	g.cleared = false
	g.clearTicks = 0
	g.walk = 0
	g.attackTicks = 0
	g.invulnTicks = 0
	g.flash = nil
	g.swingHits = make(map[donburi.Entity]bool)
	g.guardSwung = make(map[donburi.Entity]bool)

	g.level = sim.NewLevel(
		sim.Physics{Gravity: g.cfg.Physics.Gravity, MaxFall: g.cfg.Physics.MaxFall},
		sim.WithLogger(g.logger),
		sim.WithAudio(g.audio),
	)
	for _, f := range g.stage.Floors {
		g.level.AddFloor(f.X, f.Y, f.W, f.H)
	}

	g.player = g.level.SpawnActor(&g.playerKind, core.V(g.stage.Player.X, g.stage.Player.Y), spawnFacing(g.stage.Player))
	g.player.State.Health = health
	g.level.SetTarget(g.player)

	// Guards of later stages are faster and turn around sooner.
	kind := g.guardKind
	kind.MaxSpeed = g.difficulty.Speed(g.guardKind.MaxSpeed, g.score, int(g.tick))
	stageGuard := &kind

	g.guards = g.guards[:0]
	for _, sp := range g.stage.Guards {
		guard := g.level.SpawnActor(stageGuard, core.V(sp.X, sp.Y), spawnFacing(sp))
		patrol := kind.WalkTimeMax
		if sp.WalkTimeMax > 0 {
			patrol = sp.WalkTimeMax
		}
		guard.State.WalkTimeMax = g.difficulty.PatrolTicks(patrol, g.score, int(g.tick))
		g.guards = append(g.guards, guard)
	}

	g.logger.Info("stage started", "stage", g.stage.Name, "guards", len(g.guards), "health", health)
}

func spawnFacing(sp levels.Spawn) sim.Facing {
	if sp.FacingLeft {
		return sim.FacingLeft
	}
	return sim.FacingRight
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver || g.won {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tick++

	if g.cleared {
		g.clearTicks--
		if g.clearTicks <= 0 {
			g.advanceStage()
		}
		return core.StepResult{State: g.State()}
	}

	intents := make(map[donburi.Entity]sim.Intent, len(g.guards)+1)
	intents[g.player.Entity()] = g.playerIntent(in)
	for _, guard := range g.guards {
		if guard.Live() {
			intents[guard.Entity()] = sim.Intent{Anim: sim.AnimWalk}
		}
	}

	if err := g.level.Step(intents); err != nil {
		g.logger.Warn("step", "tick", g.tick, "error", err)
	}

	g.keepInBounds()
	g.resolvePlayerSwing()
	g.resolveGuardSwings()
	g.resolveStones()
	g.dropFallen()
	g.tickInvulnerability()

	switch {
	case !g.player.Live():
		g.gameOver = true
		g.logger.Info("player down", "stage", g.stage.Name, "score", g.score)
	case g.guardsLeft() == 0:
		g.score += g.cfg.Gameplay.LevelBonus
		g.cleared = true
		g.clearTicks = stageClearTicks
		g.audio.Play(audio.EffectClear)
		g.logger.Info("stage cleared", "stage", g.stage.Name, "score", g.score)
	}

	return core.StepResult{State: g.State()}
}

// playerIntent turns this tick's input into the player's state request.
// Left and Right latch walking until Down is pressed.
func (g *Game) playerIntent(in core.InputFrame) sim.Intent {
	switch {
	case in.Has(core.ActionLeft):
		g.walk = sim.FacingLeft
	case in.Has(core.ActionRight):
		g.walk = sim.FacingRight
	case in.Has(core.ActionDown):
		g.walk = 0
	}

	if in.Has(core.ActionThrow) {
		g.throwStone()
	}
	if in.Has(core.ActionAttack) && g.attackTicks == 0 {
		g.attackTicks = g.cfg.Gameplay.AttackTicks
		clear(g.swingHits)
	}

	intent := sim.Intent{Anim: sim.AnimIdle, Facing: g.walk}
	switch {
	case g.attackTicks > 0:
		g.attackTicks--
		intent.Anim = sim.AnimHit
	case in.Has(core.ActionJump) && g.player.State.Grounded():
		intent.Anim = sim.AnimJump
	case g.walk != 0:
		intent.Anim = sim.AnimWalk
	case !g.player.State.Grounded():
		// Airborne without input keeps its momentum.
		intent.Anim = sim.AnimJump
	}
	return intent
}

func (g *Game) throwStone() {
	if len(g.level.Projectiles()) >= g.cfg.Stone.MaxActive {
		return
	}
	if _, err := g.level.SpawnProjectile(&g.stoneKind, g.player); err != nil {
		g.logger.Debug("throw", "error", err)
	}
}

// fist is where a swing of a lands: just past its body at chest height.
func fist(a *sim.Actor, reach float64) core.Vec2 {
	k := a.Kind()
	return a.State.Position.Add(core.V(a.State.Facing.Sign()*(k.HalfW+reach), k.HalfH))
}

// resolvePlayerSwing damages each guard at most once per swing.
func (g *Game) resolvePlayerSwing() {
	if g.player.State.Anim != sim.AnimHit {
		return
	}
	p := fist(g.player, g.cfg.Player.Reach)
	for _, guard := range g.guards {
		if !guard.Live() || g.swingHits[guard.Entity()] {
			continue
		}
		box, ok := guard.Hitbox()
		if !ok || !sim.ContainsPoint(p, box) {
			continue
		}
		g.swingHits[guard.Entity()] = true
		g.hitGuard(guard)
	}
}

// resolveGuardSwings lets a swinging guard hurt the player once per swing.
func (g *Game) resolveGuardSwings() {
	for _, guard := range g.guards {
		if !guard.Live() {
			continue
		}
		if guard.State.Anim != sim.AnimHit {
			delete(g.guardSwung, guard.Entity())
			continue
		}
		if g.guardSwung[guard.Entity()] || g.invulnTicks > 0 || !g.player.Live() {
			continue
		}
		box, ok := g.player.Hitbox()
		if !ok || !sim.ContainsPoint(fist(guard, g.cfg.Guard.Reach), box) {
			continue
		}
		g.guardSwung[guard.Entity()] = true
		g.hurtPlayer()
	}
}

// resolveStones checks every stone's tip against guards, then floors.
func (g *Game) resolveStones() {
	floors := g.level.Floors()
	for _, stone := range g.level.Projectiles() {
		tip := stone.Tip()
		hit := false
		for _, guard := range g.guards {
			if !guard.Live() {
				continue
			}
			if box, ok := guard.Hitbox(); ok && sim.ContainsPoint(tip, box) {
				g.hitGuard(guard)
				hit = true
				break
			}
		}
		if !hit {
			for _, f := range floors {
				if sim.ContainsPoint(tip, f) {
					hit = true
					break
				}
			}
		}
		if hit {
			if err := g.level.Remove(stone.Entity()); err != nil {
				g.logger.Debug("stone", "error", err)
			}
		}
	}
}

func (g *Game) hitGuard(guard *sim.Actor) {
	if err := g.level.Hit(guard.Name()); err != nil {
		g.logger.Debug("hit guard", "name", guard.Name(), "error", err)
		return
	}
	if !guard.Live() {
		g.kills++
		g.score += g.cfg.Gameplay.GuardPoints
		g.logger.Debug("guard down", "name", guard.Name(), "score", g.score)
	}
}

func (g *Game) hurtPlayer() {
	if err := g.level.Hit(g.player.Name()); err != nil {
		g.logger.Debug("hurt player", "error", err)
		return
	}
	g.invulnTicks = g.cfg.Gameplay.InvulnerableTicks
	if g.invulnTicks > 0 {
		g.flash = gween.New(1, 0, float32(g.invulnTicks), ease.OutQuad)
	}
}

// tickInvulnerability counts down the grace period and its flash.
func (g *Game) tickInvulnerability() {
	if g.invulnTicks > 0 {
		g.invulnTicks--
	}
	if g.flash != nil {
		if _, done := g.flash.Update(1); done {
			g.flash = nil
		}
	}
}

// keepInBounds stops actors at the map's side edges; patrolling guards
// turn around there.
func (g *Game) keepInBounds() {
	for _, a := range g.level.Actors() {
		k := a.Kind()
		lo, hi := k.HalfW, g.stage.Width-k.HalfW
		s := &a.State
		switch {
		case s.Position.X < lo:
			s.Position.X = lo
		case s.Position.X > hi:
			s.Position.X = hi
		default:
			continue
		}
		if a != g.player {
			s.Facing = s.Facing.Flip()
			s.WalkTimeElapsed = 0
		}
	}
}

// dropFallen removes actors that fell below the map.
func (g *Game) dropFallen() {
	for _, a := range g.level.Actors() {
		if a.State.Position.Y >= g.cfg.Physics.KillY {
			continue
		}
		if err := g.level.Remove(a.Entity()); err != nil {
			g.logger.Debug("drop", "name", a.Name(), "error", err)
			continue
		}
		g.logger.Debug("fell", "name", a.Name())
	}
}

func (g *Game) guardsLeft() int {
	n := 0
	for _, guard := range g.guards {
		if guard.Live() {
			n++
		}
	}
	return n
}

// advanceStage moves on after the clear banner; the last stage wins.
func (g *Game) advanceStage() {
	next := g.stageIndex + 1
	if next >= len(g.stages) {
		g.won = true
		g.logger.Info("campaign complete", "score", g.score)
		return
	}
	g.startStage(next, g.player.State.Health)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver || g.won,
		Paused:   g.paused,
	}
}

// flashing reports whether the player sprite is hidden this tick.
func (g *Game) flashing() bool {
	if g.flash == nil || g.invulnTicks <= 0 {
		return false
	}
	v, _ := g.flash.Update(0)
	return int(math.Floor(float64(v)*12))%2 == 1
}

// Register the game with the registry
func init() {
	registry.Register("brawler", func() registry.Game {
		return New()
	})
}
