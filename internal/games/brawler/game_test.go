package brawler

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/pebble-arcade/internal/audio"
	"github.com/vovakirdan/pebble-arcade/internal/core"
	"github.com/vovakirdan/pebble-arcade/internal/sim"
)

var testRuntime = core.RuntimeConfig{
	Seed:     1,
	ScreenW:  80,
	ScreenH:  24,
	TickRate: 60,
}

// arena is a 30x10 tile map with 8px tiles and a ground floor of floorW
// tiles whose top is at y=1. Player and guard stand at the given x.
func arena(playerX, guardX float64, guardFacing string, floorW int) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="30" height="10" tilewidth="8" tileheight="8" infinite="0">
 <objectgroup id="1" name="floors">
  <object id="1" x="0" y="72" width="%d" height="8"/>
 </objectgroup>
 <objectgroup id="2" name="player">
  <object id="2" x="%g" y="72"><point/></object>
 </objectgroup>
 <objectgroup id="3" name="guards">
  <object id="3" x="%g" y="72">
   <properties>
    <property name="facing" value="%s"/>
   </properties>
   <point/>
  </object>
 </objectgroup>
</map>
`, floorW*8, playerX*8, guardX*8, guardFacing)
}

// isolate keeps user and working-directory configs out of the test and
// resets the package-level selections afterwards.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() {
		SetConfigPath("")
		SetDifficultyPreset("")
		SetStartLevel("")
		SetLevelFile("")
		SetAudio(nil)
	})
}

func newArenaGame(t *testing.T, tmx string) *Game {
	t.Helper()
	isolate(t)

	path := filepath.Join(t.TempDir(), "arena.tmx")
	if err := os.WriteFile(path, []byte(tmx), 0o600); err != nil {
		t.Fatal(err)
	}
	SetLevelFile(path)

	g := New()
	g.Reset(testRuntime)
	if g.err != nil {
		t.Fatalf("Reset: %v", g.err)
	}
	return g
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func stepN(g *Game, n int) {
	idle := core.NewInputFrame()
	for i := 0; i < n; i++ {
		g.Step(idle)
	}
}

func TestDeterminism(t *testing.T) {
	isolate(t)

	g1 := New()
	g1.Reset(testRuntime)
	g2 := New()
	g2.Reset(testRuntime)

	for i := 0; i < 400; i++ {
		var in core.InputFrame
		switch i {
		case 10:
			in = press(core.ActionRight)
		case 50, 51:
			in = press(core.ActionJump)
		case 120:
			in = press(core.ActionThrow)
		case 200:
			in = press(core.ActionAttack)
		case 260:
			in = press(core.ActionDown)
		default:
			in = core.NewInputFrame()
		}
		g1.Step(in)
		g2.Step(in)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("snapshots diverged:\n%+v\n%+v", s1, s2)
	}
	if s1.Tick != 400 {
		t.Errorf("Tick = %d, want 400", s1.Tick)
	}
}

func TestResetLoadsCampaign(t *testing.T) {
	isolate(t)

	g := New()
	g.Reset(testRuntime)

	snap := g.Snapshot()
	if snap.Stage != 1 || snap.StageName != "01-yard" {
		t.Errorf("stage = %d %q, want 1 01-yard", snap.Stage, snap.StageName)
	}
	if len(snap.Guards) == 0 {
		t.Error("expected guards on the first stage")
	}
	if snap.Player.Health != 3 {
		t.Errorf("player health = %d, want 3", snap.Player.Health)
	}
	if snap.State != StatePlaying {
		t.Errorf("State = %s, want playing", snap.State)
	}
}

func TestStartLevel(t *testing.T) {
	isolate(t)

	SetStartLevel("02-rooftops")
	g := New()
	g.Reset(testRuntime)
	if got := g.Snapshot().StageName; got != "02-rooftops" {
		t.Errorf("StageName = %q, want 02-rooftops", got)
	}

	SetStartLevel("no-such-stage")
	g.Reset(testRuntime)
	if got := g.Snapshot().StageName; got != "01-yard" {
		t.Errorf("unknown start level should fall back to 01-yard, got %q", got)
	}
}

func TestWalkLatch(t *testing.T) {
	g := newArenaGame(t, arena(3, 25, "left", 30))
	start := g.player.State.Position.X

	g.Step(press(core.ActionRight))
	stepN(g, 19)

	moved := g.player.State.Position.X - start
	want := 20 * g.cfg.Player.MaxSpeed
	if math.Abs(moved-want) > 1e-9 {
		t.Errorf("moved %v after 20 ticks, want %v", moved, want)
	}

	g.Step(press(core.ActionDown))
	x := g.player.State.Position.X
	stepN(g, 10)
	if g.player.State.Position.X != x {
		t.Errorf("player kept walking after Down: %v -> %v", x, g.player.State.Position.X)
	}
	if g.player.State.Facing != sim.FacingRight {
		t.Errorf("Facing = %v, want right", g.player.State.Facing)
	}
}

func TestJumpLandsBackOnFloor(t *testing.T) {
	g := newArenaGame(t, arena(3, 25, "left", 30))

	g.Step(press(core.ActionJump))
	if g.player.State.Velocity.Y <= 0 {
		t.Fatalf("expected upward velocity after jump, got %v", g.player.State.Velocity.Y)
	}

	peak := 0.0
	for i := 0; i < 120; i++ {
		g.Step(core.NewInputFrame())
		peak = math.Max(peak, g.player.State.Position.Y)
	}
	if peak <= 2 {
		t.Errorf("jump peak = %v, want above 2", peak)
	}
	if g.player.State.Position.Y != 1 || !g.player.State.Grounded() {
		t.Errorf("player should rest on the floor, at y=%v v=%v", g.player.State.Position.Y, g.player.State.Velocity)
	}
}

func TestStonesKillGuard(t *testing.T) {
	g := newArenaGame(t, arena(3, 12, "left", 30))

	g.Step(press(core.ActionThrow))
	g.Step(press(core.ActionThrow))
	if n := len(g.level.Projectiles()); n != 2 {
		t.Fatalf("projectiles = %d, want 2", n)
	}

	for i := 0; i < 40 && !g.cleared; i++ {
		g.Step(core.NewInputFrame())
	}

	snap := g.Snapshot()
	if snap.Kills != 1 {
		t.Errorf("Kills = %d, want 1", snap.Kills)
	}
	want := g.cfg.Gameplay.GuardPoints + g.cfg.Gameplay.LevelBonus
	if snap.Score != want {
		t.Errorf("Score = %d, want %d", snap.Score, want)
	}
	if snap.State != StateStageCleared {
		t.Errorf("State = %s, want stage_cleared", snap.State)
	}
	if snap.Stones != 0 {
		t.Errorf("stones left in flight: %d", snap.Stones)
	}

	// A single-map game is won once its only stage is cleared.
	stepN(g, stageClearTicks)
	if g.Snapshot().State != StateWin {
		t.Errorf("State = %s, want win", g.Snapshot().State)
	}
	if !g.State().GameOver {
		t.Error("a won game reports GameOver so the score is saved")
	}
}

func TestThrowLimit(t *testing.T) {
	g := newArenaGame(t, arena(3, 28, "right", 30))

	for i := 0; i < 6; i++ {
		g.Step(press(core.ActionThrow))
	}
	if n := len(g.level.Projectiles()); n != g.cfg.Stone.MaxActive {
		t.Errorf("projectiles = %d, want max %d", n, g.cfg.Stone.MaxActive)
	}
}

func TestStoneExpires(t *testing.T) {
	g := newArenaGame(t, arena(3, 28, "right", 30))
	// Aim away from the guard.
	g.player.State.Facing = sim.FacingLeft
	g.player.State.Position.X = 20

	g.Step(press(core.ActionThrow))
	stepN(g, g.cfg.Stone.Lifetime+1)
	if n := len(g.level.Projectiles()); n != 0 {
		t.Errorf("projectiles = %d after lifetime, want 0", n)
	}
}

func TestSwingHitsGuardOncePerSwing(t *testing.T) {
	g := newArenaGame(t, arena(5, 6.5, "left", 30))
	guard := g.guards[0]

	g.Step(press(core.ActionAttack))
	stepN(g, g.cfg.Gameplay.AttackTicks)

	if guard.State.Health != g.cfg.Guard.Health-1 {
		t.Errorf("guard health = %d, want %d", guard.State.Health, g.cfg.Guard.Health-1)
	}
	if g.score != 0 {
		t.Errorf("score = %d, want 0 before the kill", g.score)
	}
}

func TestSwingKillsWoundedGuard(t *testing.T) {
	g := newArenaGame(t, arena(5, 6.5, "left", 30))
	g.guards[0].State.Health = 1

	g.Step(press(core.ActionAttack))

	if g.guards[0].Live() {
		t.Fatal("guard should be removed")
	}
	if g.kills != 1 {
		t.Errorf("kills = %d, want 1", g.kills)
	}
	if !g.cleared {
		t.Error("clearing the last guard clears the stage")
	}
}

func TestGuardHurtsPlayerOnce(t *testing.T) {
	rec := &audio.Recorder{}
	isolate(t)
	SetAudio(rec)
	g := newArenaGame(t, arena(5, 6.5, "left", 30))

	// The guard's windup opens after five ticks in range.
	stepN(g, 5)
	if g.player.State.Health != 3 {
		t.Fatalf("player hurt during windup, health %d", g.player.State.Health)
	}

	g.Step(core.NewInputFrame())
	if g.player.State.Health != 2 {
		t.Fatalf("player health = %d after first swing, want 2", g.player.State.Health)
	}
	if g.invulnTicks == 0 || g.flash == nil {
		t.Error("a hurt player becomes invulnerable and flashes")
	}
	if rec.Count(audio.EffectHurt) != 1 {
		t.Errorf("hurt effects = %d, want 1", rec.Count(audio.EffectHurt))
	}

	// The rest of the same swing and the grace period deal no damage.
	stepN(g, 20)
	if g.player.State.Health != 2 {
		t.Errorf("player health = %d, want 2 during the grace period", g.player.State.Health)
	}
}

func TestFallingPlayerEndsGame(t *testing.T) {
	g := newArenaGame(t, arena(25, 3, "left", 10))

	for i := 0; i < 60 && !g.gameOver; i++ {
		g.Step(core.NewInputFrame())
	}
	if !g.gameOver {
		t.Fatal("player fell off the map but the game continues")
	}
	if g.player.Live() || g.player.State.Health > 0 {
		t.Errorf("fallen player should be removed with no health, got %d", g.player.State.Health)
	}
	if !g.State().GameOver {
		t.Error("State().GameOver should be true")
	}
}

func TestStageProgressionCarriesHealth(t *testing.T) {
	isolate(t)
	g := New()
	g.Reset(testRuntime)

	g.player.State.Health = 2
	for _, guard := range g.guards {
		for guard.Live() {
			g.hitGuard(guard)
		}
	}
	g.Step(core.NewInputFrame())
	if !g.cleared {
		t.Fatal("stage should be cleared")
	}
	wantScore := len(g.guards)*g.cfg.Gameplay.GuardPoints + g.cfg.Gameplay.LevelBonus
	if g.score != wantScore {
		t.Errorf("score = %d, want %d", g.score, wantScore)
	}

	stepN(g, stageClearTicks)
	snap := g.Snapshot()
	if snap.Stage != 2 {
		t.Fatalf("Stage = %d, want 2", snap.Stage)
	}
	if snap.Player.Health != 2 {
		t.Errorf("player health = %d, want carried 2", snap.Player.Health)
	}
	if snap.State != StatePlaying {
		t.Errorf("State = %s, want playing", snap.State)
	}
}

func TestPauseStopsSimulation(t *testing.T) {
	g := newArenaGame(t, arena(3, 25, "left", 30))

	g.Step(press(core.ActionPause))
	tick := g.tick
	stepN(g, 10)
	if g.tick != tick {
		t.Errorf("tick advanced while paused: %d -> %d", tick, g.tick)
	}
	if !g.State().Paused {
		t.Error("State().Paused should be true")
	}

	g.Step(press(core.ActionPause))
	if g.State().Paused {
		t.Error("second Pause should resume")
	}
}

func TestBadAnimationConfigFails(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "brawler.yaml")
	yaml := "player:\n  animations:\n    dance: [\"x\"]\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)

	g := New()
	g.Reset(testRuntime)
	if g.err == nil {
		t.Fatal("expected an error for an unknown animation state")
	}
	if !g.State().GameOver {
		t.Error("an unusable config ends the game")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "UNAVAILABLE") {
		t.Error("render should explain why the game cannot run")
	}
}

func TestZeroHealthConfigFails(t *testing.T) {
	tests := []struct{ kind, yaml string }{
		{"player", "player:\n  health: 0\nguard:\n  health: 2\n"},
		{"guard", "player:\n  health: 3\nguard:\n  health: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			isolate(t)

			path := filepath.Join(t.TempDir(), "brawler.yaml")
			yaml := tt.yaml
			if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
				t.Fatal(err)
			}
			SetConfigPath(path)

			g := New()
			g.Reset(testRuntime)
			if g.err == nil || !strings.Contains(g.err.Error(), tt.kind+": health") {
				t.Fatalf("Reset err = %v, want a %s health error", g.err, tt.kind)
			}
			if !g.State().GameOver {
				t.Error("an unusable config ends the game")
			}
		})
	}
}

func TestRenderDrawsWorld(t *testing.T) {
	g := newArenaGame(t, arena(3, 25, "left", 30))
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	vp := g.viewport(screen)

	fx, fy := vp.cell(0, 0)
	if got := screen.Get(fx, fy); got != FloorTop {
		t.Errorf("floor cell = %q, want %q", got, FloorTop)
	}

	px, py := vp.cell(g.player.State.Position.X, g.player.State.Position.Y)
	frame := []rune(g.player.View.Glyph())
	if got := screen.Get(px, py-1); got != frame[0] {
		t.Errorf("player head = %q, want %q", got, frame[0])
	}
	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD missing score: %q", screen.Row(0))
	}
}
