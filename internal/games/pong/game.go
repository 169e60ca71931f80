// Package pong implements Pong against a CPU paddle. The player holds the
// left paddle. Every contact test (ball against walls, paddles and goals)
// is a sim.ContainsPoint query against a sim.Shape body.
package pong

import (
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pebble-arcade/internal/audio"
	"github.com/vovakirdan/pebble-arcade/internal/core"
	"github.com/vovakirdan/pebble-arcade/internal/registry"
	"github.com/vovakirdan/pebble-arcade/internal/sim"
)

// Visual characters for rendering
const (
	PaddleChar = '█'
	BallChar   = '●'
	NetChar    = '│'
)

// Default game settings
const (
	DefaultPaddleWidth    = 1
	DefaultPaddleOffset   = 2 // distance from the court edge
	DefaultBallSpeed      = 0.5
	DefaultPaddleSpeed    = 1.0
	DefaultWinScore       = 5
	DefaultCPUReactionMin = 0.6  // CPU reaction (0-1, 1 = perfect)
	DefaultCPUReactionMax = 0.85 // best the CPU gets
)

type side int

const (
	sideLeft  side = iota // player
	sideRight             // CPU
)

// court holds the static bodies of the playfield, in screen space (y down).
type court struct {
	w, h        float64
	top, bottom sim.Shape // walls the ball bounces off
	goals       [2]sim.Shape
}

// newCourt lays out walls and goals for a w x h screen. Row 0 is the score
// line, so the top wall ends at y=1 and the bottom wall starts at h-2.
// Bodies extend a full court beyond each edge so a fast ball cannot skip
// them.
func newCourt(w, h int) court {
	fw, fh := float64(w), float64(h)
	box := func(x, y, bw, bh float64) sim.Shape {
		return sim.Shape{
			Transform: core.Translate(x, y),
			Bounds:    sim.Bounds{HalfW: bw / 2, HalfH: bh / 2, Origin: sim.OriginBottomLeft},
		}
	}
	return court{
		w:      fw,
		h:      fh,
		top:    box(-fw, -fh, 3*fw, fh+1),
		bottom: box(-fw, fh-2, 3*fw, fh+2),
		goals: [2]sim.Shape{
			sideLeft:  box(-fw, -fh, fw, 3*fh),
			sideRight: box(fw, -fh, fw, 3*fh),
		},
	}
}

// Game implements the Pong game logic.
type Game struct {
	runtime core.RuntimeConfig
	court   court
	logger  *log.Logger
	audio   audio.Player
	rng     *rand.Rand

	paddles [2]float64 // top edge of each paddle
	ball    core.Vec2
	vel     core.Vec2
	scores  [2]int

	gameOver   bool
	paused     bool
	winner     side
	serving    bool
	serveDelay int

	paddleHeight int
	paddleWidth  int
	paddleOffset int
	ballSpeed    float64
	paddleSpeed  float64
	winScore     int
	cpuSkill     float64
	tick         uint64
}

var (
	effects    audio.Player = audio.Nop{}
	gameLogger *log.Logger
)

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

// New creates a new Pong game instance.
func New() *Game {
	logger := gameLogger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		logger:       logger.WithPrefix("pong"),
		audio:        effects,
		paddleWidth:  DefaultPaddleWidth,
		paddleOffset: DefaultPaddleOffset,
		ballSpeed:    DefaultBallSpeed,
		paddleSpeed:  DefaultPaddleSpeed,
		winScore:     DefaultWinScore,
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "pong"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Pong"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.court = newCourt(runtime.ScreenW, runtime.ScreenH)

	g.paddleHeight = core.Clamp(runtime.ScreenH/5, 3, 7)
	top := g.court.h/2 - float64(g.paddleHeight)/2
	g.paddles = [2]float64{top, top}

	g.scores = [2]int{}
	g.gameOver = false
	g.paused = false
	g.winner = sideLeft
	g.cpuSkill = DefaultCPUReactionMin
	g.tick = 0

	g.startServe(sideLeft)
}

// startServe centres the ball and sends it towards receiver after a pause.
func (g *Game) startServe(receiver side) {
	g.serving = true
	g.serveDelay = g.runtime.TickRate
	if g.serveDelay <= 0 {
		g.serveDelay = core.DefaultTickRate
	}

	g.ball = core.V(g.court.w/2, g.court.h/2)
	g.vel = core.V(g.ballSpeed, g.ballSpeed*(g.rng.Float64()-0.5)*0.6)
	if receiver == sideLeft {
		g.vel.X = -g.vel.X
	}
}

// paddleX returns the left edge of a paddle.
func (g *Game) paddleX(s side) float64 {
	if s == sideLeft {
		return float64(g.paddleOffset)
	}
	return g.court.w - float64(g.paddleOffset+g.paddleWidth)
}

// paddleBody is the drawn paddle. In screen space the bottom-left origin
// is the top-left corner.
func (g *Game) paddleBody(s side) sim.Shape {
	return sim.Shape{
		Transform: core.Translate(g.paddleX(s), g.paddles[s]),
		Bounds: sim.Bounds{
			HalfW:  float64(g.paddleWidth) / 2,
			HalfH:  float64(g.paddleHeight) / 2,
			Origin: sim.OriginBottomLeft,
		},
	}
}

// paddleReach is the paddle stretched back over the goal line: a ball
// anywhere behind the paddle face and level with the paddle is returned.
func (g *Game) paddleReach(s side) sim.Shape {
	body := g.paddleBody(s)
	if s == sideLeft {
		face := g.paddleX(s) + float64(g.paddleWidth)
		body.Transform = core.Translate(-g.court.w, g.paddles[s])
		body.Bounds.HalfW = (g.court.w + face) / 2
	} else {
		body.Bounds.HalfW = g.court.w
	}
	return body
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tick++

	if g.serving {
		g.serveDelay--
		if g.serveDelay <= 0 {
			g.serving = false
		}
	}

	if in.Has(core.ActionUp) || in.Has(core.ActionJump) {
		g.paddles[sideLeft] -= g.paddleSpeed
	}
	if in.Has(core.ActionDown) {
		g.paddles[sideLeft] += g.paddleSpeed
	}
	g.paddles[sideLeft] = g.clampPaddle(g.paddles[sideLeft])

	g.updateCPU()

	if !g.serving {
		g.updateBall()
	}

	if g.tick%600 == 0 && g.cpuSkill < DefaultCPUReactionMax {
		g.cpuSkill += 0.02
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) clampPaddle(y float64) float64 {
	return core.Clamp(y, 1, max(1, g.court.h-float64(g.paddleHeight)-1))
}

// updateCPU follows the ball, imperfectly, while it approaches.
func (g *Game) updateCPU() {
	if g.vel.X > 0 {
		target := g.ball.Y - float64(g.paddleHeight)/2
		diff := target - g.paddles[sideRight]
		speed := g.paddleSpeed * g.cpuSkill
		if math.Abs(diff) > speed {
			g.paddles[sideRight] += math.Copysign(speed, diff)
		}
	}
	g.paddles[sideRight] = g.clampPaddle(g.paddles[sideRight])
}

func (g *Game) updateBall() {
	g.ball = g.ball.Add(g.vel)

	switch {
	case sim.ContainsPoint(g.ball, g.court.top):
		g.ball.Y = 1
		g.vel.Y = math.Abs(g.vel.Y)
	case sim.ContainsPoint(g.ball, g.court.bottom):
		g.ball.Y = g.court.h - 2
		g.vel.Y = -math.Abs(g.vel.Y)
	}

	if g.vel.X < 0 && sim.ContainsPoint(g.ball, g.paddleReach(sideLeft)) {
		g.returnBall(sideLeft)
	}
	if g.vel.X > 0 && sim.ContainsPoint(g.ball, g.paddleReach(sideRight)) {
		g.returnBall(sideRight)
	}

	maxSpeed := g.ballSpeed * 3
	if math.Abs(g.vel.X) > maxSpeed {
		g.vel.X = math.Copysign(maxSpeed, g.vel.X)
	}
	if math.Abs(g.vel.Y) > maxSpeed/2 {
		g.vel.Y = math.Copysign(maxSpeed/2, g.vel.Y)
	}

	switch {
	case sim.ContainsPoint(g.ball, g.court.goals[sideLeft]):
		g.point(sideRight)
	case sim.ContainsPoint(g.ball, g.court.goals[sideRight]):
		g.point(sideLeft)
	}
}

// returnBall puts the ball back on the paddle face and sends it the other
// way, with spin from where it met the paddle.
func (g *Game) returnBall(s side) {
	r := sim.WorldRect(g.paddleBody(s), core.Identity)
	if s == sideLeft {
		g.ball.X = r.Max.X
		g.vel.X = math.Abs(g.vel.X)
	} else {
		g.ball.X = r.Min.X - 1
		g.vel.X = -math.Abs(g.vel.X)
	}
	hit := (g.ball.Y - r.Min.Y) / r.Height()
	g.vel.Y += (hit - 0.5) * 0.3
	g.vel.X *= 1.02
	g.audio.Play(audio.EffectBounce)
}

func (g *Game) point(scorer side) {
	g.scores[scorer]++
	g.audio.Play(audio.EffectScore)
	g.logger.Debug("point", "player", g.scores[sideLeft], "cpu", g.scores[sideRight])

	if g.scores[scorer] >= g.winScore {
		g.gameOver = true
		g.winner = scorer
		g.logger.Info("game over", "player", g.scores[sideLeft], "cpu", g.scores[sideRight], "ticks", g.tick)
		return
	}
	// The side that conceded receives the next serve.
	g.startServe(1 - scorer)
}

// State returns the current game state. The score is the player's.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.scores[sideLeft],
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Register the game with the registry
func init() {
	registry.Register("pong", func() registry.Game {
		return New()
	})
}
