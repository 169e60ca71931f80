package brawler

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/pebble-arcade/internal/core"
	"github.com/vovakirdan/pebble-arcade/internal/sim"
)

// Visual characters for rendering
const (
	FloorTop  = '▀'
	FloorFill = '▒'
	HeartFull = '♥'
	HeartNone = '·'
)

const hudRows = 2

// viewport maps world tiles to screen cells. World y grows upwards.
type viewport struct {
	offX, offY int
	height     int
}

func (g *Game) viewport(dst *core.Screen) viewport {
	w := int(math.Ceil(g.stage.Width))
	return viewport{
		offX:   max(0, (dst.Width()-w)/2),
		offY:   hudRows,
		height: int(math.Ceil(g.stage.Height)),
	}
}

func (v viewport) cell(x, y float64) (int, int) {
	return v.offX + int(math.Floor(x)), v.offY + v.height - 1 - int(math.Floor(y))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		g.drawCenteredMessage(dst, "STONE BRAWL UNAVAILABLE", g.err.Error())
		return
	}
	if g.stage == nil {
		return
	}

	g.renderHUD(dst)

	if dst.Width() < int(g.stage.Width) || dst.Height() < int(g.stage.Height)+hudRows {
		g.drawCenteredMessage(dst, "Window too small",
			fmt.Sprintf("Need %dx%d", int(g.stage.Width), int(g.stage.Height)+hudRows))
		return
	}

	vp := g.viewport(dst)
	g.renderFloors(dst, vp)
	for _, stone := range g.level.Projectiles() {
		x, y := vp.cell(stone.Position.X, stone.Position.Y)
		if r := []rune(stone.View.Glyph()); len(r) > 0 {
			dst.SetColored(x, y, r[0], core.ColorBrightWhite)
		}
	}
	for _, a := range g.level.Actors() {
		if a == g.player && g.flashing() {
			continue
		}
		g.renderActor(dst, vp, a)
	}

	switch {
	case g.won:
		g.drawCenteredMessage(dst, "YOU WIN!", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	case g.gameOver:
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	case g.cleared:
		g.drawCenteredMessage(dst, fmt.Sprintf("Stage %d cleared!", g.stageIndex+1),
			fmt.Sprintf("Bonus +%d", g.cfg.Gameplay.LevelBonus))
	case g.paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	health := 0
	if g.player != nil && g.player.Live() {
		health = g.player.State.Health
	}
	hearts := strings.Repeat(string(HeartFull), health) +
		strings.Repeat(string(HeartNone), max(0, g.playerKind.Health-health))

	left := fmt.Sprintf(" Stone Brawl  Score: %d  Stage %d/%d: %s ", g.score, g.stageIndex+1, len(g.stages), g.stage.Name)
	dst.DrawText(0, 0, left)
	dst.DrawTextColored(len([]rune(left)), 0, hearts, core.ColorBrightRed)

	right := fmt.Sprintf(" Guards: %d  Stones: %d ", g.guardsLeft(), g.cfg.Stone.MaxActive-len(g.level.Projectiles()))
	dst.DrawText(dst.Width()-len(right), 0, right)

	dst.DrawHLine(0, 1, dst.Width(), '─')
}

func (g *Game) renderFloors(dst *core.Screen, vp viewport) {
	for _, f := range g.stage.Floors {
		x0 := int(math.Floor(f.X))
		x1 := int(math.Ceil(f.X + f.W))
		y0 := int(math.Floor(f.Y))
		y1 := int(math.Ceil(f.Top()))
		for y := y0; y < y1; y++ {
			r := FloorFill
			if y == y1-1 {
				r = FloorTop
			}
			for x := x0; x < x1; x++ {
				cx, cy := vp.cell(float64(x), float64(y))
				dst.SetColored(cx, cy, r, core.ColorOrange)
			}
		}
	}
}

// renderActor draws a two-cell sprite: the frame's first rune is the head,
// the second the legs standing on the feet cell.
func (g *Game) renderActor(dst *core.Screen, vp viewport, a *sim.Actor) {
	color := core.ColorBrightRed
	if a == g.player {
		color = core.ColorBrightCyan
	}
	if a.State.Anim == sim.AnimHit {
		color = core.ColorBrightYellow
	}

	x, y := vp.cell(a.State.Position.X, a.State.Position.Y)
	frame := []rune(a.View.Glyph())
	switch len(frame) {
	case 0:
	case 1:
		dst.SetColored(x, y, frame[0], color)
	default:
		dst.SetColored(x, y-1, frame[0], color)
		dst.SetColored(x, y, frame[1], color)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawText(box.X+(boxW-len([]rune(title)))/2, box.Y+1, title)
	dst.DrawText(box.X+(boxW-len([]rune(subtitle)))/2, box.Y+3, subtitle)
}
