package pong

import (
	"fmt"
	"math"

	"github.com/vovakirdan/pebble-arcade/internal/core"
	"github.com/vovakirdan/pebble-arcade/internal/sim"
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	centerX := int(g.court.w) / 2
	for y := 1; y < int(g.court.h)-1; y += 2 {
		dst.SetColored(centerX, y, NetChar, core.ColorGray)
	}

	for _, s := range []side{sideLeft, sideRight} {
		r := sim.WorldRect(g.paddleBody(s), core.Identity)
		x0, y0 := int(r.Min.X), int(math.Round(r.Min.Y))
		for y := y0; y < y0+g.paddleHeight; y++ {
			for x := x0; x < x0+g.paddleWidth; x++ {
				dst.SetColored(x, y, PaddleChar, core.ColorBrightWhite)
			}
		}
	}

	// Blink during serve
	if !g.serving || (g.serveDelay/10)%2 == 0 {
		dst.SetColored(int(g.ball.X), int(g.ball.Y), BallChar, core.ColorBrightYellow)
	}

	dst.DrawText(centerX-5, 0, fmt.Sprintf("%d", g.scores[sideLeft]))
	dst.DrawText(centerX+4, 0, fmt.Sprintf("%d", g.scores[sideRight]))
	dst.DrawText(1, 0, "P1")
	dst.DrawText(int(g.court.w)-4, 0, "CPU")

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if g.gameOver {
		msg := "CPU WINS!"
		if g.winner == sideLeft {
			msg = "YOU WIN!"
		}
		g.drawCenteredMessage(dst, msg,
			fmt.Sprintf("%d - %d  |  Press R to restart", g.scores[sideLeft], g.scores[sideRight]))
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
