package gems

import (
	"fmt"

	"github.com/vovakirdan/pebble-arcade/internal/combo"
	"github.com/vovakirdan/pebble-arcade/internal/core"
)

const (
	cellWidth = 3 // glyph plus cursor brackets
	hudHeight = 2
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		g.drawCenteredMessage(dst, "GEM COMBO UNAVAILABLE", g.err.Error())
		return
	}
	if g.grid == nil {
		return
	}

	boardW := g.grid.Cols()*cellWidth + 2
	boardH := g.grid.Rows() + 2
	if dst.Width() < boardW || dst.Height() < boardH+hudHeight {
		g.drawCenteredMessage(dst, "Window too small", fmt.Sprintf("Need %dx%d", boardW, boardH+hudHeight))
		return
	}

	boardX := (dst.Width() - boardW) / 2
	boardY := hudHeight

	g.renderHUD(dst)
	dst.DrawBox(core.NewRect(boardX, boardY, boardW, boardH))
	g.renderGems(dst, boardX+1, boardY+1)

	switch {
	case g.gameOver:
		g.drawCenteredMessage(dst, "NO MOVES LEFT", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	case g.paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	left := fmt.Sprintf(" Gem Combo  Score: %d  Boards: %d ", int(g.shown), g.boards)
	dst.DrawText(0, 0, left)

	right := fmt.Sprintf(" Gems: %d  Last: %d ", g.grid.Len(), g.lastCombo)
	dst.DrawText(dst.Width()-len(right), 0, right)

	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderGems draws every gem. The combo under the cursor is highlighted
// when it is large enough to clear.
func (g *Game) renderGems(dst *core.Screen, x0, y0 int) {
	var hot combo.Combo
	if c, err := g.detector.ComboAt(g.cursor); err == nil && c.Len() >= g.cfg.Scoring.MinCombo {
		hot = c
	}

	for _, e := range g.grid.Elements() {
		k, ok := kindOf(e.Type)
		if !ok {
			continue
		}
		color := k.Color
		if hot.Contains(e.Pos) {
			color = k.Bright
		}
		dst.SetColored(x0+e.Pos.Col*cellWidth+1, y0+e.Pos.Row, k.Glyph, color)
	}

	cx := x0 + g.cursor.Col*cellWidth
	cy := y0 + g.cursor.Row
	dst.SetColored(cx, cy, '[', core.ColorBrightWhite)
	dst.SetColored(cx+2, cy, ']', core.ColorBrightWhite)
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
