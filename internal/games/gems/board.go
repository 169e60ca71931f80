package gems

import (
	"math/rand"

	"github.com/vovakirdan/pebble-arcade/internal/combo"
	"github.com/vovakirdan/pebble-arcade/internal/core"
)

// gemKind describes how one gem type is drawn.
type gemKind struct {
	Tag    combo.TypeTag
	Glyph  rune
	Color  core.Color
	Bright core.Color
}

// kinds lists every gem type in the order boards draw from it.
var kinds = []gemKind{
	{Tag: "ruby", Glyph: '◆', Color: core.ColorRed, Bright: core.ColorBrightRed},
	{Tag: "emerald", Glyph: '●', Color: core.ColorGreen, Bright: core.ColorBrightGreen},
	{Tag: "sapphire", Glyph: '■', Color: core.ColorBlue, Bright: core.ColorBrightBlue},
	{Tag: "topaz", Glyph: '▲', Color: core.ColorYellow, Bright: core.ColorBrightYellow},
	{Tag: "amethyst", Glyph: '★', Color: core.ColorMagenta, Bright: core.ColorBrightMagenta},
	{Tag: "pearl", Glyph: '♣', Color: core.ColorCyan, Bright: core.ColorBrightCyan},
}

func kindOf(t combo.TypeTag) (gemKind, bool) {
	for _, k := range kinds {
		if k.Tag == t {
			return k, true
		}
	}
	return gemKind{}, false
}

// fillBoard creates a full board of randomly typed gems.
func fillBoard(rng *rand.Rand, rows, cols, types int) (*combo.Grid, error) {
	types = core.Clamp(types, 1, len(kinds))
	g := combo.NewGrid(rows, cols)
	for r := range rows {
		for c := range cols {
			e := combo.GridElement{Pos: combo.At(r, c), Type: kinds[rng.Intn(types)].Tag}
			if err := g.Place(e); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// collapse lets gems fall to the bottom of their column and closes empty
// columns towards the left. Elements are immutable, so the result is a
// new grid.
func collapse(g *combo.Grid) (*combo.Grid, error) {
	rows, cols := g.Rows(), g.Cols()

	// Per column, gem types from the bottom row up.
	var stacks [][]combo.TypeTag
	for c := range cols {
		var stack []combo.TypeTag
		for r := rows - 1; r >= 0; r-- {
			if e, ok := g.Get(combo.At(r, c)); ok {
				stack = append(stack, e.Type)
			}
		}
		if len(stack) > 0 {
			stacks = append(stacks, stack)
		}
	}

	out := combo.NewGrid(rows, cols)
	for c, stack := range stacks {
		for i, t := range stack {
			if err := out.Place(combo.GridElement{Pos: combo.At(rows-1-i, c), Type: t}); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// comboScore is the score for clearing n gems at once.
func comboScore(n int) int {
	return n * (n - 1)
}
