// Package levels loads brawler stages from Tiled maps.
//
// A stage map uses three object groups:
//
//	floors  - rectangles the actors can stand on
//	player  - a single point object, the player's feet
//	guards  - point objects for guards; optional properties
//	          walk_time_max (int, ticks) and facing ("left"/"right")
//
// Tiled measures in pixels with y pointing down. Stages are converted to
// world units of one tile with y pointing up, so a floor's Y is its bottom
// edge and a spawn's Y is where the feet rest.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

//go:embed maps/*.tmx
var embedded embed.FS

// Errors returned by Load.
var (
	ErrNoFloors = errors.New("levels: map has no floors")
	ErrNoPlayer = errors.New("levels: map has no player spawn")
	ErrNotFound = errors.New("levels: unknown level")
)

// Rect is an axis-aligned rectangle in world units, (X, Y) is its bottom-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Top returns the y-coordinate actors stand on.
func (r Rect) Top() float64 {
	return r.Y + r.H
}

// Spawn is an actor start position.
type Spawn struct {
	X, Y        float64
	FacingLeft  bool
	WalkTimeMax int
}

// Level is a parsed stage.
type Level struct {
	Name   string
	Width  float64
	Height float64
	Floors []Rect
	Player Spawn
	Guards []Spawn
}

// Load parses the TMX file at p inside fsys.
func Load(fsys fs.FS, p string) (*Level, error) {
	m, err := tiled.LoadFile(p, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", p, err)
	}
	if m.TileWidth <= 0 || m.TileHeight <= 0 {
		return nil, fmt.Errorf("levels: %s: invalid tile size %dx%d", p, m.TileWidth, m.TileHeight)
	}

	tw := float64(m.TileWidth)
	th := float64(m.TileHeight)
	heightPx := float64(m.Height * m.TileHeight)

	lv := &Level{
		Name:   strings.TrimSuffix(path.Base(p), ".tmx"),
		Width:  float64(m.Width),
		Height: float64(m.Height),
	}

	hasPlayer := false
	for _, og := range m.ObjectGroups {
		switch og.Name {
		case "floors":
			for _, o := range og.Objects {
				lv.Floors = append(lv.Floors, Rect{
					X: o.X / tw,
					Y: (heightPx - o.Y - o.Height) / th,
					W: o.Width / tw,
					H: o.Height / th,
				})
			}
		case "player":
			if len(og.Objects) > 0 {
				o := og.Objects[0]
				lv.Player = Spawn{
					X:          o.X / tw,
					Y:          (heightPx - o.Y) / th,
					FacingLeft: o.Properties.GetString("facing") == "left",
				}
				hasPlayer = true
			}
		case "guards":
			for _, o := range og.Objects {
				lv.Guards = append(lv.Guards, Spawn{
					X:           o.X / tw,
					Y:           (heightPx - o.Y) / th,
					FacingLeft:  o.Properties.GetString("facing") == "left",
					WalkTimeMax: o.Properties.GetInt("walk_time_max"),
				})
			}
		}
	}

	if len(lv.Floors) == 0 {
		return nil, fmt.Errorf("levels: %s: %w", p, ErrNoFloors)
	}
	if !hasPlayer {
		return nil, fmt.Errorf("levels: %s: %w", p, ErrNoPlayer)
	}

	// Left-to-right keeps spawn order stable across edits in Tiled.
	sort.SliceStable(lv.Guards, func(i, j int) bool {
		return lv.Guards[i].X < lv.Guards[j].X
	})
	return lv, nil
}

// Names lists the built-in stages in play order.
func Names() []string {
	matches, _ := fs.Glob(embedded, "maps/*.tmx")
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(path.Base(m), ".tmx"))
	}
	sort.Strings(names)
	return names
}

// Builtin loads one of the embedded stages by name.
func Builtin(name string) (*Level, error) {
	for _, n := range Names() {
		if n == name {
			return Load(embedded, "maps/"+name+".tmx")
		}
	}
	return nil, fmt.Errorf("levels: %q: %w", name, ErrNotFound)
}
