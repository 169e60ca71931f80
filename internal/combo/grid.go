// Package combo groups same-type grid elements into maximal connected clusters.
// The grid is backed by a resolv spatial hash: every element owns one object
// sitting inside exactly one hash cell, and neighbour lookups are probes
// against the space.
package combo

import (
	"errors"
	"fmt"
	"sort"

	"github.com/solarlune/resolv"
)

// Errors returned by Grid operations.
var (
	ErrOutOfBounds = errors.New("combo: cell out of bounds")
	ErrOccupied    = errors.New("combo: cell already occupied")
	ErrEmptyCell   = errors.New("combo: cell is empty")
	ErrDuplicate   = errors.New("combo: two elements share a cell")
)

const (
	cellSize = 8.0
	inset    = 2.0

	elementTag = "element"
)

// TypeTag identifies the kind of an element. Elements only group with
// elements of the same type.
type TypeTag string

// Cell is a position in the grid. Row 0 is the top row.
type Cell struct {
	Row int
	Col int
}

// At is a convenience constructor for Cell.
func At(row, col int) Cell {
	return Cell{Row: row, Col: col}
}

// Offset returns the cell shifted by the given row and column deltas.
func (c Cell) Offset(dr, dc int) Cell {
	return Cell{Row: c.Row + dr, Col: c.Col + dc}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// GridElement is an immutable occupant of one grid cell.
type GridElement struct {
	Pos  Cell
	Type TypeTag
}

// NeighborFunc returns the elements orthogonally adjacent to a cell.
type NeighborFunc func(Cell) ([]GridElement, error)

// orthogonal lists the four neighbour offsets (up, down, left, right).
var orthogonal = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Grid is a bounded rows x cols board of elements.
type Grid struct {
	rows, cols int
	space      *resolv.Space
	objects    map[Cell]*resolv.Object
}

// NewGrid creates an empty grid.
func NewGrid(rows, cols int) *Grid {
	return &Grid{
		rows:    rows,
		cols:    cols,
		space:   resolv.NewSpace(cols*int(cellSize), rows*int(cellSize), int(cellSize), int(cellSize)),
		objects: make(map[Cell]*resolv.Object, rows*cols),
	}
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Len returns the number of occupied cells.
func (g *Grid) Len() int { return len(g.objects) }

// InBounds reports whether the cell lies inside the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// probe builds a small object centred inside the hash cell for c.
func probe(c Cell, tags ...string) *resolv.Object {
	x := float64(c.Col)*cellSize + inset
	y := float64(c.Row)*cellSize + inset
	return resolv.NewObject(x, y, cellSize-2*inset, cellSize-2*inset, tags...)
}

// Place puts an element on the grid.
func (g *Grid) Place(e GridElement) error {
	if !g.InBounds(e.Pos) {
		return fmt.Errorf("combo: place %v: %w", e.Pos, ErrOutOfBounds)
	}
	if _, ok := g.objects[e.Pos]; ok {
		return fmt.Errorf("combo: place %v: %w", e.Pos, ErrOccupied)
	}

	obj := probe(e.Pos, elementTag, string(e.Type))
	obj.Data = e
	g.space.Add(obj)
	g.objects[e.Pos] = obj
	return nil
}

// Remove clears a cell. Removing an empty in-bounds cell is a no-op.
func (g *Grid) Remove(c Cell) error {
	if !g.InBounds(c) {
		return fmt.Errorf("combo: remove %v: %w", c, ErrOutOfBounds)
	}
	obj, ok := g.objects[c]
	if !ok {
		return nil
	}
	g.space.Remove(obj)
	delete(g.objects, c)
	return nil
}

// Get returns the element at c.
func (g *Grid) Get(c Cell) (GridElement, bool) {
	obj, ok := g.objects[c]
	if !ok {
		return GridElement{}, false
	}
	return obj.Data.(GridElement), true
}

// Elements returns a snapshot of all elements in row-major order.
func (g *Grid) Elements() []GridElement {
	out := make([]GridElement, 0, len(g.objects))
	for _, obj := range g.objects {
		out = append(out, obj.Data.(GridElement))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pos.Row != out[j].Pos.Row {
			return out[i].Pos.Row < out[j].Pos.Row
		}
		return out[i].Pos.Col < out[j].Pos.Col
	})
	return out
}

// FindNeighbors returns the elements occupying the four orthogonal cells
// around pos. The result has no particular order.
func (g *Grid) FindNeighbors(pos Cell) ([]GridElement, error) {
	if !g.InBounds(pos) {
		return nil, fmt.Errorf("combo: neighbors of %v: %w", pos, ErrOutOfBounds)
	}

	var out []GridElement
	for _, d := range orthogonal {
		n := pos.Offset(d[0], d[1])
		if !g.InBounds(n) {
			continue
		}
		if e, ok := g.lookup(n); ok {
			out = append(out, e)
		}
	}
	return out, nil
}

// lookup asks the space which element sits in cell c.
func (g *Grid) lookup(c Cell) (GridElement, bool) {
	p := probe(c)
	g.space.Add(p)
	defer g.space.Remove(p)

	check := p.Check(0, 0, elementTag)
	if check == nil {
		return GridElement{}, false
	}
	for _, obj := range check.Objects {
		if e, ok := obj.Data.(GridElement); ok && e.Pos == c {
			return e, true
		}
	}
	return GridElement{}, false
}

// Neighbors returns the grid's FindNeighbors as a NeighborFunc.
func (g *Grid) Neighbors() NeighborFunc {
	return g.FindNeighbors
}
