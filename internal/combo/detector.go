package combo

import "fmt"

// Combo is a maximal set of same-type elements connected through
// orthogonal adjacency.
type Combo struct {
	Type     TypeTag
	Elements []GridElement
	members  map[Cell]struct{}
}

func newCombo(t TypeTag) Combo {
	return Combo{Type: t, members: make(map[Cell]struct{})}
}

func (c *Combo) add(e GridElement) {
	c.members[e.Pos] = struct{}{}
	c.Elements = append(c.Elements, e)
}

// Len returns the number of elements in the combo.
func (c Combo) Len() int {
	return len(c.Elements)
}

// Contains reports whether the combo includes the given cell.
func (c Combo) Contains(cell Cell) bool {
	if c.members == nil {
		for _, e := range c.Elements {
			if e.Pos == cell {
				return true
			}
		}
		return false
	}
	_, ok := c.members[cell]
	return ok
}

// Cells returns the positions of the combo's elements.
func (c Combo) Cells() []Cell {
	out := make([]Cell, len(c.Elements))
	for i, e := range c.Elements {
		out[i] = e.Pos
	}
	return out
}

// Detect partitions elements into combos. Every input element lands in
// exactly one combo; singletons form combos of size one. Neighbours that
// are not part of elements are ignored, so the result is a partition of
// the input even when the neighbour function sees more.
//
// Combos come out in the order their first element appears in the input.
// Two elements at the same cell make the input invalid and yield
// ErrDuplicate.
func Detect(elements []GridElement, neighbors NeighborFunc) ([]Combo, error) {
	if len(elements) == 0 {
		return nil, nil
	}

	index := make(map[Cell]GridElement, len(elements))
	for _, e := range elements {
		if _, dup := index[e.Pos]; dup {
			return nil, fmt.Errorf("combo: detect at %v: %w", e.Pos, ErrDuplicate)
		}
		index[e.Pos] = e
	}

	grouped := make(map[Cell]struct{}, len(elements))
	var combos []Combo
	for _, e := range elements {
		if _, done := grouped[e.Pos]; done {
			continue
		}
		c, err := grow(e, index, grouped, neighbors)
		if err != nil {
			return nil, err
		}
		combos = append(combos, c)
	}
	return combos, nil
}

// grow flood-fills from seed using an explicit worklist. Each element
// is queued at most once because it is marked grouped before it is pushed.
func grow(seed GridElement, index map[Cell]GridElement, grouped map[Cell]struct{}, neighbors NeighborFunc) (Combo, error) {
	c := newCombo(seed.Type)
	grouped[seed.Pos] = struct{}{}
	c.add(seed)

	work := []GridElement{seed}
	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]

		ns, err := neighbors(cur.Pos)
		if err != nil {
			return Combo{}, fmt.Errorf("combo: expand %v: %w", cur.Pos, err)
		}
		for _, n := range ns {
			e, ok := index[n.Pos]
			if !ok || e.Type != seed.Type {
				continue
			}
			if _, done := grouped[e.Pos]; done {
				continue
			}
			grouped[e.Pos] = struct{}{}
			c.add(e)
			work = append(work, e)
		}
	}
	return c, nil
}

// Detector runs combo detection against a live grid.
type Detector struct {
	grid *Grid
}

// NewDetector binds a detector to a grid.
func NewDetector(g *Grid) *Detector {
	return &Detector{grid: g}
}

// Detect returns every combo currently on the grid.
func (d *Detector) Detect() ([]Combo, error) {
	return Detect(d.grid.Elements(), d.grid.FindNeighbors)
}

// ComboAt returns the combo containing the element at cell.
func (d *Detector) ComboAt(cell Cell) (Combo, error) {
	if !d.grid.InBounds(cell) {
		return Combo{}, fmt.Errorf("combo: combo at %v: %w", cell, ErrOutOfBounds)
	}
	seed, ok := d.grid.Get(cell)
	if !ok {
		return Combo{}, fmt.Errorf("combo: combo at %v: %w", cell, ErrEmptyCell)
	}

	elements := d.grid.Elements()
	index := make(map[Cell]GridElement, len(elements))
	for _, e := range elements {
		index[e.Pos] = e
	}
	return grow(seed, index, make(map[Cell]struct{}), d.grid.FindNeighbors)
}

// Largest returns the size of the biggest combo on the grid.
func (d *Detector) Largest() (int, error) {
	combos, err := d.Detect()
	if err != nil {
		return 0, err
	}
	best := 0
	for _, c := range combos {
		best = max(best, c.Len())
	}
	return best, nil
}
