package gems

import "github.com/vovakirdan/pebble-arcade/internal/combo"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying  GameStateType = "playing"
	StateGameOver GameStateType = "game_over"
)

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick   uint64
	Score  int
	Boards int
	Cursor combo.Cell
	Gems   int
	Board  [][]combo.TypeTag // row-major, "" for empty cells
	State  GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	if g.gameOver {
		state = StateGameOver
	}

	snap := Snapshot{
		Tick:   g.tick,
		Score:  g.score,
		Boards: g.boards,
		Cursor: g.cursor,
		State:  state,
	}
	if g.grid == nil {
		return snap
	}

	snap.Gems = g.grid.Len()
	snap.Board = make([][]combo.TypeTag, g.grid.Rows())
	for r := range snap.Board {
		snap.Board[r] = make([]combo.TypeTag, g.grid.Cols())
	}
	for _, e := range g.grid.Elements() {
		snap.Board[e.Pos.Row][e.Pos.Col] = e.Type
	}
	return snap
}
