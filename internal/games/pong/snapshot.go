package pong

import "github.com/vovakirdan/pebble-arcade/internal/core"

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick     uint64
	Ball     core.Vec2
	Velocity core.Vec2
	Paddles  [2]float64 // top edge: player, CPU
	Scores   [2]int     // player, CPU
	Serving  bool
	GameOver bool
	Winner   string // "player" or "cpu" once the game is over
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:     g.tick,
		Ball:     g.ball,
		Velocity: g.vel,
		Paddles:  g.paddles,
		Scores:   g.scores,
		Serving:  g.serving,
		GameOver: g.gameOver,
	}
	if g.gameOver {
		snap.Winner = "cpu"
		if g.winner == sideLeft {
			snap.Winner = "player"
		}
	}
	return snap
}
