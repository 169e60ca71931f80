package brawler

import "github.com/vovakirdan/pebble-arcade/internal/sim"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateStageCleared GameStateType = "stage_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
)

// ActorSnapshot is the observable state of one actor.
type ActorSnapshot struct {
	Name   string
	X, Y   float64
	Health int
	Anim   sim.AnimState
	Facing sim.Facing
}

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick         uint64
	Stage        int // 1-indexed for display
	StageName    string
	Score        int
	Kills        int
	Player       ActorSnapshot
	Guards       []ActorSnapshot // live guards in spawn order
	Stones       int
	Invulnerable int
	State        GameStateType
}

func snapActor(a *sim.Actor) ActorSnapshot {
	return ActorSnapshot{
		Name:   a.Name(),
		X:      a.State.Position.X,
		Y:      a.State.Position.Y,
		Health: a.State.Health,
		Anim:   a.State.Anim,
		Facing: a.State.Facing,
	}
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.cleared:
		state = StateStageCleared
	}

	snap := Snapshot{
		Tick:         g.tick,
		Stage:        g.stageIndex + 1,
		Score:        g.score,
		Kills:        g.kills,
		Invulnerable: g.invulnTicks,
		State:        state,
	}
	if g.stage == nil {
		return snap
	}

	snap.StageName = g.stage.Name
	snap.Player = snapActor(g.player)
	for _, guard := range g.guards {
		if guard.Live() {
			snap.Guards = append(snap.Guards, snapActor(guard))
		}
	}
	snap.Stones = len(g.level.Projectiles())
	return snap
}
