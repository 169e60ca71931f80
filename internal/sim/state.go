// Package sim is the tick-driven simulation core of the brawler: actor
// state machines, gravity and ground resolution, projectiles and the
// collision queries they rely on. World space is y-up.
package sim

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/pebble-arcade/internal/core"
)

// ErrNotLive is returned when an operation targets a removed entity.
var ErrNotLive = errors.New("sim: entity not live")

// Facing is the horizontal direction an actor looks at.
// It doubles as the sign of horizontal motion.
type Facing int

const (
	FacingLeft  Facing = -1
	FacingRight Facing = 1
)

// Sign returns the facing as a float multiplier.
func (f Facing) Sign() float64 {
	if f == FacingLeft {
		return -1
	}
	return 1
}

// Flip returns the opposite direction.
func (f Facing) Flip() Facing {
	if f == FacingLeft {
		return FacingRight
	}
	return FacingLeft
}

func (f Facing) String() string {
	switch f {
	case FacingLeft:
		return "left"
	case FacingRight:
		return "right"
	default:
		return "none"
	}
}

// AnimState is the single active behaviour state of an actor.
type AnimState int

const (
	AnimIdle AnimState = iota
	AnimWalk
	AnimJump
	AnimHit
)

var animNames = [...]string{"idle", "walk", "jump", "hit"}

func (s AnimState) String() string {
	if s < 0 || int(s) >= len(animNames) {
		return "unknown"
	}
	return animNames[s]
}

// ParseAnimState converts a config key such as "walk" into an AnimState.
func ParseAnimState(name string) (AnimState, error) {
	for i, n := range animNames {
		if strings.EqualFold(n, name) {
			return AnimState(i), nil
		}
	}
	return AnimIdle, fmt.Errorf("sim: unknown animation state %q", name)
}

// ActorState is the mutable per-tick state of an actor.
// Position is the feet point in world space.
type ActorState struct {
	Position core.Vec2
	Velocity core.Vec2
	Facing   Facing
	Health   int
	Anim     AnimState

	FrameCounter    int
	WalkTimeElapsed int
	WalkTimeMax     int

	Removed bool
}

// Grounded reports whether the actor has no vertical motion.
func (s ActorState) Grounded() bool {
	return s.Velocity.Y == 0
}

// Intent is what a controller (keyboard or AI) asks an actor to do this tick.
// A zero Facing keeps the current direction.
type Intent struct {
	Anim   AnimState
	Facing Facing
}
