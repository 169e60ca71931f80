package sim

import (
	"fmt"
	"math"

	"github.com/yohamta/donburi"

	"github.com/vovakirdan/pebble-arcade/internal/audio"
	"github.com/vovakirdan/pebble-arcade/internal/core"
)

// Hit window of the melee windup, exclusive on both ends.
const (
	windupStart = 4
	windupEnd   = 12
)

// Actor is a character driven by the per-tick state machine.
type Actor struct {
	State ActorState
	View  View

	kind   *ActorKind
	level  *Level
	entity donburi.Entity
	hitbox donburi.Entity
	name   string
	seq    int
}

// Entity returns the actor's entity id in its level.
func (a *Actor) Entity() donburi.Entity { return a.entity }

// Name returns the unique name used for hit dispatch.
func (a *Actor) Name() string { return a.name }

// Kind returns the actor's immutable kind description.
func (a *Actor) Kind() *ActorKind { return a.kind }

// Live reports whether the actor is still in its level.
func (a *Actor) Live() bool {
	return !a.State.Removed && a.level.world.Valid(a.entity)
}

// WorldTransform implements Body. The local origin is the feet point.
func (a *Actor) WorldTransform() core.Affine {
	return core.Translate(a.State.Position.X, a.State.Position.Y)
}

// LocalBounds implements Body.
func (a *Actor) LocalBounds() Bounds {
	return Bounds{HalfW: a.kind.HalfW, HalfH: a.kind.HalfH, Origin: OriginBottomCenter}
}

// Hitbox returns the actor's damage shape. ok is false once removed.
func (a *Actor) Hitbox() (Shape, bool) {
	if !a.level.world.Valid(a.hitbox) {
		return Shape{}, false
	}
	return *a.level.shape(a.hitbox), true
}

// Update runs one tick: proximity override, state behaviour, gravity,
// ground resolution, hitbox sync and animation advance.
func (a *Actor) Update(in Intent) error {
	if !a.Live() {
		return fmt.Errorf("sim: update %s: %w", a.name, ErrNotLive)
	}
	s := &a.State

	if in.Facing != 0 {
		s.Facing = in.Facing
	}
	next := in.Anim
	if t := a.level.targetActor(); a.kind.Melee && t != nil && t != a && a.inProximity(t) {
		if t.State.Position.X < s.Position.X {
			s.Facing = FacingLeft
		} else {
			s.Facing = FacingRight
		}
		if s.FrameCounter > windupStart && s.FrameCounter < windupEnd {
			next = AnimHit
		} else {
			next = AnimIdle
		}
	}

	a.enter(next)
	switch s.Anim {
	case AnimIdle:
		a.idle()
	case AnimWalk:
		a.walk()
	case AnimJump:
		a.jump()
	case AnimHit:
		a.hit()
	}

	a.integrate()
	a.resolveGround()
	a.syncHitbox()
	a.View.AdvanceFrame()
	return nil
}

func (a *Actor) inProximity(t *Actor) bool {
	d := t.State.Position.Sub(a.State.Position)
	return math.Abs(d.X) <= a.kind.AggroBand && math.Abs(d.Y) <= a.kind.VerticalReach
}

// enter switches state. Walk and Jump restart the frame counter; Idle and
// Hit share it so the windup keeps counting across them.
func (a *Actor) enter(next AnimState) {
	s := &a.State
	if s.Anim != next {
		if next == AnimWalk || next == AnimJump {
			s.FrameCounter = 0
		}
		s.Anim = next
	}
	a.View.Enter(next)
}

func (a *Actor) tickCounter() {
	a.State.FrameCounter++
	if a.State.FrameCounter > a.kind.IdleLoop {
		a.State.FrameCounter = 0
	}
}

func (a *Actor) idle() {
	a.State.Velocity.X = 0
	a.tickCounter()
}

func (a *Actor) walk() {
	s := &a.State
	s.WalkTimeElapsed++
	if s.WalkTimeMax > 0 && s.WalkTimeElapsed > s.WalkTimeMax {
		s.WalkTimeElapsed = 0
		s.Facing = s.Facing.Flip()
	}
	s.Velocity.X = s.Facing.Sign() * a.kind.MaxSpeed
	if s.Velocity.Y == 0 {
		a.level.audio.Play(audio.EffectStep)
	}
}

func (a *Actor) jump() {
	if a.State.Velocity.Y != 0 {
		return
	}
	a.State.Velocity.Y = a.kind.JumpImpulse
	a.level.audio.Play(audio.EffectJump)
}

func (a *Actor) hit() {
	a.State.Velocity.X = a.State.Facing.Sign() * (a.kind.MaxSpeed + a.kind.HitBonus)
	a.level.audio.Play(audio.EffectHit)
	a.tickCounter()
}

func (a *Actor) integrate() {
	s := &a.State
	p := a.level.physics
	s.Velocity.Y -= p.Gravity
	if p.MaxFall > 0 && s.Velocity.Y < -p.MaxFall {
		s.Velocity.Y = -p.MaxFall
	}
	s.Position = s.Position.Add(s.Velocity)
}

// resolveGround rests the actor on the first floor containing one of its
// foot samples. A moving actor also samples its leading toe.
func (a *Actor) resolveGround() {
	s := &a.State
	samples := []core.Vec2{s.Position}
	if s.Velocity.X != 0 {
		samples = append(samples, s.Position.Add(core.V(s.Facing.Sign()*a.kind.HalfW, 0)))
	}

	for _, floor := range a.level.Floors() {
		rect := WorldRect(floor, core.Identity)
		for _, p := range samples {
			if rect.Contains(p) {
				s.Position.Y = rect.Top()
				s.Velocity.Y = 0
				return
			}
		}
	}
}

func (a *Actor) syncHitbox() {
	if !a.level.world.Valid(a.hitbox) {
		return
	}
	scale := a.kind.HitboxScale
	if scale <= 0 {
		scale = 1
	}
	sh := a.level.shape(a.hitbox)
	sh.Transform = a.WorldTransform().Mul(core.Scale(scale, scale))
	sh.Bounds = a.LocalBounds()
}

// ReceiveHit applies one point of damage. At zero health the actor and
// its hitbox leave the level immediately.
func (a *Actor) ReceiveHit() error {
	if !a.Live() {
		return fmt.Errorf("sim: hit %s: %w", a.name, ErrNotLive)
	}
	a.State.Health--
	a.level.audio.Play(audio.EffectHurt)
	if a.State.Health > 0 {
		return nil
	}
	a.State.FrameCounter = 0
	return a.level.Remove(a.entity)
}
