package sim

import (
	"fmt"

	"github.com/yohamta/donburi"

	"github.com/vovakirdan/pebble-arcade/internal/core"
)

// Projectile flies straight in its launch direction until its lifetime runs out.
type Projectile struct {
	Position core.Vec2
	Facing   Facing
	Elapsed  int
	View     View

	kind    *StoneKind
	level   *Level
	entity  donburi.Entity
	hitbox  donburi.Entity
	owner   donburi.Entity
	name    string
	seq     int
	removed bool
}

// Entity returns the projectile's entity id.
func (p *Projectile) Entity() donburi.Entity { return p.entity }

// Owner returns the entity that threw the projectile.
func (p *Projectile) Owner() donburi.Entity { return p.owner }

// Name returns the projectile's unique name.
func (p *Projectile) Name() string { return p.name }

// Live reports whether the projectile is still in its level.
func (p *Projectile) Live() bool {
	return !p.removed && p.level.world.Valid(p.entity)
}

// Tip is the centre of the projectile's hitbox in world space.
func (p *Projectile) Tip() core.Vec2 {
	return p.Position.Add(core.V(p.Facing.Sign()*p.kind.Forward, p.kind.Lift))
}

// Hitbox returns the projectile's damage shape. ok is false once removed.
func (p *Projectile) Hitbox() (Shape, bool) {
	if !p.level.world.Valid(p.hitbox) {
		return Shape{}, false
	}
	return *p.level.shape(p.hitbox), true
}

// Update advances the projectile by one tick and removes it once
// Elapsed exceeds its lifetime.
func (p *Projectile) Update() error {
	if !p.Live() {
		return fmt.Errorf("sim: update %s: %w", p.name, ErrNotLive)
	}
	p.Elapsed++
	p.Position.X += p.Facing.Sign() * p.kind.Speed
	p.syncHitbox()
	p.View.AdvanceFrame()

	if p.Elapsed > p.kind.Lifetime {
		return p.level.Remove(p.entity)
	}
	return nil
}

func (p *Projectile) syncHitbox() {
	if !p.level.world.Valid(p.hitbox) {
		return
	}
	tip := p.Tip()
	sh := p.level.shape(p.hitbox)
	sh.Transform = core.Translate(tip.X, tip.Y)
	sh.Bounds = Bounds{HalfW: p.kind.Radius, HalfH: p.kind.Radius, Origin: OriginCenter}
}
