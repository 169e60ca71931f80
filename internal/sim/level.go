package sim

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"

	"github.com/vovakirdan/pebble-arcade/internal/audio"
	"github.com/vovakirdan/pebble-arcade/internal/core"
)

// Level owns every entity of one running stage: floors, actors,
// projectiles and their hitboxes.
type Level struct {
	world   donburi.World
	physics Physics
	audio   audio.Player
	log     *log.Logger

	target    donburi.Entity
	hasTarget bool
	seq       int
}

// Option configures a Level.
type Option func(*Level)

// WithLogger routes simulation diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(lv *Level) {
		if l != nil {
			lv.log = l
		}
	}
}

// WithAudio sets the sound-effect sink.
func WithAudio(p audio.Player) Option {
	return func(lv *Level) {
		if p != nil {
			lv.audio = p
		}
	}
}

// NewLevel creates an empty level.
func NewLevel(p Physics, opts ...Option) *Level {
	lv := &Level{
		world:   donburi.NewWorld(),
		physics: p,
		audio:   audio.Nop{},
		log:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(lv)
	}
	return lv
}

// Physics returns the level's world constants.
func (lv *Level) Physics() Physics {
	return lv.physics
}

// AddFloor places a standable rectangle whose bottom-left corner is (x, y).
func (lv *Level) AddFloor(x, y, w, h float64) donburi.Entity {
	e := lv.world.Create(Floor, ShapeComp)
	ShapeComp.Set(lv.world.Entry(e), &Shape{
		Transform: core.Translate(x, y),
		Bounds:    Bounds{HalfW: w / 2, HalfH: h / 2, Origin: OriginBottomLeft},
	})
	return e
}

// SpawnActor adds an actor of the given kind with its feet at pos.
// A kind without health yields an actor that is already removed.
func (lv *Level) SpawnActor(kind *ActorKind, pos core.Vec2, facing Facing) *Actor {
	lv.seq++
	a := &Actor{
		State: ActorState{
			Position:    pos,
			Facing:      facing,
			Health:      kind.Health,
			Anim:        AnimIdle,
			WalkTimeMax: kind.WalkTimeMax,
		},
		View:  NewView(kind.Animations),
		kind:  kind,
		level: lv,
		name:  fmt.Sprintf("%s-%d", kind.Name, lv.seq),
		seq:   lv.seq,
	}

	a.entity = lv.world.Create(ActorTag, ActorComp, NameComp)
	entry := lv.world.Entry(a.entity)
	ActorComp.Set(entry, &ActorData{Actor: a})
	NameComp.Set(entry, &NameData{Name: a.name})

	a.hitbox = lv.world.Create(HitboxTag, ShapeComp, OwnerComp)
	OwnerComp.Set(lv.world.Entry(a.hitbox), &OwnerData{Owner: a.entity})
	a.syncHitbox()

	if a.State.Health <= 0 {
		lv.log.Warn("actor spawned without health", "name", a.name, "health", a.State.Health)
		_ = lv.Remove(a.entity)
		return a
	}

	lv.log.Debug("spawned actor", "name", a.name, "x", pos.X, "y", pos.Y)
	return a
}

// SpawnProjectile launches a projectile from owner in its facing direction.
func (lv *Level) SpawnProjectile(kind *StoneKind, owner *Actor) (*Projectile, error) {
	if owner == nil || !owner.Live() {
		return nil, fmt.Errorf("sim: spawn %s: %w", kind.Name, ErrNotLive)
	}
	lv.seq++
	p := &Projectile{
		Position: owner.State.Position.Add(core.V(0, owner.kind.HalfH)),
		Facing:   owner.State.Facing,
		View:     NewView(kind.Animations),
		kind:     kind,
		level:    lv,
		owner:    owner.entity,
		name:     fmt.Sprintf("%s-%d", kind.Name, lv.seq),
		seq:      lv.seq,
	}

	p.entity = lv.world.Create(Stone, ProjectileComp, NameComp)
	entry := lv.world.Entry(p.entity)
	ProjectileComp.Set(entry, &ProjectileData{Projectile: p})
	NameComp.Set(entry, &NameData{Name: p.name})

	p.hitbox = lv.world.Create(HitboxTag, ShapeComp, OwnerComp)
	OwnerComp.Set(lv.world.Entry(p.hitbox), &OwnerData{Owner: p.entity})
	p.syncHitbox()

	lv.audio.Play(audio.EffectThrow)
	return p, nil
}

// SetTarget designates the actor melee actors attack when it comes close.
func (lv *Level) SetTarget(a *Actor) {
	if a == nil {
		lv.hasTarget = false
		return
	}
	lv.target = a.entity
	lv.hasTarget = true
}

func (lv *Level) targetActor() *Actor {
	if !lv.hasTarget || !lv.world.Valid(lv.target) {
		return nil
	}
	entry := lv.world.Entry(lv.target)
	if !entry.HasComponent(ActorComp) {
		return nil
	}
	return ActorComp.Get(entry).Actor
}

// Live reports whether e is still part of the level.
func (lv *Level) Live(e donburi.Entity) bool {
	return lv.world.Valid(e)
}

// Remove takes an entity out of the level together with the hitbox it owns.
// A removed actor ends with non-positive health.
func (lv *Level) Remove(e donburi.Entity) error {
	if !lv.world.Valid(e) {
		return fmt.Errorf("sim: remove: %w", ErrNotLive)
	}

	entry := lv.world.Entry(e)
	var hitbox donburi.Entity
	hasHitbox := false
	switch {
	case entry.HasComponent(ActorComp):
		a := ActorComp.Get(entry).Actor
		a.State.Removed = true
		a.State.Health = min(a.State.Health, 0)
		hitbox, hasHitbox = a.hitbox, true
		lv.log.Debug("removed actor", "name", a.name)
	case entry.HasComponent(ProjectileComp):
		p := ProjectileComp.Get(entry).Projectile
		p.removed = true
		hitbox, hasHitbox = p.hitbox, true
	}

	if hasHitbox && lv.world.Valid(hitbox) {
		lv.world.Remove(hitbox)
	}
	lv.world.Remove(e)
	return nil
}

// Hit delivers one point of damage to the actor registered under name.
// Names that do not resolve to a live actor are logged and ignored.
func (lv *Level) Hit(name string) error {
	var target *Actor
	NameComp.Each(lv.world, func(entry *donburi.Entry) {
		if target != nil || NameComp.Get(entry).Name != name {
			return
		}
		if entry.HasComponent(ActorComp) {
			target = ActorComp.Get(entry).Actor
		}
	})
	if target == nil {
		lv.log.Warn("hit on unknown target", "name", name)
		return nil
	}
	return target.ReceiveHit()
}

// Actors returns the live actors in spawn order.
func (lv *Level) Actors() []*Actor {
	var out []*Actor
	ActorTag.Each(lv.world, func(entry *donburi.Entry) {
		out = append(out, ActorComp.Get(entry).Actor)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

// Projectiles returns the live projectiles in spawn order.
func (lv *Level) Projectiles() []*Projectile {
	var out []*Projectile
	Stone.Each(lv.world, func(entry *donburi.Entry) {
		out = append(out, ProjectileComp.Get(entry).Projectile)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

// Floors returns the level geometry.
func (lv *Level) Floors() []Shape {
	var out []Shape
	Floor.Each(lv.world, func(entry *donburi.Entry) {
		out = append(out, *ShapeComp.Get(entry))
	})
	return out
}

// Hitboxes returns the number of hitboxes currently in the level.
func (lv *Level) Hitboxes() int {
	n := 0
	HitboxTag.Each(lv.world, func(*donburi.Entry) { n++ })
	return n
}

// Step advances the level by one tick. Actors update first, then
// projectiles. Entities removed earlier in the same tick are skipped and
// a failing update does not stop the others.
func (lv *Level) Step(intents map[donburi.Entity]Intent) error {
	actors := lv.Actors()
	projectiles := lv.Projectiles()

	var errs []error
	for _, a := range actors {
		if !a.Live() {
			continue
		}
		if err := a.Update(intents[a.entity]); err != nil {
			errs = append(errs, err)
		}
	}
	for _, p := range projectiles {
		if !p.Live() {
			continue
		}
		if err := p.Update(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (lv *Level) shape(e donburi.Entity) *Shape {
	return ShapeComp.Get(lv.world.Entry(e))
}
