package sim

import (
	"errors"
	"testing"

	"github.com/yohamta/donburi"

	"github.com/vovakirdan/pebble-arcade/internal/audio"
	"github.com/vovakirdan/pebble-arcade/internal/core"
)

func stoneKind(lifetime int) *StoneKind {
	return &StoneKind{
		Name:     "stone",
		Speed:    0.5,
		Lifetime: lifetime,
		Forward:  0.25,
		Lift:     0.5,
		Radius:   0.25,
	}
}

func TestProjectileExpiry(t *testing.T) {
	rec := &audio.Recorder{}
	lv := NewLevel(Physics{}, WithAudio(rec))
	owner := lv.SpawnActor(testKind(), core.V(0, 0), FacingRight)

	p, err := lv.SpawnProjectile(stoneKind(100), owner)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Count(audio.EffectThrow) != 1 {
		t.Errorf("expected a throw effect, got %v", rec.Played())
	}

	for tick := 1; tick <= 101; tick++ {
		if err := lv.Step(nil); err != nil {
			t.Fatalf("tick %d: %v", tick, err)
		}
		present := len(lv.Projectiles()) == 1
		if tick <= 100 && !present {
			t.Fatalf("tick %d: projectile missing", tick)
		}
		if tick == 101 && present {
			t.Fatal("tick 101: projectile should be gone")
		}
	}

	if p.Live() {
		t.Error("expired projectile still live")
	}
	if _, ok := p.Hitbox(); ok {
		t.Error("expired projectile kept its hitbox")
	}
	if lv.Hitboxes() != 1 {
		t.Errorf("only the owner's hitbox should remain, got %d", lv.Hitboxes())
	}
	if err := p.Update(); !errors.Is(err, ErrNotLive) {
		t.Errorf("Update after expiry = %v, expected ErrNotLive", err)
	}
}

func TestProjectileFlight(t *testing.T) {
	lv := NewLevel(Physics{})
	owner := lv.SpawnActor(testKind(), core.V(10, 0), FacingLeft)

	p, err := lv.SpawnProjectile(stoneKind(10), owner)
	if err != nil {
		t.Fatal(err)
	}
	start := p.Position

	for i := 0; i < 4; i++ {
		if err := p.Update(); err != nil {
			t.Fatal(err)
		}
	}

	if p.Position.X != start.X-2 || p.Position.Y != start.Y {
		t.Errorf("Position = %v, expected %v", p.Position, core.V(start.X-2, start.Y))
	}
	if p.Elapsed != 4 {
		t.Errorf("Elapsed = %d, expected 4", p.Elapsed)
	}

	hb, ok := p.Hitbox()
	if !ok {
		t.Fatal("projectile lost its hitbox")
	}
	tip := p.Position.Add(core.V(-0.25, 0.5))
	if !ContainsPoint(tip, hb) {
		t.Errorf("hitbox should be centred on %v", tip)
	}
	if p.Tip() != tip {
		t.Errorf("Tip() = %v, expected %v", p.Tip(), tip)
	}
}

func TestSpawnProjectileFromRemovedOwner(t *testing.T) {
	lv := NewLevel(Physics{})
	owner := lv.SpawnActor(testKind(), core.V(0, 0), FacingRight)
	_ = lv.Remove(owner.Entity())

	if _, err := lv.SpawnProjectile(stoneKind(5), owner); !errors.Is(err, ErrNotLive) {
		t.Errorf("expected ErrNotLive, got %v", err)
	}
}

func TestStepSkipsRemovedAndKeepsGoing(t *testing.T) {
	lv := NewLevel(Physics{})
	k := testKind()
	k.Melee = false
	a := lv.SpawnActor(k, core.V(0, 0), FacingRight)
	b := lv.SpawnActor(k, core.V(5, 0), FacingRight)
	_ = lv.Remove(a.Entity())

	err := lv.Step(map[donburi.Entity]Intent{b.Entity(): {Anim: AnimWalk}})
	if err != nil {
		t.Fatal(err)
	}
	if b.State.Anim != AnimWalk || b.State.Position.X != 5+k.MaxSpeed {
		t.Errorf("live actor was not stepped: %+v", b.State)
	}
}
