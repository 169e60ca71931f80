package brawler

import (
	"fmt"

	"github.com/vovakirdan/pebble-arcade/internal/config"
	"github.com/vovakirdan/pebble-arcade/internal/sim"
)

// animationTable converts the config's state-name keyed frames into a
// sim.AnimationTable.
func animationTable(frames map[string][]string) (sim.AnimationTable, error) {
	table := make(sim.AnimationTable, len(frames))
	for name, list := range frames {
		state, err := sim.ParseAnimState(name)
		if err != nil {
			return nil, fmt.Errorf("brawler: animations: %w", err)
		}
		table[state] = append([]string(nil), list...)
	}
	return table, nil
}

// actorKind builds an immutable sim kind from its config block.
func actorKind(name string, c config.ActorKindConfig) (sim.ActorKind, error) {
	if c.Health <= 0 {
		return sim.ActorKind{}, fmt.Errorf("brawler: %s: health must be positive, got %d", name, c.Health)
	}
	anims, err := animationTable(c.Animations)
	if err != nil {
		return sim.ActorKind{}, fmt.Errorf("brawler: %s: %w", name, err)
	}
	return sim.ActorKind{
		Name:          name,
		Melee:         c.Melee,
		MaxSpeed:      c.MaxSpeed,
		HitBonus:      c.HitBonus,
		JumpImpulse:   c.JumpImpulse,
		Health:        c.Health,
		WalkTimeMax:   c.WalkTimeMax,
		IdleLoop:      c.IdleLoop,
		AggroBand:     c.AggroBand,
		VerticalReach: c.VerticalReach,
		HalfW:         c.HalfWidth,
		HalfH:         c.HalfHeight,
		HitboxScale:   c.HitboxScale,
		Animations:    anims,
	}, nil
}

// stoneKind builds the projectile kind from its config block.
func stoneKind(c config.StoneConfig) (sim.StoneKind, error) {
	anims, err := animationTable(c.Animations)
	if err != nil {
		return sim.StoneKind{}, fmt.Errorf("brawler: stone: %w", err)
	}
	return sim.StoneKind{
		Name:       "stone",
		Speed:      c.Speed,
		Lifetime:   c.Lifetime,
		Forward:    c.Forward,
		Lift:       c.Lift,
		Radius:     c.Radius,
		Animations: anims,
	}, nil
}
