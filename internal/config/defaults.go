package config

import (
	_ "embed"
)

//go:embed defaults/brawler.yaml
var defaultBrawlerYAML []byte

//go:embed defaults/gems.yaml
var defaultGemsYAML []byte

// DefaultBrawlerConfig returns the default Stone Brawl configuration.
func DefaultBrawlerConfig() BrawlerConfig {
	return BrawlerConfig{
		Physics: BrawlerPhysics{
			Gravity: 0.035,
			MaxFall: 0.8,
			KillY:   -3,
		},
		Player: ActorKindConfig{
			MaxSpeed:    0.25,
			HitBonus:    0.1,
			JumpImpulse: 0.7,
			Health:      3,
			IdleLoop:    20,
			HalfWidth:   0.5,
			HalfHeight:  1,
			HitboxScale: 1,
			Reach:       1,
			Animations: map[string][]string{
				"idle": {"@║"},
				"walk": {"@╱", "@╲"},
				"jump": {"@╨"},
				"hit":  {"@╫"},
			},
		},
		Guard: ActorKindConfig{
			Melee:         true,
			MaxSpeed:      0.08,
			HitBonus:      0.04,
			Health:        2,
			WalkTimeMax:   90,
			IdleLoop:      30,
			AggroBand:     2,
			VerticalReach: 1,
			HalfWidth:     0.5,
			HalfHeight:    1,
			HitboxScale:   1.2,
			Reach:         1,
			Animations: map[string][]string{
				"idle": {"Ö║"},
				"walk": {"Ö╱", "Ö╲"},
				"hit":  {"Ö╫"},
			},
		},
		Stone: StoneConfig{
			Speed:     0.5,
			Lifetime:  60,
			Forward:   0.5,
			Radius:    0.5,
			MaxActive: 3,
			Animations: map[string][]string{
				"idle": {"o", "°"},
			},
		},
		Gameplay: BrawlerGameplay{
			GuardPoints:       100,
			LevelBonus:        500,
			AttackTicks:       8,
			InvulnerableTicks: 60,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 3000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.75,
				PatrolReduction: 30,
			},
		},
	}
}

// DefaultGemsConfig returns the default Gem Combo configuration.
func DefaultGemsConfig() GemsConfig {
	return GemsConfig{
		Board: GemsBoard{
			Rows:  10,
			Cols:  12,
			Types: 4,
		},
		Scoring: GemsScoring{
			MinCombo:   2,
			ClearBonus: 1000,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				ExtraTypes: 2,
			},
		},
	}
}
