// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

// BrawlerConfig contains all configuration for the Stone Brawl game.
type BrawlerConfig struct {
	Physics    BrawlerPhysics   `yaml:"physics"`
	Player     ActorKindConfig  `yaml:"player"`
	Guard      ActorKindConfig  `yaml:"guard"`
	Stone      StoneConfig      `yaml:"stone"`
	Gameplay   BrawlerGameplay  `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BrawlerPhysics defines world constants. Units are tiles and ticks.
type BrawlerPhysics struct {
	Gravity float64 `yaml:"gravity"`
	MaxFall float64 `yaml:"max_fall"`
	KillY   float64 `yaml:"kill_y"` // actors below this height are lost
}

// ActorKindConfig describes one kind of actor (player or guard).
type ActorKindConfig struct {
	Melee         bool    `yaml:"melee"`
	MaxSpeed      float64 `yaml:"max_speed"`
	HitBonus      float64 `yaml:"hit_bonus"`
	JumpImpulse   float64 `yaml:"jump_impulse"`
	Health        int     `yaml:"health"`
	WalkTimeMax   int     `yaml:"walk_time_max"`
	IdleLoop      int     `yaml:"idle_loop"`
	AggroBand     float64 `yaml:"aggro_band"`
	VerticalReach float64 `yaml:"vertical_reach"`
	HalfWidth     float64 `yaml:"half_width"`
	HalfHeight    float64 `yaml:"half_height"`
	HitboxScale   float64 `yaml:"hitbox_scale"`
	Reach         float64 `yaml:"reach"` // how far past the body a swing lands

	// Animations maps a state name (idle, walk, jump, hit) to its frames.
	Animations map[string][]string `yaml:"animations"`
}

// StoneConfig defines the thrown projectile.
type StoneConfig struct {
	Speed      float64             `yaml:"speed"`
	Lifetime   int                 `yaml:"lifetime"`
	Forward    float64             `yaml:"forward"`
	Lift       float64             `yaml:"lift"`
	Radius     float64             `yaml:"radius"`
	MaxActive  int                 `yaml:"max_active"`
	Animations map[string][]string `yaml:"animations"`
}

// BrawlerGameplay defines scoring and pacing.
type BrawlerGameplay struct {
	GuardPoints       int `yaml:"guard_points"`
	LevelBonus        int `yaml:"level_bonus"`
	AttackTicks       int `yaml:"attack_ticks"`       // how long a player swing lasts
	InvulnerableTicks int `yaml:"invulnerable_ticks"` // grace period after the player is hurt
}

// GemsConfig contains all configuration for the Gem Combo game.
type GemsConfig struct {
	Board      GemsBoard        `yaml:"board"`
	Scoring    GemsScoring      `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GemsBoard defines the board dimensions.
type GemsBoard struct {
	Rows  int `yaml:"rows"`
	Cols  int `yaml:"cols"`
	Types int `yaml:"types"` // number of distinct gem types
}

// GemsScoring defines how clears are scored.
type GemsScoring struct {
	MinCombo   int `yaml:"min_combo"`   // smallest combo that can be cleared
	ClearBonus int `yaml:"clear_bonus"` // awarded for emptying the board
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
	PatrolReduction int     `yaml:"patrol_reduction"` // Ticks shaved off guard patrols at max difficulty
	ExtraTypes      int     `yaml:"extra_types"`      // Gem types added at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value into a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
