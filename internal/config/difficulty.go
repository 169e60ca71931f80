package config

import "github.com/vovakirdan/pebble-arcade/internal/core"

// maxGemTypes is the number of distinct gem glyphs available.
const maxGemTypes = 6

// minPatrolTicks keeps a patrol long enough to read on screen.
const minPatrolTicks = 20

// DifficultyManager turns progress (score or elapsed ticks) into game
// parameters. Level climbs linearly from InitialLevel to 1 as progress
// reaches Progression.MaxAt.
type DifficultyManager struct {
	cfg DifficultyConfig
}

func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	cfg.InitialLevel = core.Clamp(cfg.InitialLevel, 0, 1)
	return &DifficultyManager{cfg: cfg}
}

// Progressive reports whether the level moves at all.
func (d *DifficultyManager) Progressive() bool {
	switch d.cfg.Progression.Type {
	case "score", "time":
		return d.cfg.Enabled
	}
	return false
}

// Level returns the difficulty in [InitialLevel, 1].
func (d *DifficultyManager) Level(score, ticks int) float64 {
	start := d.cfg.InitialLevel
	if !d.Progressive() {
		return start
	}

	progress := float64(score)
	if d.cfg.Progression.Type == "time" {
		progress = float64(ticks)
	}
	progress /= float64(max(d.cfg.Progression.MaxAt, 1))

	return start + core.Clamp(progress, 0, 1)*(1-start)
}

// Speed scales baseSpeed up to (1 + SpeedMultiplier) times at full level.
func (d *DifficultyManager) Speed(baseSpeed float64, score, ticks int) float64 {
	return baseSpeed * (1 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier)
}

// PatrolTicks shortens a guard patrol by up to PatrolReduction ticks. A
// disabled patrol (base <= 0) stays disabled.
func (d *DifficultyManager) PatrolTicks(base, score, ticks int) int {
	if base <= 0 {
		return base
	}
	cut := int(d.Level(score, ticks) * float64(d.cfg.Scaling.PatrolReduction))
	return min(max(base-cut, minPatrolTicks), base)
}

// GemTypes adds up to ExtraTypes kinds to a fresh board.
func (d *DifficultyManager) GemTypes(base, score, ticks int) int {
	extra := int(d.Level(score, ticks) * float64(d.cfg.Scaling.ExtraTypes))
	return min(base+extra, maxGemTypes)
}
