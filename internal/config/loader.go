package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// load resolves a game config.
// Search order: customPath -> ~/.arcade/configs/<name> -> ./configs/<name> -> embedded default -> fallback
func load[T any](name, customPath string, embedded []byte, fallback func() T) (T, error) {
	var cfg T

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(name); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			var user T
			if err := yaml.Unmarshal(data, &user); err == nil {
				return user, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", name)); err == nil {
		var local T
		if err := yaml.Unmarshal(data, &local); err == nil {
			return local, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadBrawler loads Stone Brawl configuration.
func LoadBrawler(customPath string) (BrawlerConfig, error) {
	return load("brawler.yaml", customPath, defaultBrawlerYAML, DefaultBrawlerConfig)
}

// LoadGems loads Gem Combo configuration.
func LoadGems(customPath string) (GemsConfig, error) {
	return load("gems.yaml", customPath, defaultGemsYAML, DefaultGemsConfig)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

func applyPreset(d *DifficultyConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		d.Enabled = false
	} else {
		d.Enabled = true
		d.InitialLevel = InitialLevelForPreset(preset)
	}
}

// ApplyBrawlerPreset modifies the config based on a difficulty preset.
func ApplyBrawlerPreset(cfg *BrawlerConfig, preset DifficultyPreset) {
	applyPreset(&cfg.Difficulty, preset)

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Player.Health = 5
		cfg.Guard.Health = 1
	case DifficultyHard:
		cfg.Player.Health = 2
		cfg.Guard.Health = 3
		cfg.Guard.AggroBand *= 1.5
	}
}

// ApplyGemsPreset modifies the config based on a difficulty preset.
func ApplyGemsPreset(cfg *GemsConfig, preset DifficultyPreset) {
	applyPreset(&cfg.Difficulty, preset)

	switch preset {
	case DifficultyEasy:
		cfg.Board.Types = max(3, cfg.Board.Types-1)
	case DifficultyHard:
		cfg.Board.Types++
		cfg.Scoring.MinCombo = max(cfg.Scoring.MinCombo, 3)
	}
}
