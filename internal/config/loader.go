package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBurner loads the game configuration.
// Search order: customPath -> ~/.burner/configs/burner.yaml -> ./configs/burner.yaml -> embedded default.
// Files found on the search path are layered over the defaults, so they may
// set only the keys they change. An explicit customPath must exist and parse.
func LoadBurner(customPath string) (BurnerConfig, error) {
	if customPath != "" {
		cfg := embeddedDefaults()
		if err := readInto(customPath, &cfg); err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	candidates := []string{userConfigPath("burner.yaml"), filepath.Join("configs", "burner.yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		cfg := embeddedDefaults()
		if err := readInto(path, &cfg); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	return embeddedDefaults(), nil
}

// embeddedDefaults parses the embedded YAML, falling back to the hard-coded defaults.
func embeddedDefaults() BurnerConfig {
	cfg := DefaultBurnerConfig()
	if err := yaml.Unmarshal(defaultBurnerYAML, &cfg); err != nil {
		return DefaultBurnerConfig()
	}
	return cfg
}

func readInto(path string, cfg *BurnerConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// userConfigPath returns the per-user config path, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".burner", "configs", filename)
}

// ApplyBurnerPreset adjusts cfg for a difficulty preset.
func ApplyBurnerPreset(cfg *BurnerConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// The CPU reacts faster on harder presets.
	switch preset {
	case DifficultyEasy:
		cfg.CPU.MoveEveryTicks = 14
		cfg.CPU.PowerUpEveryTicks = 360
	case DifficultyHard:
		cfg.CPU.MoveEveryTicks = 4
		cfg.CPU.PowerUpEveryTicks = 90
		cfg.CPU.HardDrop = true
	}
}
