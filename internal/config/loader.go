package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the game configuration.
// Search order: customPath -> ~/.flappybird/configs/flappy.yaml ->
// ./configs/flappy.yaml -> embedded default.
// The returned configuration is always validated.
func Load(customPath string) (Game, error) {
	var cfg Game

	// Custom path is authoritative: failures are reported, not skipped.
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	// User config directory
	if userPath := userConfigPath("flappy.yaml"); userPath != "" {
		if cfg, ok := tryLoad(userPath); ok {
			return cfg, cfg.Validate()
		}
	}

	// Local configs directory
	if cfg, ok := tryLoad(filepath.Join("configs", "flappy.yaml")); ok {
		return cfg, cfg.Validate()
	}

	// Embedded default
	if err := yaml.Unmarshal(defaultGameYAML, &cfg); err != nil {
		cfg = DefaultGame()
	}
	return cfg, cfg.Validate()
}

// tryLoad reads and parses a config file, reporting whether it succeeded.
func tryLoad(path string) (Game, bool) {
	var cfg Game
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to a user config file, or empty if the
// home directory is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flappybird", "configs", filename)
}
