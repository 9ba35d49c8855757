package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the file looked up in the search directories.
const ConfigFileName = "serpent.yaml"

// Source tells where a loaded configuration came from.
type Source string

const (
	SourceCustom   Source = "custom"
	SourceUser     Source = "user"
	SourceLocal    Source = "local"
	SourceEmbedded Source = "embedded"
)

// Load loads the game configuration.
// Search order: customPath -> ~/.serpent/serpent.yaml -> ./configs/serpent.yaml -> embedded default.
// Files found on the way are overlaid on the embedded defaults, so they
// only need the fields they change. An unreadable or invalid customPath is
// an error; broken optional files are skipped.
func Load(customPath string) (GameConfig, Source, error) {
	base := Default()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return base, SourceEmbedded, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		cfg, err := overlay(base, data)
		if err != nil {
			return base, SourceEmbedded, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, SourceCustom, nil
	}

	if path := userConfigPath(); path != "" {
		if cfg, ok := tryOverlay(base, path); ok {
			return cfg, SourceUser, nil
		}
	}

	if cfg, ok := tryOverlay(base, filepath.Join("configs", ConfigFileName)); ok {
		return cfg, SourceLocal, nil
	}

	return base, SourceEmbedded, nil
}

func tryOverlay(base GameConfig, path string) (GameConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, false
	}
	cfg, err := overlay(base, data)
	if err != nil {
		return base, false
	}
	return cfg, true
}

// overlay decodes data on top of base and validates the result.
// Lists (levels, grid sizes) are replaced as a whole.
func overlay(base GameConfig, data []byte) (GameConfig, error) {
	cfg := base
	cfg.Levels = nil
	cfg.Grid.Sizes = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, err
	}
	if cfg.Levels == nil {
		cfg.Levels = base.Levels
	}
	if cfg.Grid.Sizes == nil {
		cfg.Grid.Sizes = base.Grid.Sizes
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// userConfigPath returns the per-user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".serpent", ConfigFileName)
}
