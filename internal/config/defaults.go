package config

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/serpent.yaml
var defaultSerpentYAML []byte

// Default returns the embedded default configuration.
// The embedded file is covered by tests, so a parse failure is a build bug.
func Default() GameConfig {
	var cfg GameConfig
	if err := yaml.Unmarshal(defaultSerpentYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// DefaultYAML returns the embedded default YAML document.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultSerpentYAML))
	copy(out, defaultSerpentYAML)
	return out
}

// Marshal renders cfg as YAML.
func Marshal(cfg GameConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot marshal: %w", err)
	}
	return data, nil
}
