package storage

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-serpent/internal/config"
)

// SettingsManager loads and saves the user settings.
type SettingsManager struct {
	mu       sync.RWMutex
	kv       KV
	cfg      config.GameConfig
	logger   *log.Logger
	settings config.Settings
}

// NewSettingsManager loads the settings from kv. Missing or malformed
// fields fall back one by one to their defaults.
func NewSettingsManager(kv KV, cfg config.GameConfig, logger *log.Logger) *SettingsManager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := &SettingsManager{
		kv:     kv,
		cfg:    cfg,
		logger: logger,
	}
	m.settings = m.load()
	return m
}

// Get returns the current settings.
func (m *SettingsManager) Get() config.Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

// Save sanitizes s, keeps it as current and persists it.
// The in-memory value is updated even if persisting fails.
func (m *SettingsManager) Save(s config.Settings) config.Settings {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.settings = s.Sanitize(m.cfg)
	if m.kv == nil {
		return m.settings
	}
	data, err := json.Marshal(m.settings)
	if err != nil {
		m.logger.Warn("cannot encode settings", "err", err)
		return m.settings
	}
	if err := m.kv.Put(KeySettings, string(data)); err != nil {
		m.logger.Warn("cannot save settings", "err", err)
	}
	return m.settings
}

func (m *SettingsManager) load() config.Settings {
	def := config.DefaultSettings(m.cfg)
	if m.kv == nil {
		return def
	}

	raw, ok, err := m.kv.Get(KeySettings)
	if err != nil {
		m.logger.Warn("cannot read settings, using defaults", "err", err)
		return def
	}
	if !ok || raw == "" {
		return def
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		m.logger.Warn("settings are corrupt, using defaults", "err", err)
		return def
	}

	s := def
	decodeField(fields, "difficulty", &s.Difficulty)
	decodeField(fields, "gridSize", &s.GridSize)
	decodeField(fields, "boundaryMode", &s.BoundaryMode)
	return s.Sanitize(m.cfg)
}

// decodeField overwrites dst with fields[name] when it decodes cleanly.
func decodeField[T any](fields map[string]json.RawMessage, name string, dst *T) {
	raw, ok := fields[name]
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return
	}
	*dst = v
}
