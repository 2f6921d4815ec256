// Package file is a TOML-backed implementation of the settings store.
// Engine defaults live in a single config.toml inside the sdlsplit
// config directory.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/lociq/sdlsplit/internal/core/ports/driven"
)

// Ensure SettingsStore implements the interface.
var _ driven.SettingsStore = (*SettingsStore)(nil)

// SettingsStore persists engine defaults as TOML.
type SettingsStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
}

// NewSettingsStore creates a TOML-based settings store.
// If configDir is empty, defaults to ~/.sdlsplit.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".sdlsplit")
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return nil, err
	}

	s := &SettingsStore{
		filePath: filepath.Join(configDir, "config.toml"),
		data:     make(map[string]any),
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return s, nil
}

// GetString retrieves a string setting, "" when unset.
func (s *SettingsStore) GetString(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	str, _ := s.data[key].(string)
	return str
}

// GetInt retrieves an integer setting, 0 when unset.
func (s *SettingsStore) GetInt(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// TOML integers are parsed as int64
	switch v := s.data[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// GetBool retrieves a boolean setting with a fallback default.
func (s *SettingsStore) GetBool(key string, def bool) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.data[key].(bool)
	if !ok {
		return def
	}
	return b
}

// Set stores a setting and persists immediately.
func (s *SettingsStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return s.save()
}

// Path returns the config file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}

// load reads the TOML file into memory.
func (s *SettingsStore) load() error {
	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}
	data := make(map[string]any)
	if err := toml.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parsing %s: %w", s.filePath, err)
	}
	s.data = data
	return nil
}

// save writes the settings to the TOML file (caller must hold lock).
func (s *SettingsStore) save() error {
	raw, err := toml.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("marshalling settings: %w", err)
	}
	return os.WriteFile(s.filePath, raw, 0o600)
}
