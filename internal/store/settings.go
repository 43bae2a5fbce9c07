package store

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/kverlander/slate/internal/schema"
)

// SettingsStore reads and writes the shared global settings (settings.json).
type SettingsStore struct {
	path string
}

// NewSettingsStore returns a settings store rooted at dataDir.
func NewSettingsStore(dataDir string) *SettingsStore {
	return &SettingsStore{path: filepath.Join(dataDir, SettingsFileName)}
}

// Load reads the settings. An absent file yields defaults. An undecodable
// file also yields defaults but is left on disk for inspection, unlike the
// self-healing index.
func (s *SettingsStore) Load() (*schema.GlobalSettings, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return schema.DefaultGlobalSettings(), nil
		}
		return nil, fmt.Errorf("failed to read settings %s: %w", s.path, err)
	}

	settings, err := schema.DecodeSettings(data)
	if err != nil {
		log.Printf("settings %s is unreadable, using defaults: %v", s.path, err)
		return schema.DefaultGlobalSettings(), nil
	}
	return settings, nil
}

// Save writes the settings atomically.
func (s *SettingsStore) Save(settings *schema.GlobalSettings) error {
	data, err := schema.EncodeSettings(settings)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
