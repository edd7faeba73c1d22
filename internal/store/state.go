package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/armstrongwx/weather-duel/internal/weather"
)

// persistedState is the on-disk shape of user settings and streaks, the
// server-side stand-in for the dashboard's local storage.
type persistedState struct {
	Settings weather.Settings                      `json:"settings"`
	Streaks  map[weather.Slot]weather.StreakRecord `json:"streaks"`
}

// FileStateStore persists settings and streak records as a single JSON
// file. Writes go through a temp file and rename so a crash mid-write
// cannot leave a truncated state file behind.
type FileStateStore struct {
	path string
}

// NewFileStateStore creates a FileStateStore at the given path. The parent
// directory is created if missing.
func NewFileStateStore(path string) (*FileStateStore, error) {
	if path == "" {
		return nil, fmt.Errorf("state file path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating state directory: %w", err)
		}
	}
	return &FileStateStore{path: path}, nil
}

// Load reads the persisted settings and streaks. A missing file is not an
// error; it returns zero values so callers fall back to defaults.
func (s *FileStateStore) Load() (weather.Settings, map[weather.Slot]weather.StreakRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return weather.Settings{}, nil, nil
		}
		return weather.Settings{}, nil, fmt.Errorf("reading state file: %w", err)
	}

	var state persistedState
	if err := json.Unmarshal(data, &state); err != nil {
		return weather.Settings{}, nil, fmt.Errorf("parsing state file: %w", err)
	}
	return state.Settings, state.Streaks, nil
}

// Save writes settings and streaks atomically.
func (s *FileStateStore) Save(settings weather.Settings, streaks map[weather.Slot]weather.StreakRecord) error {
	data, err := json.MarshalIndent(persistedState{Settings: settings, Streaks: streaks}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing state file: %w", err)
	}
	return nil
}
