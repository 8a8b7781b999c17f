// Package settings persists the user's extraction preferences: an optional
// custom prompt and the field-enablement mask. The file is read at startup
// and rewritten whole on every change; corrupt or missing data means "use
// defaults", never a fatal condition.
package settings

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jklim/schoolcal/internal/event"
)

const fileName = "settings.json"

// Settings mirrors the single persisted preference record.
type Settings struct {
	CustomPrompt  *string             `json:"customPrompt"`
	EnabledFields event.EnabledFields `json:"enabledFields"`
}

// Default returns the settings used when nothing is stored: no prompt
// override and every field enabled.
func Default() Settings {
	return Settings{
		CustomPrompt:  nil,
		EnabledFields: event.DefaultEnabledFields(),
	}
}

// Path returns the settings file location under the user config dir.
func Path() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "schoolcal", fileName), nil
}

// Load reads settings from the default path.
func Load() Settings {
	path, err := Path()
	if err != nil {
		slog.Warn("settings.path_unavailable", "error", err)
		return Default()
	}
	return LoadFrom(path)
}

// LoadFrom reads settings from path. Missing file or unparseable content
// falls back to defaults with a warning.
func LoadFrom(path string) Settings {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("settings.read_failed", "path", path, "error", err)
		}
		return Default()
	}

	s := Default()
	if err := json.Unmarshal(data, &s); err != nil {
		slog.Warn("settings.corrupt", "path", path, "error", err)
		return Default()
	}
	return s
}

// Save rewrites the settings file at the default path.
func Save(s Settings) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(path, s)
}

// SaveTo rewrites the settings file at path, creating parent directories
// as needed.
func SaveTo(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
