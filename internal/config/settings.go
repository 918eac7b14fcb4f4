// SPDX-License-Identifier: EPL-2.0

package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Settings is the administrative configuration shared with other front-ends.
// Only AudioFolderPath affects loading; the rest is presentation.
type Settings struct {
	HeaderTitle     string            `json:"headerTitle"`
	ButtonColors    map[string]string `json:"buttonColors"`
	AudioFolderPath string            `json:"audioFolderPath"`
	Cities          []string          `json:"cities"`
}

// DefaultSettings is used when no settings file is configured.
func DefaultSettings() Settings {
	return Settings{
		HeaderTitle: "Audio Trimmer",
		ButtonColors: map[string]string{
			"start":  "#2e7d32",
			"end":    "#c62828",
			"export": "#1565c0",
		},
	}
}

// LoadSettings reads a settings file. An empty path yields the defaults;
// fields missing from the file keep their defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}

	defaults := s.ButtonColors
	s.ButtonColors = nil
	if err := json.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("parse settings %s: %w", path, err)
	}

	if s.ButtonColors == nil {
		s.ButtonColors = make(map[string]string, len(defaults))
	}
	for k, v := range defaults {
		if _, ok := s.ButtonColors[k]; !ok {
			s.ButtonColors[k] = v
		}
	}

	return s, nil
}
