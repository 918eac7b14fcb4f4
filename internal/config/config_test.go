// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"AUDTRIM_BITRATE", "AUDTRIM_FORMATS", "AUDTRIM_PREFIX_BYTES", "AUDTRIM_RELEASE_DELAY_MS"} {
		t.Setenv(k, "")
	}

	c := Load()

	if c.BitRate != 128 {
		t.Errorf("BitRate = %d, want 128", c.BitRate)
	}
	if !slices.Equal(c.Formats, []string{"wav", "mp3"}) {
		t.Errorf("Formats = %v", c.Formats)
	}
	if c.PrefixBytes != 8<<20 {
		t.Errorf("PrefixBytes = %d", c.PrefixBytes)
	}
	if c.ReleaseDelay != 100*time.Millisecond {
		t.Errorf("ReleaseDelay = %v", c.ReleaseDelay)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("AUDTRIM_BITRATE", "192")
	t.Setenv("AUDTRIM_FORMATS", " MP3, ,wav ")
	t.Setenv("AUDTRIM_PREFIX_BYTES", "1024")
	t.Setenv("AUDTRIM_DEVICE_RATE", "not a number")
	t.Setenv("AUDTRIM_HTTP_TIMEOUT_SEC", "5")

	c := Load()

	if c.BitRate != 192 {
		t.Errorf("BitRate = %d, want 192", c.BitRate)
	}
	if !slices.Equal(c.Formats, []string{"mp3", "wav"}) {
		t.Errorf("Formats = %v", c.Formats)
	}
	if c.PrefixBytes != 1024 {
		t.Errorf("PrefixBytes = %d", c.PrefixBytes)
	}
	if c.DeviceRate != 44100 {
		t.Errorf("DeviceRate = %d, want fallback 44100", c.DeviceRate)
	}
	if c.HTTPTimeout != 5*time.Second {
		t.Errorf("HTTPTimeout = %v", c.HTTPTimeout)
	}
}

func TestRegisterFlags(t *testing.T) {
	t.Parallel()

	c := Config{BitRate: 128, Formats: []string{"wav"}, PrefixBytes: 1, DeviceRate: 44100}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.RegisterFlags(fs)

	err := fs.Parse([]string{"-bitrate", "320", "-formats", "mp3", "-out", "/tmp/clips", "-release-delay", "1s"})
	if err != nil {
		t.Fatal(err)
	}

	if c.BitRate != 320 || c.OutputDir != "/tmp/clips" || c.ReleaseDelay != time.Second {
		t.Errorf("flags not applied: %+v", c)
	}
	if !slices.Equal(c.Formats, []string{"mp3"}) {
		t.Errorf("Formats = %v", c.Formats)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := Config{BitRate: 128, Formats: []string{"wav"}, PrefixBytes: 1, DeviceRate: 44100}

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"bit rate", func(c *Config) { c.BitRate = 0 }},
		{"formats", func(c *Config) { c.Formats = nil }},
		{"prefix", func(c *Config) { c.PrefixBytes = -1 }},
		{"device rate", func(c *Config) { c.DeviceRate = 0 }},
		{"delay", func(c *Config) { c.ReleaseDelay = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := valid
			tt.modify(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadSettings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := filepath.Join(dir, "settings.json")
	data := `{"headerTitle":"Call Review","buttonColors":{"start":"#00ff00"},"audioFolderPath":"/srv/calls","cities":["Haifa","Lyon"]}`
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings(p)
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}

	if s.HeaderTitle != "Call Review" || s.AudioFolderPath != "/srv/calls" {
		t.Errorf("settings = %+v", s)
	}
	if !slices.Equal(s.Cities, []string{"Haifa", "Lyon"}) {
		t.Errorf("Cities = %v", s.Cities)
	}
	if s.ButtonColors["start"] != "#00ff00" || s.ButtonColors["end"] != DefaultSettings().ButtonColors["end"] {
		t.Errorf("ButtonColors = %v", s.ButtonColors)
	}
}

func TestLoadSettingsErrors(t *testing.T) {
	t.Parallel()

	s, err := LoadSettings("")
	if err != nil || s.HeaderTitle != DefaultSettings().HeaderTitle {
		t.Errorf("LoadSettings(\"\") = %+v, %v", s, err)
	}

	if _, err := LoadSettings(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSettings(bad); err == nil {
		t.Error("malformed settings accepted")
	}
}
