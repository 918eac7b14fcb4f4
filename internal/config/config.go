// SPDX-License-Identifier: EPL-2.0

// Package config loads runtime settings from the environment, flags and an
// optional settings file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidConfig wraps every validation failure.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config holds all runtime configuration.
type Config struct {
	// Export
	BitRate      int
	Formats      []string
	OutputDir    string
	ReleaseDelay time.Duration

	// Loading
	PrefixBytes int64
	HTTPTimeout time.Duration
	BlobDir     string

	// Playback
	DeviceRate int

	// Settings collaborator file, optional
	SettingsPath string

	LogFile string
}

// Load reads configuration from AUDTRIM_* environment variables with sane
// defaults.
func Load() Config {
	return Config{
		BitRate:      envInt("AUDTRIM_BITRATE", 128),
		Formats:      envList("AUDTRIM_FORMATS", []string{"wav", "mp3"}),
		OutputDir:    envStr("AUDTRIM_OUTPUT_DIR", "."),
		ReleaseDelay: time.Duration(envInt("AUDTRIM_RELEASE_DELAY_MS", 100)) * time.Millisecond,

		PrefixBytes: envInt64("AUDTRIM_PREFIX_BYTES", 8<<20),
		HTTPTimeout: time.Duration(envInt("AUDTRIM_HTTP_TIMEOUT_SEC", 30)) * time.Second,
		BlobDir:     envStr("AUDTRIM_BLOB_DIR", ""),

		DeviceRate: envInt("AUDTRIM_DEVICE_RATE", 44100),

		SettingsPath: envStr("AUDTRIM_SETTINGS", ""),

		LogFile: envStr("AUDTRIM_LOG_FILE", "audtrim.log"),
	}
}

// RegisterFlags binds flags on fs that override c. Call before fs.Parse.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.BitRate, "bitrate", c.BitRate, "MP3 bit rate in kbit/s")
	fs.Func("formats", "comma separated output formats (default "+strings.Join(c.Formats, ",")+")", func(v string) error {
		c.Formats = splitList(v)
		return nil
	})
	fs.StringVar(&c.OutputDir, "out", c.OutputDir, "directory for exported files")
	fs.DurationVar(&c.ReleaseDelay, "release-delay", c.ReleaseDelay, "delay before exported files are released")
	fs.Int64Var(&c.PrefixBytes, "prefix-bytes", c.PrefixBytes, "bytes decoded for the waveform preview")
	fs.DurationVar(&c.HTTPTimeout, "http-timeout", c.HTTPTimeout, "timeout for fetching remote audio")
	fs.StringVar(&c.BlobDir, "blob-dir", c.BlobDir, "directory holding blob: sources")
	fs.IntVar(&c.DeviceRate, "device-rate", c.DeviceRate, "playback sample rate in Hz")
	fs.StringVar(&c.SettingsPath, "settings", c.SettingsPath, "settings JSON file")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "log file path")
}

// Validate checks ranges. Encoder specific limits, like valid MP3 bit rates,
// are checked by the encoders.
func (c Config) Validate() error {
	var errs []error

	if c.BitRate <= 0 {
		errs = append(errs, fmt.Errorf("bit rate %d must be positive", c.BitRate))
	}
	if len(c.Formats) == 0 {
		errs = append(errs, errors.New("no output formats"))
	}
	if c.PrefixBytes <= 0 {
		errs = append(errs, fmt.Errorf("prefix bytes %d must be positive", c.PrefixBytes))
	}
	if c.DeviceRate <= 0 {
		errs = append(errs, fmt.Errorf("device rate %d must be positive", c.DeviceRate))
	}
	if c.ReleaseDelay < 0 || c.HTTPTimeout < 0 {
		errs = append(errs, errors.New("durations must not be negative"))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		if list := splitList(v); len(list) > 0 {
			return list
		}
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for part := range strings.SplitSeq(v, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}
