// Package config loads application configuration from defaults, an optional
// YAML file, and LSGR_-prefixed environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/litescript/ls-globeradio/internal/station"
)

const envPrefix = "LSGR_"

// Config holds all tunables.
type Config struct {
	StationsURL  string        `koanf:"stations_url"`
	FetchTimeout time.Duration `koanf:"fetch_timeout"`
	LoadTimeout  time.Duration `koanf:"load_timeout"`
	DataDir      string        `koanf:"data_dir"`

	HitThresholdPx float64       `koanf:"hit_threshold_px"`
	TickRate       time.Duration `koanf:"tick_rate"`

	PlayerCommand string `koanf:"player_command"`
	Language      string `koanf:"language"`

	LogLevel string `koanf:"log_level"`
	LogFile  string `koanf:"log_file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		StationsURL:    station.DefaultStationsURL,
		FetchTimeout:   30 * time.Second,
		LoadTimeout:    5 * time.Second,
		HitThresholdPx: 10,
		TickRate:       33 * time.Millisecond,
		PlayerCommand:  "mpv --no-video --really-quiet",
		Language:       "en",
		LogLevel:       "info",
	}
}

// Load builds the configuration. path may be empty; a missing file at a
// non-empty path is an error, so typos don't silently fall back to
// defaults.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// LSGR_STATIONS_URL overrides stations_url, and so on.
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	return cfg, nil
}

// defaultDataDir resolves the per-user state directory.
func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".ls-globeradio"
	}
	return filepath.Join(base, "ls-globeradio")
}
