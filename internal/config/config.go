// Package config loads tada settings from defaults, TOML files, the
// environment and command-line flags, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultTheme     = "classic"
	DefaultColor     = "auto"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	UserConfigName    = "config.toml"
	ProjectConfigName = ".tada.toml"
)

var (
	ErrInvalidTheme    = errors.New("invalid theme")
	ErrInvalidColor    = errors.New("invalid color mode")
	ErrInvalidTimezone = errors.New("invalid timezone")
)

var (
	themes     = []string{"classic", "neon", "mono"}
	colorModes = []string{"auto", "always", "never"}
)

// Config holds every tada setting.
type Config struct {
	Theme       string `toml:"theme"`
	Color       string `toml:"color"`
	LogLevel    string `toml:"log_level"`
	LogFormat   string `toml:"log_format"`
	LogFile     string `toml:"log_file"`
	Timezone    string `toml:"timezone"`
	SeedExample bool   `toml:"seed_example"`
	FileDir     string `toml:"file_dir"`

	// Location is resolved from Timezone by Load.
	Location *time.Location `toml:"-"`
}

// Overrides are values set on the command line. Empty strings are unset.
type Overrides struct {
	ConfigFile string
	Theme      string
	Color      string
	LogLevel   string
	LogFile    string
	Timezone   string
	NoSeed     bool
}

func Defaults() *Config {
	return &Config{
		Theme:       DefaultTheme,
		Color:       DefaultColor,
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
		SeedExample: true,
	}
}

// Load builds the configuration:
// 1. defaults
// 2. user config file, then project config file (or only ov.ConfigFile when set)
// 3. environment variables
// 4. command-line overrides
func Load(ov Overrides) (*Config, error) {
	cfg := Defaults()

	if ov.ConfigFile != "" {
		if err := LoadFile(cfg, ov.ConfigFile); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", ov.ConfigFile, err)
		}
	} else {
		for _, p := range []string{userConfigFile(), ProjectConfigName} {
			if p == "" || !exists(p) {
				continue
			}
			if err := LoadFile(cfg, p); err != nil {
				return nil, fmt.Errorf("loading config file %s: %w", p, err)
			}
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	applyOverrides(cfg, ov)

	if err := finalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile decodes a TOML file over cfg. Unknown keys are an error.
func LoadFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func loadFromEnv(cfg *Config) error {
	setString := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	setString(&cfg.Theme, "TADA_THEME")
	setString(&cfg.Color, "TADA_COLOR")
	setString(&cfg.LogLevel, "TADA_LOG_LEVEL")
	setString(&cfg.LogFormat, "TADA_LOG_FORMAT")
	setString(&cfg.LogFile, "TADA_LOG_FILE")
	setString(&cfg.Timezone, "TADA_TZ")
	setString(&cfg.FileDir, "TADA_FILE_DIR")

	if v, ok := os.LookupEnv("TADA_SEED_EXAMPLE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TADA_SEED_EXAMPLE: %w", err)
		}
		cfg.SeedExample = b
	}
	return nil
}

func applyOverrides(cfg *Config, ov Overrides) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Theme, ov.Theme)
	set(&cfg.Color, ov.Color)
	set(&cfg.LogLevel, ov.LogLevel)
	set(&cfg.LogFile, ov.LogFile)
	set(&cfg.Timezone, ov.Timezone)
	if ov.NoSeed {
		cfg.SeedExample = false
	}
}

func finalize(cfg *Config) error {
	cfg.Theme = strings.ToLower(cfg.Theme)
	cfg.Color = strings.ToLower(cfg.Color)
	if !contains(themes, cfg.Theme) {
		return fmt.Errorf("%w %q (want one of %s)", ErrInvalidTheme, cfg.Theme, strings.Join(themes, ", "))
	}
	if !contains(colorModes, cfg.Color) {
		return fmt.Errorf("%w %q (want one of %s)", ErrInvalidColor, cfg.Color, strings.Join(colorModes, ", "))
	}

	cfg.LogFile = expandPath(cfg.LogFile)
	cfg.FileDir = expandPath(cfg.FileDir)
	if cfg.FileDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.FileDir = wd
	}

	switch strings.ToLower(cfg.Timezone) {
	case "", "local":
		cfg.Location = time.Local
	default:
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return fmt.Errorf("%w %q: %v", ErrInvalidTimezone, cfg.Timezone, err)
		}
		cfg.Location = loc
	}
	return nil
}

func userConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tada", UserConfigName)
}

func expandPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
