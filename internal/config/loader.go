package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/fyrsmithlabs/retro/internal/extract"
	"github.com/fyrsmithlabs/retro/internal/habits"
)

const (
	maxConfigFileSize = 1024 * 1024 // 1MB

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "RETRO_"

	defaultMaxLength = 2000
	defaultDebounce  = 500 * time.Millisecond
)

// DefaultDir returns ~/.config/retro.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "retro"), nil
}

// LoadWithFile loads configuration from a YAML file, then overrides with
// environment variables.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (RETRO_LOG_LEVEL, RETRO_STORE_PATH, ...)
//  2. YAML config file (~/.config/retro/config.yaml)
//  3. Built-in defaults
//
// An empty configPath uses the default path, which may be absent. An
// explicit path must exist. The file must not be writable by group or
// others and may not exceed 1MB.
//
// # Environment Variable Mapping
//
// The RETRO_ prefix is dropped and the first underscore separates section
// from field:
//
//	RETRO_LOG_LEVEL         -> log.level
//	RETRO_STORE_PATH        -> store.path
//	RETRO_OUTPUT_MAX_LENGTH -> output.max_length
//	RETRO_WATCH_DEBOUNCE    -> watch.debounce
//
// Section tables (engine.sections, habits.rules) come only from the file.
// When the file supplies them they replace the built-in tables wholesale.
func LoadWithFile(configPath string) (*Config, error) {
	explicit := configPath != ""
	if !explicit {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		configPath = filepath.Join(dir, "config.yaml")
	}

	content, err := readConfigFile(configPath, explicit)
	if err != nil {
		return nil, err
	}
	return Load(content)
}

// Load builds a configuration from YAML content (may be empty) plus the
// environment.
func Load(content []byte) (*Config, error) {
	k := koanf.New(".")

	if len(content) > 0 {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// An explicit 0 means unlimited, so the default is set before unmarshaling.
	if !k.Exists("output.max_length") {
		if err := k.Set("output.max_length", defaultMaxLength); err != nil {
			return nil, fmt.Errorf("failed to set defaults: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Default returns the built-in configuration with the environment applied.
func Default() (*Config, error) {
	return Load(nil)
}

// envKey maps RETRO_SECTION_FIELD_NAME to section.field_name.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower
	}
	return parts[0] + "." + parts[1]
}

func readConfigFile(path string, mustExist bool) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	// Validate through the open descriptor so the file checked is the file read.
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if err := validateConfigFileProperties(info); err != nil {
		return nil, fmt.Errorf("config file validation failed: %w", err)
	}

	content, err := io.ReadAll(io.LimitReader(f, maxConfigFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if len(content) > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: more than %d bytes", maxConfigFileSize)
	}
	return content, nil
}

func validateConfigFileProperties(info os.FileInfo) error {
	if info.IsDir() {
		return fmt.Errorf("config path is a directory")
	}
	if runtime.GOOS != "windows" {
		if perm := info.Mode().Perm(); perm&0o022 != 0 {
			return fmt.Errorf("insecure config file permissions: %v (must not be group or world writable)", perm)
		}
	}
	if info.Size() > maxConfigFileSize {
		return fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}
	return nil
}

// applyDefaults sets default values for missing configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stderr"
	}

	if cfg.Store.Path == "" {
		if dir, err := DefaultDir(); err == nil {
			cfg.Store.Path = filepath.Join(dir, "retro.db")
		} else {
			cfg.Store.Path = "retro.db"
		}
	}

	if cfg.Output.Format == "" {
		cfg.Output.Format = FormatText
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = Duration(defaultDebounce)
	}

	if len(cfg.Engine.Sections) == 0 {
		glyphs := cfg.Engine.StatusGlyphs
		cfg.Engine = extract.DefaultConfig()
		cfg.Engine.StatusGlyphs = glyphs
	}
	if len(cfg.Habits.Simple) == 0 && cfg.Habits.Hobby == nil {
		cfg.Habits = habits.DefaultRules()
	}
}
