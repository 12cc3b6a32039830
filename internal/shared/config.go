package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Environment variables that override values from the config file.
const (
	EnvServerURL = "MOODTUNE_SERVER_URL"
	EnvDatabase  = "MOODTUNE_DATABASE"
	EnvVolume    = "MOODTUNE_VOLUME"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Playback PlaybackConfig `toml:"playback"`
	Display  DisplayConfig  `toml:"display"`
	Database DatabaseConfig `toml:"database"`
	Batch    BatchConfig    `toml:"batch"`
	Presets  []PresetConfig `toml:"presets"`
}

// ServerConfig describes the recommendation backend.
type ServerConfig struct {
	BaseURL        string `toml:"base_url"`
	RecommendPath  string `toml:"recommend_path"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Timeout returns the request timeout as a [time.Duration].
func (s ServerConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// PlaybackConfig contains preview playback settings.
type PlaybackConfig struct {
	Volume         float64 `toml:"volume"`
	PollIntervalMS int     `toml:"poll_interval_ms"`
}

// PollInterval returns how often the audio engine checks for the end of a clip.
func (p PlaybackConfig) PollInterval() time.Duration {
	return time.Duration(p.PollIntervalMS) * time.Millisecond
}

// DisplayConfig contains rendering settings.
type DisplayConfig struct {
	DefaultImage string `toml:"default_image"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// BatchConfig controls multi-mood runs.
type BatchConfig struct {
	RateLimit float64 `toml:"rate_limit"`
}

// PresetConfig is a preset mood trigger.
type PresetConfig struct {
	ID          string `toml:"id"`
	Label       string `toml:"label"`
	Emoji       string `toml:"emoji"`
	Description string `toml:"description"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	presets := config.Presets
	config.Presets = nil

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if len(config.Presets) == 0 {
		config.Presets = presets
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// Validate checks that the configuration can drive a session.
func (c *Config) Validate() error {
	if c.Server.BaseURL == "" {
		return fmt.Errorf("%w: server.base_url is required", ErrInvalidConfig)
	}
	if c.Playback.Volume < 0 || c.Playback.Volume > 1 {
		return fmt.Errorf("%w: playback.volume must be between 0 and 1, got %v", ErrInvalidConfig, c.Playback.Volume)
	}
	if c.Batch.RateLimit < 0 {
		return fmt.Errorf("%w: batch.rate_limit must not be negative", ErrInvalidConfig)
	}
	for i, p := range c.Presets {
		if p.ID == "" {
			return fmt.Errorf("%w: presets[%d] has no id", ErrInvalidConfig, i)
		}
	}
	return nil
}

// ApplyEnv overrides configuration values from the environment.
// Variables are typically loaded from a .env file at startup.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvServerURL); v != "" {
		c.Server.BaseURL = v
	}
	if v := os.Getenv(EnvDatabase); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(EnvVolume); v != "" {
		volume, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, EnvVolume, v)
		}
		c.Playback.Volume = volume
	}
	return c.Validate()
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
