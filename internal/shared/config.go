package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Animation    AnimationConfig    `toml:"animation"`
	Validation   ValidationConfig   `toml:"validation"`
	Notification NotificationConfig `toml:"notification"`
	Results      ResultsConfig      `toml:"results"`
	Log          LogConfig          `toml:"log"`
}

// AnimationConfig contains counter animation timing.
type AnimationConfig struct {
	DurationMS int `toml:"duration_ms"`
	DelayMS    int `toml:"delay_ms"`
	FPS        int `toml:"fps"`
}

// ValidationConfig contains the accepted range for the number of simulations.
type ValidationConfig struct {
	Min     int `toml:"min"`
	Max     int `toml:"max"`
	Default int `toml:"default"`
}

// NotificationConfig contains toast timing.
type NotificationConfig struct {
	TimeoutMS int `toml:"timeout_ms"`
	ExitMS    int `toml:"exit_ms"`
}

// ResultsConfig locates the simulation output.
type ResultsConfig struct {
	Path    string `toml:"path"`
	Command string `toml:"command"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

func (a AnimationConfig) Duration() time.Duration { return time.Duration(a.DurationMS) * time.Millisecond }
func (a AnimationConfig) Delay() time.Duration    { return time.Duration(a.DelayMS) * time.Millisecond }

func (n NotificationConfig) Timeout() time.Duration { return time.Duration(n.TimeoutMS) * time.Millisecond }
func (n NotificationConfig) Exit() time.Duration    { return time.Duration(n.ExitMS) * time.Millisecond }

// Validate reports configuration values that cannot drive the viewer.
func (c *Config) Validate() error {
	if c.Animation.FPS <= 0 {
		return fmt.Errorf("%w: animation.fps must be positive, got %d", ErrInvalidConfig, c.Animation.FPS)
	}
	if c.Validation.Min > c.Validation.Max {
		return fmt.Errorf("%w: validation.min (%d) exceeds validation.max (%d)", ErrInvalidConfig, c.Validation.Min, c.Validation.Max)
	}
	return nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
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
