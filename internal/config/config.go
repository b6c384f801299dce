// Package config provides the dragsort configuration file: animation
// timing, hit-test threshold, and the demo item list, stored as TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"dragsort.dev/dragsort/internal/engine"
	"dragsort.dev/dragsort/internal/motion"
)

// Config is the on-disk configuration. Zero values mean "use the default".
type Config struct {
	// Transition is the animation duration for sibling slides and the
	// settle animation, as a Go duration string.
	Transition string `toml:"transition,omitempty"`

	// Easing names the transition's easing curve: linear, cubic,
	// cubic-in, cubic-out.
	Easing string `toml:"easing,omitempty"`

	// Threshold is the inward rectangle inset, in cells, before a
	// destination-slot change registers.
	Threshold float64 `toml:"threshold,omitempty"`

	// Items are the demo list's labels.
	Items []string `toml:"items,omitempty"`

	// LogFile enables debug logging to a rotated file when set.
	LogFile string `toml:"log_file,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Transition: "500ms",
		Easing:     "cubic",
		Threshold:  0,
		Items:      []string{"alpha", "bravo", "charlie", "delta", "echo"},
	}
}

// Load reads the configuration at path and merges it over the defaults. A
// missing file yields the defaults; a malformed one is an error.
func Load(path string) (Config, error) {
	merged := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return merged, nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var file Config
	if err := toml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if file.Transition != "" {
		merged.Transition = file.Transition
	}
	if file.Easing != "" {
		merged.Easing = file.Easing
	}
	if file.Threshold != 0 {
		merged.Threshold = file.Threshold
	}
	if len(file.Items) > 0 {
		merged.Items = file.Items
	}
	if file.LogFile != "" {
		merged.LogFile = file.LogFile
	}
	return merged, nil
}

// Write saves the configuration to path, creating parent directories as
// needed.
func Write(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// EngineOptions translates the configuration into engine options.
func (c Config) EngineOptions() (engine.Options, error) {
	duration, err := time.ParseDuration(c.Transition)
	if err != nil {
		return engine.Options{}, fmt.Errorf("invalid transition %q: %w", c.Transition, err)
	}

	easing, err := motion.ParseEasing(c.Easing)
	if err != nil {
		return engine.Options{}, err
	}

	return engine.Options{
		Transition: motion.Transition{Duration: duration, Easing: easing},
		Threshold:  c.Threshold,
	}, nil
}

// DefaultPath returns the conventional config location under the user's
// config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "dragsort", "config.toml"), nil
}
