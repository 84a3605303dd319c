package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-drift/kit/pkg/wheel"
	"gopkg.in/yaml.v3"
)

// Names of the configuration files looked up by LoadOptional, in order.
const (
	YAMLFile = "wheel.yaml"
	TOMLFile = "wheel.toml"
)

// DefaultRestoreFile is the state file used when restore_path is unset.
const DefaultRestoreFile = ".wheeldemo-state.yaml"

// Config represents the optional wheel.yaml or wheel.toml configuration.
type Config struct {
	ItemExtent        float64 `yaml:"item_extent,omitempty" toml:"item_extent"`
	VisibleItems      int     `yaml:"visible_items,omitempty" toml:"visible_items"`
	WheelDebounce     string  `yaml:"wheel_debounce,omitempty" toml:"wheel_debounce"`
	AnimationDuration string  `yaml:"animation_duration,omitempty" toml:"animation_duration"`
	Infinite          *bool   `yaml:"infinite,omitempty" toml:"infinite"`
	RestorePath       string  `yaml:"restore_path,omitempty" toml:"restore_path"`

	// Source is the file the configuration was read from, if any.
	Source string `yaml:"-" toml:"-"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root              string
	Source            string
	ItemExtent        float64
	VisibleItems      int
	WheelDebounce     time.Duration
	AnimationDuration time.Duration
	Infinite          bool
	RestorePath       string
}

// LoadOptional reads wheel.yaml, or wheel.toml if there is no YAML file.
// With neither present it returns an empty Config.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, YAMLFile)
	data, err := os.ReadFile(path)
	if err == nil {
		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", YAMLFile, err)
		}
		cfg.Source = path
		return &cfg, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", YAMLFile, err)
	}

	path = filepath.Join(dir, TOMLFile)
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to parse %s: %w", TOMLFile, err)
	}
	cfg.Source = path
	return &cfg, nil
}

// Resolve loads the configuration in dir (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	return cfg.Resolve(dir)
}

// Resolve applies defaults relative to dir and validates the result.
func (c *Config) Resolve(dir string) (*Resolved, error) {
	res := &Resolved{
		Root:              dir,
		Source:            c.Source,
		ItemExtent:        c.ItemExtent,
		VisibleItems:      c.VisibleItems,
		WheelDebounce:     wheel.DefaultWheelDebounce,
		AnimationDuration: wheel.DefaultAnimationDuration,
		Infinite:          true,
	}
	if res.ItemExtent == 0 {
		res.ItemExtent = wheel.DefaultItemExtent
	}
	if res.VisibleItems == 0 {
		res.VisibleItems = wheel.DefaultVisibleItems
	}
	if c.Infinite != nil {
		res.Infinite = *c.Infinite
	}

	var err error
	if res.WheelDebounce, err = parseDuration("wheel_debounce", c.WheelDebounce, res.WheelDebounce); err != nil {
		return nil, err
	}
	if res.AnimationDuration, err = parseDuration("animation_duration", c.AnimationDuration, res.AnimationDuration); err != nil {
		return nil, err
	}

	restore := strings.TrimSpace(c.RestorePath)
	if restore == "" {
		restore = DefaultRestoreFile
	}
	if !filepath.IsAbs(restore) {
		restore = filepath.Join(dir, restore)
	}
	res.RestorePath = restore

	if err := res.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}

// Validate checks that all values are usable.
func (r *Resolved) Validate() error {
	var errs []error
	if r.ItemExtent <= 0 {
		errs = append(errs, fmt.Errorf("item_extent must be positive, got %v", r.ItemExtent))
	}
	if r.VisibleItems <= 0 || r.VisibleItems%2 == 0 {
		errs = append(errs, fmt.Errorf("visible_items must be a positive odd number, got %d", r.VisibleItems))
	}
	if r.WheelDebounce <= 0 {
		errs = append(errs, fmt.Errorf("wheel_debounce must be positive, got %v", r.WheelDebounce))
	}
	if r.AnimationDuration <= 0 {
		errs = append(errs, fmt.Errorf("animation_duration must be positive, got %v", r.AnimationDuration))
	}
	return errors.Join(errs...)
}

// Options returns picker options for the resolved values.
func (r *Resolved) Options() wheel.Options {
	return wheel.Options{
		Infinite:          r.Infinite,
		ItemExtent:        r.ItemExtent,
		VisibleItems:      r.VisibleItems,
		AnimationDuration: r.AnimationDuration,
		WheelDebounce:     r.WheelDebounce,
	}
}

func parseDuration(field, value string, def time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return def, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return d, nil
}
