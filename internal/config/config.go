// Package config loads and stores the bigcal YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"bigcal/internal/layout"
)

const (
	defaultTimezone = "local"
	defaultCacheTTL = 15 * time.Minute
)

type Config struct {
	// Calendars lists the calendar ids to show; empty means every calendar
	// selected in the Google calendar list.
	Calendars     []string `yaml:"calendars"`
	Timezone      string   `yaml:"timezone"`
	FallbackColor string   `yaml:"fallback_color"`
	VisibleEvents int      `yaml:"visible_events"`
	CacheTTL      string   `yaml:"cache_ttl"`
	Demo          bool     `yaml:"demo"`
}

func Default() *Config {
	return &Config{
		Timezone:      defaultTimezone,
		FallbackColor: layout.DefaultColor,
		VisibleEvents: layout.DefaultVisibleEvents,
		CacheTTL:      defaultCacheTTL.String(),
	}
}

func Load(path string) (*Config, error) {
	// #nosec G304 -- path is controlled by the app config location
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	normalize(&cfg)
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// LoadOrCreate reads path, writing the defaults first when it does not
// exist. The normalized config is written back.
func LoadOrCreate(path string) (*Config, error) {
	// #nosec G304 -- path is controlled by the app config location
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if err := Save(path, cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := parse(data)
	if err != nil {
		return nil, err
	}
	if err := Save(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// TTL is how long a cached year stays fresh. Invalid values fall back to
// the default.
func (c *Config) TTL() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(c.CacheTTL))
	if err != nil || d < 0 {
		return defaultCacheTTL
	}
	return d
}

// Wants reports whether calendarID should be shown. selected is the
// calendar list's own flag, used when no calendars are configured.
func (c *Config) Wants(calendarID string, selected bool) bool {
	if len(c.Calendars) == 0 {
		return selected
	}
	for _, id := range c.Calendars {
		if id == calendarID {
			return true
		}
	}
	return false
}

func normalize(cfg *Config) {
	if strings.TrimSpace(cfg.Timezone) == "" {
		cfg.Timezone = defaultTimezone
	}
	if strings.TrimSpace(cfg.FallbackColor) == "" {
		cfg.FallbackColor = layout.DefaultColor
	}
	if cfg.VisibleEvents <= 0 {
		cfg.VisibleEvents = layout.DefaultVisibleEvents
	}
	if _, err := time.ParseDuration(strings.TrimSpace(cfg.CacheTTL)); err != nil {
		cfg.CacheTTL = defaultCacheTTL.String()
	}
	seen := make(map[string]bool, len(cfg.Calendars))
	filtered := make([]string, 0, len(cfg.Calendars))
	for _, id := range cfg.Calendars {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		filtered = append(filtered, id)
	}
	if len(filtered) == 0 {
		filtered = nil
	}
	cfg.Calendars = filtered
}
