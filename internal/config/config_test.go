package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bigcal", "config.yaml")

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "timezone: local")
	assert.Contains(t, string(data), "cache_ttl: 15m0s")
}

func TestLoadNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "calendars:\n  - primary\n  - ' work@example.com '\n  - primary\n  - ''\ncache_ttl: soon\nvisible_events: -1\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"primary", "work@example.com"}, cfg.Calendars)
	assert.Equal(t, "local", cfg.Timezone)
	assert.Equal(t, "#3788d8", cfg.FallbackColor)
	assert.Equal(t, 2, cfg.VisibleEvents)
	assert.Equal(t, 15*time.Minute, cfg.TTL())
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("calendars: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Default()
	cfg.Calendars = []string{"a", "b"}
	cfg.Timezone = "Europe/Madrid"
	cfg.CacheTTL = "1h"
	cfg.Demo = true
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
	assert.Equal(t, time.Hour, got.TTL())
}

func TestWants(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.Wants("x", true))
	assert.False(t, cfg.Wants("x", false))

	cfg.Calendars = []string{"x"}
	assert.True(t, cfg.Wants("x", false))
	assert.False(t, cfg.Wants("y", true))
}

func TestLoadOrCreateKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timezone: UTC\n"), 0o600))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Nil(t, cfg.Calendars)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "visible_events: 2")
}
