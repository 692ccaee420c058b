package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":7777", cfg.Addr)
}

func TestFromEnv(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		EnvAddr:          "8080",
		EnvLogLevel:      "debug",
		EnvICMPrecision:  "6",
		EnvAllowedOrigin: "https://replay.example",
	}))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, int32(6), cfg.ICMPrecision)
	assert.Equal(t, "https://replay.example", cfg.AllowedOrigin)
}

func TestFromEnvErrors(t *testing.T) {
	tests := map[string]map[string]string{
		"bad level":          {EnvLogLevel: "loud"},
		"bad precision":      {EnvICMPrecision: "four"},
		"negative precision": {EnvICMPrecision: "-1"},
		"precision too high": {EnvICMPrecision: "40"},
	}
	for name, values := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(env(values))
			assert.Error(t, err)
		})
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("HANDREPLAY_ADDR=127.0.0.1:9999\n"), 0o600))
	t.Setenv(EnvAddr, "")
	require.NoError(t, os.Unsetenv(EnvAddr))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", cfg.Addr)

	cfg, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", cfg.Addr, "the variable loaded above is still set")
}
