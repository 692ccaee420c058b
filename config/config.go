// Package config reads the settings of the replay server and CLI from the
// environment, after loading an optional .env file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvAddr          = "HANDREPLAY_ADDR"
	EnvLogLevel      = "HANDREPLAY_LOG_LEVEL"
	EnvICMPrecision  = "HANDREPLAY_ICM_PRECISION"
	EnvAllowedOrigin = "HANDREPLAY_ALLOWED_ORIGIN"
)

// Config holds the settings of the outer surfaces.
type Config struct {
	Addr          string
	LogLevel      slog.Level
	ICMPrecision  int32
	AllowedOrigin string
}

// Default is the configuration used when nothing is set.
func Default() Config {
	return Config{
		Addr:          ":7777",
		LogLevel:      slog.LevelInfo,
		ICMPrecision:  4,
		AllowedOrigin: "*",
	}
}

// Load reads .env files (a missing file is fine) and then the environment.
func Load(files ...string) (Config, error) {
	_ = godotenv.Load(files...)
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, falling back to Default for unset keys.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()

	if addr := strings.TrimSpace(getenv(EnvAddr)); addr != "" {
		if !strings.Contains(addr, ":") {
			addr = ":" + addr
		}
		cfg.Addr = addr
	}

	if level := strings.TrimSpace(getenv(EnvLogLevel)); level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", EnvLogLevel, level, err)
		}
	}

	if precision := strings.TrimSpace(getenv(EnvICMPrecision)); precision != "" {
		p, err := strconv.ParseInt(precision, 10, 32)
		if err != nil || p < 0 || p > 28 {
			return cfg, fmt.Errorf("invalid %s %q: want 0..28", EnvICMPrecision, precision)
		}
		cfg.ICMPrecision = int32(p)
	}

	if origin := strings.TrimSpace(getenv(EnvAllowedOrigin)); origin != "" {
		cfg.AllowedOrigin = origin
	}

	return cfg, nil
}
