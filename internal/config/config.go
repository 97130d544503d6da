// Package config reads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	EnvListenAddr   = "CHESS_LISTEN_ADDR"
	EnvAllowOrigins = "CHESS_ALLOW_ORIGINS"
	EnvBotSeed      = "CHESS_BOT_SEED"

	DefaultListenAddr   = ":3000"
	DefaultAllowOrigins = "http://localhost:5173"
)

type Config struct {
	ListenAddr   string
	AllowOrigins []string
	BotSeed      int64
}

// Load builds a Config from the environment. Unset variables take their
// defaults; an unset bot seed is derived from the clock.
func Load() (Config, error) {
	return load(os.Getenv, time.Now)
}

func load(getenv func(string) string, now func() time.Time) (Config, error) {
	cfg := Config{
		ListenAddr:   DefaultListenAddr,
		AllowOrigins: []string{DefaultAllowOrigins},
		BotSeed:      now().UnixNano(),
	}

	if v := getenv(EnvListenAddr); v != "" {
		cfg.ListenAddr = v
	}
	if v := getenv(EnvAllowOrigins); v != "" {
		cfg.AllowOrigins = cfg.AllowOrigins[:0]
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
			}
		}
	}
	if v := getenv(EnvBotSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvBotSeed, err)
		}
		cfg.BotSeed = seed
	}
	return cfg, nil
}

func (c Config) AllowOriginsHeader() string {
	return strings.Join(c.AllowOrigins, ", ")
}
