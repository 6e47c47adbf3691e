package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ServerEnv is the environment block read by the MCP server, which is
// launched by an MCP client and usually gets no flags.
type ServerEnv struct {
	ConfigPath string `env:"HEXARENA_CONFIG"`
	Roster     string `env:"HEXARENA_ROSTER"`
	Difficulty string `env:"HEXARENA_DIFFICULTY"`
	LogLevel   string `env:"HEXARENA_LOG_LEVEL" envDefault:"warn"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Apply overlays the non-empty environment values onto cfg.
func (e ServerEnv) Apply(cfg *Config) {
	if e.Roster != "" {
		cfg.Game.Roster = e.Roster
	}
	if e.Difficulty != "" {
		cfg.Game.Difficulty = e.Difficulty
	}
	if e.LogLevel != "" {
		cfg.Logging.Level = e.LogLevel
	}
}
