// Package config loads hexarena settings from a YAML file, HEXARENA_*
// environment variables and built-in defaults, in that order of precedence
// (environment wins).
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full configuration tree.
type Config struct {
	Game    GameConfig    `mapstructure:"game"`
	Logging LoggingConfig `mapstructure:"logging"`
	MCP     MCPConfig     `mapstructure:"mcp"`
}

// GameConfig selects the roster, seats and AI strength for a match.
type GameConfig struct {
	Roster     string   `mapstructure:"roster"`
	Players    int      `mapstructure:"players"`
	Factions   []string `mapstructure:"factions"` // one per seat; empty = roster order
	Seed       uint64   `mapstructure:"seed"`     // 0 = derive from the clock
	Difficulty string   `mapstructure:"difficulty"`
	MaxRounds  int      `mapstructure:"max_rounds"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
}

// MCPConfig configures the MCP tool server.
type MCPConfig struct {
	Name        string `mapstructure:"name"`
	MaxSessions int    `mapstructure:"max_sessions"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.roster", "roster.yaml")
	v.SetDefault("game.players", 2)
	v.SetDefault("game.factions", []string{})
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.difficulty", "medium")
	v.SetDefault("game.max_rounds", 200)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("mcp.name", "hexarena")
	v.SetDefault("mcp.max_sessions", 16)
}

// Load reads the configuration. An empty path uses defaults and the
// environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("HEXARENA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.Game.Players < 2 || c.Game.Players > 3 {
		errs = append(errs, fmt.Errorf("game.players must be 2 or 3, got %d", c.Game.Players))
	}
	if n := len(c.Game.Factions); n > 0 && n != c.Game.Players {
		errs = append(errs, fmt.Errorf("game.factions lists %d factions for %d players", n, c.Game.Players))
	}
	if c.Game.MaxRounds < 1 {
		errs = append(errs, fmt.Errorf("game.max_rounds must be positive, got %d", c.Game.MaxRounds))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format))
	}
	if c.MCP.MaxSessions < 1 {
		errs = append(errs, fmt.Errorf("mcp.max_sessions must be positive, got %d", c.MCP.MaxSessions))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
