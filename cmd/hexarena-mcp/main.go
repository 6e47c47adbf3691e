package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/peterkuimelis/hexarena/internal/ai"
	"github.com/peterkuimelis/hexarena/internal/config"
	"github.com/peterkuimelis/hexarena/internal/game"
	hexmcp "github.com/peterkuimelis/hexarena/internal/mcp"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var env config.ServerEnv
	if err := config.ParseEnv(&env); err != nil {
		return err
	}
	cfg, err := config.Load(env.ConfigPath)
	if err != nil {
		return err
	}
	env.Apply(cfg)

	// stdout carries the MCP protocol; the logger writes to stderr.
	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	rf, err := game.ParseRosterFile(cfg.Game.Roster)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}
	d, err := ai.ParseDifficulty(cfg.Game.Difficulty)
	if err != nil {
		return err
	}

	manager := hexmcp.NewManager(hexmcp.Options{
		Roster:      rf,
		Difficulty:  d,
		MaxSessions: cfg.MCP.MaxSessions,
		MaxRounds:   cfg.Game.MaxRounds,
		Log:         logger,
	})
	defer manager.Close()

	s := server.NewMCPServer(cfg.MCP.Name, version, server.WithToolCapabilities(false))
	manager.RegisterTools(s)

	logger.Info("serving MCP on stdio",
		zap.String("roster", cfg.Game.Roster),
		zap.Int("factions", len(rf.Factions)),
		zap.Stringer("difficulty", d),
	)
	if err := server.ServeStdio(s); err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
