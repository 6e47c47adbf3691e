package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/peterkuimelis/hexarena/internal/ai"
	"github.com/peterkuimelis/hexarena/internal/config"
	"github.com/peterkuimelis/hexarena/internal/game"
	"github.com/peterkuimelis/hexarena/internal/log"
	"github.com/peterkuimelis/hexarena/internal/match"
	hexnet "github.com/peterkuimelis/hexarena/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	cmd := os.Args[1]
	switch cmd {
	case "sim":
		err = runSim(ctx, os.Args[2:])
	case "play":
		err = runPlay(ctx, os.Args[2:])
	case "decks":
		err = runDecks(os.Args[2:])
	case "host":
		err = runHost(ctx, os.Args[2:])
	case "join":
		err = runJoin(ctx, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  hexarena sim   [--config FILE] [--roster FILE] [--players N] [--seed S] [--difficulty D]")
	fmt.Println("  hexarena play  [--config FILE] [--roster FILE] [--players N] [--seed S] [--difficulty D]")
	fmt.Println("  hexarena decks [--config FILE] [--roster FILE]")
	fmt.Println("  hexarena host  [--addr ADDR] [--faction ID] [--ai N] [--config FILE] [--roster FILE] [--seed S]")
	fmt.Println("  hexarena join  [--addr ADDR] [--faction ID]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  sim     Play AI against AI and print the event log")
	fmt.Println("  play    Play seat 1 in the terminal against AI seats")
	fmt.Println("  decks   Print the derived stats and classes for a roster")
	fmt.Println("  host    Start a game server and play as Player 1")
	fmt.Println("  join    Connect to a game server and play as Player 2")
}

// commonFlags are shared by every command that builds a game.
type commonFlags struct {
	config     *string
	roster     *string
	players    *int
	seed       *uint64
	difficulty *string
}

func addCommonFlags(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		config:     fs.String("config", "", "path to config YAML file"),
		roster:     fs.String("roster", "", "path to roster YAML file (overrides config)"),
		players:    fs.Int("players", 0, "number of players, 2 or 3 (overrides config)"),
		seed:       fs.Uint64("seed", 0, "RNG seed (overrides config; 0 = from the clock)"),
		difficulty: fs.String("difficulty", "", "AI difficulty: easy, medium or hard (overrides config)"),
	}
}

// load reads the config file and applies any flags that were set.
func (f commonFlags) load(fs *flag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(*f.config)
	if err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "roster":
			cfg.Game.Roster = *f.roster
		case "players":
			cfg.Game.Players = *f.players
		case "seed":
			cfg.Game.Seed = *f.seed
		case "difficulty":
			cfg.Game.Difficulty = *f.difficulty
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Game.Seed == 0 {
		cfg.Game.Seed = uint64(time.Now().UnixNano())
	}
	return cfg, nil
}

// setup loads config, logger and roster for a game command.
func setup(fs *flag.FlagSet, f commonFlags) (*config.Config, *zap.Logger, *game.RosterFile, error) {
	cfg, err := f.load(fs)
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create logger: %w", err)
	}
	rf, err := game.ParseRosterFile(cfg.Game.Roster)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load roster: %w", err)
	}
	return cfg, logger, rf, nil
}

// seatConfigs assigns a faction deck to every seat: the configured
// factions, or the roster's factions in file order.
func seatConfigs(cfg *config.Config, rf *game.RosterFile) ([]game.PlayerConfig, error) {
	factions := cfg.Game.Factions
	if len(factions) == 0 {
		ids := rf.FactionIDs()
		if len(ids) == 0 {
			return nil, fmt.Errorf("roster %s has no factions", cfg.Game.Roster)
		}
		for i := 0; i < cfg.Game.Players; i++ {
			factions = append(factions, ids[i%len(ids)])
		}
	}
	seats := make([]game.PlayerConfig, len(factions))
	for i, f := range factions {
		deck, err := rf.DeckFor(f)
		if err != nil {
			return nil, err
		}
		seats[i] = game.PlayerConfig{FactionID: f, Deck: deck}
	}
	return seats, nil
}

func runSim(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sim", flag.ExitOnError)
	common := addCommonFlags(fs)
	fs.Parse(args)

	cfg, logger, rf, err := setup(fs, common)
	if err != nil {
		return err
	}
	defer logger.Sync()

	d, err := ai.ParseDifficulty(cfg.Game.Difficulty)
	if err != nil {
		return err
	}
	seats, err := seatConfigs(cfg, rf)
	if err != nil {
		return err
	}

	controllers := make([]match.Controller, len(seats))
	for i := range controllers {
		controllers[i] = ai.NewController(i, d, cfg.Game.Seed)
	}
	m, err := match.New(match.Config{
		Game:      game.GameConfig{Players: seats, Seed: cfg.Game.Seed},
		Logger:    log.NewTextLogger(os.Stdout),
		Log:       logger,
		MaxRounds: cfg.Game.MaxRounds,
	}, controllers...)
	if err != nil {
		return err
	}

	out, err := m.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(hexnet.Result(out))
	fmt.Printf("Final scores: %v (seed %d)\n", match.Scores(m.State), cfg.Game.Seed)
	return nil
}

func runPlay(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	common := addCommonFlags(fs)
	fs.Parse(args)

	cfg, logger, rf, err := setup(fs, common)
	if err != nil {
		return err
	}
	defer logger.Sync()

	d, err := ai.ParseDifficulty(cfg.Game.Difficulty)
	if err != nil {
		return err
	}
	seats, err := seatConfigs(cfg, rf)
	if err != nil {
		return err
	}

	human, replDone := hexnet.LocalSeat(ctx, 0, os.Stdin, os.Stdout)
	defer human.Close()
	controllers := []match.Controller{human}
	for i := 1; i < len(seats); i++ {
		controllers = append(controllers, ai.NewController(i, d, cfg.Game.Seed))
	}

	m, err := match.New(match.Config{
		Game:      game.GameConfig{Players: seats, Seed: cfg.Game.Seed},
		Log:       logger,
		MaxRounds: cfg.Game.MaxRounds,
	}, controllers...)
	if err != nil {
		return err
	}

	out, err := m.Run(ctx)
	if err != nil {
		return err
	}
	if err := human.SendGameOver(out.Winner, hexnet.Result(out)); err != nil {
		return err
	}
	return <-replDone
}

func runDecks(args []string) error {
	fs := flag.NewFlagSet("decks", flag.ExitOnError)
	common := addCommonFlags(fs)
	fs.Parse(args)

	cfg, err := common.load(fs)
	if err != nil {
		return err
	}
	rf, err := game.ParseRosterFile(cfg.Game.Roster)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}

	decks := rf.Decks()
	for _, f := range rf.Factions {
		deck := decks[f.ID]
		fmt.Printf("%s (%s): %d champions\n", f.Name, f.ID, len(deck))
		sort.SliceStable(deck, func(i, j int) bool {
			return deck[i].Attack+deck[i].Defense > deck[j].Attack+deck[j].Defense
		})
		for _, c := range deck {
			fmt.Printf("  %-24s ATK %2d  DEF %2d  %-8s  %s\n",
				c.Name, c.Attack, c.Defense, c.Class, game.AbilityName(c.Class))
		}
		fmt.Println()
	}
	return nil
}

func runHost(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	common := addCommonFlags(fs)
	addr := fs.String("addr", ":9000", "TCP address to listen on")
	faction := fs.String("faction", "", "faction to play (default: first in roster)")
	aiSeats := fs.Int("ai", 0, "number of extra AI seats (0 or 1)")
	fs.Parse(args)

	cfg, logger, rf, err := setup(fs, common)
	if err != nil {
		return err
	}
	defer logger.Sync()

	d, err := ai.ParseDifficulty(cfg.Game.Difficulty)
	if err != nil {
		return err
	}

	h := &hexnet.Host{
		Roster:     rf,
		Addr:       *addr,
		Faction:    *faction,
		Seed:       cfg.Game.Seed,
		AISeats:    *aiSeats,
		Difficulty: d,
		MaxRounds:  cfg.Game.MaxRounds,
		Log:        logger,
		In:         os.Stdin,
		Out:        os.Stdout,
	}
	_, err = h.Run(ctx)
	return err
}

func runJoin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	addr := fs.String("addr", "localhost:9000", "server address to connect to")
	faction := fs.String("faction", "", "faction to play (default: host picks)")
	fs.Parse(args)

	return hexnet.Connect(ctx, *addr, *faction, os.Stdin, os.Stdout)
}
