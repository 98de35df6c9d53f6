package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/mitchelldurbincs/bao/internal/config"
	"github.com/mitchelldurbincs/bao/internal/game"
	"github.com/mitchelldurbincs/bao/internal/game/core"
	"github.com/mitchelldurbincs/bao/internal/game/events"
	"github.com/mitchelldurbincs/bao/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/bao/internal/match"
	"github.com/mitchelldurbincs/bao/internal/player"
)

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"direction":     "game.direction",
	"mode":          "game.mode",
	"max-sow-steps": "game.max_sow_steps",
	"p1-name":       "players.one.name",
	"p1-agent":      "players.one.agent",
	"p2-name":       "players.two.name",
	"p2-agent":      "players.two.agent",
	"strategy":      "players.random.strategy",
	"seed":          "players.random.seed",
	"max-attempts":  "match.max_attempts",
	"games":         "match.games",
	"render":        "render.mode",
	"color":         "render.color",
	"log-level":     "logging.level",
	"log-format":    "logging.format",
	"log-events":    "events.log_events",
}

func main() {
	fs := pflag.NewFlagSet("bao", pflag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	env := fs.String("env", "", "Environment overlay to merge (loads config.<env>.yaml)")
	fs.String("direction", "ccw", "Sowing direction (cw, ccw)")
	fs.String("mode", "normal", "Rule mode (normal, easy)")
	fs.Int("max-sow-steps", game.DefaultMaxSowSteps, "Stone drops allowed in one move (negative for unlimited)")
	fs.String("p1-name", "Player 1", "Name of the first seat")
	fs.String("p1-agent", "human", "Agent in the first seat (human, random)")
	fs.String("p2-name", "Player 2", "Name of the second seat")
	fs.String("p2-agent", "random", "Agent in the second seat (human, random)")
	fs.String("strategy", "legal", "Random agent strategy (legal, uniform)")
	fs.Uint64("seed", 0, "Random agent seed (0 for time based)")
	fs.Int("max-attempts", 0, "Rejected picks allowed per turn (0 for unlimited)")
	fs.Int("games", 1, "Number of games to play")
	fs.String("render", "human", "When to print the board (human, always, never)")
	fs.Bool("color", false, "Colour the board with ANSI escapes")
	fs.String("log-level", "info", "Log level (debug, info, warn, error)")
	fs.String("log-format", "console", "Log format (console, json)")
	fs.Bool("log-events", false, "Log every game event")
	_ = fs.Parse(os.Args[1:])

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Str("env", *env).Msg("Failed to load environment config")
	}
	if err := config.BindFlags(fs, flagKeys); err != nil {
		log.Fatal().Err(err).Msg("Invalid command line")
	}

	cfg := config.Get()
	setupLogging(cfg.Logging.Level, cfg.Logging.Format)

	if path := config.ConfigFilePath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			config.WatchConfig(func(c *config.Config, err error) {
				if err != nil {
					log.Warn().Err(err).Msg("Ignoring config change")
					return
				}
				zerolog.SetGlobalLevel(parseLevel(c.Logging.Level))
				log.Info().Str("level", c.Logging.Level).Msg("Config reloaded")
			})
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdin, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("Game aborted")
	}
}

// run builds the engine and selectors from cfg and plays the configured games.
func run(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	dir, err := core.ParseDirection(cfg.Game.Direction)
	if err != nil {
		return err
	}
	mode, err := core.ParseMode(cfg.Game.Mode)
	if err != nil {
		return err
	}
	strategy, err := player.ParseStrategy(cfg.Players.Random.Strategy)
	if err != nil {
		return err
	}
	renderMode, err := match.ParseRenderMode(cfg.Render.Mode)
	if err != nil {
		return err
	}

	bus := events.NewEventBusWithLogger(log.Logger)
	if cfg.Events.LogEvents {
		sub := subscribers.NewLoggerSubscriber("cli-event-log", log.Logger, zerolog.InfoLevel)
		sub.SetDevMode(cfg.Events.DevMode)
		bus.Subscribe(sub)
	}

	seed := cfg.Players.Random.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Debug().Uint64("seed", seed).Msg("Random agents seeded")

	// Every human seat reads from the same buffer.
	input := bufio.NewReader(in)

	var players [2]game.PlayerConfig
	var selectors [2]player.MoveSelector
	for i, seat := range cfg.Players.Seats() {
		kind, err := game.ParseAgentKind(seat.Agent)
		if err != nil {
			return err
		}
		players[i] = game.PlayerConfig{Name: seat.Name, Agent: kind}

		selectors[i], err = player.NewSelector(kind, player.Options{
			Input:    input,
			Output:   out,
			Seed:     seed + uint64(i),
			Strategy: strategy,
			Logger:   log.Logger,
		})
		if err != nil {
			return err
		}
	}

	engine, err := game.NewEngine(ctx, game.GameConfig{
		Direction:   dir,
		Mode:        mode,
		Players:     players,
		MaxSowSteps: cfg.Game.MaxSowSteps,
		Logger:      log.Logger,
		EventBus:    bus,
	})
	if err != nil {
		return err
	}

	matchCfg := match.Config{
		MaxAttempts: cfg.Match.MaxAttempts,
		Render:      renderMode,
		Color:       cfg.Render.Color,
	}

	if cfg.Match.Games == 1 {
		res, err := match.New(engine, selectors, out, matchCfg, log.Logger).Run(ctx)
		if err != nil {
			return err
		}
		printResult(out, res)
		return nil
	}

	series, err := match.NewSeries(engine, selectors, cfg.Match.Games, out, matchCfg, log.Logger)
	if err != nil {
		return err
	}
	sr, err := series.Run(ctx, func(n int, res match.Result) {
		log.Debug().Int("game", n).Str("winner", res.Winner.Name).Int("turns", res.Turns).Msg("Game finished")
	})
	if err != nil {
		return err
	}
	printSeries(out, players, sr)
	return nil
}

func printResult(out io.Writer, res match.Result) {
	fmt.Fprintf(out, "%s wins after %d turns (%s).\n", res.Winner.Name, res.Turns, res.Reason)
	for _, p := range []game.Player{res.Winner, res.Loser} {
		s := res.Stats[p.ID-1]
		fmt.Fprintf(out, "  %s: %d stones, %d moves, %d relays, %d captures (%d stones)\n",
			p.Name, p.StoneCount(), s.Moves, s.Relays, s.Captures, s.StonesCaptured)
	}
}

func printSeries(out io.Writer, players [2]game.PlayerConfig, sr match.SeriesResult) {
	fmt.Fprintf(out, "%d games in %s, %.1f turns on average (longest %d).\n",
		sr.Games, sr.Duration.Round(time.Millisecond), sr.AverageTurns(), sr.Longest)
	for i, p := range players {
		fmt.Fprintf(out, "  %s: %d wins\n", p.Name, sr.Wins[i])
	}
	for reason, n := range sr.Reasons {
		fmt.Fprintf(out, "  %s: %d\n", reason, n)
	}
}

// parseLevel accepts every level zerolog knows. Unset or unknown levels,
// which config validation already rejects, fall back to info.
func parseLevel(level string) zerolog.Level {
	l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}

func setupLogging(level, format string) {
	zerolog.SetGlobalLevel(parseLevel(level))

	// Logs go to stderr so they never interleave with the board on stdout.
	if format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
