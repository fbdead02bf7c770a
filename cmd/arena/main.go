package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/legendarena/internal/config"
	"github.com/udisondev/legendarena/internal/data"
	"github.com/udisondev/legendarena/internal/db"
)

const ArenaConfigPath = "config/arena.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ArenaConfigPath
	if p := os.Getenv("LEGENDARENA_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadArena(cfgPath)
	if err != nil {
		return fmt.Errorf("loading arena config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("legendarena starting", "log_level", cfg.LogLevel, "config", cfgPath)

	catalog, err := data.LoadCatalog(cfg.Simulation.Catalog)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	registry, err := data.NewRegistry(catalog, data.WithSkillGrowth(cfg.Battle.SkillGrowthFactor))
	if err != nil {
		return fmt.Errorf("building registry: %w", err)
	}
	slog.Info("catalog loaded",
		"creatures", len(catalog.Creatures),
		"skills", len(catalog.Skills),
		"levels", len(registry.Levels()))
	slog.Debug("catalog creatures", "names", registry.CreatureNames())

	var recorder Recorder
	if cfg.Database.Enabled {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")
		recorder = database.Battles()
	}

	sim := &Simulator{
		Registry: registry,
		Rules:    cfg.Battle,
		Plan:     cfg.Simulation,
		Recorder: recorder,
	}
	summary, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("running simulation: %w", err)
	}

	slog.Info("simulation finished",
		"battles", summary.Battles,
		"team1_won", summary.Outcomes["team1_won"],
		"team2_won", summary.Outcomes["team2_won"],
		"draw", summary.Outcomes["draw"],
		"avg_turns", summary.AverageTurns(),
		"experience", summary.Reward.Experience,
		"gold", summary.Reward.Gold)
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
