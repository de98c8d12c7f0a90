package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kilgorjn/patient-scheduling/adapter/cli"
	"github.com/kilgorjn/patient-scheduling/adapter/cli/solve"
	"github.com/kilgorjn/patient-scheduling/internal/scheduling/application"
	"github.com/kilgorjn/patient-scheduling/internal/scheduling/application/commands"
	"github.com/kilgorjn/patient-scheduling/internal/scheduling/domain"
	"github.com/kilgorjn/patient-scheduling/internal/scheduling/infrastructure/breaker"
	"github.com/kilgorjn/patient-scheduling/internal/scheduling/infrastructure/cache"
	"github.com/kilgorjn/patient-scheduling/internal/scheduling/infrastructure/constraintsolver"
	"github.com/kilgorjn/patient-scheduling/internal/scheduling/infrastructure/fallback"
	"github.com/kilgorjn/patient-scheduling/pkg/config"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.IsDevelopment() {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	cli.SetLogger(logger)

	var resultCache commands.ResultCache = cache.NoopCache{}
	if cfg.CacheEnabled {
		redisCache, err := cache.NewRedisCache(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			logger.Warn("failed to initialize redis cache, falling back to no-op cache", "error", err)
		} else {
			resultCache = redisCache
		}
	}

	optimizerBreaker := breaker.New(cfg.BreakerConsecutiveFailures, cfg.BreakerOpenDuration)
	solveFn := fallback.WithGreedyFallback(constraintsolver.Solve)
	defaults := application.Defaults{
		Weights: domain.Weights{
			Idle:            cfg.WeightIdle,
			Makespan:        cfg.WeightMakespan,
			Priority:        cfg.WeightPriority,
			ArrivalPriority: cfg.WeightArrival,
		},
		Seed:        cfg.DefaultSeed,
		TimeLimitMs: cfg.DefaultTimeLimitMs,
	}
	handler := commands.NewSolveScheduleHandler(solveFn, optimizerBreaker, resultCache, logger, defaults)

	cli.SetHandler(handler)
	cli.AddCommand(solve.Cmd)

	cli.Execute(ctx)
}
