package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/spec-kit/nosql-mis/internal/config"
	"github.com/spec-kit/nosql-mis/internal/events"
	"github.com/spec-kit/nosql-mis/internal/observability"
	"github.com/spec-kit/nosql-mis/internal/persistence"
	"github.com/spec-kit/nosql-mis/internal/seed"
	"github.com/spec-kit/nosql-mis/internal/worker"
	"github.com/spec-kit/nosql-mis/pkg/util/errorutil"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, "setup")
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if timeout := cfg.Seed.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := run(ctx, cfg, logger); err != nil {
		step, _ := errorutil.FailedStep(err)
		logger.Error("database setup failed", zap.String("step", step), zap.Error(err))
		logger.Sync() //nolint:errcheck
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	mongo, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		return errorutil.WrapStep("connect", err)
	}
	defer mongo.Close(context.Background())

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartCacheInvalidator(dispatcher, persistence.NewListCache(redis, cfg.Cache.TTL()), logger)

	runner := seed.NewRunner(mongo.Database(), seed.Dependencies{
		Dispatcher: dispatcher,
		Logger:     logger,
		Out:        os.Stdout,
	}, seed.Options{
		PasswordScheme: cfg.Seed.PasswordScheme,
		BcryptCost:     cfg.Auth.BcryptCost,
	})

	report, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	report.Print(os.Stdout)
	return nil
}
