package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/nosql-mis/internal/api/http"
	"github.com/spec-kit/nosql-mis/internal/api/http/handlers"
	"github.com/spec-kit/nosql-mis/internal/auth"
	"github.com/spec-kit/nosql-mis/internal/config"
	"github.com/spec-kit/nosql-mis/internal/domain"
	"github.com/spec-kit/nosql-mis/internal/events"
	"github.com/spec-kit/nosql-mis/internal/observability"
	"github.com/spec-kit/nosql-mis/internal/persistence"
	"github.com/spec-kit/nosql-mis/internal/repository"
	"github.com/spec-kit/nosql-mis/internal/service"
	"github.com/spec-kit/nosql-mis/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, "api")
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mongo, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("failed to connect mongodb", zap.Error(err))
	}
	defer mongo.Close(context.Background())

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	db := mongo.Database()
	cache := persistence.NewListCache(redis, cfg.Cache.TTL())
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartCacheInvalidator(dispatcher, cache, logger)

	sessions := auth.NewRedisSessionStore(redis, cfg.Auth.SessionTTL())
	authService := service.NewAuthService(repository.NewUserRepository(db), sessions)

	recordDeps := service.RecordDependencies{Cache: cache, Dispatcher: dispatcher, Logger: logger}
	employees := service.NewEmployeeService(repository.NewEmployeeRepository(db), recordDeps)
	projects := service.NewProjectService(repository.NewProjectRepository(db), recordDeps)
	tasks := service.NewTaskService(repository.NewTaskRepository(db), recordDeps)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:            handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, mongo, redis),
		Auth:              handlers.NewAuthHandler(authService),
		Employees:         handlers.NewRecordsHandler[domain.Employee](employees),
		Projects:          handlers.NewRecordsHandler[domain.Project](projects),
		Tasks:             handlers.NewRecordsHandler[domain.Task](tasks),
		SessionMiddleware: auth.NewSessionMiddleware(sessions),
		StaticDir:         cfg.App.StaticDir,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.ShutdownWithTimeout(5 * time.Second)
	logger.Info("request totals", zap.Any("metrics", metrics.Snapshot()))
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
