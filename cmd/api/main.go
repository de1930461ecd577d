package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/tasky-suite/workspace-service/internal/api/http"
	"github.com/tasky-suite/workspace-service/internal/api/http/handlers"
	"github.com/tasky-suite/workspace-service/internal/auth"
	"github.com/tasky-suite/workspace-service/internal/config"
	"github.com/tasky-suite/workspace-service/internal/events"
	"github.com/tasky-suite/workspace-service/internal/observability"
	"github.com/tasky-suite/workspace-service/internal/persistence"
	"github.com/tasky-suite/workspace-service/internal/projects"
	"github.com/tasky-suite/workspace-service/internal/repository"
	"github.com/tasky-suite/workspace-service/internal/service"
	"github.com/tasky-suite/workspace-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher()

	snapshot := persistence.NewRedisSnapshot(redis, cfg.Workspace.SnapshotKey)
	store := projects.NewStore(ctx, snapshot, logger)

	userRepo := repository.NewUserRepository(pg.PoolHandle())
	authService := service.NewAuthService(cfg.Auth, userRepo, dispatcher)
	projectService := service.NewProjectService(store, dispatcher)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	if pg.PoolHandle() != nil {
		if err := authService.EnsureAdmin(ctx, cfg.Auth, logger); err != nil {
			logger.Fatal("failed to seed admin", zap.Error(err))
		}
	}

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	session := auth.NewSessionMiddleware(authService.TokenManager(), cfg.Auth.CookieName)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:     handlers.NewAuthHandler(authService, cfg.Auth.CookieName),
		Projects: handlers.NewProjectsHandler(projectService),
		Session:  session,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
