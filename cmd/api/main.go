package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/staff-roster/internal/api/http"
	"github.com/spec-kit/staff-roster/internal/api/http/handlers"
	"github.com/spec-kit/staff-roster/internal/auth"
	"github.com/spec-kit/staff-roster/internal/config"
	"github.com/spec-kit/staff-roster/internal/events"
	"github.com/spec-kit/staff-roster/internal/observability"
	"github.com/spec-kit/staff-roster/internal/persistence"
	"github.com/spec-kit/staff-roster/internal/roster"
	"github.com/spec-kit/staff-roster/internal/service"
	"github.com/spec-kit/staff-roster/internal/store"
	"github.com/spec-kit/staff-roster/internal/worker"
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

	metrics := observability.NewMetrics()

	var (
		pg          *persistence.Postgres
		redis       *persistence.Redis
		rosterStore store.RosterStore
	)
	switch cfg.Store.Driver {
	case "postgres":
		pg, err = persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		rosterStore = store.NewPostgresStore(pg.PoolHandle())
	case "redis":
		redis = persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		rosterStore = store.NewRedisStore(redis.Client, cfg.Store.SnapshotKey)
	default:
		logger.Warn("using in-memory roster store; data will not survive restarts")
		rosterStore = store.NewMemoryStore()
	}

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	saves := roster.NewSaveQueue(rosterStore, logger, metrics, cfg.Store.SaveTimeout())
	defer saves.Close()

	manager := roster.NewManager(roster.Dependencies{
		Store:      rosterStore,
		Saves:      saves,
		Gate:       auth.NewAdminGate(cfg.Auth),
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	manager.Load(ctx)
	logger.Info("roster loaded", zap.Int("members", len(manager.Members())))

	authService := service.NewAuthService(cfg.Auth)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager())

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, cfg.Store.Driver, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Roster:         handlers.NewRosterHandler(manager),
		Selections:     handlers.NewSelectionHandler(roster.NewSelectionRegistry()),
		AuthMiddleware: authMiddleware,
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
