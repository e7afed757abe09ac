package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/pos-backoffice/internal/api/http"
	"github.com/spec-kit/pos-backoffice/internal/api/http/handlers"
	"github.com/spec-kit/pos-backoffice/internal/auth"
	"github.com/spec-kit/pos-backoffice/internal/config"
	"github.com/spec-kit/pos-backoffice/internal/events"
	"github.com/spec-kit/pos-backoffice/internal/observability"
	"github.com/spec-kit/pos-backoffice/internal/persistence"
	"github.com/spec-kit/pos-backoffice/internal/ratelimit"
	"github.com/spec-kit/pos-backoffice/internal/repository"
	"github.com/spec-kit/pos-backoffice/internal/service"
	"github.com/spec-kit/pos-backoffice/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)
	worker.StartAuditWorker(dispatcher, logger)

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	outletRepo := repository.NewOutletRepository(pool)

	verifier := auth.NewVerifier(cfg.Auth.SessionSecret)
	gate := auth.NewGate(auth.GateConfig{
		Verifier:   verifier,
		Policy:     auth.NewRoutePolicy(cfg.Routes.PublicPaths, cfg.Routes.ProtectedPrefixes),
		CookieName: cfg.Auth.SessionCookie,
		LoginPath:  cfg.Routes.LoginPath,
		Logger:     logger.Named("gate"),
		Recorder:   metrics,
	})

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:    userRepo,
		Issuer:      auth.NewIssuer(cfg.Auth.SessionSecret, cfg.Auth.SessionTTL()),
		Credentials: auth.BcryptVerifier{},
		Throttle:    ratelimit.NewLoginLimiter(redis.Client, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow(), logger),
		Dispatcher:  dispatcher,
		Recorder:    metrics,
		Logger:      logger,
	})
	outletService := service.NewOutletService(outletRepo, dispatcher, logger)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	secure := cfg.App.IsProduction()
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:      handlers.NewAuthHandler(authService, verifier, cfg.Auth, secure),
		Outlets:   handlers.NewOutletsHandler(outletService, cfg.Auth, secure),
		Pages:     handlers.NewPagesHandler(cfg.App.Name, cfg.Auth.OutletCookie),
		Gate:      gate,
		Metrics:   metrics,
		LoginPath: cfg.Routes.LoginPath,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
