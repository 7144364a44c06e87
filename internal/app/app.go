package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/beam-xyz/beambaby/internal/config"
	domainservice "github.com/beam-xyz/beambaby/internal/domain/service"
	cronpkg "github.com/beam-xyz/beambaby/internal/infrastructure/cron"
	infradb "github.com/beam-xyz/beambaby/internal/infrastructure/db"
	"github.com/beam-xyz/beambaby/internal/infrastructure/kafka"
	"github.com/beam-xyz/beambaby/internal/infrastructure/localstore"
	"github.com/beam-xyz/beambaby/internal/infrastructure/postgres"
	redisinfra "github.com/beam-xyz/beambaby/internal/infrastructure/redis"
	"github.com/beam-xyz/beambaby/internal/logger"
	"github.com/beam-xyz/beambaby/internal/service"
	httptransport "github.com/beam-xyz/beambaby/internal/transport/http"
	pkgjwt "github.com/beam-xyz/beambaby/pkg/jwt"
)

// App represents the application
type App struct {
	config      *config.Config
	logger      *zap.Logger
	httpServer  *http.Server
	napWatchdog *cronpkg.NapWatchdog
	producer    *kafka.Producer
	dbPool      *pgxpool.Pool
	redisClient *goredis.Client
}

// New creates a new application
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Service.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	log.Info("configuration loaded", zap.String("backend", cfg.Storage.Backend))

	var producer *kafka.Producer
	if cfg.Kafka.Enabled {
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		log.Info("kafka producer initialized", zap.Strings("brokers", cfg.Kafka.Brokers))
	}

	app := &App{config: cfg, logger: log, producer: producer}

	var tracker domainservice.Tracker
	var authHandler *httptransport.AuthHandler
	var authMiddleware *httptransport.AuthMiddleware

	switch cfg.Storage.Backend {
	case config.BackendLocal:
		store, err := localstore.New(cfg.Storage.LocalDir, log)
		if err != nil {
			return nil, fmt.Errorf("failed to open local store: %w", err)
		}
		tracker = service.NewTrackerService(store, nil, producer, log)

		// Local mode is single user: hydrate eagerly so startup fails
		// loudly on an unreadable data directory.
		if _, err := tracker.Babies(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to load local data: %w", err)
		}
		authMiddleware = httptransport.NewAuthMiddleware(nil)
		log.Info("local storage ready", zap.String("dir", cfg.Storage.LocalDir))

	case config.BackendPostgres:
		ctx := context.Background()
		dbPool, err := infradb.NewPostgresPool(ctx, &cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		app.dbPool = dbPool

		redisClient, err := redisinfra.NewClient(ctx, &cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.redisClient = redisClient

		userRepo := postgres.NewUserRepository(dbPool)
		sessions := redisinfra.NewSessionStorage(redisClient, cfg.Redis.SessionTTL)
		tokens := pkgjwt.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL, cfg.JWT.Issuer)
		auth := service.NewAuthService(userRepo, sessions, tokens, cfg.Redis.SessionTTL, log)

		identity := httptransport.ContextIdentity{}
		store := postgres.NewTrackerStore(dbPool, identity)
		tracker = service.NewTrackerService(store, identity, producer, log)

		authHandler = httptransport.NewAuthHandler(auth)
		authMiddleware = httptransport.NewAuthMiddleware(auth)
		log.Info("remote storage ready")

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	// The watchdog reads active naps outside any request, which only the
	// single-user backend can serve; remote actors are resolved per request.
	if cfg.Watchdog.Enabled && cfg.Storage.Backend == config.BackendLocal {
		app.napWatchdog = cronpkg.NewNapWatchdog(tracker, cfg.Watchdog.CheckInterval, cfg.Watchdog.MaxNapLength, log)
	}

	trackerHandler := httptransport.NewTrackerHandler(tracker)
	router := httptransport.NewRouter(trackerHandler, authHandler, authMiddleware, log)

	app.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	return app, nil
}

// Run starts the application and blocks until shutdown
func (a *App) Run() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	if a.napWatchdog != nil {
		if err := a.napWatchdog.Start(); err != nil {
			return fmt.Errorf("failed to start nap watchdog: %w", err)
		}
	}

	go func() {
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("http server error", zap.Error(err))
			quit <- syscall.SIGTERM
		}
	}()

	a.logger.Info("service started",
		zap.String("service", a.config.Service.Name),
		zap.Int("port", a.config.HTTP.Port),
	)

	<-quit
	a.logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), a.config.HTTP.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Warn("http shutdown", zap.Error(err))
	}

	if a.napWatchdog != nil {
		a.napWatchdog.Stop()
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Warn("kafka producer close", zap.Error(err))
		}
	}

	if a.redisClient != nil {
		a.redisClient.Close()
	}
	if a.dbPool != nil {
		a.dbPool.Close()
	}

	a.logger.Info("shutdown complete")
	a.logger.Sync()
	return nil
}
