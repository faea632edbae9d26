// File: app/app.go
package app

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go-bank-ledger/config"
	"go-bank-ledger/db"
	"go-bank-ledger/events"
	"go-bank-ledger/handler"
	"go-bank-ledger/logger"
	"go-bank-ledger/metrics"
	"go-bank-ledger/repository"
	"go-bank-ledger/repository/memory"
	"go-bank-ledger/router"
	"go-bank-ledger/service"
)

const (
	storePostgres = "postgres"
	storeMemory   = "memory"
)

// Deps are the external resources an App runs on. Cache and Publisher are optional.
type Deps struct {
	Store     repository.Store
	Cache     service.ICacheClient
	Publisher events.Publisher
}

// App is the fully wired ledger service.
type App struct {
	Router   http.Handler
	Store    repository.Store
	Auth     *service.AuthService
	Accounts *service.AccountService
	Ledger   *service.LedgerService
	Metrics  *metrics.Collector
}

func New(cfg config.Config, deps Deps) *App {
	collector := metrics.NewCollector()
	authService := service.NewAuthService(cfg.JWT.SecretKey, time.Hour)
	accountService := service.NewAccountService(deps.Store, deps.Cache, cfg.Redis.TTL)

	opts := []service.LedgerOption{
		service.WithMetrics(collector),
		service.WithCacheInvalidator(accountService),
	}
	if deps.Publisher != nil {
		opts = append(opts, service.WithPublisher(deps.Publisher))
	}
	ledgerService := service.NewLedgerService(deps.Store, cfg.Ledger, opts...)

	r := router.NewRouter(router.Handlers{
		Accounts:       handler.NewAccountHandler(accountService),
		Ledger:         handler.NewLedgerHandler(ledgerService, accountService),
		Auth:           authService,
		Metrics:        collector,
		AllowedOrigins: cfg.AllowedOrigins(),
	})

	return &App{
		Router:   r,
		Store:    deps.Store,
		Auth:     authService,
		Accounts: accountService,
		Ledger:   ledgerService,
		Metrics:  collector,
	}
}

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	cfg := config.AppConfig
	if cfg.JWT.SecretKey == "" {
		logger.Log.Fatal("JWT_SECRET_KEY must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var deps Deps
	var cleanups []func()

	switch cfg.Ledger.Store {
	case storeMemory:
		logger.Log.Warn("Using the in-memory store; balances are lost on restart")
		deps.Store = memory.NewStore(cfg.Ledger.LockTimeout)
	case storePostgres:
		database, err := db.Connect(ctx, cfg)
		if err != nil {
			logger.Log.Fatalf("Error connecting to the database: %v", err)
		}
		cleanups = append(cleanups, closeDB(database))
		if err := db.RunMigrations(db.DSN(cfg)); err != nil {
			logger.Log.Fatalf("Error running migrations: %v", err)
		}
		deps.Store = repository.NewPostgresStore(database, cfg.Ledger.LockTimeout)
	default:
		logger.Log.Fatalf("Unknown ledger store %q", cfg.Ledger.Store)
	}

	if cfg.Redis.Enabled {
		rdb, err := db.ConnectRedis(ctx, cfg)
		if err != nil {
			logger.Log.Fatalf("Error connecting to redis: %v", err)
		}
		deps.Cache = rdb
		cleanups = append(cleanups, func() { rdb.Close() })
	}

	if cfg.Kafka.Enabled {
		publisher := events.NewKafkaPublisher(cfg.Brokers(), cfg.Kafka.Topic)
		deps.Publisher = publisher
		cleanups = append(cleanups, func() {
			if err := publisher.Close(); err != nil {
				logger.Log.WithError(err).Error("Failed to close event publisher")
			}
		})
	}

	a := New(cfg, deps)

	port := cfg.Server.Port
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           a.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("Server forced to shutdown")
	}

	// Release in reverse order of acquisition, after in-flight requests drained.
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	logger.Log.Info("Server exited properly")
}

func closeDB(database *sql.DB) func() {
	return func() {
		if err := database.Close(); err != nil {
			logger.Log.WithError(err).Error("Failed to close database")
		}
	}
}
