package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"

	"github.com/comitanigiacomo/mishabitos-api/internal/adapters/cache"
	"github.com/comitanigiacomo/mishabitos-api/internal/adapters/currency"
	"github.com/comitanigiacomo/mishabitos-api/internal/adapters/repository"
	"github.com/comitanigiacomo/mishabitos-api/internal/config"
	"github.com/comitanigiacomo/mishabitos-api/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server, connecting to PostgreSQL and, when reachable, Redis.`,
	RunE:  runServe,
}

var (
	port        string
	autoMigrate bool
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "Apply pending migrations before serving")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level := logger.ParseLevel(cfg.Log.Level)
	if cfg.Log.Format == "json" {
		logger.InitJSON(level)
	} else {
		logger.Init(level)
	}

	return cfg, nil
}

func openDB(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port != "" {
		cfg.Server.Port = port
	}

	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("connecting to database", "host", cfg.Database.Host, "driver", cfg.Database.Driver)
	db, err := openDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if autoMigrate {
		applied, err := repository.Migrate(ctx, db)
		if err != nil {
			return err
		}
		logger.Info("migrations applied", "count", len(applied))
	}

	var rdb *redis.Client
	if client, err := cache.NewRedisClient(ctx, cfg.Redis); err != nil {
		logger.Warn("redis unavailable, running without cache", "error", err)
	} else {
		rdb = client
		defer rdb.Close()
	}

	app := newApplication(appOptions{
		cfg: cfg,
		store: storage{
			habits:      repository.NewPostgresHabitRepository(db),
			completions: repository.NewPostgresCompletionRepository(db),
			users:       repository.NewPostgresUserRepository(db),
		},
		db:    db,
		redis: rdb,
		rates: currency.NewBNAScraper(cfg.Rates.BNAURL, nil),
	})

	if app.worker != nil {
		app.worker.Start(ctx)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      app.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("mishabitos api listening", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("stop signal received, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}
