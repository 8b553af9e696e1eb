// Package server initializes and runs the application: configuration,
// logging, the connection pool, database migrations, and the HTTP server
// with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/calmouapp/calmou/internal/auth"
	"github.com/calmouapp/calmou/internal/config"
	"github.com/calmouapp/calmou/internal/credentials"
	"github.com/calmouapp/calmou/internal/httpapi"
	"github.com/calmouapp/calmou/internal/logging"
	"github.com/calmouapp/calmou/internal/pool"
	"github.com/calmouapp/calmou/internal/repositories/users"
	"github.com/calmouapp/calmou/internal/services"
	"github.com/calmouapp/calmou/internal/tokens"
	"github.com/calmouapp/calmou/migrations"
)

const shutdownGrace = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	zap    *zap.Logger
	pool   *pool.Pool
	api    *httpapi.API
}

func NewApp(cfg *config.Config) (*App, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.EncoderConfig.TimeKey = "ts"
	zl, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}
	logger := logging.NewZapLogger(zl.WithOptions(zap.AddCallerSkip(1)))

	if err := runMigrations(cfg.DSN()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	p, err := pool.Initialize(context.Background(), pool.Config{
		ConnString:     cfg.DSN(),
		MinConns:       int32(cfg.PoolMinConns),
		MaxConns:       int32(cfg.PoolMaxConns),
		AcquireTimeout: cfg.PoolAcquireTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("pool init error: %w", err)
	}

	creds, err := credentials.New(credentials.Config{
		MemoryKB:    cfg.HashMemoryKB,
		Time:        cfg.HashTime,
		Parallelism: cfg.HashParallelism,
		SaltLength:  credentials.DefaultConfig().SaltLength,
		KeyLength:   credentials.DefaultConfig().KeyLength,
	})
	if err != nil {
		return nil, fmt.Errorf("credential config error: %w", err)
	}

	ts := tokens.NewService([]byte(cfg.JWTSecret), cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userRepo := users.NewPooled(p, creds)

	api := &httpapi.API{
		Accounts:    services.NewAccountService(userRepo, creds, ts, logger),
		Deletion:    services.NewDeletionService(p, logger),
		Moods:       services.NewMoodService(p),
		Meditations: services.NewMeditationService(p),
		Assessments: services.NewAssessmentService(p),
		Stats:       services.NewStatsService(p),
		Photos:      services.NewPhotoService(cfg),
		Gateway:     auth.NewGateway(ts),
	}

	return &App{config: cfg, logger: logger, zap: zl, pool: p, api: api}, nil
}

// runMigrations applies the embedded goose migrations over a short-lived
// database/sql connection; the pool itself stays pgx-native.
func runMigrations(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	router := httpapi.NewRouter(app.api, app.config, app.zap)
	srv := &http.Server{
		Addr:    app.config.ListenAddr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting http server", "addr", app.config.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "http shutdown error", "error", err)
	}

	pool.Shutdown()
	_ = app.zap.Sync()
	return nil
}
