// Package server initializes and runs the auth server: it validates
// configuration, opens the configured storage backend, applies migrations,
// and serves the HTTP API until the process is signalled.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/sbperudesarrollo/authbase/internal/logging"
	"github.com/sbperudesarrollo/authbase/internal/server/auth"
	"github.com/sbperudesarrollo/authbase/internal/server/config"
	"github.com/sbperudesarrollo/authbase/internal/server/httpapi"
	"github.com/sbperudesarrollo/authbase/internal/server/repositories/repomanager"
	"github.com/sbperudesarrollo/authbase/internal/server/services"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	authSvc   *services.AuthService
	passwords *services.PasswordService
}

func NewApp(cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	manager, err := repomanager.New(cfg.StorageBackend)
	if err != nil {
		return nil, err
	}

	var db *sql.DB
	if cfg.StorageBackend == repomanager.BackendPostgres {
		db, err = sql.Open("pgx", cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		if err := manager.RunMigrations(context.Background(), db); err != nil {
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}

	repo := manager.Users(db)
	issuer := auth.NewIssuer([]byte(cfg.SecretKey), cfg.Issuer, cfg.Audience, cfg.TokenValidityDuration)

	return &App{
		config:    cfg,
		logger:    logger,
		db:        db,
		authSvc:   services.NewAuthService(repo, issuer, logger),
		passwords: services.NewPasswordService(repo, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	handler := httpapi.NewHandler(app.authSvc, app.passwords, app.logger)
	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, handler)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "closing db", "error", err.Error())
		}
	}
}
