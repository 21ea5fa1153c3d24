// Package server initializes and runs the account service: it loads
// configuration, connects to storage, runs migrations, wires the service
// graph, and serves the HTTP API until shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akimovdo/accountd/internal/logging"
	"github.com/akimovdo/accountd/internal/server/config"
	"github.com/akimovdo/accountd/internal/server/httpapi"
	"github.com/akimovdo/accountd/internal/server/mail"
	"github.com/akimovdo/accountd/internal/server/repositories/repomanager"
	"github.com/akimovdo/accountd/internal/server/services"
	"github.com/akimovdo/accountd/internal/server/sessions"
	"github.com/akimovdo/accountd/internal/server/verification"
)

type App struct {
	config *config.Config
	logger logging.Logger
}

func NewApp(c *config.Config) (*App, error) {
	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	return &App{config: c, logger: logger}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) mailSender() mail.Sender {
	if app.config.SMTPHost == "" {
		return mail.NewLogSender(app.logger)
	}
	return mail.NewSMTPSender(app.config.SMTPHost, app.config.SMTPPort,
		app.config.SMTPFrom, app.config.SMTPPassword)
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	db, err := sql.Open("pgx", app.config.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	auth := services.NewAuthService(db, rm,
		verification.NewRegistry(rm),
		sessions.NewMemoryStore(app.config.SessionTTL),
		app.mailSender(),
		app.logger)

	handler := httpapi.NewHandler(auth, app.logger)

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: httpapi.NewRouter(handler),
	}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", app.config.EndpointAddr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
