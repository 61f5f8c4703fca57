// Package server wires the food API together: logging, storage, the food
// service and the HTTP server. It owns process signals and shuts everything
// down in order.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/foodkeeper/internal/logging"
	"github.com/dmitrijs2005/foodkeeper/internal/server/config"
	"github.com/dmitrijs2005/foodkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/foodkeeper/internal/server/services"
	"github.com/dmitrijs2005/foodkeeper/internal/server/storage"
)

type App struct {
	config *config.Config
	logger logging.Logger
	store  storage.Store
	server *httpapi.HTTPServer
}

// NewApp validates c, opens storage and builds the HTTP server. Logs go to w.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger, err := logging.New(c.LogFormat, c.LogLevel, w)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	store, err := storage.Open(ctx, c.StorageDriver, c.DatabaseDSN, logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	var health storage.Pinger
	if p, ok := store.(storage.Pinger); ok {
		health = p
	}

	fs := services.NewFoodService(store, logger)
	srv := httpapi.NewHTTPServer(c, logger, fs, health)

	return &App{config: c, logger: logger, store: store, server: srv}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Signal received, shutting down", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes storage.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "env", app.config.Env, "storage", app.config.StorageDriver)

	app.initSignalHandler(ctx, cancelFunc)

	runErr := app.server.Run(ctx)
	if runErr != nil {
		app.logger.Error(ctx, "HTTP server error", "error", runErr)
	}

	if err := app.store.Close(); err != nil {
		app.logger.Error(ctx, "storage close error", "error", err)
		if runErr == nil {
			runErr = err
		}
	}

	app.logger.Info(ctx, "App stopped")
	return runErr
}
