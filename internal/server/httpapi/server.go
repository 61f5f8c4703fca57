// Package httpapi serves the food REST API over echo.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/foodkeeper/internal/logging"
	"github.com/dmitrijs2005/foodkeeper/internal/server/config"
	"github.com/dmitrijs2005/foodkeeper/internal/server/services"
	"github.com/dmitrijs2005/foodkeeper/internal/server/storage"
	"github.com/labstack/echo/v4"
)

type HTTPServer struct {
	config *config.Config
	foods  *services.FoodService
	health storage.Pinger
	logger logging.Logger
	e      *echo.Echo
}

// NewHTTPServer builds the router. health may be nil when the store has
// nothing to ping.
func NewHTTPServer(c *config.Config, l logging.Logger, fs *services.FoodService, health storage.Pinger) *HTTPServer {
	s := &HTTPServer{
		config: c,
		foods:  fs,
		health: health,
		logger: l.With("module", "http_server"),
	}
	s.e = s.newEcho()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.e
}

func (s *HTTPServer) newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.errorHandler

	s.useMiddleware(e)

	e.GET("/health-check", s.HealthCheck)

	g := e.Group("/foods")
	g.GET("", s.GetFoods)
	g.POST("", s.CreateFood)
	g.GET("/:id", s.GetFood)
	g.PUT("/:id", s.UpdateFood)
	g.DELETE("/:id", s.DeleteFood)

	return e
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most ShutdownTimeout.
func (s *HTTPServer) Run(ctx context.Context) error {
	stopped := make(chan struct{})
	defer close(stopped)

	go func() {
		select {
		case <-ctx.Done():
		case <-stopped:
			return
		}
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		if err := s.e.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.config.EndpointAddrHTTP, "env", s.config.Env)

	if err := s.e.Start(s.config.EndpointAddrHTTP); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
