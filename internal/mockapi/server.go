// Package mockapi serves a fixture.Backend over HTTP so the CLI, or any
// other client, can run against a real socket without the production API.
package mockapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/phishshield/internal/client/fixture"
	"github.com/dmitrijs2005/phishshield/internal/logging"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// APIPrefix is the path every API route is mounted under.
const APIPrefix = "/api"

const shutdownTimeout = 5 * time.Second

type Server struct {
	address string
	backend *fixture.Backend
	logger  logging.Logger
	echo    *echo.Echo
}

func NewServer(address string, l logging.Logger, backend *fixture.Backend) *Server {
	s := &Server{
		address: address,
		backend: backend,
		logger:  l.With("module", "mockapi"),
	}
	s.echo = s.newEcho()
	return s
}

func (s *Server) newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Info(c.Request().Context(), "request",
				"method", v.Method, "uri", v.URI, "status", v.Status,
				"latency", v.Latency, "request_id", v.RequestID)
			return nil
		},
	}))

	e.GET("/health", s.health)

	api := e.Group(APIPrefix)
	api.POST("/auth/login", s.login)
	api.POST("/auth/signup", s.signup)
	api.GET("/user/me", s.profile, s.requireUser)
	api.PUT("/user/me", s.updateProfile, s.requireUser)
	api.GET("/dashboard/summary", s.dashboard, s.requireUser)
	api.GET("/quiz", s.quiz)
	api.POST("/quiz/submit", s.submitQuiz, s.optionalUser)
	api.POST("/chat", s.chat)

	return e
}

// Handler exposes the routes, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

// serve runs the HTTP server on listen until ctx is cancelled or Serve
// fails. It returns once the shutdown watcher has exited.
func (s *Server) serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.echo,
		ReadHeaderTimeout: 5 * time.Second,
	}

	done := make(chan struct{})
	var watcher sync.WaitGroup
	watcher.Add(1)
	go func() {
		defer watcher.Done()
		select {
		case <-ctx.Done():
		case <-done:
			return
		}
		s.logger.Info(context.Background(), "Stopping mock API server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting mock API server", "address", listen.Addr().String())

	err := srv.Serve(listen)
	close(done)
	watcher.Wait()

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
