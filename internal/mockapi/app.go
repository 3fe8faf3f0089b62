package mockapi

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/phishshield/internal/client/config"
	"github.com/dmitrijs2005/phishshield/internal/client/fixture"
	"github.com/dmitrijs2005/phishshield/internal/logging"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *Server
}

// NewApp wires a fixture backend and its HTTP server from cfg. Logs go to w.
func NewApp(cfg *config.Config, w io.Writer) (*App, error) {
	logger := logging.New(cfg.LogLevel, w)

	backend, err := fixture.NewBackend(fixture.Options{
		Secret:   []byte(cfg.FixtureSecret),
		TokenTTL: cfg.FixtureTokenTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("fixture init error: %w", err)
	}

	return &App{
		config: cfg,
		logger: logger,
		server: NewServer(cfg.ListenAddr, logger, backend),
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

// Run serves until ctx is cancelled or the process is signalled.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	return app.server.Run(ctx)
}
