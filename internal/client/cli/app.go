package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/phishshield/internal/client/avatar"
	"github.com/dmitrijs2005/phishshield/internal/client/client"
	"github.com/dmitrijs2005/phishshield/internal/client/config"
	"github.com/dmitrijs2005/phishshield/internal/client/fixture"
	"github.com/dmitrijs2005/phishshield/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/phishshield/internal/client/session"
	"github.com/dmitrijs2005/phishshield/internal/filex"
	"github.com/dmitrijs2005/phishshield/internal/logging"
	"golang.org/x/time/rate"
)

// ErrCommandFailed marks a command whose failure was already shown to the
// user.
var ErrCommandFailed = errors.New("command failed")

// newUploader is a test seam for the avatar storage.
var newUploader = func(ctx context.Context, cfg config.AvatarConfig) (avatar.Uploader, error) {
	return avatar.NewS3Uploader(ctx, cfg)
}

type App struct {
	config *config.Config
	db     *sql.DB
	meta   metadata.Repository
	tokens *client.PersistentTokenStore
	logger logging.Logger
	api    *client.APIClient
	store  *session.Store
	out    *printer
	reader *bufio.Reader

	tip int
}

// NewApp opens the local database and wires the API client and session
// store from cfg. Prompts read from in; output goes to out, logs to logOut.
func NewApp(ctx context.Context, cfg *config.Config, in io.Reader, out, logOut io.Writer) (*App, error) {
	logger := logging.New(cfg.LogLevel, logOut)

	if _, err := filex.EnsureParentDir(cfg.DatabasePath); err != nil {
		logger.Error(ctx, "error preparing database directory", "error", err)
		return nil, err
	}

	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	meta := metadata.NewSQLiteRepository(db)
	transport, err := newTransport(ctx, cfg, meta)
	if err != nil {
		logger.Error(ctx, "error initializing transport", "error", err)
		_ = db.Close()
		return nil, err
	}

	tokens := client.NewPersistentTokenStore(db)
	api := client.NewAPIClient(transport, tokens, logger, chatLimiter(cfg))
	a := newApp(cfg, api, logger, in, out)
	a.db = db
	a.meta = meta
	a.tokens = tokens
	return a, nil
}

func newApp(cfg *config.Config, api *client.APIClient, logger logging.Logger, in io.Reader, out io.Writer) *App {
	p := newPrinter(out)
	return &App{
		config: cfg,
		logger: logger,
		api:    api,
		store:  session.NewStore(api, p, logger),
		out:    p,
		reader: bufio.NewReader(in),
	}
}

// newTransport picks the live API or, in mock mode, an in-process backend
// whose accounts are kept in the local database next to the credential.
func newTransport(ctx context.Context, cfg *config.Config, accounts fixture.AccountStore) (client.Transport, error) {
	if !cfg.MockAPI {
		return client.NewHTTPTransport(cfg.APIURL, cfg.RequestTimeout), nil
	}
	backend, err := fixture.NewBackend(fixture.Options{
		Secret:   []byte(cfg.FixtureSecret),
		TokenTTL: cfg.FixtureTokenTTL,
		Accounts: accounts,
	})
	if err != nil {
		return nil, fmt.Errorf("fixture init error: %w", err)
	}
	if err := backend.LoadAccounts(ctx); err != nil {
		return nil, fmt.Errorf("fixture init error: %w", err)
	}
	return fixture.NewTransport(backend, cfg.FixtureLatency), nil
}

func chatLimiter(cfg *config.Config) *rate.Limiter {
	if cfg.ChatRateInterval <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(cfg.ChatRateInterval), cfg.ChatBurst)
}

// Context returns ctx with the session store attached.
func (a *App) Context(ctx context.Context) context.Context {
	return session.NewContext(ctx, a.store)
}

// Restore resumes the persisted session, if any. A rejected or expired
// credential is reported and discarded; the app stays usable signed out.
func (a *App) Restore(ctx context.Context) {
	out := a.store.Restore(ctx)
	if out.OK {
		a.logger.Debug(ctx, "session restored")
	}
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.store.User() != nil
}

func (a *App) status() string {
	if u := a.store.User(); u != nil {
		return fmt.Sprintf("(%s, %d credits)", u.Name, u.Credits)
	}
	return "(guest)"
}

// check turns a failed outcome into ErrCommandFailed. The notifier has
// already shown the message; field errors are listed below it.
func (a *App) check(out session.Outcome) error {
	if out.OK {
		return nil
	}
	a.out.fieldErrors(out.Fields)
	return fmt.Errorf("%w: %s", ErrCommandFailed, out.Message)
}

func (a *App) fail(msg string) error {
	a.out.Error(msg)
	return fmt.Errorf("%w: %s", ErrCommandFailed, msg)
}

func (a *App) requireUser() error {
	if !a.isLoggedIn() {
		return a.fail(session.MsgNotSignedIn)
	}
	return nil
}
