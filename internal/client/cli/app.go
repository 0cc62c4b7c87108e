package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/dmitrijs2005/gophsession/internal/client/auth"
	"github.com/dmitrijs2005/gophsession/internal/client/client"
	"github.com/dmitrijs2005/gophsession/internal/client/config"
	"github.com/dmitrijs2005/gophsession/internal/client/scoped"
	"github.com/dmitrijs2005/gophsession/internal/client/session"
	"github.com/dmitrijs2005/gophsession/internal/client/ui"
	"github.com/dmitrijs2005/gophsession/internal/filex"
	"github.com/dmitrijs2005/gophsession/internal/logging"

	_ "modernc.org/sqlite"
)

const (
	sessionDBName = "session.db"
	scopesDirName = "scopes"
)

// flowService is the part of auth.Flow the commands drive.
type flowService interface {
	State() auth.State
	Pending() (auth.Pending, bool)
	Resume(ctx context.Context)
	BeginSignIn(ctx context.Context) (string, error)
	HandleCallback(ctx context.Context, rawURL string) (string, error)
	ConfirmNickname(ctx context.Context, nickname string) error
	CancelRegistration(ctx context.Context) error
	TestLogin(ctx context.Context) error
	Logout(ctx context.Context) error
}

// scopeBinder is the part of scoped.Binder the note commands need.
type scopeBinder interface {
	Wait(ctx context.Context) error
	Store() (scoped.Store, error)
	Current() string
	Close(ctx context.Context) error
}

type App struct {
	config *config.Config
	db     *sql.DB
	store  *session.Store
	binder scopeBinder
	flow   flowService
	reader *bufio.Reader
	out    io.Writer
	log    logging.Logger
}

// NewApp opens local storage under cfg.DataDir and wires every component.
// The caller owns the returned App and must Close it.
func NewApp(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer, log logging.Logger) (*App, error) {
	dataDir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	scopesDir, err := filex.EnsureDir(filepath.Join(dataDir, scopesDirName))
	if err != nil {
		return nil, fmt.Errorf("scopes dir: %w", err)
	}

	db, err := client.InitDatabase(ctx, filepath.Join(dataDir, sessionDBName))
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	console := ui.NewConsole(out)
	binder := scoped.NewBinder(scoped.NewSQLiteOpener(scopesDir), log)
	store := session.NewStore(db, binder, console, log)
	api := client.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, log)
	flow := auth.NewFlow(auth.Config{
		APIBaseURL:  cfg.APIBaseURL,
		CallbackURL: cfg.CallbackURL,
		TestMode:    cfg.TestMode,
	}, store, api, console, log)

	return &App{
		config: cfg,
		db:     db,
		store:  store,
		binder: binder,
		flow:   flow,
		reader: bufio.NewReader(in),
		out:    out,
		log:    log,
	}, nil
}

// Run restores the previous session and serves commands until exit.
func (a *App) Run(ctx context.Context) {
	a.flow.Resume(ctx)
	fmt.Fprintln(a.out, "gophsession CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

// Close releases the scoped store and the session database.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.binder != nil {
		errs = append(errs, a.binder.Close(ctx))
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}

func (a *App) isLoggedIn() bool {
	return a.store.IsAuthenticated()
}

func (a *App) getStatus() string {
	if a.flow.State() == auth.StatePendingRegistration {
		return "(registering)"
	}
	if !a.isLoggedIn() {
		return "(anonymous)"
	}
	return fmt.Sprintf("(%s)", a.store.Get().DisplayName())
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
