package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/useradmin/internal/auth"
	"github.com/dmitrijs2005/useradmin/internal/client/client"
	"github.com/dmitrijs2005/useradmin/internal/client/config"
	"github.com/dmitrijs2005/useradmin/internal/client/database"
	"github.com/dmitrijs2005/useradmin/internal/client/repositories/sessions"
	"github.com/dmitrijs2005/useradmin/internal/client/repositories/storage"
	"github.com/dmitrijs2005/useradmin/internal/client/repositories/users"
	"github.com/dmitrijs2005/useradmin/internal/client/seed"
	"github.com/dmitrijs2005/useradmin/internal/client/services"
	"github.com/dmitrijs2005/useradmin/internal/client/session"
	"github.com/dmitrijs2005/useradmin/internal/client/status"
	"github.com/dmitrijs2005/useradmin/internal/clock"
	"github.com/dmitrijs2005/useradmin/internal/cryptox"
	"github.com/dmitrijs2005/useradmin/internal/logging"
)

// Deps are the components an App drives.
type Deps struct {
	Config     *config.Config
	Users      services.UserService
	Session    *session.Manager
	Watcher    *status.Watcher
	Dispatcher *services.Dispatcher
	Directory  *users.Store
	Sessions   *sessions.Store
	Seeds      []seed.User
	Log        logging.Logger
}

type App struct {
	Deps
	in  *bufio.Reader
	out io.Writer
}

func New(d Deps, in io.Reader, out io.Writer) *App {
	return &App{Deps: d, in: bufio.NewReader(in), out: out}
}

// Build opens local state and wires every component from cfg. The returned
// closer releases the database.
func Build(ctx context.Context, cfg *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, func() error, error) {
	db, err := database.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open local database: %w", err)
	}

	app, err := wire(ctx, db, cfg, log, clock.Real(), in, out)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return app, db.Close, nil
}

func wire(ctx context.Context, db *sql.DB, cfg *config.Config, log logging.Logger, clk clock.Clock, in io.Reader, out io.Writer) (*App, error) {
	sessionStore := sessions.NewSQLiteStore(db)
	directory := users.NewStore(storage.NewSQLiteRepository(db), cryptox.NewPasswordCodec(cfg.DigestKey), clk)

	seeds, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return nil, err
	}
	if wrote, err := seed.Ensure(ctx, directory, seeds); err != nil {
		return nil, fmt.Errorf("seed local directory: %w", err)
	} else if wrote {
		log.Info(ctx, "local directory seeded", "users", len(seeds))
	}

	tokens := auth.NewTokenCodec([]byte(cfg.TokenSecret), clk)
	remote := client.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout, sessionStore)
	dispatcher := services.NewDispatcher(log)

	authSvc := services.NewAuthService(remote, directory, sessionStore, tokens, cfg.TokenTTL, dispatcher)

	return New(Deps{
		Config:     cfg,
		Users:      services.NewUserService(remote, directory, dispatcher),
		Session:    session.NewManager(authSvc, sessionStore, tokens, log),
		Watcher:    status.NewWatcher(authSvc, cfg.OnlineCheckInterval, cfg.RequestTimeout, clk, log),
		Dispatcher: dispatcher,
		Directory:  directory,
		Sessions:   sessionStore,
		Seeds:      seeds,
		Log:        log,
	}, in, out), nil
}

// Run restores the session, starts the availability watcher and blocks in
// the REPL until exit, EOF or ctx cancellation.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := a.Watcher.Start(ctx)
	defer func() {
		cancel()
		<-done
	}()

	if id, _ := a.Session.Restore(ctx); id != nil {
		a.printf("Welcome back, %s\n", id.DisplayName)
	}

	a.printf("User admin console (type 'help' for commands)\n")
	runREPL(ctx, a, a.prompt, a.in, a.out)
}

func (a *App) prompt() string {
	s := string(a.Watcher.Mode())
	if id := a.Session.Identity(); id != nil {
		s = id.LoginName + " " + s
	}
	return fmt.Sprintf("admin (%s)> ", s)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) isLoggedIn() bool {
	return a.Session.IsAuthenticated()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
