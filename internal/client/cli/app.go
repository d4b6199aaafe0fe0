package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/lifeboard/internal/client/client"
	"github.com/dmitrijs2005/lifeboard/internal/client/config"
	"github.com/dmitrijs2005/lifeboard/internal/client/services"
	"github.com/dmitrijs2005/lifeboard/internal/client/theme"
	"github.com/dmitrijs2005/lifeboard/internal/logging"

	_ "modernc.org/sqlite"
)

// App is the terminal shell over the auth controller: it owns the database
// handle, the theme watcher goroutine, and the interactive loop.
type App struct {
	config *config.Config
	auth   *services.AuthController
	themes *theme.Store
	logger logging.Logger
	repos  *client.Repositories
	reader *bufio.Reader

	mu         sync.Mutex
	lastResend time.Time
}

// NewApp wires the local database, theme store and auth controller.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	repos, err := client.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	themes := theme.NewStore(repos.Metadata, theme.EnvSource{}, logger)
	auth := services.NewAuthController(repos.DB, themes, logger, c.SimulatedLatency)

	return &App{
		config: c,
		auth:   auth,
		themes: themes,
		logger: logger,
		repos:  repos,
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

// Run executes the startup sequence, starts the theme watcher, and hands
// control to the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.auth.Init(ctx)

	go a.themes.Watch(ctx, a.config.ThemePollInterval)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// Close releases the database handle.
func (a *App) Close() {
	if a.repos != nil && a.repos.DB != nil {
		_ = a.repos.DB.Close()
	}
}

// getStatus renders the prompt fragment: the signed-in email (if any) and
// the resolved appearance.
func (a *App) getStatus() string {
	s := ""
	if user := a.auth.CurrentUser(); user != nil {
		s = user.Email + " "
	}
	if a.auth.IsDarkTheme() {
		s += "dark"
	} else {
		s += "light"
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsAuthenticated()
}

func (a *App) hasPendingVerification() bool {
	return a.auth.PendingEmail() != ""
}
