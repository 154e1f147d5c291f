// Package app initializes and runs the application: it provisions the
// database and schema, seeds the bootstrap account, and starts the
// interactive console.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/takatracker/takatracker/internal/cli"
	"github.com/takatracker/takatracker/internal/config"
	"github.com/takatracker/takatracker/internal/logging"
	"github.com/takatracker/takatracker/internal/passhash"
	"github.com/takatracker/takatracker/internal/provision"
	"github.com/takatracker/takatracker/internal/store"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	store  *store.Store
	ui     *cli.App
}

// provisionAndWire runs the provisioning sequence — database, schema,
// bootstrap account, in that order — and builds the store and console on
// top of it.
func (a *App) provisionAndWire(ctx context.Context) error {
	prov := provision.New(a.config, a.logger)

	if err := prov.EnsureDatabase(ctx); err != nil {
		return err
	}

	db, err := sql.Open("pgx", a.config.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db open error: %w", err)
	}
	a.db = db

	if err := prov.EnsureSchema(ctx, db); err != nil {
		return err
	}

	hasher, err := passhash.New(a.config.PasswordScheme)
	if err != nil {
		return err
	}
	a.store = store.New(db, hasher, a.logger)

	if err := prov.EnsureDefaultAccount(ctx, a.store); err != nil {
		return err
	}

	a.ui = cli.NewApp(a.store, a.logger)
	return nil
}

// NewApp wires the application together. Any provisioning failure aborts
// startup; every step is idempotent, so a failed start can simply be
// retried.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	l := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	logger := logging.NewSlogLogger(l)

	app := &App{config: c, logger: logger}
	if err := app.provisionAndWire(ctx); err != nil {
		if app.db != nil {
			_ = app.db.Close()
		}
		return nil, err
	}

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run starts the console and blocks until the user exits or a termination
// signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting takatracker",
		"database", app.config.DatabaseName, "scheme", app.config.PasswordScheme)

	app.initSignalHandler(cancelFunc)

	app.ui.Run(ctx)

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err.Error())
	}
}
