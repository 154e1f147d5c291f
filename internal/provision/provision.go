// Package provision guarantees that the database, the schema, and the
// bootstrap account exist before any store operation runs. All operations
// are idempotent and safe to call on every process start; any failure aborts
// startup with an error wrapping common.ErrProvisioning.
package provision

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/takatracker/takatracker/internal/common"
	"github.com/takatracker/takatracker/internal/config"
	"github.com/takatracker/takatracker/internal/dbx"
	"github.com/takatracker/takatracker/internal/logging"
	"github.com/takatracker/takatracker/internal/provision/migrations"
)

// duplicateDatabase is the SQLSTATE for CREATE DATABASE hitting an existing
// database, which can happen when two processes provision concurrently.
const duplicateDatabase = "42P04"

// AccountSeeder is the slice of the store the provisioner needs to seed the
// bootstrap account.
type AccountSeeder interface {
	AccountExists(ctx context.Context, identifier string) (bool, error)
	CreateAccount(ctx context.Context, username, email, password string) (bool, error)
}

type Provisioner struct {
	cfg *config.Config
	log logging.Logger
}

func New(cfg *config.Config, log logging.Logger) *Provisioner {
	return &Provisioner{cfg: cfg, log: log}
}

// EnsureDatabase connects to the maintenance database and creates the
// application database when it does not exist yet. Existing databases and
// their data are left untouched.
func (p *Provisioner) EnsureDatabase(ctx context.Context) error {
	db, err := sql.Open("pgx", p.cfg.AdminDSN)
	if err != nil {
		return fmt.Errorf("open admin connection: %w: %w", common.ErrProvisioning, err)
	}
	defer db.Close()

	return ensureDatabaseOn(ctx, db, p.cfg.DatabaseName)
}

// ensureDatabaseOn checks pg_database for name and issues CREATE DATABASE
// only when absent. A concurrent creation losing the race is treated as
// success.
func ensureDatabaseOn(ctx context.Context, db dbx.DBTX, name string) error {
	var exists bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)`, name).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check database %q: %w: %w", name, common.ErrProvisioning, err)
	}
	if exists {
		return nil
	}

	// CREATE DATABASE does not accept bind parameters; the name is quoted
	// as an identifier instead.
	stmt := "CREATE DATABASE " + pgx.Identifier{name}.Sanitize()
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == duplicateDatabase {
			return nil
		}
		return fmt.Errorf("create database %q: %w: %w", name, common.ErrProvisioning, err)
	}

	return nil
}

// EnsureSchema runs the embedded migrations against the application
// database. Goose applies them in version order, so the accounts table is
// always created before income_records references it, and re-running on an
// up-to-date database is a no-op.
func (p *Provisioner) EnsureSchema(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("run migrations: %w: %w", common.ErrProvisioning, err)
	}

	return nil
}

// EnsureDefaultAccount seeds the bootstrap account on first start. The
// configured credentials are a known weak default, a convenience for fresh
// installs rather than a security boundary; rotate them immediately in any
// real deployment.
func (p *Provisioner) EnsureDefaultAccount(ctx context.Context, seeder AccountSeeder) error {
	username := p.cfg.BootstrapUsername

	exists, err := seeder.AccountExists(ctx, username)
	if err != nil {
		return fmt.Errorf("check bootstrap account: %w: %w", common.ErrProvisioning, err)
	}
	if exists {
		return nil
	}

	if _, err := seeder.CreateAccount(ctx, username, p.cfg.BootstrapEmail, p.cfg.BootstrapPassword); err != nil {
		// another process may have seeded it between the check and the insert
		if errors.Is(err, common.ErrDuplicateAccount) {
			return nil
		}
		return fmt.Errorf("create bootstrap account: %w: %w", common.ErrProvisioning, err)
	}

	p.log.Warn(ctx, "bootstrap account created with default credentials, rotate them",
		"username", username)

	return nil
}
