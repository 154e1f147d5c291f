package provision

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"sort"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/takatracker/takatracker/internal/common"
	"github.com/takatracker/takatracker/internal/config"
	"github.com/takatracker/takatracker/internal/logging"
	"github.com/takatracker/takatracker/internal/provision/migrations"
)

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

const existsQ = `(?s)^SELECT\s+EXISTS\s*\(SELECT\s+1\s+FROM\s+pg_database\s+WHERE\s+datname\s*=\s*\$1\)\s*$`

func TestEnsureDatabaseOn_AlreadyExists(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(existsQ).WithArgs("takatracker").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	if err := ensureDatabaseOn(context.Background(), db, "takatracker"); err != nil {
		t.Fatalf("ensureDatabaseOn error: %v", err)
	}
	// no CREATE DATABASE must have been issued
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEnsureDatabaseOn_CreatesWhenAbsent(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(existsQ).WithArgs("takatracker").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`^CREATE\s+DATABASE\s+"takatracker"$`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := ensureDatabaseOn(context.Background(), db, "takatracker"); err != nil {
		t.Fatalf("ensureDatabaseOn error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEnsureDatabaseOn_LostCreationRaceIsFine(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(existsQ).WithArgs("takatracker").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`^CREATE\s+DATABASE\s+"takatracker"$`).
		WillReturnError(&pgconn.PgError{Code: "42P04"})

	if err := ensureDatabaseOn(context.Background(), db, "takatracker"); err != nil {
		t.Fatalf("duplicate database must not be an error, got %v", err)
	}
}

func TestEnsureDatabaseOn_CreateFailure(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(existsQ).WithArgs("takatracker").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`^CREATE\s+DATABASE\s+"takatracker"$`).
		WillReturnError(errors.New("permission denied"))

	err = ensureDatabaseOn(context.Background(), db, "takatracker")
	if !errors.Is(err, common.ErrProvisioning) {
		t.Fatalf("want ErrProvisioning, got %v", err)
	}
}

// seederStub records calls so tests can assert seeding behavior without a
// database.
type seederStub struct {
	exists    bool
	existsErr error
	createErr error
	created   []string
}

func (s *seederStub) AccountExists(ctx context.Context, identifier string) (bool, error) {
	return s.exists, s.existsErr
}

func (s *seederStub) CreateAccount(ctx context.Context, username, email, password string) (bool, error) {
	if s.createErr != nil {
		return false, s.createErr
	}
	s.created = append(s.created, username)
	return true, nil
}

func newTestProvisioner() *Provisioner {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return New(cfg, discardLogger())
}

func TestEnsureDefaultAccount_SeedsWhenAbsent(t *testing.T) {
	p := newTestProvisioner()
	seeder := &seederStub{exists: false}

	if err := p.EnsureDefaultAccount(context.Background(), seeder); err != nil {
		t.Fatalf("EnsureDefaultAccount error: %v", err)
	}
	if len(seeder.created) != 1 || seeder.created[0] != "admin" {
		t.Fatalf("expected admin to be seeded, got %v", seeder.created)
	}
}

func TestEnsureDefaultAccount_SkipsWhenPresent(t *testing.T) {
	p := newTestProvisioner()
	seeder := &seederStub{exists: true}

	if err := p.EnsureDefaultAccount(context.Background(), seeder); err != nil {
		t.Fatalf("EnsureDefaultAccount error: %v", err)
	}
	if len(seeder.created) != 0 {
		t.Fatalf("expected no creation, got %v", seeder.created)
	}
}

func TestEnsureDefaultAccount_LostSeedRaceIsFine(t *testing.T) {
	p := newTestProvisioner()
	seeder := &seederStub{exists: false, createErr: common.ErrDuplicateAccount}

	if err := p.EnsureDefaultAccount(context.Background(), seeder); err != nil {
		t.Fatalf("duplicate on seed must not be an error, got %v", err)
	}
}

func TestEnsureDefaultAccount_PropagatesFailures(t *testing.T) {
	p := newTestProvisioner()

	err := p.EnsureDefaultAccount(context.Background(), &seederStub{existsErr: errors.New("db down")})
	if !errors.Is(err, common.ErrProvisioning) {
		t.Fatalf("want ErrProvisioning from exists failure, got %v", err)
	}

	err = p.EnsureDefaultAccount(context.Background(), &seederStub{createErr: errors.New("db down")})
	if !errors.Is(err, common.ErrProvisioning) {
		t.Fatalf("want ErrProvisioning from create failure, got %v", err)
	}
}

// The accounts migration must sort before the income one so the FK target
// always exists first.
func TestMigrations_AccountsBeforeIncome(t *testing.T) {
	entries, err := fs.Glob(migrations.Migrations, "*.sql")
	if err != nil {
		t.Fatalf("glob error: %v", err)
	}
	if len(entries) < 2 {
		t.Fatalf("expected at least two migrations, got %v", entries)
	}
	sort.Strings(entries)

	var accountsIdx, incomeIdx = -1, -1
	for i, name := range entries {
		data, err := fs.ReadFile(migrations.Migrations, name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		sql := string(data)
		if strings.Contains(sql, "CREATE TABLE IF NOT EXISTS accounts") {
			accountsIdx = i
		}
		if strings.Contains(sql, "CREATE TABLE IF NOT EXISTS income_records") {
			incomeIdx = i
			if !strings.Contains(sql, "REFERENCES accounts") {
				t.Fatalf("%s must reference accounts", name)
			}
		}
	}

	if accountsIdx == -1 || incomeIdx == -1 {
		t.Fatalf("missing expected migrations in %v", entries)
	}
	if accountsIdx > incomeIdx {
		t.Fatalf("accounts migration %d must precede income migration %d", accountsIdx, incomeIdx)
	}
}
