// Package store owns all reads and writes of account and income data. Every
// operation is self-contained: it borrows a connection from the pool for one
// statement (or a short fixed sequence) and releases it on every exit path,
// so the Store is safe for concurrent callers.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/takatracker/takatracker/internal/common"
	"github.com/takatracker/takatracker/internal/dbx"
	"github.com/takatracker/takatracker/internal/logging"
	"github.com/takatracker/takatracker/internal/passhash"
)

// uniqueViolation is the SQLSTATE Postgres reports when an INSERT breaks a
// unique constraint.
const uniqueViolation = "23505"

type Store struct {
	db     dbx.DBTX
	hasher passhash.Hasher
	log    logging.Logger
}

func New(db dbx.DBTX, hasher passhash.Hasher, log logging.Logger) *Store {
	return &Store{db: db, hasher: hasher, log: log}
}

// TestConnection is a liveness probe. It reports false on any failure and
// never returns an error.
func (s *Store) TestConnection(ctx context.Context) bool {
	var one int
	if err := s.db.QueryRowContext(ctx, `SELECT 1`).Scan(&one); err != nil {
		return false
	}
	return one == 1
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, common.ErrStore, err)
}
