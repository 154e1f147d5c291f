package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/takatracker/takatracker/internal/common"
	"github.com/takatracker/takatracker/internal/passhash"
)

// CreateAccount generates a fresh salt, hashes the password, and inserts a
// new account row. It returns true on a successful single-row insert.
//
// A username or email collision surfaces as common.ErrDuplicateAccount; the
// unique constraints on the table are the source of truth, so two concurrent
// registrations cannot both succeed. Any other failure wraps
// common.ErrStore.
func (s *Store) CreateAccount(ctx context.Context, username, email, password string) (bool, error) {
	if username == "" || email == "" || password == "" {
		return false, storeErr("create account", errors.New("username, email and password are required"))
	}

	salt, err := passhash.GenerateSalt()
	if err != nil {
		return false, storeErr("create account", err)
	}
	hash := s.hasher.Hash(password, salt)

	query :=
		`INSERT INTO accounts (username, email, password_hash, salt)
		 VALUES ($1, $2, $3, $4)
		 `

	if _, err := s.db.ExecContext(ctx, query, username, email, hash, salt); err != nil {
		if isUniqueViolation(err) {
			return false, fmt.Errorf("create account: %w", common.ErrDuplicateAccount)
		}
		return false, storeErr("create account", err)
	}

	return true, nil
}

// ValidateLogin checks password against the stored hash of the active
// account whose username or email equals identifier. An unknown identifier,
// an inactive account, and a wrong password all yield (false, nil) — the
// result never reveals whether the account exists.
//
// On a successful match, last_login_at is updated best-effort: a failing
// update is logged and does not fail the validation.
func (s *Store) ValidateLogin(ctx context.Context, identifier, password string) (bool, error) {
	query :=
		`SELECT id, password_hash, salt FROM accounts
		 WHERE (username = $1 OR email = $1) AND active = TRUE
		 `

	var (
		id   int64
		hash string
		salt string
	)
	err := s.db.QueryRowContext(ctx, query, identifier).Scan(&id, &hash, &salt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, storeErr("validate login", err)
	}

	if !s.hasher.Verify(password, salt, hash) {
		return false, nil
	}

	if _, err := s.db.ExecContext(ctx,
		`UPDATE accounts SET last_login_at = now() WHERE id = $1`, id); err != nil {
		s.log.Warn(ctx, "failed to update last login", "account_id", id, "error", err.Error())
	}

	return true, nil
}

// AccountExists reports whether any account, active or not, matches
// identifier by username or email.
func (s *Store) AccountExists(ctx context.Context, identifier string) (bool, error) {
	query :=
		`SELECT EXISTS (
		   SELECT 1 FROM accounts WHERE username = $1 OR email = $1
		 )`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, identifier).Scan(&exists); err != nil {
		return false, storeErr("account exists", err)
	}
	return exists, nil
}

// GetAccountID returns the id of the active account matching identifier.
// Absence is a normal outcome: (0, false, nil).
func (s *Store) GetAccountID(ctx context.Context, identifier string) (int64, bool, error) {
	query :=
		`SELECT id FROM accounts
		 WHERE (username = $1 OR email = $1) AND active = TRUE
		 `

	var id int64
	err := s.db.QueryRowContext(ctx, query, identifier).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, storeErr("get account id", err)
	}
	return id, true, nil
}

// GetAccountCount returns the number of active accounts.
func (s *Store) GetAccountCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM accounts WHERE active = TRUE`).Scan(&count)
	if err != nil {
		return 0, storeErr("get account count", err)
	}
	return count, nil
}

// ListAccounts returns a secret-free summary of every account, newest first.
func (s *Store) ListAccounts(ctx context.Context) ([]AccountSummary, error) {
	query :=
		`SELECT id, username, email, created_at, last_login_at, active
		 FROM accounts
		 ORDER BY created_at DESC
		 `

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storeErr("list accounts", err)
	}
	defer rows.Close()

	var summaries []AccountSummary
	for rows.Next() {
		var (
			a         AccountSummary
			lastLogin sql.NullTime
		)
		if err := rows.Scan(&a.ID, &a.Username, &a.Email, &a.CreatedAt, &lastLogin, &a.Active); err != nil {
			return nil, storeErr("list accounts", err)
		}
		if lastLogin.Valid {
			t := lastLogin.Time
			a.LastLoginAt = &t
		}
		summaries = append(summaries, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list accounts", err)
	}

	return summaries, nil
}
