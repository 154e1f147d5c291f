package store

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a registered credential record. PasswordHash and Salt never
// leave this package.
type Account struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Salt         string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
	Active       bool
}

// AccountSummary is the secret-free projection returned by ListAccounts.
type AccountSummary struct {
	ID          int64
	Username    string
	Email       string
	CreatedAt   time.Time
	LastLoginAt *time.Time
	Active      bool
}

// IncomeRecord is a single dated monetary entry attributed to one account.
// Records are append-only: never updated or deleted.
type IncomeRecord struct {
	ID         int64
	AccountID  int64
	Amount     decimal.Decimal
	Category   string
	IncomeDate time.Time
	CreatedAt  time.Time
}
