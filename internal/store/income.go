package store

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// RecordIncome appends an income record for accountID. The amount must be
// positive and the category non-empty; both are enforced here even though
// the caller validates first. A nonexistent accountID surfaces as a
// foreign-key violation wrapped in common.ErrStore.
func (s *Store) RecordIncome(ctx context.Context, accountID int64, amount decimal.Decimal, category string, incomeDate time.Time) (bool, error) {
	if !amount.IsPositive() {
		return false, storeErr("record income", errors.New("amount must be positive"))
	}
	if category == "" {
		return false, storeErr("record income", errors.New("category is required"))
	}

	query :=
		`INSERT INTO income_records (account_id, amount, category, income_date)
		 VALUES ($1, $2, $3, $4)
		 `

	// income_date is a calendar date; drop the time component explicitly.
	if _, err := s.db.ExecContext(ctx, query,
		accountID, amount, category, incomeDate.Format(time.DateOnly)); err != nil {
		return false, storeErr("record income", err)
	}

	return true, nil
}
