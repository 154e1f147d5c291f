package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// AddIncome prompts for an income entry and records it for the logged-in
// account. The category menu mirrors the desktop dropdown; entering free
// text instead of a number is also accepted.
func (a *App) AddIncome(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please login first.")
		return nil
	}

	amountText, err := GetSimpleText(a.reader, "Enter amount", a.out)
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(amountText)
	if err != nil || !amount.IsPositive() {
		fmt.Fprintln(a.out, "Please enter a valid positive amount.")
		return nil
	}

	for i, c := range incomeCategories {
		fmt.Fprintf(a.out, "  %d. %s\n", i+1, c)
	}
	category, err := GetSimpleText(a.reader, "Choose a category (number or text)", a.out)
	if err != nil {
		return err
	}
	if n, convErr := strconv.Atoi(category); convErr == nil && n >= 1 && n <= len(incomeCategories) {
		category = incomeCategories[n-1]
	}
	if category == "" {
		fmt.Fprintln(a.out, "Category is required.")
		return nil
	}

	dateText, err := GetSimpleText(a.reader, "Enter date (YYYY-MM-DD, empty for today)", a.out)
	if err != nil {
		return err
	}
	incomeDate := time.Now()
	if dateText != "" {
		incomeDate, err = time.Parse(time.DateOnly, dateText)
		if err != nil {
			fmt.Fprintln(a.out, "Please enter the date as YYYY-MM-DD.")
			return nil
		}
	}

	if _, err := a.store.RecordIncome(ctx, a.accountID, amount, category, incomeDate); err != nil {
		a.log.Error(ctx, "saving income failed", "error", err.Error())
		fmt.Fprintln(a.out, "Failed to save income entry.")
		return err
	}

	fmt.Fprintf(a.out, "Income saved: %s, %s, %s\n",
		amount.StringFixed(2), category, incomeDate.Format(time.DateOnly))
	return nil
}
