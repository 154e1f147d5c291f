// Package cli implements the interactive terminal front-end: a thin
// presentation shell that drives the core store through its public
// operations. All business rules live in the store; this package only
// prompts, validates form input, and prints results.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/takatracker/takatracker/internal/logging"
	"github.com/takatracker/takatracker/internal/store"
)

// Store is the slice of the core the front-end drives.
type Store interface {
	CreateAccount(ctx context.Context, username, email, password string) (bool, error)
	ValidateLogin(ctx context.Context, identifier, password string) (bool, error)
	AccountExists(ctx context.Context, identifier string) (bool, error)
	GetAccountID(ctx context.Context, identifier string) (int64, bool, error)
	GetAccountCount(ctx context.Context) (int, error)
	ListAccounts(ctx context.Context) ([]store.AccountSummary, error)
	RecordIncome(ctx context.Context, accountID int64, amount decimal.Decimal, category string, incomeDate time.Time) (bool, error)
	TestConnection(ctx context.Context) bool
}

// incomeCategories mirrors the category dropdown of the desktop app the
// console replaces. Free text is still accepted.
var incomeCategories = []string{
	"Salary and wages",
	"Freelance or side income",
	"Rental income",
}

type App struct {
	store  Store
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer

	// login state
	accountID int64
	username  string
}

func NewApp(s Store, log logging.Logger) *App {
	return &App{
		store:  s,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) isLoggedIn() bool {
	return a.accountID != 0
}

func (a *App) status() string {
	if a.isLoggedIn() {
		return a.username
	}
	return "not logged in"
}

// Run starts the interactive loop and blocks until the user exits or input
// reaches EOF. Commands and prompts share one buffered reader so no typed
// input is lost between them.
func (a *App) Run(ctx context.Context) {
	runREPL(ctx, a, a.status, a.reader, a.out)
}
