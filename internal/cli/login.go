package cli

import (
	"context"
	"fmt"

	"github.com/takatracker/takatracker/internal/common"
)

// Login prompts for an identifier (username or email) and a password and
// validates them against the store. Invalid credentials get one generic
// message regardless of the reason.
func (a *App) Login(ctx context.Context) error {
	identifier, err := GetSimpleText(a.reader, "Enter username or email", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if identifier == "" || len(password) == 0 {
		fmt.Fprintln(a.out, "Please enter both username/email and password.")
		return nil
	}

	ok, err := a.store.ValidateLogin(ctx, identifier, string(password))
	if err != nil {
		a.log.Error(ctx, "login failed", "error", err.Error())
		fmt.Fprintln(a.out, "Login failed, try again later.")
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Invalid username/email or password.")
		return nil
	}

	id, found, err := a.store.GetAccountID(ctx, identifier)
	if err != nil || !found {
		a.log.Error(ctx, "account id lookup failed after login", "identifier", identifier)
		fmt.Fprintln(a.out, "Login failed, try again later.")
		return err
	}

	a.accountID = id
	a.username = identifier
	fmt.Fprintf(a.out, "Welcome, %s!\n", identifier)
	return nil
}

// Logout clears the login state.
func (a *App) Logout(ctx context.Context) error {
	a.accountID = 0
	a.username = ""
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
