package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/takatracker/takatracker/internal/common"
)

// Register prompts for new account details and creates the account. The
// form rules match the desktop registration screen: username at least 3
// characters, password at least 6, confirmation must match, nothing blank.
func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	if len(username) < 3 {
		fmt.Fprintln(a.out, "Username must be at least 3 characters.")
		return nil
	}

	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	if email == "" {
		fmt.Fprintln(a.out, "Email is required.")
		return nil
	}

	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if len(password) < 6 {
		fmt.Fprintln(a.out, "Password must be at least 6 characters.")
		return nil
	}

	confirm, err := GetPassword("Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(password) != string(confirm) {
		fmt.Fprintln(a.out, "Passwords do not match.")
		return nil
	}

	if _, err := a.store.CreateAccount(ctx, username, email, string(password)); err != nil {
		if errors.Is(err, common.ErrDuplicateAccount) {
			fmt.Fprintln(a.out, "Failed to create account. Username or email may already exist.")
			return nil
		}
		a.log.Error(ctx, "registration failed", "error", err.Error())
		fmt.Fprintln(a.out, "Failed to create account.")
		return err
	}

	fmt.Fprintln(a.out, "Account created successfully! You can now login.")
	return nil
}
