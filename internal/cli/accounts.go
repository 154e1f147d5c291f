package cli

import (
	"context"
	"fmt"
	"time"
)

// Accounts prints the secret-free account listing, newest first.
func (a *App) Accounts(ctx context.Context) error {
	summaries, err := a.store.ListAccounts(ctx)
	if err != nil {
		a.log.Error(ctx, "listing accounts failed", "error", err.Error())
		fmt.Fprintln(a.out, "Failed to list accounts.")
		return err
	}

	for _, s := range summaries {
		lastLogin := "never"
		if s.LastLoginAt != nil {
			lastLogin = s.LastLoginAt.Format(time.DateTime)
		}
		fmt.Fprintf(a.out, "%4d  %-20s %-30s created %s, last login %s, active=%v\n",
			s.ID, s.Username, s.Email, s.CreatedAt.Format(time.DateOnly), lastLogin, s.Active)
	}
	fmt.Fprintf(a.out, "%d account(s)\n", len(summaries))
	return nil
}

// Count prints the number of active accounts.
func (a *App) Count(ctx context.Context) error {
	count, err := a.store.GetAccountCount(ctx)
	if err != nil {
		a.log.Error(ctx, "counting accounts failed", "error", err.Error())
		fmt.Fprintln(a.out, "Failed to count accounts.")
		return err
	}
	fmt.Fprintf(a.out, "%d active account(s)\n", count)
	return nil
}

// Forgot simulates the password-reset flow: it checks whether the email is
// registered and prints the demo message. No mail is actually sent.
func (a *App) Forgot(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter your email address", a.out)
	if err != nil {
		return err
	}

	exists, err := a.store.AccountExists(ctx, email)
	if err != nil {
		a.log.Error(ctx, "password reset lookup failed", "error", err.Error())
		fmt.Fprintln(a.out, "Could not check the email address, try again later.")
		return err
	}
	if !exists {
		fmt.Fprintln(a.out, "Email address not found in our system.")
		return nil
	}

	fmt.Fprintf(a.out, "Password reset instructions have been sent to %s\n(This is a demo - actual email delivery is not implemented)\n", email)
	return nil
}

// Ping probes database connectivity and reports the result.
func (a *App) Ping(ctx context.Context) error {
	if a.store.TestConnection(ctx) {
		fmt.Fprintln(a.out, "Database connection OK.")
	} else {
		fmt.Fprintln(a.out, "Database connection FAILED.")
	}
	return nil
}
