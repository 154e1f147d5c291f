// Package common defines shared sentinel errors and small helpers used
// across the Takatracker core. Callers should use errors.Is to match the
// sentinels; causes are chained with fmt.Errorf("%w: %w", ...).
package common

import "errors"

var (
	// ErrNotFound is a repository-level sentinel. Public lookup operations
	// translate it into zero-value results; it never crosses the package
	// boundary as an error.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateAccount reports a username or email uniqueness violation
	// on account creation. Recoverable: the caller surfaces it to the user.
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrProvisioning reports a database or schema setup failure.
	// Fatal to startup.
	ErrProvisioning = errors.New("provisioning failed")

	// ErrStore reports any other persistence failure. Not retried
	// internally.
	ErrStore = errors.New("store failure")
)
