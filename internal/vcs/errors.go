package vcs

import (
	"errors"
	"fmt"
)

// Sentinel errors that can be checked with errors.Is(). These wrap
// underlying go-git errors while providing a stable API for consumers.

// ErrAlreadyUpToDate is returned by Pull when the local clone already
// matches the remote. Callers treat this as a successful update.
var ErrAlreadyUpToDate = errors.New("already up to date")

// ErrAuthRequired is returned when an operation requires authentication
// but no credentials were provided or available.
var ErrAuthRequired = errors.New("authentication required")

// ErrBranchMissing is returned when attempting to check out a branch that
// does not exist in the local clone.
var ErrBranchMissing = errors.New("branch does not exist")

// ErrNotFastForward is returned when a pull cannot be performed as a
// fast-forward merge and requires manual conflict resolution.
var ErrNotFastForward = errors.New("not a fast-forward")

// wrapError wraps an error with additional context while preserving the
// ability to check against sentinel errors using errors.Is().
func wrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
