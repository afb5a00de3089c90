// Package syncer reconciles repository search results against local clones.
package syncer

import (
	"context"

	"github.com/rbowes/reposync/internal/vcs"
)

// VCS is the version-control capability the engine drives. This interface
// enables mocking git operations in unit tests.
type VCS interface {
	// Clone clones remoteURL into path, checking out branch.
	Clone(ctx context.Context, remoteURL, path, branch string) error

	// CheckoutBranch switches the clone at path to the given branch.
	CheckoutBranch(ctx context.Context, path, branch string) error

	// Pull updates the current branch of the clone at path from its
	// tracked remote. May return vcs.ErrAlreadyUpToDate, which callers
	// treat as success.
	Pull(ctx context.Context, path string) error
}

// Ensure the go-git client implements VCS.
var _ VCS = (*vcs.Client)(nil)
