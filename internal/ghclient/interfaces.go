// Package ghclient provides the GitHub repository search capability.
package ghclient

import (
	"context"

	"github.com/rbowes/reposync/internal/model"
)

// RepositorySearcher defines the search capability consumed by the sync
// command. This interface enables mocking the GitHub API in unit tests.
type RepositorySearcher interface {
	// AuthenticatedUser returns the login of the token's user.
	AuthenticatedUser(ctx context.Context) (string, error)

	// SearchRepositories returns the repositories matching the query string.
	SearchRepositories(ctx context.Context, query string) ([]model.Repository, error)
}

// Ensure Client implements RepositorySearcher.
var _ RepositorySearcher = (*Client)(nil)
