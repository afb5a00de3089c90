package ghclient

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/rbowes/reposync/internal/log"
	"github.com/rbowes/reposync/internal/model"
)

// Client wraps the GitHub API client.
type Client struct {
	client *gh.Client
	// token is intentionally unexported. NEVER add String(), MarshalJSON(),
	// or any method that could expose this value in logs or serialized output.
	token string
}

// NewClient creates a new GitHub client using a personal access token.
func NewClient(ctx context.Context, token string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("GitHub token not provided")
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	// Wrap transport with rate limit handling
	tc.Transport = &rateLimitTransport{
		base: tc.Transport,
	}

	return &Client{
		client: gh.NewClient(tc),
		token:  token,
	}, nil
}

// AuthenticatedUser returns the authenticated user's login.
func (c *Client) AuthenticatedUser(ctx context.Context) (string, error) {
	user, _, err := c.client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to get authenticated user: %w", err)
	}
	return user.GetLogin(), nil
}

// SearchRepositories runs a repository search and returns all matching
// records across pages. Results may contain duplicates when a repository
// matches more than one query clause; the sync engine deduplicates.
func (c *Client) SearchRepositories(ctx context.Context, query string) ([]model.Repository, error) {
	opts := &gh.SearchOptions{
		ListOptions: gh.ListOptions{
			PerPage: 100,
		},
	}

	var repos []model.Repository

	for {
		result, resp, err := c.client.Search.Repositories(ctx, query, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to search repositories: %w", err)
		}

		for _, repo := range result.Repositories {
			repos = append(repos, repoFromSearch(repo))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		log.Debug("fetching next search page", "page", opts.Page)
	}

	return repos, nil
}

// repoFromSearch converts a GitHub search result to a model.Repository.
func repoFromSearch(repo *gh.Repository) model.Repository {
	return model.Repository{
		Name:          repo.GetName(),
		FullName:      repo.GetFullName(),
		Owner:         repo.GetOwner().GetLogin(),
		DefaultBranch: repo.GetDefaultBranch(),
		CloneURL:      repo.GetCloneURL(),
		HTMLURL:       repo.GetHTMLURL(),
		Archived:      repo.GetArchived(),
		Fork:          repo.GetFork(),
	}
}
