// Package vcs provides the local version-control capability backed by
// go-git: clone, branch checkout, and pull against existing clones.
package vcs

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

// DefaultRemoteName is the remote pulls synchronise against.
const DefaultRemoteName = "origin"

// DefaultTimeout bounds a single clone or pull. Network operations get one
// attempt and no retries, so a hung transfer would otherwise hang the run.
const DefaultTimeout = 10 * time.Minute

// Client performs git operations against local clone directories.
type Client struct {
	token   string
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the token used for HTTPS remote authentication.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithTimeout overrides the per-operation timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a git client with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// opContext bounds a single network operation with the configured timeout.
func (c *Client) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}

// authFor returns the auth method for a remote URL. Token auth only applies
// to HTTP(S) transports; other transports (file, ssh) get no auth here.
func (c *Client) authFor(remoteURL string) transport.AuthMethod {
	if c.token == "" {
		return nil
	}
	if !strings.HasPrefix(remoteURL, "http://") && !strings.HasPrefix(remoteURL, "https://") {
		return nil
	}
	// Username is ignored by GitHub for token auth but must be non-empty.
	return &githttp.BasicAuth{
		Username: "git",
		Password: c.token,
	}
}

// Clone clones remoteURL into path, checking out the given branch.
func (c *Client) Clone(ctx context.Context, remoteURL, path, branch string) error {
	if remoteURL == "" {
		return errors.New("remote URL cannot be empty")
	}

	ctx, cancel := c.opContext(ctx)
	defer cancel()

	cloneOpts := &git.CloneOptions{
		URL:        remoteURL,
		RemoteName: DefaultRemoteName,
		Auth:       c.authFor(remoteURL),
	}
	if branch != "" {
		cloneOpts.ReferenceName = plumbing.NewBranchReferenceName(branch)
	}

	if _, err := git.PlainCloneContext(ctx, path, false, cloneOpts); err != nil {
		if errors.Is(err, transport.ErrAuthenticationRequired) {
			return wrapError(ErrAuthRequired, "failed to clone repository")
		}
		return wrapError(err, "failed to clone repository")
	}

	return nil
}

// CheckoutBranch switches the clone at path to the given local branch.
func (c *Client) CheckoutBranch(ctx context.Context, path, branch string) error {
	if branch == "" {
		return errors.New("branch name cannot be empty")
	}

	repo, err := git.PlainOpen(path)
	if err != nil {
		return wrapError(err, "failed to open repository")
	}

	branchRef := plumbing.NewBranchReferenceName(branch)
	if _, err := repo.Reference(branchRef, true); err != nil {
		return wrapError(ErrBranchMissing, "failed to checkout branch "+branch)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return wrapError(err, "failed to get worktree")
	}

	if err := worktree.Checkout(&git.CheckoutOptions{Branch: branchRef}); err != nil {
		return wrapError(err, "failed to checkout branch "+branch)
	}

	return nil
}

// Pull fast-forwards the current branch of the clone at path from its
// tracked remote. Returns ErrAlreadyUpToDate when there is nothing to pull.
func (c *Client) Pull(ctx context.Context, path string) error {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return wrapError(err, "failed to open repository")
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return wrapError(err, "failed to get worktree")
	}

	pullOpts := &git.PullOptions{
		RemoteName: DefaultRemoteName,
	}

	// Resolve the remote URL to decide on auth.
	if remote, remoteErr := repo.Remote(DefaultRemoteName); remoteErr == nil {
		if urls := remote.Config().URLs; len(urls) > 0 {
			pullOpts.Auth = c.authFor(urls[0])
		}
	}

	ctx, cancel := c.opContext(ctx)
	defer cancel()

	if err := worktree.PullContext(ctx, pullOpts); err != nil {
		switch {
		case errors.Is(err, git.NoErrAlreadyUpToDate):
			return ErrAlreadyUpToDate
		case errors.Is(err, git.ErrNonFastForwardUpdate):
			return wrapError(ErrNotFastForward, "failed to pull")
		case errors.Is(err, transport.ErrAuthenticationRequired):
			return wrapError(ErrAuthRequired, "failed to pull")
		}
		return wrapError(err, "failed to pull")
	}

	return nil
}
