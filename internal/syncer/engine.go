package syncer

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/rbowes/reposync/internal/log"
	"github.com/rbowes/reposync/internal/model"
	"github.com/rbowes/reposync/internal/vcs"
)

// Options configures a sync engine.
type Options struct {
	// Root is the directory local clones live under. A repository's clone
	// path is Root joined with its full name.
	Root string

	// DryRun reports intended actions without touching the filesystem.
	DryRun bool

	// Update checks out the default branch and pulls existing clones
	// instead of skipping them.
	Update bool

	// OnResult, if set, is called after each repository is reconciled.
	OnResult func(Result)
}

// Engine drives per-repository reconciliation. Repositories are processed
// sequentially; each one is an independent unit of work, so a failure is
// recorded in its Result and the batch continues.
type Engine struct {
	vcs  VCS
	opts Options
}

// NewEngine creates an engine using the given version-control capability.
func NewEngine(v VCS, opts Options) *Engine {
	return &Engine{vcs: v, opts: opts}
}

// Run reconciles every repository in order and returns the run summary.
func (e *Engine) Run(ctx context.Context, repos []model.Repository) *Summary {
	summary := &Summary{}

	for _, repo := range repos {
		result := e.reconcile(ctx, repo)
		if result.Err != nil {
			log.Error("sync failed", "repo", repo.FullName, "error", result.Err)
		}
		summary.add(result)
		if e.opts.OnResult != nil {
			e.opts.OnResult(result)
		}
	}

	return summary
}

// ClonePath returns the local clone directory for a repository.
func (e *Engine) ClonePath(repo model.Repository) string {
	return filepath.Join(e.opts.Root, filepath.FromSlash(repo.FullName))
}

// reconcile decides and executes one of clone, update, skip, or report for
// a single repository.
//
// The directory-exists check and the action that follows are not atomic
// with respect to concurrent filesystem changes. Single-invocation use is
// assumed, so the window is accepted rather than locked around.
func (e *Engine) reconcile(ctx context.Context, repo model.Repository) Result {
	path := e.ClonePath(repo)
	exists := dirExists(path)

	switch {
	case !exists && e.opts.DryRun:
		log.Debug("working dir not found, would clone", "repo", repo.FullName, "path", path)
		return Result{Repo: repo, Outcome: OutcomeReported}

	case !exists:
		log.Debug("working dir not found, cloning", "repo", repo.FullName, "branch", repo.DefaultBranch)
		if err := e.vcs.Clone(ctx, repo.CloneURL, path, repo.DefaultBranch); err != nil {
			return Result{Repo: repo, Outcome: OutcomeFailed, Err: err}
		}
		return Result{Repo: repo, Outcome: OutcomeCloned}

	case !e.opts.Update:
		log.Info("working dir exists, skipping", "repo", repo.FullName)
		return Result{Repo: repo, Outcome: OutcomeSkipped}

	case e.opts.DryRun:
		log.Debug("working dir exists, would update", "repo", repo.FullName)
		return Result{Repo: repo, Outcome: OutcomeReported}

	default:
		log.Info("working dir exists, updating", "repo", repo.FullName)
		if err := e.update(ctx, repo, path); err != nil {
			return Result{Repo: repo, Outcome: OutcomeFailed, Err: err}
		}
		return Result{Repo: repo, Outcome: OutcomeUpdated}
	}
}

// update resynchronises an existing clone: check out the default branch,
// then pull from the tracked remote.
func (e *Engine) update(ctx context.Context, repo model.Repository, path string) error {
	if repo.DefaultBranch != "" {
		log.Debug("checking out default branch", "repo", repo.FullName, "branch", repo.DefaultBranch)
		if err := e.vcs.CheckoutBranch(ctx, path, repo.DefaultBranch); err != nil {
			return err
		}
	}

	log.Debug("pulling", "repo", repo.FullName)
	if err := e.vcs.Pull(ctx, path); err != nil {
		if errors.Is(err, vcs.ErrAlreadyUpToDate) {
			log.Debug("already up to date", "repo", repo.FullName)
			return nil
		}
		return err
	}

	return nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
