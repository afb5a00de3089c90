package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rbowes/reposync/config"
	"github.com/rbowes/reposync/internal/ghclient"
	"github.com/rbowes/reposync/internal/log"
	"github.com/rbowes/reposync/internal/model"
	"github.com/rbowes/reposync/internal/query"
	"github.com/rbowes/reposync/internal/syncer"
	"github.com/rbowes/reposync/internal/vcs"
)

func runSync(cmd *cobra.Command, opts *Options) error {
	ctx := cmd.Context()

	log.Initialize(opts.Verbosity, cmd.ErrOrStderr())

	// Validate before touching config or network: the archived/fork
	// defaults are always appended, so the user terms must be checked here.
	if opts.Terms.Len() == 0 {
		_ = cmd.Usage()
		return query.ErrNoTerms
	}

	queryStr, err := opts.Terms.Build(opts.IncludeArchived, opts.IncludeForks)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Root == "" {
		opts.Root = cfg.Root
	}

	token, err := cfg.ResolveToken(opts.Token, opts.TokenFile)
	if err != nil {
		return err
	}

	client, err := ghclient.NewClient(ctx, token)
	if err != nil {
		return err
	}

	user, err := client.AuthenticatedUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to log into GitHub: %w", err)
	}
	log.Info("logged into github", "user", user)
	log.Info("query expression", "query", queryStr)

	repos, err := client.SearchRepositories(ctx, queryStr)
	if err != nil {
		return err
	}

	return syncRepositories(ctx, cmd.OutOrStdout(), cfg, opts, token, repos)
}

// syncRepositories processes the search results: sort (optional), dedup,
// filter, then reconcile each repository against the local filesystem.
func syncRepositories(ctx context.Context, out io.Writer, cfg *config.Config, opts *Options, token string, repos []model.Repository) error {
	// Sort before dedup so that which duplicate survives is deterministic.
	if opts.Sort {
		syncer.SortByName(repos)
	}
	repos = syncer.Dedup(repos)
	repos = syncer.FilterExcluded(repos, cfg.ExcludeRepos)

	names := make([]string, len(repos))
	for i, repo := range repos {
		names[i] = repo.Name
	}
	log.Info("repos found", "count", len(repos), "repos", strings.Join(names, ", "))

	if len(repos) == 0 {
		fmt.Fprintln(out, "No repositories matched the query.")
		return nil
	}

	var bar *pb.ProgressBar
	if showProgressBar(opts) {
		bar = pb.StartNew(len(repos))
	}

	gitClient := vcs.NewClient(vcs.WithToken(token))

	engine := syncer.NewEngine(gitClient, syncer.Options{
		Root:   opts.Root,
		DryRun: opts.DryRun,
		Update: opts.Update,
		OnResult: func(r syncer.Result) {
			if bar != nil {
				bar.Increment()
				return
			}
			printResult(out, r)
		},
	})

	summary := engine.Run(ctx, repos)
	if bar != nil {
		bar.Finish()
	}

	printSummary(out, summary)
	return nil
}

// showProgressBar enables the progress bar only when stdout is a terminal
// and logging would not interleave with it.
func showProgressBar(opts *Options) bool {
	if opts.Verbosity > 0 || opts.DryRun {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

var (
	foundColor   = color.New(color.FgCyan)
	syncedColor  = color.New(color.FgGreen)
	skippedColor = color.New(color.FgYellow)
	failedColor  = color.New(color.FgRed)
)

func printResult(w io.Writer, r syncer.Result) {
	switch r.Outcome {
	case syncer.OutcomeReported:
		foundColor.Fprintf(w, "Found repo: %s\n", r.Repo.FullName)
	case syncer.OutcomeCloned:
		syncedColor.Fprintf(w, "Cloned %s\n", r.Repo.FullName)
	case syncer.OutcomeUpdated:
		syncedColor.Fprintf(w, "Updated %s\n", r.Repo.FullName)
	case syncer.OutcomeSkipped:
		skippedColor.Fprintf(w, "Skipped %s (already cloned)\n", r.Repo.FullName)
	case syncer.OutcomeFailed:
		failedColor.Fprintf(w, "Failed %s: %v\n", r.Repo.FullName, r.Err)
	}
}

func printSummary(w io.Writer, summary *syncer.Summary) {
	fmt.Fprintf(w, "Processed %d repositories: %s\n", summary.Total(), summary)

	if summary.Failed > 0 {
		for _, r := range summary.Results {
			if r.Outcome == syncer.OutcomeFailed {
				failedColor.Fprintf(w, "  %s: %v\n", r.Repo.FullName, r.Err)
			}
		}
	}
}
