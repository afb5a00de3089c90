package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rbowes/reposync/internal/query"
)

// New creates the root command.
func New() *cobra.Command {
	rootCmd, _ := newRoot()
	return rootCmd
}

// newRoot builds the root command and exposes its options for tests.
func newRoot() (*cobra.Command, *Options) {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "reposync",
		Short: "Synchronise GitHub repositories locally",
		Long: `Searches GitHub for repositories matching a query built from the
given criteria and makes sure each match has a local clone under the
clone root. Existing clones are skipped unless --update is given, in
which case the default branch is checked out and pulled.`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, opts)
		},
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	addSyncFlags(rootCmd, opts)

	rootCmd.AddCommand(NewCmdVersion())

	return rootCmd, opts
}

// addSyncFlags adds the sync flags to a command.
func addSyncFlags(cmd *cobra.Command, opts *Options) {
	flags := cmd.Flags()

	flags.Var(newTermFlag(&opts.Terms, query.OrgFormat), "org", "GitHub organisation to search (repeatable)")
	flags.Var(newTermFlag(&opts.Terms, query.NameFormat), "name", "String to match against repository name (repeatable)")
	flags.Var(newConnectorFlag(&opts.Terms, query.ConnectorOr), "or", "Insert an OR between query terms")
	flags.Var(newConnectorFlag(&opts.Terms, query.ConnectorNot), "not", "Insert a NOT between query terms")

	// Connector flags take no argument.
	flags.Lookup("or").NoOptDefVal = "true"
	flags.Lookup("not").NoOptDefVal = "true"

	flags.BoolVar(&opts.IncludeArchived, "archived", false, "Search archived repositories instead of non-archived")
	flags.BoolVar(&opts.IncludeForks, "fork", false, "Include forks (excluded by default)")
	flags.BoolVar(&opts.DryRun, "dry-run", false, "Report matches but do not clone or update")
	flags.BoolVar(&opts.Update, "update", false, "Update repos that are already cloned (skipped by default)")
	flags.BoolVar(&opts.Sort, "sort", false, "Sort matched repositories by name before processing")

	flags.StringVar(&opts.Token, "token", "", "GitHub auth token")
	flags.StringVar(&opts.TokenFile, "token-file", "", "File from which to read the GitHub auth token (default ~/.github_token)")
	flags.StringVar(&opts.Root, "root", "", "Directory to clone repositories under (default from config, else .)")

	flags.CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug)")
}
