package cmd

import (
	"github.com/rbowes/reposync/internal/query"
)

// Options holds the command-line options for the reposync CLI.
type Options struct {
	// Terms accumulates query terms in command-line order. Every
	// term-producing flag appends into this one builder.
	Terms query.Builder

	IncludeArchived bool
	IncludeForks    bool
	DryRun          bool
	Update          bool
	Sort            bool

	Token     string
	TokenFile string
	Root      string

	Verbosity int
}
