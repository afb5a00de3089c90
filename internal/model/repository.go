// Package model defines the repository record shared between the search
// client and the sync engine.
package model

// Repository is a single search result. Identity for dedup and for the
// local clone directory is FullName (owner/name). Records are immutable
// once fetched.
type Repository struct {
	// Name is the display name (repository name without owner).
	Name string

	// FullName is the canonical owner/name identity.
	FullName string

	// Owner is the login of the owning user or organisation.
	Owner string

	// DefaultBranch is the branch a clone checks out and an update
	// resynchronises to before pulling.
	DefaultBranch string

	// CloneURL is the HTTPS clone URL.
	CloneURL string

	// HTMLURL is the web URL, used for display only.
	HTMLURL string

	Archived bool
	Fork     bool
}
