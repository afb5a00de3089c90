// Package query assembles GitHub repository search queries from ordered
// command-line criteria.
//
// Every term-producing flag appends into a single shared Builder so that
// terms keep the relative order they were given on the command line,
// regardless of which flag produced them. The archived and fork filters are
// always appended last, in that order.
package query

import (
	"errors"
	"fmt"
	"strings"
)

// Term format strings. Each substitutes the raw flag value into one
// placeholder.
const (
	// OrgFormat restricts results to an organisation.
	OrgFormat = "org:%s"

	// NameFormat matches a string against the repository name.
	NameFormat = "%s in:name"
)

// Boolean connectors inserted verbatim between terms.
const (
	ConnectorOr  = "OR"
	ConnectorNot = "NOT"
)

// ErrNoTerms is returned when a query is built without any user-supplied
// search criteria. The archived/fork defaults are always appended, so this
// must be checked before they are.
var ErrNoTerms = errors.New("at least one query term must be supplied")

// Builder accumulates query terms in the order they were supplied.
// The zero value is ready to use.
type Builder struct {
	terms []string
}

// Append adds a raw term to the end of the list.
func (b *Builder) Append(term string) {
	b.terms = append(b.terms, term)
}

// AppendFormat substitutes value into the given term format and appends
// the result.
func (b *Builder) AppendFormat(format, value string) {
	b.Append(fmt.Sprintf(format, value))
}

// Len returns the number of accumulated terms.
func (b *Builder) Len() int {
	return len(b.terms)
}

// Terms returns a copy of the accumulated terms.
func (b *Builder) Terms() []string {
	out := make([]string, len(b.terms))
	copy(out, b.terms)
	return out
}

// Build produces the final query string: the user-supplied terms in their
// original order, then exactly one archived:<bool> term and one fork:<bool>
// term, joined with single spaces.
//
// Returns ErrNoTerms if no user-supplied terms were accumulated.
func (b *Builder) Build(includeArchived, includeForks bool) (string, error) {
	if len(b.terms) == 0 {
		return "", ErrNoTerms
	}

	terms := make([]string, 0, len(b.terms)+2)
	terms = append(terms, b.terms...)
	terms = append(terms, fmt.Sprintf("archived:%t", includeArchived))
	terms = append(terms, fmt.Sprintf("fork:%t", includeForks))

	return strings.Join(terms, " "), nil
}
