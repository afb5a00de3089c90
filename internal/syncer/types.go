package syncer

import (
	"fmt"
	"strings"

	"github.com/rbowes/reposync/internal/model"
)

// Outcome is the per-repository result of one reconciliation.
type Outcome int

const (
	// OutcomeCloned means the repository was cloned fresh.
	OutcomeCloned Outcome = iota

	// OutcomeUpdated means an existing clone was checked out and pulled.
	OutcomeUpdated

	// OutcomeSkipped means an existing clone was left alone (--update absent).
	OutcomeSkipped

	// OutcomeReported means dry-run reported the action without mutating.
	OutcomeReported

	// OutcomeFailed means clone or update failed; the error is recorded and
	// the batch continues.
	OutcomeFailed
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeCloned:
		return "cloned"
	case OutcomeUpdated:
		return "updated"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeReported:
		return "reported"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result records the reconciliation of a single repository.
type Result struct {
	Repo    model.Repository
	Outcome Outcome

	// Err is set when Outcome is OutcomeFailed.
	Err error
}

// Summary aggregates the results of one run.
type Summary struct {
	Results []Result

	Cloned   int
	Updated  int
	Skipped  int
	Reported int
	Failed   int
}

func (s *Summary) add(r Result) {
	s.Results = append(s.Results, r)

	switch r.Outcome {
	case OutcomeCloned:
		s.Cloned++
	case OutcomeUpdated:
		s.Updated++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeReported:
		s.Reported++
	case OutcomeFailed:
		s.Failed++
	}
}

// Total returns the number of repositories processed.
func (s *Summary) Total() int {
	return len(s.Results)
}

// String renders the non-zero outcome counts, e.g. "2 cloned, 1 skipped".
func (s *Summary) String() string {
	parts := make([]string, 0, 5)
	appendCount := func(n int, label string) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, label))
		}
	}
	appendCount(s.Cloned, "cloned")
	appendCount(s.Updated, "updated")
	appendCount(s.Skipped, "skipped")
	appendCount(s.Reported, "reported")
	appendCount(s.Failed, "failed")

	if len(parts) == 0 {
		return "nothing to do"
	}
	return strings.Join(parts, ", ")
}
