package syncer

import (
	"sort"

	"github.com/rbowes/reposync/internal/log"
	"github.com/rbowes/reposync/internal/model"
)

// SortByName sorts repositories ascending by display name. The sort is
// stable so that records whose names collide (same name, different owner)
// keep their original relative order; combined with Dedup this makes the
// surviving duplicate deterministic.
func SortByName(repos []model.Repository) {
	sort.SliceStable(repos, func(i, j int) bool {
		return repos[i].Name < repos[j].Name
	})
}

// Dedup drops repositories already seen by full name, first occurrence
// wins. Survivor order matches input order.
func Dedup(repos []model.Repository) []model.Repository {
	seen := make(map[string]struct{}, len(repos))
	out := make([]model.Repository, 0, len(repos))

	for _, repo := range repos {
		if _, ok := seen[repo.FullName]; ok {
			log.Debug("dropping duplicate search result", "repo", repo.FullName)
			continue
		}
		seen[repo.FullName] = struct{}{}
		out = append(out, repo)
	}

	return out
}

// FilterExcluded drops repositories whose full name appears in the
// configured exclude list.
func FilterExcluded(repos []model.Repository, excluded []string) []model.Repository {
	if len(excluded) == 0 {
		return repos
	}

	skip := make(map[string]struct{}, len(excluded))
	for _, name := range excluded {
		skip[name] = struct{}{}
	}

	out := make([]model.Repository, 0, len(repos))
	for _, repo := range repos {
		if _, ok := skip[repo.FullName]; ok {
			log.Info("excluding repository", "repo", repo.FullName)
			continue
		}
		out = append(out, repo)
	}

	return out
}
