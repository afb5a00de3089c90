package syncer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbowes/reposync/internal/model"
	"github.com/rbowes/reposync/internal/vcs"
)

type vcsCall struct {
	op     string
	path   string
	branch string
}

// fakeVCS records operations and returns injected errors keyed by path.
type fakeVCS struct {
	calls       []vcsCall
	cloneErr    map[string]error
	checkoutErr map[string]error
	pullErr     map[string]error
}

func (f *fakeVCS) Clone(_ context.Context, _, path, branch string) error {
	f.calls = append(f.calls, vcsCall{op: "clone", path: path, branch: branch})
	return f.cloneErr[path]
}

func (f *fakeVCS) CheckoutBranch(_ context.Context, path, branch string) error {
	f.calls = append(f.calls, vcsCall{op: "checkout", path: path, branch: branch})
	return f.checkoutErr[path]
}

func (f *fakeVCS) Pull(_ context.Context, path string) error {
	f.calls = append(f.calls, vcsCall{op: "pull", path: path})
	return f.pullErr[path]
}

func testRepo(fullName, branch string) model.Repository {
	return model.Repository{
		Name:          filepath.Base(fullName),
		FullName:      fullName,
		DefaultBranch: branch,
		CloneURL:      "https://github.com/" + fullName + ".git",
	}
}

func mkClone(t *testing.T, root, fullName string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(fullName)), 0o755))
}

func TestReconcileClonesWhenAbsent(t *testing.T) {
	root := t.TempDir()
	fake := &fakeVCS{}
	engine := NewEngine(fake, Options{Root: root})

	summary := engine.Run(context.Background(), []model.Repository{testRepo("acme/widgets", "main")})

	require.Len(t, fake.calls, 1)
	assert.Equal(t, "clone", fake.calls[0].op)
	assert.Equal(t, filepath.Join(root, "acme", "widgets"), fake.calls[0].path)
	assert.Equal(t, "main", fake.calls[0].branch)

	assert.Equal(t, 1, summary.Cloned)
	assert.Equal(t, OutcomeCloned, summary.Results[0].Outcome)
}

func TestReconcileSkipsWhenPresentWithoutUpdate(t *testing.T) {
	root := t.TempDir()
	mkClone(t, root, "acme/widgets")

	fake := &fakeVCS{}
	engine := NewEngine(fake, Options{Root: root})

	summary := engine.Run(context.Background(), []model.Repository{testRepo("acme/widgets", "main")})

	assert.Empty(t, fake.calls)
	assert.Equal(t, 1, summary.Skipped)
}

func TestReconcileSkipsWhenPresentWithoutUpdateEvenOnDryRun(t *testing.T) {
	root := t.TempDir()
	mkClone(t, root, "acme/widgets")

	fake := &fakeVCS{}
	engine := NewEngine(fake, Options{Root: root, DryRun: true})

	summary := engine.Run(context.Background(), []model.Repository{testRepo("acme/widgets", "main")})

	assert.Empty(t, fake.calls)
	assert.Equal(t, 1, summary.Skipped)
}

func TestReconcileUpdatesWhenPresent(t *testing.T) {
	root := t.TempDir()
	mkClone(t, root, "acme/widgets")

	fake := &fakeVCS{}
	engine := NewEngine(fake, Options{Root: root, Update: true})

	summary := engine.Run(context.Background(), []model.Repository{testRepo("acme/widgets", "main")})

	// Checkout of the default branch, then pull. No clone.
	require.Len(t, fake.calls, 2)
	assert.Equal(t, "checkout", fake.calls[0].op)
	assert.Equal(t, "main", fake.calls[0].branch)
	assert.Equal(t, "pull", fake.calls[1].op)

	assert.Equal(t, 1, summary.Updated)
}

func TestReconcileUpdateAlreadyUpToDate(t *testing.T) {
	root := t.TempDir()
	mkClone(t, root, "acme/widgets")
	path := filepath.Join(root, "acme", "widgets")

	fake := &fakeVCS{pullErr: map[string]error{path: vcs.ErrAlreadyUpToDate}}
	engine := NewEngine(fake, Options{Root: root, Update: true})

	summary := engine.Run(context.Background(), []model.Repository{testRepo("acme/widgets", "main")})

	assert.Equal(t, 1, summary.Updated)
	assert.Zero(t, summary.Failed)
}

func TestReconcileDryRunAbsent(t *testing.T) {
	root := t.TempDir()
	fake := &fakeVCS{}
	engine := NewEngine(fake, Options{Root: root, DryRun: true})

	summary := engine.Run(context.Background(), []model.Repository{testRepo("acme/widgets", "main")})

	assert.Empty(t, fake.calls)
	assert.Equal(t, 1, summary.Reported)
}

func TestReconcileDryRunPresentWithUpdate(t *testing.T) {
	root := t.TempDir()
	mkClone(t, root, "acme/widgets")

	fake := &fakeVCS{}
	engine := NewEngine(fake, Options{Root: root, DryRun: true, Update: true})

	summary := engine.Run(context.Background(), []model.Repository{testRepo("acme/widgets", "main")})

	assert.Empty(t, fake.calls)
	assert.Equal(t, 1, summary.Reported)
}

func TestRunIsolatesFailures(t *testing.T) {
	root := t.TempDir()
	failPath := filepath.Join(root, "acme", "second")

	fake := &fakeVCS{cloneErr: map[string]error{failPath: errors.New("network down")}}
	engine := NewEngine(fake, Options{Root: root})

	repos := []model.Repository{
		testRepo("acme/first", "main"),
		testRepo("acme/second", "main"),
		testRepo("acme/third", "main"),
	}

	summary := engine.Run(context.Background(), repos)

	// Repo #2 failing must not prevent repo #3 from being processed.
	require.Len(t, fake.calls, 3)
	assert.Equal(t, 2, summary.Cloned)
	assert.Equal(t, 1, summary.Failed)

	require.Len(t, summary.Results, 3)
	assert.Equal(t, OutcomeCloned, summary.Results[0].Outcome)
	assert.Equal(t, OutcomeFailed, summary.Results[1].Outcome)
	assert.ErrorContains(t, summary.Results[1].Err, "network down")
	assert.Equal(t, OutcomeCloned, summary.Results[2].Outcome)
}

func TestRunUpdateCheckoutFailureIsolated(t *testing.T) {
	root := t.TempDir()
	mkClone(t, root, "acme/broken")
	mkClone(t, root, "acme/fine")
	brokenPath := filepath.Join(root, "acme", "broken")

	fake := &fakeVCS{checkoutErr: map[string]error{brokenPath: errors.New("dirty worktree")}}
	engine := NewEngine(fake, Options{Root: root, Update: true})

	summary := engine.Run(context.Background(), []model.Repository{
		testRepo("acme/broken", "main"),
		testRepo("acme/fine", "main"),
	})

	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Updated)

	// A failed checkout must not be followed by a pull for that repo.
	for _, call := range fake.calls {
		if call.op == "pull" {
			assert.NotEqual(t, brokenPath, call.path)
		}
	}
}

func TestRunOnResultCallback(t *testing.T) {
	root := t.TempDir()
	fake := &fakeVCS{}

	var seen []string
	engine := NewEngine(fake, Options{
		Root: root,
		OnResult: func(r Result) {
			seen = append(seen, r.Repo.FullName)
		},
	})

	engine.Run(context.Background(), []model.Repository{
		testRepo("acme/first", "main"),
		testRepo("acme/second", "main"),
	})

	assert.Equal(t, []string{"acme/first", "acme/second"}, seen)
}

func TestReconcileUpdateWithoutDefaultBranch(t *testing.T) {
	root := t.TempDir()
	mkClone(t, root, "acme/widgets")

	fake := &fakeVCS{}
	engine := NewEngine(fake, Options{Root: root, Update: true})

	repo := testRepo("acme/widgets", "")
	summary := engine.Run(context.Background(), []model.Repository{repo})

	// No branch known: pull only, no checkout.
	require.Len(t, fake.calls, 1)
	assert.Equal(t, "pull", fake.calls[0].op)
	assert.Equal(t, 1, summary.Updated)
}

func TestSummaryString(t *testing.T) {
	s := &Summary{}
	s.add(Result{Outcome: OutcomeCloned})
	s.add(Result{Outcome: OutcomeCloned})
	s.add(Result{Outcome: OutcomeSkipped})
	s.add(Result{Outcome: OutcomeFailed, Err: errors.New("boom")})

	assert.Equal(t, "2 cloned, 1 skipped, 1 failed", s.String())
	assert.Equal(t, 4, s.Total())

	empty := &Summary{}
	assert.Equal(t, "nothing to do", empty.String())
}
