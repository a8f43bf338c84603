// Package gittest builds scratch git repositories for integration tests.
// Repositories live in t.TempDir and are committed through libgit2 directly,
// so tests exercise the same object database the engine reads.
package gittest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git2go "github.com/libgit2/git2go/v34"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitsleuth/pkg/gitlib"
)

// Repo is a scratch repository rooted in a temp directory.
type Repo struct {
	t      *testing.T
	path   string
	native *git2go.Repository
	clock  time.Time
}

// New initializes a scratch repository.
func New(t *testing.T) *Repo {
	t.Helper()

	dir := t.TempDir()

	native, err := git2go.InitRepository(dir, false)
	require.NoError(t, err)

	t.Cleanup(native.Free)

	return &Repo{
		t:      t,
		path:   dir,
		native: native,
		clock:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Path returns the working directory of the repository.
func (r *Repo) Path() string {
	return r.path
}

// Native returns the underlying libgit2 repository.
func (r *Repo) Native() *git2go.Repository {
	return r.native
}

// WriteFile creates or overwrites a file in the working directory.
func (r *Repo) WriteFile(name, content string) {
	r.t.Helper()

	path := filepath.Join(r.path, name)
	dir := filepath.Dir(path)

	if dir != r.path {
		err := os.MkdirAll(dir, 0o755)
		require.NoError(r.t, err)
	}

	err := os.WriteFile(path, []byte(content), 0o644)
	require.NoError(r.t, err)
}

// RemoveFile deletes a file from the working directory. The next Commit
// stages the removal.
func (r *Repo) RemoveFile(name string) {
	r.t.Helper()

	err := os.Remove(filepath.Join(r.path, name))
	require.NoError(r.t, err)
}

// Commit stages everything and commits as the given author. Each commit
// advances a deterministic clock so walk ordering is stable.
func (r *Repo) Commit(author, message string) gitlib.Hash {
	r.t.Helper()

	index, err := r.native.Index()
	require.NoError(r.t, err)

	defer index.Free()

	err = index.AddAll([]string{"*"}, git2go.IndexAddDefault, nil)
	require.NoError(r.t, err)

	err = index.UpdateAll([]string{"*"}, nil)
	require.NoError(r.t, err)

	err = index.Write()
	require.NoError(r.t, err)

	treeID, err := index.WriteTree()
	require.NoError(r.t, err)

	tree, err := r.native.LookupTree(treeID)
	require.NoError(r.t, err)

	defer tree.Free()

	r.clock = r.clock.Add(time.Hour)
	sig := &git2go.Signature{
		Name:  author,
		Email: authorEmail(author),
		When:  r.clock,
	}

	var parents []*git2go.Commit

	head, err := r.native.Head()
	if err == nil {
		headCommit, lookupErr := r.native.LookupCommit(head.Target())
		require.NoError(r.t, lookupErr)

		parents = append(parents, headCommit)

		head.Free()
	}

	oid, err := r.native.CreateCommit("HEAD", sig, sig, message, tree, parents...)
	require.NoError(r.t, err)

	for _, parent := range parents {
		parent.Free()
	}

	return gitlib.HashFromOid(oid)
}

// Open wraps the scratch repository in a gitlib Repository.
func (r *Repo) Open() *gitlib.Repository {
	r.t.Helper()

	repo, err := gitlib.OpenRepository(r.path)
	require.NoError(r.t, err)

	r.t.Cleanup(repo.Free)

	return repo
}

func authorEmail(author string) string {
	return author + "@example.com"
}
