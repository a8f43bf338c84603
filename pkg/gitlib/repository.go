package gitlib

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	git2go "github.com/libgit2/git2go/v34"
)

// ErrInvalidURL is returned when a clone URL cannot be parsed.
var ErrInvalidURL = errors.New("invalid repository URL")

// Repository wraps a libgit2 repository.
//
// The underlying handle may be read concurrently for metadata, but blame
// must not run concurrently; see Worker for the serialization point.
type Repository struct {
	repo *git2go.Repository
	path string
}

// OpenRepository opens the git repository that contains the given path,
// walking up parent directories until one is found.
func OpenRepository(path string) (*Repository, error) {
	gitDir, err := git2go.Discover(path, false, nil)
	if err != nil {
		return nil, fmt.Errorf("discover repository: %w", err)
	}

	repo, err := git2go.OpenRepository(gitDir)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	return &Repository{repo: repo, path: gitDir}, nil
}

// CloneRepository clones a remote repository to the given path. The URL is
// validated before any network activity. When recursive is set, submodules
// are initialized and updated after the clone.
func CloneRepository(rawURL, path string, recursive bool) (*Repository, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}

	repo, err := git2go.Clone(parsed.String(), path, &git2go.CloneOptions{})
	if err != nil {
		return nil, fmt.Errorf("clone repository: %w", err)
	}

	wrapped := &Repository{repo: repo, path: path}

	if recursive {
		err = wrapped.updateSubmodules()
		if err != nil {
			wrapped.Free()

			return nil, err
		}
	}

	return wrapped, nil
}

func (r *Repository) updateSubmodules() error {
	err := r.repo.Submodules.Foreach(func(sub *git2go.Submodule, _ string) error {
		return sub.Update(true, nil)
	})
	if err != nil {
		return fmt.Errorf("update submodules: %w", err)
	}

	return nil
}

// Path returns the repository path.
func (r *Repository) Path() string {
	return r.path
}

// Workdir returns the working directory of the repository.
func (r *Repository) Workdir() string {
	return r.repo.Workdir()
}

// Free releases the repository resources.
func (r *Repository) Free() {
	if r.repo != nil {
		r.repo.Free()
		r.repo = nil
	}
}

// Head returns the HEAD reference target.
func (r *Repository) Head() (Hash, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return Hash{}, fmt.Errorf("get HEAD: %w", err)
	}
	defer ref.Free()

	return HashFromOid(ref.Target()), nil
}

// LookupCommit returns the commit with the given hash.
func (r *Repository) LookupCommit(_ context.Context, hash Hash) (*Commit, error) {
	commit, err := r.repo.LookupCommit(hash.ToOid())
	if err != nil {
		return nil, fmt.Errorf("lookup commit: %w", err)
	}

	return &Commit{commit: commit, repo: r}, nil
}

// LookupTree returns the tree with the given hash.
func (r *Repository) LookupTree(hash Hash) (*Tree, error) {
	tree, err := r.repo.LookupTree(hash.ToOid())
	if err != nil {
		return nil, fmt.Errorf("lookup tree: %w", err)
	}

	return &Tree{tree: tree, repo: r}, nil
}

// LogOptions configures the commit log iteration.
type LogOptions struct {
	Since       *time.Time // Only include commits after this time.
	FirstParent bool       // Follow only first parent (git log --first-parent).
}

// Log returns a commit iterator starting from HEAD.
func (r *Repository) Log(opts *LogOptions) (*CommitIter, error) {
	walk, err := r.repo.Walk()
	if err != nil {
		return nil, fmt.Errorf("create revwalk: %w", err)
	}

	headRef, err := r.repo.Head()
	if err != nil {
		walk.Free()

		return nil, fmt.Errorf("get HEAD: %w", err)
	}
	defer headRef.Free()

	err = walk.Push(headRef.Target())
	if err != nil {
		walk.Free()

		return nil, fmt.Errorf("push HEAD to revwalk: %w", err)
	}

	// Topological order keeps children before their parents, so the history
	// walk always diffs a commit against an ancestor tree.
	walk.Sorting(git2go.SortTime | git2go.SortTopological)

	if opts != nil && opts.FirstParent {
		walk.SimplifyFirstParent()
	}

	return &CommitIter{walk: walk, repo: r, since: sinceOf(opts)}, nil
}

func sinceOf(opts *LogOptions) *time.Time {
	if opts == nil {
		return nil
	}

	return opts.Since
}

// DiffTreeToTree computes the diff between two trees. A nil oldTree diffs
// against the empty tree, which is how a root commit is handled.
func (r *Repository) DiffTreeToTree(oldTree, newTree *Tree) (*Diff, error) {
	opts, err := git2go.DefaultDiffOptions()
	if err != nil {
		return nil, fmt.Errorf("get diff options: %w", err)
	}

	var oldT, newT *git2go.Tree
	if oldTree != nil {
		oldT = oldTree.tree
	}

	if newTree != nil {
		newT = newTree.tree
	}

	diff, err := r.repo.DiffTreeToTree(oldT, newT, &opts)
	if err != nil {
		return nil, fmt.Errorf("diff trees: %w", err)
	}

	return &Diff{diff: diff}, nil
}

// Native returns the underlying libgit2 repository for advanced operations.
func (r *Repository) Native() *git2go.Repository {
	return r.repo
}
