package gitlib

import (
	"errors"
	"fmt"
	"strings"

	git2go "github.com/libgit2/git2go/v34"
)

// Checkout errors.
var (
	// ErrDirtyState is returned when checkout is attempted while a merge,
	// rebase, or similar operation is in progress.
	ErrDirtyState = errors.New("repository state is not clean")
)

// Checkoutable is a reference that can be checked out: a commit, a branch,
// or a tag. The interface is sealed; the three variants are CommitRef,
// BranchRef, and TagRef.
type Checkoutable interface {
	// resolve returns the commit the reference points at and the symbolic
	// ref name to set HEAD to, or "" for a detached checkout.
	resolve(repo *Repository) (*git2go.Commit, string, error)
}

// CommitRef identifies a commit by hash. Checking it out detaches HEAD.
type CommitRef struct {
	Hash Hash
}

func (c CommitRef) resolve(repo *Repository) (*git2go.Commit, string, error) {
	commit, err := repo.repo.LookupCommit(c.Hash.ToOid())
	if err != nil {
		return nil, "", fmt.Errorf("lookup commit %s: %w", c.Hash, err)
	}

	return commit, "", nil
}

// BranchRef identifies a local branch by name.
type BranchRef struct {
	Name string
}

func (b BranchRef) resolve(repo *Repository) (*git2go.Commit, string, error) {
	branch, err := repo.repo.LookupBranch(b.Name, git2go.BranchLocal)
	if err != nil {
		return nil, "", fmt.Errorf("lookup branch %s: %w", b.Name, err)
	}
	defer branch.Free()

	commit, err := repo.repo.LookupCommit(branch.Target())
	if err != nil {
		return nil, "", fmt.Errorf("lookup branch commit: %w", err)
	}

	return commit, "refs/heads/" + b.Name, nil
}

// TagRef identifies a tag by object hash. Checking it out detaches HEAD.
type TagRef struct {
	Hash Hash
}

func (t TagRef) resolve(repo *Repository) (*git2go.Commit, string, error) {
	obj, err := repo.repo.Lookup(t.Hash.ToOid())
	if err != nil {
		return nil, "", fmt.Errorf("lookup tag %s: %w", t.Hash, err)
	}
	defer obj.Free()

	peeled, err := obj.Peel(git2go.ObjectCommit)
	if err != nil {
		return nil, "", fmt.Errorf("peel tag to commit: %w", err)
	}

	commit, err := peeled.AsCommit()
	if err != nil {
		return nil, "", fmt.Errorf("tag does not point at a commit: %w", err)
	}

	return commit, "", nil
}

// Checkout checks out the given reference. The repository state must be
// clean; the working tree is updated to match the target commit's tree. A
// CommitRef or TagRef checkout detaches HEAD.
func (r *Repository) Checkout(ref Checkoutable) error {
	if r.State() != StateClean {
		return fmt.Errorf("%w: %s", ErrDirtyState, r.State())
	}

	commit, headRef, err := ref.resolve(r)
	if err != nil {
		return err
	}
	defer commit.Free()

	tree, err := commit.Tree()
	if err != nil {
		return fmt.Errorf("get commit tree: %w", err)
	}
	defer tree.Free()

	err = r.repo.CheckoutTree(tree, &git2go.CheckoutOptions{
		Strategy: git2go.CheckoutSafe,
	})
	if err != nil {
		return fmt.Errorf("checkout tree: %w", err)
	}

	if headRef == "" {
		err = r.repo.SetHeadDetached(commit.Id())
		if err != nil {
			return fmt.Errorf("set detached HEAD: %w", err)
		}

		return nil
	}

	err = r.repo.SetHead(headRef)
	if err != nil {
		return fmt.Errorf("set HEAD to %s: %w", headRef, err)
	}

	return nil
}

// Tag describes an annotated or lightweight tag.
type Tag struct {
	Name string
	Hash Hash
}

// Tags lists all tags in the repository.
func (r *Repository) Tags() ([]Tag, error) {
	var tags []Tag

	err := r.repo.Tags.Foreach(func(name string, id *git2go.Oid) error {
		tags = append(tags, Tag{
			Name: strings.TrimPrefix(name, "refs/tags/"),
			Hash: HashFromOid(id),
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	return tags, nil
}

// Branch describes a local branch.
type Branch struct {
	Name string
	Hash Hash
}

// Branches lists all local branches in the repository.
func (r *Repository) Branches() ([]Branch, error) {
	iter, err := r.repo.NewBranchIterator(git2go.BranchLocal)
	if err != nil {
		return nil, fmt.Errorf("create branch iterator: %w", err)
	}
	defer iter.Free()

	var branches []Branch

	for {
		branch, _, iterErr := iter.Next()
		if iterErr != nil {
			if git2go.IsErrorCode(iterErr, git2go.ErrorCodeIterOver) {
				break
			}

			return nil, fmt.Errorf("iterate branches: %w", iterErr)
		}

		name, nameErr := branch.Name()
		if nameErr != nil {
			branch.Free()

			continue
		}

		branches = append(branches, Branch{
			Name: name,
			Hash: HashFromOid(branch.Target()),
		})
		branch.Free()
	}

	return branches, nil
}
