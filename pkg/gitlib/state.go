package gitlib

import git2go "github.com/libgit2/git2go/v34"

// RepositoryState describes an in-progress operation on the repository,
// such as a merge or rebase. Checkout requires StateClean.
type RepositoryState int

const (
	// StateClean means no operation is in progress.
	StateClean RepositoryState = iota
	// StateMerge means a merge is in progress.
	StateMerge
	// StateRevert means a revert is in progress.
	StateRevert
	// StateCherrypick means a cherry-pick is in progress.
	StateCherrypick
	// StateBisect means a bisect is in progress.
	StateBisect
	// StateRebase means a rebase is in progress.
	StateRebase
	// StateApplyMailbox means an am session is in progress.
	StateApplyMailbox
)

// String returns the lowercase name of the state.
func (s RepositoryState) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateMerge:
		return "merge"
	case StateRevert:
		return "revert"
	case StateCherrypick:
		return "cherry-pick"
	case StateBisect:
		return "bisect"
	case StateRebase:
		return "rebase"
	case StateApplyMailbox:
		return "apply-mailbox"
	default:
		return "unknown"
	}
}

// State returns the current repository state.
func (r *Repository) State() RepositoryState {
	switch r.repo.State() {
	case git2go.RepositoryStateNone:
		return StateClean
	case git2go.RepositoryStateMerge:
		return StateMerge
	case git2go.RepositoryStateRevert, git2go.RepositoryStateRevertSequence:
		return StateRevert
	case git2go.RepositoryStateCherrypick, git2go.RepositoryStateCherrypickSequence:
		return StateCherrypick
	case git2go.RepositoryStateBisect:
		return StateBisect
	case git2go.RepositoryStateRebase,
		git2go.RepositoryStateRebaseInteractive,
		git2go.RepositoryStateRebaseMerge:
		return StateRebase
	case git2go.RepositoryStateApplyMailbox, git2go.RepositoryStateApplyMailboxOrRebase:
		return StateApplyMailbox
	default:
		return StateClean
	}
}
