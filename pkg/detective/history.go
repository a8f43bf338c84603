package detective

import (
	"context"
	"unicode/utf8"

	"github.com/Sumatoshi-tech/gitsleuth/pkg/gitlib"
	"github.com/Sumatoshi-tech/gitsleuth/pkg/stats"
)

// commitDiff is the per-commit record handed to history accumulators.
type commitDiff struct {
	author  string
	totals  stats.DiffStats
	changed []string
}

// DiffStats walks every commit reachable from HEAD and accumulates each
// author's total insertions and deletions. One commit contributes the
// aggregate counts of the diff between its first parent's tree (or the
// empty tree for a root commit) and its own tree.
//
// Unlike snapshot attribution this walk is strict: a commit whose tree or
// diff cannot be computed aborts the whole operation.
func (d *Detective) DiffStats(ctx context.Context) (map[string]stats.DiffStats, error) {
	ctx, span := d.tracer.Start(ctx, "detective.DiffStats")
	defer span.End()

	totals := map[string]stats.DiffStats{}

	err := d.walkCommitDiffs(ctx, func(cd commitDiff) error {
		totals[cd.author] = totals[cd.author].Add(cd.totals)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return totals, nil
}

// FilesContributedTo walks every commit reachable from HEAD and accumulates
// the set of file paths each author has ever touched. A file changed in
// several commits by the same author counts once. The walk is strict.
func (d *Detective) FilesContributedTo(ctx context.Context) (map[string]map[string]struct{}, error) {
	ctx, span := d.tracer.Start(ctx, "detective.FilesContributedTo")
	defer span.End()

	touched := map[string]map[string]struct{}{}

	err := d.walkCommitDiffs(ctx, func(cd commitDiff) error {
		files, ok := touched[cd.author]
		if !ok {
			files = map[string]struct{}{}
			touched[cd.author] = files
		}

		for _, path := range cd.changed {
			files[path] = struct{}{}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return touched, nil
}

// Contributors collects the set of distinct author names across all commits
// reachable from HEAD. This is a bulk query: author names that are not
// valid UTF-8 are skipped rather than failing the collection.
func (d *Detective) Contributors(ctx context.Context) (map[string]struct{}, error) {
	ctx, span := d.tracer.Start(ctx, "detective.Contributors")
	defer span.End()

	iter, err := d.repo.Log(nil)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	authors := map[string]struct{}{}

	err = iter.ForEach(func(commit *gitlib.Commit) error {
		name := commit.Author().Name
		if !utf8.ValidString(name) {
			d.logger.DebugContext(ctx, "skipping commit author with undecodable name",
				"commit", commit.Hash())

			return nil
		}

		authors[name] = struct{}{}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return authors, nil
}

// CommitInfo is one commit in the listing surface.
type CommitInfo struct {
	Hash    gitlib.Hash
	Author  gitlib.Signature
	Summary string
}

// Commits lists every commit reachable from HEAD, newest first.
func (d *Detective) Commits(_ context.Context) ([]CommitInfo, error) {
	iter, err := d.repo.Log(nil)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var commits []CommitInfo

	err = iter.ForEach(func(commit *gitlib.Commit) error {
		commits = append(commits, CommitInfo{
			Hash:    commit.Hash(),
			Author:  commit.Author(),
			Summary: commit.Summary(),
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return commits, nil
}

// walkCommitDiffs visits every commit reachable from HEAD, computes the
// first-parent tree diff, and hands the aggregate result to fn. The first
// error from the repository or from fn aborts the walk. Commits whose
// author name is not valid UTF-8 are passed over without attribution.
func (d *Detective) walkCommitDiffs(ctx context.Context, fn func(commitDiff) error) error {
	iter, err := d.repo.Log(nil)
	if err != nil {
		return err
	}
	defer iter.Close()

	return iter.ForEach(func(commit *gitlib.Commit) error {
		if d.metrics != nil {
			d.metrics.CommitWalked(ctx)
		}

		author := commit.Author().Name
		if !utf8.ValidString(author) {
			d.logger.DebugContext(ctx, "skipping commit with undecodable author name",
				"commit", commit.Hash())

			return nil
		}

		cd, diffErr := d.commitDiff(commit, author)
		if diffErr != nil {
			return diffErr
		}

		return fn(cd)
	})
}

// commitDiff computes one commit's first-parent diff totals and changed
// paths. Errors are returned to the walk and abort it.
func (d *Detective) commitDiff(commit *gitlib.Commit, author string) (commitDiff, error) {
	tree, err := commit.Tree()
	if err != nil {
		return commitDiff{}, err
	}
	defer tree.Free()

	var parentTree *gitlib.Tree

	if commit.NumParents() > 0 {
		parent, parentErr := commit.Parent(0)
		if parentErr != nil {
			return commitDiff{}, parentErr
		}
		defer parent.Free()

		parentTree, err = parent.Tree()
		if err != nil {
			return commitDiff{}, err
		}
		defer parentTree.Free()
	}

	diff, err := d.repo.DiffTreeToTree(parentTree, tree)
	if err != nil {
		return commitDiff{}, err
	}
	defer diff.Free()

	totals, err := diff.Stats()
	if err != nil {
		return commitDiff{}, err
	}
	defer totals.Free()

	changed, err := diff.ChangedPaths()
	if err != nil {
		return commitDiff{}, err
	}

	return commitDiff{
		author: author,
		totals: stats.DiffStats{
			Insertions: totals.Insertions(),
			Deletions:  totals.Deletions(),
		},
		changed: changed,
	}, nil
}
