package gitlib

import (
	"fmt"

	git2go "github.com/libgit2/git2go/v34"
)

// Diff wraps a libgit2 tree-to-tree diff.
type Diff struct {
	diff *git2go.Diff
}

// NumDeltas returns the number of per-file deltas in the diff.
func (d *Diff) NumDeltas() (int, error) {
	numDeltas, err := d.diff.NumDeltas()
	if err != nil {
		return 0, fmt.Errorf("get num deltas: %w", err)
	}

	return numDeltas, nil
}

// Delta returns the delta at the given index.
func (d *Diff) Delta(index int) (DiffDelta, error) {
	delta, err := d.diff.Delta(index)
	if err != nil {
		return DiffDelta{}, fmt.Errorf("get delta: %w", err)
	}

	return DiffDelta{
		Status:  delta.Status,
		OldFile: DiffFile{Path: delta.OldFile.Path, Hash: HashFromOid(delta.OldFile.Oid)},
		NewFile: DiffFile{Path: delta.NewFile.Path, Hash: HashFromOid(delta.NewFile.Oid)},
	}, nil
}

// ChangedPaths returns the new-side path of every delta in the diff. For a
// deletion the new-side path equals the old path, which is the attribution
// the history aggregator wants.
func (d *Diff) ChangedPaths() ([]string, error) {
	numDeltas, err := d.NumDeltas()
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, numDeltas)

	for i := range numDeltas {
		delta, deltaErr := d.Delta(i)
		if deltaErr != nil {
			return nil, deltaErr
		}

		path := delta.NewFile.Path
		if path == "" {
			path = delta.OldFile.Path
		}

		paths = append(paths, path)
	}

	return paths, nil
}

// Stats returns the aggregate insertion/deletion stats of the diff.
func (d *Diff) Stats() (*DiffTotals, error) {
	stats, err := d.diff.Stats()
	if err != nil {
		return nil, fmt.Errorf("get diff stats: %w", err)
	}

	return &DiffTotals{stats: stats}, nil
}

// Free releases the diff resources.
func (d *Diff) Free() {
	if d.diff == nil {
		return
	}

	// Free errors during cleanup are non-actionable.
	_ = d.diff.Free()
	d.diff = nil
}

// DiffDelta represents a file change in a diff.
type DiffDelta struct {
	Status  git2go.Delta
	OldFile DiffFile
	NewFile DiffFile
}

// DiffFile represents one side of a diff delta.
type DiffFile struct {
	Path string
	Hash Hash
}

// DiffTotals wraps libgit2 diff stats.
type DiffTotals struct {
	stats *git2go.DiffStats
}

// Insertions returns the number of inserted lines.
func (s *DiffTotals) Insertions() int {
	return s.stats.Insertions()
}

// Deletions returns the number of deleted lines.
func (s *DiffTotals) Deletions() int {
	return s.stats.Deletions()
}

// FilesChanged returns the number of files changed.
func (s *DiffTotals) FilesChanged() int {
	return s.stats.FilesChanged()
}

// Free releases the stats resources.
func (s *DiffTotals) Free() {
	if s.stats == nil {
		return
	}

	// Free errors during cleanup are non-actionable.
	_ = s.stats.Free()
	s.stats = nil
}
