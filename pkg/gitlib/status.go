package gitlib

import (
	"fmt"

	git2go "github.com/libgit2/git2go/v34"
)

// Status is the VCS status of a tracked file.
type Status = git2go.Status

// FileEntry is one tracked file as reported by the listing, together with
// its status and whether the caller's exclusion set covers it.
type FileEntry struct {
	Path     string
	Status   Status
	Excluded bool
}

// TrackedFiles lists every file in the index, marking entries covered by the
// exclusion set. Statuses are resolved in one pass over the repository
// status list; files with no pending change report StatusCurrent.
func (r *Repository) TrackedFiles(exclusions map[string]struct{}) ([]FileEntry, error) {
	index, err := r.repo.Index()
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	defer index.Free()

	statuses, err := r.statusByPath()
	if err != nil {
		return nil, err
	}

	count := index.EntryCount()
	entries := make([]FileEntry, 0, count)

	for i := uint(0); i < count; i++ {
		indexEntry, entryErr := index.EntryByIndex(i)
		if entryErr != nil {
			return nil, fmt.Errorf("index entry %d: %w", i, entryErr)
		}

		_, excluded := exclusions[indexEntry.Path]
		entries = append(entries, FileEntry{
			Path:     indexEntry.Path,
			Status:   statuses[indexEntry.Path],
			Excluded: excluded,
		})
	}

	return entries, nil
}

// statusByPath collects pending changes; unlisted paths are StatusCurrent.
func (r *Repository) statusByPath() (map[string]Status, error) {
	list, err := r.repo.StatusList(&git2go.StatusOptions{
		Show:  git2go.StatusShowIndexAndWorkdir,
		Flags: git2go.StatusOptIncludeUntracked,
	})
	if err != nil {
		return nil, fmt.Errorf("repository status: %w", err)
	}

	defer func() {
		_ = list.Free()
	}()

	count, err := list.EntryCount()
	if err != nil {
		return nil, fmt.Errorf("status entry count: %w", err)
	}

	statuses := make(map[string]Status, count)

	for i := range count {
		entry, entryErr := list.ByIndex(i)
		if entryErr != nil {
			return nil, fmt.Errorf("status entry %d: %w", i, entryErr)
		}

		if path := statusEntryPath(entry); path != "" {
			statuses[path] = entry.Status
		}
	}

	return statuses, nil
}

func statusEntryPath(entry git2go.StatusEntry) string {
	if entry.IndexToWorkdir.NewFile.Path != "" {
		return entry.IndexToWorkdir.NewFile.Path
	}

	return entry.HeadToIndex.NewFile.Path
}
