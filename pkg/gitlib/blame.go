package gitlib

import (
	"fmt"
	"unicode/utf8"

	git2go "github.com/libgit2/git2go/v34"
)

// BlameHunk is a contiguous range of lines in a file's current revision,
// attributed to the author who last modified them. Line numbers are 1-based;
// the hunk covers [Start, Start+Lines).
//
// AuthorValid is false when libgit2 hands back an author name that is not
// valid UTF-8. Such hunks carry no usable identity and are dropped by the
// attribution engine.
type BlameHunk struct {
	Start       int
	Lines       int
	Author      string
	AuthorValid bool
}

// Range returns the half-open line range covered by the hunk.
func (h BlameHunk) Range() (start, end int) {
	return h.Start, h.Start + h.Lines
}

// BlameFile computes the blame for a tracked file, attributing every line of
// its HEAD revision.
//
// The libgit2 blame machinery mutates repository-internal caches; callers
// running concurrently must serialize BlameFile invocations (see Worker).
func (r *Repository) BlameFile(path string) ([]BlameHunk, error) {
	opts, err := git2go.DefaultBlameOptions()
	if err != nil {
		return nil, fmt.Errorf("get blame options: %w", err)
	}

	blame, err := r.repo.BlameFile(path, &opts)
	if err != nil {
		return nil, fmt.Errorf("blame %s: %w", path, err)
	}

	defer func() {
		// Free errors during cleanup are non-actionable.
		_ = blame.Free()
	}()

	count := blame.HunkCount()
	hunks := make([]BlameHunk, 0, count)

	for i := range count {
		hunk, hunkErr := blame.HunkByIndex(i)
		if hunkErr != nil {
			return nil, fmt.Errorf("blame hunk %d of %s: %w", i, path, hunkErr)
		}

		hunks = append(hunks, convertHunk(hunk))
	}

	return hunks, nil
}

func convertHunk(hunk git2go.BlameHunk) BlameHunk {
	author := ""
	valid := false

	if hunk.FinalSignature != nil {
		author = hunk.FinalSignature.Name
		valid = utf8.ValidString(author)
	}

	return BlameHunk{
		Start:       int(hunk.FinalStartLineNumber),
		Lines:       int(hunk.LinesInHunk),
		Author:      author,
		AuthorValid: valid,
	}
}
