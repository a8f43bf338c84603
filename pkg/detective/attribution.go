package detective

import (
	"context"
	"path/filepath"

	"github.com/Sumatoshi-tech/gitsleuth/pkg/classify"
	"github.com/Sumatoshi-tech/gitsleuth/pkg/gitlib"
	"github.com/Sumatoshi-tech/gitsleuth/pkg/stats"
)

// attribute merges one file's blame hunks with its line classification into
// per-author stats.
//
// Two lossy rules are deliberate: a hunk whose author name failed to decode
// is dropped whole (no partial credit), and a blamed line with no
// classification entry (the file changed between read and blame) is skipped.
// Both shrink the result silently rather than failing it.
func (d *Detective) attribute(ctx context.Context, file classify.File, hunks []gitlib.BlameHunk) map[string]stats.Stats {
	contributions := map[string]stats.Stats{}

	for _, hunk := range hunks {
		if !hunk.AuthorValid {
			d.logger.DebugContext(ctx, "dropping blame hunk with undecodable author name",
				"start", hunk.Start, "lines", hunk.Lines)

			if d.metrics != nil {
				d.metrics.HunkDropped(ctx)
			}

			continue
		}

		start, end := hunk.Range()
		for line := start; line < end; line++ {
			kind, ok := file.Kinds[line]
			if !ok {
				continue
			}

			contributions[hunk.Author] = contributions[hunk.Author].AddLine(kind)
		}
	}

	return contributions
}

// FinalContributionsFile attributes a single tracked file at HEAD,
// returning its language and per-author stats. Unlike the bulk
// FinalContributions, failures here are strict: a blame error or an
// unreadable file is returned to the caller, wrapped with the path.
func (d *Detective) FinalContributionsFile(ctx context.Context, path string) (string, map[string]stats.Stats, error) {
	ctx, span := d.tracer.Start(ctx, "detective.FinalContributionsFile")
	defer span.End()

	hunks, err := d.repo.BlameFile(path)
	if err != nil {
		return "", nil, err
	}

	file, err := classify.ClassifyFile(filepath.Join(d.repo.Workdir(), path))
	if err != nil {
		return "", nil, err
	}

	return file.Language, d.attribute(ctx, file, hunks), nil
}
