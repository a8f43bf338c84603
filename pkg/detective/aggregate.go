package detective

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/Sumatoshi-tech/gitsleuth/pkg/classify"
	"github.com/Sumatoshi-tech/gitsleuth/pkg/gitlib"
	"github.com/Sumatoshi-tech/gitsleuth/pkg/stats"
)

// fileResult is one file's contribution, ready for the commutative merge.
type fileResult struct {
	language      string
	contributions map[string]stats.Stats
}

// FinalContributions attributes every tracked, non-excluded file at HEAD
// and reduces the per-file results into one ProjectStats.
//
// The operation is best-effort by design: a file whose blame or read fails
// (binary file, not tracked at this revision, transient I/O error) is
// dropped from the result and the remaining files are unaffected, so the
// report may silently cover fewer files than the listing. Per-file work is
// spread over a bounded worker pool; blame calls are serialized through a
// single-owner worker because the repository handle does not support
// concurrent blame. The merged result is identical regardless of worker
// count or merge order.
func (d *Detective) FinalContributions(ctx context.Context) (stats.ProjectStats, error) {
	ctx, span := d.tracer.Start(ctx, "detective.FinalContributions")
	defer span.End()

	started := time.Now()

	files, err := d.Ls()
	if err != nil {
		return stats.ProjectStats{}, err
	}

	blameRequests := make(chan gitlib.BlameRequest)
	blameWorker := gitlib.NewWorker(d.repo, blameRequests)
	blameWorker.Start()

	paths := make(chan string)
	results := make(chan fileResult)

	var wg sync.WaitGroup

	for range d.workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for path := range paths {
				result, ok := d.attributeOne(ctx, path, blameRequests)
				if ok {
					results <- result
				}
			}
		}()
	}

	go func() {
		for _, file := range files {
			paths <- file.Path
		}

		close(paths)
		wg.Wait()
		close(results)
		close(blameRequests)
	}()

	project := stats.NewProjectStats()

	for result := range results {
		for author, s := range result.contributions {
			project.Insert(author, result.language, s)
		}
	}

	blameWorker.Stop()

	if d.metrics != nil {
		d.metrics.RunObserved(ctx, time.Since(started))
	}

	return project, nil
}

// attributeOne blames and classifies a single file, reporting whether the
// file produced a usable result. Failures only drop the file.
func (d *Detective) attributeOne(ctx context.Context, path string, blameRequests chan<- gitlib.BlameRequest) (fileResult, bool) {
	response := make(chan gitlib.BlameResponse, 1)
	blameRequests <- gitlib.BlameRequest{Path: path, Response: response}

	blame := <-response
	if blame.Error != nil {
		d.logger.DebugContext(ctx, "skipping file: blame failed", "path", path, "error", blame.Error)

		if d.metrics != nil {
			d.metrics.FileSkipped(ctx, "blame")
		}

		return fileResult{}, false
	}

	file, err := classify.ClassifyFile(filepath.Join(d.repo.Workdir(), path))
	if err != nil {
		d.logger.DebugContext(ctx, "skipping file: unreadable", "path", path, "error", err)

		if d.metrics != nil {
			d.metrics.FileSkipped(ctx, "read")
		}

		return fileResult{}, false
	}

	if d.metrics != nil {
		d.metrics.FileAttributed(ctx)
	}

	return fileResult{
		language:      file.Language,
		contributions: d.attribute(ctx, file, blame.Hunks),
	}, true
}
