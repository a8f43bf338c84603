package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricFilesAttributed = "gitsleuth.attribution.files.attributed.total"
	metricFilesSkipped    = "gitsleuth.attribution.files.skipped.total"
	metricHunksDropped    = "gitsleuth.attribution.hunks.dropped.total"
	metricCommitsWalked   = "gitsleuth.history.commits.total"
	metricRunDuration     = "gitsleuth.attribution.run.duration.seconds"

	attrReason = "reason"
)

// durationBucketBoundaries covers sub-second CLI runs up to multi-minute
// walks over large repositories.
var durationBucketBoundaries = []float64{
	0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300,
}

// EngineMetrics holds OTel instruments for the attribution engine.
type EngineMetrics struct {
	filesAttributed metric.Int64Counter
	filesSkipped    metric.Int64Counter
	hunksDropped    metric.Int64Counter
	commitsWalked   metric.Int64Counter
	runDuration     metric.Float64Histogram
}

// NewEngineMetrics creates engine metric instruments from the given meter.
func NewEngineMetrics(mt metric.Meter) (*EngineMetrics, error) {
	attributed, err := mt.Int64Counter(metricFilesAttributed,
		metric.WithDescription("Files successfully blamed and attributed"),
		metric.WithUnit("{file}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricFilesAttributed, err)
	}

	skipped, err := mt.Int64Counter(metricFilesSkipped,
		metric.WithDescription("Files dropped from attribution, by reason"),
		metric.WithUnit("{file}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricFilesSkipped, err)
	}

	dropped, err := mt.Int64Counter(metricHunksDropped,
		metric.WithDescription("Blame hunks dropped for undecodable author names"),
		metric.WithUnit("{hunk}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricHunksDropped, err)
	}

	walked, err := mt.Int64Counter(metricCommitsWalked,
		metric.WithDescription("Commits visited by the history walk"),
		metric.WithUnit("{commit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricCommitsWalked, err)
	}

	duration, err := mt.Float64Histogram(metricRunDuration,
		metric.WithDescription("End-to-end duration of attribution runs"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRunDuration, err)
	}

	return &EngineMetrics{
		filesAttributed: attributed,
		filesSkipped:    skipped,
		hunksDropped:    dropped,
		commitsWalked:   walked,
		runDuration:     duration,
	}, nil
}

// FileAttributed records one successfully attributed file.
func (m *EngineMetrics) FileAttributed(ctx context.Context) {
	m.filesAttributed.Add(ctx, 1)
}

// FileSkipped records one file dropped from attribution.
func (m *EngineMetrics) FileSkipped(ctx context.Context, reason string) {
	m.filesSkipped.Add(ctx, 1, metric.WithAttributes(attribute.String(attrReason, reason)))
}

// HunkDropped records one blame hunk dropped for a bad author name.
func (m *EngineMetrics) HunkDropped(ctx context.Context) {
	m.hunksDropped.Add(ctx, 1)
}

// CommitWalked records one commit visited by the history walk.
func (m *EngineMetrics) CommitWalked(ctx context.Context) {
	m.commitsWalked.Add(ctx, 1)
}

// RunObserved records the duration of one attribution run.
func (m *EngineMetrics) RunObserved(ctx context.Context, elapsed time.Duration) {
	m.runDuration.Record(ctx, elapsed.Seconds())
}
