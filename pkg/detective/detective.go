// Package detective is the contribution attribution and aggregation engine.
// It combines per-file blame output with per-line source classification into
// per-author, per-language statistics, merges per-file results computed
// concurrently into one project-wide report, and walks commit history to
// accumulate per-author insertion/deletion and touched-file statistics.
//
// Failure policy differs deliberately between the two paths. Snapshot
// attribution (FinalContributions) is best-effort: a file that cannot be
// blamed or read contributes nothing and the operation still succeeds, so
// bulk results may under-report rather than fail. Historical attribution
// (DiffStats, FilesContributedTo) is strict: the first commit whose tree or
// diff cannot be computed aborts the walk.
package detective

import (
	"log/slog"
	"runtime"

	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Sumatoshi-tech/gitsleuth/pkg/gitlib"
	"github.com/Sumatoshi-tech/gitsleuth/pkg/observability"
)

// Detective inspects a git repository and attributes its contents.
type Detective struct {
	repo *gitlib.Repository

	// excluded is consulted by both listing and attribution. It is plain
	// per-Detective state, never global, so exclusion sets stay reproducible
	// per call.
	excluded map[string]struct{}

	workers int
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *observability.EngineMetrics
}

// Option configures a Detective.
type Option func(*Detective)

// WithWorkers sets the number of parallel file workers used by
// FinalContributions. Zero selects GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(d *Detective) {
		d.workers = n
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Detective) {
		d.logger = logger
	}
}

// WithObservability attaches tracing and engine metrics.
func WithObservability(providers observability.Providers) Option {
	return func(d *Detective) {
		d.logger = providers.Logger
		d.tracer = providers.Tracer

		metrics, err := observability.NewEngineMetrics(providers.Meter)
		if err == nil {
			d.metrics = metrics
		}
	}
}

// Open opens the git repository containing the given path.
func Open(path string, opts ...Option) (*Detective, error) {
	repo, err := gitlib.OpenRepository(path)
	if err != nil {
		return nil, err
	}

	return newDetective(repo, opts...), nil
}

// Clone clones a remote repository to the given path and opens it. The URL
// is validated first; recursive also fetches submodules.
func Clone(url, path string, recursive bool, opts ...Option) (*Detective, error) {
	repo, err := gitlib.CloneRepository(url, path, recursive)
	if err != nil {
		return nil, err
	}

	return newDetective(repo, opts...), nil
}

func newDetective(repo *gitlib.Repository, opts ...Option) *Detective {
	d := &Detective{
		repo:     repo,
		excluded: map[string]struct{}{},
		logger:   slog.Default(),
		tracer:   nooptrace.NewTracerProvider().Tracer("gitsleuth"),
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.workers <= 0 {
		d.workers = runtime.GOMAXPROCS(0)
	}

	return d
}

// Close releases the underlying repository handle.
func (d *Detective) Close() {
	d.repo.Free()
}

// Repository exposes the underlying VCS handle for callers that need
// listing or checkout primitives directly.
func (d *Detective) Repository() *gitlib.Repository {
	return d.repo
}

// State returns the repository state.
func (d *Detective) State() gitlib.RepositoryState {
	return d.repo.State()
}

// Checkout checks out a commit, branch, or tag. The repository state must
// be clean.
func (d *Detective) Checkout(ref gitlib.Checkoutable) error {
	return d.repo.Checkout(ref)
}

// Tags lists all tags.
func (d *Detective) Tags() ([]gitlib.Tag, error) {
	return d.repo.Tags()
}

// Branches lists all local branches.
func (d *Detective) Branches() ([]gitlib.Branch, error) {
	return d.repo.Branches()
}

// ExcludeFile removes a path from all further listing and attribution.
func (d *Detective) ExcludeFile(path string) {
	d.excluded[path] = struct{}{}
}

// IncludeFile reverses ExcludeFile. Attribution after re-inclusion is
// identical to attribution before the exclusion.
func (d *Detective) IncludeFile(path string) {
	delete(d.excluded, path)
}

// Ls lists tracked files with excluded paths filtered out.
func (d *Detective) Ls() ([]gitlib.FileEntry, error) {
	entries, err := d.repo.TrackedFiles(d.excluded)
	if err != nil {
		return nil, err
	}

	files := entries[:0]

	for _, entry := range entries {
		if !entry.Excluded {
			files = append(files, entry)
		}
	}

	return files, nil
}

// LsAll lists tracked files including excluded ones, with Excluded set.
func (d *Detective) LsAll() ([]gitlib.FileEntry, error) {
	return d.repo.TrackedFiles(d.excluded)
}
