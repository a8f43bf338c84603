package gitlib

import "runtime"

// BlameRequest asks the worker to blame one tracked file.
type BlameRequest struct {
	Path     string
	Response chan<- BlameResponse
}

// BlameResponse is the result of a BlameRequest.
type BlameResponse struct {
	Hunks []BlameHunk
	Error error
}

// Worker owns exclusive, sequential access to the libgit2 repository for
// blame. The repository handle is not safe for concurrent blame calls, so
// all of them funnel through this single goroutine; classification and file
// reads stay outside and run fully parallel. All CGO calls happen on one
// locked OS thread.
type Worker struct {
	repo     *Repository
	requests <-chan BlameRequest
	done     chan struct{}
}

// NewWorker creates a blame worker consuming from the given channel.
func NewWorker(repo *Repository, requests <-chan BlameRequest) *Worker {
	return &Worker{
		repo:     repo,
		requests: requests,
		done:     make(chan struct{}),
	}
}

// Start runs the worker loop. It locks the goroutine to the OS thread to
// satisfy libgit2 constraints.
func (w *Worker) Start() {
	go func() {
		runtime.LockOSThread()

		defer runtime.UnlockOSThread()
		defer close(w.done)

		for req := range w.requests {
			hunks, err := w.repo.BlameFile(req.Path)
			req.Response <- BlameResponse{Hunks: hunks, Error: err}
		}
	}()
}

// Stop waits for the worker to finish. The caller must close the requests
// channel to trigger shutdown.
func (w *Worker) Stop() {
	<-w.done
}
