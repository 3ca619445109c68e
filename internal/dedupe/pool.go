package dedupe

import (
	"context"
	"sync"

	"bindery/internal/library"
)

type hashJob struct {
	record *library.FileRecord
}

type hashResult struct {
	record *library.FileRecord
	hash   string
	err    error
}

// hashPool is a fixed set of workers that hash file contents. Hashing is
// I/O-bound; each worker only reads its own file, so no shared state.
type hashPool struct {
	workers int
	jobs    chan hashJob
	results chan hashResult
	wg      sync.WaitGroup
}

func newHashPool(workers int) *hashPool {
	if workers < 1 {
		workers = 1
	}
	return &hashPool{
		workers: workers,
		jobs:    make(chan hashJob, workers*2),
		results: make(chan hashResult, workers*2),
	}
}

func (p *hashPool) start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

// submit enqueues a job, blocking for backpressure. Returns false when
// the context is cancelled.
func (p *hashPool) submit(ctx context.Context, job hashJob) bool {
	select {
	case p.jobs <- job:
		return true
	case <-ctx.Done():
		return false
	}
}

// shutdown closes the jobs channel, waits for the workers to drain, then
// closes the results channel. Call exactly once.
func (p *hashPool) shutdown() {
	close(p.jobs)
	p.wg.Wait()
	close(p.results)
}

func (p *hashPool) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			hash, err := HashFile(job.record.Path)
			select {
			case p.results <- hashResult{record: job.record, hash: hash, err: err}:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
