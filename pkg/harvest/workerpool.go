package harvest

import (
	"context"
	"errors"
	"sync"
)

// ErrPoolClosed is returned if a Submit is attempted after Close.
var ErrPoolClosed = errors.New("worker pool closed")

// Job is a unit of work submitted to the WorkerPool.
type Job func(ctx context.Context) error

// WorkerPool runs jobs using a fixed number of goroutines. The first job
// error is kept and reported by Wait.
type WorkerPool struct {
	jobs    chan Job
	done    chan struct{}
	wg      sync.WaitGroup
	workers int

	// sendMu is held shared by Submit while it may send on jobs, and
	// exclusively by Wait before closing jobs.
	sendMu    sync.RWMutex
	closeOnce sync.Once
	drainOnce sync.Once
	errOnce   sync.Once
	err       error
}

// NewWorkerPool creates a pool with the given number of workers and job
// queue capacity.
func NewWorkerPool(workers, queue int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if queue <= 0 {
		queue = workers * 2
	}
	return &WorkerPool{
		jobs:    make(chan Job, queue),
		done:    make(chan struct{}),
		workers: workers,
	}
}

// Start launches the workers. They exit when ctx is done or the pool is
// closed and drained.
func (p *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					p.fail(ctx.Err())
					return
				case job, ok := <-p.jobs:
					if !ok {
						return
					}
					if err := job(ctx); err != nil {
						p.fail(err)
					}
				}
			}
		}()
	}
}

// Submit enqueues a job. It blocks while the queue is full and returns
// ErrPoolClosed once Close has been called.
func (p *WorkerPool) Submit(ctx context.Context, job Job) error {
	p.sendMu.RLock()
	defer p.sendMu.RUnlock()
	select {
	case <-p.done:
		return ErrPoolClosed
	default:
	}
	select {
	case <-p.done:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	case p.jobs <- job:
		return nil
	}
}

// Close stops accepting new jobs. Jobs already queued still run.
func (p *WorkerPool) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
	})
}

// Wait closes the pool, drains the queue and waits for every worker.
func (p *WorkerPool) Wait() error {
	p.Close()
	p.drainOnce.Do(func() {
		p.sendMu.Lock()
		close(p.jobs)
		p.sendMu.Unlock()
	})
	p.wg.Wait()
	return p.err
}

func (p *WorkerPool) fail(err error) {
	p.errOnce.Do(func() { p.err = err })
}
