// Package benchpool runs independent Puncher solves concurrently across a
// benchmark directory. It is adapted from the teacher's internal/parallel
// StaticWorkerPool: a fixed-size goroutine pool draining a task channel,
// trimmed of the dynamic scaling machinery that package carried for
// miniKanren goal evaluation, since a benchmark run is a known, bounded batch
// of independent files rather than an open-ended search tree.
//
// Per SPEC_FULL.md §2.4 and spec §5, concurrency here is strictly across
// files: each individual Solve call remains single-threaded, so the
// parallelism this package adds never touches the solver's own recursion.
package benchpool

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/mpuncher/matryoshka/pkg/puncher"
	"github.com/mpuncher/matryoshka/pkg/puncher/dimacs"
)

// ErrPoolShutdown is returned by Submit once the pool has been shut down.
var ErrPoolShutdown = errors.New("benchpool: pool is shut down")

// Pool is a fixed-size worker pool over func() tasks.
type Pool struct {
	maxWorkers   int
	taskChan     chan func()
	workerWg     sync.WaitGroup
	shutdownChan chan struct{}
	once         sync.Once
}

// New returns a Pool with maxWorkers goroutines. maxWorkers <= 0 defaults to
// runtime.NumCPU().
func New(maxWorkers int) *Pool {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}

	p := &Pool{
		maxWorkers:   maxWorkers,
		taskChan:     make(chan func(), maxWorkers*2),
		shutdownChan: make(chan struct{}),
	}
	for i := 0; i < maxWorkers; i++ {
		p.workerWg.Add(1)
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.workerWg.Done()
	for {
		select {
		case task := <-p.taskChan:
			if task != nil {
				task()
			}
		case <-p.shutdownChan:
			return
		}
	}
}

// Submit enqueues task, blocking until a slot frees up, ctx is cancelled, or
// the pool is shut down.
func (p *Pool) Submit(ctx context.Context, task func()) error {
	select {
	case <-p.shutdownChan:
		return ErrPoolShutdown
	default:
	}
	select {
	case p.taskChan <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.shutdownChan:
		return ErrPoolShutdown
	}
}

// Shutdown stops accepting new work and waits for in-flight tasks to finish.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		close(p.shutdownChan)
		close(p.taskChan)
		p.workerWg.Wait()
	})
}

// Result is one benchmark file's solve outcome.
type Result struct {
	File     dimacs.BenchmarkFile
	Solve    puncher.Result
	Err      error
	Duration time.Duration
}

// Stats summarizes one Run call across the whole batch.
type Stats struct {
	Submitted     int64
	Completed     int64
	Failed        int64
	TotalDuration int64 // nanoseconds, atomic-updated
}

func (s *Stats) recordCompleted(d time.Duration) {
	atomic.AddInt64(&s.Completed, 1)
	atomic.AddInt64(&s.TotalDuration, int64(d))
}

func (s *Stats) recordFailed() {
	atomic.AddInt64(&s.Failed, 1)
}

// Run solves every file in files concurrently across maxWorkers goroutines,
// returning one Result per file in the same order as the input. opts is
// shared read-only configuration applied to every solve.
func Run(ctx context.Context, files []dimacs.BenchmarkFile, opts puncher.Options, maxWorkers int) ([]Result, *Stats) {
	pool := New(maxWorkers)
	defer pool.Shutdown()

	results := make([]Result, len(files))
	stats := &Stats{}

	var wg sync.WaitGroup
	for i := range files {
		i := i
		f := files[i]
		wg.Add(1)
		atomic.AddInt64(&stats.Submitted, 1)

		err := pool.Submit(ctx, func() {
			defer wg.Done()
			start := time.Now()
			res, err := puncher.Solve(f.Instance, opts)
			d := time.Since(start)
			results[i] = Result{File: f, Solve: res, Err: err, Duration: d}
			if err != nil {
				stats.recordFailed()
			} else {
				stats.recordCompleted(d)
			}
		})
		if err != nil {
			wg.Done()
			results[i] = Result{File: f, Err: err}
			stats.recordFailed()
		}
	}
	wg.Wait()

	return results, stats
}
