// Package workerpool sizes the parallelism used during index construction.
//
// This generalizes the teacher's per-transform job count (see
// transform.BWT's "jobs" field and NewBWTWithCtx, which pull a caller-chosen
// worker count out of a context map) to the coarser-grained parallelism of
// building a bidirectional index: its one caller runs two jobs
// (forward/reverse) for direction-parallel work; no per-sequence work is
// run through it.
package workerpool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Pool bounds how many goroutines index construction may use at once.
type Pool struct {
	jobs uint
}

// New creates a Pool with the given job count. A zero count is treated as
// 1 (sequential).
func New(jobs uint) Pool {
	if jobs == 0 {
		jobs = 1
	}
	return Pool{jobs: jobs}
}

// Jobs returns the configured worker count.
func (p Pool) Jobs() uint { return p.jobs }

// Run executes n independent tasks, at most p.Jobs() concurrently, and
// returns the first error encountered (if any). With one job, tasks run in
// order and Run stops at the first failing task; with more, every task is
// started regardless of earlier failures and Run returns once all finish.
func (p Pool) Run(n int, task func(i int) error) error {
	if n == 0 {
		return nil
	}

	jobs := int(p.jobs)
	if jobs > n {
		jobs = n
	}
	if jobs <= 1 {
		for i := 0; i < n; i++ {
			if err := task(i); err != nil {
				return err
			}
		}
		return nil
	}

	g, _ := errgroup.WithContext(context.Background())
	sem := make(chan struct{}, jobs)

	for i := 0; i < n; i++ {
		i := i
		sem <- struct{}{}
		g.Go(func() error {
			defer func() { <-sem }()
			return task(i)
		})
	}

	return g.Wait()
}
