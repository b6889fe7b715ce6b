// Package worker provides the bounded fan-out used to hash a
// composite's components concurrently, and the read throttle applied
// to mesh I/O.
package worker

import (
	"context"
	"sync"
)

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution
type Result interface {
	GetError() error
}

// Run executes all jobs with at most workers concurrent goroutines and
// returns their results in job order. A cancelled context stops
// unstarted jobs; their slots hold a nil Result.
func Run(ctx context.Context, workers int, jobs []Job) []Result {
	if len(jobs) == 0 {
		return []Result{}
	}
	if workers <= 0 {
		workers = 1
	}

	results := make([]Result, len(jobs))
	semaphore := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, job := range jobs {
		wg.Add(1)
		go func(idx int, j Job) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			results[idx] = j.Execute(ctx)
		}(i, job)
	}

	wg.Wait()
	return results
}
