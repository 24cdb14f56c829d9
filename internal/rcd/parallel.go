package rcd

import (
	"context"
	"runtime"
	"sync"
)

// RunAll simulates every config on a bounded set of workers. Results are
// index-aligned with cfgs and share no backing storage.
func RunAll(ctx context.Context, cfgs []Config) ([]Trajectory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	results := make([]Trajectory, len(cfgs))
	if len(cfgs) == 0 {
		return results, nil
	}

	workers := runtime.NumCPU()
	if workers > len(cfgs) {
		workers = len(cfgs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = Simulate(cfgs[idx])
			}
		}()
	}

	var err error
feed:
	for i := range cfgs {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		return nil, err
	}
	return results, nil
}
