// Package workers provides the bounded fan-out/fan-in pool used for
// parallel fingerprinting. Workers compute results independently and
// hand them back over a channel; only the calling goroutine touches
// the collected result slice, so no locks are needed.
package workers

import (
	"runtime"
	"sync"
)

// DefaultCount returns the default worker count, sized to available
// parallelism.
func DefaultCount() int {
	return runtime.NumCPU()
}

type indexed[R any] struct {
	index  int
	result R
}

// Map applies fn to every item using count workers and returns the
// results in input order. Completion order is unspecified; results are
// re-keyed by index on the calling goroutine, restoring determinism.
// onResult, if non-nil, is invoked on the calling goroutine once per
// completed item, in completion order.
func Map[T any, R any](count int, items []T, fn func(T) R, onResult func(index int)) []R {
	if len(items) == 0 {
		return nil
	}
	if count < 1 {
		count = DefaultCount()
	}
	if count > len(items) {
		count = len(items)
	}

	jobs := make(chan int)
	out := make(chan indexed[R])

	var wg sync.WaitGroup
	for w := 0; w < count; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out <- indexed[R]{index: i, result: fn(items[i])}
			}
		}()
	}

	go func() {
		for i := range items {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
		close(out)
	}()

	results := make([]R, len(items))
	for r := range out {
		results[r.index] = r.result
		if onResult != nil {
			onResult(r.index)
		}
	}
	return results
}
