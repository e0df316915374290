// Package batch runs one codec operation over many independent values with
// bounded concurrency. Each value is still walked by a single goroutine.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"
)

// Options configures a Run.
type Options struct {
	// MaxConcurrency limits concurrent items (0 = number of CPUs)
	MaxConcurrency int

	// StopOnFirstError cancels the items not yet started after the first failure
	StopOnFirstError bool

	// Progress is called after each item with the number finished so far
	Progress func(done, total int, err error)
}

// Result summarises a Run.
type Result struct {
	Processed int
	Failed    int
	Skipped   int
	Total     int
	Errors    []ItemError
	Duration  time.Duration
}

// ItemError records the failure of one item.
type ItemError struct {
	Index int
	Err   error
}

func (e ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e ItemError) Unwrap() error { return e.Err }

// Run calls fn for every index in [0, total). Errors are collected in index
// order; with StopOnFirstError the first of them is also returned. A
// cancelled ctx stops scheduling and returns ctx.Err().
func Run(ctx context.Context, total int, fn func(ctx context.Context, index int) error, opts *Options) (*Result, error) {
	result := &Result{Total: total}
	if total == 0 {
		return result, nil
	}

	o := Options{MaxConcurrency: runtime.NumCPU()}
	if opts != nil {
		if opts.MaxConcurrency > 0 {
			o.MaxConcurrency = opts.MaxConcurrency
		}
		o.StopOnFirstError = opts.StopOnFirstError
		o.Progress = opts.Progress
	}

	start := time.Now()
	batchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	semaphore := make(chan struct{}, o.MaxConcurrency)
	errs := make([]error, total)
	var wg sync.WaitGroup
	var mu sync.Mutex

	scheduled := 0
schedule:
	for i := 0; i < total; i++ {
		if batchCtx.Err() != nil {
			break
		}
		select {
		case <-batchCtx.Done():
			break schedule
		case semaphore <- struct{}{}:
		}
		if batchCtx.Err() != nil {
			<-semaphore
			break
		}
		scheduled++

		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			defer func() { <-semaphore }()

			err := fn(batchCtx, index)

			mu.Lock()
			defer mu.Unlock()
			errs[index] = err
			if err != nil {
				result.Failed++
				if o.StopOnFirstError {
					cancel()
				}
			} else {
				result.Processed++
			}
			if o.Progress != nil {
				o.Progress(result.Processed+result.Failed, total, err)
			}
		}(i)
	}
	wg.Wait()

	result.Skipped = total - scheduled
	result.Duration = time.Since(start)
	for i, err := range errs {
		if err != nil {
			result.Errors = append(result.Errors, ItemError{Index: i, Err: err})
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	if o.StopOnFirstError && len(result.Errors) > 0 {
		return result, result.Errors[0]
	}
	return result, nil
}
