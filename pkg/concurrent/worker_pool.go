// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package concurrent provides a small worker pool used to fan out
// independent read checks and message sends.
package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// WorkerPool represents a pool of workers that can process jobs concurrently
type WorkerPool struct {
	workerCount int
}

// Run executes all functions using errgroup with goroutine limiting
// Returns the first error encountered, and cancels remaining work
func (wp *WorkerPool) Run(ctx context.Context, functions ...func() error) error {
	if len(functions) == 0 {
		return nil
	}

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(wp.workerCount)

	for _, fn := range functions {
		g.Go(func() error {
			// Check if context was cancelled before starting
			select {
			case <-groupCtx.Done():
				return groupCtx.Err()
			default:
			}

			return fn()
		})
	}

	return g.Wait()
}

// RunAll executes all functions without cancellation on error
// Returns a slice containing only the non-nil errors that occurred
func (wp *WorkerPool) RunAll(ctx context.Context, functions ...func() error) []error {
	if len(functions) == 0 {
		return nil
	}

	errorChan := make(chan error, len(functions))

	g := new(errgroup.Group)
	g.SetLimit(wp.workerCount)

	for _, fn := range functions {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				errorChan <- ctx.Err()
				return nil
			default:
			}

			if err := fn(); err != nil {
				errorChan <- err
			}
			return nil // Always return nil to prevent errgroup from cancelling
		})
	}

	_ = g.Wait() // never returns an error since workers swallow theirs
	close(errorChan)

	var errs []error
	for err := range errorChan {
		errs = append(errs, err)
	}

	return errs
}

// NewWorkerPool creates a new worker pool with the specified number of workers
func NewWorkerPool(workerCount int) *WorkerPool {
	if workerCount <= 0 {
		workerCount = 1
	}
	return &WorkerPool{
		workerCount: workerCount,
	}
}
