package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrTaskTimeout is reported for a task that exceeded its time budget.
var ErrTaskTimeout = errors.New("task timed out")

// Future holds the eventual result of one submitted task.
type Future[R any] struct {
	done  chan struct{}
	value R
	err   error
}

// Done is closed once the result is available.
func (f *Future[R]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the task completes or times out.
func (f *Future[R]) Wait() (R, error) {
	<-f.done
	return f.value, f.err
}

// Submit starts task under a context that is cancelled after timeout.
// A timed-out task resolves with ErrTaskTimeout and its late result is dropped.
func Submit[R any](ctx context.Context, timeout time.Duration, task func(ctx context.Context) (R, error)) *Future[R] {
	future := &Future[R]{done: make(chan struct{})}

	taskCtx, cancel := ctx, context.CancelFunc(func() {})
	if timeout > 0 {
		taskCtx, cancel = context.WithTimeout(ctx, timeout)
	}

	type result struct {
		value R
		err   error
	}

	results := make(chan result, 1)

	go func() {
		value, err := task(taskCtx)
		results <- result{value: value, err: err}
	}()

	go func() {
		defer close(future.done)
		defer cancel()

		select {
		case r := <-results:
			// A task that gave up on its own deadline still counts as timed out.
			if r.err != nil && errors.Is(taskCtx.Err(), context.DeadlineExceeded) {
				future.err = timeoutError(timeout)
				return
			}

			future.value, future.err = r.value, r.err
		case <-taskCtx.Done():
			if errors.Is(taskCtx.Err(), context.DeadlineExceeded) {
				future.err = timeoutError(timeout)
			} else {
				future.err = taskCtx.Err()
			}
		}
	}()

	return future
}

func timeoutError(timeout time.Duration) error {
	return fmt.Errorf("%w after %s", ErrTaskTimeout, timeout)
}

// Outcome pairs a pool item with its task result.
type Outcome[T, R any] struct {
	Item  T
	Value R
	Err   error
}

// PoolOptions bounds a worker pool.
type PoolOptions struct {
	Workers int
	Timeout time.Duration
}

// RunPool runs task for every item on at most opts.Workers concurrent tasks,
// each with its own timeout. Outcomes arrive in completion order and the
// channel closes once every item has resolved. Items not yet started when ctx
// is cancelled are skipped.
func RunPool[T, R any](ctx context.Context, items []T, opts PoolOptions, task func(ctx context.Context, item T) (R, error)) <-chan Outcome[T, R] {
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	out := make(chan Outcome[T, R], workers)

	go func() {
		defer close(out)

		var group errgroup.Group

		group.SetLimit(workers)

		for _, item := range items {
			if ctx.Err() != nil {
				slog.Debug("Pool cancelled before all items started", "error", ctx.Err())
				break
			}

			current := item

			group.Go(func() error {
				value, err := Submit(ctx, opts.Timeout, func(taskCtx context.Context) (R, error) {
					return task(taskCtx, current)
				}).Wait()

				out <- Outcome[T, R]{Item: current, Value: value, Err: err}

				return nil
			})
		}

		_ = group.Wait()
	}()

	return out
}
