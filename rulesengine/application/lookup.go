package application

import (
	"context"
	"fmt"
	"time"
)

type readResult[T any] struct {
	value T
	err   error
}

// boundedRead runs read with a deadline and returns when either the read
// finishes or the deadline passes, even if the store ignores ctx. A panic in
// read is reported as an error.
func boundedRead[T any](ctx context.Context, timeout time.Duration, read func(ctx context.Context) (T, error)) (T, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan readResult[T], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				var zero T
				done <- readResult[T]{value: zero, err: fmt.Errorf("panic: %v", r)}
			}
		}()
		v, err := read(lookupCtx)
		done <- readResult[T]{value: v, err: err}
	}()

	select {
	case res := <-done:
		return res.value, res.err
	case <-lookupCtx.Done():
		var zero T
		return zero, lookupCtx.Err()
	}
}
