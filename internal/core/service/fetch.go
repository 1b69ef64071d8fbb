package service

import "context"

// Fetch runs load in its own goroutine and hands the outcome to
// deliver only while ctx is still live. A consumer torn down mid-fetch
// cancels its context and the stale result is discarded instead of
// being written into dead state. The liveness check runs again right
// before deliver, so a cancellation racing the load is honoured.
func Fetch[T any](ctx context.Context, load func(context.Context) (T, error), deliver func(T, error)) {
	go func() {
		v, err := load(ctx)
		if ctx.Err() != nil {
			return
		}
		deliver(v, err)
	}()
}
