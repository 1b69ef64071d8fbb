package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFetch_DeliversResult(t *testing.T) {
	done := make(chan struct{})
	var got []string
	var gotErr error

	Fetch(context.Background(),
		func(context.Context) ([]string, error) { return []string{"a", "b"}, nil },
		func(v []string, err error) {
			got, gotErr = v, err
			close(done)
		})

	<-done
	assert.NoError(t, gotErr)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestFetch_DeliversError(t *testing.T) {
	done := make(chan struct{})
	wantErr := errors.New("boom")
	var gotErr error

	Fetch(context.Background(),
		func(context.Context) (int, error) { return 0, wantErr },
		func(_ int, err error) {
			gotErr = err
			close(done)
		})

	<-done
	assert.ErrorIs(t, gotErr, wantErr)
}

func TestFetch_DiscardsResultAfterCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	returned := make(chan struct{})
	var delivered atomic.Bool

	Fetch(ctx,
		func(ctx context.Context) (string, error) {
			close(started)
			<-ctx.Done()
			defer close(returned)
			return "stale", nil
		},
		func(string, error) { delivered.Store(true) })

	<-started
	cancel()
	<-returned

	// The load has returned; give the fetch goroutine time to run (or
	// skip) the delivery before asserting.
	time.Sleep(50 * time.Millisecond)
	assert.False(t, delivered.Load(), "a torn-down consumer must not receive stale results")
}
