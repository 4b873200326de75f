package uiloop

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrain_RunsInOrderIncludingNestedPosts(t *testing.T) {
	l := New()
	var order []int
	l.Post(func() {
		order = append(order, 1)
		l.Post(func() { order = append(order, 3) })
	})
	l.Post(func() { order = append(order, 2) })

	ran := l.Drain()
	assert.Equal(t, 3, ran)
	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Zero(t, l.Len())
}

func TestRun_ProcessesPostsFromOtherGoroutines(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()

	var mu sync.Mutex
	count := 0
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Post(func() {
				mu.Lock()
				count++
				mu.Unlock()
			})
		}()
	}
	wg.Wait()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return count == 20
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)
}

func TestCall_WaitsForTask(t *testing.T) {
	l := New()
	ctx := context.Background()
	go func() { _ = l.Run(ctx) }()
	defer l.Stop()

	value := 0
	require.NoError(t, l.Call(ctx, func() { value = 42 }))
	assert.Equal(t, 42, value)
}

func TestStop_RejectsNewWork(t *testing.T) {
	l := New()
	l.Post(func() { t.Fatal("discarded task must not run") })
	l.Stop()
	l.Stop()

	assert.False(t, l.Post(func() {}))
	assert.Zero(t, l.Drain())
	assert.ErrorIs(t, l.Call(context.Background(), func() {}), ErrStopped)
	assert.NoError(t, l.Run(context.Background()))
}
