// Package uiloop provides the single-threaded, cooperative event loop that
// every view-model operation runs on.
//
// Work arriving from other goroutines (host replies, file watchers, HTTP
// handlers) is posted onto the loop instead of touching the view tree
// directly. Tasks run strictly in FIFO order, one at a time.
package uiloop

import (
	"context"
	"errors"
	"sync"
)

// ErrStopped is returned by Call when the loop no longer accepts work.
var ErrStopped = errors.New("ui loop stopped")

// Loop is an unbounded FIFO of tasks executed by a single goroutine.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	stopped bool
	done    chan struct{}
	stopOne sync.Once
}

// New creates an idle loop.
func New() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Post enqueues fn. It never blocks and is safe from any goroutine,
// including from a task already running on the loop. It returns false if the
// loop has been stopped.
func (l *Loop) Post(fn func()) bool {
	if fn == nil {
		return true
	}
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Len returns the number of queued tasks.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

func (l *Loop) pop() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil, false
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn, true
}

// Drain runs queued tasks on the calling goroutine until the queue is empty,
// including tasks posted while draining. It returns how many ran.
func (l *Loop) Drain() int {
	n := 0
	for {
		fn, ok := l.pop()
		if !ok {
			return n
		}
		fn()
		n++
	}
}

// Run processes tasks until ctx is cancelled or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.Drain()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case <-l.wake:
		}
	}
}

// Stop makes Run return and rejects further posts. Tasks still queued are
// discarded.
func (l *Loop) Stop() {
	l.stopOne.Do(func() {
		l.mu.Lock()
		l.stopped = true
		l.queue = nil
		l.mu.Unlock()
		close(l.done)
	})
}

// Done is closed once Stop has been called.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Call posts fn and waits for it to finish. It must not be called from a task
// running on the loop.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return ErrStopped
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrStopped
	}
}
