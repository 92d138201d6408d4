package resilience

import (
	"context"
	"sync"
)

// Group deduplicates concurrent calls for the same key. Callers that join
// an in-flight call share its result and error.
type Group[T any] struct {
	mu    sync.Mutex
	calls map[string]*call[T]
}

type call[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Do runs fn once per key at a time. shared is true when the result came
// from another caller's execution.
func (g *Group[T]) Do(key string, fn func() (T, error)) (val T, shared bool, err error) {
	return g.DoContext(context.Background(), key, fn)
}

// DoContext is Do, except the caller stops waiting when ctx is done and gets
// ctx.Err(). The flight itself keeps running for the callers still waiting,
// so fn must not depend on any single caller's context.
func (g *Group[T]) DoContext(ctx context.Context, key string, fn func() (T, error)) (val T, shared bool, err error) {
	c, shared := g.join(key, fn)
	select {
	case <-c.done:
		return c.val, shared, c.err
	case <-ctx.Done():
		var zero T
		return zero, shared, ctx.Err()
	}
}

func (g *Group[T]) join(key string, fn func() (T, error)) (*call[T], bool) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*call[T])
	}
	if c, ok := g.calls[key]; ok {
		g.mu.Unlock()
		return c, true
	}

	c := &call[T]{done: make(chan struct{})}
	g.calls[key] = c
	g.mu.Unlock()

	go func() {
		defer func() {
			g.mu.Lock()
			delete(g.calls, key)
			g.mu.Unlock()
			close(c.done)
		}()
		c.val, c.err = fn()
	}()
	return c, false
}
