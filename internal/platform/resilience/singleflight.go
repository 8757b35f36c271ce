package resilience

import (
	"fmt"
	"sync"
)

// SingleFlight collapses concurrent loads of the same key into one call of
// fn whose result every caller shares. The zero value is ready to use.
type SingleFlight[V any] struct {
	mu       sync.Mutex
	inflight map[string]*flight[V]
}

type flight[V any] struct {
	wg  sync.WaitGroup
	val V
	err error
}

// Do reports shared=true to callers that waited on another caller's fn.
// If fn panics, the panic is re-raised in the calling goroutine and the
// waiters receive an error instead.
func (g *SingleFlight[V]) Do(key string, fn func() (V, error)) (v V, err error, shared bool) {
	g.mu.Lock()
	if f, ok := g.inflight[key]; ok {
		g.mu.Unlock()
		f.wg.Wait()
		return f.val, f.err, true
	}
	if g.inflight == nil {
		g.inflight = make(map[string]*flight[V])
	}
	f := &flight[V]{}
	f.wg.Add(1)
	g.inflight[key] = f
	g.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			f.err = fmt.Errorf("singleflight %q: panic: %v", key, r)
			g.finish(key, f)
			panic(r)
		}
		g.finish(key, f)
	}()

	f.val, f.err = fn()
	return f.val, f.err, false
}

func (g *SingleFlight[V]) finish(key string, f *flight[V]) {
	g.mu.Lock()
	delete(g.inflight, key)
	g.mu.Unlock()
	f.wg.Done()
}
