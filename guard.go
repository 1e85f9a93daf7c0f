package typedlog

import (
	"sync"
	"sync/atomic"
)

// guard is a reader/writer lock that becomes permanently unusable once a
// panic escapes a write critical section. A broken guard runs nothing:
// reads observe an empty registry and writes are dropped.
type guard struct {
	mu     sync.RWMutex
	broken atomic.Bool
}

// read runs fn under the shared lock. It reports false if fn did not run.
func (g *guard) read(fn func()) bool {
	if g.broken.Load() {
		return false
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.broken.Load() {
		return false
	}
	fn()
	return true
}

// write runs fn under the exclusive lock. It reports false if fn did not
// run to completion; a panic in fn breaks the guard and keeps unwinding.
func (g *guard) write(fn func()) (ok bool) {
	if g.broken.Load() {
		return false
	}

	g.mu.Lock()
	defer func() {
		if !ok {
			g.broken.Store(true)
		}
		g.mu.Unlock()
	}()

	if g.broken.Load() {
		return false
	}
	fn()
	return true
}

func (g *guard) isBroken() bool { return g.broken.Load() }
