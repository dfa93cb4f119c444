// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{ReplayEvery: 100})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	modelcache.SetDefault(modelcache.Options{Hooks: hooks})
package asynchook

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/unkn0wn-root/modelcache"
)

// Hooks forwards events to inner on worker goroutines. Events are dropped,
// never blocked on, when the queue is full.
type Hooks struct {
	inner   modelcache.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex // guards closed against sends on a closed queue
	closed  bool
	dropped atomic.Uint64
}

var _ modelcache.Hooks = (*Hooks)(nil)

func New(inner modelcache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Later events are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.q)
		h.mu.Unlock()
		h.wg.Wait()
	})
}

// Dropped reports how many events were discarded.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
	default: // drop
		h.dropped.Add(1)
	}
}

func (h *Hooks) ClassCreated(c string)          { h.try(func() { h.inner.ClassCreated(c) }) }
func (h *Hooks) ObjectAdded(c string)           { h.try(func() { h.inner.ObjectAdded(c) }) }
func (h *Hooks) ClassCleared(c string)          { h.try(func() { h.inner.ClassCleared(c) }) }
func (h *Hooks) Miss(c string)                  { h.try(func() { h.inner.Miss(c) }) }
func (h *Hooks) InvalidKey(c string)            { h.try(func() { h.inner.InvalidKey(c) }) }
func (h *Hooks) ObjectsRemoved(c string, n int) { h.try(func() { h.inner.ObjectsRemoved(c, n) }) }
func (h *Hooks) ContainerCreated(c string, id int) {
	h.try(func() { h.inner.ContainerCreated(c, id) })
}
func (h *Hooks) ContainerAdded(c string, id int, atHead bool) {
	h.try(func() { h.inner.ContainerAdded(c, id, atHead) })
}
func (h *Hooks) ContainerEntriesRemoved(c string, id, n int) {
	h.try(func() { h.inner.ContainerEntriesRemoved(c, id, n) })
}
func (h *Hooks) ContainerCleared(c string, id int) {
	h.try(func() { h.inner.ContainerCleared(c, id) })
}
func (h *Hooks) Replayed(c string, id int, inContainer bool, n int, d time.Duration) {
	h.try(func() { h.inner.Replayed(c, id, inContainer, n, d) })
}
