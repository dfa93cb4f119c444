package asynchook

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/modelcache"
)

type countingHooks struct {
	modelcache.NopHooks
	added    atomic.Int64
	replayed atomic.Int64
	gate     chan struct{} // when non-nil, ObjectAdded blocks until closed
}

func (h *countingHooks) ObjectAdded(string) {
	if h.gate != nil {
		<-h.gate
	}
	h.added.Add(1)
}

func (h *countingHooks) Replayed(string, int, bool, int, time.Duration) { h.replayed.Add(1) }

func TestAsyncDeliversBeforeClose(t *testing.T) {
	inner := &countingHooks{}
	h := New(inner, 2, 128)
	m := modelcache.New(modelcache.Options{Hooks: h})

	for i := range 50 {
		m.AddObject("User", i, i)
	}
	m.GetAll("User", true)
	h.Close()

	assert.EqualValues(t, 50, inner.added.Load())
	assert.EqualValues(t, 1, inner.replayed.Load())
	assert.Zero(t, h.Dropped())
}

func TestAsyncDropsWhenFull(t *testing.T) {
	inner := &countingHooks{gate: make(chan struct{})}
	h := New(inner, 1, 1)

	// one event parks the worker, one fills the queue, the rest drop
	for range 10 {
		h.ObjectAdded("User")
	}
	close(inner.gate)
	h.Close()

	assert.Positive(t, h.Dropped())
	assert.EqualValues(t, 10, inner.added.Load()+int64(h.Dropped()))
}

func TestAsyncCloseIsIdempotentAndSafe(t *testing.T) {
	h := New(&countingHooks{}, 0, 0)
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				h.Miss("User")
			}
		}()
	}
	h.Close()
	h.Close()
	wg.Wait()

	// sends after close are counted as dropped, never panic
	before := h.Dropped()
	h.InvalidKey("User")
	require.Equal(t, before+1, h.Dropped())
}
