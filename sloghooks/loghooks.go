package sloghooks

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/unkn0wn-root/modelcache"
)

type Options struct {
	// Sampling to avoid floods on hot paths; 0/1 = log all.
	AddEvery    uint64
	ReplayEvery uint64
	MissEvery   uint64
	// Replays slower than this are logged at warn level regardless of sampling.
	// 0 disables.
	SlowReplay time.Duration
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	addCtr    atomic.Uint64
	replayCtr atomic.Uint64
	missCtr   atomic.Uint64
}

var _ modelcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) ClassCreated(class string) {
	if h.l == nil {
		return
	}
	h.l.Debug("modelcache.class_created", "class", class)
}

func (h *Hooks) ContainerCreated(class string, containerID int) {
	if h.l == nil {
		return
	}
	h.l.Debug("modelcache.container_created", "class", class, "container", containerID)
}

func (h *Hooks) ObjectAdded(class string) {
	if h.l == nil || !sample(h.opts.AddEvery, &h.addCtr) {
		return
	}
	h.l.Debug("modelcache.object_added", "class", class)
}

func (h *Hooks) ContainerAdded(class string, containerID int, atHead bool) {
	if h.l == nil || !sample(h.opts.AddEvery, &h.addCtr) {
		return
	}
	h.l.Debug("modelcache.container_added",
		"class", class,
		"container", containerID,
		"at_head", atHead)
}

func (h *Hooks) ObjectsRemoved(class string, n int) {
	if h.l == nil {
		return
	}
	h.l.Debug("modelcache.objects_removed", "class", class, "removed", n)
}

func (h *Hooks) ContainerEntriesRemoved(class string, containerID int, n int) {
	if h.l == nil {
		return
	}
	h.l.Debug("modelcache.container_entries_removed",
		"class", class,
		"container", containerID,
		"removed", n)
}

func (h *Hooks) ClassCleared(class string) {
	if h.l == nil {
		return
	}
	h.l.Info("modelcache.class_cleared", "class", class)
}

func (h *Hooks) ContainerCleared(class string, containerID int) {
	if h.l == nil {
		return
	}
	h.l.Info("modelcache.container_cleared", "class", class, "container", containerID)
}

func (h *Hooks) Replayed(class string, containerID int, inContainer bool, n int, elapsed time.Duration) {
	if h.l == nil {
		return
	}
	args := []any{"class", class, "count", n, "elapsed", elapsed}
	if inContainer {
		args = append(args, "container", containerID)
	}
	if h.opts.SlowReplay > 0 && elapsed >= h.opts.SlowReplay {
		h.l.Warn("modelcache.slow_replay", args...)
		return
	}
	if !sample(h.opts.ReplayEvery, &h.replayCtr) {
		return
	}
	h.l.Debug("modelcache.replayed", args...)
}

func (h *Hooks) Miss(class string) {
	if h.l == nil || !sample(h.opts.MissEvery, &h.missCtr) {
		return
	}
	h.l.Debug("modelcache.miss", "class", class)
}

func (h *Hooks) InvalidKey(class string) {
	if h.l == nil {
		return
	}
	h.l.Warn("modelcache.invalid_key", "class", class)
}
