package modelcache

import (
	"github.com/unkn0wn-root/modelcache/codec"
)

// Model is a typed view of one class in a Manager.
//
//	users := modelcache.NewModel[int64, *User](modelcache.Shared(), "User",
//	    modelcache.WithSnapshotCodec[*User](codec.Msgpack[*User]{}))
//	_ = users.Add(u.ID, u)
//	feed, _ := users.AllInContainer(feedID, true)
//
// Values stored under the same class by untyped callers with another concrete
// type are invisible to the Model.
type Model[K comparable, V any] struct {
	m     *Manager
	class string
	codec codec.Codec[V]
}

type ModelOption[V any] func(*modelConfig[V])

type modelConfig[V any] struct {
	codec codec.Codec[V]
}

// WithSnapshotCodec makes Add store a deep copy of each value, produced by an
// encode/decode round trip. Without it values are cached as given, so a pointer
// mutated after Add changes the logged snapshot too.
func WithSnapshotCodec[V any](c codec.Codec[V]) ModelOption[V] {
	return func(cfg *modelConfig[V]) { cfg.codec = c }
}

func NewModel[K comparable, V any](m *Manager, class string, opts ...ModelOption[V]) *Model[K, V] {
	var cfg modelConfig[V]
	for _, o := range opts {
		o(&cfg)
	}
	return &Model[K, V]{m: m, class: class, codec: cfg.codec}
}

func (t *Model[K, V]) Class() string { return t.class }

// Add caches v under key. It fails only when the snapshot codec does, and then
// nothing is cached.
func (t *Model[K, V]) Add(key K, v V) error {
	if t.codec != nil {
		b, err := t.codec.Encode(v)
		if err != nil {
			return &SnapshotError{Class: t.class, Key: key, Err: err}
		}
		if v, err = t.codec.Decode(b); err != nil {
			return &SnapshotError{Class: t.class, Key: key, Err: err}
		}
	}
	t.m.AddObject(t.class, key, v)
	return nil
}

func (t *Model[K, V]) AddToContainer(key K, containerID int, atHead bool) {
	t.m.AddToContainer(t.class, key, containerID, atHead)
}

func (t *Model[K, V]) Remove(key K) { t.m.RemoveObject(t.class, key) }

func (t *Model[K, V]) RemoveFromContainer(key K, containerID int) {
	t.m.RemoveFromContainer(t.class, key, containerID)
}

func (t *Model[K, V]) Get(key K) (V, bool) {
	var zero V
	obj, ok := t.m.GetObject(t.class, key)
	if !ok {
		return zero, false
	}
	v, ok := obj.(V)
	if !ok {
		return zero, false
	}
	return v, true
}

func (t *Model[K, V]) All(ascending bool) ([]V, bool) {
	objs, ok := t.m.GetAll(t.class, ascending)
	if !ok {
		return nil, false
	}
	return typed[V](objs), true
}

func (t *Model[K, V]) AllInContainer(containerID int, ascending bool) ([]V, bool) {
	objs, ok := t.m.GetAllInContainer(t.class, containerID, ascending)
	if !ok {
		return nil, false
	}
	return typed[V](objs), true
}

func (t *Model[K, V]) Clear() { t.m.ClearAll(t.class) }

func (t *Model[K, V]) ClearContainer(containerID int) { t.m.ClearContainer(t.class, containerID) }

func typed[V any](objs []any) []V {
	out := make([]V, 0, len(objs))
	for _, o := range objs {
		if v, ok := o.(V); ok {
			out = append(out, v)
		}
	}
	return out
}
