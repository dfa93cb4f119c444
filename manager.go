package modelcache

import (
	"reflect"
	"sort"
	"sync"
	"time"
)

// Manager is the cache façade. One lock serializes every operation across all
// classes: writers hold it exclusively, readers share it.
//
// The zero value is not usable; construct with New or use Shared.
type Manager struct {
	mu      sync.RWMutex
	classes map[string]*classCache

	log   Logger
	hooks Hooks
}

var (
	sharedOnce sync.Once
	sharedMu   sync.Mutex
	shared     *Manager
	sharedOpts Options
)

// New returns an independent Manager.
func New(opts Options) *Manager {
	return &Manager{
		classes: make(map[string]*classCache),
		log:     coalesce[Logger](opts.Logger, NopLogger{}),
		hooks:   coalesce[Hooks](opts.Hooks, NopHooks{}),
	}
}

// Shared returns the process-wide Manager, creating it on first call.
func Shared() *Manager {
	sharedOnce.Do(func() {
		sharedMu.Lock()
		shared = New(sharedOpts)
		sharedMu.Unlock()
	})
	return shared
}

// SetDefault sets the options Shared will be created with.
// It has no effect once Shared has been called.
func SetDefault(opts Options) {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if shared != nil {
		shared.log.Warn("SetDefault ignored (shared manager already created)", nil)
		return
	}
	sharedOpts = opts
}

// AddObject appends (obj, key) to the class log and makes obj the current
// object for key.
func (m *Manager) AddObject(class string, key, obj any) {
	if !m.checkKey(class, key) {
		return
	}
	m.mu.Lock()
	cc, created := m.classLocked(class)
	cc.add(key, obj)
	m.mu.Unlock()

	if created {
		m.classCreated(class)
	}
	m.hooks.ObjectAdded(class)
}

// AddToContainer appends key to the head or tail segment of a container.
func (m *Manager) AddToContainer(class string, key any, containerID int, atHead bool) {
	if !m.checkKey(class, key) {
		return
	}
	m.mu.Lock()
	cc, classCreated := m.classLocked(class)
	ct, ctCreated := cc.container(containerID, true)
	ct.add(key, atHead)
	m.mu.Unlock()

	if classCreated {
		m.classCreated(class)
	}
	if ctCreated {
		m.log.Debug("container created", Fields{"class": class, "container": containerID})
		m.hooks.ContainerCreated(class, containerID)
	}
	m.hooks.ContainerAdded(class, containerID, atHead)
}

// RemoveObject drops every log entry for key. The object stays reachable
// through GetObject: objects outlive their log membership.
func (m *Manager) RemoveObject(class string, key any) {
	if !m.checkKey(class, key) {
		return
	}
	m.mu.Lock()
	cc, ok := m.classes[class]
	n := 0
	if ok {
		n = cc.remove(key)
	}
	m.mu.Unlock()

	if ok {
		m.hooks.ObjectsRemoved(class, n)
	}
}

// RemoveFromContainer drops every entry for key from both segments of a container.
func (m *Manager) RemoveFromContainer(class string, key any, containerID int) {
	if !m.checkKey(class, key) {
		return
	}
	m.mu.Lock()
	var ct *containerCache
	if cc, ok := m.classes[class]; ok {
		ct, _ = cc.container(containerID, false)
	}
	n := 0
	if ct != nil {
		n = ct.remove(key)
	}
	m.mu.Unlock()

	if ct != nil {
		m.hooks.ContainerEntriesRemoved(class, containerID, n)
	}
}

// GetObject returns the current object for key.
func (m *Manager) GetObject(class string, key any) (any, bool) {
	if !m.checkKey(class, key) {
		m.hooks.Miss(class)
		return nil, false
	}
	m.mu.RLock()
	var (
		obj any
		ok  bool
	)
	if cc, found := m.classes[class]; found {
		obj, ok = cc.byKey[key]
	}
	m.mu.RUnlock()

	if !ok {
		m.hooks.Miss(class)
	}
	return obj, ok
}

// GetAll replays the class log, one object per distinct key. Ascending keeps
// the earliest snapshot of each key, descending the latest. It reports false
// only when the class has never been written.
func (m *Manager) GetAll(class string, ascending bool) ([]any, bool) {
	start := time.Now()
	m.mu.RLock()
	cc, ok := m.classes[class]
	var out []any
	if ok {
		out = cc.objects(ascending)
	}
	m.mu.RUnlock()

	if !ok {
		m.hooks.Miss(class)
		return nil, false
	}
	m.replayed(class, 0, false, len(out), time.Since(start))
	return out, true
}

// GetAllInContainer replays a container and resolves each distinct key to its
// current object, so edits made through AddObject after insertion are visible.
// Keys without an object are skipped.
func (m *Manager) GetAllInContainer(class string, containerID int, ascending bool) ([]any, bool) {
	start := time.Now()
	m.mu.RLock()
	var (
		out []any
		ok  bool
	)
	if cc, found := m.classes[class]; found {
		if ct, _ := cc.container(containerID, false); ct != nil {
			out, ok = cc.resolve(ct.keys(ascending)), true
		}
	}
	m.mu.RUnlock()

	if !ok {
		m.hooks.Miss(class)
		return nil, false
	}
	m.replayed(class, containerID, true, len(out), time.Since(start))
	return out, true
}

// ClearAll empties the class log and drops its containers. Current objects
// remain reachable through GetObject.
func (m *Manager) ClearAll(class string) {
	m.mu.Lock()
	cc, ok := m.classes[class]
	if ok {
		cc.reset()
	}
	m.mu.Unlock()

	if ok {
		m.log.Info("class cleared", Fields{"class": class})
		m.hooks.ClassCleared(class)
	}
}

// ClearContainer empties one container, leaving the log and other containers alone.
func (m *Manager) ClearContainer(class string, containerID int) {
	m.mu.Lock()
	var ct *containerCache
	if cc, ok := m.classes[class]; ok {
		ct, _ = cc.container(containerID, false)
	}
	if ct != nil {
		ct.reset()
	}
	m.mu.Unlock()

	if ct != nil {
		m.log.Info("container cleared", Fields{"class": class, "container": containerID})
		m.hooks.ContainerCleared(class, containerID)
	}
}

// Stats summarizes a class. It reports false for unknown classes.
func (m *Manager) Stats(class string) (Stats, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cc, ok := m.classes[class]
	if !ok {
		return Stats{}, false
	}
	return cc.stats(), true
}

// Classes returns the names of all created classes, sorted.
func (m *Manager) Classes() []string {
	m.mu.RLock()
	out := make([]string, 0, len(m.classes))
	for name := range m.classes {
		out = append(out, name)
	}
	m.mu.RUnlock()
	sort.Strings(out)
	return out
}

// classLocked returns the class, creating it if needed. m.mu must be held for writing.
func (m *Manager) classLocked(class string) (*classCache, bool) {
	if cc, ok := m.classes[class]; ok {
		return cc, false
	}
	cc := newClassCache()
	m.classes[class] = cc
	return cc, true
}

func (m *Manager) classCreated(class string) {
	m.log.Debug("class created", Fields{"class": class})
	m.hooks.ClassCreated(class)
}

func (m *Manager) replayed(class string, containerID int, inContainer bool, n int, elapsed time.Duration) {
	f := Fields{"class": class, "count": n, "elapsed": elapsed}
	if inContainer {
		f["container"] = containerID
	}
	m.log.Debug("replayed", f)
	m.hooks.Replayed(class, containerID, inContainer, n, elapsed)
}

// checkKey reports whether key can be used as a map key. Non-comparable keys
// are logged and rejected rather than allowed to panic inside the lock.
func (m *Manager) checkKey(class string, key any) bool {
	if hashable(key) {
		return true
	}
	m.log.Warn("rejected non-comparable key", Fields{"class": class, "type": reflect.TypeOf(key).String()})
	m.hooks.InvalidKey(class)
	return false
}

func hashable(key any) bool {
	if key == nil {
		return true
	}
	return reflect.ValueOf(key).Comparable()
}
