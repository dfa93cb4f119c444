package modelcache

type logEntry struct {
	obj any
	key any
}

// classCache is the state of one class. The log keeps insertion-time
// snapshots; byKey keeps the latest object per key and is not pruned when the
// log is.
type classCache struct {
	log        []logEntry
	byKey      map[any]any
	containers map[int]*containerCache
}

func newClassCache() *classCache {
	return &classCache{
		byKey:      make(map[any]any),
		containers: make(map[int]*containerCache),
	}
}

func (c *classCache) add(key, obj any) {
	c.log = append(c.log, logEntry{obj: obj, key: key})
	c.byKey[key] = obj
}

func (c *classCache) remove(key any) int {
	kept := c.log[:0]
	for _, e := range c.log {
		if e.key != key {
			kept = append(kept, e)
		}
	}
	n := len(c.log) - len(kept)
	clear(c.log[len(kept):])
	c.log = kept
	return n
}

// container returns the container for id, creating it when create is set.
// The second result reports whether it was created by this call.
func (c *classCache) container(id int, create bool) (*containerCache, bool) {
	cc, ok := c.containers[id]
	if ok || !create {
		return cc, false
	}
	cc = &containerCache{}
	c.containers[id] = cc
	return cc, true
}

// objects replays the log, keeping the first snapshot per key in the chosen
// direction.
func (c *classCache) objects(ascending bool) []any {
	seen := make(map[any]struct{}, len(c.byKey))
	out := make([]any, 0, len(c.byKey))
	n := len(c.log)
	for i := range n {
		e := c.log[i]
		if !ascending {
			e = c.log[n-1-i]
		}
		if _, dup := seen[e.key]; dup {
			continue
		}
		seen[e.key] = struct{}{}
		out = append(out, e.obj)
	}
	return out
}

// resolve maps container keys to their live objects, skipping keys that have
// no object.
func (c *classCache) resolve(keys []any) []any {
	out := make([]any, 0, len(keys))
	for _, k := range keys {
		if obj, ok := c.byKey[k]; ok {
			out = append(out, obj)
		}
	}
	return out
}

func (c *classCache) reset() {
	c.log = nil
	clear(c.containers)
}

func (c *classCache) stats() Stats {
	s := Stats{
		LogEntries: len(c.log),
		Keys:       len(c.byKey),
		Containers: len(c.containers),
	}
	for _, cc := range c.containers {
		s.ContainerEntries += cc.len()
	}
	return s
}
