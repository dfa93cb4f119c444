package modelcache

// side tags which segment of a container an entry belongs to.
type side uint8

const (
	sideTail side = iota
	sideHead
)

type containerEntry struct {
	side side
	key  any
}

// containerCache holds the membership of one container as a single
// chronological sequence of tagged entries. Head and tail segments are derived
// from the tags at replay time, so removal can never desynchronize them.
type containerCache struct {
	entries []containerEntry
}

func (c *containerCache) add(key any, atHead bool) {
	s := sideTail
	if atHead {
		s = sideHead
	}
	c.entries = append(c.entries, containerEntry{side: s, key: key})
}

// remove drops every entry for key from both segments and reports how many went.
func (c *containerCache) remove(key any) int {
	kept := c.entries[:0]
	for _, e := range c.entries {
		if e.key != key {
			kept = append(kept, e)
		}
	}
	n := len(c.entries) - len(kept)
	clear(c.entries[len(kept):]) // release keys held in the tail of the backing array
	c.entries = kept
	return n
}

func (c *containerCache) reset() {
	c.entries = nil
}

func (c *containerCache) len() int { return len(c.entries) }

// keys returns the distinct keys in replay order.
//
// Ascending order is the head segment followed by the tail segment, each in
// insertion order. Descending is the exact reverse. The first occurrence of a
// key in replay order wins.
func (c *containerCache) keys(ascending bool) []any {
	seen := make(map[any]struct{}, len(c.entries))
	out := make([]any, 0, len(c.entries))
	visit := func(e containerEntry) {
		if _, dup := seen[e.key]; dup {
			return
		}
		seen[e.key] = struct{}{}
		out = append(out, e.key)
	}

	if ascending {
		for _, s := range [...]side{sideHead, sideTail} {
			for _, e := range c.entries {
				if e.side == s {
					visit(e)
				}
			}
		}
		return out
	}
	for _, s := range [...]side{sideTail, sideHead} {
		for i := len(c.entries) - 1; i >= 0; i-- {
			if e := c.entries[i]; e.side == s {
				visit(e)
			}
		}
	}
	return out
}
