package modelcache

import (
	"reflect"
	"testing"
)

func TestContainerKeys(t *testing.T) {
	cases := []struct {
		name string
		ops  []containerEntry
		asc  []any
		desc []any
	}{
		{name: "empty", asc: []any{}, desc: []any{}},
		{
			name: "head only",
			ops:  []containerEntry{{sideHead, "a"}, {sideHead, "b"}},
			asc:  []any{"a", "b"},
			desc: []any{"b", "a"},
		},
		{
			name: "tail only",
			ops:  []containerEntry{{sideTail, "a"}, {sideTail, "b"}},
			asc:  []any{"a", "b"},
			desc: []any{"b", "a"},
		},
		{
			name: "interleaved",
			ops:  []containerEntry{{sideHead, "a"}, {sideTail, "b"}, {sideHead, "c"}, {sideTail, "d"}},
			asc:  []any{"a", "c", "b", "d"},
			desc: []any{"d", "b", "c", "a"},
		},
		{
			name: "duplicate in same segment",
			ops:  []containerEntry{{sideTail, "a"}, {sideTail, "b"}, {sideTail, "a"}},
			asc:  []any{"a", "b"},
			desc: []any{"a", "b"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var c containerCache
			for _, e := range tc.ops {
				c.add(e.key, e.side == sideHead)
			}
			if got := c.keys(true); !reflect.DeepEqual(got, tc.asc) {
				t.Fatalf("asc=%v want %v", got, tc.asc)
			}
			if got := c.keys(false); !reflect.DeepEqual(got, tc.desc) {
				t.Fatalf("desc=%v want %v", got, tc.desc)
			}
		})
	}
}

func TestContainerRemoveAndReset(t *testing.T) {
	var c containerCache
	c.add("a", true)
	c.add("b", false)
	c.add("a", false)

	if n := c.remove("a"); n != 2 {
		t.Fatalf("removed=%d want 2", n)
	}
	if n := c.remove("missing"); n != 0 {
		t.Fatalf("removed=%d want 0", n)
	}
	if c.len() != 1 {
		t.Fatalf("len=%d want 1", c.len())
	}
	if got := c.keys(true); !reflect.DeepEqual(got, []any{"b"}) {
		t.Fatalf("keys=%v", got)
	}

	c.reset()
	if c.len() != 0 || len(c.keys(false)) != 0 {
		t.Fatalf("reset left entries")
	}
}
