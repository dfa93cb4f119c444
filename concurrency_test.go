package modelcache

import (
	"fmt"
	"testing"

	"golang.org/x/sync/errgroup"
)

// TestConcurrentMixedOperations hammers one class from many goroutines.
// Run with -race; the assertions only check that the structure stays usable.
func TestConcurrentMixedOperations(t *testing.T) {
	const (
		workers = 8
		rounds  = 500
		keys    = 32
	)
	m := New(Options{})

	var g errgroup.Group
	for w := range workers {
		g.Go(func() error {
			for i := range rounds {
				k := (w*rounds + i) % keys
				m.AddObject("item", k, item{ID: k, Rev: i})
				m.AddToContainer("item", k, k%3, i%2 == 0)
				switch i % 5 {
				case 0:
					m.RemoveObject("item", k)
				case 1:
					m.RemoveFromContainer("item", k, k%3)
				case 2:
					if _, ok := m.GetAllInContainer("item", k%3, i%2 == 1); !ok {
						return fmt.Errorf("container %d vanished", k%3)
					}
				case 3:
					if _, ok := m.GetAll("item", i%2 == 1); !ok {
						return fmt.Errorf("class vanished")
					}
				case 4:
					if i%100 == 4 {
						m.ClearContainer("item", k%3)
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	// every key was added at least once and GetObject never forgets
	for k := range keys {
		obj, ok := m.GetObject("item", k)
		if !ok {
			t.Fatalf("key %d lost", k)
		}
		if obj.(item).ID != k {
			t.Fatalf("key %d holds %v", k, obj)
		}
	}

	// replays must agree with each other after the dust settles
	for _, id := range []int{0, 1, 2} {
		asc, ok := m.GetAllInContainer("item", id, true)
		if !ok {
			t.Fatalf("container %d missing", id)
		}
		desc, _ := m.GetAllInContainer("item", id, false)
		if len(asc) != len(desc) {
			t.Fatalf("container %d: asc=%d desc=%d objects", id, len(asc), len(desc))
		}
	}
	asc := mustAll(t, m, "item", true)
	desc := mustAll(t, m, "item", false)
	if len(asc) != len(desc) {
		t.Fatalf("log: asc=%d desc=%d objects", len(asc), len(desc))
	}
}

// TestConcurrentClassesAreIndependent writes distinct classes in parallel.
func TestConcurrentClassesAreIndependent(t *testing.T) {
	m := New(Options{})
	var g errgroup.Group
	for c := range 4 {
		class := fmt.Sprintf("class-%d", c)
		g.Go(func() error {
			for i := range 100 {
				m.AddObject(class, i, item{ID: i})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	for _, class := range m.Classes() {
		if n := len(mustAll(t, m, class, true)); n != 100 {
			t.Fatalf("%s: %d objects want 100", class, n)
		}
	}
	if got := len(m.Classes()); got != 4 {
		t.Fatalf("classes=%d want 4", got)
	}
}
