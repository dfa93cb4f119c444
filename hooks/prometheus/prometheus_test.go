package promhooks

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/modelcache"
)

func newManager(t *testing.T) (*modelcache.Manager, *Hooks, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	h, err := New(Config{Registerer: reg})
	require.NoError(t, err)
	return modelcache.New(modelcache.Options{Hooks: h}), h, reg
}

func TestEventCounters(t *testing.T) {
	m, h, _ := newManager(t)

	m.AddObject("User", 1, "a")
	m.AddObject("User", 2, "b")
	m.AddToContainer("User", 1, 9, true)
	m.AddToContainer("User", 2, 9, false)
	m.AddToContainer("User", 1, 9, false)
	m.RemoveFromContainer("User", 1, 9)
	m.RemoveObject("User", 2)
	m.GetObject("User", 3)
	m.GetAllInContainer("User", 9, true)
	m.GetAll("User", false)

	ev := func(name string) float64 { return testutil.ToFloat64(h.events.WithLabelValues("User", name)) }
	assert.Equal(t, 1.0, ev("class_created"))
	assert.Equal(t, 1.0, ev("container_created"))
	assert.Equal(t, 2.0, ev("object_added"))
	assert.Equal(t, 1.0, ev("container_added_head"))
	assert.Equal(t, 2.0, ev("container_added_tail"))
	assert.Equal(t, 1.0, ev("miss"))

	assert.Equal(t, 2.0, testutil.ToFloat64(h.removed.WithLabelValues("User", scopeContainer)))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.removed.WithLabelValues("User", scopeLog)))

	assert.Equal(t, 2, testutil.CollectAndCount(h.replays))
}

func TestStatsCollector(t *testing.T) {
	m, _, reg := newManager(t)
	reg.MustRegister(NewStatsCollector("", m))

	m.AddObject("User", 1, "a")
	m.AddObject("User", 1, "a2")
	m.AddToContainer("User", 1, 1, true)
	m.AddToContainer("User", 1, 2, true)
	m.AddObject("Post", 7, "p")

	expected := `
# HELP modelcache_log_entries Entries in the class insertion log.
# TYPE modelcache_log_entries gauge
modelcache_log_entries{class="Post"} 1
modelcache_log_entries{class="User"} 2
# HELP modelcache_container_entries Entries across all containers of the class.
# TYPE modelcache_container_entries gauge
modelcache_container_entries{class="Post"} 0
modelcache_container_entries{class="User"} 2
`
	err := testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"modelcache_log_entries", "modelcache_container_entries")
	require.NoError(t, err)
}

func TestDuplicateRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(Config{Registerer: reg, Namespace: "app"})
	require.NoError(t, err)
	_, err = New(Config{Registerer: reg, Namespace: "app"})
	require.Error(t, err)
}
