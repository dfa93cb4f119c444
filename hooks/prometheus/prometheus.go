// Package promhooks exports modelcache activity as Prometheus metrics.
//
//	reg := prometheus.NewRegistry()
//	hooks, err := promhooks.New(promhooks.Config{Registerer: reg})
//	m := modelcache.New(modelcache.Options{Hooks: hooks})
//	reg.MustRegister(promhooks.NewStatsCollector("", m))
package promhooks

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/unkn0wn-root/modelcache"
)

const defaultNamespace = "modelcache"

// Config controls metric naming and registration.
type Config struct {
	Registerer prometheus.Registerer // nil => prometheus.DefaultRegisterer
	Namespace  string                // "" => "modelcache"
	Subsystem  string
	// Buckets for the replay latency histogram, in seconds. nil => prometheus.DefBuckets.
	LatencyBuckets []float64
}

// Hooks implements modelcache.Hooks on top of Prometheus collectors.
type Hooks struct {
	events     *prometheus.CounterVec
	removed    *prometheus.CounterVec
	replays    *prometheus.HistogramVec
	replaySize *prometheus.HistogramVec
}

var _ modelcache.Hooks = (*Hooks)(nil)

// New builds and registers the collectors.
func New(cfg Config) (*Hooks, error) {
	reg := cfg.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	ns := cfg.Namespace
	if ns == "" {
		ns = defaultNamespace
	}
	buckets := cfg.LatencyBuckets
	if buckets == nil {
		buckets = prometheus.DefBuckets
	}

	h := &Hooks{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: cfg.Subsystem,
			Name:      "events_total",
			Help:      "Cache events by class and kind.",
		}, []string{"class", "event"}),
		removed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: cfg.Subsystem,
			Name:      "removed_entries_total",
			Help:      "Entries dropped by remove operations, by class and scope (log or container).",
		}, []string{"class", "scope"}),
		replays: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Subsystem: cfg.Subsystem,
			Name:      "replay_duration_seconds",
			Help:      "Time spent replaying a class log or container.",
			Buckets:   buckets,
		}, []string{"class", "scope"}),
		replaySize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Subsystem: cfg.Subsystem,
			Name:      "replay_objects",
			Help:      "Objects returned by a replay.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"class", "scope"}),
	}

	for _, c := range []prometheus.Collector{h.events, h.removed, h.replays, h.replaySize} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("promhooks: register: %w", err)
		}
	}
	return h, nil
}

const (
	scopeLog       = "log"
	scopeContainer = "container"
)

func (h *Hooks) inc(class, event string) { h.events.WithLabelValues(class, event).Inc() }

func (h *Hooks) ClassCreated(class string)            { h.inc(class, "class_created") }
func (h *Hooks) ContainerCreated(class string, _ int) { h.inc(class, "container_created") }
func (h *Hooks) ObjectAdded(class string)             { h.inc(class, "object_added") }
func (h *Hooks) ClassCleared(class string)            { h.inc(class, "class_cleared") }
func (h *Hooks) ContainerCleared(class string, _ int) { h.inc(class, "container_cleared") }
func (h *Hooks) Miss(class string)                    { h.inc(class, "miss") }
func (h *Hooks) InvalidKey(class string)              { h.inc(class, "invalid_key") }

func (h *Hooks) ContainerAdded(class string, _ int, atHead bool) {
	if atHead {
		h.inc(class, "container_added_head")
		return
	}
	h.inc(class, "container_added_tail")
}

func (h *Hooks) ObjectsRemoved(class string, n int) {
	h.removed.WithLabelValues(class, scopeLog).Add(float64(n))
}

func (h *Hooks) ContainerEntriesRemoved(class string, _ int, n int) {
	h.removed.WithLabelValues(class, scopeContainer).Add(float64(n))
}

func (h *Hooks) Replayed(class string, _ int, inContainer bool, n int, elapsed time.Duration) {
	scope := scopeLog
	if inContainer {
		scope = scopeContainer
	}
	h.replays.WithLabelValues(class, scope).Observe(elapsed.Seconds())
	h.replaySize.WithLabelValues(class, scope).Observe(float64(n))
}

// StatsSource is satisfied by *modelcache.Manager.
type StatsSource interface {
	Classes() []string
	Stats(class string) (modelcache.Stats, bool)
}

// StatsCollector reports per-class sizes as gauges at scrape time.
type StatsCollector struct {
	src              StatsSource
	logEntries       *prometheus.Desc
	keys             *prometheus.Desc
	containers       *prometheus.Desc
	containerEntries *prometheus.Desc
}

var _ prometheus.Collector = (*StatsCollector)(nil)

func NewStatsCollector(namespace string, src StatsSource) *StatsCollector {
	if namespace == "" {
		namespace = defaultNamespace
	}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, []string{"class"}, nil)
	}
	return &StatsCollector{
		src:              src,
		logEntries:       desc("log_entries", "Entries in the class insertion log."),
		keys:             desc("keys", "Keys resolvable to a current object."),
		containers:       desc("containers", "Containers held by the class."),
		containerEntries: desc("container_entries", "Entries across all containers of the class."),
	}
}

func (c *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.logEntries
	ch <- c.keys
	ch <- c.containers
	ch <- c.containerEntries
}

func (c *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	for _, class := range c.src.Classes() {
		s, ok := c.src.Stats(class)
		if !ok {
			continue
		}
		ch <- prometheus.MustNewConstMetric(c.logEntries, prometheus.GaugeValue, float64(s.LogEntries), class)
		ch <- prometheus.MustNewConstMetric(c.keys, prometheus.GaugeValue, float64(s.Keys), class)
		ch <- prometheus.MustNewConstMetric(c.containers, prometheus.GaugeValue, float64(s.Containers), class)
		ch <- prometheus.MustNewConstMetric(c.containerEntries, prometheus.GaugeValue, float64(s.ContainerEntries), class)
	}
}
