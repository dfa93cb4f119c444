package modelcache

import "time"

// Hooks lightweight callbacks for cache activity.
// The manager invokes them after releasing its lock, so an implementation may
// call back into the manager. They still run on the caller's goroutine and
// should be cheap; wrap slow sinks with hooks/async.
type Hooks interface {
	// A class partition was created by its first write.
	ClassCreated(class string)
	// A container was created by its first insertion.
	ContainerCreated(class string, containerID int)

	ObjectAdded(class string)
	ContainerAdded(class string, containerID int, atHead bool)

	// n log entries (or container entries) were dropped for a key. n may be 0.
	ObjectsRemoved(class string, n int)
	ContainerEntriesRemoved(class string, containerID int, n int)

	ClassCleared(class string)
	ContainerCleared(class string, containerID int)

	// A list read completed. inContainer is false for log replays, in which
	// case containerID is meaningless.
	Replayed(class string, containerID int, inContainer bool, n int, elapsed time.Duration)

	// A read found no class, key or container.
	Miss(class string)

	// A key whose dynamic type is not comparable was rejected.
	InvalidKey(class string)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) ClassCreated(string)                            {}
func (NopHooks) ContainerCreated(string, int)                   {}
func (NopHooks) ObjectAdded(string)                             {}
func (NopHooks) ContainerAdded(string, int, bool)               {}
func (NopHooks) ObjectsRemoved(string, int)                     {}
func (NopHooks) ContainerEntriesRemoved(string, int, int)       {}
func (NopHooks) ClassCleared(string)                            {}
func (NopHooks) ContainerCleared(string, int)                   {}
func (NopHooks) Replayed(string, int, bool, int, time.Duration) {}
func (NopHooks) Miss(string)                                    {}
func (NopHooks) InvalidKey(string)                              {}
