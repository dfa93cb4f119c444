// Package modelcache is a process-wide, in-memory object cache for an
// object-mapping layer. Objects are partitioned by class name and keyed by a
// primary key; each class can also hold ordered containers (lists, feeds,
// pages) whose members are keys of that class.
//
// Per class:
//   - log: every AddObject as an (object, key) snapshot, in insertion order.
//   - current objects: key -> most recently added object (last write wins).
//   - containers: id -> sequence of keys, each tagged head or tail.
//
// Reads:
//
//	GetObject            current object for a key
//	GetAll               log replay; one snapshot per key (earliest when
//	                     ascending, latest when descending)
//	GetAllInContainer    head segment then tail segment (reversed when
//	                     descending), resolved to current objects
//
// Removing a key from the log, or clearing a class, does not drop its current
// object; GetObject keeps returning it. Objects outlive list membership.
//
// A single lock guards the whole Manager. Hooks and logging run after it is
// released. Model[K, V] is a typed view over one class.
package modelcache
