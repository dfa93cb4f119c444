package modelcache

import (
	"fmt"
)

// SnapshotError is returned by Model.Add when the snapshot codec could not
// copy the object. The object is not cached in that case.
type SnapshotError struct {
	Class string
	Key   any
	Err   error
}

func (e *SnapshotError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("snapshot %s/%v: unknown error", e.Class, e.Key)
	}
	return fmt.Sprintf("snapshot %s/%v: %v", e.Class, e.Key, e.Err)
}

func (e *SnapshotError) Unwrap() error { return e.Err }
