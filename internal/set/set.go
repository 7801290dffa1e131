// Package set exposes the one contract both table implementations
// satisfy, and lets the driver select between them by name (spec §2:
// "Driver sits above both tables and selects one").
package set

import (
	"fmt"

	"concurrentset/internal/lockedlist"
	"concurrentset/internal/lockfree"
)

// Variant names a table implementation.
type Variant string

const (
	LockFree Variant = "lockfree"
	Locked   Variant = "locked"
)

// Table is the shared contract: insert, delete, and membership test over
// a set of uint64 keys. Absence or presence of a key is data, not
// failure — every method returns a plain bool (spec §7).
type Table interface {
	Insert(key uint64) bool
	Delete(key uint64) bool
	Contains(key uint64) bool
}

// New builds a Table of the requested variant with numBuckets buckets.
// An empty Variant defaults to LockFree.
func New(variant Variant, numBuckets int) (Table, error) {
	switch variant {
	case LockFree, "":
		return lockfree.NewTable(numBuckets), nil
	case Locked:
		return lockedlist.NewTable(numBuckets), nil
	default:
		return nil, fmt.Errorf("set: unknown variant %q (want %q or %q)", variant, LockFree, Locked)
	}
}
