// Package markedref implements the single atomic word Harris/Michael's
// lock-free list mutates for every insert and delete: a node reference
// paired with a one-bit logical-deletion mark, compare-and-swapped as a
// unit so no goroutine ever observes the reference updated without the
// mark, or vice versa.
package markedref

import "sync/atomic"

// pair is the immutable (reference, mark) payload a MarkedRef points at.
// Rather than stealing the low bit of the reference itself (the source's
// approach, which needs unsafe.Pointer arithmetic and fights a precise
// GC), the two values are boxed together and the box's address is what
// gets compare-and-swapped — the same trick
// java.util.concurrent.atomic.AtomicMarkableReference uses to give a
// managed-memory language a single-word joint CAS. See DESIGN.md.
type pair[T any] struct {
	ref  *T
	mark bool
}

// MarkedRef is a single atomic word carrying both a reference and a
// mark bit, mutated jointly. The zero value is (nil, false).
type MarkedRef[T any] struct {
	p atomic.Pointer[pair[T]]
}

// Store overwrites the (reference, mark) pair with a single atomic store,
// not a CAS. It is used only while a node is still privately owned (e.g. wiring a freshly allocated node's next field
// before it is published to other goroutines via a splicing CAS).
func (m *MarkedRef[T]) Store(ref *T, mark bool) {
	m.p.Store(&pair[T]{ref: ref, mark: mark})
}

// Load is an acquire read of the (reference, mark) pair.
func (m *MarkedRef[T]) Load() (ref *T, mark bool) {
	p := m.p.Load()
	if p == nil {
		return nil, false
	}
	return p.ref, p.mark
}

// Reference is an acquire read of just the reference half.
func (m *MarkedRef[T]) Reference() *T {
	ref, _ := m.Load()
	return ref
}

// Mark is an acquire read of just the mark half.
func (m *MarkedRef[T]) Mark() bool {
	_, mark := m.Load()
	return mark
}

// CompareAndSet atomically replaces (expectedRef, expectedMark) with
// (newRef, newMark), succeeding only if the word still holds the
// expectation at the moment of the swap. Release ordering on success,
// acquire on failure, inherited from atomic.Pointer.CompareAndSwap.
//
// ABA is not a hazard here: nodes are never recycled and a node's mark
// transitions monotonically false->true, so a (ref, mark) value that
// compares equal to what a caller observed earlier really is the same
// logical state, not a stale one that happened to repeat (spec §9's "ABA
// avoidance" reasoning).
func (m *MarkedRef[T]) CompareAndSet(expectedRef *T, newRef *T, expectedMark, newMark bool) bool {
	old := m.p.Load()
	switch {
	case old == nil:
		if expectedRef != nil || expectedMark {
			return false
		}
	case old.ref != expectedRef || old.mark != expectedMark:
		return false
	}
	return m.p.CompareAndSwap(old, &pair[T]{ref: newRef, mark: newMark})
}
