// Package lockedlist implements the lock-based peer of internal/lockfree:
// a sorted singly-linked list under a single exclusive mutex, and a fixed
// bucket table with one independent lock per bucket.
package lockedlist

import "sync"

// ReservedHeadKey is the key reserved for the list's permanent head
// sentinel. Insert rejects it outright rather than letting it silently
// collide with the sentinel (spec §9's note on the source using key 0
// for both the sentinel and a potential user key).
const ReservedHeadKey = 0

// List is a sorted singly-linked list guarded by one mutex; every
// Insert, Delete, and Contains is linearized at lock acquisition.
type List struct {
	mu   sync.Mutex
	head *Node
}

// NewList builds an empty list with a permanent head sentinel.
func NewList() *List {
	return &List{head: &Node{key: ReservedHeadKey}}
}

// Insert adds key to the set, keeping the list sorted. It returns false
// if key is already present or equals the reserved sentinel key.
func (l *List) Insert(key uint64) bool {
	if key == ReservedHeadKey {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	pred := l.head
	curr := pred.next
	for curr != nil && curr.key < key {
		pred = curr
		curr = curr.next
	}
	if curr != nil && curr.key == key {
		return false
	}
	pred.next = &Node{key: key, next: curr}
	return true
}

// Delete removes key from the set. It returns false if key is absent.
func (l *List) Delete(key uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	pred := l.head
	curr := pred.next
	for curr != nil && curr.key < key {
		pred = curr
		curr = curr.next
	}
	if curr == nil || curr.key != key {
		return false
	}
	pred.next = curr.next
	return true
}

// Contains reports whether key is present.
func (l *List) Contains(key uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	curr := l.head.next
	for curr != nil && curr.key < key {
		curr = curr.next
	}
	return curr != nil && curr.key == key
}

// Snapshot returns the list's contents in ascending order. It takes the
// same lock as every mutator, so it's safe to call concurrently, but is
// intended for quiescent-state test assertions.
func (l *List) Snapshot() []uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	var keys []uint64
	for curr := l.head.next; curr != nil; curr = curr.next {
		keys = append(keys, curr.key)
	}
	return keys
}
