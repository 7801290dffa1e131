package lockfree

import "concurrentset/internal/markedref"

// sentinelBit marks a bucket-head key as structural rather than a member
// of the abstract set. Real keys never have the top bit set (spec §3),
// so a bucket head can never collide with a user key.
const sentinelBit = uint64(1) << 63

// tailKey is the permanent maximum-key sentinel value, 2^64-1.
const tailKey = ^uint64(0)

// Node is one cell of the sorted lock-free list. key is immutable after
// construction; next is the combined (successor, mark) word that every
// insert and delete mutates with a single CAS.
type Node struct {
	key  uint64
	next markedref.MarkedRef[Node]
}

func newNode(key uint64) *Node {
	return &Node{key: key}
}
