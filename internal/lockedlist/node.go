package lockedlist

// Node is one cell of the locked sorted list. Unlike the lock-free
// variant it needs no mark bit: the list's single mutex already
// serializes every mutation, so deletion unlinks a node outright instead
// of marking it first.
type Node struct {
	key  uint64
	next *Node
}
