package lockedlist

// DefaultBuckets matches the source's fixed NUM_BUCKETS.
const DefaultBuckets = 10000

// Table is a fixed-width bucket array dispatching by key mod B. Each
// bucket has its own lock, so operations on distinct buckets proceed in
// parallel while operations on the same bucket serialize (spec §4.5).
type Table struct {
	buckets []*List
}

// NewTable builds a table with numBuckets buckets, defaulting to
// DefaultBuckets when numBuckets is not positive.
func NewTable(numBuckets int) *Table {
	if numBuckets <= 0 {
		numBuckets = DefaultBuckets
	}
	t := &Table{buckets: make([]*List, numBuckets)}
	for i := range t.buckets {
		t.buckets[i] = NewList()
	}
	return t
}

func (t *Table) bucket(key uint64) *List {
	return t.buckets[key%uint64(len(t.buckets))]
}

func (t *Table) Insert(key uint64) bool   { return t.bucket(key).Insert(key) }
func (t *Table) Delete(key uint64) bool   { return t.bucket(key).Delete(key) }
func (t *Table) Contains(key uint64) bool { return t.bucket(key).Contains(key) }

// Snapshot returns the union of every bucket's contents. Test-only.
func (t *Table) Snapshot() []uint64 {
	var keys []uint64
	for _, b := range t.buckets {
		keys = append(keys, b.Snapshot()...)
	}
	return keys
}
