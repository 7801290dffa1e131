package lockfree

// DefaultBuckets matches the source's fixed NUM_BUCKETS.
const DefaultBuckets = 10000

// Table is a fixed-width bucket array dispatching by key mod B. Each
// bucket owns a fully independent list with its own head/tail sentinels
// — a deliberate simplification of the source's recursive
// split-ordering, which threads bucket-head sentinels through bucket 0's
// list to support a resize this rewrite doesn't implement (see
// DESIGN.md). Bucket 0's head key is the reserved value 0, the one head
// key a real key could otherwise equal; every other bucket's head key
// has the top bit set and so can never collide with a user key. Either
// way, List.Insert rejects a key equal to its own list's head key, so
// the reservation holds per-bucket, not just for bucket 0.
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
	t.buckets[0] = newList(0)
	for i := 1; i < numBuckets; i++ {
		t.buckets[i] = newList(sentinelBit | uint64(i))
	}
	return t
}

func (t *Table) bucket(key uint64) *List {
	return t.buckets[key%uint64(len(t.buckets))]
}

// Insert, Delete, and Contains dispatch to the bucket selected by
// key mod len(buckets), per spec §4.3.
func (t *Table) Insert(key uint64) bool   { return t.bucket(key).Insert(key) }
func (t *Table) Delete(key uint64) bool   { return t.bucket(key).Delete(key) }
func (t *Table) Contains(key uint64) bool { return t.bucket(key).Contains(key) }

// Compact forces a full unlink pass over every bucket. Test-only.
func (t *Table) Compact() {
	for _, b := range t.buckets {
		b.Compact()
	}
}

// Snapshot returns every bucket's live keys concatenated in bucket order
// (each bucket's run is ascending; the result as a whole is not sorted),
// and whether any bucket still has a marked node reachable. Test-only.
func (t *Table) Snapshot() (keys []uint64, sawMarked bool) {
	for _, b := range t.buckets {
		bkeys, marked := b.Snapshot()
		keys = append(keys, bkeys...)
		sawMarked = sawMarked || marked
	}
	return keys, sawMarked
}
