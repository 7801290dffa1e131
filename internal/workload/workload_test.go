package workload

import "testing"

func TestGenerateIsDeterministic(t *testing.T) {
	a := Generate(1000, 50, 30, 20)
	b := Generate(1000, 50, 30, 20)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("item %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGenerateKeyRange(t *testing.T) {
	items := Generate(2000, 50, 100, 0)
	for _, it := range items {
		if it.Key < 10 || it.Key >= 60 {
			t.Fatalf("key %d out of range [10, 60)", it.Key)
		}
	}
}

func TestGenerateOpSplit(t *testing.T) {
	const n = 1000
	items := Generate(n, 50, 30, 20)
	wantIns := n * 30 / 100
	wantDel := n * 20 / 100
	for i, it := range items {
		switch {
		case i < wantIns:
			if it.Op != Insert {
				t.Fatalf("item %d: op = %v, want Insert", i, it.Op)
			}
		case i < wantIns+wantDel:
			if it.Op != Delete {
				t.Fatalf("item %d: op = %v, want Delete", i, it.Op)
			}
		default:
			if it.Op != Contains {
				t.Fatalf("item %d: op = %v, want Contains", i, it.Op)
			}
		}
	}
}

func TestGenerateZeroItems(t *testing.T) {
	items := Generate(0, 100, 100, 0)
	if len(items) != 0 {
		t.Fatalf("expected no items, got %d", len(items))
	}
}

func TestPartitionCoversEveryIndexExactlyOnce(t *testing.T) {
	const numItems = 97
	const numThreads = 4
	parts := Partition(numItems, numThreads)
	if len(parts) != numThreads {
		t.Fatalf("got %d partitions, want %d", len(parts), numThreads)
	}
	seen := make([]bool, numItems)
	for thread, part := range parts {
		for _, idx := range part {
			if idx%numThreads != thread {
				t.Fatalf("index %d assigned to thread %d, want %d", idx, thread, idx%numThreads)
			}
			if seen[idx] {
				t.Fatalf("index %d assigned twice", idx)
			}
			seen[idx] = true
		}
	}
	for i, ok := range seen {
		if !ok {
			t.Fatalf("index %d never assigned to any thread", i)
		}
	}
}
