package neighborhood

import (
	"sync"
	"testing"
)

func TestParallelRanges_CoversEveryIndexOnce(t *testing.T) {
	for _, tc := range []struct{ n, workers int }{
		{0, 4},
		{1, 4},
		{7, 1},
		{7, 3},
		{100, 4},
		{5, 10}, // more workers than items
	} {
		hits := make([]int, tc.n)
		var mu sync.Mutex
		parallelRanges(tc.n, tc.workers, func(start, end int) {
			if start < 0 || end > tc.n || start >= end {
				t.Errorf("n=%d workers=%d: bad range [%d, %d)", tc.n, tc.workers, start, end)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			for i := start; i < end; i++ {
				hits[i]++
			}
		})
		for i, h := range hits {
			if h != 1 {
				t.Errorf("n=%d workers=%d: index %d visited %d times", tc.n, tc.workers, i, h)
			}
		}
	}
}

func TestNeighbors_ParallelBitwiseIdentical(t *testing.T) {
	points := randomPoints(400, 42)

	cfg := DefaultConfig()
	cfg.Workers = 1
	sequential, err := Neighbors(points, 8, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, workers := range []int{2, 4, 7} {
		cfg.Workers = workers
		parallel, err := Neighbors(points, 8, cfg)
		if err != nil {
			t.Fatalf("workers=%d: unexpected error: %v", workers, err)
		}
		if len(parallel) != len(sequential) {
			t.Fatalf("workers=%d: length mismatch %d != %d", workers, len(parallel), len(sequential))
		}
		for i := range sequential {
			if !equalInts(parallel[i], sequential[i]) {
				t.Errorf("workers=%d: rel[%d] = %v, expected %v", workers, i, parallel[i], sequential[i])
			}
		}
	}
}

func TestBootstrap_ParallelBitwiseIdentical(t *testing.T) {
	points := randomPoints(200, 9)
	types := randomTypes(len(points), []string{"T", "B", "Mac", "Tumor"}, 9)
	rel, err := Neighbors(points, 12, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	combos, err := NewCombinations(types, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := DefaultConfig()
	cfg.Trials = 64
	cfg.Seed = 1234
	cfg.Method = MethodZScore
	cfg.Workers = 1
	sequential, err := combos.Bootstrap(types, rel, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, workers := range []int{2, 3, 8} {
		cfg.Workers = workers
		parallel, err := combos.Bootstrap(types, rel, cfg)
		if err != nil {
			t.Fatalf("workers=%d: unexpected error: %v", workers, err)
		}
		for s := range sequential.Values {
			if parallel.Values[s] != sequential.Values[s] {
				t.Errorf("workers=%d: value[%d] = %v, expected %v (bitwise)",
					workers, s, parallel.Values[s], sequential.Values[s])
			}
			for trial := range sequential.Null[s] {
				if parallel.Null[s][trial] != sequential.Null[s][trial] {
					t.Fatalf("workers=%d: null[%d][%d] = %v, expected %v",
						workers, s, trial, parallel.Null[s][trial], sequential.Null[s][trial])
				}
			}
		}
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
