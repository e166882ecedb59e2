package neighborhood

import (
	"math"
	"slices"
	"testing"
)

func TestBallTree_Construction_BasicProperties(t *testing.T) {
	points := []Point{{0, 0}, {1, 0}, {2, 0}, {0, 3}, {1, 3}, {2, 3}}
	n := len(points)
	tree := NewBallTree(points, EuclideanMetric{}, 2)

	if tree.NumPoints() != n {
		t.Errorf("NumPoints() = %d, want %d", tree.NumPoints(), n)
	}

	idx := tree.IdxArray()
	seen := make(map[int]bool)
	for _, v := range idx {
		if v < 0 || v >= n || seen[v] {
			t.Errorf("IdxArray is not a permutation: %v", idx)
			break
		}
		seen[v] = true
	}
}

func TestBallTree_Construction_RadiusNonNegative(t *testing.T) {
	tree := NewBallTree(randomPoints(50, 3), EuclideanMetric{}, 4)
	for i, nd := range tree.NodeDataArray() {
		if nd.Radius < 0 || math.IsNaN(nd.Radius) {
			t.Errorf("node %d has radius %v", i, nd.Radius)
		}
	}
}

func TestBallTree_QueryRadius_BruteForceMatch(t *testing.T) {
	points := randomPoints(300, 11)

	for _, metric := range []DistanceMetric{
		EuclideanMetric{},
		ManhattanMetric{},
		ChebyshevMetric{},
	} {
		brute := NewBruteIndex(points, metric)
		for _, leafSize := range []int{1, 8, 40} {
			tree := NewBallTree(points, metric, leafSize)
			for _, r := range []float64{0, 3, 12.5, 60} {
				for q := 0; q < len(points); q += 11 {
					got := sorted(tree.QueryRadius(points[q], r))
					want := brute.QueryRadius(points[q], r)
					if !slices.Equal(got, want) {
						t.Errorf("metric=%T leaf=%d r=%g query=%d: tree=%v brute=%v",
							metric, leafSize, r, q, got, want)
					}
				}
			}
		}
	}
}

func TestBallTree_LeafPointsCoverAll(t *testing.T) {
	points := randomPoints(100, 5)
	tree := NewBallTree(points, EuclideanMetric{}, 7)

	covered := make([]int, len(points))
	idx := tree.IdxArray()
	for _, nd := range tree.NodeDataArray() {
		if !nd.IsLeaf {
			continue
		}
		for i := nd.IdxStart; i < nd.IdxEnd; i++ {
			covered[idx[i]]++
		}
	}
	for i, c := range covered {
		if c != 1 {
			t.Errorf("point %d appears in %d leaves, want 1", i, c)
		}
	}
}

func TestIndexes_EmptyData(t *testing.T) {
	for _, kind := range []IndexKind{IndexKDTree, IndexBallTree, IndexBrute} {
		idx, err := NewIndex(nil, kind, EuclideanMetric{}, 40)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", kind, err)
		}
		if idx.NumPoints() != 0 {
			t.Errorf("%s: NumPoints() = %d, want 0", kind, idx.NumPoints())
		}
		if got := idx.QueryRadius(Point{0, 0}, 10); len(got) != 0 {
			t.Errorf("%s: QueryRadius on empty index = %v, want empty", kind, got)
		}
	}
}

func TestNewIndex_Selection(t *testing.T) {
	points := []Point{{0, 0}, {1, 1}}

	tests := []struct {
		kind   IndexKind
		metric DistanceMetric
		want   string
	}{
		{IndexAuto, EuclideanMetric{}, "*neighborhood.KDTree"},
		{IndexKDTree, ManhattanMetric{}, "*neighborhood.KDTree"},
		{IndexBallTree, EuclideanMetric{}, "*neighborhood.BallTree"},
		{IndexBrute, ChebyshevMetric{}, "*neighborhood.BruteIndex"},
		{IndexKDTree, scaledMetric{2}, "*neighborhood.BallTree"},
	}
	for _, tt := range tests {
		idx, err := NewIndex(points, tt.kind, tt.metric, 1)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.kind, err)
		}
		if got := typeName(idx); got != tt.want {
			t.Errorf("NewIndex(%s, %T) = %s, want %s", tt.kind, tt.metric, got, tt.want)
		}
	}

	if _, err := NewIndex(points, "quadtree", EuclideanMetric{}, 1); err == nil {
		t.Error("expected error for unknown index kind")
	}
}

func TestBallTree_CustomMetric(t *testing.T) {
	points := randomPoints(120, 21)
	metric := scaledMetric{3}
	tree := NewBallTree(points, metric, 5)
	brute := NewBruteIndex(points, metric)

	for q := 0; q < len(points); q += 7 {
		got := sorted(tree.QueryRadius(points[q], 45))
		want := brute.QueryRadius(points[q], 45)
		if !slices.Equal(got, want) {
			t.Errorf("query %d: tree=%v brute=%v", q, got, want)
		}
	}
}

// scaledMetric is Euclidean distance multiplied by a constant; it is a true
// metric the KD-tree does not know how to bound.
type scaledMetric struct{ k float64 }

func (m scaledMetric) Distance(a, b Point) float64        { return m.k * EuclideanMetric{}.Distance(a, b) }
func (m scaledMetric) ReducedDistance(a, b Point) float64 { return m.Distance(a, b) }
func (scaledMetric) ReduceRadius(r float64) float64       { return r }

func typeName(v any) string {
	switch v.(type) {
	case *KDTree:
		return "*neighborhood.KDTree"
	case *BallTree:
		return "*neighborhood.BallTree"
	case *BruteIndex:
		return "*neighborhood.BruteIndex"
	}
	return "unknown"
}
