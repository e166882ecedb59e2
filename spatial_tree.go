package neighborhood

import "fmt"

// Point is a 2D coordinate. A point's position in its input slice is its
// identity everywhere else (neighbor relations, label slices).
type Point struct {
	X, Y float64
}

// NodeData describes a single node in a spatial tree.
type NodeData struct {
	IdxStart, IdxEnd int
	IsLeaf           bool
	Radius           float64 // ball tree radius; 0 for KD-tree
}

// SpatialIndex is a static index over a point set answering radius queries.
type SpatialIndex interface {
	// QueryRadius returns the indices of all points within distance r of p
	// (inclusive), in unspecified order. A negative r returns nil.
	QueryRadius(p Point, r float64) []int

	// NumPoints returns the number of indexed points.
	NumPoints() int
}

// NewIndex builds the spatial index selected by kind over points.
// A KD-tree needs an axis-aligned box bound, so custom metrics fall back to
// the ball tree, which only relies on the triangle inequality.
func NewIndex(points []Point, kind IndexKind, metric DistanceMetric, leafSize int) (SpatialIndex, error) {
	if metric == nil {
		metric = EuclideanMetric{}
	}
	switch kind {
	case IndexAuto, IndexKDTree, "":
		if !isBoxMetric(metric) {
			return NewBallTree(points, metric, leafSize), nil
		}
		return NewKDTree(points, metric, leafSize), nil
	case IndexBallTree:
		return NewBallTree(points, metric, leafSize), nil
	case IndexBrute:
		return NewBruteIndex(points, metric), nil
	default:
		return nil, fmt.Errorf("neighborhood: invalid Index %q", kind)
	}
}

func isBoxMetric(m DistanceMetric) bool {
	switch m.(type) {
	case EuclideanMetric, ManhattanMetric, ChebyshevMetric:
		return true
	}
	return false
}
