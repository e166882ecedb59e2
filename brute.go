package neighborhood

import "math"

// BruteIndex answers radius queries by scanning every point. It is the
// ground truth the tree indexes are tested against and is competitive for
// very small point sets.
type BruteIndex struct {
	points []Point
	metric DistanceMetric
}

// NewBruteIndex wraps points without building any structure.
func NewBruteIndex(points []Point, metric DistanceMetric) *BruteIndex {
	if metric == nil {
		metric = EuclideanMetric{}
	}
	pts := make([]Point, len(points))
	copy(pts, points)
	return &BruteIndex{points: pts, metric: metric}
}

func (b *BruteIndex) NumPoints() int { return len(b.points) }

// QueryRadius returns, in ascending order, the indices of all points within
// distance r of p.
func (b *BruteIndex) QueryRadius(p Point, r float64) []int {
	if r < 0 || math.IsNaN(r) {
		return nil
	}
	rr := b.metric.ReduceRadius(r)
	var out []int
	for i, q := range b.points {
		if b.metric.ReducedDistance(p, q) <= rr {
			out = append(out, i)
		}
	}
	return out
}
