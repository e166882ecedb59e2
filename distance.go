package neighborhood

import "math"

// DistanceMetric provides distance computation between 2D points, with a
// reduced distance for tree pruning (e.g., squared Euclidean skips sqrt).
// ReduceRadius maps a radius into the same reduced space.
type DistanceMetric interface {
	Distance(a, b Point) float64
	ReducedDistance(a, b Point) float64
	ReduceRadius(r float64) float64
}

// EuclideanMetric computes the Euclidean (L2) distance.
// ReducedDistance returns squared Euclidean distance (skips sqrt).
type EuclideanMetric struct{}

func (EuclideanMetric) Distance(a, b Point) float64 {
	return math.Sqrt(euclideanSumOfSquares(a, b))
}

func (EuclideanMetric) ReducedDistance(a, b Point) float64 {
	return euclideanSumOfSquares(a, b)
}

func (EuclideanMetric) ReduceRadius(r float64) float64 { return r * r }

func euclideanSumOfSquares(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// ManhattanMetric computes the Manhattan (L1 / city-block) distance.
type ManhattanMetric struct{}

func (ManhattanMetric) Distance(a, b Point) float64 {
	return math.Abs(a.X-b.X) + math.Abs(a.Y-b.Y)
}

func (m ManhattanMetric) ReducedDistance(a, b Point) float64 { return m.Distance(a, b) }
func (ManhattanMetric) ReduceRadius(r float64) float64       { return r }

// ChebyshevMetric computes the Chebyshev (L-infinity) distance.
type ChebyshevMetric struct{}

func (ChebyshevMetric) Distance(a, b Point) float64 {
	return math.Max(math.Abs(a.X-b.X), math.Abs(a.Y-b.Y))
}

func (m ChebyshevMetric) ReducedDistance(a, b Point) float64 { return m.Distance(a, b) }
func (ChebyshevMetric) ReduceRadius(r float64) float64       { return r }

// boxRdist returns a lower bound in reduced-distance space on the distance
// between p and any point inside the axis-aligned box [lo, hi].
func boxRdist(m DistanceMetric, p, lo, hi Point) float64 {
	dx := axisGap(p.X, lo.X, hi.X)
	dy := axisGap(p.Y, lo.Y, hi.Y)
	switch m.(type) {
	case ManhattanMetric:
		return dx + dy
	case ChebyshevMetric:
		return math.Max(dx, dy)
	default:
		return dx*dx + dy*dy
	}
}

func axisGap(v, lo, hi float64) float64 {
	if v < lo {
		return lo - v
	}
	if v > hi {
		return v - hi
	}
	return 0
}
