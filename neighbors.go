package neighborhood

import (
	"math"
	"slices"
	"time"
)

// Relation maps each point index to the indices of its neighbors. rel[i]
// holds the raw radius query result for point i, including i itself;
// self-exclusion is applied by the counters, never stored here.
type Relation [][]int

// validate checks that every neighbor index lies in [0, len(rel)).
func (rel Relation) validate() error {
	n := len(rel)
	for i, neigh := range rel {
		for _, j := range neigh {
			if j < 0 || j >= n {
				return argError("neighbors", "a mapping of point index to list of point index",
					"point %d lists neighbor %d outside [0, %d)", i, j, n)
			}
		}
	}
	return nil
}

// ToMap returns the relation as a point → neighbors mapping. Every point is
// present; a point without neighbors maps to an empty, non-nil list.
func (rel Relation) ToMap() map[int][]int {
	m := make(map[int][]int, len(rel))
	for i, neigh := range rel {
		m[i] = append([]int{}, neigh...)
	}
	return m
}

// RelationFromMap converts a point → neighbors mapping over n points into a
// Relation. Points missing from m have no neighbors. Keys and neighbor
// indices must lie in [0, n).
func RelationFromMap(m map[int][]int, n int) (Relation, error) {
	if n < 0 {
		return nil, argError("neighbors", "a mapping of point index to list of point index",
			"negative point count %d", n)
	}
	rel := make(Relation, n)
	for k, neigh := range m {
		if k < 0 || k >= n {
			return nil, argError("neighbors", "a mapping of point index to list of point index",
				"key %d outside [0, %d)", k, n)
		}
		rel[k] = slices.Clone(neigh)
	}
	if err := rel.validate(); err != nil {
		return nil, err
	}
	return rel, nil
}

// Neighbors builds the neighbor relation of points at the given radius: for
// every point, all points within radius of it (inclusive, including itself).
// Each neighbor list is sorted ascending. Only cfg.Index, cfg.Metric,
// cfg.LeafSize and cfg.Workers are used.
//
// A negative or NaN radius, or a non-finite coordinate, is rejected with an
// *ArgumentError. An empty point set yields an empty relation.
func Neighbors(points []Point, radius float64, cfg Config) (Relation, error) {
	cfg, err := prepareConfig(cfg)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(radius) || radius < 0 {
		return nil, argError("r", "a non-negative float", "got %g", radius)
	}
	for i, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return nil, argError("points", "list of finite (x, y) pairs", "point %d is (%g, %g)", i, p.X, p.Y)
		}
	}

	start := time.Now()
	idx, err := NewIndex(points, cfg.Index, cfg.Metric, cfg.LeafSize)
	if err != nil {
		return nil, err
	}

	rel := make(Relation, len(points))
	parallelRanges(len(points), cfg.Workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			neigh := idx.QueryRadius(points[i], radius)
			slices.Sort(neigh)
			rel[i] = neigh
		}
	})
	neighborBuildDuration.WithLabelValues(string(cfg.Index)).Observe(time.Since(start).Seconds())

	return rel, nil
}
