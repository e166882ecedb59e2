package neighborhood

import (
	"math"
	"sort"
)

// pruneSlack absorbs floating-point error in the triangle-inequality bound so
// that a point lying exactly on the query radius is never pruned away.
const pruneSlack = 1e-9

// BallTree is a 2D ball tree spatial index for radius queries. Each node
// stores a centroid and radius defining an enclosing ball for its points.
// Pruning relies only on the triangle inequality, so any true metric works.
//
// The tree is stored as a complete binary tree in array form:
//   - node i has children at 2*i+1 and 2*i+2
type BallTree struct {
	points    []Point
	leafSize  int
	metric    DistanceMetric
	idxArray  []int      // permutation: tree-order position → original index
	nodes     []NodeData // one entry per tree node; Radius is used
	centroids []Point
	numNodes  int
}

// NewBallTree builds a ball tree over points. leafSize controls the max
// points per leaf node.
func NewBallTree(points []Point, metric DistanceMetric, leafSize int) *BallTree {
	if leafSize < 1 {
		leafSize = 1
	}
	if metric == nil {
		metric = EuclideanMetric{}
	}

	n := len(points)
	pts := make([]Point, n)
	copy(pts, points)
	idxArray := make([]int, n)
	for i := range idxArray {
		idxArray[i] = i
	}

	maxNodes := kdMaxNodes(n, leafSize) // reuse the same upper bound
	t := &BallTree{
		points:    pts,
		leafSize:  leafSize,
		metric:    metric,
		idxArray:  idxArray,
		nodes:     make([]NodeData, maxNodes),
		centroids: make([]Point, maxNodes),
	}

	if n > 0 {
		t.buildNode(0, 0, n)
		t.numNodes = kdCountNodes(t.nodes, 0, maxNodes)
	}

	return t
}

// buildNode recursively builds the ball tree for points in idxArray[start:end].
func (t *BallTree) buildNode(nodeID, start, end int) {
	for nodeID >= len(t.nodes) {
		t.nodes = append(t.nodes, NodeData{})
		t.centroids = append(t.centroids, Point{})
	}

	t.computeCentroid(nodeID, start, end)

	// Radius: max distance from centroid to any point in this node.
	centroid := t.centroids[nodeID]
	var radius float64
	for i := start; i < end; i++ {
		if d := t.metric.Distance(centroid, t.points[t.idxArray[i]]); d > radius {
			radius = d
		}
	}

	count := end - start
	if count <= t.leafSize {
		t.nodes[nodeID] = NodeData{IdxStart: start, IdxEnd: end, IsLeaf: true, Radius: radius}
		return
	}

	t.nodes[nodeID] = NodeData{IdxStart: start, IdxEnd: end, IsLeaf: false, Radius: radius}

	// Split at the median of the axis with greatest spread.
	t.sortByAxis(start, end, t.spreadX(start, end))
	mid := start + count/2

	t.buildNode(2*nodeID+1, start, mid)
	t.buildNode(2*nodeID+2, mid, end)
}

// computeCentroid computes the mean of points idxArray[start:end].
func (t *BallTree) computeCentroid(nodeID, start, end int) {
	var c Point
	for i := start; i < end; i++ {
		p := t.points[t.idxArray[i]]
		c.X += p.X
		c.Y += p.Y
	}
	count := float64(end - start)
	c.X /= count
	c.Y /= count
	t.centroids[nodeID] = c
}

// spreadX reports whether x has at least the spread of y among points
// idxArray[start:end].
func (t *BallTree) spreadX(start, end int) bool {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := start; i < end; i++ {
		p := t.points[t.idxArray[i]]
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return maxX-minX >= maxY-minY
}

// sortByAxis sorts idxArray[start:end] by x (or y).
func (t *BallTree) sortByAxis(start, end int, byX bool) {
	sub := t.idxArray[start:end]
	pts := t.points
	if byX {
		sort.Slice(sub, func(i, j int) bool { return pts[sub[i]].X < pts[sub[j]].X })
		return
	}
	sort.Slice(sub, func(i, j int) bool { return pts[sub[i]].Y < pts[sub[j]].Y })
}

func (t *BallTree) NumPoints() int            { return len(t.points) }
func (t *BallTree) NumNodes() int             { return t.numNodes }
func (t *BallTree) IdxArray() []int           { return t.idxArray }
func (t *BallTree) NodeDataArray() []NodeData { return t.nodes[:t.numNodes] }

// QueryRadius returns the original indices of all points within distance r
// of p.
func (t *BallTree) QueryRadius(p Point, r float64) []int {
	if len(t.points) == 0 || r < 0 || math.IsNaN(r) {
		return nil
	}
	var out []int
	t.radiusSearch(0, p, r, t.metric.ReduceRadius(r), &out)
	return out
}

func (t *BallTree) radiusSearch(nodeID int, p Point, r, rr float64, out *[]int) {
	if nodeID >= len(t.nodes) {
		return
	}
	node := t.nodes[nodeID]
	if node.IdxStart == node.IdxEnd && nodeID != 0 {
		return
	}

	// Lower bound on the distance from p to any point in the ball.
	lower := t.metric.Distance(p, t.centroids[nodeID]) - node.Radius
	if lower > r+pruneSlack*(1+r) {
		return
	}

	if node.IsLeaf {
		for i := node.IdxStart; i < node.IdxEnd; i++ {
			ptIdx := t.idxArray[i]
			if t.metric.ReducedDistance(p, t.points[ptIdx]) <= rr {
				*out = append(*out, ptIdx)
			}
		}
		return
	}

	t.radiusSearch(2*nodeID+1, p, r, rr, out)
	t.radiusSearch(2*nodeID+2, p, r, rr, out)
}
