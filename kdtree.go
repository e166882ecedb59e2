package neighborhood

import (
	"math"
	"sort"
)

// KDTree is a 2D KD-tree spatial index for radius queries. Points are stored
// in input order and reordered internally via an index permutation array.
//
// The tree is stored as a complete binary tree in array form:
//   - node i has children at 2*i+1 and 2*i+2
//   - node bounds are stored as a min/max corner per node
type KDTree struct {
	points   []Point
	leafSize int
	metric   DistanceMetric
	idxArray []int      // permutation: tree-order position → original index
	nodes    []NodeData // one entry per tree node
	boundsLo []Point    // per-node lower corner
	boundsHi []Point    // per-node upper corner
	numNodes int
}

// NewKDTree builds a KD-tree over points. leafSize controls the max points
// per leaf node. An empty point set yields a tree whose queries return nil.
func NewKDTree(points []Point, metric DistanceMetric, leafSize int) *KDTree {
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

	// A complete binary tree with n points and leaves of size leafSize needs
	// at most 2*ceil(n/leafSize) nodes; median splits may be unbalanced so
	// use a generous upper bound.
	maxNodes := kdMaxNodes(n, leafSize)

	t := &KDTree{
		points:   pts,
		leafSize: leafSize,
		metric:   metric,
		idxArray: idxArray,
		nodes:    make([]NodeData, maxNodes),
		boundsLo: make([]Point, maxNodes),
		boundsHi: make([]Point, maxNodes),
	}

	if n > 0 {
		t.buildNode(0, 0, n)
		t.numNodes = kdCountNodes(t.nodes, 0, maxNodes)
	}

	return t
}

// kdMaxNodes returns an upper bound on the number of nodes needed for a
// binary tree with n points and the given leaf size.
func kdMaxNodes(n, leafSize int) int {
	if n == 0 {
		return 1
	}
	// Depth of tree: ceil(log2(ceil(n/leafSize))) + 1.
	// Number of nodes in a complete binary tree of depth d = 2^(d+1) - 1.
	leaves := (n + leafSize - 1) / leafSize
	depth := 0
	v := 1
	for v < leaves {
		v *= 2
		depth++
	}
	return (1 << (depth + 1)) - 1 + 2 // +2 for safety margin
}

// kdCountNodes counts how many nodes were actually initialized by the build.
func kdCountNodes(nodes []NodeData, nodeID, maxNodes int) int {
	if nodeID >= maxNodes {
		return 0
	}
	if nodes[nodeID].IdxStart == 0 && nodes[nodeID].IdxEnd == 0 && nodeID != 0 {
		return 0
	}
	count := 1
	if !nodes[nodeID].IsLeaf {
		count += kdCountNodes(nodes, 2*nodeID+1, maxNodes)
		count += kdCountNodes(nodes, 2*nodeID+2, maxNodes)
	}
	return count
}

// buildNode recursively builds the tree for points in idxArray[start:end].
func (t *KDTree) buildNode(nodeID, start, end int) {
	for nodeID >= len(t.nodes) {
		t.nodes = append(t.nodes, NodeData{})
		t.boundsLo = append(t.boundsLo, Point{})
		t.boundsHi = append(t.boundsHi, Point{})
	}

	t.computeNodeBounds(nodeID, start, end)

	count := end - start
	if count <= t.leafSize {
		t.nodes[nodeID] = NodeData{IdxStart: start, IdxEnd: end, IsLeaf: true}
		return
	}

	// Split along the axis with greatest spread, at the median.
	lo, hi := t.boundsLo[nodeID], t.boundsHi[nodeID]
	splitX := hi.X-lo.X >= hi.Y-lo.Y
	t.sortByAxis(start, end, splitX)
	mid := start + count/2

	t.nodes[nodeID] = NodeData{IdxStart: start, IdxEnd: end, IsLeaf: false}

	t.buildNode(2*nodeID+1, start, mid)
	t.buildNode(2*nodeID+2, mid, end)
}

// computeNodeBounds computes the bounding box of points idxArray[start:end].
func (t *KDTree) computeNodeBounds(nodeID, start, end int) {
	lo := Point{X: math.Inf(1), Y: math.Inf(1)}
	hi := Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for i := start; i < end; i++ {
		p := t.points[t.idxArray[i]]
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	t.boundsLo[nodeID] = lo
	t.boundsHi[nodeID] = hi
}

// sortByAxis sorts idxArray[start:end] by x (or y).
func (t *KDTree) sortByAxis(start, end int, byX bool) {
	sub := t.idxArray[start:end]
	pts := t.points
	if byX {
		sort.Slice(sub, func(i, j int) bool { return pts[sub[i]].X < pts[sub[j]].X })
		return
	}
	sort.Slice(sub, func(i, j int) bool { return pts[sub[i]].Y < pts[sub[j]].Y })
}

func (t *KDTree) NumPoints() int            { return len(t.points) }
func (t *KDTree) NumNodes() int             { return t.numNodes }
func (t *KDTree) IdxArray() []int           { return t.idxArray }
func (t *KDTree) NodeDataArray() []NodeData { return t.nodes[:t.numNodes] }

// QueryRadius returns the original indices of all points within distance r
// of p. Subtrees whose bounding box lies entirely outside the radius are
// pruned; subtrees entirely inside are emitted without distance checks.
func (t *KDTree) QueryRadius(p Point, r float64) []int {
	if len(t.points) == 0 || r < 0 || math.IsNaN(r) {
		return nil
	}
	var out []int
	t.radiusSearch(0, p, t.metric.ReduceRadius(r), &out)
	return out
}

func (t *KDTree) radiusSearch(nodeID int, p Point, rr float64, out *[]int) {
	if nodeID >= len(t.nodes) {
		return
	}
	node := t.nodes[nodeID]
	if node.IdxStart == node.IdxEnd && nodeID != 0 {
		return // uninitialized node
	}
	if boxRdist(t.metric, p, t.boundsLo[nodeID], t.boundsHi[nodeID]) > rr {
		return
	}
	if t.maxRdistPoint(nodeID, p) <= rr {
		*out = append(*out, t.idxArray[node.IdxStart:node.IdxEnd]...)
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

	t.radiusSearch(2*nodeID+1, p, rr, out)
	t.radiusSearch(2*nodeID+2, p, rr, out)
}

// maxRdistPoint returns an upper bound in reduced-distance space on the
// distance between p and any point in the node, via the farthest box corner.
func (t *KDTree) maxRdistPoint(nodeID int, p Point) float64 {
	lo, hi := t.boundsLo[nodeID], t.boundsHi[nodeID]
	far := Point{
		X: farthest(p.X, lo.X, hi.X),
		Y: farthest(p.Y, lo.Y, hi.Y),
	}
	return t.metric.ReducedDistance(p, far)
}

func farthest(v, lo, hi float64) float64 {
	if v-lo > hi-v {
		return lo
	}
	return hi
}
