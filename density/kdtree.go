package density

import (
	"container/heap"
	"math"
	"slices"
)

// Neighbor is one result of a neighbor query: the original row index and
// its true (non-reduced) distance from the query point.
type Neighbor struct {
	Index    int
	Distance float64
}

// KDTree is a Euclidean KD-tree over flat row-major points. Points are
// reordered internally through an index permutation; queries report
// original row indices.
//
// The tree is stored as a binary tree in array form: node i has children at
// 2*i+1 and 2*i+2, and its bounding box at lo/hi[i*dims : (i+1)*dims].
type KDTree struct {
	data     []float64 // flat row-major point data (n * dims), not reordered
	n        int
	dims     int
	leafSize int
	idx      []int // tree-order position -> original index
	nodes    []kdNode
	lo, hi   []float64
}

type kdNode struct {
	start, end int
	leaf       bool
	used       bool
}

// NewKDTree builds a KD-tree over data, which must hold n*dims values.
// The tree keeps a reference to data; callers must not mutate it while the
// tree is in use.
func NewKDTree(data []float64, n, dims, leafSize int) *KDTree {
	if leafSize < 1 {
		leafSize = 1
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	maxNodes := kdMaxNodes(n, leafSize)
	t := &KDTree{
		data:     data,
		n:        n,
		dims:     dims,
		leafSize: leafSize,
		idx:      idx,
		nodes:    make([]kdNode, maxNodes),
		lo:       make([]float64, maxNodes*dims),
		hi:       make([]float64, maxNodes*dims),
	}
	if n > 0 {
		t.build(0, 0, n)
	}
	return t
}

// kdMaxNodes returns an upper bound on the number of array slots needed for
// a median-split tree over n points with the given leaf size.
func kdMaxNodes(n, leafSize int) int {
	if n == 0 {
		return 1
	}
	leaves := (n + leafSize - 1) / leafSize
	depth := 0
	for v := 1; v < leaves; v *= 2 {
		depth++
	}
	return (1 << (depth + 2)) - 1
}

func (t *KDTree) point(i int) []float64 {
	return t.data[i*t.dims : (i+1)*t.dims]
}

func (t *KDTree) build(node, start, end int) {
	for node >= len(t.nodes) {
		t.nodes = append(t.nodes, kdNode{})
		t.lo = append(t.lo, make([]float64, t.dims)...)
		t.hi = append(t.hi, make([]float64, t.dims)...)
	}

	base := node * t.dims
	for d := 0; d < t.dims; d++ {
		t.lo[base+d] = math.Inf(1)
		t.hi[base+d] = math.Inf(-1)
	}
	for _, p := range t.idx[start:end] {
		for d, v := range t.point(p) {
			t.lo[base+d] = math.Min(t.lo[base+d], v)
			t.hi[base+d] = math.Max(t.hi[base+d], v)
		}
	}

	count := end - start
	if count <= t.leafSize || t.dims == 0 {
		t.nodes[node] = kdNode{start: start, end: end, leaf: true, used: true}
		return
	}

	// Split on the dimension with the greatest spread, at the median.
	splitDim := 0
	maxSpread := -1.0
	for d := 0; d < t.dims; d++ {
		if spread := t.hi[base+d] - t.lo[base+d]; spread > maxSpread {
			maxSpread = spread
			splitDim = d
		}
	}
	sub := t.idx[start:end]
	slices.SortFunc(sub, func(a, b int) int {
		va, vb := t.data[a*t.dims+splitDim], t.data[b*t.dims+splitDim]
		switch {
		case va < vb:
			return -1
		case va > vb:
			return 1
		}
		return a - b
	})
	mid := start + count/2

	t.nodes[node] = kdNode{start: start, end: end, used: true}
	t.build(2*node+1, start, mid)
	t.build(2*node+2, mid, end)
}

// minRdist returns a lower bound on the squared Euclidean distance between
// point and any point inside node's bounding box.
func (t *KDTree) minRdist(node int, point []float64) float64 {
	if node >= len(t.nodes) || !t.nodes[node].used {
		return math.Inf(1)
	}
	base := node * t.dims
	var rdist float64
	for j, v := range point {
		var d float64
		if lo := t.lo[base+j]; v < lo {
			d = lo - v
		} else if hi := t.hi[base+j]; v > hi {
			d = v - hi
		}
		rdist += d * d
	}
	return rdist
}

// QueryRadius returns every point within radius (inclusive) of query,
// sorted by distance and then by index.
func (t *KDTree) QueryRadius(query []float64, radius float64) []Neighbor {
	var out []Neighbor
	if t.n == 0 || radius < 0 || math.IsNaN(radius) {
		return out
	}
	r2 := radius * radius
	t.radiusSearch(0, query, radius, r2, &out)
	sortNeighbors(out)
	return out
}

func (t *KDTree) radiusSearch(node int, query []float64, radius, r2 float64, out *[]Neighbor) {
	if t.minRdist(node, query) > r2 {
		return
	}
	nd := t.nodes[node]
	if !nd.leaf {
		t.radiusSearch(2*node+1, query, radius, r2, out)
		t.radiusSearch(2*node+2, query, radius, r2, out)
		return
	}
	for _, p := range t.idx[nd.start:nd.end] {
		// Compare true distances so results agree with brute-force search.
		if d := measure(EuclideanMetric{}, query, t.point(p)); d <= radius {
			*out = append(*out, Neighbor{Index: p, Distance: d})
		}
	}
}

// QueryKNN returns the k nearest points to query (the query point itself
// included when it is part of the tree), sorted by distance and then index.
func (t *KDTree) QueryKNN(query []float64, k int) []Neighbor {
	if t.n == 0 || k <= 0 {
		return nil
	}
	h := &knnHeap{}
	t.knnSearch(0, query, k, h)

	out := make([]Neighbor, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(h).(Neighbor)
	}
	return out
}

func (t *KDTree) knnSearch(node int, query []float64, k int, h *knnHeap) {
	if node >= len(t.nodes) || !t.nodes[node].used {
		return
	}
	nd := t.nodes[node]
	if nd.leaf {
		for _, p := range t.idx[nd.start:nd.end] {
			item := Neighbor{Index: p, Distance: measure(EuclideanMetric{}, query, t.point(p))}
			if h.Len() < k {
				heap.Push(h, item)
			} else if neighborLess(item, (*h)[0]) {
				(*h)[0] = item
				heap.Fix(h, 0)
			}
		}
		return
	}

	// Visit the nearer child first so the far one can usually be pruned.
	left, right := 2*node+1, 2*node+2
	leftR, rightR := t.minRdist(left, query), t.minRdist(right, query)
	near, far, farR := left, right, rightR
	if rightR < leftR {
		near, far, farR = right, left, leftR
	}

	t.knnSearch(near, query, k, h)
	if h.Len() < k {
		t.knnSearch(far, query, k, h)
		return
	}
	worst := (*h)[0].Distance
	if farR <= worst*worst {
		t.knnSearch(far, query, k, h)
	}
}

func neighborLess(a, b Neighbor) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.Index < b.Index
}

func sortNeighbors(ns []Neighbor) {
	slices.SortFunc(ns, func(a, b Neighbor) int {
		switch {
		case neighborLess(a, b):
			return -1
		case neighborLess(b, a):
			return 1
		}
		return 0
	})
}

// knnHeap is a max-heap of neighbors (worst candidate on top) used as a
// bounded priority queue for KNN queries.
type knnHeap []Neighbor

func (h knnHeap) Len() int           { return len(h) }
func (h knnHeap) Less(i, j int) bool { return neighborLess(h[j], h[i]) }
func (h knnHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *knnHeap) Push(x any)        { *h = append(*h, x.(Neighbor)) }
func (h *knnHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
