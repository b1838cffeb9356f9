package density

import (
	"math"

	"go.uber.org/zap"

	"github.com/petalcluster/petalcluster/internal/logger"
)

// mstEdge is one minimum spanning tree edge between rows a and b.
type mstEdge struct {
	a, b   int
	weight float64
}

// primMST computes a minimum spanning tree with Prim's algorithm over a
// dense mutual reachability matrix (flat n*n row-major). Each edge joins
// the newly added row to the tree; its first endpoint is some row already
// in the tree, which is all single-linkage labeling needs.
func primMST(mr []float64, n int) []mstEdge {
	if n <= 1 {
		return nil
	}

	inTree := make([]bool, n)
	best := make([]float64, n)
	for j := range best {
		best[j] = mr[j]
	}
	inTree[0] = true
	current := 0

	edges := make([]mstEdge, 0, n-1)
	for i := 0; i < n-1; i++ {
		next := -1
		nextDist := math.Inf(1)
		for j := 0; j < n; j++ {
			if inTree[j] {
				continue
			}
			if next == -1 || best[j] < nextDist {
				next = j
				nextDist = best[j]
			}
		}

		edges = append(edges, mstEdge{a: current, b: next, weight: nextDist})
		inTree[next] = true
		current = next

		for k := 0; k < n; k++ {
			if !inTree[k] {
				best[k] = math.Min(best[k], mr[next*n+k])
			}
		}
	}

	warnInfiniteEdges(edges, n)
	return edges
}

// primMSTVector computes the same tree as primMST without materialising the
// n*n matrix: mutual reachability distances are computed on the fly from
// data (flat row-major, n rows of dims values) and core distances, using
// O(n) memory.
func primMSTVector(data []float64, n, dims int, core []float64, metric DistanceMetric, alpha float64) []mstEdge {
	if n <= 1 {
		return nil
	}

	inTree := make([]bool, n)
	best := make([]float64, n)
	source := make([]int, n)
	for j := range best {
		best[j] = math.Inf(1)
	}

	current := 0
	edges := make([]mstEdge, 0, n-1)
	for i := 1; i < n; i++ {
		inTree[current] = true
		row := data[current*dims : (current+1)*dims]

		next := -1
		nextDist := math.Inf(1)
		for j := 0; j < n; j++ {
			if inTree[j] {
				continue
			}
			d := measure(metric, row, data[j*dims:(j+1)*dims])
			if alpha != 1.0 {
				d /= alpha
			}
			if mr := max(d, core[current], core[j]); mr < best[j] {
				best[j] = mr
				source[j] = current
			}
			if next == -1 || best[j] < nextDist {
				next = j
				nextDist = best[j]
			}
		}

		edges = append(edges, mstEdge{a: source[next], b: next, weight: nextDist})
		current = next
	}

	warnInfiniteEdges(edges, n)
	return edges
}

func warnInfiniteEdges(edges []mstEdge, n int) {
	count := 0
	for _, e := range edges {
		if math.IsInf(e.weight, 1) || math.IsNaN(e.weight) {
			count++
		}
	}
	if count > 0 {
		logger.Named("density").Warn("minimum spanning tree has non-finite edges (disconnected components)",
			zap.Int("points", n), zap.Int("edges", count))
	}
}
