package density

import "math"

// condensedEntry is one edge of the condensed cluster tree. Child is a row
// index when size is 1 and a cluster id otherwise; lambda is 1/distance at
// which the child leaves the parent.
type condensedEntry struct {
	parent int
	child  int
	lambda float64
	size   int
}

// condenseTree collapses a single-linkage dendrogram into the condensed
// tree, dropping splits that shed fewer than minClusterSize rows. The root
// cluster id is n (the row count) and new clusters are numbered upwards in
// breadth-first order, so a child cluster always has a larger id than its
// parent.
func condenseTree(dendrogram []linkageRow, minClusterSize int) []condensedEntry {
	if len(dendrogram) == 0 {
		return nil
	}

	n := len(dendrogram) + 1
	root := 2 * len(dendrogram)
	nextLabel := n + 1

	relabel := map[int]int{root: n}
	ignore := make(map[int]bool)
	var result []condensedEntry

	sizeOf := func(node int) int {
		if node < n {
			return 1
		}
		return dendrogram[node-n].size
	}

	// collapse emits a point entry for every row under node and marks the
	// whole subtree as consumed.
	collapse := func(node, parent int, lambda float64) {
		for _, sub := range bfsDendrogram(dendrogram, node, n) {
			if sub < n {
				result = append(result, condensedEntry{parent: parent, child: sub, lambda: lambda, size: 1})
			}
			ignore[sub] = true
		}
	}

	for _, node := range bfsDendrogram(dendrogram, root, n) {
		if ignore[node] || node < n {
			continue
		}

		row := dendrogram[node-n]
		lambda := math.Inf(1)
		if row.distance > 0 {
			lambda = 1.0 / row.distance
		}

		leftSize, rightSize := sizeOf(row.left), sizeOf(row.right)
		leftBig := leftSize >= minClusterSize
		rightBig := rightSize >= minClusterSize
		parent := relabel[node]

		switch {
		case leftBig && rightBig:
			relabel[row.left] = nextLabel
			result = append(result, condensedEntry{parent: parent, child: nextLabel, lambda: lambda, size: leftSize})
			nextLabel++
			relabel[row.right] = nextLabel
			result = append(result, condensedEntry{parent: parent, child: nextLabel, lambda: lambda, size: rightSize})
			nextLabel++

		case !leftBig && !rightBig:
			collapse(row.left, parent, lambda)
			collapse(row.right, parent, lambda)

		case !leftBig:
			relabel[row.right] = parent
			collapse(row.left, parent, lambda)

		default:
			relabel[row.left] = parent
			collapse(row.right, parent, lambda)
		}
	}

	return result
}

// bfsDendrogram lists every node reachable from start, breadth first.
func bfsDendrogram(dendrogram []linkageRow, start, n int) []int {
	level := []int{start}
	var result []int
	for len(level) > 0 {
		result = append(result, level...)
		var next []int
		for _, node := range level {
			if node >= n && node-n < len(dendrogram) {
				row := dendrogram[node-n]
				next = append(next, row.left, row.right)
			}
		}
		level = next
	}
	return result
}

// treeRoot returns the root cluster id (smallest parent).
func treeRoot(tree []condensedEntry) int {
	root := math.MaxInt
	for _, e := range tree {
		root = min(root, e.parent)
	}
	return root
}

// maxLambdas returns, for each cluster, the largest lambda among its direct
// children (its death).
func maxLambdas(tree []condensedEntry) map[int]float64 {
	deaths := make(map[int]float64)
	for _, e := range tree {
		if e.lambda > deaths[e.parent] {
			deaths[e.parent] = e.lambda
		}
	}
	return deaths
}
