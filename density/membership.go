package density

import "math"

// collectClusters assigns every row to the selected cluster above it in the
// condensed tree, if any. Rows with no selected ancestor are noise.
// Clusters are keyed by their condensed-tree id; members and noise are
// ascending.
func collectClusters(tree []condensedEntry, selected map[int]bool, n int) (Clusters, []int) {
	parentOf := make(map[int]int, len(tree))
	rowParent := make([]int, n)
	for i := range rowParent {
		rowParent[i] = -1
	}
	for _, e := range tree {
		if e.size == 1 {
			if e.child < n {
				rowParent[e.child] = e.parent
			}
			continue
		}
		parentOf[e.child] = e.parent
	}

	// owner memoises the selected ancestor (or -1) of each cluster.
	owner := make(map[int]int)
	var ownerOf func(c int) int
	ownerOf = func(c int) int {
		if o, ok := owner[c]; ok {
			return o
		}
		o := -1
		switch p, ok := parentOf[c]; {
		case selected[c]:
			o = c
		case ok:
			o = ownerOf(p)
		}
		owner[c] = o
		return o
	}

	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
		if p := rowParent[i]; p >= 0 {
			labels[i] = ownerOf(p)
		}
	}
	return groupLabels(labels, -1)
}

// outlierScores computes GLOSH outlier scores: for each row,
// (death(C) - lambda) / death(C) where C is the cluster the row falls out
// of. Scores lie in [0, 1].
func outlierScores(tree []condensedEntry, n int) []float64 {
	scores := make([]float64, n)
	if len(tree) == 0 {
		return scores
	}

	deaths := maxLambdas(tree)
	for _, e := range tree {
		if e.size != 1 || e.child >= n {
			continue
		}
		death := deaths[e.parent]
		switch {
		case death == 0 || math.IsInf(e.lambda, 0):
			scores[e.child] = 0
			continue
		case math.IsInf(death, 1):
			// The cluster collapses onto duplicated rows; any row leaving
			// earlier is as far out as a row can be.
			scores[e.child] = 1
			continue
		}
		scores[e.child] = (death - e.lambda) / death
	}
	return scores
}
