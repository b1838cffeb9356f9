package density

import "slices"

// selectionScore ranks candidate clusters during excess-of-mass selection.
// primary is compared first and secondary breaks ties.
type selectionScore struct {
	primary, secondary float64
}

func (s selectionScore) add(o selectionScore) selectionScore {
	return selectionScore{s.primary + o.primary, s.secondary + o.secondary}
}

func (s selectionScore) beats(o selectionScore) bool {
	if s.primary != o.primary {
		return s.primary > o.primary
	}
	return s.secondary > o.secondary
}

// selectClusters performs excess-of-mass selection over the condensed tree,
// excluding the root. Without seeds clusters are ranked by stability. With
// seeds they are ranked by seed agreement, stability breaking ties.
func selectClusters(tree []condensedEntry, stability map[int]float64, seeds map[int][]int) map[int]bool {
	root := treeRoot(tree)

	var agreement map[int]float64
	if len(seeds) > 0 {
		agreement = seedAgreement(tree, seeds)
	}
	score := make(map[int]selectionScore, len(stability))
	for c, s := range stability {
		if agreement != nil {
			score[c] = selectionScore{primary: agreement[c], secondary: s}
		} else {
			score[c] = selectionScore{primary: s}
		}
	}

	childrenOf := make(map[int][]int)
	var candidates []int
	for _, e := range tree {
		if e.size > 1 {
			childrenOf[e.parent] = append(childrenOf[e.parent], e.child)
			candidates = append(candidates, e.child)
		}
	}
	// Reverse id order visits children before their parents.
	slices.Sort(candidates)
	slices.Reverse(candidates)

	selected := make(map[int]bool, len(candidates))
	for _, c := range candidates {
		selected[c] = true
	}

	for _, node := range candidates {
		children := childrenOf[node]
		if len(children) == 0 {
			continue
		}
		var sub selectionScore
		for _, child := range children {
			sub = sub.add(score[child])
		}
		if sub.beats(score[node]) {
			selected[node] = false
			score[node] = sub
			continue
		}
		for _, d := range descendants(childrenOf, node) {
			selected[d] = false
		}
	}

	out := make(map[int]bool)
	for c, ok := range selected {
		if ok && c != root {
			out[c] = true
		}
	}
	return out
}

// descendants returns every cluster strictly below node.
func descendants(childrenOf map[int][]int, node int) []int {
	var result []int
	level := childrenOf[node]
	for len(level) > 0 {
		result = append(result, level...)
		var next []int
		for _, c := range level {
			next = append(next, childrenOf[c]...)
		}
		level = next
	}
	return result
}
