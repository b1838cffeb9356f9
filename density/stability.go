package density

import "slices"

// computeStability returns the stability of every cluster in the tree:
//
//	sum over entries with parent C of (entry.lambda - birth(C)) * entry.size
//
// where birth(C) is the lambda at which C appears as a child (0 for the root).
func computeStability(tree []condensedEntry) map[int]float64 {
	if len(tree) == 0 {
		return nil
	}

	root := treeRoot(tree)
	births := map[int]float64{root: 0}
	for _, e := range tree {
		if e.size > 1 {
			births[e.child] = e.lambda
		}
	}

	stability := make(map[int]float64)
	for _, e := range tree {
		stability[e.parent] += (e.lambda - births[e.parent]) * float64(e.size)
	}
	return stability
}

// seedAgreement scores every cluster by how well it agrees with the seed
// labels: the BCubed F-measure of the labeled rows it contains, summed over
// those rows and divided by the total number of labeled rows. A cluster
// holding exactly one seed group, entirely, scores that group's share of
// the labeled rows; mixing groups or splitting a group lowers the score.
//
// seeds maps a seed label to 0-based rows. A row listed under several
// labels keeps the largest label.
func seedAgreement(tree []condensedEntry, seeds map[int][]int) map[int]float64 {
	rowLabel := make(map[int]int)
	labelIDs := make([]int, 0, len(seeds))
	for id := range seeds {
		labelIDs = append(labelIDs, id)
	}
	slices.Sort(labelIDs)
	for _, id := range labelIDs {
		for _, row := range seeds[id] {
			rowLabel[row] = id
		}
	}
	if len(rowLabel) == 0 {
		return nil
	}

	labelTotal := make(map[int]int)
	for _, id := range rowLabel {
		labelTotal[id]++
	}

	// counts[c][l]: labeled rows with label l anywhere under cluster c.
	counts := make(map[int]map[int]int)
	add := func(c, label, k int) {
		if counts[c] == nil {
			counts[c] = make(map[int]int)
		}
		counts[c][label] += k
	}
	var clusterEdges []condensedEntry
	for _, e := range tree {
		if e.size > 1 {
			clusterEdges = append(clusterEdges, e)
			continue
		}
		if label, ok := rowLabel[e.child]; ok {
			add(e.parent, label, 1)
		}
	}
	// Children have larger ids than parents; fold deepest clusters first.
	slices.SortFunc(clusterEdges, func(a, b condensedEntry) int { return b.child - a.child })
	for _, e := range clusterEdges {
		for label, k := range counts[e.child] {
			add(e.parent, label, k)
		}
	}

	total := float64(len(rowLabel))
	scores := make(map[int]float64, len(counts))
	for c, byLabel := range counts {
		inCluster := 0
		for _, k := range byLabel {
			inCluster += k
		}
		var sum float64
		for label, k := range byLabel {
			precision := float64(k) / float64(inCluster)
			recall := float64(k) / float64(labelTotal[label])
			sum += float64(k) * 2 * precision * recall / (precision + recall)
		}
		scores[c] = sum / total
	}
	return scores
}
