package density

import "slices"

// coreDistances computes core distances from a dense distance matrix.
// dist is flat n*n row-major. minSamples is clamped to [0, n-1]; core[i]
// is the distance to the minSamples-th nearest neighbor of i, not counting
// i itself.
func coreDistances(dist []float64, n, minSamples, workers int) []float64 {
	minSamples = max(min(minSamples, n-1), 0)

	core := make([]float64, n)
	if minSamples == 0 {
		return core
	}

	parallelRows(n, workers, func(start, end int) {
		neighbors := make([]float64, n-1)
		for i := start; i < end; i++ {
			k := 0
			for j := 0; j < n; j++ {
				if j != i {
					neighbors[k] = dist[i*n+j]
					k++
				}
			}
			slices.Sort(neighbors)
			core[i] = neighbors[minSamples-1]
		}
	})
	return core
}

// coreDistancesSearch computes the same core distances as coreDistances
// using neighbor queries instead of a full distance matrix.
func coreDistancesSearch(search neighborSearcher, n, minSamples int) []float64 {
	minSamples = max(min(minSamples, n-1), 0)

	core := make([]float64, n)
	if minSamples == 0 {
		return core
	}

	for i := 0; i < n; i++ {
		// k = minSamples+1 accounts for the point itself.
		neighbors := search.nearest(i, minSamples+1)
		count := 0
		for _, nb := range neighbors {
			if nb.Index == i {
				continue
			}
			count++
			if count == minSamples {
				core[i] = nb.Distance
				break
			}
		}
	}
	return core
}

// mutualReachability computes the mutual reachability distance matrix:
// mr[i,j] = max(core[i], core[j], dist[i,j]/alpha).
func mutualReachability(dist, core []float64, n int, alpha float64, workers int) []float64 {
	result := make([]float64, n*n)
	parallelRows(n, workers, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < n; j++ {
				d := dist[i*n+j]
				if alpha != 1.0 {
					d /= alpha
				}
				result[i*n+j] = max(d, core[i], core[j])
			}
		}
	})
	return result
}
