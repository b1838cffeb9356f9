package density

// defaultLeafSize is the KD-tree leaf size used when a model leaves
// LeafSize at zero.
const defaultLeafSize = 40

// neighborSearcher answers neighbor queries for the rows of one dataset.
// Results always include the queried row itself.
type neighborSearcher interface {
	// within returns the rows within eps of row i, sorted by distance then index.
	within(i int, eps float64) []Neighbor
	// nearest returns the k rows nearest to row i, sorted by distance then index.
	nearest(i, k int) []Neighbor
}

// newSearcher picks a KD-tree for Euclidean data and a brute-force scan for
// every other metric.
func newSearcher(data []float64, n, dims int, metric DistanceMetric, leafSize int) neighborSearcher {
	if _, ok := metric.(EuclideanMetric); ok && dims > 0 {
		if leafSize == 0 {
			leafSize = defaultLeafSize
		}
		return &treeSearcher{tree: NewKDTree(data, n, dims, leafSize)}
	}
	return &bruteSearcher{data: data, n: n, dims: dims, metric: metric}
}

type treeSearcher struct {
	tree *KDTree
}

func (s *treeSearcher) within(i int, eps float64) []Neighbor {
	return withSelf(s.tree.QueryRadius(s.tree.point(i), eps), i, -1)
}

func (s *treeSearcher) nearest(i, k int) []Neighbor {
	if k <= 0 {
		return nil
	}
	return withSelf(s.tree.QueryKNN(s.tree.point(i), k), i, k)
}

// withSelf makes sure row i appears in its own results at distance 0, as
// bruteSearcher reports it, keeping at most limit entries when limit >= 0.
// Only a row whose distance to itself is undefined is ever missing.
func withSelf(nbs []Neighbor, i, limit int) []Neighbor {
	for _, nb := range nbs {
		if nb.Index == i {
			return nbs
		}
	}
	nbs = append(nbs, Neighbor{Index: i})
	sortNeighbors(nbs)
	if limit >= 0 && len(nbs) > limit {
		nbs = nbs[:limit]
	}
	return nbs
}

type bruteSearcher struct {
	data   []float64
	n      int
	dims   int
	metric DistanceMetric
}

func (s *bruteSearcher) row(i int) []float64 {
	return s.data[i*s.dims : (i+1)*s.dims]
}

func (s *bruteSearcher) distance(i, j int) float64 {
	if i == j {
		return 0
	}
	return measure(s.metric, s.row(i), s.row(j))
}

func (s *bruteSearcher) within(i int, eps float64) []Neighbor {
	var out []Neighbor
	for j := 0; j < s.n; j++ {
		if d := s.distance(i, j); d <= eps {
			out = append(out, Neighbor{Index: j, Distance: d})
		}
	}
	sortNeighbors(out)
	return out
}

func (s *bruteSearcher) nearest(i, k int) []Neighbor {
	k = min(k, s.n)
	if k <= 0 {
		return nil
	}
	all := make([]Neighbor, s.n)
	for j := 0; j < s.n; j++ {
		all[j] = Neighbor{Index: j, Distance: s.distance(i, j)}
	}
	sortNeighbors(all)
	return all[:k]
}
