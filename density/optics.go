package density

import (
	"container/heap"
	"math"

	"gonum.org/v1/gonum/mat"
)

// OPTICS orders points by density reachability and extracts the flat
// clustering that DBSCAN would find at the same radius.
type OPTICS struct {
	// Eps is the maximum neighborhood radius considered while ordering and
	// the radius at which clusters are extracted. Must be >= 0.
	Eps float64

	// MinSamples is the neighborhood size, the row itself included, that
	// makes a row a core point. Must be >= 1.
	MinSamples int

	// Metric is the distance function. Default: EuclideanMetric.
	Metric DistanceMetric

	// LeafSize is the KD-tree leaf size for Euclidean data. Default: 40.
	LeafSize int
}

// NewOPTICS returns an OPTICS model with the given parameters.
func NewOPTICS(eps float64, minSamples int, metric DistanceMetric) *OPTICS {
	return &OPTICS{Eps: eps, MinSamples: minSamples, Metric: metric}
}

// Ordering is the cluster ordering computed by OPTICS.Order.
// Reachability, CoreDistances and Predecessor are indexed by row; an
// undefined distance is +Inf and an undefined predecessor is -1.
type Ordering struct {
	Order         []int
	Reachability  []float64
	CoreDistances []float64
	Predecessor   []int
}

// Order computes the OPTICS cluster ordering of the rows of x.
func (m *OPTICS) Order(x mat.Matrix) (*Ordering, error) {
	if err := validateRadius("OPTICS", m.Eps, m.MinSamples); err != nil {
		return nil, err
	}
	metric := m.Metric
	if metric == nil {
		metric = EuclideanMetric{}
	}

	data, n, dims := flatten(x)
	search := newSearcher(data, n, dims, metric, m.LeafSize)

	o := &Ordering{
		Order:         make([]int, 0, n),
		Reachability:  make([]float64, n),
		CoreDistances: make([]float64, n),
		Predecessor:   make([]int, n),
	}
	for i := 0; i < n; i++ {
		o.Reachability[i] = math.Inf(1)
		o.Predecessor[i] = -1
	}

	processed := make([]bool, n)
	expand := func(p int, seeds *reachHeap) {
		processed[p] = true
		o.Order = append(o.Order, p)

		neighbors := search.within(p, m.Eps)
		core := math.Inf(1)
		if len(neighbors) >= m.MinSamples {
			core = neighbors[m.MinSamples-1].Distance
		}
		o.CoreDistances[p] = core
		if math.IsInf(core, 1) {
			return
		}
		for _, nb := range neighbors {
			if processed[nb.Index] {
				continue
			}
			reach := math.Max(core, nb.Distance)
			if reach < o.Reachability[nb.Index] {
				o.Reachability[nb.Index] = reach
				o.Predecessor[nb.Index] = p
				heap.Push(seeds, reachItem{index: nb.Index, reach: reach})
			}
		}
	}

	for i := 0; i < n; i++ {
		if processed[i] {
			continue
		}
		seeds := &reachHeap{}
		expand(i, seeds)
		for seeds.Len() > 0 {
			item := heap.Pop(seeds).(reachItem)
			// Stale entries remain after a reachability decrease.
			if processed[item.index] || item.reach > o.Reachability[item.index] {
				continue
			}
			expand(item.index, seeds)
		}
	}

	return o, nil
}

// Fit orders the rows of x and extracts the clusters found at Eps.
// A row opens a new cluster when it is not reachable within Eps but is a
// core point; rows reachable within Eps join the current cluster; every
// other row is noise. Clusters are numbered from 0 in ordering order.
func (m *OPTICS) Fit(x mat.Matrix) (Clusters, []int, error) {
	o, err := m.Order(x)
	if err != nil {
		return nil, nil, err
	}
	clusters, noise := o.Extract(m.Eps)
	return clusters, noise, nil
}

// Extract returns the DBSCAN-equivalent clusters and noise at radius eps,
// which should not exceed the radius the ordering was computed with.
// Member and noise indices are ascending.
func (o *Ordering) Extract(eps float64) (Clusters, []int) {
	return groupLabels(o.labels(eps), -1)
}

// labels assigns a cluster id (or -1) to every row by walking the ordering.
func (o *Ordering) labels(eps float64) []int {
	labels := make([]int, len(o.Reachability))
	current := -1
	next := 0
	for _, p := range o.Order {
		switch {
		case o.Reachability[p] > eps:
			if o.CoreDistances[p] <= eps {
				current = next
				next++
				labels[p] = current
			} else {
				labels[p] = -1
			}
		case current >= 0:
			labels[p] = current
		default:
			labels[p] = -1
		}
	}
	return labels
}

type reachItem struct {
	index int
	reach float64
}

// reachHeap is a min-heap on reachability, ties broken by row index.
type reachHeap []reachItem

func (h reachHeap) Len() int { return len(h) }
func (h reachHeap) Less(i, j int) bool {
	if h[i].reach != h[j].reach {
		return h[i].reach < h[j].reach
	}
	return h[i].index < h[j].index
}
func (h reachHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *reachHeap) Push(x any)   { *h = append(*h, x.(reachItem)) }
func (h *reachHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
