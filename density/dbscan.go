package density

import (
	"math"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"
)

// DBSCAN clusters points whose eps-neighborhoods are dense.
//
// A row is a core point when at least MinSamples rows (itself included) lie
// within Eps of it. Clusters are the connected components of core points
// plus the border rows they reach; every other row is noise.
type DBSCAN struct {
	// Eps is the neighborhood radius. Must be >= 0.
	Eps float64

	// MinSamples is the neighborhood size, the row itself included, that
	// makes a row a core point. Must be >= 1.
	MinSamples int

	// Metric is the distance function. Default: EuclideanMetric.
	Metric DistanceMetric

	// LeafSize is the KD-tree leaf size for Euclidean data. Default: 40.
	LeafSize int
}

// NewDBSCAN returns a DBSCAN model with the given parameters.
func NewDBSCAN(eps float64, minSamples int, metric DistanceMetric) *DBSCAN {
	return &DBSCAN{Eps: eps, MinSamples: minSamples, Metric: metric}
}

func validateRadius(prefix string, eps float64, minSamples int) error {
	if eps < 0 || math.IsNaN(eps) {
		return errors.Newf("density: %s Eps must be >= 0, got %f", prefix, eps)
	}
	if minSamples < 1 {
		return errors.Newf("density: %s MinSamples must be >= 1, got %d", prefix, minSamples)
	}
	return nil
}

// Fit clusters the rows of x. Clusters are numbered from 0 in the order
// their first core point appears; a border row reachable from several
// clusters joins the first one that reaches it. Member and noise indices
// are ascending.
func (m *DBSCAN) Fit(x mat.Matrix) (Clusters, []int, error) {
	if err := validateRadius("DBSCAN", m.Eps, m.MinSamples); err != nil {
		return nil, nil, err
	}
	metric := m.Metric
	if metric == nil {
		metric = EuclideanMetric{}
	}

	data, n, dims := flatten(x)
	search := newSearcher(data, n, dims, metric, m.LeafSize)

	const unassigned = -1
	labels := make([]int, n)
	for i := range labels {
		labels[i] = unassigned
	}

	next := 0
	for i := 0; i < n; i++ {
		if labels[i] != unassigned {
			continue
		}
		neighbors := search.within(i, m.Eps)
		if len(neighbors) < m.MinSamples {
			// Noise for now; a later cluster may still claim it as a border row.
			continue
		}

		id := next
		next++
		labels[i] = id

		queue := make([]int, 0, len(neighbors))
		for _, nb := range neighbors {
			queue = append(queue, nb.Index)
		}
		for len(queue) > 0 {
			q := queue[0]
			queue = queue[1:]
			if labels[q] != unassigned {
				continue
			}
			labels[q] = id

			qNeighbors := search.within(q, m.Eps)
			if len(qNeighbors) < m.MinSamples {
				continue
			}
			for _, nb := range qNeighbors {
				if labels[nb.Index] == unassigned {
					queue = append(queue, nb.Index)
				}
			}
		}
	}

	clusters, noise := groupLabels(labels, unassigned)
	return clusters, noise, nil
}

// groupLabels turns a per-row label slice into Clusters plus the ascending
// rows carrying the noise label.
func groupLabels(labels []int, noiseLabel int) (Clusters, []int) {
	clusters := make(Clusters)
	noise := []int{}
	for i, l := range labels {
		if l == noiseLabel {
			noise = append(noise, i)
			continue
		}
		clusters[l] = append(clusters[l], i)
	}
	return clusters, noise
}
