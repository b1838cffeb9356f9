package density

import (
	"runtime"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"
)

// HDBSCAN controls hierarchical density-based clustering.
// Start with [DefaultHDBSCAN] and override the fields you need.
type HDBSCAN struct {
	// Alpha scales pairwise distances before computing mutual reachability.
	// Must be > 0. Default: 1.0.
	Alpha float64

	// MinSamples is the neighbor count, the row itself excluded, that
	// defines a row's core distance. 0 means MinClusterSize. Must be >= 0.
	MinSamples int

	// MinClusterSize is the smallest group of rows considered a cluster.
	// Must be >= 2. Default: 5.
	MinClusterSize int

	// Metric is the distance function. Default: EuclideanMetric.
	Metric DistanceMetric

	// UseAcceleration builds the spanning tree without an n*n distance
	// matrix: core distances come from neighbor queries (a KD-tree for
	// Euclidean data) and mutual reachability is computed on the fly.
	// Both paths produce the same clustering, including for rows whose
	// distances are undefined: those are infinitely far from every other row.
	UseAcceleration bool

	// LeafSize is the KD-tree leaf size for the accelerated path. Default: 40.
	LeafSize int

	// Workers bounds the goroutines used by the dense path. 0 means
	// runtime.NumCPU().
	Workers int
}

// DefaultHDBSCAN returns an HDBSCAN model with reasonable defaults.
func DefaultHDBSCAN() HDBSCAN {
	return HDBSCAN{
		Alpha:          1.0,
		MinClusterSize: 5,
		Metric:         EuclideanMetric{},
	}
}

func (m *HDBSCAN) applyDefaults() {
	if m.MinSamples == 0 {
		m.MinSamples = m.MinClusterSize
	}
	if m.Metric == nil {
		m.Metric = EuclideanMetric{}
	}
	if m.LeafSize == 0 {
		m.LeafSize = defaultLeafSize
	}
	if m.Workers == 0 {
		m.Workers = runtime.NumCPU()
	}
}

func (m *HDBSCAN) validate() error {
	if m.MinClusterSize < 2 {
		return errors.Newf("density: HDBSCAN MinClusterSize must be >= 2, got %d", m.MinClusterSize)
	}
	if m.MinSamples < 0 {
		return errors.Newf("density: HDBSCAN MinSamples must be >= 0 (0 means MinClusterSize), got %d", m.MinSamples)
	}
	if !(m.Alpha > 0) {
		return errors.Newf("density: HDBSCAN Alpha must be > 0, got %f", m.Alpha)
	}
	if m.LeafSize < 1 {
		return errors.Newf("density: HDBSCAN LeafSize must be >= 1, got %d", m.LeafSize)
	}
	return nil
}

func validateSeeds(seeds map[int][]int, n int) error {
	for id, rows := range seeds {
		for _, row := range rows {
			if row < 0 || row >= n {
				return errors.WithHint(
					errors.Newf("density: seed label %d lists row %d, outside [0, %d)", id, row, n),
					"seed rows are 0-based indices into the fitted matrix")
			}
		}
	}
	return nil
}

// Fit clusters the rows of x. seeds optionally maps seed labels to 0-based
// rows for semi-supervised cluster selection; nil fits unsupervised.
//
// It returns the selected clusters keyed by condensed-tree id, the rows
// left as noise, and a GLOSH outlier score in [0, 1] for every row.
func (m HDBSCAN) Fit(x mat.Matrix, seeds map[int][]int) (Clusters, []int, []float64, error) {
	m.applyDefaults()
	if err := m.validate(); err != nil {
		return nil, nil, nil, err
	}

	data, n, dims := flatten(x)
	if err := validateSeeds(seeds, n); err != nil {
		return nil, nil, nil, err
	}

	switch n {
	case 0:
		return Clusters{}, []int{}, []float64{}, nil
	case 1:
		return Clusters{}, []int{0}, []float64{0}, nil
	}

	var edges []mstEdge
	if m.UseAcceleration {
		search := newSearcher(data, n, dims, m.Metric, m.LeafSize)
		core := coreDistancesSearch(search, n, m.MinSamples)
		edges = primMSTVector(data, n, dims, core, m.Metric, m.Alpha)
	} else {
		dist := pairwiseDistances(data, n, dims, m.Metric, m.Workers)
		core := coreDistances(dist, n, m.MinSamples, m.Workers)
		mr := mutualReachability(dist, core, n, m.Alpha, m.Workers)
		edges = primMST(mr, n)
	}

	tree := condenseTree(singleLinkage(edges, n), m.MinClusterSize)
	scores := outlierScores(tree, n)
	if len(tree) == 0 {
		noise := make([]int, n)
		for i := range noise {
			noise[i] = i
		}
		return Clusters{}, noise, scores, nil
	}

	selected := selectClusters(tree, computeStability(tree), seeds)
	clusters, noise := collectClusters(tree, selected, n)
	return clusters, noise, scores, nil
}
