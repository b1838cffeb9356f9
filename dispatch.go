package petalcluster

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/petalcluster/petalcluster/density"
)

// Algorithm selects the clustering algorithm Run fits.
type Algorithm int

const (
	AlgorithmDBSCAN Algorithm = iota
	AlgorithmHDBSCAN
	AlgorithmOPTICS
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmDBSCAN:
		return "dbscan"
	case AlgorithmHDBSCAN:
		return "hdbscan"
	case AlgorithmOPTICS:
		return "optics"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// Params carries the algorithm parameters. Each algorithm reads only the
// fields it needs.
type Params struct {
	// Eps is the neighborhood radius (DBSCAN) or maximum radius (OPTICS).
	Eps float64
	// MinSamples is the core-point neighborhood size.
	MinSamples int
	// MinClusterSize is the smallest HDBSCAN cluster.
	MinClusterSize int
	// Alpha scales distances in HDBSCAN's mutual reachability.
	Alpha float64
	// UseAcceleration selects HDBSCAN's matrix-free spanning tree.
	UseAcceleration bool
	// Seeds are 0-based seed rows for semi-supervised HDBSCAN; nil fits
	// unsupervised.
	Seeds map[int][]int
}

// Run builds a fresh model for algo, fits it on x, and returns the backend
// output unmodified. Scores are nil except for HDBSCAN. Parameters the
// backend rejects fault with FaultParams.
func Run(algo Algorithm, x *Array, metric Metric, p Params) (density.Clusters, []int, []float64) {
	var (
		clusters density.Clusters
		noise    []int
		scores   []float64
		err      error
	)
	switch algo {
	case AlgorithmDBSCAN:
		clusters, noise, err = density.NewDBSCAN(p.Eps, p.MinSamples, metric.Distance()).Fit(x)
	case AlgorithmOPTICS:
		clusters, noise, err = density.NewOPTICS(p.Eps, p.MinSamples, metric.Distance()).Fit(x)
	case AlgorithmHDBSCAN:
		m := density.DefaultHDBSCAN()
		m.Alpha = p.Alpha
		m.MinSamples = p.MinSamples
		m.MinClusterSize = p.MinClusterSize
		m.Metric = metric.Distance()
		m.UseAcceleration = p.UseAcceleration
		clusters, noise, scores, err = m.Fit(x, p.Seeds)
	default:
		panic(errors.AssertionFailedf("unhandled algorithm %d", int(algo)))
	}
	if err != nil {
		fault(FaultParams, errors.Wrapf(err, "%s", algo))
	}
	return clusters, noise, scores
}
