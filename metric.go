package petalcluster

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/petalcluster/petalcluster/density"
)

// Metric is one of the supported distance metrics.
type Metric int

const (
	Euclidean Metric = iota
	Cosine
)

// ParseMetric maps a host metric name to a Metric. Only the exact names
// "euclidean" and "cosine" are accepted; anything else faults with
// FaultMetric.
func ParseMetric(name string) Metric {
	switch name {
	case "euclidean":
		return Euclidean
	case "cosine":
		return Cosine
	}
	fault(FaultMetric, errors.WithHint(
		errors.Newf("unknown metric %q", name),
		`supported metrics are "euclidean" and "cosine"`))
	panic("unreachable")
}

func (m Metric) String() string {
	switch m {
	case Euclidean:
		return "euclidean"
	case Cosine:
		return "cosine"
	default:
		return fmt.Sprintf("Metric(%d)", int(m))
	}
}

// Distance returns the backend implementation of m.
func (m Metric) Distance() density.DistanceMetric {
	switch m {
	case Euclidean:
		return density.EuclideanMetric{}
	case Cosine:
		return density.CosineMetric{}
	}
	panic(errors.AssertionFailedf("unhandled metric %d", int(m)))
}
