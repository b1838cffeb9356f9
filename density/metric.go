package density

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DistanceMetric measures the distance between two rows of equal length.
// ReducedDistance is a cheaper transform of Distance that preserves its
// order, for callers that only compare distances.
type DistanceMetric interface {
	Distance(a, b []float64) float64
	ReducedDistance(a, b []float64) float64
}

// EuclideanMetric is the L2 distance. Its reduced form is the squared
// distance. Only this metric is served by the KD-tree.
type EuclideanMetric struct{}

func (EuclideanMetric) Distance(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

func (EuclideanMetric) ReducedDistance(a, b []float64) float64 {
	var sq float64
	for k, av := range a {
		diff := av - b[k]
		sq += diff * diff
	}
	return sq
}

// CosineMetric is one minus the cosine similarity, in [0, 2]. The distance
// from a zero vector is NaN.
type CosineMetric struct{}

func (CosineMetric) Distance(a, b []float64) float64 {
	norms := math.Sqrt(floats.Dot(a, a) * floats.Dot(b, b))
	return 1 - floats.Dot(a, b)/norms
}

func (m CosineMetric) ReducedDistance(a, b []float64) float64 { return m.Distance(a, b) }

// measure returns metric's distance between a and b, reading an undefined
// (NaN) distance as +Inf: a row with NaN values, or a zero row under
// cosine, is infinitely far from everything, including itself.
func measure(metric DistanceMetric, a, b []float64) float64 {
	if d := metric.Distance(a, b); !math.IsNaN(d) {
		return d
	}
	return math.Inf(1)
}

// pairwiseDistances returns the symmetric n*n distance matrix of the n
// rows in data (flat, row-major, dims values per row).
func pairwiseDistances(data []float64, n, dims int, metric DistanceMetric, workers int) []float64 {
	result := make([]float64, n*n)
	parallelRows(n, workers, func(start, end int) {
		for i := start; i < end; i++ {
			for j := i + 1; j < n; j++ {
				// Row i's worker owns both (i, j) and (j, i) for j > i.
				d := measure(metric, row(data, dims, i), row(data, dims, j))
				result[i*n+j], result[j*n+i] = d, d
			}
		}
	})
	return result
}
