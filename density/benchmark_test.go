package density

import (
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func benchFlat(n, dims int) []float64 {
	rng := rand.New(rand.NewPCG(42, 42))
	data := make([]float64, n*dims)
	for i := range data {
		data[i] = rng.Float64() * 100
	}
	return data
}

// --- Building blocks ---

func benchPairwise(b *testing.B, n int) {
	b.Helper()
	data := benchFlat(n, 2)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pairwiseDistances(data, n, 2, EuclideanMetric{}, 0)
	}
}

func BenchmarkPairwiseDistances_500(b *testing.B)  { benchPairwise(b, 500) }
func BenchmarkPairwiseDistances_1000(b *testing.B) { benchPairwise(b, 1000) }

func benchPrim(b *testing.B, n int) {
	b.Helper()
	data := benchFlat(n, 2)
	dist := pairwiseDistances(data, n, 2, EuclideanMetric{}, 0)
	core := coreDistances(dist, n, 5, 0)
	mr := mutualReachability(dist, core, n, 1.0, 0)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		primMST(mr, n)
	}
}

func BenchmarkPrimMST_500(b *testing.B)  { benchPrim(b, 500) }
func BenchmarkPrimMST_1000(b *testing.B) { benchPrim(b, 1000) }

func BenchmarkKDTreeCoreDistances_5000(b *testing.B) {
	n := 5000
	data := benchFlat(n, 2)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		search := newSearcher(data, n, 2, EuclideanMetric{}, defaultLeafSize)
		coreDistancesSearch(search, n, 5)
	}
}

// --- End to end ---

func benchHDBSCAN(b *testing.B, n int, accelerated bool) {
	b.Helper()
	x := mat.NewDense(n, 2, benchFlat(n, 2))
	m := DefaultHDBSCAN()
	m.MinClusterSize = 15
	m.MinSamples = 5
	m.UseAcceleration = accelerated
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, _, err := m.Fit(x, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkHDBSCAN_Dense_1000(b *testing.B)       { benchHDBSCAN(b, 1000, false) }
func BenchmarkHDBSCAN_Accelerated_1000(b *testing.B) { benchHDBSCAN(b, 1000, true) }
func BenchmarkHDBSCAN_Accelerated_5000(b *testing.B) { benchHDBSCAN(b, 5000, true) }

func BenchmarkDBSCAN_5000(b *testing.B) {
	x := mat.NewDense(5000, 2, benchFlat(5000, 2))
	m := NewDBSCAN(3, 5, nil)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := m.Fit(x); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkOPTICS_5000(b *testing.B) {
	x := mat.NewDense(5000, 2, benchFlat(5000, 2))
	m := NewOPTICS(3, 5, nil)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := m.Fit(x); err != nil {
			b.Fatal(err)
		}
	}
}
