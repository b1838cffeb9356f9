package density

import (
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"
)

// threeBlobs returns 60 rows: 0-19, 20-39 and 40-59 around three centers
// far apart both in distance and in direction.
func threeBlobs() *mat.Dense {
	return blobs(11, [][]float64{{10, 0}, {0, 10}, {-10, 0}}, 20, 0.5)
}

func TestHDBSCAN_Validation(t *testing.T) {
	x := threeBlobs()
	tests := []struct {
		name   string
		modify func(*HDBSCAN)
		want   string
	}{
		{"min cluster size", func(m *HDBSCAN) { m.MinClusterSize = 1 }, "MinClusterSize"},
		{"negative min samples", func(m *HDBSCAN) { m.MinSamples = -1 }, "MinSamples"},
		{"zero alpha", func(m *HDBSCAN) { m.Alpha = 0 }, "Alpha"},
		{"NaN alpha", func(m *HDBSCAN) { m.Alpha = math.NaN() }, "Alpha"},
		{"negative leaf size", func(m *HDBSCAN) { m.LeafSize = -1 }, "LeafSize"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := DefaultHDBSCAN()
			tt.modify(&m)
			_, _, _, err := m.Fit(x, nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %s", err, tt.want)
			}
		})
	}
}

func TestHDBSCAN_SeedOutOfRange(t *testing.T) {
	m := DefaultHDBSCAN()
	_, _, _, err := m.Fit(threeBlobs(), map[int][]int{1: {0, 60}})
	if err == nil {
		t.Fatal("expected error for seed row 60")
	}
	if hints := errors.GetAllHints(err); len(hints) == 0 {
		t.Error("expected a hint on the seed error")
	}
}

func TestHDBSCAN_ThreeBlobs(t *testing.T) {
	m := DefaultHDBSCAN()
	m.MinClusterSize = 11

	clusters, noise, scores, err := m.Fit(threeBlobs(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertSamePartition(t, clusters, Clusters{0: rangeSet(0, 20), 1: rangeSet(20, 40), 2: rangeSet(40, 60)})
	if len(noise) != 0 {
		t.Errorf("noise: got %v, want none", noise)
	}
	if len(scores) != 60 {
		t.Fatalf("scores: got %d, want 60", len(scores))
	}
	for i, s := range scores {
		if math.IsNaN(s) || s < 0 || s > 1 {
			t.Errorf("score[%d] = %g, want within [0, 1]", i, s)
		}
	}
}

func TestHDBSCAN_AcceleratedMatchesDense(t *testing.T) {
	tests := []struct {
		name   string
		metric DistanceMetric
		alpha  float64
	}{
		{"euclidean", EuclideanMetric{}, 1.0},
		{"euclidean alpha", EuclideanMetric{}, 0.5},
		{"cosine", CosineMetric{}, 1.0},
	}
	x := threeBlobs()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := DefaultHDBSCAN()
			m.MinClusterSize = 11
			m.Metric = tt.metric
			m.Alpha = tt.alpha

			wantClusters, wantNoise, wantScores, err := m.Fit(x, nil)
			if err != nil {
				t.Fatalf("dense: %v", err)
			}
			m.UseAcceleration = true
			gotClusters, gotNoise, gotScores, err := m.Fit(x, nil)
			if err != nil {
				t.Fatalf("accelerated: %v", err)
			}

			assertSamePartition(t, gotClusters, wantClusters)
			if !slices.Equal(gotNoise, wantNoise) {
				t.Errorf("noise: got %v, want %v", gotNoise, wantNoise)
			}
			for i := range wantScores {
				assertFloat(t, "score", gotScores[i], wantScores[i], 1e-9)
			}
		})
	}
}

func TestHDBSCAN_SeedsKeepGroupsApart(t *testing.T) {
	m := DefaultHDBSCAN()
	m.MinClusterSize = 11
	seeds := map[int][]int{
		4: rangeSet(0, 5),
		9: rangeSet(20, 25),
	}

	clusters, _, _, err := m.Fit(threeBlobs(), seeds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	owner := make(map[int]int)
	for id, members := range clusters {
		for _, row := range members {
			owner[row] = id
		}
	}
	first, ok := owner[0]
	if !ok {
		t.Fatal("row 0 should be clustered")
	}
	for _, row := range seeds[4] {
		if id, ok := owner[row]; !ok || id != first {
			t.Errorf("row %d: seeded with row 0 but not clustered with it", row)
		}
	}
	if id, ok := owner[20]; !ok || id == first {
		t.Errorf("row 20 should be clustered apart from row 0, got owner %d (ok=%v)", id, ok)
	}
}

func TestHDBSCAN_SmallInputs(t *testing.T) {
	m := DefaultHDBSCAN()

	clusters, noise, scores, err := m.Fit(emptyMatrix{cols: 2}, nil)
	if err != nil {
		t.Fatalf("empty: %v", err)
	}
	if len(clusters) != 0 || len(noise) != 0 || len(scores) != 0 {
		t.Errorf("empty: got clusters=%v noise=%v scores=%v", clusters, noise, scores)
	}

	clusters, noise, scores, err = m.Fit(mat.NewDense(1, 2, []float64{3, 4}), nil)
	if err != nil {
		t.Fatalf("single row: %v", err)
	}
	if len(clusters) != 0 || !slices.Equal(noise, []int{0}) || !slices.Equal(scores, []float64{0}) {
		t.Errorf("single row: got clusters=%v noise=%v scores=%v", clusters, noise, scores)
	}

	// Fewer rows than MinClusterSize can never form a cluster.
	clusters, noise, scores, err = m.Fit(mat.NewDense(3, 1, []float64{0, 1, 2}), nil)
	if err != nil {
		t.Fatalf("three rows: %v", err)
	}
	if len(clusters) != 0 || !slices.Equal(noise, []int{0, 1, 2}) || len(scores) != 3 {
		t.Errorf("three rows: got clusters=%v noise=%v scores=%v", clusters, noise, scores)
	}
}

func TestHDBSCAN_IdenticalRows(t *testing.T) {
	data := make([]float64, 2*12)
	for i := range data {
		data[i] = 1.5
	}
	for _, accelerated := range []bool{false, true} {
		m := DefaultHDBSCAN()
		m.UseAcceleration = accelerated

		clusters, noise, scores, err := m.Fit(mat.NewDense(12, 2, data), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		covered := len(noise)
		for _, members := range clusters {
			covered += len(members)
		}
		if covered != 12 {
			t.Errorf("accelerated=%v: clusters and noise cover %d rows, want 12", accelerated, covered)
		}
		for i, s := range scores {
			if s != 0 {
				t.Errorf("accelerated=%v: score[%d] = %g, want 0", accelerated, i, s)
			}
		}
	}
}

func TestHDBSCAN_MinSamplesGreaterThanN(t *testing.T) {
	x := mat.NewDense(4, 1, []float64{0, 1, 10, 11})
	for _, accelerated := range []bool{false, true} {
		m := DefaultHDBSCAN()
		m.MinClusterSize = 2
		m.MinSamples = 10
		m.UseAcceleration = accelerated

		clusters, noise, scores, err := m.Fit(x, nil)
		if err != nil {
			t.Fatalf("accelerated=%v: unexpected error: %v", accelerated, err)
		}
		if len(scores) != 4 {
			t.Errorf("accelerated=%v: got %d scores, want 4", accelerated, len(scores))
		}
		covered := len(noise)
		for _, members := range clusters {
			covered += len(members)
		}
		if covered != 4 {
			t.Errorf("accelerated=%v: clusters and noise cover %d rows, want 4", accelerated, covered)
		}
	}
}

func TestHDBSCAN_UndefinedRowIsNoiseOnBothPaths(t *testing.T) {
	groups := []float64{
		10, 0.1, 10.2, 0.1, 10.1, 0.3,
		0.1, 10, 0.3, 10.1, 0.2, 10.2, 0.1, 10.3,
	}
	tests := []struct {
		name   string
		metric DistanceMetric
		first  []float64
	}{
		{"cosine zero row", CosineMetric{}, []float64{0, 0}},
		{"euclidean NaN row", EuclideanMetric{}, []float64{math.NaN(), 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := mat.NewDense(8, 2, append(slices.Clone(tt.first), groups...))

			var (
				clusters [2]Clusters
				noise    [2][]int
				scores   [2][]float64
			)
			for k, accelerated := range []bool{false, true} {
				m := DefaultHDBSCAN()
				m.Metric = tt.metric
				m.MinSamples = 2
				m.MinClusterSize = 2
				m.UseAcceleration = accelerated

				var err error
				clusters[k], noise[k], scores[k], err = m.Fit(x, nil)
				if err != nil {
					t.Fatalf("accelerated=%v: unexpected error: %v", accelerated, err)
				}
				if !slices.Equal(noise[k], []int{0}) {
					t.Errorf("accelerated=%v: noise %v, want [0]", accelerated, noise[k])
				}
				if len(clusters[k]) == 0 {
					t.Errorf("accelerated=%v: no clusters found", accelerated)
				}
				if scores[k][0] != 1 {
					t.Errorf("accelerated=%v: score[0] = %g, want 1", accelerated, scores[k][0])
				}
			}

			assertSamePartition(t, clusters[1], clusters[0])
			for i := range scores[0] {
				assertFloat(t, "score", scores[1][i], scores[0][i], 1e-9)
			}
		})
	}
}
