package density

import (
	"math/rand/v2"
	"slices"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// blobs returns len(centers)*perBlob rows scattered uniformly within
// spread of each center, blob by blob.
func blobs(seed uint64, centers [][]float64, perBlob int, spread float64) *mat.Dense {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	dims := len(centers[0])
	data := make([]float64, 0, len(centers)*perBlob*dims)
	for _, c := range centers {
		for i := 0; i < perBlob; i++ {
			for _, v := range c {
				data = append(data, v+(rng.Float64()*2-1)*spread)
			}
		}
	}
	return mat.NewDense(len(centers)*perBlob, dims, data)
}

// emptyMatrix is a 0 x cols matrix; gonum's Dense cannot be empty.
type emptyMatrix struct{ cols int }

func (m emptyMatrix) Dims() (int, int)    { return 0, m.cols }
func (m emptyMatrix) At(i, j int) float64 { panic(mat.ErrIndexOutOfRange) }
func (m emptyMatrix) T() mat.Matrix       { return mat.Transpose{Matrix: m} }

// partition returns the clusters as sorted member lists, sorted by first
// member, so results can be compared regardless of cluster ids.
func partition(c Clusters) [][]int {
	var out [][]int
	for _, members := range c {
		m := slices.Clone(members)
		slices.Sort(m)
		out = append(out, m)
	}
	slices.SortFunc(out, func(a, b []int) int { return a[0] - b[0] })
	return out
}

func assertSamePartition(t *testing.T, got, want Clusters) {
	t.Helper()
	g, w := partition(got), partition(want)
	if len(g) != len(w) {
		t.Fatalf("partition: got %d clusters, want %d", len(g), len(w))
	}
	for i := range w {
		if !slices.Equal(g[i], w[i]) {
			t.Errorf("cluster %d: got %v, want %v", i, g[i], w[i])
		}
	}
}

// rangeSet returns [start, end).
func rangeSet(start, end int) []int {
	out := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, i)
	}
	return out
}
