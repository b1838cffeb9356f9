package petalcluster

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestConvert_ColumnMajor(t *testing.T) {
	// 3 x 2, columns (1 2 3) and (4 5 6).
	src := Matrix{Data: []float64{1, 2, 3, 4, 5, 6}, Rows: 3, Cols: 2}
	arr := Convert(src)

	r, c := arr.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 2, c)
	for i := 0; i < src.Rows; i++ {
		for j := 0; j < src.Cols; j++ {
			assert.Equal(t, src.Data[j*src.Rows+i], arr.At(i, j), "element (%d, %d)", i, j)
		}
	}
	assert.Equal(t, []float64{1, 4}, arr.Row(0, nil))
	assert.Equal(t, []float64{4, 5, 6}, arr.Col(1))
	assert.True(t, mat.Equal(arr, mat.NewDense(3, 2, []float64{1, 4, 2, 5, 3, 6})))
}

func TestConvert_BitIdentical(t *testing.T) {
	nan := math.Float64frombits(0x7ff8000000000001)
	src := Matrix{Data: []float64{math.Copysign(0, -1), nan, math.Inf(1), math.SmallestNonzeroFloat64}, Rows: 2, Cols: 2}
	arr := Convert(src)
	for k, v := range src.Data {
		i, j := k%2, k/2
		assert.Equal(t, math.Float64bits(v), math.Float64bits(arr.At(i, j)), "element (%d, %d)", i, j)
	}
}

func TestConvert_Copies(t *testing.T) {
	data := []float64{1, 2, 3, 4}
	arr := Convert(Matrix{Data: data, Rows: 2, Cols: 2})
	data[0] = 99
	assert.Equal(t, 1.0, arr.At(0, 0))
	assert.Equal(t, []float64{1, 2, 3, 4}, arr.Raw())
}

func TestConvert_Empty(t *testing.T) {
	arr := Convert(Matrix{Rows: 0, Cols: 3})
	assert.Equal(t, 0, arr.Rows())
	assert.Equal(t, 3, arr.Cols())
	assert.Empty(t, arr.Raw())
}

func TestConvert_ShapeFault(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
	}{
		{"short buffer", Matrix{Data: []float64{1, 2, 3}, Rows: 2, Cols: 2}},
		{"long buffer", Matrix{Data: []float64{1, 2, 3, 4, 5}, Rows: 2, Cols: 2}},
		{"negative dims", Matrix{Data: []float64{1}, Rows: -1, Cols: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Catch(func() { Convert(tt.m) })
			require.Error(t, err)
			assert.True(t, IsFault(err, FaultShape), "got %v", err)
		})
	}
}

func TestArray_OutOfRange(t *testing.T) {
	arr := Convert(Matrix{Data: []float64{1, 2}, Rows: 2, Cols: 1})
	assert.Panics(t, func() { arr.At(2, 0) })
	assert.Panics(t, func() { arr.At(0, 1) })
	assert.Panics(t, func() { arr.At(-1, 0) })
	assert.Panics(t, func() { arr.Row(0, make([]float64, 2)) })
}

func TestArray_Transpose(t *testing.T) {
	arr := Convert(Matrix{Data: []float64{1, 2, 3, 4, 5, 6}, Rows: 2, Cols: 3})
	tr := arr.T()
	r, c := tr.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, arr.At(1, 2), tr.At(2, 1))
}
