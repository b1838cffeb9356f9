package petalcluster

import (
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a host numeric matrix: a flat column-major buffer in which
// element (i, j) lives at Data[j*Rows+i]. Convert only reads it.
type Matrix struct {
	Data []float64
	Rows int
	Cols int
}

// Array is the native copy of a Matrix. It keeps the column-major layout,
// so building it never transposes, and it satisfies mat.Matrix so the
// clustering backend can consume it directly.
type Array struct {
	data       []float64
	rows, cols int
}

var _ mat.Matrix = (*Array)(nil)

// Convert copies m into a new Array. A buffer whose length is not
// Rows*Cols faults with FaultShape.
func Convert(m Matrix) *Array {
	if m.Rows < 0 || m.Cols < 0 {
		fault(FaultShape, errors.Newf("negative dimensions %d x %d", m.Rows, m.Cols))
	}
	if len(m.Data) != m.Rows*m.Cols {
		fault(FaultShape, errors.WithHint(
			errors.Newf("shape mismatch: buffer holds %d values, dimensions %d x %d need %d",
				len(m.Data), m.Rows, m.Cols, m.Rows*m.Cols),
			"host matrices are passed column-major with their own row and column counts"))
	}
	data := make([]float64, len(m.Data))
	copy(data, m.Data)
	return &Array{data: data, rows: m.Rows, cols: m.Cols}
}

// Dims returns the number of rows and columns.
func (a *Array) Dims() (r, c int) { return a.rows, a.cols }

// Rows returns the number of rows (points).
func (a *Array) Rows() int { return a.rows }

// Cols returns the number of columns (features).
func (a *Array) Cols() int { return a.cols }

// At returns element (i, j). It panics on an out-of-range index.
func (a *Array) At(i, j int) float64 {
	if uint(i) >= uint(a.rows) {
		panic(mat.ErrRowAccess)
	}
	if uint(j) >= uint(a.cols) {
		panic(mat.ErrColAccess)
	}
	return a.data[j*a.rows+i]
}

// T returns the implicit transpose of a.
func (a *Array) T() mat.Matrix { return mat.Transpose{Matrix: a} }

// Row copies row i into dst, allocating when dst is nil, and returns it.
func (a *Array) Row(i int, dst []float64) []float64 {
	if uint(i) >= uint(a.rows) {
		panic(mat.ErrRowAccess)
	}
	if dst == nil {
		dst = make([]float64, a.cols)
	}
	if len(dst) != a.cols {
		panic(mat.ErrShape)
	}
	for j := range dst {
		dst[j] = a.data[j*a.rows+i]
	}
	return dst
}

// Col returns column j. The slice aliases the array's storage.
func (a *Array) Col(j int) []float64 {
	if uint(j) >= uint(a.cols) {
		panic(mat.ErrColAccess)
	}
	return a.data[j*a.rows : (j+1)*a.rows : (j+1)*a.rows]
}

// Raw returns the column-major backing buffer.
func (a *Array) Raw() []float64 { return a.data }
