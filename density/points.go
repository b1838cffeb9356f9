package density

import "gonum.org/v1/gonum/mat"

// flatten copies x into a flat row-major buffer owned by the caller.
// Dense gonum matrices are copied row by row; any other mat.Matrix is read
// element-wise through At.
func flatten(x mat.Matrix) (data []float64, n, dims int) {
	n, dims = x.Dims()
	data = make([]float64, n*dims)
	if n == 0 || dims == 0 {
		return data, n, dims
	}

	if rm, ok := x.(mat.RawMatrixer); ok {
		raw := rm.RawMatrix()
		for i := 0; i < n; i++ {
			copy(data[i*dims:(i+1)*dims], raw.Data[i*raw.Stride:i*raw.Stride+dims])
		}
		return data, n, dims
	}

	for j := 0; j < dims; j++ {
		for i := 0; i < n; i++ {
			data[i*dims+j] = x.At(i, j)
		}
	}
	return data, n, dims
}

// row returns row i of a flat row-major buffer with dims values per row.
func row(data []float64, dims, i int) []float64 {
	return data[i*dims : (i+1)*dims]
}
