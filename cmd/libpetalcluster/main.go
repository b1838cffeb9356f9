//go:build cgo

// Command libpetalcluster builds petalcluster as a C shared library for
// host environments that load native code through a C ABI:
//
//	go build -buildmode=c-shared -o libpetalcluster.so ./cmd/libpetalcluster
//
// Every function returns NULL on success or a message allocated with
// malloc describing the fault; release it with petal_free. Matrices are
// column-major. Cluster labels are written 1-based with INT_MIN (R's
// NA_INTEGER) for noise.
package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/petalcluster/petalcluster"
	"github.com/petalcluster/petalcluster/internal/logger"
)

func main() {}

// guard runs fn, turning a fault or any other panic into a C string so no
// Go panic crosses the C boundary.
func guard(fn func()) (msg *C.char) {
	defer func() {
		if r := recover(); r != nil {
			logger.Named("cabi").Error("call aborted", zap.Any("panic", r))
			msg = C.CString(fmt.Sprint(r))
		}
	}()
	if err := petalcluster.Catch(fn); err != nil {
		return C.CString(err.Error())
	}
	return nil
}

func matrix(x *C.double, nrow, ncol C.int) petalcluster.Matrix {
	n := int(nrow) * int(ncol)
	m := petalcluster.Matrix{Rows: int(nrow), Cols: int(ncol)}
	if n > 0 && x != nil {
		m.Data = unsafe.Slice((*float64)(unsafe.Pointer(x)), n)
	}
	return m
}

// writeResult copies res into caller-allocated buffers of nrow elements.
func writeResult(res *petalcluster.Result, nrow C.int, outCluster *C.int, outScores *C.double, outNClusters, outNNoise *C.int) {
	n := int(nrow)
	if n > 0 {
		cluster := unsafe.Slice((*int32)(unsafe.Pointer(outCluster)), n)
		for i, l := range res.Cluster {
			cluster[i] = int32(l)
		}
		if outScores != nil && res.OutlierScores != nil {
			copy(unsafe.Slice((*float64)(unsafe.Pointer(outScores)), n), res.OutlierScores)
		}
	}
	*outNClusters = C.int(res.NClusters)
	*outNNoise = C.int(res.NNoise)
}

//export petal_dbscan
func petal_dbscan(x *C.double, nrow, ncol C.int, eps C.double, minSamples C.int, metric *C.char,
	outCluster *C.int, outNClusters, outNNoise *C.int) *C.char {
	return guard(func() {
		res := petalcluster.DBSCAN(matrix(x, nrow, ncol), float64(eps), int(minSamples), C.GoString(metric))
		writeResult(res, nrow, outCluster, nil, outNClusters, outNNoise)
	})
}

//export petal_optics
func petal_optics(x *C.double, nrow, ncol C.int, eps C.double, minSamples C.int, metric *C.char,
	outCluster *C.int, outNClusters, outNNoise *C.int) *C.char {
	return guard(func() {
		res := petalcluster.OPTICS(matrix(x, nrow, ncol), float64(eps), int(minSamples), C.GoString(metric))
		writeResult(res, nrow, outCluster, nil, outNClusters, outNNoise)
	})
}

// petal_hdbscan takes partial labels as nGroups groups: group g has id
// groupIDs[g] and the 1-based indices
// groupIndices[groupOffsets[g]:groupOffsets[g+1]]. nGroups < 0 means no
// partial labels.
//
//export petal_hdbscan
func petal_hdbscan(x *C.double, nrow, ncol C.int, alpha C.double, minSamples, minClusterSize C.int,
	metric *C.char, boruvka C.int,
	nGroups C.int, groupIDs, groupOffsets, groupIndices *C.int,
	outCluster *C.int, outScores *C.double, outNClusters, outNNoise *C.int) *C.char {
	return guard(func() {
		opts := petalcluster.HDBSCANOptions{
			Alpha:           float64(alpha),
			MinSamples:      int(minSamples),
			MinClusterSize:  int(minClusterSize),
			Metric:          C.GoString(metric),
			UseAcceleration: boruvka != 0,
		}
		if nGroups >= 0 {
			labels := partialLabels(int(nGroups), groupIDs, groupOffsets, groupIndices)
			opts.PartialLabels = &labels
		}
		res := petalcluster.HDBSCAN(matrix(x, nrow, ncol), opts)
		writeResult(res, nrow, outCluster, outScores, outNClusters, outNNoise)
	})
}

func partialLabels(nGroups int, ids, offsets, indices *C.int) petalcluster.NamedList {
	l := petalcluster.NamedList{
		Names:  make([]string, nGroups),
		Values: make([]any, nGroups),
	}
	if nGroups == 0 {
		return l
	}
	idv := unsafe.Slice((*int32)(unsafe.Pointer(ids)), nGroups)
	off := unsafe.Slice((*int32)(unsafe.Pointer(offsets)), nGroups+1)
	var all []int32
	if total := int(off[nGroups]); total > 0 {
		all = unsafe.Slice((*int32)(unsafe.Pointer(indices)), total)
	}
	for g := 0; g < nGroups; g++ {
		l.Names[g] = fmt.Sprint(idv[g])
		group := make([]int32, off[g+1]-off[g])
		copy(group, all[off[g]:off[g+1]])
		l.Values[g] = group
	}
	return l
}

//export petal_free
func petal_free(msg *C.char) {
	C.free(unsafe.Pointer(msg))
}
