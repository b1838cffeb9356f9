// Package petalcluster exposes density-based clustering (DBSCAN, HDBSCAN and
// OPTICS) to a host statistical environment.
//
// The package is the marshalling layer between the host and the clustering
// backend in package density. It copies host matrices into native arrays,
// dispatches to a freshly built model, and encodes the result the way the
// host expects it: one 1-based label per point, with the host's missing
// integer (NA) for noise.
//
// Basic usage:
//
//	x := petalcluster.Matrix{Data: colMajor, Rows: n, Cols: d}
//	res := petalcluster.DBSCAN(x, 0.5, 5, "euclidean")
//	// res.Cluster[i] is 1..res.NClusters, or petalcluster.NA for noise
//
// Semi-supervised HDBSCAN takes seed groups in host form, named by cluster
// id and holding 1-based point indices:
//
//	seeds := petalcluster.NamedList{
//		Names:  []string{"0", "1"},
//		Values: []any{[]int32{1, 2, 3}, []int32{40, 41}},
//	}
//	res := petalcluster.HDBSCAN(x, petalcluster.HDBSCANOptions{
//		Alpha:          1,
//		MinSamples:     5,
//		MinClusterSize: 15,
//		Metric:         "euclidean",
//		PartialLabels:  &seeds,
//	})
//
// # Faults
//
// Caller contract violations (a buffer that does not match its dimensions,
// an unknown metric name, malformed partial labels, parameters the backend
// rejects) abandon the call by panicking with a *Fault. Nothing is ever
// turned into a default result. Host integrations wrap calls with Catch to
// receive the fault as an error instead.
//
// Every call builds its own buffers and model, so concurrent calls are
// independent.
package petalcluster
