// Package density implements density-based clustering over numeric
// matrices: DBSCAN, OPTICS and HDBSCAN.
//
// Models are plain values. Construct one, call Fit once, and drop it; a
// model keeps no state between fits, so independent fits may run
// concurrently.
//
// Every model accepts any gonum mat.Matrix with one observation per row and
// reports its result as a Clusters map (cluster id to 0-based row indices)
// plus the 0-based rows left as noise. Cluster ids are opaque: DBSCAN and
// OPTICS number clusters in discovery order, HDBSCAN keys them by their
// node in the condensed tree. Callers that need contiguous labels must
// renumber.
//
// Basic usage:
//
//	model := density.NewDBSCAN(0.5, 5, density.EuclideanMetric{})
//	clusters, noise, err := model.Fit(x)
//
//	h := density.DefaultHDBSCAN()
//	h.MinClusterSize = 15
//	clusters, noise, scores, err := h.Fit(x, nil)
//
// HDBSCAN accepts optional seed labels (cluster id to 0-based rows). With
// seeds, flat cluster extraction prefers the partition that best agrees
// with the seeds (BCubed F-measure) and falls back to cluster stability
// where the seeds do not discriminate.
package density

// Clusters maps a cluster id to the 0-based indices of its member rows.
type Clusters map[int][]int
