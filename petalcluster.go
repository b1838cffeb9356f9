package petalcluster

// DBSCAN clusters the rows of x with DBSCAN. metric must be "euclidean"
// or "cosine".
func DBSCAN(x Matrix, eps float64, minSamples int, metric string) *Result {
	return call(AlgorithmDBSCAN, x, metric, Params{Eps: eps, MinSamples: minSamples}, nil)
}

// OPTICS orders the rows of x with OPTICS and returns the clustering it
// yields at eps. metric must be "euclidean" or "cosine".
func OPTICS(x Matrix, eps float64, minSamples int, metric string) *Result {
	return call(AlgorithmOPTICS, x, metric, Params{Eps: eps, MinSamples: minSamples}, nil)
}

// HDBSCANOptions are the host arguments of HDBSCAN.
type HDBSCANOptions struct {
	Alpha          float64
	MinSamples     int
	MinClusterSize int
	// Metric must be "euclidean" or "cosine".
	Metric string
	// UseAcceleration avoids the n*n distance matrix.
	UseAcceleration bool
	// PartialLabels optionally seeds the selection; see DecodePartialLabels.
	PartialLabels *NamedList
}

// HDBSCAN clusters the rows of x with HDBSCAN and reports GLOSH outlier
// scores alongside the labels.
func HDBSCAN(x Matrix, opts HDBSCANOptions) *Result {
	p := Params{
		Alpha:           opts.Alpha,
		MinSamples:      opts.MinSamples,
		MinClusterSize:  opts.MinClusterSize,
		UseAcceleration: opts.UseAcceleration,
	}
	return call(AlgorithmHDBSCAN, x, opts.Metric, p, opts.PartialLabels)
}

// call runs one boundary call: matrix copy, metric check, seed decoding,
// fit, encoding. Every value it builds is local to the call.
func call(algo Algorithm, x Matrix, metric string, p Params, labels *NamedList) *Result {
	arr := Convert(x)
	m := ParseMetric(metric)
	if labels != nil {
		p.Seeds = DecodePartialLabels(*labels)
	}
	clusters, noise, scores := Run(algo, arr, m, p)
	return Encode(clusters, noise, arr.Rows(), scores)
}
