package petalcluster

import (
	"math"
	"slices"
	"strconv"

	"go.uber.org/zap"

	"github.com/petalcluster/petalcluster/density"
	"github.com/petalcluster/petalcluster/internal/logger"
)

// Label is a host cluster label: 1-based, or NA.
type Label int32

// NA is the host's missing integer, the same bit pattern as R's NA_integer_.
const NA Label = math.MinInt32

// IsNA reports whether l is the missing marker.
func (l Label) IsNA() bool { return l == NA }

func (l Label) String() string {
	if l == NA {
		return "NA"
	}
	return strconv.Itoa(int(l))
}

// Result is the host-facing record of one clustering call.
type Result struct {
	// Cluster holds one label per point. Noise and unassigned points are NA.
	Cluster []Label
	// NClusters is the number of clusters; labels run from 1 to NClusters.
	NClusters int
	// NNoise is the size of the noise set reported by the backend.
	NNoise int
	// OutlierScores is index-aligned with Cluster. HDBSCAN only; nil otherwise.
	OutlierScores []float64
}

// Encode renumbers clusters into host labels. Cluster ids are sorted
// ascending and the id of rank r becomes label r+1, so the output does not
// depend on map order. Members outside [0, nPoints) are dropped and
// reported at warn level. scores is attached unchanged.
func Encode(clusters density.Clusters, noise []int, nPoints int, scores []float64) *Result {
	assignment := make([]Label, nPoints)
	for i := range assignment {
		assignment[i] = NA
	}

	ids := make([]int, 0, len(clusters))
	for id := range clusters {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for rank, id := range ids {
		label := Label(rank + 1)
		var dropped []int
		for _, idx := range clusters[id] {
			if idx < 0 || idx >= nPoints {
				dropped = append(dropped, idx)
				continue
			}
			assignment[idx] = label
		}
		if len(dropped) > 0 {
			logger.Named("encode").Warn("dropping cluster members outside the point range",
				zap.Int("cluster", id),
				zap.Ints("indices", dropped),
				zap.Int("points", nPoints))
		}
	}

	return &Result{
		Cluster:       assignment,
		NClusters:     len(ids),
		NNoise:        len(noise),
		OutlierScores: scores,
	}
}

// EncodePartialLabels renders seeds in host form: one group per cluster id
// in ascending id order, named by the decimal id, holding 1-based indices.
// DecodePartialLabels inverts it.
func EncodePartialLabels(seeds map[int][]int) NamedList {
	ids := make([]int, 0, len(seeds))
	for id := range seeds {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	l := NamedList{
		Names:  make([]string, 0, len(ids)),
		Values: make([]any, 0, len(ids)),
	}
	for _, id := range ids {
		rows := seeds[id]
		indices := make([]int32, len(rows))
		for i, row := range rows {
			indices[i] = int32(row + 1)
		}
		l.Names = append(l.Names, strconv.Itoa(id))
		l.Values = append(l.Values, indices)
	}
	return l
}
