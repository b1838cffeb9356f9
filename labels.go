package petalcluster

import (
	"strconv"

	"github.com/cockroachdb/errors"
)

// NamedList is a host named list. Partial labels arrive as one entry per
// seed group: the name is the group's cluster id in decimal and the value
// is an integer vector ([]int32 or []int) of 1-based point indices.
type NamedList struct {
	Names  []string
	Values []any
}

// DecodePartialLabels converts host partial labels into 0-based seed rows
// keyed by cluster id. Order within a group is preserved; when two groups
// share a name the later one wins. A list without names decodes to an
// empty map.
//
// A name that is not a non-negative integer faults with FaultLabelName; a
// value that is not an integer vector of indices >= 1 faults with
// FaultLabelValue.
func DecodePartialLabels(l NamedList) map[int][]int {
	seeds := make(map[int][]int, len(l.Names))
	if l.Names == nil {
		return seeds
	}
	if len(l.Names) != len(l.Values) {
		fault(FaultShape, errors.Newf("partial labels have %d names but %d values", len(l.Names), len(l.Values)))
	}

	for i, name := range l.Names {
		id, err := strconv.Atoi(name)
		if err != nil || id < 0 {
			fault(FaultLabelName, errors.WithHint(
				errors.Newf("label group name %q is not a cluster id", name),
				"name each group by its non-negative integer cluster id"))
		}
		seeds[id] = decodeIndices(name, l.Values[i])
	}
	return seeds
}

func decodeIndices(name string, v any) []int {
	var rows []int
	switch indices := v.(type) {
	case []int32:
		rows = make([]int, len(indices))
		for i, idx := range indices {
			rows[i] = int(idx)
		}
	case []int:
		rows = make([]int, len(indices))
		copy(rows, indices)
	default:
		fault(FaultLabelValue, errors.Newf("label group %q holds %T, want an integer vector", name, v))
	}

	for i, idx := range rows {
		// Host NA is MinInt32, so it fails this check as well.
		if idx < 1 {
			fault(FaultLabelValue, errors.Newf("label group %q: index %s at position %d is not a 1-based index",
				name, Label(idx), i+1))
		}
		rows[i] = idx - 1
	}
	return rows
}
