package density

import "slices"

// linkageRow is one merge in a single-linkage dendrogram (scipy layout):
// clusters left and right merge at distance into a cluster of size rows.
// Leaves are rows 0..n-1; the merge in row k creates cluster n+k.
type linkageRow struct {
	left, right int
	distance    float64
	size        int
}

// singleLinkage converts MST edges into a single-linkage dendrogram. Edges
// are merged in ascending weight order; equal weights keep their MST order.
func singleLinkage(edges []mstEdge, n int) []linkageRow {
	if len(edges) == 0 {
		return nil
	}

	sorted := slices.Clone(edges)
	slices.SortStableFunc(sorted, func(x, y mstEdge) int {
		switch {
		case x.weight < y.weight:
			return -1
		case x.weight > y.weight:
			return 1
		}
		return 0
	})

	uf := newLinkageUnionFind(n)
	rows := make([]linkageRow, 0, len(sorted))
	for _, e := range sorted {
		a, b := uf.find(e.a), uf.find(e.b)
		size := uf.size[a] + uf.size[b]
		rows = append(rows, linkageRow{left: a, right: b, distance: e.weight, size: size})
		uf.merge(a, b, size)
	}
	return rows
}

// linkageUnionFind is a disjoint-set over 2n-1 slots: rows 0..n-1 and the
// merged clusters n..2n-2, each merge creating the next cluster id.
type linkageUnionFind struct {
	parent []int
	size   []int
	next   int
}

func newLinkageUnionFind(n int) *linkageUnionFind {
	total := max(2*n-1, 1)
	uf := &linkageUnionFind{
		parent: make([]int, total),
		size:   make([]int, total),
		next:   n,
	}
	for i := range uf.parent {
		uf.parent[i] = -1 // root
	}
	for i := 0; i < n; i++ {
		uf.size[i] = 1
	}
	return uf
}

func (uf *linkageUnionFind) find(x int) int {
	root := x
	for uf.parent[root] != -1 {
		root = uf.parent[root]
	}
	for uf.parent[x] != -1 {
		x, uf.parent[x] = uf.parent[x], root
	}
	return root
}

// merge makes the roots a and b children of a new cluster of the given size.
func (uf *linkageUnionFind) merge(a, b, size int) {
	uf.size[uf.next] = size
	uf.parent[a] = uf.next
	uf.parent[b] = uf.next
	uf.next++
}
