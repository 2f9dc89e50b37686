package analysis

import "github.com/mfriedel/hexscope/internal/hexgrid"

// SegmentKey identifies one segment on the board.
type SegmentKey struct {
	Coord   hexgrid.GridCoord `json:"coord"`
	Segment int               `json:"segment"`
}

// Less orders keys by (S, T, segment index); group numbering depends on it.
func (k SegmentKey) Less(o SegmentKey) bool {
	if k.Coord.S != o.Coord.S {
		return k.Coord.S < o.Coord.S
	}
	if k.Coord.T != o.Coord.T {
		return k.Coord.T < o.Coord.T
	}
	return k.Segment < o.Segment
}

// unionFind is a disjoint-set over segment keys with path compression and
// union by rank.
type unionFind struct {
	parent map[SegmentKey]SegmentKey
	rank   map[SegmentKey]int
}

func newUnionFind() *unionFind {
	return &unionFind{
		parent: make(map[SegmentKey]SegmentKey),
		rank:   make(map[SegmentKey]int),
	}
}

func (uf *unionFind) find(k SegmentKey) SegmentKey {
	if _, exists := uf.parent[k]; !exists {
		uf.parent[k] = k
		uf.rank[k] = 0
	}
	if uf.parent[k] != k {
		uf.parent[k] = uf.find(uf.parent[k])
	}
	return uf.parent[k]
}

func (uf *unionFind) union(a, b SegmentKey) {
	rootA := uf.find(a)
	rootB := uf.find(b)
	if rootA == rootB {
		return
	}
	switch {
	case uf.rank[rootA] < uf.rank[rootB]:
		uf.parent[rootA] = rootB
	case uf.rank[rootA] > uf.rank[rootB]:
		uf.parent[rootB] = rootA
	default:
		uf.parent[rootB] = rootA
		uf.rank[rootA]++
	}
}
