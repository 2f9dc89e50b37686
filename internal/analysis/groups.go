// Package analysis classifies which same-terrain segments form connected
// groups across tile boundaries, whether each group is topologically
// closed, and how desirable every empty cell is for future placement.
// Recomputed once per board mutation. See design doc Section 4.4.
package analysis

import (
	"sort"

	"github.com/mfriedel/hexscope/internal/board"
	"github.com/mfriedel/hexscope/internal/hexgrid"
)

// Group is a maximal set of edge-adjacent, terrain-compatible segments.
type Group struct {
	ID        uint32        `json:"id"`
	Terrain   board.Terrain `json:"terrain"`
	Segments  []SegmentKey  `json:"segments"`
	OpenEdges int           `json:"open_edges"`
}

// Closed reports whether the group has no edge facing an absent, missing,
// or empty cell.
func (g *Group) Closed() bool {
	return g.OpenEdges == 0
}

// Result is the outcome of one recompute pass. Group ids are stable only
// within the pass that produced them.
type Result struct {
	Groups []Group // indexed by group id

	// Scores holds the placement desirability of every empty or absent
	// cell on the frontier of the processed region, 1..6.
	Scores map[hexgrid.GridCoord]uint8

	groupOf map[SegmentKey]uint32
}

// GroupAt returns the group of the given segment, if it was part of the
// processed region.
func (r *Result) GroupAt(k SegmentKey) (*Group, bool) {
	id, ok := r.groupOf[k]
	if !ok {
		return nil, false
	}
	return &r.Groups[id], true
}

// Recompute rebuilds groups, closure flags, and placement scores over the
// region reachable from the dirty coordinates, and writes the derived
// fields back into the store's tiles. A nil dirty set is the conservative
// fallback: a full-board rebuild, required whenever topology invariants
// are uncertain (e.g. after a reload). Total over any well-formed store.
func Recompute(store board.Store, dirty []hexgrid.GridCoord) *Result {
	region := collectRegion(store, dirty)

	uf := newUnionFind()
	openEdges := make(map[SegmentKey]int)

	for coord, tile := range region {
		for i := range tile.Segments {
			seg := tile.Segments[i]
			key := SegmentKey{Coord: coord, Segment: i}
			uf.find(key) // register even edge-less (reserved form) segments

			mask := seg.Form.EdgeMask(seg.Rotation)
			for d := hexgrid.Direction(0); d < 6; d++ {
				if mask&(1<<d) == 0 {
					continue
				}
				neighborCoord := coord.Neighbor(d)
				neighbor, ok := store.Get(neighborCoord)
				if !ok || neighbor.Missing {
					openEdges[key]++
					continue
				}
				facing := uint8(d.Opposite())
				if j, found := neighbor.ConnectingSegmentAt(seg.Terrain, facing); found {
					uf.union(key, SegmentKey{Coord: neighborCoord, Segment: j})
					continue
				}
				if neighbor.TerrainAt(facing) == board.TerrainNone {
					// Explicitly empty slot: the frontier stays open.
					openEdges[key]++
				}
				// An incompatible feature bounds the edge without joining.
			}
		}
	}

	result := &Result{
		Scores:  scoreFrontier(store, region),
		groupOf: make(map[SegmentKey]uint32, len(uf.parent)),
	}

	// Gather components and number them by their minimum member so that
	// re-running on unchanged input reproduces identical assignments.
	components := make(map[SegmentKey][]SegmentKey)
	for key := range uf.parent {
		root := uf.find(key)
		components[root] = append(components[root], key)
	}
	ordered := make([][]SegmentKey, 0, len(components))
	for _, members := range components {
		sort.Slice(members, func(i, j int) bool { return members[i].Less(members[j]) })
		ordered = append(ordered, members)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i][0].Less(ordered[j][0]) })

	result.Groups = make([]Group, len(ordered))
	for id, members := range ordered {
		open := 0
		for _, key := range members {
			open += openEdges[key]
			result.groupOf[key] = uint32(id)
		}
		rep := region[members[0].Coord].Segments[members[0].Segment]
		result.Groups[id] = Group{
			ID:        uint32(id),
			Terrain:   rep.Terrain,
			Segments:  members,
			OpenEdges: open,
		}
	}

	writeBack(region, result)
	return result
}

// collectRegion flood-fills the occupied connected region around the dirty
// coordinates, or gathers the whole board when dirty is nil.
func collectRegion(store board.Store, dirty []hexgrid.GridCoord) map[hexgrid.GridCoord]*board.Tile {
	region := make(map[hexgrid.GridCoord]*board.Tile)
	if dirty == nil {
		store.Each(func(c hexgrid.GridCoord, t *board.Tile) bool {
			if t.Occupied() {
				region[c] = t
			}
			return true
		})
		return region
	}

	queue := make([]hexgrid.GridCoord, 0, len(dirty))
	seen := make(map[hexgrid.GridCoord]bool)
	enqueue := func(c hexgrid.GridCoord) {
		if seen[c] {
			return
		}
		seen[c] = true
		if t, ok := store.Get(c); ok && t.Occupied() {
			region[c] = t
			queue = append(queue, c)
		}
	}
	for _, c := range dirty {
		enqueue(c)
		// A dirty placeholder still invalidates the tiles around it.
		for _, n := range c.Neighbors() {
			enqueue(n)
		}
	}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, n := range c.Neighbors() {
			enqueue(n)
		}
	}
	return region
}

// writeBack stamps group ids and closure flags onto the region's segments.
func writeBack(region map[hexgrid.GridCoord]*board.Tile, result *Result) {
	for coord, tile := range region {
		for i := range tile.Segments {
			key := SegmentKey{Coord: coord, Segment: i}
			id := result.groupOf[key]
			tile.Segments[i].Group = id
			tile.Segments[i].Closed = result.Groups[id].Closed()
		}
	}
}
