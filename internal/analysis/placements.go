package analysis

import (
	"sort"

	"github.com/mfriedel/hexscope/internal/board"
	"github.com/mfriedel/hexscope/internal/hexgrid"
)

// maxRankedPlacements caps the list handed to the UI.
const maxRankedPlacements = 30

// Placement is one candidate position and rotation for the next tile,
// scored against its would-be neighbors.
type Placement struct {
	Coord           hexgrid.GridCoord `json:"coord"`
	Rotation        uint8             `json:"rotation"`
	MatchingEdges   uint8             `json:"matching_edges"`
	MismatchedEdges uint8             `json:"mismatched_edges"`
	Split           bool              `json:"split"`
}

// RankPlacements evaluates the next tile against every frontier cell of
// the last recompute and returns the candidates best-first: placements
// that do not split the frontier win, then fewest mismatched edges, then
// most matching edges. Placements the game forbids outright (a rail or
// river edge against a foreign feature) are omitted, as are rotations
// beyond the first with an identical outcome at the same cell.
func RankPlacements(store board.Store, result *Result, next *board.Tile) []Placement {
	if next == nil || result == nil {
		return nil
	}

	var candidates []Placement
	for coord := range result.Scores {
		if t, ok := store.Get(coord); ok && !t.Placeholder() {
			continue
		}
		seen := make(map[[3]uint8]bool, 6)
		for rotation := uint8(0); rotation < 6; rotation++ {
			p, ok := evaluatePlacement(store, coord, next.Rotated(rotation))
			if !ok {
				continue
			}
			p.Rotation = rotation
			outcome := [3]uint8{p.MatchingEdges, p.MismatchedEdges, boolByte(p.Split)}
			if seen[outcome] {
				continue
			}
			seen[outcome] = true
			candidates = append(candidates, p)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Split != b.Split {
			return !a.Split
		}
		if a.MismatchedEdges != b.MismatchedEdges {
			return a.MismatchedEdges < b.MismatchedEdges
		}
		if a.MatchingEdges != b.MatchingEdges {
			return a.MatchingEdges > b.MatchingEdges
		}
		if a.Coord != b.Coord {
			if a.Coord.S != b.Coord.S {
				return a.Coord.S < b.Coord.S
			}
			return a.Coord.T < b.Coord.T
		}
		return a.Rotation < b.Rotation
	})

	if len(candidates) > maxRankedPlacements {
		candidates = candidates[:maxRankedPlacements]
	}
	return candidates
}

// evaluatePlacement scores one oriented tile at one cell. The second
// return is false when any edge pairing is forbidden.
func evaluatePlacement(store board.Store, coord hexgrid.GridCoord, tile *board.Tile) (Placement, bool) {
	p := Placement{Coord: coord}

	// Track runs of free vs bounded edges around the cell: more than three
	// runs means the placement would split the open frontier around it
	// into separate pockets.
	runs := 0
	lastFree := false

	for d := hexgrid.Direction(0); d < 6; d++ {
		mine := tile.TerrainAt(uint8(d))
		neighbor, _ := store.Get(coord.Neighbor(d))
		other := neighbor.TerrainAt(uint8(d.Opposite()))

		ok, matches := board.Connects(mine, other)
		if !ok {
			return Placement{}, false
		}
		free := other == board.TerrainMissing
		switch {
		case matches && !free:
			p.MatchingEdges++
		case !matches && !free:
			p.MismatchedEdges++
		}

		if d == 0 || free != lastFree {
			runs++
			lastFree = free
		}
	}
	p.Split = runs > 3
	return p, true
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
