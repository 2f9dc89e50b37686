package board

import "fmt"

// Segment is one contiguous terrain feature occupying one or more of a
// tile's six edges. Group and Closed are derived fields owned by the
// connectivity engine; they are only stable within one recompute pass.
type Segment struct {
	Terrain  Terrain `json:"terrain"`
	Form     Form    `json:"form"`
	Rotation uint8   `json:"rotation"` // clockwise, 0..5

	Group  uint32 `json:"group"`
	Closed bool   `json:"closed"`
}

// Covers reports whether the segment extends to the given absolute edge.
func (s Segment) Covers(edge uint8) bool {
	return s.Form.Covers(s.Rotation, edge)
}

// Tile is one cell of the board. A tile with Missing set is a known-absent
// slot inside the loaded window; a tile with no segments and Missing unset
// is a placeholder. Segments are prefix-populated: an empty slot is never
// followed by a feature.
type Tile struct {
	Missing  bool      `json:"missing,omitempty"`
	Segments []Segment `json:"segments,omitempty"`

	// Score is the placement desirability computed for placeholder cells;
	// zero means unscored.
	Score uint8 `json:"score,omitempty"`
}

// NewTile validates and assembles a tile from its segments.
// Rotation is normalized into 0..5; terrain values outside the enumerated
// set are rejected with MalformedTileError.
func NewTile(segments []Segment) (*Tile, error) {
	if len(segments) > 6 {
		return nil, fmt.Errorf("tile has %d segments, at most 6 allowed", len(segments))
	}
	for i := range segments {
		seg := &segments[i]
		if !seg.Terrain.Valid() || seg.Terrain == TerrainMissing {
			return nil, &MalformedTileError{Value: uint32(seg.Terrain)}
		}
		if seg.Terrain == TerrainNone {
			// Prefix rule: the first empty slot terminates the list.
			segments = segments[:i]
			break
		}
		seg.Rotation %= 6
	}
	return &Tile{Segments: segments}, nil
}

// Occupied reports whether the tile carries at least one feature.
func (t *Tile) Occupied() bool {
	return t != nil && !t.Missing && len(t.Segments) > 0
}

// Placeholder reports whether the tile is a known-empty cell.
func (t *Tile) Placeholder() bool {
	return t != nil && !t.Missing && len(t.Segments) == 0
}

// TerrainAt returns the terrain presented on the given edge, TerrainNone if
// no segment covers it, TerrainMissing for missing tiles.
func (t *Tile) TerrainAt(edge uint8) Terrain {
	if t == nil || t.Missing {
		return TerrainMissing
	}
	for i := range t.Segments {
		if t.Segments[i].Covers(edge) {
			return t.Segments[i].Terrain
		}
	}
	return TerrainNone
}

// EdgeTerrains returns the terrain presented on each of the six edges.
func (t *Tile) EdgeTerrains() [6]Terrain {
	var edges [6]Terrain
	for d := uint8(0); d < 6; d++ {
		edges[d] = t.TerrainAt(d)
	}
	return edges
}

// SegmentsAt yields the indices of segments covering the given edge. There
// can be more than one only on station tiles.
func (t *Tile) SegmentsAt(edge uint8) []int {
	if !t.Occupied() {
		return nil
	}
	var out []int
	for i := range t.Segments {
		if t.Segments[i].Covers(edge) {
			out = append(out, i)
		}
	}
	return out
}

// ConnectingSegmentAt finds the segment covering the given edge whose
// terrain is compatible with the one approaching from the neighbor.
// Station tiles uphold the rule that at most one segment qualifies.
func (t *Tile) ConnectingSegmentAt(approaching Terrain, edge uint8) (int, bool) {
	for _, i := range t.SegmentsAt(edge) {
		if Compatible(approaching, t.Segments[i].Terrain) {
			return i, true
		}
	}
	return 0, false
}

// Rotated returns a copy of the tile turned clockwise by the given number
// of steps. Derived fields are not carried over.
func (t *Tile) Rotated(steps uint8) *Tile {
	out := &Tile{Missing: t.Missing, Segments: make([]Segment, len(t.Segments))}
	for i, seg := range t.Segments {
		out.Segments[i] = Segment{
			Terrain:  seg.Terrain,
			Form:     seg.Form,
			Rotation: (seg.Rotation + steps) % 6,
		}
	}
	return out
}
