package engine

import (
	"encoding/binary"

	"github.com/mfriedel/hexscope/internal/analysis"
	"github.com/mfriedel/hexscope/internal/board"
	"github.com/mfriedel/hexscope/internal/hexgrid"
)

// Stats summarizes one recompute pass for the status endpoint.
type Stats struct {
	Tiles        int            `json:"tiles"`
	Missing      int            `json:"missing"`
	Placeholders int            `json:"placeholders"`
	Segments     int            `json:"segments"`
	Groups       int            `json:"groups"`
	ClosedGroups int            `json:"closed_groups"`
	Terrains     map[string]int `json:"terrains"` // segment count per terrain
}

// Snapshot is one immutable published view of the board: the packed cell
// buffer over the bounding window plus derived statistics. Consumers must
// not mutate it.
type Snapshot struct {
	Schema uint32            `json:"schema"`
	Seq    uint64            `json:"seq"`
	Offset hexgrid.GridCoord `json:"offset"`
	Extent hexgrid.GridCoord `json:"extent"`
	// QuadrantLens carries the per-quadrant slice lengths when the board
	// uses the quadrant store, for renderers indexing that layout.
	QuadrantLens []int    `json:"quadrant_lens,omitempty"`
	Words        []uint32 `json:"-"`
	Stats        Stats    `json:"stats"`
}

// buildSnapshot packs the bounding window row-major, one fixed-size cell
// record per coordinate. Cells the store never saw encode as missing.
func buildSnapshot(store board.Store, result *analysis.Result, seq uint64) *Snapshot {
	offset, extent := store.Bounds()
	snap := &Snapshot{
		Schema: board.SchemaVersion,
		Seq:    seq,
		Offset: offset,
		Extent: extent,
		Words:  make([]uint32, extent.S*extent.T*board.WordsPerCell),
		Stats: Stats{
			Groups:   len(result.Groups),
			Terrains: make(map[string]int),
		},
	}
	if q, ok := store.(*board.QuadrantStore); ok {
		lens := q.QuadrantLens()
		snap.QuadrantLens = lens[:]
	}
	for _, g := range result.Groups {
		if g.Closed() {
			snap.Stats.ClosedGroups++
		}
	}

	store.Each(func(c hexgrid.GridCoord, t *board.Tile) bool {
		idx := ((c.T-offset.T)*extent.S + (c.S - offset.S)) * board.WordsPerCell
		board.EncodeTile(t, snap.Words[idx:idx+board.WordsPerCell])
		switch {
		case t.Missing:
			snap.Stats.Missing++
		case t.Occupied():
			snap.Stats.Tiles++
			snap.Stats.Segments += len(t.Segments)
			for i := range t.Segments {
				snap.Stats.Terrains[t.Segments[i].Terrain.String()]++
			}
		default:
			snap.Stats.Placeholders++
		}
		return true
	})
	return snap
}

// Bytes serializes the snapshot for the renderer wire: a little-endian
// header (schema, sequence, offset, extent) followed by the packed words.
func (s *Snapshot) Bytes() []byte {
	const headerWords = 8
	buf := make([]byte, (headerWords+len(s.Words))*4)
	le := binary.LittleEndian

	le.PutUint32(buf[0:], s.Schema)
	le.PutUint64(buf[4:], s.Seq)
	le.PutUint32(buf[12:], uint32(int32(s.Offset.S)))
	le.PutUint32(buf[16:], uint32(int32(s.Offset.T)))
	le.PutUint32(buf[20:], uint32(int32(s.Extent.S)))
	le.PutUint32(buf[24:], uint32(int32(s.Extent.T)))
	le.PutUint32(buf[28:], uint32(len(s.Words)))

	for i, w := range s.Words {
		le.PutUint32(buf[(headerWords+i)*4:], w)
	}
	return buf
}
