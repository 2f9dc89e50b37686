package board

import "github.com/mfriedel/hexscope/internal/hexgrid"

// QuadrantStore partitions the plane into four quadrants by coordinate sign
// and maps each cell to a dense growable slice via triangular-number
// indexing, ordered by ring distance from the origin. Extending the board
// outward appends; existing entries are never re-indexed.
type QuadrantStore struct {
	quadrants [4][]quadrantCell
	count     int

	// Running bounds over populated cells.
	lo, hi hexgrid.GridCoord
}

type quadrantCell struct {
	coord hexgrid.GridCoord
	tile  *Tile
}

// NewQuadrantStore returns an empty quadrant-indexed store.
func NewQuadrantStore() *QuadrantStore {
	return &QuadrantStore{}
}

// quadrantOf numbers the quadrants counter-clockwise from (+s, +t).
func quadrantOf(c hexgrid.GridCoord) int {
	switch {
	case c.S >= 0 && c.T >= 0:
		return 0
	case c.S < 0 && c.T >= 0:
		return 1
	case c.S < 0:
		return 2
	default:
		return 3
	}
}

// triangularIndex maps a coordinate to its slot inside the quadrant:
// index = (|s|+|t|+1)(|s|+|t|)/2 + |t|, a bijection that enumerates the
// quadrant ring by ring.
func triangularIndex(c hexgrid.GridCoord) int {
	s, t := c.S, c.T
	if s < 0 {
		s = -1 - s
	}
	if t < 0 {
		t = -1 - t
	}
	st := s + t
	return (st+1)*st/2 + t
}

func (q *QuadrantStore) Get(c hexgrid.GridCoord) (*Tile, bool) {
	cells := q.quadrants[quadrantOf(c)]
	k := triangularIndex(c)
	if k >= len(cells) || cells[k].tile == nil {
		return nil, false
	}
	return cells[k].tile, true
}

func (q *QuadrantStore) Set(c hexgrid.GridCoord, t *Tile) {
	quadrant := quadrantOf(c)
	cells := q.quadrants[quadrant]
	k := triangularIndex(c)
	if k >= len(cells) {
		grown := make([]quadrantCell, k+1)
		copy(grown, cells)
		cells = grown
	}
	if cells[k].tile == nil && t != nil {
		q.count++
		q.extendBounds(c)
	}
	cells[k] = quadrantCell{coord: c, tile: t}
	q.quadrants[quadrant] = cells
}

func (q *QuadrantStore) extendBounds(c hexgrid.GridCoord) {
	if q.count == 1 {
		q.lo, q.hi = c, c
		return
	}
	q.lo.S = min(q.lo.S, c.S)
	q.lo.T = min(q.lo.T, c.T)
	q.hi.S = max(q.hi.S, c.S)
	q.hi.T = max(q.hi.T, c.T)
}

func (q *QuadrantStore) Bounds() (offset, extent hexgrid.GridCoord) {
	if q.count == 0 {
		return hexgrid.GridCoord{}, hexgrid.GridCoord{}
	}
	return q.lo, hexgrid.GridCoord{S: q.hi.S - q.lo.S + 1, T: q.hi.T - q.lo.T + 1}
}

// Each walks quadrants in order, each by ascending ring index.
func (q *QuadrantStore) Each(fn func(c hexgrid.GridCoord, t *Tile) bool) {
	for _, cells := range q.quadrants {
		for i := range cells {
			if cells[i].tile == nil {
				continue
			}
			if !fn(cells[i].coord, cells[i].tile) {
				return
			}
		}
	}
}

func (q *QuadrantStore) Len() int {
	return q.count
}

// QuadrantLens returns the current length of each quadrant slice; the
// renderer needs these to address per-quadrant buffers.
func (q *QuadrantStore) QuadrantLens() [4]int {
	var lens [4]int
	for i := range q.quadrants {
		lens[i] = len(q.quadrants[i])
	}
	return lens
}
