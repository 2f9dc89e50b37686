package board

import "github.com/mfriedel/hexscope/internal/hexgrid"

// Store holds all tiles keyed by grid coordinate. The board is conceptually
// unbounded, so implementations avoid a dense array sized to worst-case
// extent. A lookup for an unpopulated coordinate reports "not present",
// which is distinct from an existing placeholder tile and never an error.
type Store interface {
	// Get returns the tile at the coordinate, if present.
	Get(c hexgrid.GridCoord) (*Tile, bool)
	// Set places a tile, growing the store as needed.
	Set(c hexgrid.GridCoord, t *Tile)
	// Bounds returns the minimal known bounding rectangle as an offset and
	// an extent (width, height) in grid coordinates.
	Bounds() (offset, extent hexgrid.GridCoord)
	// Each visits every populated cell; returning false stops the walk.
	// Visit order is deterministic per implementation.
	Each(fn func(c hexgrid.GridCoord, t *Tile) bool)
	// Len returns the number of populated cells.
	Len() int
}

// WindowStore keeps tiles in a dense rectangle covering the minimal known
// bounding window. Lookups outside the window miss in O(1) without
// allocation; growth reallocates the rectangle.
type WindowStore struct {
	offset hexgrid.GridCoord
	extent hexgrid.GridCoord // width, height; zero until first Set
	cells  []*Tile           // row-major, len = extent.S * extent.T
	count  int
}

// NewWindowStore returns an empty windowed store.
func NewWindowStore() *WindowStore {
	return &WindowStore{}
}

// key returns the slice index for c, or false when outside the window.
func (w *WindowStore) key(c hexgrid.GridCoord) (int, bool) {
	ds, dt := c.S-w.offset.S, c.T-w.offset.T
	if ds < 0 || dt < 0 || ds >= w.extent.S || dt >= w.extent.T {
		return 0, false
	}
	return dt*w.extent.S + ds, true
}

func (w *WindowStore) Get(c hexgrid.GridCoord) (*Tile, bool) {
	k, ok := w.key(c)
	if !ok || w.cells[k] == nil {
		return nil, false
	}
	return w.cells[k], true
}

func (w *WindowStore) Set(c hexgrid.GridCoord, t *Tile) {
	k, ok := w.key(c)
	if !ok {
		w.grow(c)
		k, _ = w.key(c)
	}
	if w.cells[k] == nil && t != nil {
		w.count++
	}
	w.cells[k] = t
}

// grow reallocates the window so that it also covers c.
func (w *WindowStore) grow(c hexgrid.GridCoord) {
	if w.extent.S == 0 {
		w.offset = c
		w.extent = hexgrid.GridCoord{S: 1, T: 1}
		w.cells = make([]*Tile, 1)
		return
	}
	offset := hexgrid.GridCoord{S: min(w.offset.S, c.S), T: min(w.offset.T, c.T)}
	upperS := max(w.offset.S+w.extent.S, c.S+1)
	upperT := max(w.offset.T+w.extent.T, c.T+1)
	extent := hexgrid.GridCoord{S: upperS - offset.S, T: upperT - offset.T}

	cells := make([]*Tile, extent.S*extent.T)
	for dt := 0; dt < w.extent.T; dt++ {
		srcRow := w.cells[dt*w.extent.S : (dt+1)*w.extent.S]
		dstBase := (dt+w.offset.T-offset.T)*extent.S + (w.offset.S - offset.S)
		copy(cells[dstBase:dstBase+w.extent.S], srcRow)
	}
	w.offset, w.extent, w.cells = offset, extent, cells
}

func (w *WindowStore) Bounds() (offset, extent hexgrid.GridCoord) {
	return w.offset, w.extent
}

// Each walks the window row-major from the offset corner.
func (w *WindowStore) Each(fn func(c hexgrid.GridCoord, t *Tile) bool) {
	for dt := 0; dt < w.extent.T; dt++ {
		for ds := 0; ds < w.extent.S; ds++ {
			t := w.cells[dt*w.extent.S+ds]
			if t == nil {
				continue
			}
			c := hexgrid.GridCoord{S: w.offset.S + ds, T: w.offset.T + dt}
			if !fn(c, t) {
				return
			}
		}
	}
}

func (w *WindowStore) Len() int {
	return w.count
}
