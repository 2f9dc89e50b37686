// Package engine owns the board and runs the recompute pipeline:
// connectivity, scoring, packed snapshot. Mutations are serialized behind
// a mutex; every completed pass is published as an immutable snapshot
// through an atomic pointer, so readers never observe partial state.
// See design doc Section 5.
package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/mfriedel/hexscope/internal/analysis"
	"github.com/mfriedel/hexscope/internal/board"
	"github.com/mfriedel/hexscope/internal/hexgrid"
	"github.com/mfriedel/hexscope/internal/savegame"
)

// StoreKind selects the sparse store strategy.
type StoreKind string

const (
	StoreWindow   StoreKind = "window"
	StoreQuadrant StoreKind = "quadrant"
)

// NewStore returns an empty store of the given kind.
func NewStore(kind StoreKind) (board.Store, error) {
	switch kind {
	case StoreWindow, "":
		return board.NewWindowStore(), nil
	case StoreQuadrant:
		return board.NewQuadrantStore(), nil
	}
	return nil, fmt.Errorf("unknown store kind %q", kind)
}

// Engine is the single owner of the board.
type Engine struct {
	kind    StoreKind
	hexSize float64

	mu     sync.Mutex
	store  board.Store
	result *analysis.Result
	next   *board.Tile
	seq    uint64

	snap atomic.Pointer[Snapshot]

	subMu sync.Mutex
	subs  map[chan *Snapshot]struct{}
}

// LoadSummary reports what a reload produced.
type LoadSummary struct {
	Tiles        int
	Missing      int
	Placeholders int
	Groups       int
	Elapsed      time.Duration
}

// New creates an engine with an empty board. hexSize is the hexagon
// circumradius used for world coordinate queries.
func New(kind StoreKind, hexSize float64) (*Engine, error) {
	store, err := NewStore(kind)
	if err != nil {
		return nil, err
	}
	if hexSize <= 0 {
		hexSize = 1
	}
	e := &Engine{
		kind:    kind,
		hexSize: hexSize,
		store:   store,
		result:  analysis.Recompute(store, nil),
		subs:    make(map[chan *Snapshot]struct{}),
	}
	e.publishLocked()
	return e, nil
}

// Load replaces the board wholesale with the save's contents and runs a
// full rebuild. A malformed record aborts the load and leaves the previous
// board in place.
func (e *Engine) Load(save *savegame.Save) (LoadSummary, error) {
	start := time.Now()

	store, err := NewStore(e.kind)
	if err != nil {
		return LoadSummary{}, err
	}
	var summary LoadSummary
	for _, rec := range save.Tiles {
		tile, err := rec.Tile()
		if err != nil {
			return LoadSummary{}, fmt.Errorf("record (%d,%d): %w", rec.S, rec.T, err)
		}
		store.Set(hexgrid.GridCoord{S: rec.S, T: rec.T}, tile)
		switch {
		case tile.Missing:
			summary.Missing++
		case tile.Occupied():
			summary.Tiles++
		default:
			summary.Placeholders++
		}
	}
	next, err := save.NextTile()
	if err != nil {
		return LoadSummary{}, fmt.Errorf("next tile: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.store = store
	e.next = next
	e.result = analysis.Recompute(e.store, nil)
	snap := e.publishLocked()

	summary.Groups = len(e.result.Groups)
	summary.Elapsed = time.Since(start)
	slog.Info("board loaded",
		"tiles", summary.Tiles,
		"missing", summary.Missing,
		"groups", summary.Groups,
		"buffer", humanize.Bytes(uint64(len(snap.Words))*4),
		"elapsed", summary.Elapsed,
	)
	return summary, nil
}

// Place sets a tile and recomputes the region reachable from it.
func (e *Engine) Place(c hexgrid.GridCoord, t *board.Tile) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store.Set(c, t)
	e.result = analysis.Recompute(e.store, []hexgrid.GridCoord{c})
	e.publishLocked()
}

// TileAt returns a copy of the tile at c.
func (e *Engine) TileAt(c hexgrid.GridCoord) (board.Tile, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, ok := e.store.Get(c)
	if !ok {
		return board.Tile{}, false
	}
	out := *t
	out.Segments = append([]board.Segment(nil), t.Segments...)
	return out, true
}

// GroupAt returns the group containing the given segment, if the last
// pass covered it. Group ids are only meaningful within one pass.
func (e *Engine) GroupAt(c hexgrid.GridCoord, segment int) (analysis.Group, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	g, ok := e.result.GroupAt(analysis.SegmentKey{Coord: c, Segment: segment})
	if !ok {
		return analysis.Group{}, false
	}
	return *g, true
}

// ScoreAt returns the placement desirability of c.
func (e *Engine) ScoreAt(c hexgrid.GridCoord) uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return analysis.ScoreAt(e.store, c)
}

// Locate maps a world-space point to its cell.
func (e *Engine) Locate(x, y float64) hexgrid.GridCoord {
	return hexgrid.WorldToGrid(x, y, e.hexSize)
}

// NextTile returns the save's pending tile, nil when there is none.
func (e *Engine) NextTile() *board.Tile {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.next
}

// Placements ranks positions and rotations for the pending tile. This
// walks the whole frontier, so the API rate-limits it.
func (e *Engine) Placements() []analysis.Placement {
	e.mu.Lock()
	defer e.mu.Unlock()
	return analysis.RankPlacements(e.store, e.result, e.next)
}

// Snapshot returns the latest published snapshot.
func (e *Engine) Snapshot() *Snapshot {
	return e.snap.Load()
}

// Subscribe registers a snapshot consumer. The channel holds the newest
// snapshot only; a slow consumer skips intermediate ones. The returned
// cancel function must be called when done.
func (e *Engine) Subscribe() (<-chan *Snapshot, func()) {
	ch := make(chan *Snapshot, 1)
	e.subMu.Lock()
	e.subs[ch] = struct{}{}
	e.subMu.Unlock()

	if s := e.snap.Load(); s != nil {
		ch <- s
	}
	cancel := func() {
		e.subMu.Lock()
		delete(e.subs, ch)
		e.subMu.Unlock()
	}
	return ch, cancel
}

// publishLocked builds and publishes a snapshot of the current state.
// Caller holds e.mu.
func (e *Engine) publishLocked() *Snapshot {
	e.seq++
	snap := buildSnapshot(e.store, e.result, e.seq)
	e.snap.Store(snap)

	e.subMu.Lock()
	for ch := range e.subs {
		select {
		case ch <- snap:
		default:
			// Replace the stale snapshot the consumer has not taken yet.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
	e.subMu.Unlock()
	return snap
}
