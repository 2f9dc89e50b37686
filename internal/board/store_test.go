package board

import (
	"testing"

	"github.com/mfriedel/hexscope/internal/hexgrid"
)

func stores() map[string]func() Store {
	return map[string]func() Store{
		"window":   func() Store { return NewWindowStore() },
		"quadrant": func() Store { return NewQuadrantStore() },
	}
}

func forest() *Tile {
	return &Tile{Segments: []Segment{{Terrain: TerrainForest, Form: FormSize6}}}
}

func TestStoreGetSet(t *testing.T) {
	coords := []hexgrid.GridCoord{
		{S: 0, T: 0}, {S: 1, T: 0}, {S: -1, T: 0}, {S: 0, T: -1}, {S: -5, T: -7}, {S: 40, T: 3}, {S: -3, T: 12},
	}
	for name, mk := range stores() {
		t.Run(name, func(t *testing.T) {
			s := mk()
			if _, ok := s.Get(hexgrid.GridCoord{S: 2, T: 2}); ok {
				t.Fatal("empty store reported a tile")
			}
			for _, c := range coords {
				s.Set(c, forest())
			}
			if s.Len() != len(coords) {
				t.Fatalf("Len = %d, want %d", s.Len(), len(coords))
			}
			for _, c := range coords {
				tile, ok := s.Get(c)
				if !ok || !tile.Occupied() {
					t.Errorf("tile at %v missing after Set", c)
				}
			}
			// Cells inside the populated area but never set stay absent.
			if _, ok := s.Get(hexgrid.GridCoord{S: 1, T: 1}); ok {
				t.Error("unset cell reported present")
			}
		})
	}
}

func TestStorePlaceholderDistinctFromAbsent(t *testing.T) {
	for name, mk := range stores() {
		t.Run(name, func(t *testing.T) {
			s := mk()
			s.Set(hexgrid.GridCoord{}, &Tile{})
			tile, ok := s.Get(hexgrid.GridCoord{})
			if !ok {
				t.Fatal("placeholder reported absent")
			}
			if !tile.Placeholder() || tile.Occupied() {
				t.Error("placeholder misclassified")
			}
		})
	}
}

func TestStoreOverwrite(t *testing.T) {
	for name, mk := range stores() {
		t.Run(name, func(t *testing.T) {
			s := mk()
			c := hexgrid.GridCoord{S: 3, T: -2}
			s.Set(c, forest())
			s.Set(c, &Tile{Missing: true})
			if s.Len() != 1 {
				t.Errorf("Len = %d after overwrite, want 1", s.Len())
			}
			tile, _ := s.Get(c)
			if !tile.Missing {
				t.Error("overwrite did not replace tile")
			}
		})
	}
}

func TestStoreEachVisitsAll(t *testing.T) {
	for name, mk := range stores() {
		t.Run(name, func(t *testing.T) {
			s := mk()
			want := map[hexgrid.GridCoord]bool{}
			for _, c := range []hexgrid.GridCoord{{S: 0, T: 0}, {S: -2, T: 1}, {S: 5, T: -5}, {S: 1, T: 8}} {
				s.Set(c, forest())
				want[c] = true
			}
			got := map[hexgrid.GridCoord]bool{}
			s.Each(func(c hexgrid.GridCoord, tile *Tile) bool {
				if tile == nil {
					t.Fatalf("Each visited nil tile at %v", c)
				}
				got[c] = true
				return true
			})
			if len(got) != len(want) {
				t.Fatalf("Each visited %d cells, want %d", len(got), len(want))
			}
			for c := range want {
				if !got[c] {
					t.Errorf("Each skipped %v", c)
				}
			}
		})
	}
}

func TestStoreBounds(t *testing.T) {
	for name, mk := range stores() {
		t.Run(name, func(t *testing.T) {
			s := mk()
			s.Set(hexgrid.GridCoord{S: -2, T: 1}, forest())
			s.Set(hexgrid.GridCoord{S: 3, T: -4}, forest())
			offset, extent := s.Bounds()
			if offset.S > -2 || offset.T > -4 {
				t.Errorf("offset %v does not cover populated cells", offset)
			}
			if offset.S+extent.S < 4 || offset.T+extent.T < 2 {
				t.Errorf("offset %v + extent %v does not cover populated cells", offset, extent)
			}
		})
	}
}

// Growth in the quadrant store must not move existing entries: the
// triangular index of a coordinate never changes.
func TestQuadrantGrowthKeepsEntries(t *testing.T) {
	s := NewQuadrantStore()
	near := hexgrid.GridCoord{S: 1, T: 1}
	s.Set(near, forest())
	s.Set(hexgrid.GridCoord{S: 50, T: 50}, forest())
	s.Set(hexgrid.GridCoord{S: -50, T: 50}, forest())
	s.Set(hexgrid.GridCoord{S: 50, T: -50}, forest())
	s.Set(hexgrid.GridCoord{S: -50, T: -50}, forest())

	if tile, ok := s.Get(near); !ok || !tile.Occupied() {
		t.Fatal("entry lost after quadrant growth")
	}
	lens := s.QuadrantLens()
	for q, n := range lens {
		if n == 0 {
			t.Errorf("quadrant %d reported empty", q)
		}
	}
}
