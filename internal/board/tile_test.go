package board

import (
	"errors"
	"testing"
)

func TestNewTilePrefixRule(t *testing.T) {
	tile, err := NewTile([]Segment{
		{Terrain: TerrainForest, Form: FormSize2},
		{Terrain: TerrainNone},
		{Terrain: TerrainWheat, Form: FormSize1}, // after the terminator, dropped
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(tile.Segments) != 1 {
		t.Fatalf("segments after terminator kept: %v", tile.Segments)
	}
}

func TestNewTileRejectsBadTerrain(t *testing.T) {
	_, err := NewTile([]Segment{{Terrain: Terrain(12), Form: FormSize1}})
	var malformed *MalformedTileError
	if !errors.As(err, &malformed) {
		t.Fatalf("err = %v, want MalformedTileError", err)
	}
	if _, err := NewTile([]Segment{{Terrain: TerrainMissing}}); err == nil {
		t.Fatal("missing sentinel accepted as segment terrain")
	}
}

func TestNewTileNormalizesRotation(t *testing.T) {
	tile, err := NewTile([]Segment{{Terrain: TerrainHouse, Form: FormSize1, Rotation: 13}})
	if err != nil {
		t.Fatal(err)
	}
	if tile.Segments[0].Rotation != 1 {
		t.Errorf("rotation = %d, want 1", tile.Segments[0].Rotation)
	}
}

func TestEdgeMaskRotation(t *testing.T) {
	cases := []struct {
		form     Form
		rotation uint8
		want     uint8
	}{
		{FormSize1, 0, 0b000001},
		{FormSize1, 4, 0b010000},
		{FormSize2, 5, 0b100001}, // wraps around
		{FormStraight, 2, 0b100100},
		{FormThreeWay, 1, 0b101010},
		{FormSize6, 3, 0b111111},
		{FormReserved14, 2, 0}, // reserved forms cover nothing
	}
	for _, tc := range cases {
		if got := tc.form.EdgeMask(tc.rotation); got != tc.want {
			t.Errorf("%v.EdgeMask(%d) = %06b, want %06b", tc.form, tc.rotation, got, tc.want)
		}
	}
}

func TestTerrainAt(t *testing.T) {
	tile, err := NewTile([]Segment{
		{Terrain: TerrainForest, Form: FormSize2, Rotation: 0}, // edges 0,1
		{Terrain: TerrainLake, Form: FormSize2, Rotation: 3},   // edges 3,4
	})
	if err != nil {
		t.Fatal(err)
	}
	want := [6]Terrain{
		TerrainForest, TerrainForest, TerrainNone,
		TerrainLake, TerrainLake, TerrainNone,
	}
	if got := tile.EdgeTerrains(); got != want {
		t.Errorf("EdgeTerrains = %v, want %v", got, want)
	}

	var missing *Tile
	if missing.TerrainAt(0) != TerrainMissing {
		t.Error("nil tile should present the missing sentinel")
	}
}

func TestConnectingSegmentAtStation(t *testing.T) {
	// A rail station tile with a lake segment on the same edge: the
	// approaching terrain picks which segment joins.
	tile, err := NewTile([]Segment{
		{Terrain: TerrainRailStation, Form: FormSize6},
		{Terrain: TerrainLake, Form: FormSize1, Rotation: 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	if i, ok := tile.ConnectingSegmentAt(TerrainRail, 2); !ok || i != 0 {
		t.Errorf("rail approach: segment %d, ok %v; want 0, true", i, ok)
	}
	if i, ok := tile.ConnectingSegmentAt(TerrainLake, 2); !ok || i != 1 {
		t.Errorf("lake approach: segment %d, ok %v; want 1, true", i, ok)
	}
	if _, ok := tile.ConnectingSegmentAt(TerrainWheat, 2); ok {
		t.Error("wheat approach should not connect")
	}
}

func TestRotated(t *testing.T) {
	tile, err := NewTile([]Segment{{Terrain: TerrainWheat, Form: FormSize1, Rotation: 4}})
	if err != nil {
		t.Fatal(err)
	}
	got := tile.Rotated(3)
	if got.Segments[0].Rotation != 1 {
		t.Errorf("rotation = %d, want 1", got.Segments[0].Rotation)
	}
	if tile.Segments[0].Rotation != 4 {
		t.Error("Rotated mutated the original")
	}
}

func TestCompatible(t *testing.T) {
	cases := []struct {
		a, b Terrain
		want bool
	}{
		{TerrainForest, TerrainForest, true},
		{TerrainForest, TerrainWheat, false},
		{TerrainRail, TerrainRailStation, true},
		{TerrainRailStation, TerrainRail, true},
		{TerrainLakeStation, TerrainLake, true},
		{TerrainLakeStation, TerrainRiver, true},
		{TerrainLakeStation, TerrainRail, false},
		{TerrainRailStation, TerrainRailStation, true},
		{TerrainRiver, TerrainLake, false}, // rivers join lakes only through a station
		{TerrainNone, TerrainForest, false},
		{TerrainMissing, TerrainMissing, false},
	}
	for _, tc := range cases {
		if got := Compatible(tc.a, tc.b); got != tc.want {
			t.Errorf("Compatible(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestConnects(t *testing.T) {
	cases := []struct {
		a, b        Terrain
		ok, matches bool
	}{
		{TerrainForest, TerrainForest, true, true},
		{TerrainForest, TerrainWheat, true, false},
		{TerrainRail, TerrainRail, true, true},
		{TerrainRail, TerrainForest, false, false},
		{TerrainRail, TerrainNone, false, false},
		{TerrainRiver, TerrainLake, true, true},
		{TerrainRiver, TerrainWheat, false, false},
		{TerrainLake, TerrainNone, true, true},
		{TerrainHouse, TerrainNone, true, false},
		{TerrainHouse, TerrainMissing, true, false},
	}
	for _, tc := range cases {
		ok, matches := Connects(tc.a, tc.b)
		if ok != tc.ok || matches != tc.matches {
			t.Errorf("Connects(%v, %v) = (%v, %v), want (%v, %v)",
				tc.a, tc.b, ok, matches, tc.ok, tc.matches)
		}
	}
}
