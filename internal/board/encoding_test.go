package board

import (
	"errors"
	"reflect"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		tile *Tile
	}{
		{"single segment", &Tile{Segments: []Segment{
			{Terrain: TerrainForest, Form: FormSize6},
		}}},
		{"full tile with derived fields", &Tile{Segments: []Segment{
			{Terrain: TerrainHouse, Form: FormSize2, Rotation: 1, Group: 42, Closed: true},
			{Terrain: TerrainRail, Form: FormStraight, Rotation: 2, Group: 7},
			{Terrain: TerrainWheat, Form: FormSize1, Rotation: 5, Group: 99, Closed: true},
		}}},
		{"six segments", &Tile{Segments: []Segment{
			{Terrain: TerrainHouse, Form: FormSize1},
			{Terrain: TerrainForest, Form: FormSize1, Rotation: 1},
			{Terrain: TerrainWheat, Form: FormSize1, Rotation: 2},
			{Terrain: TerrainLake, Form: FormSize1, Rotation: 3},
			{Terrain: TerrainRiver, Form: FormSize1, Rotation: 4},
			{Terrain: TerrainRail, Form: FormSize1, Rotation: 5},
		}}},
		{"reserved form preserved", &Tile{Segments: []Segment{
			{Terrain: TerrainLake, Form: FormReserved15, Rotation: 3, Group: 5},
		}}},
		{"placeholder with score", &Tile{Score: 4}},
		{"group id at field width", &Tile{Segments: []Segment{
			{Terrain: TerrainForest, Form: FormSize3, Group: 1<<19 - 1},
		}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var words [WordsPerCell]uint32
			EncodeTile(tc.tile, words[:])
			got, err := DecodeTile(words[:])
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tc.tile) {
				t.Errorf("round trip changed tile:\n got %+v\nwant %+v", got, tc.tile)
			}
		})
	}
}

func TestEncodeMissing(t *testing.T) {
	var words [WordsPerCell]uint32
	for i := range words {
		words[i] = 0xDEADBEEF
	}
	EncodeTile(&Tile{Missing: true}, words[:])
	got, err := DecodeTile(words[:])
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("missing cell decoded to %+v", got)
	}

	// nil encodes the same as missing.
	EncodeTile(nil, words[:])
	if got, _ := DecodeTile(words[:]); got != nil {
		t.Errorf("nil tile decoded to %+v", got)
	}
}

func TestZeroBufferIsMissing(t *testing.T) {
	var words [WordsPerCell]uint32
	got, err := DecodeTile(words[:])
	if err != nil || got != nil {
		t.Errorf("zeroed record = (%+v, %v), want (nil, nil)", got, err)
	}
}

func TestDecodeRejectsBadTerrain(t *testing.T) {
	var words [WordsPerCell]uint32
	words[0] = 13 // terrain nibble outside the enumerated set
	_, err := DecodeTile(words[:])
	var malformed *MalformedTileError
	if !errors.As(err, &malformed) {
		t.Fatalf("err = %v, want MalformedTileError", err)
	}
	if malformed.Value != 13 {
		t.Errorf("Value = %d, want 13", malformed.Value)
	}
}
