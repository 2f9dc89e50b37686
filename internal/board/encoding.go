package board

import "fmt"

// Packed encoding consumed by the renderer. Each segment is one 32-bit
// word; each cell is a fixed eight-word record so the buffer stays
// word-aligned for the consuming shader:
//
//	word 0..5  segments: terrain[0:4] form[4:9] rotation[9:12] closed[12] group[13:32]
//	word 6     placement score (placeholder cells)
//	word 7     reserved
//
// The packing is purely a serialization of the tile model and carries no
// independent state. Schema revisions bump SchemaVersion; the tile model
// itself is schema-independent.
const (
	SchemaVersion = 1

	// WordsPerCell is the fixed record size of one cell in the buffer.
	WordsPerCell = 8

	terrainMask = 0xF
	formShift   = 4
	formMask    = 0x1F
	rotShift    = 9
	rotMask     = 0x7
	closedShift = 12
	groupShift  = 13
	groupMax    = 1<<(32-groupShift) - 1
)

// MalformedTileError reports a terrain value outside the enumerated set.
// It is fatal to the load of the offending record, not to the process.
type MalformedTileError struct {
	Value uint32
}

func (e *MalformedTileError) Error() string {
	return fmt.Sprintf("malformed tile: terrain value %d outside enumerated set", e.Value)
}

// packSegment packs one segment into its wire word.
func packSegment(s Segment) uint32 {
	word := uint32(s.Terrain)&terrainMask |
		(uint32(s.Form)&formMask)<<formShift |
		(uint32(s.Rotation%6)&rotMask)<<rotShift |
		(uint32(s.Group)&groupMax)<<groupShift
	if s.Closed {
		word |= 1 << closedShift
	}
	return word
}

// unpackSegment is the inverse of packSegment.
func unpackSegment(word uint32) Segment {
	return Segment{
		Terrain:  Terrain(word & terrainMask),
		Form:     Form(word >> formShift & formMask),
		Rotation: uint8(word >> rotShift & rotMask),
		Closed:   word>>closedShift&1 == 1,
		Group:    word >> groupShift,
	}
}

// EncodeTile writes the cell record for t into dst, which must hold at
// least WordsPerCell words. A nil tile encodes as a missing cell.
func EncodeTile(t *Tile, dst []uint32) {
	_ = dst[WordsPerCell-1]
	for i := range dst[:WordsPerCell] {
		dst[i] = 0
	}
	if t == nil || t.Missing {
		dst[0] = uint32(TerrainMissing)
		return
	}
	for i, seg := range t.Segments {
		dst[i] = packSegment(seg)
	}
	if len(t.Segments) < 6 {
		dst[len(t.Segments)] = uint32(TerrainNone)
	}
	dst[6] = uint32(t.Score)
}

// DecodeTile reads one cell record. Missing cells decode to nil. Terrain
// values outside the enumerated set are rejected with MalformedTileError;
// unknown form values decode fine and are preserved verbatim, they simply
// cover no edges downstream.
func DecodeTile(words []uint32) (*Tile, error) {
	_ = words[WordsPerCell-1]
	first := Terrain(words[0] & terrainMask)
	if first == TerrainMissing {
		return nil, nil
	}

	tile := &Tile{Score: uint8(words[6])}
	for i := 0; i < 6; i++ {
		seg := unpackSegment(words[i])
		if seg.Terrain == TerrainNone {
			break
		}
		if !seg.Terrain.Valid() {
			return nil, &MalformedTileError{Value: words[i] & terrainMask}
		}
		if seg.Terrain == TerrainMissing {
			return nil, &MalformedTileError{Value: words[i] & terrainMask}
		}
		tile.Segments = append(tile.Segments, seg)
	}
	return tile, nil
}
