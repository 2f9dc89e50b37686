// Package savegame reads and writes the normalized per-tile record stream
// that stands between the proprietary save format and the board model.
// See design doc Section 6.1.
package savegame

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mfriedel/hexscope/internal/board"
)

// FormatVersion tags the JSON save format, independent of the packed
// renderer schema.
const FormatVersion = 1

// SegmentRecord is one segment as it appears on disk.
type SegmentRecord struct {
	Terrain  uint8 `json:"terrain"`
	Form     uint8 `json:"form"`
	Rotation uint8 `json:"rotation"`
}

// Record is one tile of the save. Missing records mark cells the game
// knows to be absent, distinct from cells the save simply never mentions.
type Record struct {
	S        int             `json:"s"`
	T        int             `json:"t"`
	Missing  bool            `json:"missing,omitempty"`
	Segments []SegmentRecord `json:"segments,omitempty"`
}

// Save is a complete save file: the placed tiles plus the tile the player
// would place next.
type Save struct {
	Version int             `json:"version"`
	Tiles   []Record        `json:"tiles"`
	Next    []SegmentRecord `json:"next,omitempty"`
}

// Load reads and validates a save file.
func Load(path string) (*Save, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read save: %w", err)
	}
	var save Save
	if err := json.Unmarshal(data, &save); err != nil {
		return nil, fmt.Errorf("parse save %s: %w", path, err)
	}
	if save.Version != FormatVersion {
		return nil, fmt.Errorf("save %s: unsupported format version %d", path, save.Version)
	}
	return &save, nil
}

// Write serializes the save to path.
func Write(path string, save *Save) error {
	data, err := json.MarshalIndent(save, "", "  ")
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	return nil
}

// Tile converts one record into the board model. Missing records convert
// to a missing tile; segment validation follows the tile model's rules.
func (r Record) Tile() (*board.Tile, error) {
	if r.Missing {
		return &board.Tile{Missing: true}, nil
	}
	return buildTile(r.Segments)
}

// NextTile converts the save's pending tile, nil when the save has none.
func (s *Save) NextTile() (*board.Tile, error) {
	if len(s.Next) == 0 {
		return nil, nil
	}
	return buildTile(s.Next)
}

func buildTile(records []SegmentRecord) (*board.Tile, error) {
	segments := make([]board.Segment, len(records))
	for i, sr := range records {
		segments[i] = board.Segment{
			Terrain:  board.Terrain(sr.Terrain),
			Form:     board.Form(sr.Form),
			Rotation: sr.Rotation,
		}
	}
	return board.NewTile(segments)
}

// RecordOf is the inverse of Record.Tile, used by the generator and by
// session re-export.
func RecordOf(s, t int, tile *board.Tile) Record {
	rec := Record{S: s, T: t}
	if tile == nil || tile.Missing {
		rec.Missing = tile != nil
		return rec
	}
	for _, seg := range tile.Segments {
		rec.Segments = append(rec.Segments, SegmentRecord{
			Terrain:  uint8(seg.Terrain),
			Form:     uint8(seg.Form),
			Rotation: seg.Rotation,
		})
	}
	return rec
}
