// Package board provides the sparse unbounded tile store, the per-tile
// segment model, and the packed renderer-facing encoding.
// See design doc Sections 4.2 and 4.3.
package board

// Terrain classifies the feature a segment carries. TerrainMissing is a
// tile-level sentinel: a cell known to be absent from the board, distinct
// from an empty (placeholder) cell.
type Terrain uint8

const (
	TerrainMissing Terrain = iota // tile absent from the board
	TerrainNone                   // empty segment slot / placeholder cell
	TerrainHouse
	TerrainForest
	TerrainWheat
	TerrainRail
	TerrainRiver
	TerrainLake
	TerrainRailStation
	TerrainLakeStation

	terrainEnd
)

var terrainNames = [terrainEnd]string{
	"missing", "none", "house", "forest", "wheat",
	"rail", "river", "lake", "rail_station", "lake_station",
}

func (t Terrain) String() string {
	if t >= terrainEnd {
		return "invalid"
	}
	return terrainNames[t]
}

// Valid reports whether the value is within the enumerated set.
// Values outside it are rejected at decode time.
func (t Terrain) Valid() bool {
	return t < terrainEnd
}

// Feature reports whether the terrain is an actual feature, as opposed to
// the missing and empty sentinels.
func (t Terrain) Feature() bool {
	return t > TerrainNone && t < terrainEnd
}

// Compatible reports whether two facing segments of these terrains belong
// to the same group. Identical feature terrains always join; the station
// terrains additionally act as join points: a rail station joins rail, a
// lake station joins lake and river.
func Compatible(a, b Terrain) bool {
	if !a.Feature() || !b.Feature() {
		return false
	}
	if a == b {
		return true
	}
	if b == TerrainRailStation || b == TerrainLakeStation {
		a, b = b, a
	}
	switch a {
	case TerrainRailStation:
		return b == TerrainRail
	case TerrainLakeStation:
		return b == TerrainLake || b == TerrainRiver
	}
	return false
}

// Connects reports whether terrain a may legally sit next to terrain b on
// facing edges, and whether the pairing counts as a match. The first return
// is false for pairings the game forbids outright (rail or river against
// anything but their own family).
func Connects(a, b Terrain) (ok, matches bool) {
	if a == TerrainMissing || b == TerrainMissing {
		return true, false
	}
	if b == TerrainRail || b == TerrainRiver {
		a, b = b, a
	}
	switch a {
	case TerrainRail:
		ok := b == TerrainRail || b == TerrainRailStation
		return ok, ok
	case TerrainRiver:
		ok := b == TerrainRiver || b == TerrainLake || b == TerrainLakeStation
		return ok, ok
	}
	if b == TerrainNone {
		a, b = b, a
	}
	if a == TerrainNone {
		// Lakes and stations tolerate an empty edge as a full match;
		// everything else merely tolerates it.
		ok := b == TerrainLake || b == TerrainRailStation || b == TerrainLakeStation
		return true, ok
	}
	return true, a == b
}
