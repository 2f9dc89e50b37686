// Synthetic savegame generation using simplex noise. Edge terrains are
// sampled at the shared edge midpoint between the two cell centers, so
// facing edges always agree and the generated board never contains a
// forbidden pairing. See design doc Section 6.2.
package savegame

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/mfriedel/hexscope/internal/board"
	"github.com/mfriedel/hexscope/internal/hexgrid"
)

// GenConfig holds synthetic board parameters.
type GenConfig struct {
	Tiles int   // number of occupied tiles to place
	Seed  int64 // random seed (0 = random)
}

// DefaultGenConfig returns a board big enough to exercise every store and
// grouping path.
func DefaultGenConfig() GenConfig {
	return GenConfig{Tiles: 200, Seed: 0}
}

// Generate produces a save by random-walking outward from the origin and
// deriving each tile's segments from the noise field.
func Generate(cfg GenConfig) *Save {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(seed))
	noise := opensimplex.NewNormalized(seed)

	placed := map[hexgrid.GridCoord]bool{}
	order := []hexgrid.GridCoord{{}}
	placed[hexgrid.GridCoord{}] = true

	for len(order) < cfg.Tiles {
		from := order[rng.Intn(len(order))]
		next := from.Neighbor(hexgrid.Direction(rng.Intn(6)))
		if placed[next] {
			continue
		}
		placed[next] = true
		order = append(order, next)
	}

	save := &Save{Version: FormatVersion}
	for _, c := range order {
		save.Tiles = append(save.Tiles, Record{
			S:        c.S,
			T:        c.T,
			Segments: segmentsFor(noise, c),
		})
	}

	// The pending tile is derived from an unfilled frontier cell, so it is
	// guaranteed to fit somewhere.
	for _, c := range order {
		done := false
		for _, n := range c.Neighbors() {
			if !placed[n] {
				save.Next = segmentsFor(noise, n)
				done = true
				break
			}
		}
		if done {
			break
		}
	}
	return save
}

// segmentsFor derives a cell's segments from the six edge terrains.
func segmentsFor(noise opensimplex.Noise, c hexgrid.GridCoord) []SegmentRecord {
	var edges [6]board.Terrain
	for d := hexgrid.Direction(0); d < 6; d++ {
		edges[d] = edgeTerrain(noise, c, d)
	}
	return runsToSegments(edges)
}

// edgeTerrain buckets the noise value at the midpoint of the edge shared
// between c and its neighbor in direction d. Rails and stations never
// appear: they would need hand-placed pairings the field cannot promise.
func edgeTerrain(noise opensimplex.Noise, c hexgrid.GridCoord, d hexgrid.Direction) board.Terrain {
	cx, cy := hexgrid.GridToWorldCenter(c, 1)
	nx, ny := hexgrid.GridToWorldCenter(c.Neighbor(d), 1)
	v := noise.Eval2((cx+nx)/2*0.35, (cy+ny)/2*0.35)

	switch {
	case v < 0.15:
		return board.TerrainNone
	case v < 0.40:
		return board.TerrainForest
	case v < 0.60:
		return board.TerrainWheat
	case v < 0.78:
		return board.TerrainHouse
	case v < 0.90:
		return board.TerrainLake
	default:
		return board.TerrainRiver
	}
}

// sizeForms maps a contiguous run length to its form.
var sizeForms = [7]board.Form{
	0, board.FormSize1, board.FormSize2, board.FormSize3,
	board.FormSize4, board.FormSize5, board.FormSize6,
}

// runsToSegments converts the circular edge terrain sequence into segment
// records, one per maximal run of equal feature terrain.
func runsToSegments(edges [6]board.Terrain) []SegmentRecord {
	uniform := true
	for d := 1; d < 6; d++ {
		if edges[d] != edges[0] {
			uniform = false
			break
		}
	}
	if uniform {
		if !edges[0].Feature() {
			return nil // placeholder cell
		}
		return []SegmentRecord{{
			Terrain: uint8(edges[0]),
			Form:    uint8(board.FormSize6),
		}}
	}

	// Rotate the start to a run boundary so no run wraps around.
	start := 0
	for edges[(start+5)%6] == edges[start] {
		start++
	}

	var out []SegmentRecord
	for i := 0; i < 6; {
		d := (start + i) % 6
		length := 1
		for i+length < 6 && edges[(start+i+length)%6] == edges[d] {
			length++
		}
		if edges[d].Feature() {
			out = append(out, SegmentRecord{
				Terrain:  uint8(edges[d]),
				Form:     uint8(sizeForms[length]),
				Rotation: uint8(d),
			})
		}
		i += length
	}
	return out
}
