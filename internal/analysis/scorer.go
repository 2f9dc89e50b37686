package analysis

import (
	"github.com/mfriedel/hexscope/internal/board"
	"github.com/mfriedel/hexscope/internal/hexgrid"
)

// ScoreAt computes the placement desirability of an empty cell: the number
// of its six neighbor edges that present a non-missing, non-empty,
// open-frontier segment. Returns 0 for occupied or missing cells, for
// which the score is undefined.
func ScoreAt(store board.Store, c hexgrid.GridCoord) uint8 {
	if t, ok := store.Get(c); ok && (t.Occupied() || t.Missing) {
		return 0
	}
	var score uint8
	for d := hexgrid.Direction(0); d < 6; d++ {
		neighbor, ok := store.Get(c.Neighbor(d))
		if !ok || !neighbor.Occupied() {
			continue
		}
		if neighbor.TerrainAt(uint8(d.Opposite())).Feature() {
			score++
		}
	}
	return score
}

// scoreFrontier scores every empty or absent cell bordering the region and
// stamps the value onto placeholder tiles.
func scoreFrontier(store board.Store, region map[hexgrid.GridCoord]*board.Tile) map[hexgrid.GridCoord]uint8 {
	scores := make(map[hexgrid.GridCoord]uint8)
	for coord := range region {
		for _, n := range coord.Neighbors() {
			if _, done := scores[n]; done {
				continue
			}
			t, present := store.Get(n)
			if present && !t.Placeholder() {
				continue
			}
			score := ScoreAt(store, n)
			if score == 0 {
				continue
			}
			scores[n] = score
			if present {
				t.Score = score
			}
		}
	}
	return scores
}
