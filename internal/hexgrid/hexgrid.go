// Package hexgrid provides the coordinate system for an unbounded hex board.
// Tiles are addressed by doubled-offset coordinates (s, t): columns step
// 1.5× the circumradius in world x, rows step √3× in world y, and odd
// columns sit half a row lower than even ones.
// See design doc Section 4.1.
package hexgrid

import "math"

// Sqrt3 is the vertical row spacing in units of the tile circumradius.
const Sqrt3 = 1.7320508075688772

// GridCoord addresses a single hex cell.
type GridCoord struct {
	S int `json:"s"`
	T int `json:"t"`
}

// Direction indexes the six tile edges clockwise from north.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	SouthEast
	South
	SouthWest
	NorthWest
)

var directionNames = [6]string{"N", "NE", "SE", "S", "SW", "NW"}

func (d Direction) String() string {
	return directionNames[d%6]
}

// Opposite returns the direction facing back across the shared edge.
func (d Direction) Opposite() Direction {
	return (d + 3) % 6
}

// odd reports whether the column index is odd, correct for negatives.
func odd(s int) bool {
	return s&1 != 0
}

// Neighbor returns the adjacent coordinate across edge d.
func (c GridCoord) Neighbor(d Direction) GridCoord {
	switch d {
	case North:
		return GridCoord{c.S, c.T + 1}
	case South:
		return GridCoord{c.S, c.T - 1}
	case NorthEast:
		if odd(c.S) {
			return GridCoord{c.S + 1, c.T}
		}
		return GridCoord{c.S + 1, c.T + 1}
	case SouthEast:
		if odd(c.S) {
			return GridCoord{c.S + 1, c.T - 1}
		}
		return GridCoord{c.S + 1, c.T}
	case SouthWest:
		if odd(c.S) {
			return GridCoord{c.S - 1, c.T - 1}
		}
		return GridCoord{c.S - 1, c.T}
	default: // NorthWest
		if odd(c.S) {
			return GridCoord{c.S - 1, c.T}
		}
		return GridCoord{c.S - 1, c.T + 1}
	}
}

// Neighbors returns all six adjacent coordinates in direction order.
func (c GridCoord) Neighbors() [6]GridCoord {
	var result [6]GridCoord
	for d := Direction(0); d < 6; d++ {
		result[d] = c.Neighbor(d)
	}
	return result
}

// GridToWorldCenter returns the world position of the cell center.
// size is the tile circumradius in world units.
func GridToWorldCenter(c GridCoord, size float64) (x, y float64) {
	x = 1.5 * size * float64(c.S)
	y = Sqrt3 * size * float64(c.T)
	if odd(c.S) {
		y -= Sqrt3 / 2 * size
	}
	return x, y
}

// WorldToGrid maps a world position to the cell containing it.
// Total over all inputs: points exactly on a hex edge resolve
// deterministically to exactly one of the adjacent cells.
//
// Naive rounding in the skewed (s, t) axes misclassifies points near the
// slanted edges of the hexagon, so the estimate is corrected by walking to
// whichever neighbor center is strictly nearer. The estimate center is
// always within 1.07× the circumradius of the input, and second-ring
// centers are at least 3× away, so a single pass over the six neighbors
// reaches the true cell.
func WorldToGrid(x, y float64, size float64) GridCoord {
	s := int(math.Round(x / (1.5 * size)))
	ty := y / (Sqrt3 * size)
	if odd(s) {
		ty += 0.5
	}
	estimate := GridCoord{s, int(math.Round(ty))}
	best := estimate
	bestDist := centerDistSq(best, x, y, size)
	for _, candidate := range estimate.Neighbors() {
		if dist := centerDistSq(candidate, x, y, size); dist < bestDist {
			best, bestDist = candidate, dist
		}
	}
	return best
}

func centerDistSq(c GridCoord, x, y float64, size float64) float64 {
	cx, cy := GridToWorldCenter(c, size)
	dx, dy := x-cx, y-cy
	return dx*dx + dy*dy
}
