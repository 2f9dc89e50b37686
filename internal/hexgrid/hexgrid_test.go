package hexgrid

import (
	"math"
	"math/rand"
	"testing"
)

func TestCenterRoundTrip(t *testing.T) {
	for _, size := range []float64{1, 2.5, 17} {
		for s := -6; s <= 6; s++ {
			for tt := -6; tt <= 6; tt++ {
				c := GridCoord{S: s, T: tt}
				x, y := GridToWorldCenter(c, size)
				if got := WorldToGrid(x, y, size); got != c {
					t.Fatalf("size %v: WorldToGrid(center of %v) = %v", size, c, got)
				}
			}
		}
	}
}

func TestNeighborOpposite(t *testing.T) {
	coords := []GridCoord{{0, 0}, {1, 0}, {-1, 3}, {-2, -5}, {7, 7}}
	for _, c := range coords {
		for d := Direction(0); d < 6; d++ {
			back := c.Neighbor(d).Neighbor(d.Opposite())
			if back != c {
				t.Errorf("%v.Neighbor(%v).Neighbor(%v) = %v", c, d, d.Opposite(), back)
			}
		}
	}
}

func TestNeighborSpacing(t *testing.T) {
	// Adjacent cell centers sit exactly sqrt(3) circumradii apart.
	const size = 2.0
	for _, c := range []GridCoord{{0, 0}, {1, -1}, {-3, 2}} {
		cx, cy := GridToWorldCenter(c, size)
		for d := Direction(0); d < 6; d++ {
			nx, ny := GridToWorldCenter(c.Neighbor(d), size)
			dist := math.Hypot(nx-cx, ny-cy)
			if math.Abs(dist-Sqrt3*size) > 1e-9 {
				t.Errorf("%v edge %v: center spacing %v, want %v", c, d, dist, Sqrt3*size)
			}
		}
	}
}

// TestNearestCenter checks the conversion against brute-force nearest-center
// search: the reported cell's center is never strictly farther than any
// other cell's.
func TestNearestCenter(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		x := (rng.Float64() - 0.5) * 20
		y := (rng.Float64() - 0.5) * 20
		got := WorldToGrid(x, y, 1)
		gx, gy := GridToWorldCenter(got, 1)
		gotDist := math.Hypot(x-gx, y-gy)

		for s := -9; s <= 9; s++ {
			for tt := -9; tt <= 9; tt++ {
				cx, cy := GridToWorldCenter(GridCoord{s, tt}, 1)
				if math.Hypot(x-cx, y-cy) < gotDist-1e-12 {
					t.Fatalf("point (%v,%v): cell (%d,%d) is closer than %v", x, y, s, tt, got)
				}
			}
		}
	}
}

// TestBoundaryDeterminism verifies that points on hex boundaries resolve to
// exactly one cell, consistently.
func TestBoundaryDeterminism(t *testing.T) {
	// Midpoint between two adjacent centers lies exactly on their shared edge.
	for _, c := range []GridCoord{{0, 0}, {1, 2}, {-2, -1}} {
		cx, cy := GridToWorldCenter(c, 1)
		for d := Direction(0); d < 6; d++ {
			nx, ny := GridToWorldCenter(c.Neighbor(d), 1)
			mx, my := (cx+nx)/2, (cy+ny)/2
			first := WorldToGrid(mx, my, 1)
			for i := 0; i < 10; i++ {
				if got := WorldToGrid(mx, my, 1); got != first {
					t.Fatalf("boundary point (%v,%v) resolved to both %v and %v", mx, my, first, got)
				}
			}
			if first != c && first != c.Neighbor(d) {
				t.Errorf("boundary point (%v,%v) resolved to non-adjacent cell %v", mx, my, first)
			}
		}
	}
}

func TestDirectionString(t *testing.T) {
	if North.String() != "N" || SouthWest.String() != "SW" {
		t.Errorf("direction names wrong: %v %v", North, SouthWest)
	}
}
