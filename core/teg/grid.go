package teg

import "gonum.org/v1/gonum/floats"

// DesignPoint is one candidate of the design-space search.
type DesignPoint struct {
	PairCount int
	LegLength float64 // m
	LegArea   float64 // m²
}

// Grid enumerates the cartesian product of its axes in a fixed order:
// pair count outermost, leg area innermost.
type Grid struct {
	Pairs      []int
	LegLengths []float64
	LegAreas   []float64
	next       int
}

// DefaultGrid is the search space used by OptimizeConfiguration: five pair
// counts, leg lengths 1–5 mm and leg areas 1–5 mm².
func DefaultGrid() *Grid {
	return &Grid{
		Pairs:      []int{50, 100, 150, 200, 250},
		LegLengths: floats.Span(make([]float64, 5), 0.001, 0.005),
		LegAreas:   floats.Span(make([]float64, 5), 1e-6, 5e-6),
	}
}

// Len is the number of points in the grid.
func (g *Grid) Len() int { return len(g.Pairs) * len(g.LegLengths) * len(g.LegAreas) }

// Next returns the next point, or false once the grid is exhausted.
func (g *Grid) Next() (DesignPoint, bool) {
	if g.next >= g.Len() {
		return DesignPoint{}, false
	}
	i := g.next
	g.next++
	nA, nL := len(g.LegAreas), len(g.LegLengths)
	return DesignPoint{
		PairCount: g.Pairs[i/(nA*nL)],
		LegLength: g.LegLengths[(i/nA)%nL],
		LegArea:   g.LegAreas[i%nA],
	}, true
}

// Reset rewinds the iterator.
func (g *Grid) Reset() { g.next = 0 }
