// Package pathfinding computes walkable routes over the event grid.
//
// The search is an informed best-first search over the 8-connected cell grid.
// Numeric stall cells and filled cells block movement, block label cells and
// untracked cells are open, and the goal cell is always enterable so a route
// can end on a stall. Diagonal steps need both corner cells to be open.
package pathfinding

import (
	"evnav/grid"
)

// Router finds paths between two cells.
type Router interface {
	FindPath(start, end grid.Coord) Result
}

// Costs defines the step costs of the search.
type Costs struct {
	Orthogonal float64 // Cost of a horizontal or vertical step
	Diagonal   float64 // Cost of a diagonal step
}

// DefaultCosts uses 1.4 for a diagonal step.
func DefaultCosts() Costs {
	return Costs{
		Orthogonal: 1,
		Diagonal:   1.4,
	}
}

// Result is the outcome of one search.
//
// When no path exists the points are the two-point straight line
// [start, end] and Found is false. A genuine two-cell path has Found set.
type Result struct {
	Points []grid.Coord
	Found  bool
	Cost   float64
}

// Len returns the number of points in the result.
func (r Result) Len() int {
	return len(r.Points)
}

// fallback is the direct line returned when the goal is unreachable.
func fallback(start, end grid.Coord) Result {
	return Result{Points: []grid.Coord{start, end}}
}

// offset is one of the eight neighbour steps.
type offset struct {
	dRow, dCol int
}

func (o offset) diagonal() bool {
	return o.dRow != 0 && o.dCol != 0
}

// neighborOffsets lists orthogonal steps before diagonal ones so that equal
// costs resolve toward straight movement.
var neighborOffsets = []offset{
	{-1, 0}, {0, 1}, {1, 0}, {0, -1},
	{-1, 1}, {1, 1}, {1, -1}, {-1, -1},
}
