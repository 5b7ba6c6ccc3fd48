// Package geometry provides the planar helpers shared by the region and
// routing packages: integer math on grid coordinates, rectangles, polygon
// membership and polyline simplification.
package geometry

import "evnav/grid"

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the minimum of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// ManhattanDistance calculates the Manhattan distance between two cells.
func ManhattanDistance(a, b grid.Coord) int {
	return Abs(b.Row-a.Row) + Abs(b.Col-a.Col)
}

// IsDiagonalStep reports whether a and b are diagonal neighbours.
func IsDiagonalStep(a, b grid.Coord) bool {
	return Abs(b.Row-a.Row) == 1 && Abs(b.Col-a.Col) == 1
}

// cross returns the z component of (b-a) x (p-a).
func cross(a, b, p grid.Coord) int {
	return (b.Col-a.Col)*(p.Row-a.Row) - (b.Row-a.Row)*(p.Col-a.Col)
}

// dot returns (b-a) . (p-a).
func dot(a, b, p grid.Coord) int {
	return (b.Col-a.Col)*(p.Col-a.Col) + (b.Row-a.Row)*(p.Row-a.Row)
}

// OnSegment reports whether p lies on the closed segment a-b.
func OnSegment(p, a, b grid.Coord) bool {
	if cross(a, b, p) != 0 {
		return false
	}
	return p.Row >= Min(a.Row, b.Row) && p.Row <= Max(a.Row, b.Row) &&
		p.Col >= Min(a.Col, b.Col) && p.Col <= Max(a.Col, b.Col)
}
