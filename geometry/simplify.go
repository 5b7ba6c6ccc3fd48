package geometry

import (
	"github.com/fzipp/geom"

	"evnav/grid"
)

// Simplify reduces a polyline with the Douglas-Peucker rule: the point
// farthest from the chord is kept when it lies more than tolerance away,
// and both halves are simplified in turn. Paths of two points or fewer are
// returned unchanged. The input slice is never modified.
func Simplify(path []grid.Coord, tolerance float64) []grid.Coord {
	if len(path) <= 2 {
		out := make([]grid.Coord, len(path))
		copy(out, path)
		return out
	}

	first, last := path[0], path[len(path)-1]
	index, maxDist := 0, 0.0
	for i := 1; i < len(path)-1; i++ {
		if d := PerpendicularDistance(path[i], first, last); d > maxDist {
			index, maxDist = i, d
		}
	}

	if index > 0 && maxDist > tolerance {
		left := Simplify(path[:index+1], tolerance)
		right := Simplify(path[index:], tolerance)
		return append(left[:len(left)-1], right...)
	}
	return []grid.Coord{first, last}
}

// PerpendicularDistance is the distance from p to the closed segment a-b.
// A zero-length segment degrades to the distance between p and a.
func PerpendicularDistance(p, a, b grid.Coord) float64 {
	ab := vec(b).Sub(vec(a))
	lengthSq := dot(a, b, b)
	if lengthSq == 0 {
		return float64(vec(p).Sub(vec(a)).Len())
	}

	// Clamp the projection onto the segment. Integer products keep
	// collinear points at exactly zero.
	t := dot(a, b, p)
	switch {
	case t <= 0:
		return float64(vec(p).Sub(vec(a)).Len())
	case t >= lengthSq:
		return float64(vec(p).Sub(vec(b)).Len())
	}
	return float64(Abs(cross(a, b, p))) / float64(ab.Len())
}

// vec maps a cell to a plane vector with X along columns and Y along rows.
func vec(c grid.Coord) geom.Vec2 {
	return geom.Vec2{X: float32(c.Col), Y: float32(c.Row)}
}
