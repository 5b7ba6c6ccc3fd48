package geometry

import "evnav/grid"

// PointInPolygon tests p against a polygon given by its vertices in grid
// coordinates, using even-odd ray casting along the row axis.
//
// Points on the boundary, vertices included, count as inside. Fewer than
// three vertices never contain anything.
func PointInPolygon(p grid.Coord, vertices []grid.Coord) bool {
	n := len(vertices)
	if n < 3 {
		return false
	}

	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		if vertices[i] == p || OnSegment(p, vertices[j], vertices[i]) {
			return true
		}
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := vertices[i], vertices[j]
		if (vi.Col > p.Col) != (vj.Col > p.Col) {
			x := float64(vj.Row-vi.Row)*float64(p.Col-vi.Col)/float64(vj.Col-vi.Col) + float64(vi.Row)
			if float64(p.Row) < x {
				inside = !inside
			}
		}
	}
	return inside
}
