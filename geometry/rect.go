package geometry

import "evnav/grid"

// Rect is an inclusive cell rectangle.
type Rect struct {
	Min grid.Coord `json:"min"`
	Max grid.Coord `json:"max"`
}

// RectFromPoints returns the smallest rectangle holding every point.
// It returns false when no points are given.
func RectFromPoints(points ...grid.Coord) (Rect, bool) {
	if len(points) == 0 {
		return Rect{}, false
	}
	r := Rect{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r = r.Extend(p)
	}
	return r, true
}

// Extend grows the rectangle to include p.
func (r Rect) Extend(p grid.Coord) Rect {
	return Rect{
		Min: grid.Coord{Row: Min(r.Min.Row, p.Row), Col: Min(r.Min.Col, p.Col)},
		Max: grid.Coord{Row: Max(r.Max.Row, p.Row), Col: Max(r.Max.Col, p.Col)},
	}
}

// Union returns the bounding box of both rectangles.
func (r Rect) Union(o Rect) Rect {
	return r.Extend(o.Min).Extend(o.Max)
}

// Contains checks if p lies inside the rectangle, edges included.
func (r Rect) Contains(p grid.Coord) bool {
	return p.Row >= r.Min.Row && p.Row <= r.Max.Row &&
		p.Col >= r.Min.Col && p.Col <= r.Max.Col
}

// Rows returns the number of rows covered.
func (r Rect) Rows() int { return r.Max.Row - r.Min.Row + 1 }

// Cols returns the number of columns covered.
func (r Rect) Cols() int { return r.Max.Col - r.Min.Col + 1 }

// Coords lists every cell of the rectangle in row-major order.
func (r Rect) Coords() []grid.Coord {
	out := make([]grid.Coord, 0, r.Rows()*r.Cols())
	for row := r.Min.Row; row <= r.Max.Row; row++ {
		for col := r.Min.Col; col <= r.Max.Col; col++ {
			out = append(out, grid.Coord{Row: row, Col: col})
		}
	}
	return out
}

// Corners returns the four corners clockwise from the top-left.
func (r Rect) Corners() []grid.Coord {
	return []grid.Coord{
		r.Min,
		{Row: r.Min.Row, Col: r.Max.Col},
		r.Max,
		{Row: r.Max.Row, Col: r.Min.Col},
	}
}
