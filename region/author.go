package region

import (
	"fmt"

	"evnav/geometry"
	"evnav/grid"
)

// FromCorners builds a rectangular block from four picked points. The
// rectangle spans the minimum and maximum row and column of the points and
// is scanned in full for number cells.
func FromCorners(g *grid.Grid, name string, corners []grid.Coord, maxSlot int) (Block, error) {
	r, err := rectFromCorners(corners)
	if err != nil {
		return Block{}, fmt.Errorf("block %q: %w", name, err)
	}
	b := Block{Name: name, Shape: ShapeRect, Ranges: []geometry.Rect{r}}
	if err := b.Validate(); err != nil {
		return Block{}, err
	}
	if err := b.Recompute(g, maxSlot); err != nil {
		return Block{}, err
	}
	return b, nil
}

// FromRanges builds a multi-range block, one rectangle per set of four
// picked points. Number cells are the union over all rectangles.
func FromRanges(g *grid.Grid, name string, ranges [][]grid.Coord, maxSlot int) (Block, error) {
	b := Block{Name: name, Shape: ShapeMultiRange}
	for i, corners := range ranges {
		r, err := rectFromCorners(corners)
		if err != nil {
			return Block{}, fmt.Errorf("block %q range %d: %w", name, i+1, err)
		}
		b.Ranges = append(b.Ranges, r)
	}
	if len(b.Ranges) == 1 {
		b.Shape = ShapeRect
	}
	if err := b.Validate(); err != nil {
		return Block{}, err
	}
	if err := b.Recompute(g, maxSlot); err != nil {
		return Block{}, err
	}
	return b, nil
}

// FromWallGroups builds a wall block from up to MaxWallGroups cell groups.
// Each group contributes the number cells found among its own cells.
func FromWallGroups(g *grid.Grid, name string, groups []CellGroup, maxSlot int) (Block, error) {
	b := Block{Name: name, Shape: ShapeWall, Groups: groups}
	if err := b.Validate(); err != nil {
		return Block{}, err
	}
	if err := b.Recompute(g, maxSlot); err != nil {
		return Block{}, err
	}
	return b, nil
}

// RangeGroup returns a wall group covering the rectangle spanned by four
// picked points.
func RangeGroup(corners []grid.Coord) (CellGroup, error) {
	r, err := rectFromCorners(corners)
	if err != nil {
		return CellGroup{}, err
	}
	return CellGroup{Range: &r}, nil
}

func rectFromCorners(corners []grid.Coord) (geometry.Rect, error) {
	if len(corners) != 4 {
		return geometry.Rect{}, fmt.Errorf("got %d: %w", len(corners), ErrCornerCount)
	}
	r, _ := geometry.RectFromPoints(corners...)
	return r, nil
}
