package region

import (
	"strings"

	"github.com/zyedidia/generic/mapset"

	"evnav/geometry"
	"evnav/grid"
)

// DetectOptions tunes block auto-detection.
type DetectOptions struct {
	MinMergeCells int      // Smallest merge that can hold a block label (default: 4)
	SearchRadius  int      // Cells scanned outward from each merge edge (default: 10)
	MaxSlot       int      // Largest accepted slot number (default: 100)
	Palette       []string // Colors assigned in detection order
}

// DefaultDetectOptions returns the detection settings used for imported maps.
func DefaultDetectOptions() DetectOptions {
	return DetectOptions{
		MinMergeCells: 4,
		SearchRadius:  10,
		MaxSlot:       DefaultMaxSlot,
		Palette:       DefaultPalette,
	}
}

// direction is one of the four scan directions around a label merge.
type direction struct {
	dRow, dCol int
}

var scanDirections = []direction{
	{-1, 0}, // up
	{0, 1},  // right
	{1, 0},  // down
	{0, -1}, // left
}

// lanes returns, for a direction, the edge cells of the merge that the scan
// starts from.
func (d direction) lanes(m grid.Merge) []grid.Coord {
	var out []grid.Coord
	switch {
	case d.dRow < 0:
		for c := m.Start.Col; c <= m.End.Col; c++ {
			out = append(out, grid.Coord{Row: m.Start.Row, Col: c})
		}
	case d.dRow > 0:
		for c := m.Start.Col; c <= m.End.Col; c++ {
			out = append(out, grid.Coord{Row: m.End.Row, Col: c})
		}
	case d.dCol < 0:
		for r := m.Start.Row; r <= m.End.Row; r++ {
			out = append(out, grid.Coord{Row: r, Col: m.Start.Col})
		}
	default:
		for r := m.Start.Row; r <= m.End.Row; r++ {
			out = append(out, grid.Coord{Row: r, Col: m.End.Col})
		}
	}
	return out
}

// DetectBlocks finds blocks from merged label cells.
//
// A merge qualifies when it spans at least MinMergeCells cells and its value
// passes IsBlockName. From every edge cell of the merge the scan walks
// outward, up to SearchRadius cells, collecting the run of standalone number
// cells that starts right at the edge; the first non-number ends the lane.
// Merges sharing a label are unioned into one multi-range block. Blocks are
// returned in detection order and colored from the palette in that order.
func DetectBlocks(g *grid.Grid, opts DetectOptions) []Block {
	if opts.MaxSlot <= 0 {
		opts.MaxSlot = DefaultMaxSlot
	}

	var blocks []Block
	index := make(map[string]int)
	seen := make(map[string]*mapset.Set[grid.Coord])

	for _, m := range g.Merges() {
		if m.Size() < opts.MinMergeCells || m.Size() < 2 {
			continue
		}
		origin, ok := g.Cell(m.Start)
		if !ok {
			continue
		}
		name := strings.TrimSpace(origin.Value.String())
		if !IsBlockName(name) {
			continue
		}

		i, exists := index[name]
		if !exists {
			i = len(blocks)
			index[name] = i
			set := mapset.New[grid.Coord]()
			seen[name] = &set
			blocks = append(blocks, Block{
				Name:  name,
				Shape: ShapeRect,
				Color: PaletteColor(opts.Palette, i),
			})
		}
		b := &blocks[i]

		numbers := scanAround(g, m, opts, seen[name])
		area := geometry.Rect{Min: m.Start, Max: m.End}
		for _, n := range numbers {
			area = area.Extend(n.Coord)
		}

		if exists {
			b.Shape = ShapeMultiRange
			b.Bounds = b.Bounds.Union(area)
		} else {
			b.Bounds = area
		}
		b.Ranges = append(b.Ranges, area)
		b.LabelCells = append(b.LabelCells, m.Coords()...)
		b.NumberCells = append(b.NumberCells, numbers...)
	}

	for i := range blocks {
		sortNumberCells(blocks[i].NumberCells)
	}
	return blocks
}

// scanAround walks the four directions from the merge edges.
func scanAround(g *grid.Grid, m grid.Merge, opts DetectOptions, seen *mapset.Set[grid.Coord]) []NumberCell {
	var out []NumberCell
	for _, d := range scanDirections {
		for _, start := range d.lanes(m) {
			for step := 1; step <= opts.SearchRadius; step++ {
				c := grid.Coord{Row: start.Row + d.dRow*step, Col: start.Col + d.dCol*step}
				if !g.InBounds(c) {
					break
				}
				n, ok := slotAt(g, c, opts.MaxSlot)
				if !ok {
					break
				}
				if seen.Has(c) {
					continue
				}
				seen.Put(c)
				out = append(out, NumberCell{Coord: c, Value: n})
			}
		}
	}
	return out
}
