package canvas

import (
	"strconv"

	"evnav/grid"
	"evnav/region"
)

// Glyph texts for cells that carry no value of their own.
const (
	ObstacleText = "##"
	PathText     = "+"
)

// Render draws a scene: grid values first, then block labels, then the
// walked paths and finally the numbered stops on top.
func Render(s Scene, cellWidth int) (*MapCanvas, error) {
	if s.Grid == nil {
		return nil, ErrInvalidSize
	}
	c, err := NewMapCanvas(s.Grid.Rows(), s.Grid.Cols(), cellWidth)
	if err != nil {
		return nil, err
	}

	classifier := region.NewClassifier(s.Halls)
	for r := 0; r < s.Grid.Rows(); r++ {
		for col := 0; col < s.Grid.Cols(); col++ {
			p := grid.Coord{Row: r, Col: col}
			g := cellGlyph(s.Grid, p)
			if h, ok := classifier.HallAt(p); ok {
				g.Color = h.Color
			}
			c.Set(p, g)
		}
	}

	for _, b := range s.Blocks {
		for _, p := range b.LabelCells {
			text := b.Name
			if m, ok := s.Grid.MergeAt(p); ok && m.Start != p {
				text = ""
			}
			c.Set(p, Glyph{Text: text, Kind: KindLabel, Color: b.Color})
		}
		for _, n := range b.NumberCells {
			if g, err := c.Get(n.Coord); err == nil {
				g.Color = b.Color
				c.Set(n.Coord, g)
			}
		}
	}

	for _, seg := range s.Segments {
		if !seg.Found {
			continue
		}
		for _, p := range seg.Path {
			g, err := c.Get(p)
			if err != nil || g.Kind == KindSlot || g.Kind == KindLabel {
				continue
			}
			c.Set(p, Glyph{Text: PathText, Kind: KindPath, Color: g.Color})
		}
	}

	for i, stop := range s.Stops {
		c.Set(stop.At, Glyph{Text: StopMark(i), Kind: KindStop})
	}
	return c, nil
}

// StopMark is the text shown for the i-th stop: 1-9, then a-z, then "*".
func StopMark(i int) string {
	switch {
	case i < 9:
		return strconv.Itoa(i + 1)
	case i < 9+26:
		return string(rune('a' + i - 9))
	default:
		return "*"
	}
}

// cellGlyph describes one grid cell on its own, resolving merges to their
// origin. Members of a merge repeat nothing so labels are drawn once.
func cellGlyph(g *grid.Grid, p grid.Coord) Glyph {
	raw, ok := g.Cell(p)
	if !ok {
		return Glyph{}
	}
	cell, ok := g.Resolve(p)
	if !ok {
		return Glyph{}
	}
	if cell.Value.IsPlainInteger() {
		if raw.Role == grid.MergeMember {
			return Glyph{Kind: KindObstacle}
		}
		return Glyph{Text: cell.Value.String(), Kind: KindSlot}
	}
	if cell.Style.HasFill() {
		return Glyph{Text: ObstacleText, Kind: KindObstacle, Color: cell.Style.Fill}
	}
	if cell.Value.IsEmpty() || raw.Role == grid.MergeMember {
		return Glyph{}
	}
	return Glyph{Text: cell.Value.String(), Kind: KindText}
}
