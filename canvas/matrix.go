package canvas

import (
	"errors"
	"strings"

	"github.com/mattn/go-runewidth"

	"evnav/grid"
)

// Common errors
var (
	ErrOutOfBounds = errors.New("position out of bounds")
	ErrInvalidSize = errors.New("invalid canvas size")
)

// DefaultCellWidth fits a three digit slot number or one wide character.
const DefaultCellWidth = 3

// Kind classifies what a glyph shows.
type Kind int

const (
	KindEmpty Kind = iota
	KindText
	KindObstacle
	KindSlot
	KindLabel
	KindPath
	KindStop
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindText:
		return "text"
	case KindObstacle:
		return "obstacle"
	case KindSlot:
		return "slot"
	case KindLabel:
		return "label"
	case KindPath:
		return "path"
	case KindStop:
		return "stop"
	default:
		return "unknown"
	}
}

// Glyph is the content drawn for one grid cell.
type Glyph struct {
	Text  string
	Kind  Kind
	Color string // Hall or block color, "#RRGGBB" or empty
}

// MapCanvas is a rows x cols matrix of glyphs. Every glyph is printed in a
// fixed number of terminal columns so wide characters keep the grid aligned.
//
// MapCanvas is not safe for concurrent writes.
type MapCanvas struct {
	cells     [][]Glyph
	rows      int
	cols      int
	cellWidth int
}

// NewMapCanvas creates an empty canvas.
func NewMapCanvas(rows, cols, cellWidth int) (*MapCanvas, error) {
	if rows <= 0 || cols <= 0 || cellWidth <= 0 {
		return nil, ErrInvalidSize
	}
	cells := make([][]Glyph, rows)
	for r := range cells {
		cells[r] = make([]Glyph, cols)
	}
	return &MapCanvas{
		cells:     cells,
		rows:      rows,
		cols:      cols,
		cellWidth: cellWidth,
	}, nil
}

// Size returns the number of rows and columns.
func (c *MapCanvas) Size() (rows, cols int) {
	return c.rows, c.cols
}

// CellWidth returns the printed width of one glyph.
func (c *MapCanvas) CellWidth() int {
	return c.cellWidth
}

// Get returns the glyph at p.
func (c *MapCanvas) Get(p grid.Coord) (Glyph, error) {
	if !c.inBounds(p) {
		return Glyph{}, ErrOutOfBounds
	}
	return c.cells[p.Row][p.Col], nil
}

// Set places a glyph at p.
func (c *MapCanvas) Set(p grid.Coord, g Glyph) error {
	if !c.inBounds(p) {
		return ErrOutOfBounds
	}
	c.cells[p.Row][p.Col] = g
	return nil
}

// Clear resets every glyph.
func (c *MapCanvas) Clear() {
	for r := range c.cells {
		for col := range c.cells[r] {
			c.cells[r][col] = Glyph{}
		}
	}
}

// Cell returns the glyph text fitted to the cell width.
func (c *MapCanvas) Cell(p grid.Coord) string {
	g, err := c.Get(p)
	if err != nil {
		return ""
	}
	return fit(g.Text, c.cellWidth)
}

// String returns the canvas as text, one line per row, with trailing spaces
// removed.
func (c *MapCanvas) String() string {
	var sb strings.Builder
	sb.Grow(c.rows * (c.cols*c.cellWidth + 1))

	for r := 0; r < c.rows; r++ {
		var line strings.Builder
		for col := 0; col < c.cols; col++ {
			line.WriteString(fit(c.cells[r][col].Text, c.cellWidth))
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		if r < c.rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func (c *MapCanvas) inBounds(p grid.Coord) bool {
	return p.Row >= 0 && p.Row < c.rows && p.Col >= 0 && p.Col < c.cols
}

// fit truncates or pads s to exactly width terminal columns.
func fit(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "")
	}
	return runewidth.FillRight(s, width)
}
