// Package grid holds the spreadsheet-derived cell map that every other
// package reads. A Grid is built once per layout load and is read-only
// afterwards.
package grid

import (
	"errors"
	"fmt"
	"sort"
)

// Common errors
var (
	ErrInvalidSize   = errors.New("invalid grid size")
	ErrOutOfBounds   = errors.New("position out of bounds")
	ErrDuplicateCell = errors.New("duplicate cell")
	ErrInvalidMerge  = errors.New("invalid merge range")
	ErrOverlapMerge  = errors.New("overlapping merge ranges")
	ErrInvalidColor  = errors.New("invalid color")
	ErrInvalidBorder = errors.New("invalid border style")
)

// Coord identifies a cell by zero-based row and column.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String returns "(row,col)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Less orders coordinates row-major.
func (c Coord) Less(o Coord) bool {
	if c.Row != o.Row {
		return c.Row < o.Row
	}
	return c.Col < o.Col
}

// MergeRole tells how a cell takes part in a merged range.
type MergeRole int

const (
	Standalone MergeRole = iota
	MergeOrigin
	MergeMember
)

// Cell is one spreadsheet cell.
type Cell struct {
	Coord
	Value Value
	Style Style

	Role   MergeRole
	Origin Coord // top-left cell of the merge when Role != Standalone
}

// IsMerged reports whether the cell belongs to a merged range.
func (c *Cell) IsMerged() bool {
	return c.Role != Standalone
}

// Merge is an inclusive rectangular merged range.
type Merge struct {
	Start Coord `json:"start"`
	End   Coord `json:"end"`
}

// Rows returns the number of rows spanned.
func (m Merge) Rows() int { return m.End.Row - m.Start.Row + 1 }

// Cols returns the number of columns spanned.
func (m Merge) Cols() int { return m.End.Col - m.Start.Col + 1 }

// Size returns the number of cells spanned.
func (m Merge) Size() int { return m.Rows() * m.Cols() }

// Contains checks if a coordinate lies inside the range.
func (m Merge) Contains(c Coord) bool {
	return c.Row >= m.Start.Row && c.Row <= m.End.Row &&
		c.Col >= m.Start.Col && c.Col <= m.End.Col
}

// Coords lists every coordinate of the range in row-major order.
func (m Merge) Coords() []Coord {
	out := make([]Coord, 0, m.Size())
	for r := m.Start.Row; r <= m.End.Row; r++ {
		for c := m.Start.Col; c <= m.End.Col; c++ {
			out = append(out, Coord{r, c})
		}
	}
	return out
}

// Grid is the immutable cell index for one sheet.
//
// Cells absent from the index are open space. Lookups through Resolve always
// answer with the merge origin so callers see one effective value and style
// per merged range.
type Grid struct {
	rows, cols int
	cells      map[Coord]*Cell
	order      []Coord
	merges     []Merge
	mergeAt    map[Coord]int
}

// New builds a grid of rows x cols from the given cells and merges.
// Merge members that have no cell of their own get one, so the merge role
// of every covered coordinate is answerable.
func New(rows, cols int, cells []Cell, merges []Merge) (*Grid, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%dx%d: %w", rows, cols, ErrInvalidSize)
	}
	g := &Grid{
		rows:    rows,
		cols:    cols,
		cells:   make(map[Coord]*Cell, len(cells)),
		mergeAt: make(map[Coord]int),
	}

	for i := range cells {
		c := cells[i]
		if !g.InBounds(c.Coord) {
			return nil, fmt.Errorf("cell %v: %w", c.Coord, ErrOutOfBounds)
		}
		if _, dup := g.cells[c.Coord]; dup {
			return nil, fmt.Errorf("cell %v: %w", c.Coord, ErrDuplicateCell)
		}
		c.Role = Standalone
		c.Origin = Coord{}
		g.cells[c.Coord] = &c
	}

	for i, m := range merges {
		if m.End.Row < m.Start.Row || m.End.Col < m.Start.Col {
			return nil, fmt.Errorf("merge %v-%v: %w", m.Start, m.End, ErrInvalidMerge)
		}
		if !g.InBounds(m.Start) || !g.InBounds(m.End) {
			return nil, fmt.Errorf("merge %v-%v: %w", m.Start, m.End, ErrOutOfBounds)
		}
		for _, c := range m.Coords() {
			if _, taken := g.mergeAt[c]; taken {
				return nil, fmt.Errorf("merge %v-%v at %v: %w", m.Start, m.End, c, ErrOverlapMerge)
			}
			g.mergeAt[c] = i
		}
		g.merges = append(g.merges, m)
		if m.Size() == 1 {
			continue
		}
		for _, c := range m.Coords() {
			cell, ok := g.cells[c]
			if !ok {
				cell = &Cell{Coord: c}
				g.cells[c] = cell
			}
			cell.Origin = m.Start
			if c == m.Start {
				cell.Role = MergeOrigin
			} else {
				cell.Role = MergeMember
			}
		}
	}

	g.order = make([]Coord, 0, len(g.cells))
	for c := range g.cells {
		g.order = append(g.order, c)
	}
	sort.Slice(g.order, func(i, j int) bool { return g.order[i].Less(g.order[j]) })
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// InBounds checks if a coordinate lies inside the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// Cell returns the raw cell at c, without merge resolution.
func (g *Grid) Cell(c Coord) (*Cell, bool) {
	cell, ok := g.cells[c]
	return cell, ok
}

// Resolve returns the cell whose value and style apply at c: the merge
// origin for merged cells, the cell itself otherwise.
func (g *Grid) Resolve(c Coord) (*Cell, bool) {
	cell, ok := g.cells[c]
	if !ok {
		return nil, false
	}
	if cell.Role == MergeMember {
		origin, ok := g.cells[cell.Origin]
		return origin, ok
	}
	return cell, true
}

// Merges returns the merged ranges in import order.
func (g *Grid) Merges() []Merge {
	return g.merges
}

// MergeAt returns the merge covering c, if any. Single-cell merges count.
func (g *Grid) MergeAt(c Coord) (Merge, bool) {
	i, ok := g.mergeAt[c]
	if !ok {
		return Merge{}, false
	}
	return g.merges[i], true
}

// Each calls fn for every tracked cell in row-major order.
func (g *Grid) Each(fn func(*Cell)) {
	for _, c := range g.order {
		fn(g.cells[c])
	}
}

// Len returns the number of tracked cells.
func (g *Grid) Len() int {
	return len(g.cells)
}
