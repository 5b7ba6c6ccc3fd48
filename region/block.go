package region

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/zyedidia/generic/mapset"

	"evnav/geometry"
	"evnav/grid"
)

// MaxWallGroups is the number of cell groups a wall block may hold.
const MaxWallGroups = 6

// DefaultMaxSlot is the largest value a number cell may carry.
const DefaultMaxSlot = 100

// Shape tells how a block's area is described.
type Shape int

const (
	ShapeRect Shape = iota
	ShapeMultiRange
	ShapeWall
)

// String returns the string representation of a Shape.
func (s Shape) String() string {
	switch s {
	case ShapeRect:
		return "rect"
	case ShapeMultiRange:
		return "multi-range"
	case ShapeWall:
		return "wall"
	default:
		return "unknown"
	}
}

// NumberCell is an addressable slot inside a block.
type NumberCell struct {
	grid.Coord
	Value int `json:"value"`
}

// CellGroup is one part of a wall block: either a rectangle or an explicit
// list of cells.
type CellGroup struct {
	Range *geometry.Rect `json:"range,omitempty"`
	Cells []grid.Coord   `json:"cells,omitempty"`
}

// Coords lists the cells of the group.
func (g CellGroup) Coords() []grid.Coord {
	if g.Range != nil {
		return g.Range.Coords()
	}
	return g.Cells
}

// Empty reports whether the group names no cells.
func (g CellGroup) Empty() bool {
	return g.Range == nil && len(g.Cells) == 0
}

// Block is a named grid area with its enumerated number cells.
type Block struct {
	Name        string          `json:"name"`
	Shape       Shape           `json:"shape"`
	Bounds      geometry.Rect   `json:"bounds"`
	Ranges      []geometry.Rect `json:"ranges,omitempty"`
	Groups      []CellGroup     `json:"cellGroups,omitempty"`
	NumberCells []NumberCell    `json:"numberCells"`
	LabelCells  []grid.Coord    `json:"labelCells,omitempty"`
	Color       string          `json:"color,omitempty"`
}

// IsWall reports whether the block is a wall composite.
func (b Block) IsWall() bool {
	return b.Shape == ShapeWall
}

// Validate checks the invariants required before a block is saved.
func (b Block) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return ErrEmptyName
	}
	if len(b.Groups) > MaxWallGroups {
		return fmt.Errorf("block %q has %d groups: %w", b.Name, len(b.Groups), ErrTooManyGroups)
	}
	for i, g := range b.Groups {
		if g.Empty() {
			return fmt.Errorf("block %q group %d: %w", b.Name, i+1, ErrEmptyGroup)
		}
	}
	if len(b.Ranges) == 0 && len(b.Groups) == 0 {
		return fmt.Errorf("block %q: %w", b.Name, ErrNoGeometry)
	}
	return nil
}

// Recompute rescans the grid for the block's number cells and rebuilds its
// bounding box from its geometry. It must run whenever geometry changes.
func (b *Block) Recompute(g *grid.Grid, maxSlot int) error {
	if len(b.Ranges) == 0 && len(b.Groups) == 0 {
		return fmt.Errorf("block %q: %w", b.Name, ErrNoGeometry)
	}

	seen := mapset.New[grid.Coord]()
	var numbers []NumberCell
	var bounds geometry.Rect
	first := true
	grow := func(r geometry.Rect) {
		if first {
			bounds, first = r, false
			return
		}
		bounds = bounds.Union(r)
	}

	for _, r := range b.Ranges {
		grow(r)
		numbers = append(numbers, scanCells(g, r.Coords(), maxSlot, &seen)...)
	}
	for _, grp := range b.Groups {
		coords := grp.Coords()
		if r, ok := geometry.RectFromPoints(coords...); ok {
			grow(r)
		}
		numbers = append(numbers, scanCells(g, coords, maxSlot, &seen)...)
	}
	for _, c := range b.LabelCells {
		grow(geometry.Rect{Min: c, Max: c})
	}

	sortNumberCells(numbers)
	b.Bounds = bounds
	b.NumberCells = numbers
	return nil
}

// Contains reports whether the cell belongs to any part of the block.
func (b Block) Contains(c grid.Coord) bool {
	for _, r := range b.Ranges {
		if r.Contains(c) {
			return true
		}
	}
	for _, g := range b.Groups {
		if g.Range != nil && g.Range.Contains(c) {
			return true
		}
		for _, gc := range g.Cells {
			if gc == c {
				return true
			}
		}
	}
	for _, lc := range b.LabelCells {
		if lc == c {
			return true
		}
	}
	return false
}

// Find returns the number cell carrying the given slot number.
func (b Block) Find(number int) (NumberCell, bool) {
	for _, n := range b.NumberCells {
		if n.Value == number {
			return n, true
		}
	}
	return NumberCell{}, false
}

// NumberAt returns the number cell at c.
func (b Block) NumberAt(c grid.Coord) (NumberCell, bool) {
	for _, n := range b.NumberCells {
		if n.Coord == c {
			return n, true
		}
	}
	return NumberCell{}, false
}

// ParseSlotNumber extracts a slot number from a cell value. Only integers in
// (0, maxSlot] qualify.
func ParseSlotNumber(v grid.Value, maxSlot int) (int, bool) {
	n, ok := v.Int()
	if !ok || n <= 0 || n > maxSlot {
		return 0, false
	}
	return n, true
}

// IsBlockName is the label heuristic used by auto-detection: one to three
// characters, all katakana, all hiragana, or all Latin letters. Labels
// outside this pattern are not detected and have to be authored by hand.
func IsBlockName(s string) bool {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) == 0 || len(runes) > 3 {
		return false
	}
	for _, table := range []*unicode.RangeTable{unicode.Katakana, unicode.Hiragana} {
		if allIn(runes, func(r rune) bool { return unicode.Is(table, r) }) {
			return true
		}
	}
	return allIn(runes, isLatinLetter)
}

func allIn(runes []rune, pred func(rune) bool) bool {
	for _, r := range runes {
		if !pred(r) {
			return false
		}
	}
	return true
}

func isLatinLetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') ||
		(r >= 'Ａ' && r <= 'Ｚ') || (r >= 'ａ' && r <= 'ｚ')
}

// scanCells collects standalone number cells among coords, skipping any
// coordinate already in seen.
func scanCells(g *grid.Grid, coords []grid.Coord, maxSlot int, seen *mapset.Set[grid.Coord]) []NumberCell {
	var out []NumberCell
	for _, c := range coords {
		if seen.Has(c) {
			continue
		}
		n, ok := slotAt(g, c, maxSlot)
		if !ok {
			continue
		}
		seen.Put(c)
		out = append(out, NumberCell{Coord: c, Value: n})
	}
	return out
}

// slotAt returns the slot number of a standalone cell.
func slotAt(g *grid.Grid, c grid.Coord, maxSlot int) (int, bool) {
	cell, ok := g.Cell(c)
	if !ok || cell.IsMerged() {
		return 0, false
	}
	return ParseSlotNumber(cell.Value, maxSlot)
}

func sortNumberCells(cells []NumberCell) {
	sort.Slice(cells, func(i, j int) bool { return cells[i].Coord.Less(cells[j].Coord) })
}
