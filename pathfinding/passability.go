package pathfinding

import (
	"github.com/zyedidia/generic/mapset"

	"evnav/grid"
)

// Passability answers whether a cell may be walked through.
type Passability struct {
	grid   *grid.Grid
	labels mapset.Set[grid.Coord]
}

// NewPassability builds the walkability rule for a grid. Label cells are
// always walkable.
func NewPassability(g *grid.Grid, labelCells []grid.Coord) *Passability {
	labels := mapset.New[grid.Coord]()
	for _, c := range labelCells {
		labels.Put(c)
	}
	return &Passability{grid: g, labels: labels}
}

// Passable checks a single cell. The rule, in order:
//   - registered label cells are walkable
//   - cells missing from the grid index are open space
//   - numeric cells (plain integers) and filled cells block
//   - everything else is walkable
//
// Value and fill are read from the merge origin.
func (p *Passability) Passable(c grid.Coord) bool {
	if p.labels.Has(c) {
		return true
	}
	cell, ok := p.grid.Resolve(c)
	if !ok {
		return true
	}
	if p.labels.Has(cell.Coord) {
		return true
	}
	if cell.Value.IsPlainInteger() {
		return false
	}
	return !cell.Style.HasFill()
}
