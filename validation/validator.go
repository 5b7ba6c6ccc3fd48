package validation

import (
	"fmt"

	"evnav/grid"
	"evnav/item"
	"evnav/region"
)

// LayoutValidator checks that halls, blocks and items agree with the grid
// they were authored on.
type LayoutValidator struct {
	// Track validation errors
	errors []ValidationError
	// Options
	maxSlot    int  // Largest valid slot number
	strictMode bool // Also report suspicious but usable definitions
}

// ValidationError represents a validation error with location information.
type ValidationError struct {
	Row, Col int
	Subject  string // Hall, block or item the problem belongs to
	Context  string
	Message  string
}

// NewLayoutValidator creates a new validator with default settings.
func NewLayoutValidator() *LayoutValidator {
	return &LayoutValidator{
		maxSlot:    region.DefaultMaxSlot,
		strictMode: false,
	}
}

// SetStrictMode enables or disables strict validation.
func (v *LayoutValidator) SetStrictMode(strict bool) {
	v.strictMode = strict
}

// SetMaxSlot changes the largest accepted slot number.
func (v *LayoutValidator) SetMaxSlot(max int) {
	if max > 0 {
		v.maxSlot = max
	}
}

// Validate checks a whole layout and returns every problem found.
func (v *LayoutValidator) Validate(g *grid.Grid, halls []region.Hall, blocks []region.Block) []ValidationError {
	v.errors = nil

	seenHalls := make(map[string]bool)
	for _, h := range halls {
		if seenHalls[h.ID] {
			v.addError(0, 0, "hall "+h.ID, "id", "Duplicate hall id")
		}
		seenHalls[h.ID] = true
		v.checkHall(g, h)
	}

	seenBlocks := make(map[string]bool)
	for _, b := range blocks {
		if seenBlocks[b.Name] {
			v.addError(b.Bounds.Min.Row, b.Bounds.Min.Col, "block "+b.Name, "name", "Duplicate block name")
		}
		seenBlocks[b.Name] = true
		v.checkBlock(g, b)
	}

	return v.errors
}

// ValidateHall checks a single hall.
func (v *LayoutValidator) ValidateHall(g *grid.Grid, h region.Hall) []ValidationError {
	v.errors = nil
	v.checkHall(g, h)
	return v.errors
}

// ValidateBlock checks a single block.
func (v *LayoutValidator) ValidateBlock(g *grid.Grid, b region.Block) []ValidationError {
	v.errors = nil
	v.checkBlock(g, b)
	return v.errors
}

// ValidateItems checks that every located item points at an existing slot.
func (v *LayoutValidator) ValidateItems(items item.Items, catalog *region.Catalog) []ValidationError {
	v.errors = nil
	for _, it := range items {
		subject := "item " + it.ID
		if err := it.Validate(); err != nil {
			v.addError(0, 0, subject, "fields", "%v", err)
			continue
		}
		if it.Block == "" {
			if v.strictMode {
				v.addError(0, 0, subject, "location", "Item has no block")
			}
			continue
		}
		if _, err := catalog.Locate(it.Block, it.Number); err != nil {
			v.addError(0, 0, subject, it.Location(), "Item points at no slot: %v", err)
		}
	}
	return v.errors
}

// checkHall validates one hall's polygon.
func (v *LayoutValidator) checkHall(g *grid.Grid, h region.Hall) {
	subject := "hall " + h.ID
	if err := h.Validate(); err != nil {
		v.addError(0, 0, subject, "definition", "%v", err)
	}
	for i, p := range h.Vertices {
		if !g.InBounds(p) {
			v.addError(p.Row, p.Col, subject, fmt.Sprintf("vertex %d", i+1),
				"Vertex lies outside the %dx%d grid", g.Rows(), g.Cols())
		}
		if v.strictMode && i > 0 && p == h.Vertices[i-1] {
			v.addError(p.Row, p.Col, subject, fmt.Sprintf("vertex %d", i+1),
				"Vertex repeats the previous one")
		}
	}
}

// checkBlock validates one block's geometry and number cells.
func (v *LayoutValidator) checkBlock(g *grid.Grid, b region.Block) {
	subject := "block " + b.Name
	if err := b.Validate(); err != nil {
		v.addError(b.Bounds.Min.Row, b.Bounds.Min.Col, subject, "definition", "%v", err)
	}
	if v.strictMode && !region.IsBlockName(b.Name) {
		v.addError(b.Bounds.Min.Row, b.Bounds.Min.Col, subject, "name",
			"Name would not be found by auto-detection")
	}
	if !g.InBounds(b.Bounds.Min) || !g.InBounds(b.Bounds.Max) {
		v.addError(b.Bounds.Min.Row, b.Bounds.Min.Col, subject, "bounds",
			"Bounds %v-%v exceed the grid", b.Bounds.Min, b.Bounds.Max)
	}

	values := make(map[int]grid.Coord)
	for _, n := range b.NumberCells {
		ctx := fmt.Sprintf("slot %d", n.Value)
		if n.Value <= 0 || n.Value > v.maxSlot {
			v.addError(n.Row, n.Col, subject, ctx, "Slot number outside 1..%d", v.maxSlot)
		}
		if !b.Bounds.Contains(n.Coord) {
			v.addError(n.Row, n.Col, subject, ctx, "Number cell lies outside the block bounds")
		}
		if prev, dup := values[n.Value]; dup {
			v.addError(n.Row, n.Col, subject, ctx, "Slot number also used at %v", prev)
		} else {
			values[n.Value] = n.Coord
		}
		cell, ok := g.Cell(n.Coord)
		if !ok {
			v.addError(n.Row, n.Col, subject, ctx, "Number cell is empty in the grid; recompute the block")
			continue
		}
		if got, ok := cell.Value.Int(); !ok || got != n.Value {
			v.addError(n.Row, n.Col, subject, ctx, "Grid holds %q; recompute the block", cell.Value.String())
		}
	}
	if v.strictMode && len(b.NumberCells) == 0 {
		v.addError(b.Bounds.Min.Row, b.Bounds.Min.Col, subject, "numbers", "Block has no number cells")
	}
}

// addError adds a validation error.
func (v *LayoutValidator) addError(row, col int, subject, context, format string, args ...interface{}) {
	v.errors = append(v.errors, ValidationError{
		Row:     row,
		Col:     col,
		Subject: subject,
		Context: context,
		Message: fmt.Sprintf(format, args...),
	})
}

// String formats validation errors as a string.
func (e ValidationError) String() string {
	return fmt.Sprintf("(%d,%d) %s [%s]: %s", e.Row, e.Col, e.Subject, e.Context, e.Message)
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return e.String()
}
