package region

import (
	"fmt"
	"strings"

	"evnav/grid"
)

// ConfirmFunc decides whether an existing block may be replaced by an
// incoming one with the same name.
type ConfirmFunc func(existing, incoming Block) bool

// AlwaysReplace confirms every replacement.
func AlwaysReplace(Block, Block) bool { return true }

// slotRef points at one number cell of a catalog block.
type slotRef struct {
	block  string
	number int
}

// Catalog is the ordered set of blocks for one map, addressable by name and
// by number-cell coordinate.
type Catalog struct {
	blocks  []Block
	byName  map[string]int
	byCoord map[grid.Coord]slotRef
	palette []string
}

// NewCatalog creates a catalog seeded with blocks. Later blocks with a name
// already present replace the earlier one.
func NewCatalog(palette []string, blocks ...Block) *Catalog {
	c := &Catalog{
		byName:  make(map[string]int),
		palette: palette,
	}
	for _, b := range blocks {
		c.put(b)
	}
	c.reindex()
	return c
}

// Save stores a block. A block whose name is already taken is only written
// when confirm agrees; otherwise ErrAborted is returned and the catalog is
// left unchanged. The returned flag reports whether a block was replaced.
func (c *Catalog) Save(b Block, confirm ConfirmFunc) (bool, error) {
	b.Name = strings.TrimSpace(b.Name)
	if err := b.Validate(); err != nil {
		return false, err
	}
	if i, exists := c.byName[b.Name]; exists {
		if confirm == nil || !confirm(c.blocks[i], b) {
			return false, fmt.Errorf("block %q: %w", b.Name, ErrAborted)
		}
		if b.Color == "" {
			b.Color = c.blocks[i].Color
		}
		c.blocks[i] = b
		c.reindex()
		return true, nil
	}
	c.put(b)
	c.reindex()
	return false, nil
}

// Remove deletes a block by name.
func (c *Catalog) Remove(name string) bool {
	i, ok := c.byName[name]
	if !ok {
		return false
	}
	c.blocks = append(c.blocks[:i], c.blocks[i+1:]...)
	c.byName = make(map[string]int, len(c.blocks))
	for j, b := range c.blocks {
		c.byName[b.Name] = j
	}
	c.reindex()
	return true
}

// Get returns a block by name.
func (c *Catalog) Get(name string) (Block, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Block{}, false
	}
	return c.blocks[i], true
}

// Blocks returns the blocks in insertion order.
func (c *Catalog) Blocks() []Block {
	out := make([]Block, len(c.blocks))
	copy(out, c.blocks)
	return out
}

// Len returns the number of blocks.
func (c *Catalog) Len() int {
	return len(c.blocks)
}

// Locate returns the cell of slot number in the named block.
func (c *Catalog) Locate(name string, number int) (grid.Coord, error) {
	b, ok := c.Get(name)
	if !ok {
		return grid.Coord{}, fmt.Errorf("%q: %w", name, ErrUnknownBlock)
	}
	n, ok := b.Find(number)
	if !ok {
		return grid.Coord{}, fmt.Errorf("%s-%d: %w", name, number, ErrUnknownBlock)
	}
	return n.Coord, nil
}

// SlotAt returns the block name and slot number of the number cell at p.
func (c *Catalog) SlotAt(p grid.Coord) (string, int, bool) {
	ref, ok := c.byCoord[p]
	return ref.block, ref.number, ok
}

// LabelCells returns every label cell of every block. These cells stay
// walkable for the pathfinder even when filled.
func (c *Catalog) LabelCells() []grid.Coord {
	var out []grid.Coord
	for _, b := range c.blocks {
		out = append(out, b.LabelCells...)
	}
	return out
}

func (c *Catalog) put(b Block) {
	if i, exists := c.byName[b.Name]; exists {
		c.blocks[i] = b
		return
	}
	if b.Color == "" {
		b.Color = PaletteColor(c.palette, len(c.blocks))
	}
	c.byName[b.Name] = len(c.blocks)
	c.blocks = append(c.blocks, b)
}

func (c *Catalog) reindex() {
	c.byCoord = make(map[grid.Coord]slotRef)
	for _, b := range c.blocks {
		for _, n := range b.NumberCells {
			if _, taken := c.byCoord[n.Coord]; !taken {
				c.byCoord[n.Coord] = slotRef{block: b.Name, number: n.Value}
			}
		}
	}
}
