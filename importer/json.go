package importer

import (
	"bytes"
	"encoding/json"
	"fmt"

	"evnav/grid"
	"evnav/item"
	"evnav/region"
	"evnav/route"
)

// JSONImporter reads the JSON layout file format.
type JSONImporter struct {
	MaxSlot int
}

// NewJSONImporter creates a new JSON importer
func NewJSONImporter() *JSONImporter {
	return &JSONImporter{MaxSlot: region.DefaultMaxSlot}
}

type layoutFile struct {
	Title      string        `json:"title,omitempty"`
	Rows       int           `json:"rows"`
	Cols       int           `json:"cols"`
	Cells      []cellRecord  `json:"cells"`
	Merges     []grid.Merge  `json:"merges,omitempty"`
	Halls      []region.Hall `json:"halls,omitempty"`
	Blocks     []blockRecord `json:"blocks,omitempty"`
	Items      item.Items    `json:"items,omitempty"`
	Visits     []route.Point `json:"visits,omitempty"`
	GroupOrder []string      `json:"groupOrder,omitempty"`
}

type cellRecord struct {
	Row     int         `json:"row"`
	Col     int         `json:"col"`
	Value   interface{} `json:"value,omitempty"`
	Fill    string      `json:"fill,omitempty"`
	Borders struct {
		Top    *grid.Border `json:"top,omitempty"`
		Right  *grid.Border `json:"right,omitempty"`
		Bottom *grid.Border `json:"bottom,omitempty"`
		Left   *grid.Border `json:"left,omitempty"`
	} `json:"borders"`
}

// blockRecord is a hand-authored block. Exactly one of Corners, Ranges or
// Groups describes its geometry.
type blockRecord struct {
	Name    string         `json:"name"`
	Color   string         `json:"color,omitempty"`
	Corners []grid.Coord   `json:"corners,omitempty"`
	Ranges  [][]grid.Coord `json:"ranges,omitempty"`
	Groups  []groupRecord  `json:"groups,omitempty"`
}

type groupRecord struct {
	Corners []grid.Coord `json:"corners,omitempty"`
	Cells   []grid.Coord `json:"cells,omitempty"`
}

// CanImport checks for a JSON object with a cells list.
func (i *JSONImporter) CanImport(content []byte) bool {
	trimmed := bytes.TrimSpace(content)
	return len(trimmed) > 0 && trimmed[0] == '{' && bytes.Contains(trimmed, []byte(`"cells"`))
}

// Import decodes a layout file and builds its grid and blocks.
func (i *JSONImporter) Import(content []byte) (*Layout, error) {
	var f layoutFile
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}

	cells := make([]grid.Cell, 0, len(f.Cells))
	rows, cols := f.Rows, f.Cols
	for _, rec := range f.Cells {
		cell, err := rec.toCell()
		if err != nil {
			return nil, fmt.Errorf("%w: cell %d,%d: %v", ErrInvalidLayout, rec.Row, rec.Col, err)
		}
		cells = append(cells, cell)
		rows, cols = grow(rows, cols, cell.Coord)
	}
	for _, m := range f.Merges {
		rows, cols = grow(rows, cols, m.End)
	}

	g, err := grid.New(rows, cols, cells, f.Merges)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}

	layout := &Layout{
		Title:      f.Title,
		Grid:       g,
		Halls:      f.Halls,
		Items:      f.Items,
		Visits:     f.Visits,
		GroupOrder: f.GroupOrder,
	}
	for _, rec := range f.Blocks {
		b, err := rec.build(g, i.MaxSlot)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
		}
		layout.Blocks = append(layout.Blocks, b)
	}
	return layout, nil
}

// GetFormatName returns the format name
func (i *JSONImporter) GetFormatName() string {
	return "json"
}

// GetFileExtensions returns common file extensions
func (i *JSONImporter) GetFileExtensions() []string {
	return []string{".json"}
}

func (rec cellRecord) toCell() (grid.Cell, error) {
	cell := grid.Cell{Coord: grid.Coord{Row: rec.Row, Col: rec.Col}}
	switch v := rec.Value.(type) {
	case nil:
	case float64:
		cell.Value = grid.NumberValue(v)
	case string:
		cell.Value = grid.TextValue(v)
	default:
		return cell, fmt.Errorf("unsupported value %v", v)
	}

	var borders grid.Borders
	for _, side := range []struct {
		src *grid.Border
		dst *grid.Border
	}{
		{rec.Borders.Top, &borders.Top},
		{rec.Borders.Right, &borders.Right},
		{rec.Borders.Bottom, &borders.Bottom},
		{rec.Borders.Left, &borders.Left},
	} {
		if side.src != nil {
			*side.dst = *side.src
		}
	}
	style, err := grid.NewStyle(rec.Fill, borders)
	if err != nil {
		return cell, err
	}
	cell.Style = style
	return cell, nil
}

func (rec blockRecord) build(g *grid.Grid, maxSlot int) (region.Block, error) {
	var (
		b   region.Block
		err error
	)
	switch {
	case len(rec.Groups) > 0:
		groups := make([]region.CellGroup, 0, len(rec.Groups))
		for _, gr := range rec.Groups {
			if len(gr.Corners) > 0 {
				cg, err := region.RangeGroup(gr.Corners)
				if err != nil {
					return b, fmt.Errorf("block %q: %w", rec.Name, err)
				}
				groups = append(groups, cg)
				continue
			}
			groups = append(groups, region.CellGroup{Cells: gr.Cells})
		}
		b, err = region.FromWallGroups(g, rec.Name, groups, maxSlot)
	case len(rec.Ranges) > 0:
		b, err = region.FromRanges(g, rec.Name, rec.Ranges, maxSlot)
	default:
		b, err = region.FromCorners(g, rec.Name, rec.Corners, maxSlot)
	}
	if err != nil {
		return b, err
	}
	b.Color = rec.Color
	return b, nil
}

func grow(rows, cols int, c grid.Coord) (int, int) {
	if c.Row+1 > rows {
		rows = c.Row + 1
	}
	if c.Col+1 > cols {
		cols = c.Col + 1
	}
	return rows, cols
}
