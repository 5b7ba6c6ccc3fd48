package importer

import (
	"encoding/json"
	"fmt"

	"evnav/grid"
	"evnav/region"
)

// Marshal writes a layout in the JSON layout format read by JSONImporter.
// Merge members with no content of their own are left out since the merge
// recreates them.
func Marshal(l *Layout) ([]byte, error) {
	if l == nil || l.Grid == nil {
		return nil, fmt.Errorf("%w: no grid", ErrInvalidLayout)
	}
	g := l.Grid
	f := layoutFile{
		Title:      l.Title,
		Rows:       g.Rows(),
		Cols:       g.Cols(),
		Cells:      []cellRecord{},
		Merges:     g.Merges(),
		Halls:      l.Halls,
		Items:      l.Items,
		Visits:     l.Visits,
		GroupOrder: l.GroupOrder,
	}

	g.Each(func(c *grid.Cell) {
		if c.Role == grid.MergeMember && c.Value.IsEmpty() && c.Style == (grid.Style{}) {
			return
		}
		rec := cellRecord{Row: c.Row, Col: c.Col, Fill: c.Style.Fill}
		switch c.Value.Kind {
		case grid.Number:
			rec.Value = c.Value.Number
		case grid.Text:
			rec.Value = c.Value.Text
		}
		rec.Borders.Top = borderRef(c.Style.Borders.Top)
		rec.Borders.Right = borderRef(c.Style.Borders.Right)
		rec.Borders.Bottom = borderRef(c.Style.Borders.Bottom)
		rec.Borders.Left = borderRef(c.Style.Borders.Left)
		f.Cells = append(f.Cells, rec)
	})

	for _, b := range l.Blocks {
		f.Blocks = append(f.Blocks, blockRecordOf(b))
	}
	return json.MarshalIndent(f, "", "  ")
}

func borderRef(b grid.Border) *grid.Border {
	if b == (grid.Border{}) {
		return nil
	}
	return &b
}

func blockRecordOf(b region.Block) blockRecord {
	rec := blockRecord{Name: b.Name, Color: b.Color}
	switch {
	case b.IsWall():
		for _, g := range b.Groups {
			if g.Range != nil {
				rec.Groups = append(rec.Groups, groupRecord{Corners: g.Range.Corners()})
				continue
			}
			rec.Groups = append(rec.Groups, groupRecord{Cells: g.Cells})
		}
	case len(b.Ranges) == 1:
		rec.Corners = b.Ranges[0].Corners()
	default:
		for _, r := range b.Ranges {
			rec.Ranges = append(rec.Ranges, r.Corners())
		}
	}
	return rec
}
