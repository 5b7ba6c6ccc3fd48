package export

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"evnav/canvas"
	"evnav/grid"
)

// Colors used for cells without a color of their own.
var (
	obstacleColor = color.RGBA{0x9E, 0x9E, 0x9E, 0xFF}
	gridColor     = color.RGBA{0xE0, 0xE0, 0xE0, 0xFF}
	routeColor    = color.RGBA{0x2E, 0x7D, 0x32, 0xFF}
	fallbackColor = color.RGBA{0xC6, 0x28, 0x28, 0xFF}
	stopColor     = color.RGBA{0xD3, 0x2F, 0x2F, 0xFF}
)

// PNGExporter draws the map and route as an image
type PNGExporter struct {
	CellSize float64 // Pixels per grid cell
	FontSize float64
}

// NewPNGExporter creates a new PNG exporter
func NewPNGExporter() *PNGExporter {
	return &PNGExporter{
		CellSize: 24,
		FontSize: 10,
	}
}

// Export draws the scene and encodes it as PNG
func (e *PNGExporter) Export(w io.Writer, s canvas.Scene) error {
	if s.Grid == nil || s.Grid.Rows() == 0 || s.Grid.Cols() == 0 {
		return fmt.Errorf("nothing to export")
	}
	cell := e.CellSize
	width := int(float64(s.Grid.Cols()) * cell)
	height := int(float64(s.Grid.Rows()) * cell)

	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %v", err)
	}
	dc.SetFontFace(truetype.NewFace(ttfFont, &truetype.Options{
		Size:    e.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	// Halls first so everything else is drawn over them
	for _, h := range s.Halls {
		if len(h.Vertices) < 3 {
			continue
		}
		for i, v := range h.Vertices {
			x, y := e.center(v)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
		setHex(dc, h.Color, 0x40)
		dc.Fill()
	}

	e.drawCells(dc, s)

	for _, b := range s.Blocks {
		for _, p := range b.LabelCells {
			setHex(dc, b.Color, 0xC0)
			dc.DrawRectangle(float64(p.Col)*cell, float64(p.Row)*cell, cell, cell)
			dc.Fill()
		}
		if len(b.LabelCells) > 0 {
			bounds := b.LabelCells[0]
			x, y := e.center(bounds)
			dc.SetColor(color.Black)
			dc.DrawStringAnchored(b.Name, x, y, 0.5, 0.35)
		}
	}

	for _, seg := range s.Segments {
		e.drawSegment(dc, seg.Simplified, seg.Found)
	}

	for i, stop := range s.Stops {
		x, y := e.center(stop.At)
		dc.SetColor(stopColor)
		dc.DrawCircle(x, y, cell*0.4)
		dc.Fill()
		dc.SetColor(color.White)
		dc.DrawStringAnchored(canvas.StopMark(i), x, y, 0.5, 0.35)
	}

	return dc.EncodePNG(w)
}

// drawCells paints obstacles and slot numbers.
func (e *PNGExporter) drawCells(dc *gg.Context, s canvas.Scene) {
	cell := e.CellSize
	s.Grid.Each(func(c *grid.Cell) {
		x, y := float64(c.Col)*cell, float64(c.Row)*cell
		origin, ok := s.Grid.Resolve(c.Coord)
		if !ok {
			return
		}
		switch {
		case origin.Value.IsPlainInteger():
			dc.SetColor(gridColor)
			dc.SetLineWidth(1)
			dc.DrawRectangle(x, y, cell, cell)
			dc.Stroke()
			if c.Role != grid.MergeMember {
				dc.SetColor(color.Black)
				dc.DrawStringAnchored(origin.Value.String(), x+cell/2, y+cell/2, 0.5, 0.35)
			}
		case origin.Style.HasFill():
			dc.SetColor(obstacleColor)
			dc.DrawRectangle(x, y, cell, cell)
			dc.Fill()
		}
	})
}

// drawSegment draws a simplified polyline through cell centers. Fallback
// lines are dashed.
func (e *PNGExporter) drawSegment(dc *gg.Context, points []grid.Coord, found bool) {
	if len(points) < 2 {
		return
	}
	dc.SetLineWidth(3)
	if found {
		dc.SetColor(routeColor)
		dc.SetDash()
	} else {
		dc.SetColor(fallbackColor)
		dc.SetDash(6, 4)
	}
	for i, p := range points {
		x, y := e.center(p)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.Stroke()
	dc.SetDash()
}

func (e *PNGExporter) center(p grid.Coord) (float64, float64) {
	return (float64(p.Col) + 0.5) * e.CellSize, (float64(p.Row) + 0.5) * e.CellSize
}

// setHex sets a "#RRGGBB" color with the given alpha, falling back to grey.
func setHex(dc *gg.Context, hex string, alpha int) {
	hex = strings.TrimPrefix(hex, "#")
	v, err := strconv.ParseUint(hex, 16, 32)
	if len(hex) != 6 || err != nil {
		dc.SetRGBA255(0x90, 0x90, 0x90, alpha)
		return
	}
	dc.SetRGBA255(int(v>>16&0xFF), int(v>>8&0xFF), int(v&0xFF), alpha)
}

// GetFileExtension returns the file extension for PNG
func (e *PNGExporter) GetFileExtension() string {
	return ".png"
}

// GetFormatName returns the format name
func (e *PNGExporter) GetFormatName() string {
	return "PNG image"
}
