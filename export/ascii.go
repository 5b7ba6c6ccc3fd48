package export

import (
	"fmt"
	"io"
	"strings"

	"evnav/canvas"
	"evnav/pathfinding"
)

// ASCIIExporter exports the map as text followed by a legend
type ASCIIExporter struct {
	CellWidth int
	Colored   bool // Emit ANSI color codes
}

// NewASCIIExporter creates a new ASCII exporter
func NewASCIIExporter() *ASCIIExporter {
	return &ASCIIExporter{CellWidth: canvas.DefaultCellWidth}
}

// Export writes the text map and its legend
func (e *ASCIIExporter) Export(w io.Writer, s canvas.Scene) error {
	mc, err := canvas.Render(s, e.CellWidth)
	if err != nil {
		return fmt.Errorf("failed to render map: %w", err)
	}

	var sb strings.Builder
	if s.Title != "" {
		sb.WriteString(s.Title)
		sb.WriteString("\n\n")
	}
	if e.Colored {
		sb.WriteString(mc.ColoredString())
	} else {
		sb.WriteString(mc.String())
	}
	sb.WriteString("\n")

	if len(s.Stops) > 0 {
		sb.WriteString("\nStops:\n")
		for i, stop := range s.Stops {
			fmt.Fprintf(&sb, "  %-2s %s %v\n", canvas.StopMark(i), stop.ID, stop.At)
		}
	}
	if len(s.Segments) > 0 {
		sb.WriteString("\nSegments:\n")
		for _, seg := range s.Segments {
			if seg.Found {
				fmt.Fprintf(&sb, "  %s -> %s: %d steps, cost %.1f\n", seg.FromID, seg.ToID, len(seg.Path)-1, seg.Cost)
			} else {
				fmt.Fprintf(&sb, "  %s -> %s: no walkable path\n", seg.FromID, seg.ToID)
			}
		}
		cost, unreachable := pathfinding.TotalCost(s.Segments)
		fmt.Fprintf(&sb, "  total cost %.1f", cost)
		if unreachable > 0 {
			fmt.Fprintf(&sb, ", %d unreachable", unreachable)
		}
		sb.WriteString("\n")
	}

	_, err = io.WriteString(w, sb.String())
	return err
}

// GetFileExtension returns the recommended file extension
func (e *ASCIIExporter) GetFileExtension() string {
	return ".txt"
}

// GetFormatName returns the format name
func (e *ASCIIExporter) GetFormatName() string {
	return "Text map"
}
