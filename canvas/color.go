package canvas

import (
	"strings"

	"evnav/grid"
)

// ANSI color codes
const (
	ColorReset   = "\033[0m"
	ColorRed     = "\033[31m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorBlue    = "\033[34m"
	ColorMagenta = "\033[35m"
	ColorCyan    = "\033[36m"
	ColorWhite   = "\033[37m"

	// Text style codes
	StyleBold = "\033[1m"
	StyleDim  = "\033[2m"
)

// KindColorCode returns the ANSI code a glyph kind is printed with.
func KindColorCode(k Kind) string {
	switch k {
	case KindObstacle:
		return StyleDim
	case KindSlot:
		return ColorCyan
	case KindLabel:
		return StyleBold + ColorYellow
	case KindPath:
		return ColorGreen
	case KindStop:
		return StyleBold + ColorRed
	default:
		return ""
	}
}

// ColoredString returns the canvas as a string with ANSI color codes.
func (c *MapCanvas) ColoredString() string {
	var sb strings.Builder

	for r := 0; r < c.rows; r++ {
		currentColor := ""
		for col := 0; col < c.cols; col++ {
			g := c.cells[r][col]
			color := KindColorCode(g.Kind)

			// Change color if needed
			if color != currentColor {
				if currentColor != "" {
					sb.WriteString(ColorReset)
				}
				sb.WriteString(color)
				currentColor = color
			}
			sb.WriteString(c.Cell(grid.Coord{Row: r, Col: col}))
		}

		// Reset color at end of line if needed
		if currentColor != "" {
			sb.WriteString(ColorReset)
		}
		if r < c.rows-1 {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}
