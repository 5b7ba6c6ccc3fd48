// Package region classifies grid cells into halls and blocks.
//
// Halls are user-drawn polygons used to group visit entries. Blocks are named
// areas whose numbered slots ("number cells") are the addressable stalls of
// the map. Blocks are either detected from merged label cells or authored by
// hand as rectangles, unions of rectangles, or wall groups.
package region

import "errors"

// Common errors
var (
	ErrEmptyName     = errors.New("name is required")
	ErrNoGeometry    = errors.New("no geometry resolved")
	ErrVertexCount   = errors.New("hall needs 4 to 6 vertices")
	ErrCornerCount   = errors.New("rectangle needs exactly 4 corners")
	ErrTooManyGroups = errors.New("too many cell groups")
	ErrEmptyGroup    = errors.New("cell group has no cells")
	ErrAborted       = errors.New("save aborted")
	ErrUnknownBlock  = errors.New("unknown block")
)

// DefaultPalette is cycled through when blocks are colored in detection or
// creation order.
var DefaultPalette = []string{
	"#E57373", "#64B5F6", "#81C784", "#FFB74D", "#BA68C8",
	"#4DB6AC", "#F06292", "#A1887F", "#90A4AE", "#DCE775",
}

// PaletteColor returns the i-th palette color, wrapping around.
func PaletteColor(palette []string, i int) string {
	if len(palette) == 0 {
		return ""
	}
	if i < 0 {
		i = -i
	}
	return palette[i%len(palette)]
}
