// Package canvas renders the event map as a matrix of text glyphs, one glyph
// per grid cell, for the text exporter and the terminal preview.
package canvas

import (
	"evnav/grid"
	"evnav/pathfinding"
	"evnav/region"
)

// Scene is everything drawn on one map.
type Scene struct {
	Title    string
	Grid     *grid.Grid
	Halls    []region.Hall
	Blocks   []region.Block
	Stops    []pathfinding.Stop
	Segments []pathfinding.Segment
}
