package grid

import (
	"strconv"
	"strings"
)

// FromText builds a grid from a whitespace-separated picture, one line per
// row. "." is an empty cell, "#" a black-filled cell, integers become numeric
// cells and any other token becomes text. Blank leading and trailing lines
// are ignored.
//
//	g, _ := FromText(`
//	ア ア 1 2
//	ア ア . #`, Merge{Start: Coord{0, 0}, End: Coord{1, 1}})
func FromText(text string, merges ...Merge) (*Grid, error) {
	lines := strings.Split(strings.Trim(text, "\n"), "\n")
	var cells []Cell
	rows, cols := 0, 0
	for r, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		rows = r + 1
		if len(fields) > cols {
			cols = len(fields)
		}
		for c, tok := range fields {
			cell := Cell{Coord: Coord{r, c}}
			switch {
			case tok == ".":
				continue
			case tok == "#":
				cell.Style = Style{Fill: "#000000"}
			default:
				if n, err := strconv.Atoi(tok); err == nil {
					cell.Value = NumberValue(float64(n))
				} else {
					cell.Value = TextValue(tok)
				}
			}
			cells = append(cells, cell)
		}
	}
	return New(rows, cols, cells, merges)
}

// MustFromText is like FromText but panics on error. Intended for tests.
func MustFromText(text string, merges ...Merge) *Grid {
	g, err := FromText(text, merges...)
	if err != nil {
		panic(err)
	}
	return g
}
