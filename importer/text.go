package importer

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"evnav/grid"
	"evnav/region"
)

// TextImporter reads a hand-drawn map: a whitespace-separated cell picture,
// then an optional "---" line followed by directives.
//
//	ア ア 1 2
//	ア ア . #
//	---
//	title Spring Market
//	merge 0,0 1,1
//	hall east East 0,0 0,3 1,3 1,0
//	block ア 0,0 0,3 1,3 1,0
type TextImporter struct {
	MaxSlot int
}

// NewTextImporter creates a new text map importer
func NewTextImporter() *TextImporter {
	return &TextImporter{MaxSlot: region.DefaultMaxSlot}
}

var (
	directiveRegex = regexp.MustCompile(`^(title|merge|hall|block|order)\s+(.*)$`)
	coordRegex     = regexp.MustCompile(`^(\d+),(\d+)$`)
)

// CanImport accepts anything that is not a JSON document.
func (t *TextImporter) CanImport(content []byte) bool {
	trimmed := bytes.TrimSpace(content)
	return len(trimmed) > 0 && trimmed[0] != '{' && trimmed[0] != '['
}

// Import parses the picture and its directives.
func (t *TextImporter) Import(content []byte) (*Layout, error) {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	picture, directives, _ := strings.Cut(text, "\n---\n")
	if strings.HasSuffix(strings.TrimRight(text, "\n"), "\n---") {
		picture = strings.TrimSuffix(strings.TrimRight(text, "\n"), "\n---")
		directives = ""
	}

	layout := &Layout{}
	var (
		merges []grid.Merge
		blocks [][]string
	)
	for n, line := range strings.Split(directives, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		m := directiveRegex.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("%w: directive line %d: %q", ErrInvalidLayout, n+1, line)
		}
		args := strings.Fields(m[2])
		switch m[1] {
		case "title":
			layout.Title = m[2]
		case "order":
			layout.GroupOrder = append(layout.GroupOrder, args...)
		case "merge":
			coords, err := parseCoords(args)
			if err != nil || len(coords) != 2 {
				return nil, fmt.Errorf("%w: merge on line %d needs two coordinates", ErrInvalidLayout, n+1)
			}
			merges = append(merges, grid.Merge{Start: coords[0], End: coords[1]})
		case "hall":
			if len(args) < 3 {
				return nil, fmt.Errorf("%w: hall on line %d needs an id, a name and vertices", ErrInvalidLayout, n+1)
			}
			vertices, err := parseCoords(args[2:])
			if err != nil {
				return nil, fmt.Errorf("%w: hall on line %d: %v", ErrInvalidLayout, n+1, err)
			}
			layout.Halls = append(layout.Halls, region.Hall{ID: args[0], Name: args[1], Vertices: vertices})
		case "block":
			blocks = append(blocks, args)
		}
	}

	g, err := grid.FromText(picture, merges...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	layout.Grid = g

	// Blocks need the finished grid to find their number cells.
	for _, args := range blocks {
		if len(args) < 2 {
			return nil, fmt.Errorf("%w: block needs a name and corners", ErrInvalidLayout)
		}
		corners, err := parseCoords(args[1:])
		if err != nil {
			return nil, fmt.Errorf("%w: block %q: %v", ErrInvalidLayout, args[0], err)
		}
		var b region.Block
		if len(corners) == 4 {
			b, err = region.FromCorners(g, args[0], corners, t.MaxSlot)
		} else {
			b, err = region.FromRanges(g, args[0], chunk(corners, 4), t.MaxSlot)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
		}
		layout.Blocks = append(layout.Blocks, b)
	}
	return layout, nil
}

// GetFormatName returns the format name
func (t *TextImporter) GetFormatName() string {
	return "text"
}

// GetFileExtensions returns common file extensions
func (t *TextImporter) GetFileExtensions() []string {
	return []string{".txt", ".map"}
}

func parseCoords(args []string) ([]grid.Coord, error) {
	out := make([]grid.Coord, 0, len(args))
	for _, a := range args {
		m := coordRegex.FindStringSubmatch(a)
		if m == nil {
			return nil, fmt.Errorf("bad coordinate %q", a)
		}
		r, _ := strconv.Atoi(m[1])
		c, _ := strconv.Atoi(m[2])
		out = append(out, grid.Coord{Row: r, Col: c})
	}
	return out, nil
}

// chunk splits corners into groups of n; a short tail stays short so the
// block constructor reports the bad corner count.
func chunk(coords []grid.Coord, n int) [][]grid.Coord {
	var out [][]grid.Coord
	for len(coords) > n {
		out = append(out, coords[:n])
		coords = coords[n:]
	}
	return append(out, coords)
}
