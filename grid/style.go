package grid

import (
	"fmt"
	"strings"
)

// BorderStyle is the line style of one cell edge.
type BorderStyle string

const (
	BorderNone   BorderStyle = ""
	BorderThin   BorderStyle = "thin"
	BorderMedium BorderStyle = "medium"
	BorderThick  BorderStyle = "thick"
	BorderDashed BorderStyle = "dashed"
	BorderDotted BorderStyle = "dotted"
	BorderDouble BorderStyle = "double"
	BorderHair   BorderStyle = "hair"
)

func (s BorderStyle) valid() bool {
	switch s {
	case BorderNone, BorderThin, BorderMedium, BorderThick,
		BorderDashed, BorderDotted, BorderDouble, BorderHair:
		return true
	}
	return false
}

// Border describes one edge of a cell.
type Border struct {
	Style BorderStyle `json:"style,omitempty"`
	Color string      `json:"color,omitempty"`
}

// Borders holds the four edges of a cell.
type Borders struct {
	Top    Border `json:"top,omitempty"`
	Right  Border `json:"right,omitempty"`
	Bottom Border `json:"bottom,omitempty"`
	Left   Border `json:"left,omitempty"`
}

// Style is the validated presentation of a cell. It is produced once at
// import time so that the pathfinder and the renderers read one shape.
type Style struct {
	Fill    string // "#RRGGBB" or "" for no fill
	Borders Borders
}

// NewStyle validates and normalises a fill color and border set.
func NewStyle(fill string, borders Borders) (Style, error) {
	f, err := NormalizeColor(fill)
	if err != nil {
		return Style{}, fmt.Errorf("fill: %w", err)
	}
	edges := []*Border{&borders.Top, &borders.Right, &borders.Bottom, &borders.Left}
	for _, b := range edges {
		if !b.Style.valid() {
			return Style{}, fmt.Errorf("%q: %w", b.Style, ErrInvalidBorder)
		}
		c, err := NormalizeColor(b.Color)
		if err != nil {
			return Style{}, fmt.Errorf("border: %w", err)
		}
		b.Color = c
	}
	return Style{Fill: f, Borders: borders}, nil
}

// HasFill reports whether the cell carries a background other than white.
func (s Style) HasFill() bool {
	return s.Fill != "" && s.Fill != "#FFFFFF"
}

// NormalizeColor accepts "RGB", "RRGGBB" and the spreadsheet "AARRGGBB"
// form, with or without a leading '#', plus the name "white". The result is
// "#RRGGBB" in upper case, or "" for an empty input.
func NormalizeColor(c string) (string, error) {
	c = strings.TrimSpace(c)
	if c == "" {
		return "", nil
	}
	if strings.EqualFold(c, "white") {
		return "#FFFFFF", nil
	}
	c = strings.ToUpper(strings.TrimPrefix(c, "#"))
	for _, r := range c {
		if !strings.ContainsRune("0123456789ABCDEF", r) {
			return "", fmt.Errorf("%q: %w", c, ErrInvalidColor)
		}
	}
	switch len(c) {
	case 3:
		c = string([]byte{c[0], c[0], c[1], c[1], c[2], c[2]})
	case 6:
	case 8:
		c = c[2:]
	default:
		return "", fmt.Errorf("%q: %w", c, ErrInvalidColor)
	}
	return "#" + c, nil
}
