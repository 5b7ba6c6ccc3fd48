package canvas

import (
	"errors"
	"strings"
	"testing"

	"evnav/grid"
	"evnav/pathfinding"
	"evnav/region"
)

func c(row, col int) grid.Coord { return grid.Coord{Row: row, Col: col} }

func testScene() Scene {
	g := grid.MustFromText(`
. . . . .
. ア ア 1 .
. ア ア 2 .
. . . . .`, grid.Merge{Start: c(1, 1), End: c(2, 2)})

	return Scene{
		Grid: g,
		Halls: []region.Hall{
			{ID: "east", Name: "East", Color: "#112233", Vertices: []grid.Coord{c(0, 3), c(0, 4), c(3, 4), c(3, 3)}},
		},
		Blocks: []region.Block{{
			Name:        "ア",
			LabelCells:  []grid.Coord{c(1, 1), c(1, 2), c(2, 1), c(2, 2)},
			NumberCells: []region.NumberCell{{Coord: c(1, 3), Value: 1}, {Coord: c(2, 3), Value: 2}},
			Color:       "#E57373",
		}},
		Stops: []pathfinding.Stop{{ID: "s1", At: c(0, 0)}, {ID: "s2", At: c(3, 4)}},
		Segments: []pathfinding.Segment{{
			FromID: "s1",
			ToID:   "s2",
			Path:   []grid.Coord{c(0, 0), c(0, 1), c(0, 2), c(0, 3), c(0, 4), c(1, 4), c(2, 4), c(3, 4)},
			Found:  true,
		}},
	}
}

func TestRender(t *testing.T) {
	mc, err := Render(testScene(), DefaultCellWidth)
	if err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		"1  +  +  +  +",
		"   ア    1  +",
		"         2  +",
		"            2",
	}, "\n")
	if got := mc.String(); got != want {
		t.Errorf("Render() =\n%s\nwant:\n%s", got, want)
	}
}

func TestRender_Glyphs(t *testing.T) {
	mc, err := Render(testScene(), DefaultCellWidth)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		at    grid.Coord
		kind  Kind
		color string
	}{
		{c(0, 0), KindStop, ""},
		{c(0, 1), KindPath, ""},
		{c(0, 4), KindPath, "#112233"},
		{c(1, 1), KindLabel, "#E57373"},
		{c(2, 2), KindLabel, "#E57373"},
		{c(1, 3), KindSlot, "#E57373"},
		{c(3, 0), KindEmpty, ""},
		{c(3, 3), KindEmpty, "#112233"},
	}

	for _, tt := range tests {
		g, err := mc.Get(tt.at)
		if err != nil {
			t.Fatal(err)
		}
		if g.Kind != tt.kind || g.Color != tt.color {
			t.Errorf("glyph at %v = %v %q, want %v %q", tt.at, g.Kind, g.Color, tt.kind, tt.color)
		}
	}
}

func TestRender_FallbackSegmentNotDrawn(t *testing.T) {
	s := testScene()
	s.Segments[0].Found = false
	mc, err := Render(s, DefaultCellWidth)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(mc.String(), PathText) {
		t.Errorf("fallback segment should not be drawn:\n%s", mc.String())
	}
}

func TestCellGlyph(t *testing.T) {
	g := grid.MustFromText(`
7 7 # x`, grid.Merge{Start: c(0, 0), End: c(0, 1)})

	tests := []struct {
		at   grid.Coord
		text string
		kind Kind
	}{
		{c(0, 0), "7", KindSlot},
		{c(0, 1), "", KindObstacle},
		{c(0, 2), ObstacleText, KindObstacle},
		{c(0, 3), "x", KindText},
	}

	for _, tt := range tests {
		got := cellGlyph(g, tt.at)
		if got.Text != tt.text || got.Kind != tt.kind {
			t.Errorf("cellGlyph(%v) = %q %v, want %q %v", tt.at, got.Text, got.Kind, tt.text, tt.kind)
		}
	}
}

func TestMapCanvas_Bounds(t *testing.T) {
	if _, err := NewMapCanvas(0, 3, 2); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("expected ErrInvalidSize, got %v", err)
	}

	mc, err := NewMapCanvas(2, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := mc.Set(c(2, 0), Glyph{Text: "x"}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
	if _, err := mc.Get(c(0, -1)); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}

	mc.Set(c(0, 0), Glyph{Text: "x"})
	mc.Clear()
	if g, _ := mc.Get(c(0, 0)); g.Text != "" {
		t.Error("Clear should reset glyphs")
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"1", 3, "1  "},
		{"100", 2, "10"},
		{"ア", 3, "ア "},
		{"アイ", 3, "ア "},
		{"", 2, "  "},
	}

	for _, tt := range tests {
		if got := fit(tt.text, tt.width); got != tt.want {
			t.Errorf("fit(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestColoredString(t *testing.T) {
	mc, err := Render(testScene(), DefaultCellWidth)
	if err != nil {
		t.Fatal(err)
	}
	out := mc.ColoredString()
	if !strings.Contains(out, StyleBold+ColorRed+"1") {
		t.Error("stops should be printed bold red")
	}
	if strings.Count(out, "\n") != 3 {
		t.Errorf("expected 4 lines, got %q", out)
	}
}

func TestStopMark(t *testing.T) {
	tests := map[int]string{0: "1", 8: "9", 9: "a", 34: "z", 35: "*"}
	for i, want := range tests {
		if got := StopMark(i); got != want {
			t.Errorf("StopMark(%d) = %q, want %q", i, got, want)
		}
	}
}
