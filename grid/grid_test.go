package grid

import (
	"errors"
	"testing"
)

func TestValue_IsPlainInteger(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  bool
	}{
		{"empty", Value{}, false},
		{"integer number", NumberValue(12), true},
		{"fractional number", NumberValue(1.5), false},
		{"digit text", TextValue(" 42 "), true},
		{"label text", TextValue("ア"), false},
		{"negative", NumberValue(-3), false},
		{"mixed", TextValue("12a"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.IsPlainInteger(); got != tt.want {
				t.Errorf("IsPlainInteger(%q) = %v, want %v", tt.value.String(), got, tt.want)
			}
		})
	}
}

func TestValue_Int(t *testing.T) {
	if n, ok := NumberValue(7).Int(); !ok || n != 7 {
		t.Errorf("Int() = %d, %v; want 7, true", n, ok)
	}
	if _, ok := NumberValue(7.25).Int(); ok {
		t.Error("fractional value should not convert")
	}
	if n, ok := TextValue("15").Int(); !ok || n != 15 {
		t.Errorf("Int() = %d, %v; want 15, true", n, ok)
	}
	if TextValue("   ").Kind != Empty {
		t.Error("blank text should be empty")
	}
}

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"white", "#FFFFFF", false},
		{"#fff", "#FFFFFF", false},
		{"ff0000", "#FF0000", false},
		{"FF00FF00", "#00FF00", false},
		{"#12345", "", true},
		{"zzzzzz", "", true},
	}

	for _, tt := range tests {
		got, err := NormalizeColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("NormalizeColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrInvalidColor) {
			t.Errorf("NormalizeColor(%q) error = %v, want ErrInvalidColor", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("NormalizeColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewStyle(t *testing.T) {
	s, err := NewStyle("ffffff", Borders{Top: Border{Style: BorderThin, Color: "000"}})
	if err != nil {
		t.Fatalf("NewStyle failed: %v", err)
	}
	if s.HasFill() {
		t.Error("white fill should not count as a fill")
	}
	if s.Borders.Top.Color != "#000000" {
		t.Errorf("border color = %q, want #000000", s.Borders.Top.Color)
	}

	if _, err := NewStyle("", Borders{Left: Border{Style: "wavy"}}); !errors.Is(err, ErrInvalidBorder) {
		t.Errorf("expected ErrInvalidBorder, got %v", err)
	}
}

func TestGrid_MergeResolution(t *testing.T) {
	g := MustFromText(`
ア . 1
. . 2
3 # .`, Merge{Start: Coord{0, 0}, End: Coord{1, 1}})

	if g.Rows() != 3 || g.Cols() != 3 {
		t.Fatalf("size = %dx%d, want 3x3", g.Rows(), g.Cols())
	}

	member, ok := g.Cell(Coord{1, 1})
	if !ok {
		t.Fatal("merge member should be tracked")
	}
	if member.Role != MergeMember || member.Origin != (Coord{0, 0}) {
		t.Errorf("member role = %v origin = %v", member.Role, member.Origin)
	}

	resolved, ok := g.Resolve(Coord{1, 0})
	if !ok || resolved.Value.String() != "ア" {
		t.Errorf("Resolve((1,0)) should yield the merge origin, got %+v", resolved)
	}

	if _, ok := g.Resolve(Coord{2, 2}); ok {
		t.Error("untracked cell should not resolve")
	}

	m, ok := g.MergeAt(Coord{1, 1})
	if !ok || m.Size() != 4 {
		t.Errorf("MergeAt = %+v, %v", m, ok)
	}

	cell, _ := g.Cell(Coord{2, 1})
	if !cell.Style.HasFill() {
		t.Error("# should produce a filled cell")
	}
}

func TestGrid_Errors(t *testing.T) {
	tests := []struct {
		name   string
		cells  []Cell
		merges []Merge
		want   error
	}{
		{
			name:  "cell out of bounds",
			cells: []Cell{{Coord: Coord{5, 0}}},
			want:  ErrOutOfBounds,
		},
		{
			name:  "duplicate cell",
			cells: []Cell{{Coord: Coord{0, 0}}, {Coord: Coord{0, 0}}},
			want:  ErrDuplicateCell,
		},
		{
			name:   "inverted merge",
			merges: []Merge{{Start: Coord{1, 1}, End: Coord{0, 0}}},
			want:   ErrInvalidMerge,
		},
		{
			name: "overlapping merges",
			merges: []Merge{
				{Start: Coord{0, 0}, End: Coord{1, 1}},
				{Start: Coord{1, 1}, End: Coord{2, 2}},
			},
			want: ErrOverlapMerge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(3, 3, tt.cells, tt.merges)
			if !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGrid_EachRowMajor(t *testing.T) {
	g := MustFromText(`
. 2
1 .`)
	var seen []Coord
	g.Each(func(c *Cell) { seen = append(seen, c.Coord) })
	if len(seen) != 2 || seen[0] != (Coord{0, 1}) || seen[1] != (Coord{1, 0}) {
		t.Errorf("Each order = %v", seen)
	}
}
