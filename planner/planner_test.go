package planner

import (
	"errors"
	"os"
	"testing"

	"evnav/grid"
	"evnav/importer"
	"evnav/item"
	"evnav/region"
	"evnav/route"
	"evnav/visitlist"
)

const day1 = "2026-11-01"

func loadFixture(t *testing.T) *Planner {
	t.Helper()
	data, err := os.ReadFile("../importer/testdata/event.json")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	layout, err := importer.NewJSONImporter().Import(data)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	p, err := FromLayout(layout, DefaultOptions())
	if err != nil {
		t.Fatalf("FromLayout: %v", err)
	}
	return p
}

func c(row, col int) grid.Coord { return grid.Coord{Row: row, Col: col} }

func TestFromLayout_Catalog(t *testing.T) {
	p := loadFixture(t)

	blocks := p.Blocks()
	want := []string{"ア", "イ", "ウ"}
	if len(blocks) != len(want) {
		t.Fatalf("blocks = %d, want %d", len(blocks), len(want))
	}
	for i, b := range blocks {
		if b.Name != want[i] {
			t.Errorf("block %d = %s, want %s", i, b.Name, want[i])
		}
		if b.Color != region.DefaultPalette[i] {
			t.Errorf("block %s color = %s, want %s", b.Name, b.Color, region.DefaultPalette[i])
		}
	}

	tests := []struct {
		block  string
		number int
		want   grid.Coord
	}{
		{"ア", 1, c(0, 2)},
		{"ア", 3, c(0, 4)},
		{"イ", 2, c(0, 9)},
		{"ウ", 2, c(3, 3)},
	}
	for _, tt := range tests {
		got, err := p.Locate(tt.block, tt.number)
		if err != nil || got != tt.want {
			t.Errorf("Locate(%s, %d) = %v, %v; want %v", tt.block, tt.number, got, err, tt.want)
		}
	}
	if _, err := p.Locate("ア", 9); !errors.Is(err, region.ErrUnknownBlock) {
		t.Errorf("Locate(ア, 9) err = %v", err)
	}
	if p.Title() != "Autumn Market" {
		t.Errorf("title = %q", p.Title())
	}
}

func TestHallFor(t *testing.T) {
	p := loadFixture(t)
	tests := []struct {
		at   grid.Coord
		want string
		ok   bool
	}{
		{c(0, 2), "west", true},
		{c(0, 0), "west", true}, // vertex
		{c(3, 3), "west", true},
		{c(0, 5), "east", true},
		{c(7, 9), "east", true},
	}
	for _, tt := range tests {
		h, ok := p.HallFor(tt.at)
		if ok != tt.ok || h.ID != tt.want {
			t.Errorf("HallFor(%v) = %q, %v; want %q", tt.at, h.ID, ok, tt.want)
		}
	}
}

func TestVisitPointFor(t *testing.T) {
	p := loadFixture(t)

	vp, err := p.VisitPointFor(item.Item{ID: "x", EventDate: day1, Block: "ア", Number: 3})
	if err != nil {
		t.Fatalf("VisitPointFor: %v", err)
	}
	if vp.At != c(0, 4) || vp.Label != "ア-3" || vp.ID != "vp-x" || len(vp.ItemIDs) != 1 {
		t.Errorf("visit point = %+v", vp)
	}

	for _, it := range []item.Item{
		{ID: "noblock", EventDate: day1},
		{ID: "noslot", EventDate: day1, Block: "ア", Number: 50},
		{ID: "noname", EventDate: day1, Block: "オ", Number: 1},
	} {
		if _, err := p.VisitPointFor(it); !errors.Is(err, ErrNoLocation) {
			t.Errorf("%s: err = %v, want ErrNoLocation", it.ID, err)
		}
	}
}

func TestRoute(t *testing.T) {
	p := loadFixture(t)
	r := p.Route(day1)

	if len(r.Points) != 3 || len(r.Segments) != 2 {
		t.Fatalf("points = %d, segments = %d", len(r.Points), len(r.Segments))
	}
	if r.Unreachable != 0 {
		t.Errorf("unreachable = %d", r.Unreachable)
	}

	var sum float64
	for i, seg := range r.Segments {
		if !seg.Found {
			t.Errorf("segment %d not found", i)
		}
		if seg.Path[0] != seg.From || seg.Path[len(seg.Path)-1] != seg.To {
			t.Errorf("segment %d path %v does not join %v and %v", i, seg.Path, seg.From, seg.To)
		}
		if len(seg.Simplified) < 2 || len(seg.Simplified) > len(seg.Path) {
			t.Errorf("segment %d simplified = %v", i, seg.Simplified)
		}
		sum += seg.Cost
	}
	if r.Cost != sum || r.Cost <= 0 {
		t.Errorf("cost = %v, segments sum to %v", r.Cost, sum)
	}
	// ア-1 to ウ-2 is one diagonal and two straight steps.
	if got := r.Segments[0].Cost; got < 3.39 || got > 3.41 {
		t.Errorf("first segment cost = %v, want 3.4", got)
	}

	p.Route(day1)
	if hits, _, _, _ := p.Cache().Stats(); hits != 2 {
		t.Errorf("cache hits = %d, want 2", hits)
	}

	if empty := p.Route("2030-01-01"); len(empty.Segments) != 0 || empty.Cost != 0 {
		t.Errorf("empty date route = %+v", empty)
	}
}

func TestRoute_Unreachable(t *testing.T) {
	g := grid.MustFromText(`
. # .
# # .
. . .`)
	book, err := route.NewBook([]route.Point{
		{ID: "a", EventDate: "d", At: c(2, 2)},
		{ID: "b", EventDate: "d", At: c(0, 0), Order: 1},
	})
	if err != nil {
		t.Fatalf("NewBook: %v", err)
	}
	p := New(g, nil, nil, nil, book, DefaultOptions())

	r := p.Route("d")
	if r.Unreachable != 1 || r.Cost != 0 {
		t.Errorf("unreachable = %d, cost = %v", r.Unreachable, r.Cost)
	}
	seg := r.Segments[0]
	if seg.Found || len(seg.Path) != 2 {
		t.Errorf("fallback segment = %+v", seg)
	}
}

func TestMarkAndUnmarkVisit(t *testing.T) {
	p := loadFixture(t)
	plan := p.Book().Plan(day1)

	pt, err := p.MarkVisit("i2")
	if err != nil {
		t.Fatalf("MarkVisit: %v", err)
	}
	if pt.Order != 3 || pt.At != c(0, 4) {
		t.Errorf("new point = %+v", pt)
	}
	again, err := p.MarkVisit("i2")
	if err != nil || again.ID != pt.ID || plan.Len() != 4 {
		t.Errorf("second mark = %+v, %v; len %d", again, err, plan.Len())
	}

	if _, err := p.MarkVisit("i5"); err != nil {
		t.Fatalf("MarkVisit(i5): %v", err)
	}
	if got := p.Book().Plan("2026-11-02").Len(); got != 1 {
		t.Errorf("day 2 points = %d, want 1", got)
	}
	if _, err := p.MarkVisit("missing"); !errors.Is(err, item.ErrNotFound) {
		t.Errorf("unknown item err = %v", err)
	}

	if !p.UnmarkVisit("i2") || plan.Len() != 3 {
		t.Errorf("unmark left %d points", plan.Len())
	}
	if p.UnmarkVisit("i2") {
		t.Error("second unmark should report nothing removed")
	}
}

func TestMarkVisit_SharedSlot(t *testing.T) {
	p := loadFixture(t)
	p.items = append(p.items,
		item.Item{ID: "a", EventDate: day1, Block: "ア", Number: 2},
		item.Item{ID: "b", EventDate: day1, Block: "ア", Number: 2},
	)
	plan := p.Book().Plan(day1)

	steps := []struct {
		name string
		run  func() error
	}{
		{"mark a", func() error { _, err := p.MarkVisit("a"); return err }},
		{"mark b", func() error { _, err := p.MarkVisit("b"); return err }},
		{"unmark a", func() error {
			if !p.UnmarkVisit("a") {
				return errors.New("nothing detached")
			}
			return nil
		}},
		{"mark a again", func() error { _, err := p.MarkVisit("a"); return err }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			t.Fatalf("%s: %v", step.name, err)
		}
	}

	if plan.Len() != 4 {
		t.Fatalf("points = %d, want 4", plan.Len())
	}
	pt, ok := plan.PointAt(c(0, 3))
	if !ok {
		t.Fatal("no point on ア-2")
	}
	if len(pt.ItemIDs) != 2 || pt.ItemIDs[0] != "b" || pt.ItemIDs[1] != "a" {
		t.Errorf("items on ア-2 = %v, want [b a]", pt.ItemIDs)
	}
}

func TestRegionOf(t *testing.T) {
	p := loadFixture(t)
	tests := []struct {
		name  string
		entry visitlist.Entry
		want  string
	}{
		{"west slot", visitlist.Entry{Block: "ア", Number: 1}, "west"},
		{"east slot", visitlist.Entry{Block: "イ", Number: 2}, "east"},
		{"authored block", visitlist.Entry{Block: "ウ", Number: 1}, "west"},
		{"unknown slot", visitlist.Entry{Block: "オ", Number: 1}, ""},
		{"preset region", visitlist.Entry{Block: "ア", Number: 1, Region: "annex"}, "annex"},
	}
	for _, tt := range tests {
		if got := p.RegionOf(tt.entry); got != tt.want {
			t.Errorf("%s: RegionOf = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func ids(entries []visitlist.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEntriesAndSession(t *testing.T) {
	p := loadFixture(t)

	if got, want := ids(p.Entries(day1)), []string{"i1", "i4", "i3", "i2"}; !equal(got, want) {
		t.Errorf("entries = %v, want %v", got, want)
	}

	s := p.Session(day1)
	if got, want := ids(s.Entries()), []string{"i1", "i2", "i4", "i3"}; !equal(got, want) {
		t.Errorf("session entries = %v, want %v", got, want)
	}
	var groups []visitlist.GroupID
	for _, g := range s.Groups() {
		groups = append(groups, g.ID)
	}
	want := []visitlist.GroupID{"west:highest", "west:priority", "west", "east"}
	if len(groups) != len(want) {
		t.Fatalf("groups = %v, want %v", groups, want)
	}
	for i := range want {
		if groups[i] != want[i] {
			t.Errorf("group %d = %s, want %s", i, groups[i], want[i])
		}
	}
}

func TestApplyOrder(t *testing.T) {
	p := loadFixture(t)
	entries := []visitlist.Entry{{ID: "i3"}, {ID: "i2"}, {ID: "i4"}, {ID: "i1"}}
	if err := p.ApplyOrder(day1, entries); err != nil {
		t.Fatalf("ApplyOrder: %v", err)
	}
	var got []string
	for _, pt := range p.Book().Plan(day1).Points() {
		got = append(got, pt.ID)
	}
	if want := []string{"v3", "v2", "v1"}; !equal(got, want) {
		t.Errorf("route order = %v, want %v", got, want)
	}

	// Points with no listed item keep their place after the listed ones.
	if err := p.ApplyOrder(day1, []visitlist.Entry{{ID: "i1"}}); err != nil {
		t.Fatalf("ApplyOrder: %v", err)
	}
	got = got[:0]
	for _, pt := range p.Book().Plan(day1).Points() {
		got = append(got, pt.ID)
	}
	if want := []string{"v1", "v3", "v2"}; !equal(got, want) {
		t.Errorf("route order = %v, want %v", got, want)
	}
}

func TestScene(t *testing.T) {
	p := loadFixture(t)
	s := p.Scene(day1)
	if s.Title != "Autumn Market "+day1 {
		t.Errorf("title = %q", s.Title)
	}
	if len(s.Stops) != 3 || len(s.Segments) != 2 || len(s.Blocks) != 3 || len(s.Halls) != 2 {
		t.Errorf("scene = %d stops, %d segments, %d blocks, %d halls",
			len(s.Stops), len(s.Segments), len(s.Blocks), len(s.Halls))
	}
}

func TestValidate(t *testing.T) {
	p := loadFixture(t)
	if errs := p.Validate(); len(errs) != 0 {
		t.Errorf("fixture should validate cleanly, got %v", errs)
	}

	broken := loadFixture(t)
	broken.items = append(broken.items, item.Item{ID: "lost", EventDate: day1, Block: "ア", Number: 42})
	broken.halls = append(broken.halls, region.Hall{ID: "tiny", Name: "Tiny", Vertices: []grid.Coord{c(0, 0), c(1, 1)}})
	broken.classifier = region.NewClassifier(broken.halls)
	if errs := broken.Validate(); len(errs) != 2 {
		t.Errorf("errors = %v, want one hall and one item problem", errs)
	}
}

func TestSaveAndRemoveBlock(t *testing.T) {
	p := loadFixture(t)

	wall, err := region.FromWallGroups(p.Grid(), "エ", []region.CellGroup{{Cells: []grid.Coord{c(7, 0)}}}, region.DefaultMaxSlot)
	if err != nil {
		t.Fatalf("FromWallGroups: %v", err)
	}
	if replaced, err := p.SaveBlock(wall, nil); err != nil || replaced {
		t.Fatalf("SaveBlock(new) = %v, %v", replaced, err)
	}
	if len(p.Blocks()) != 4 {
		t.Errorf("blocks = %d, want 4", len(p.Blocks()))
	}

	dup, _ := region.FromCorners(p.Grid(), "ウ", []grid.Coord{c(3, 2), c(3, 2), c(3, 2), c(3, 2)}, region.DefaultMaxSlot)
	if _, err := p.SaveBlock(dup, nil); !errors.Is(err, region.ErrAborted) {
		t.Errorf("duplicate without confirmation err = %v", err)
	}
	if replaced, err := p.SaveBlock(dup, region.AlwaysReplace); err != nil || !replaced {
		t.Errorf("confirmed replace = %v, %v", replaced, err)
	}
	if _, err := p.Locate("ウ", 2); err == nil {
		t.Error("replaced block should only hold slot 1")
	}

	if !p.RemoveBlock("ウ") || p.RemoveBlock("ウ") {
		t.Error("RemoveBlock should succeed once")
	}
}
