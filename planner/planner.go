// Package planner wires the layout, the block catalog, the visit plans and
// the pathfinder together into one route-planning pipeline.
package planner

import (
	"errors"
	"fmt"

	"evnav/canvas"
	"evnav/grid"
	"evnav/importer"
	"evnav/item"
	"evnav/pathfinding"
	"evnav/region"
	"evnav/route"
	"evnav/validation"
	"evnav/visitlist"
)

// ErrNoLocation is returned for items whose block or number is not on the map.
var ErrNoLocation = errors.New("item has no map location")

// Options tunes the pipeline.
type Options struct {
	Detect        region.DetectOptions
	Costs         pathfinding.Costs
	Tolerance     float64 // Simplification tolerance in cells
	CacheSize     int     // Memoized paths per planner
	MaxIterations int     // Search bound; 0 keeps 2 x rows x cols
	GroupOrder    []visitlist.GroupID
	Strict        bool // Strict layout validation
}

// DefaultOptions returns the settings used by the command line tool.
func DefaultOptions() Options {
	return Options{
		Detect:    region.DefaultDetectOptions(),
		Costs:     pathfinding.DefaultCosts(),
		Tolerance: 0.5,
		CacheSize: 100,
	}
}

// Planner orchestrates block lookup, hall classification, visit ordering and
// routing for one map.
type Planner struct {
	title      string
	grid       *grid.Grid
	halls      []region.Hall
	classifier *region.Classifier
	catalog    *region.Catalog
	items      item.Items
	book       *route.Book
	opts       Options

	router *pathfinding.CachedRouter
}

// Route is the walk through one date's visit points.
type Route struct {
	Date        string
	Points      []route.Point
	Segments    []pathfinding.Segment
	Cost        float64
	Unreachable int
}

// New creates a planner over prepared parts. A nil book starts without any
// visit points.
func New(g *grid.Grid, halls []region.Hall, catalog *region.Catalog, items item.Items, book *route.Book, opts Options) *Planner {
	if book == nil {
		book, _ = route.NewBook(nil)
	}
	if catalog == nil {
		catalog = region.NewCatalog(opts.Detect.Palette)
	}
	p := &Planner{
		grid:       g,
		halls:      halls,
		classifier: region.NewClassifier(halls),
		catalog:    catalog,
		items:      items,
		book:       book,
		opts:       opts,
	}
	p.rebuildRouter()
	return p
}

// FromLayout detects blocks on an imported layout, adds its hand-authored
// blocks on top and restores its saved visit points. Saved points that name
// a block are moved to the block's current slot cell.
func FromLayout(l *importer.Layout, opts Options) (*Planner, error) {
	if l == nil || l.Grid == nil {
		return nil, fmt.Errorf("planner: %w", importer.ErrInvalidLayout)
	}
	blocks := region.DetectBlocks(l.Grid, opts.Detect)
	blocks = append(blocks, l.Blocks...)
	catalog := region.NewCatalog(opts.Detect.Palette, blocks...)

	visits := make([]route.Point, len(l.Visits))
	copy(visits, l.Visits)
	for i, v := range visits {
		if v.Block == "" || v.Number <= 0 {
			continue
		}
		if at, err := catalog.Locate(v.Block, v.Number); err == nil {
			visits[i].At = at
		}
	}
	book, err := route.NewBook(visits)
	if err != nil {
		return nil, fmt.Errorf("planner: %w", err)
	}

	if len(opts.GroupOrder) == 0 {
		for _, id := range l.GroupOrder {
			opts.GroupOrder = append(opts.GroupOrder, visitlist.GroupID(id))
		}
	}
	p := New(l.Grid, l.Halls, catalog, l.Items, book, opts)
	p.title = l.Title
	return p, nil
}

// Title returns the map title.
func (p *Planner) Title() string { return p.title }

// Grid returns the map grid.
func (p *Planner) Grid() *grid.Grid { return p.grid }

// Halls returns the halls in definition order.
func (p *Planner) Halls() []region.Hall { return p.classifier.Halls() }

// Items returns the item list.
func (p *Planner) Items() item.Items { return p.items }

// Book returns the visit plans.
func (p *Planner) Book() *route.Book { return p.book }

// Blocks returns the catalog blocks in insertion order.
func (p *Planner) Blocks() []region.Block { return p.catalog.Blocks() }

// Catalog returns the block catalog.
func (p *Planner) Catalog() *region.Catalog { return p.catalog }

// Cache returns the path cache of the current router.
func (p *Planner) Cache() *pathfinding.PathCache { return p.router.Cache() }

// SaveBlock stores an authored block and refreshes the router, since label
// cells of the block become walkable.
func (p *Planner) SaveBlock(b region.Block, confirm region.ConfirmFunc) (bool, error) {
	replaced, err := p.catalog.Save(b, confirm)
	if err != nil {
		return false, err
	}
	p.rebuildRouter()
	return replaced, nil
}

// RemoveBlock deletes a block by name.
func (p *Planner) RemoveBlock(name string) bool {
	if !p.catalog.Remove(name) {
		return false
	}
	p.rebuildRouter()
	return true
}

// HallFor returns the first hall containing the cell.
func (p *Planner) HallFor(c grid.Coord) (region.Hall, bool) {
	return p.classifier.HallAt(c)
}

// Locate returns the cell of a block slot.
func (p *Planner) Locate(block string, number int) (grid.Coord, error) {
	return p.catalog.Locate(block, number)
}

// VisitPointFor builds the visit point an item would be routed to.
func (p *Planner) VisitPointFor(it item.Item) (route.Point, error) {
	if it.Block == "" || it.Number <= 0 {
		return route.Point{}, fmt.Errorf("%s: %w", it.ID, ErrNoLocation)
	}
	at, err := p.catalog.Locate(it.Block, it.Number)
	if err != nil {
		return route.Point{}, fmt.Errorf("%s: %w: %v", it.ID, ErrNoLocation, err)
	}
	label := it.Location()
	return route.Point{
		ID:        "vp-" + it.ID,
		EventDate: it.EventDate,
		Label:     label,
		Block:     it.Block,
		Number:    it.Number,
		At:        at,
		ItemIDs:   []string{it.ID},
	}, nil
}

// MarkVisit adds the item's slot to the route of its date. An item whose
// slot already has a point joins that point.
func (p *Planner) MarkVisit(itemID string) (route.Point, error) {
	i, err := p.items.Find(itemID)
	if err != nil {
		return route.Point{}, err
	}
	it := p.items[i]
	vp, err := p.VisitPointFor(it)
	if err != nil {
		return route.Point{}, err
	}
	plan := p.book.Plan(it.EventDate)
	for _, pt := range plan.Points() {
		for _, id := range pt.ItemIDs {
			if id == itemID {
				return pt, nil
			}
		}
	}
	return plan.Add(vp)
}

// UnmarkVisit detaches the item from its date's route. A point left with
// no items is removed.
func (p *Planner) UnmarkVisit(itemID string) bool {
	i, err := p.items.Find(itemID)
	if err != nil {
		return false
	}
	return p.book.Plan(p.items[i].EventDate).DetachItem(itemID)
}

// RegionOf resolves the hall id of a visit entry from its block slot.
func (p *Planner) RegionOf(e visitlist.Entry) string {
	if e.Region != "" {
		return e.Region
	}
	at, err := p.catalog.Locate(e.Block, e.Number)
	if err != nil {
		return ""
	}
	h, ok := p.classifier.HallAt(at)
	if !ok {
		return ""
	}
	return h.ID
}

// Layout returns the grouping rules for visit lists on this map.
func (p *Planner) Layout() visitlist.Layout {
	return visitlist.Layout{
		GroupOrder: p.opts.GroupOrder,
		Regions:    p.classifier.IDs(),
		RegionOf:   p.RegionOf,
	}
}

// Entries returns the visit list entries of a date. Items on the date's
// route come first in visit order, followed by the rest in list order.
func (p *Planner) Entries(date string) []visitlist.Entry {
	items := p.items.ByDate(date)
	placed := make(map[string]bool, len(items))
	var out []visitlist.Entry
	add := func(it item.Item) {
		if placed[it.ID] {
			return
		}
		placed[it.ID] = true
		out = append(out, visitlist.Entry{
			ID:        it.ID,
			Label:     it.Location(),
			Block:     it.Block,
			Number:    it.Number,
			EventDate: it.EventDate,
			Priority:  it.Priority,
		})
	}
	for _, pt := range p.book.Plan(date).Points() {
		for _, id := range pt.ItemIDs {
			if i, err := items.Find(id); err == nil {
				add(items[i])
			}
		}
	}
	for _, it := range items {
		add(it)
	}
	return out
}

// Session opens a visit list editing session for a date.
func (p *Planner) Session(date string) *visitlist.Session {
	return visitlist.NewSession(p.Layout(), p.Entries(date))
}

// ApplyOrder reorders a date's route to follow a confirmed visit list.
// Points not reached by any entry keep their relative order at the end.
func (p *Planner) ApplyOrder(date string, entries []visitlist.Entry) error {
	plan := p.book.Plan(date)
	byItem := make(map[string]string)
	for _, pt := range plan.Points() {
		for _, id := range pt.ItemIDs {
			byItem[id] = pt.ID
		}
	}
	seen := make(map[string]bool)
	var ids []string
	for _, e := range entries {
		if id, ok := byItem[e.ID]; ok && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, pt := range plan.Points() {
		if !seen[pt.ID] {
			ids = append(ids, pt.ID)
		}
	}
	return plan.Reorder(ids)
}

// Route computes the walk between consecutive visit points of a date.
func (p *Planner) Route(date string) Route {
	plan := p.book.Plan(date)
	segments := pathfinding.GenerateRouteSegments(p.router, plan.Stops(), p.opts.Tolerance)
	cost, unreachable := pathfinding.TotalCost(segments)
	return Route{
		Date:        date,
		Points:      plan.Points(),
		Segments:    segments,
		Cost:        cost,
		Unreachable: unreachable,
	}
}

// Scene returns everything needed to draw a date's route.
func (p *Planner) Scene(date string) canvas.Scene {
	r := p.Route(date)
	title := p.title
	if date != "" {
		if title != "" {
			title += " "
		}
		title += date
	}
	return canvas.Scene{
		Title:    title,
		Grid:     p.grid,
		Halls:    p.Halls(),
		Blocks:   p.Blocks(),
		Stops:    p.book.Plan(date).Stops(),
		Segments: r.Segments,
	}
}

// Validate checks halls, blocks and items against the map.
func (p *Planner) Validate() []validation.ValidationError {
	v := validation.NewLayoutValidator()
	v.SetStrictMode(p.opts.Strict)
	v.SetMaxSlot(p.opts.Detect.MaxSlot)
	errs := v.Validate(p.grid, p.Halls(), p.Blocks())
	return append(errs, v.ValidateItems(p.items, p.catalog)...)
}

func (p *Planner) rebuildRouter() {
	finder := pathfinding.NewFinder(p.grid, p.catalog.LabelCells(), p.opts.Costs)
	if p.opts.MaxIterations > 0 {
		finder.SetMaxIterations(p.opts.MaxIterations)
	}
	p.router = pathfinding.NewCachedRouter(finder, p.opts.CacheSize)
}
