// Package route keeps the visit points of each event date in a dense order.
package route

import (
	"errors"
	"fmt"
	"sort"

	"evnav/grid"
	"evnav/pathfinding"
)

var (
	ErrDuplicatePoint = errors.New("duplicate visit point")
	ErrPointNotFound  = errors.New("visit point not found")
	ErrDateMismatch   = errors.New("visit point belongs to another date")
	ErrIndexRange     = errors.New("order index out of range")
)

// Point is a grid cell the user intends to visit.
type Point struct {
	ID        string     `json:"id"`
	EventDate string     `json:"eventDate"`
	Label     string     `json:"label"` // Block-number label, e.g. "ア-12"
	Block     string     `json:"block,omitempty"`
	Number    int        `json:"number,omitempty"`
	At        grid.Coord `json:"at"`
	ItemIDs   []string   `json:"itemIds,omitempty"`
	Order     int        `json:"order"`
}

func (p Point) clone() Point {
	p.ItemIDs = append([]string(nil), p.ItemIDs...)
	return p
}

// Plan is the ordered route of one event date. Orders are always 0..n-1.
type Plan struct {
	date   string
	points []Point
}

// NewPlan builds a plan from stored points. Stored orders only decide the
// sequence; they are renumbered densely.
func NewPlan(date string, points ...Point) (*Plan, error) {
	pl := &Plan{date: date}
	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	seen := make(map[string]bool, len(sorted))
	for _, p := range sorted {
		if p.EventDate != date {
			return nil, fmt.Errorf("%s on %s: %w", p.ID, p.EventDate, ErrDateMismatch)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("%s: %w", p.ID, ErrDuplicatePoint)
		}
		seen[p.ID] = true
		pl.points = append(pl.points, p.clone())
	}
	pl.renumber()
	return pl, nil
}

// Date returns the event date of the plan.
func (pl *Plan) Date() string { return pl.date }

// Len returns the number of points.
func (pl *Plan) Len() int { return len(pl.points) }

// Points returns a copy of the points in visit order.
func (pl *Plan) Points() []Point {
	out := make([]Point, len(pl.points))
	for i, p := range pl.points {
		out[i] = p.clone()
	}
	return out
}

// Coords returns the cells of the points in visit order.
func (pl *Plan) Coords() []grid.Coord {
	out := make([]grid.Coord, len(pl.points))
	for i, p := range pl.points {
		out[i] = p.At
	}
	return out
}

// Stops converts the plan for segment generation.
func (pl *Plan) Stops() []pathfinding.Stop {
	out := make([]pathfinding.Stop, len(pl.points))
	for i, p := range pl.points {
		out[i] = pathfinding.Stop{ID: p.ID, At: p.At}
	}
	return out
}

// Find returns the point with the given id.
func (pl *Plan) Find(id string) (Point, bool) {
	i := pl.index(id)
	if i < 0 {
		return Point{}, false
	}
	return pl.points[i].clone(), true
}

// PointAt returns the point placed on a cell.
func (pl *Plan) PointAt(c grid.Coord) (Point, bool) {
	for _, p := range pl.points {
		if p.At == c {
			return p.clone(), true
		}
	}
	return Point{}, false
}

// Add appends a point to the end of the route. Marking a cell that already
// has a point attaches the items to that point instead, whatever its id.
func (pl *Plan) Add(p Point) (Point, error) {
	if p.EventDate != pl.date {
		return Point{}, fmt.Errorf("%s on %s: %w", p.ID, p.EventDate, ErrDateMismatch)
	}
	for i := range pl.points {
		if pl.points[i].At == p.At {
			pl.points[i].ItemIDs = appendMissing(pl.points[i].ItemIDs, p.ItemIDs...)
			return pl.points[i].clone(), nil
		}
	}
	if pl.index(p.ID) >= 0 {
		return Point{}, fmt.Errorf("%s: %w", p.ID, ErrDuplicatePoint)
	}
	p = p.clone()
	p.Order = len(pl.points)
	pl.points = append(pl.points, p)
	return p.clone(), nil
}

// Remove deletes a point and closes the gap in the order.
func (pl *Plan) Remove(id string) error {
	i := pl.index(id)
	if i < 0 {
		return fmt.Errorf("%s: %w", id, ErrPointNotFound)
	}
	pl.points = append(pl.points[:i], pl.points[i+1:]...)
	pl.renumber()
	return nil
}

// DetachItem removes an item from whichever point carries it. A point left
// without items is removed. It reports whether anything changed.
func (pl *Plan) DetachItem(itemID string) bool {
	for i := range pl.points {
		ids := pl.points[i].ItemIDs
		for j, id := range ids {
			if id != itemID {
				continue
			}
			pl.points[i].ItemIDs = append(ids[:j:j], ids[j+1:]...)
			if len(pl.points[i].ItemIDs) == 0 {
				pl.points = append(pl.points[:i], pl.points[i+1:]...)
				pl.renumber()
			}
			return true
		}
	}
	return false
}

// Move places the point with the given id at position to.
func (pl *Plan) Move(id string, to int) error {
	from := pl.index(id)
	if from < 0 {
		return fmt.Errorf("%s: %w", id, ErrPointNotFound)
	}
	if to < 0 || to >= len(pl.points) {
		return fmt.Errorf("move to %d of %d: %w", to, len(pl.points), ErrIndexRange)
	}
	p := pl.points[from]
	pl.points = append(pl.points[:from], pl.points[from+1:]...)
	pl.points = append(pl.points[:to], append([]Point{p}, pl.points[to:]...)...)
	pl.renumber()
	return nil
}

// Swap exchanges the points at two positions.
func (pl *Plan) Swap(i, j int) error {
	if err := pl.checkRange(i, j); err != nil {
		return err
	}
	pl.points[i], pl.points[j] = pl.points[j], pl.points[i]
	pl.renumber()
	return nil
}

// ReverseRange reverses the points between two positions, inclusive. The
// bounds may be given in either order.
func (pl *Plan) ReverseRange(i, j int) error {
	if err := pl.checkRange(i, j); err != nil {
		return err
	}
	if i > j {
		i, j = j, i
	}
	for ; i < j; i, j = i+1, j-1 {
		pl.points[i], pl.points[j] = pl.points[j], pl.points[i]
	}
	pl.renumber()
	return nil
}

// Reorder replaces the sequence with the given ids, which must name every
// point exactly once.
func (pl *Plan) Reorder(ids []string) error {
	if len(ids) != len(pl.points) {
		return fmt.Errorf("reorder with %d of %d points: %w", len(ids), len(pl.points), ErrIndexRange)
	}
	next := make([]Point, 0, len(ids))
	used := make(map[string]bool, len(ids))
	for _, id := range ids {
		i := pl.index(id)
		if i < 0 {
			return fmt.Errorf("%s: %w", id, ErrPointNotFound)
		}
		if used[id] {
			return fmt.Errorf("%s: %w", id, ErrDuplicatePoint)
		}
		used[id] = true
		next = append(next, pl.points[i])
	}
	pl.points = next
	pl.renumber()
	return nil
}

func (pl *Plan) checkRange(i, j int) error {
	n := len(pl.points)
	if i < 0 || j < 0 || i >= n || j >= n {
		return fmt.Errorf("positions %d, %d of %d: %w", i, j, n, ErrIndexRange)
	}
	return nil
}

func (pl *Plan) index(id string) int {
	for i := range pl.points {
		if pl.points[i].ID == id {
			return i
		}
	}
	return -1
}

// renumber restores the dense 0-based order.
func (pl *Plan) renumber() {
	for i := range pl.points {
		pl.points[i].Order = i
	}
}

func appendMissing(ids []string, more ...string) []string {
	for _, m := range more {
		found := false
		for _, id := range ids {
			if id == m {
				found = true
				break
			}
		}
		if !found {
			ids = append(ids, m)
		}
	}
	return ids
}
