package pathfinding

import (
	"evnav/geometry"
	"evnav/grid"
)

// Stop is a visit point handed to the segment generator.
type Stop struct {
	ID string
	At grid.Coord
}

// Segment is the walk between two consecutive stops.
type Segment struct {
	FromID     string       `json:"fromId"`
	ToID       string       `json:"toId"`
	From       grid.Coord   `json:"from"`
	To         grid.Coord   `json:"to"`
	Path       []grid.Coord `json:"path"`
	Simplified []grid.Coord `json:"simplified"`
	Found      bool         `json:"found"`
	Cost       float64      `json:"cost"`
}

// GenerateRouteSegments runs the router over each consecutive pair of stops
// and simplifies every path with the given tolerance. Fewer than two stops
// yield no segments.
func GenerateRouteSegments(router Router, stops []Stop, tolerance float64) []Segment {
	if len(stops) < 2 {
		return nil
	}
	segments := make([]Segment, 0, len(stops)-1)
	for i := 1; i < len(stops); i++ {
		from, to := stops[i-1], stops[i]
		r := router.FindPath(from.At, to.At)
		segments = append(segments, Segment{
			FromID:     from.ID,
			ToID:       to.ID,
			From:       from.At,
			To:         to.At,
			Path:       r.Points,
			Simplified: geometry.Simplify(r.Points, tolerance),
			Found:      r.Found,
			Cost:       r.Cost,
		})
	}
	return segments
}

// TotalCost sums the cost of every segment that found a real path, and
// counts the ones that fell back to a straight line.
func TotalCost(segments []Segment) (cost float64, unreachable int) {
	for _, s := range segments {
		if !s.Found {
			unreachable++
			continue
		}
		cost += s.Cost
	}
	return cost, unreachable
}
