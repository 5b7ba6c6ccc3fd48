package route

import "sort"

// Book holds one plan per event date.
type Book struct {
	plans map[string]*Plan
}

// NewBook groups stored points by date into plans.
func NewBook(points []Point) (*Book, error) {
	byDate := make(map[string][]Point)
	for _, p := range points {
		byDate[p.EventDate] = append(byDate[p.EventDate], p)
	}
	b := &Book{plans: make(map[string]*Plan, len(byDate))}
	for date, pts := range byDate {
		pl, err := NewPlan(date, pts...)
		if err != nil {
			return nil, err
		}
		b.plans[date] = pl
	}
	return b, nil
}

// Plan returns the plan for a date, creating an empty one when needed.
func (b *Book) Plan(date string) *Plan {
	pl, ok := b.plans[date]
	if !ok {
		pl = &Plan{date: date}
		b.plans[date] = pl
	}
	return pl
}

// Dates returns the dates that have at least one point, sorted.
func (b *Book) Dates() []string {
	var dates []string
	for d, pl := range b.plans {
		if pl.Len() > 0 {
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)
	return dates
}

// All returns every point, grouped by date in date order.
func (b *Book) All() []Point {
	var out []Point
	for _, d := range b.Dates() {
		out = append(out, b.plans[d].Points()...)
	}
	return out
}
