// Package item holds the shopping list entries that visit points refer to.
package item

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownStatus   = errors.New("unknown purchase status")
	ErrUnknownPriority = errors.New("unknown priority tier")
	ErrNotFound        = errors.New("item not found")
	ErrInvalidItem     = errors.New("invalid item")
)

// Status is the purchase state of an item.
type Status string

const (
	StatusNone      Status = "none"
	StatusPurchased Status = "purchased"
	StatusSoldOut   Status = "sold-out"
	StatusAbsent    Status = "absent"
	StatusPostponed Status = "postponed"
	StatusLate      Status = "late"
)

// statusCycle is the order Next walks through.
var statusCycle = []Status{
	StatusNone,
	StatusPurchased,
	StatusSoldOut,
	StatusAbsent,
	StatusPostponed,
	StatusLate,
}

// Statuses returns every status in cycle order.
func Statuses() []Status {
	out := make([]Status, len(statusCycle))
	copy(out, statusCycle)
	return out
}

// ParseStatus converts a string to a Status. The empty string is StatusNone.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return StatusNone, nil
	case "purchased", "bought":
		return StatusPurchased, nil
	case "sold-out", "soldout", "sold_out":
		return StatusSoldOut, nil
	case "absent":
		return StatusAbsent, nil
	case "postponed":
		return StatusPostponed, nil
	case "late":
		return StatusLate, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownStatus)
	}
}

// Next returns the following status in the fixed cycle. Any status is
// reachable from any other by repeated calls. The zero value counts as
// StatusNone.
func (s Status) Next() Status {
	if s == "" {
		s = StatusNone
	}
	for i, st := range statusCycle {
		if st == s {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return StatusNone
}

// Done reports whether the item needs no further visit.
func (s Status) Done() bool {
	return s == StatusPurchased || s == StatusSoldOut
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Priority is the tier an entry is grouped under within its region.
type Priority string

const (
	PriorityNone     Priority = ""
	PriorityPriority Priority = "priority"
	PriorityHighest  Priority = "highest"
)

// ParsePriority converts a string to a Priority.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return PriorityNone, nil
	case "priority":
		return PriorityPriority, nil
	case "highest":
		return PriorityHighest, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownPriority)
	}
}

// Rank orders tiers: highest first, then priority, then none.
func (p Priority) Rank() int {
	switch p {
	case PriorityHighest:
		return 0
	case PriorityPriority:
		return 1
	default:
		return 2
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Priority) UnmarshalText(text []byte) error {
	parsed, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Item is one thing to buy or visit at the event.
type Item struct {
	ID        string   `json:"id"`
	Circle    string   `json:"circle"`
	EventDate string   `json:"eventDate"`
	Block     string   `json:"block"`
	Number    int      `json:"number"`
	Price     *int     `json:"price,omitempty"` // nil while undetermined
	Status    Status   `json:"status,omitempty"`
	Quantity  int      `json:"quantity,omitempty"`
	Remarks   string   `json:"remarks,omitempty"`
	Priority  Priority `json:"priority,omitempty"`
	URL       string   `json:"url,omitempty"`
}

// Validate checks the fields an item must carry.
func (it Item) Validate() error {
	switch {
	case it.ID == "":
		return fmt.Errorf("missing id: %w", ErrInvalidItem)
	case it.Quantity < 0:
		return fmt.Errorf("%s: negative quantity: %w", it.ID, ErrInvalidItem)
	case it.Price != nil && *it.Price < 0:
		return fmt.Errorf("%s: negative price: %w", it.ID, ErrInvalidItem)
	}
	return nil
}

// Location is the block-number label shown for the item, e.g. "ア-12".
func (it Item) Location() string {
	if it.Block == "" {
		return ""
	}
	if it.Number <= 0 {
		return it.Block
	}
	return it.Block + "-" + strconv.Itoa(it.Number)
}

// Count is the quantity with the unset value treated as one.
func (it Item) Count() int {
	if it.Quantity <= 0 {
		return 1
	}
	return it.Quantity
}

// SetPrice sets a determined price.
func (it *Item) SetPrice(yen int) {
	it.Price = &yen
}

// ClearPrice marks the price undetermined.
func (it *Item) ClearPrice() {
	it.Price = nil
}

// Subtotal returns price times count, and false while the price is
// undetermined.
func (it Item) Subtotal() (int, bool) {
	if it.Price == nil {
		return 0, false
	}
	return *it.Price * it.Count(), true
}

// Items is an ordered item list.
type Items []Item

// Find returns the index of the item with the given id.
func (items Items) Find(id string) (int, error) {
	for i := range items {
		if items[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%s: %w", id, ErrNotFound)
}

// ByDate returns the items of one event date, keeping their order.
func (items Items) ByDate(date string) Items {
	var out Items
	for _, it := range items {
		if it.EventDate == date {
			out = append(out, it)
		}
	}
	return out
}

// CycleStatus advances the status of one item and returns the new value.
func (items Items) CycleStatus(id string) (Status, error) {
	i, err := items.Find(id)
	if err != nil {
		return "", err
	}
	items[i].Status = items[i].Status.Next()
	return items[i].Status, nil
}

// Total sums the determined subtotals. Items with an undetermined price are
// counted instead.
func (items Items) Total() (sum int, undetermined int) {
	for _, it := range items {
		if v, ok := it.Subtotal(); ok {
			sum += v
		} else {
			undetermined++
		}
	}
	return sum, undetermined
}
