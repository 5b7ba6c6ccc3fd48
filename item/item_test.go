package item

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestStatusNextCycle(t *testing.T) {
	tests := []struct {
		from Status
		want Status
	}{
		{StatusNone, StatusPurchased},
		{StatusPurchased, StatusSoldOut},
		{StatusSoldOut, StatusAbsent},
		{StatusAbsent, StatusPostponed},
		{StatusPostponed, StatusLate},
		{StatusLate, StatusNone},
		{Status(""), StatusPurchased},
		{Status("bogus"), StatusNone},
	}

	for _, tt := range tests {
		if got := tt.from.Next(); got != tt.want {
			t.Errorf("%q.Next() = %q, want %q", tt.from, got, tt.want)
		}
	}
}

func TestStatusEveryStatusReachable(t *testing.T) {
	for _, from := range Statuses() {
		seen := map[Status]bool{}
		s := from
		for i := 0; i < len(Statuses()); i++ {
			seen[s] = true
			s = s.Next()
		}
		if len(seen) != len(Statuses()) {
			t.Errorf("from %q only reached %d statuses", from, len(seen))
		}
		if s != from {
			t.Errorf("cycle from %q did not return to start", from)
		}
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"", StatusNone, false},
		{"Purchased", StatusPurchased, false},
		{"soldout", StatusSoldOut, false},
		{" late ", StatusLate, false},
		{"lost", "", true},
	}

	for _, tt := range tests {
		got, err := ParseStatus(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStatus(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnknownStatus) {
			t.Errorf("ParseStatus(%q) error should wrap ErrUnknownStatus", tt.input)
		}
		if got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPriorityRank(t *testing.T) {
	if !(PriorityHighest.Rank() < PriorityPriority.Rank() && PriorityPriority.Rank() < PriorityNone.Rank()) {
		t.Error("tiers should rank highest, priority, none")
	}
	if _, err := ParsePriority("urgent"); !errors.Is(err, ErrUnknownPriority) {
		t.Errorf("expected ErrUnknownPriority, got %v", err)
	}
}

func TestItemJSON(t *testing.T) {
	data := `[
		{"id": "a", "circle": "Alpha", "block": "ア", "number": 12, "price": 500, "quantity": 2, "status": "sold-out"},
		{"id": "b", "circle": "Beta", "priority": "highest"}
	]`
	var items Items
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		t.Fatal(err)
	}
	if items[0].Status != StatusSoldOut || items[0].Location() != "ア-12" {
		t.Errorf("first item = %+v", items[0])
	}
	if items[1].Price != nil || items[1].Priority != PriorityHighest {
		t.Errorf("second item = %+v", items[1])
	}

	bad := `[{"id": "c", "status": "lost"}]`
	if err := json.Unmarshal([]byte(bad), &items); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("expected ErrUnknownStatus, got %v", err)
	}
}

func TestItemsTotal(t *testing.T) {
	items := Items{
		{ID: "a", Quantity: 2},
		{ID: "b"},
		{ID: "c", Quantity: 3},
	}
	items[0].SetPrice(500)
	items[1].SetPrice(0)

	sum, undetermined := items.Total()
	if sum != 1000 || undetermined != 1 {
		t.Errorf("Total() = %d, %d; want 1000, 1", sum, undetermined)
	}

	items[0].ClearPrice()
	if sum, undetermined = items.Total(); sum != 0 || undetermined != 2 {
		t.Errorf("after ClearPrice Total() = %d, %d", sum, undetermined)
	}
}

func TestItemsCycleStatus(t *testing.T) {
	items := Items{{ID: "a"}, {ID: "b", Status: StatusLate}}

	if s, err := items.CycleStatus("b"); err != nil || s != StatusNone {
		t.Errorf("CycleStatus(b) = %q, %v", s, err)
	}
	if _, err := items.CycleStatus("z"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestItemValidate(t *testing.T) {
	neg := -1
	tests := []struct {
		name    string
		item    Item
		wantErr bool
	}{
		{"ok", Item{ID: "a"}, false},
		{"no id", Item{}, true},
		{"negative quantity", Item{ID: "a", Quantity: -2}, true},
		{"negative price", Item{ID: "a", Price: &neg}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.item.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
