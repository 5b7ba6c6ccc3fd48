// Package visitlist edits the ordered list of visit entries.
//
// Entries are shown grouped by hall and priority tier. Every edit works on
// that grouped view and commits the flattened result, so the flat order is
// always the concatenation of the groups in display order.
package visitlist

import (
	"strings"

	"github.com/zyedidia/generic/mapset"

	"evnav/item"
)

// Unregioned is the region key of entries outside every hall.
const Unregioned = "unregioned"

// Entry is one row of the visit list.
type Entry struct {
	ID        string        `json:"id"`
	Label     string        `json:"label,omitempty"`
	Block     string        `json:"block,omitempty"`
	Number    int           `json:"number,omitempty"`
	EventDate string        `json:"eventDate,omitempty"`
	Priority  item.Priority `json:"priority,omitempty"`
	Region    string        `json:"region,omitempty"` // Resolved hall id, empty when outside every hall
	Group     GroupID       `json:"group,omitempty"`  // Set by cross-group moves, overrides the derived group
}

// GroupID is "region" or "region:tier".
type GroupID string

// MakeGroupID builds the group key for a region and tier.
func MakeGroupID(region string, tier item.Priority) GroupID {
	if region == "" {
		region = Unregioned
	}
	if tier == item.PriorityNone {
		return GroupID(region)
	}
	return GroupID(region + ":" + string(tier))
}

// Region returns the region part of the key.
func (g GroupID) Region() string {
	region, _ := g.split()
	return region
}

// Tier returns the priority tier part of the key.
func (g GroupID) Tier() item.Priority {
	_, tier := g.split()
	return tier
}

func (g GroupID) split() (string, item.Priority) {
	s := string(g)
	i := strings.LastIndex(s, ":")
	if i < 0 {
		return s, item.PriorityNone
	}
	tier, err := item.ParsePriority(s[i+1:])
	if err != nil {
		return s, item.PriorityNone
	}
	return s[:i], tier
}

// Group is one section of the grouped view.
type Group struct {
	ID      GroupID
	Entries []Entry
}

// Layout decides which group an entry belongs to and the order groups are
// shown in.
type Layout struct {
	// GroupOrder is an explicit display order. Groups named here come first.
	GroupOrder []GroupID
	// Regions are the hall ids in definition order.
	Regions []string
	// RegionOf resolves the hall of an entry. Nil uses Entry.Region.
	RegionOf func(Entry) string
}

// tierOrder is the order tiers are listed within a region.
var tierOrder = []item.Priority{item.PriorityHighest, item.PriorityPriority, item.PriorityNone}

// derived returns the group an entry falls in without any override.
func (l Layout) derived(e Entry) GroupID {
	region := e.Region
	if l.RegionOf != nil {
		region = l.RegionOf(e)
	}
	return MakeGroupID(region, e.Priority)
}

// GroupOf returns the group of an entry.
func (l Layout) GroupOf(e Entry) GroupID {
	if e.Group != "" {
		return e.Group
	}
	return l.derived(e)
}

// Groups splits entries into groups in display order:
//  1. groups named in GroupOrder
//  2. groups of each defined region, highest tier first
//  3. remaining tiered groups, in order of first appearance
//  4. remaining untiered groups, with the unregioned bucket last
//
// Within a group the relative order of entries is kept. Empty groups are
// omitted.
func (l Layout) Groups(entries []Entry) []Group {
	byID := make(map[GroupID]*Group)
	var appearance []GroupID
	for _, e := range entries {
		id := l.GroupOf(e)
		g, ok := byID[id]
		if !ok {
			g = &Group{ID: id}
			byID[id] = g
			appearance = append(appearance, id)
		}
		g.Entries = append(g.Entries, e)
	}

	placed := mapset.New[GroupID]()
	out := make([]Group, 0, len(byID))
	place := func(id GroupID) {
		g, ok := byID[id]
		if !ok || placed.Has(id) {
			return
		}
		placed.Put(id)
		out = append(out, *g)
	}

	for _, id := range l.GroupOrder {
		place(id)
	}
	for _, region := range l.Regions {
		for _, tier := range tierOrder {
			place(MakeGroupID(region, tier))
		}
	}
	for _, id := range appearance {
		if id.Tier() != item.PriorityNone {
			place(id)
		}
	}
	for _, id := range appearance {
		if id != GroupID(Unregioned) {
			place(id)
		}
	}
	place(GroupID(Unregioned))
	return out
}

// Normalize returns entries in grouped display order.
func (l Layout) Normalize(entries []Entry) []Entry {
	return flatten(l.Groups(entries))
}

func flatten(groups []Group) []Entry {
	var out []Entry
	for _, g := range groups {
		out = append(out, g.Entries...)
	}
	return out
}

func findGroup(groups []Group, id GroupID) int {
	for i := range groups {
		if groups[i].ID == id {
			return i
		}
	}
	return -1
}
