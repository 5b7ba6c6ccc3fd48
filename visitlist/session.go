package visitlist

import (
	"errors"
	"fmt"

	"evnav/notice"
)

var (
	ErrCrossGroup   = errors.New("entries are in different groups")
	ErrUnknownGroup = errors.New("unknown group")
	ErrUnknownEntry = errors.New("unknown entry")
	ErrIndexRange   = errors.New("index out of range")
)

// EndOfList as a drop index appends to the target group.
const EndOfList = -1

// Half is the part of the target entry a dragged entry was dropped on.
type Half int

const (
	UpperHalf Half = iota // Insert before the target
	LowerHalf             // Insert after the target
)

// selection is a pending range start.
type selection struct {
	group GroupID
	index int
}

// Session is one editing session over a visit list. It is not safe for
// concurrent use.
type Session struct {
	layout   Layout
	entries  []Entry
	original []Entry
	history  *History
	pending  *selection
	notice   string
}

// NewSession starts editing entries. The list is put in grouped order and
// that order becomes the baseline for Cancel and the first history entry.
func NewSession(layout Layout, entries []Entry) *Session {
	normalized := layout.Normalize(entries)
	s := &Session{
		layout:   layout,
		entries:  normalized,
		original: cloneEntries(normalized),
		history:  NewHistory(HistoryCapacity),
	}
	s.history.Save(normalized)
	return s
}

// Entries returns the current list in order.
func (s *Session) Entries() []Entry {
	return cloneEntries(s.entries)
}

// Groups returns the grouped view of the current list.
func (s *Session) Groups() []Group {
	return s.layout.Groups(s.entries)
}

// History exposes the undo log.
func (s *Session) History() *History {
	return s.history
}

// Notice is the user-facing message left by the last operation, if any.
func (s *Session) Notice() string {
	return s.notice
}

// MoveWithinGroup moves the entry at index from to index to inside a group.
// Moving an entry onto itself records nothing.
func (s *Session) MoveWithinGroup(group GroupID, from, to int) error {
	groups := s.Groups()
	gi, err := s.lookup(groups, group, from, to)
	if err != nil {
		return err
	}
	if from == to {
		return nil
	}
	list := groups[gi].Entries
	e := list[from]
	list = append(list[:from:from], list[from+1:]...)
	list = append(list[:to:to], append([]Entry{e}, list[to:]...)...)
	groups[gi].Entries = list
	s.commit(flatten(groups))
	return nil
}

// SwapWithinGroup exchanges two entries of a group.
func (s *Session) SwapWithinGroup(group GroupID, i, j int) error {
	groups := s.Groups()
	gi, err := s.lookup(groups, group, i, j)
	if err != nil {
		return err
	}
	if i == j {
		return nil
	}
	list := cloneEntries(groups[gi].Entries)
	list[i], list[j] = list[j], list[i]
	groups[gi].Entries = list
	s.commit(flatten(groups))
	return nil
}

// Swap exchanges two entries by id. Entries of different groups are not
// swapped.
func (s *Session) Swap(idA, idB string) error {
	groups := s.Groups()
	ga, ia, err := s.locate(groups, idA)
	if err != nil {
		return err
	}
	gb, ib, err := s.locate(groups, idB)
	if err != nil {
		return err
	}
	if ga != gb {
		return s.reject(fmt.Errorf("swap %s with %s: %w", idA, idB, ErrCrossGroup), notice.CrossGroupSwap)
	}
	return s.SwapWithinGroup(groups[ga].ID, ia, ib)
}

// ReverseRange reverses the entries between two indices of a group,
// inclusive, in either order. Any pending range selection is cleared. A
// single-entry range changes nothing and is not recorded.
func (s *Session) ReverseRange(group GroupID, i, j int) error {
	groups := s.Groups()
	gi, err := s.lookup(groups, group, i, j)
	if err != nil {
		return err
	}
	s.pending = nil
	if i == j {
		return nil
	}
	if i > j {
		i, j = j, i
	}
	list := cloneEntries(groups[gi].Entries)
	for ; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	groups[gi].Entries = list
	s.commit(flatten(groups))
	return nil
}

// SelectRange marks one end of a range. The first call records the start;
// the second reverses the range and reports done. A second end in another
// group is rejected and the start is kept.
func (s *Session) SelectRange(group GroupID, index int) (done bool, err error) {
	groups := s.Groups()
	if _, err := s.lookup(groups, group, index, index); err != nil {
		return false, err
	}
	if s.pending == nil {
		s.pending = &selection{group: group, index: index}
		s.notice = notice.Text(notice.RangeStarted)
		return false, nil
	}
	if s.pending.group != group {
		return false, s.reject(fmt.Errorf("range %s to %s: %w", s.pending.group, group, ErrCrossGroup), notice.CrossGroupRange)
	}
	if err := s.ReverseRange(group, s.pending.index, index); err != nil {
		return false, err
	}
	return true, nil
}

// PendingRange returns the recorded range start, if any.
func (s *Session) PendingRange() (GroupID, int, bool) {
	if s.pending == nil {
		return "", 0, false
	}
	return s.pending.group, s.pending.index, true
}

// ClearSelection drops a pending range start.
func (s *Session) ClearSelection() {
	s.pending = nil
}

// MoveAcrossGroups drops the entry id onto the entry at index at of the
// target group. Dropping on the upper half inserts before that entry, the
// lower half after it. EndOfList appends. The entry joins the target group.
func (s *Session) MoveAcrossGroups(id string, target GroupID, at int, half Half) error {
	src := s.indexOf(id)
	if src < 0 {
		return s.reject(fmt.Errorf("%s: %w", id, ErrUnknownEntry), notice.UnknownEntry, id)
	}

	var anchor string
	if at != EndOfList {
		groups := s.Groups()
		gi := findGroup(groups, target)
		if gi < 0 || at < 0 || at >= len(groups[gi].Entries) {
			return s.reject(fmt.Errorf("drop at %d in %s: %w", at, target, ErrIndexRange), notice.InvalidPosition, at)
		}
		anchor = groups[gi].Entries[at].ID
		if anchor == id {
			return nil
		}
	}

	moved := s.entries[src]
	moved.Group = ""
	if s.layout.derived(moved) != target {
		moved.Group = target
	}
	rest := make([]Entry, 0, len(s.entries))
	rest = append(rest, s.entries[:src]...)
	rest = append(rest, s.entries[src+1:]...)

	pos := len(rest)
	if anchor != "" {
		for i, e := range rest {
			if e.ID == anchor {
				pos = i
				if half == LowerHalf {
					pos = i + 1
				}
				break
			}
		}
	} else {
		for i, e := range rest {
			if s.layout.GroupOf(e) == target {
				pos = i + 1
			}
		}
	}

	next := make([]Entry, 0, len(s.entries))
	next = append(next, rest[:pos]...)
	next = append(next, moved)
	next = append(next, rest[pos:]...)
	s.commit(next)
	s.notice = notice.Text(notice.CrossGroupMove, labelOf(moved), target)
	return nil
}

// AssignGroup moves an entry to the end of another group.
func (s *Session) AssignGroup(id string, target GroupID) error {
	return s.MoveAcrossGroups(id, target, EndOfList, LowerHalf)
}

// ClearGroup returns an entry to the group its hall and tier give it,
// placing it at the end of that group.
func (s *Session) ClearGroup(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return s.reject(fmt.Errorf("%s: %w", id, ErrUnknownEntry), notice.UnknownEntry, id)
	}
	e := s.entries[i]
	if e.Group == "" {
		return nil
	}
	e.Group = ""
	return s.AssignGroup(id, s.layout.derived(e))
}

// Undo restores the previous snapshot. It is a no-op at the start of the
// history.
func (s *Session) Undo() bool {
	entries, ok := s.history.Undo()
	if ok {
		s.entries = entries
		s.pending = nil
	}
	return ok
}

// Redo reapplies an undone snapshot. It is a no-op at the end of the
// history.
func (s *Session) Redo() bool {
	entries, ok := s.history.Redo()
	if ok {
		s.entries = entries
		s.pending = nil
	}
	return ok
}

// Confirm ends the session's edits: the current list becomes the baseline
// and history collapses to it.
func (s *Session) Confirm() []Entry {
	s.original = cloneEntries(s.entries)
	s.history.Reset(s.entries)
	s.pending = nil
	return s.Entries()
}

// Cancel restores the list from the start of the session (or the last
// Confirm) and discards all history.
func (s *Session) Cancel() []Entry {
	s.entries = cloneEntries(s.original)
	s.history.Reset(s.entries)
	s.pending = nil
	return s.Entries()
}

// commit puts next in grouped order, makes it current and records it.
func (s *Session) commit(next []Entry) {
	s.entries = s.layout.Normalize(next)
	s.history.Save(s.entries)
	s.notice = ""
}

// reject leaves state untouched and records the notice for err.
func (s *Session) reject(err error, key string, args ...interface{}) error {
	s.notice = notice.Text(key, args...)
	return err
}

// lookup validates a group and indices inside it.
func (s *Session) lookup(groups []Group, group GroupID, indices ...int) (int, error) {
	gi := findGroup(groups, group)
	if gi < 0 {
		return -1, fmt.Errorf("%s: %w", group, ErrUnknownGroup)
	}
	n := len(groups[gi].Entries)
	for _, i := range indices {
		if i < 0 || i >= n {
			return -1, s.reject(fmt.Errorf("%s[%d] of %d: %w", group, i, n, ErrIndexRange), notice.InvalidPosition, i)
		}
	}
	return gi, nil
}

// locate finds the group and index of an entry.
func (s *Session) locate(groups []Group, id string) (int, int, error) {
	for gi, g := range groups {
		for i, e := range g.Entries {
			if e.ID == id {
				return gi, i, nil
			}
		}
	}
	return -1, -1, s.reject(fmt.Errorf("%s: %w", id, ErrUnknownEntry), notice.UnknownEntry, id)
}

func (s *Session) indexOf(id string) int {
	for i := range s.entries {
		if s.entries[i].ID == id {
			return i
		}
	}
	return -1
}

func labelOf(e Entry) string {
	if e.Label != "" {
		return e.Label
	}
	return e.ID
}
