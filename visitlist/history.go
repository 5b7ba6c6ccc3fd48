package visitlist

// HistoryCapacity is the number of snapshots kept by a session.
const HistoryCapacity = 30

// History manages undo/redo over full list snapshots. The oldest snapshot is
// dropped once the capacity is reached.
type History struct {
	states  [][]Entry
	current int // Current position in history
	max     int // Maximum number of states to keep
}

// NewHistory creates a history holding at most max snapshots.
func NewHistory(max int) *History {
	if max <= 0 {
		max = HistoryCapacity
	}
	return &History{
		states:  make([][]Entry, 0, max),
		current: -1,
		max:     max,
	}
}

// Save records a new snapshot (stored as a copy).
func (h *History) Save(entries []Entry) {
	// If we're not at the end, truncate everything after current
	if h.current < len(h.states)-1 {
		h.states = h.states[:h.current+1]
	}

	h.states = append(h.states, cloneEntries(entries))

	// If we exceed max, remove oldest
	if len(h.states) > h.max {
		h.states = h.states[1:]
	} else {
		h.current++
	}
}

// CanUndo returns true if we can undo
func (h *History) CanUndo() bool {
	return h.current > 0
}

// CanRedo returns true if we can redo
func (h *History) CanRedo() bool {
	return h.current < len(h.states)-1
}

// Undo goes back one snapshot.
func (h *History) Undo() ([]Entry, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.current--
	return cloneEntries(h.states[h.current]), true
}

// Redo goes forward one snapshot.
func (h *History) Redo() ([]Entry, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.current++
	return cloneEntries(h.states[h.current]), true
}

// Reset drops all snapshots and starts over from baseline.
func (h *History) Reset(baseline []Entry) {
	h.states = h.states[:0]
	h.current = -1
	h.Save(baseline)
}

// Stats returns current position and total states
func (h *History) Stats() (current, total int) {
	return h.current + 1, len(h.states)
}

func cloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
