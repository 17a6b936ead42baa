package state

import "github.com/pagewright/pagewright/internal/types"

// History is an undo/redo cursor over an event log. The log itself is never
// mutated by undo: undo moves the cursor back and re-folds, redo moves it
// forward. Recording a new event while undone truncates the redo tail, the
// same way editors discard a dangling future.
type History struct {
	initial types.DesignState
	events  []Event
	// cursor is the index of the last applied event; -1 means none applied
	cursor int
}

// NewHistory starts a history from the empty initial state.
func NewHistory() *History {
	return &History{initial: NewState(), cursor: -1}
}

// NewHistoryFrom starts a history positioned at the end of an existing log.
func NewHistoryFrom(events []Event) *History {
	return &History{initial: NewState(), events: events, cursor: len(events) - 1}
}

// Record appends an event at the cursor, discarding any redo tail.
func (h *History) Record(ev Event) {
	h.events = append(h.events[:h.cursor+1:h.cursor+1], ev)
	h.cursor++
}

// State re-folds the log up to the cursor.
func (h *History) State() types.DesignState {
	return ReplayThrough(h.initial, h.events, h.cursor)
}

// CanUndo reports whether any event precedes the cursor.
func (h *History) CanUndo() bool { return h.cursor >= 0 }

// CanRedo reports whether any event follows the cursor.
func (h *History) CanRedo() bool { return h.cursor < len(h.events)-1 }

// Undo steps the cursor back one event and returns the re-folded state.
func (h *History) Undo() types.DesignState {
	if h.CanUndo() {
		h.cursor--
	}
	return h.State()
}

// Redo steps the cursor forward one event and returns the re-folded state.
func (h *History) Redo() types.DesignState {
	if h.CanRedo() {
		h.cursor++
	}
	return h.State()
}

// Seek moves the cursor to an absolute index (-1 for the initial state) and
// returns the re-folded state. Out-of-range indexes clamp.
func (h *History) Seek(index int) types.DesignState {
	if index < -1 {
		index = -1
	}
	if index > len(h.events)-1 {
		index = len(h.events) - 1
	}
	h.cursor = index
	return h.State()
}

// Len returns the number of recorded events, including any undone tail.
func (h *History) Len() int { return len(h.events) }

// Cursor returns the index of the last applied event, -1 if none.
func (h *History) Cursor() int { return h.cursor }

// Events returns the log as a copy; callers must not assume shared backing.
func (h *History) Events() []Event {
	out := make([]Event, len(h.events))
	copy(out, h.events)
	return out
}
