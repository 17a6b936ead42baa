package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryUndoRedo(t *testing.T) {
	h := NewHistory()
	h.Record(ev(SurfaceAdded{Surface: baseSurface("s1", "Home")}))
	h.Record(ev(ElementAdded{Element: baseElement("e1", "s1", "heading")}))
	h.Record(ev(ElementMoved{ID: "e1", X: 40, Y: 40}))

	el, _ := h.State().ElementByID("e1")
	assert.Equal(t, 40.0, el.X)

	s := h.Undo()
	el, _ = s.ElementByID("e1")
	assert.Equal(t, 0.0, el.X, "undo must re-fold without the last event")

	s = h.Undo()
	assert.Empty(t, s.Elements)
	assert.Len(t, s.Surfaces, 1)

	s = h.Redo()
	require.Len(t, s.Elements, 1)
	s = h.Redo()
	el, _ = s.ElementByID("e1")
	assert.Equal(t, 40.0, el.X)
	assert.False(t, h.CanRedo())
}

func TestHistoryRecordTruncatesRedoTail(t *testing.T) {
	h := NewHistory()
	h.Record(ev(ElementAdded{Element: baseElement("e1", "", "text")}))
	h.Record(ev(ElementAdded{Element: baseElement("e2", "", "text")}))
	h.Undo()

	h.Record(ev(ElementAdded{Element: baseElement("e3", "", "text")}))

	assert.Equal(t, 2, h.Len())
	assert.False(t, h.CanRedo())
	s := h.State()
	_, hasE2 := s.ElementByID("e2")
	_, hasE3 := s.ElementByID("e3")
	assert.False(t, hasE2, "redo tail must be discarded on record")
	assert.True(t, hasE3)
}

func TestHistorySeekClamps(t *testing.T) {
	h := NewHistory()
	h.Record(ev(ElementAdded{Element: baseElement("e1", "", "text")}))
	h.Record(ev(ElementAdded{Element: baseElement("e2", "", "text")}))

	s := h.Seek(-100)
	assert.Empty(t, s.Elements)
	assert.Equal(t, -1, h.Cursor())

	s = h.Seek(100)
	assert.Len(t, s.Elements, 2)
	assert.Equal(t, 1, h.Cursor())

	s = h.Seek(0)
	assert.Len(t, s.Elements, 1)
}

func TestHistoryUndoAtStartIsStable(t *testing.T) {
	h := NewHistory()
	assert.False(t, h.CanUndo())
	s := h.Undo()
	assert.Equal(t, NewState(), s)
}

func TestNewHistoryFromExistingLog(t *testing.T) {
	events := []Event{
		ev(SurfaceAdded{Surface: baseSurface("s1", "Home")}),
		ev(ElementAdded{Element: baseElement("e1", "s1", "text")}),
	}
	h := NewHistoryFrom(events)
	assert.Equal(t, 1, h.Cursor())
	assert.Len(t, h.State().Elements, 1)
	assert.True(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestHistoryEventsReturnsCopy(t *testing.T) {
	h := NewHistory()
	h.Record(ev(ElementAdded{Element: baseElement("e1", "", "text")}))
	events := h.Events()
	events[0] = Event{}
	assert.NotEqual(t, Event{}, h.Events()[0])
}
