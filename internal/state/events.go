// Package state implements the event-sourced state engine: the design event
// vocabulary, the pure reducer that folds events into a DesignState, and the
// replay machinery behind undo/redo.
//
// The event log is authoritative and append-only; DesignState is always a
// recomputable cache. Events referencing ids that no longer exist fold to
// no-ops so a log can never become unreplayable.
package state

import (
	"time"

	"github.com/google/uuid"

	"github.com/pagewright/pagewright/internal/types"
)

// Event is one immutable, tagged record of an atomic design edit.
type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Payload   Payload   `json:"-"`
}

// NewEvent wraps a payload in an envelope with a fresh id and timestamp.
// Timestamps are informational only; fold order is insertion order.
func NewEvent(p Payload) Event {
	return Event{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Payload:   p,
	}
}

// Payload is the closed union of event variants. Every variant must
// implement apply; a variant added without it fails to compile, which is the
// exhaustiveness guarantee the reducer relies on.
type Payload interface {
	// EventType returns the stable wire tag for this variant
	EventType() string
	// apply folds this event into a state, returning a new state value;
	// the envelope is passed for variants whose effects derive ids from it
	apply(types.DesignState, Event) types.DesignState
}

// Event type tags, stable across releases; these are the on-disk vocabulary.
const (
	TypeCanvasConfigChanged = "canvas-config-changed"
	TypeSurfaceAdded        = "surface-added"
	TypeSurfaceUpdated      = "surface-updated"
	TypeSurfaceRemoved      = "surface-removed"
	TypeSurfaceMoved        = "surface-moved"
	TypeSurfaceResized      = "surface-resized"
	TypeElementAdded        = "element-added"
	TypeElementUpdated      = "element-updated"
	TypeElementRemoved      = "element-removed"
	TypeElementMoved        = "element-moved"
	TypeElementResized      = "element-resized"
	TypeElementsMoved       = "elements-moved"
	TypeElementsRemoved     = "elements-removed"
	TypeSelectionChanged    = "selection-changed"
	TypeBlockInserted       = "block-inserted"
)

// CanvasConfigChanged merges partial changes into the document config.
type CanvasConfigChanged struct {
	Changes ConfigChanges `json:"changes"`
}

// SurfaceAdded appends a new surface to the design.
type SurfaceAdded struct {
	Surface types.Surface `json:"surface"`
}

// SurfaceUpdated shallow-merges partial changes into one surface.
type SurfaceUpdated struct {
	ID      string         `json:"id"`
	Changes SurfaceChanges `json:"changes"`
}

// SurfaceRemoved removes a surface and cascades onto its elements.
type SurfaceRemoved struct {
	ID string `json:"id"`
}

// SurfaceMoved overwrites a surface's position.
type SurfaceMoved struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// SurfaceResized overwrites a surface's size.
type SurfaceResized struct {
	ID     string  `json:"id"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ElementAdded appends a new element.
type ElementAdded struct {
	Element types.Element `json:"element"`
}

// ElementUpdated shallow-merges partial changes into one element.
type ElementUpdated struct {
	ID      string         `json:"id"`
	Changes ElementChanges `json:"changes"`
}

// ElementRemoved removes one element.
type ElementRemoved struct {
	ID string `json:"id"`
}

// ElementMoved overwrites one element's position.
type ElementMoved struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// ElementResized overwrites one element's size.
type ElementResized struct {
	ID     string  `json:"id"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ElementsMoved shifts every listed element by the same delta.
type ElementsMoved struct {
	IDs    []string `json:"ids"`
	DeltaX float64  `json:"deltaX"`
	DeltaY float64  `json:"deltaY"`
}

// ElementsRemoved removes every listed element.
type ElementsRemoved struct {
	IDs []string `json:"ids"`
}

// SelectionChanged records the editor selection. It never mutates derived
// state; it exists in the log so history scrubbing can restore selection.
type SelectionChanged struct {
	IDs []string `json:"ids"`
}

// BlockInserted expands a reusable block into element-added effects at the
// given position on the given surface.
type BlockInserted struct {
	BlockID   string  `json:"blockId"`
	SurfaceID string  `json:"surfaceId"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

func (CanvasConfigChanged) EventType() string { return TypeCanvasConfigChanged }
func (SurfaceAdded) EventType() string        { return TypeSurfaceAdded }
func (SurfaceUpdated) EventType() string      { return TypeSurfaceUpdated }
func (SurfaceRemoved) EventType() string      { return TypeSurfaceRemoved }
func (SurfaceMoved) EventType() string        { return TypeSurfaceMoved }
func (SurfaceResized) EventType() string      { return TypeSurfaceResized }
func (ElementAdded) EventType() string        { return TypeElementAdded }
func (ElementUpdated) EventType() string      { return TypeElementUpdated }
func (ElementRemoved) EventType() string      { return TypeElementRemoved }
func (ElementMoved) EventType() string        { return TypeElementMoved }
func (ElementResized) EventType() string      { return TypeElementResized }
func (ElementsMoved) EventType() string       { return TypeElementsMoved }
func (ElementsRemoved) EventType() string     { return TypeElementsRemoved }
func (SelectionChanged) EventType() string    { return TypeSelectionChanged }
func (BlockInserted) EventType() string       { return TypeBlockInserted }
