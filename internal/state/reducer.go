package state

import "github.com/pagewright/pagewright/internal/types"

// NewState returns the empty initial state every event log folds from.
func NewState() types.DesignState {
	return types.DesignState{
		Config: types.DocumentConfig{
			Background:   "#ffffff",
			ContentWidth: 960,
			MaxSurfaces:  50,
		},
	}
}

// Reduce folds one event into a state. It is pure and total: inputs are
// never mutated, every variant is handled through its apply method, and
// events targeting ids that no longer exist are no-ops.
func Reduce(s types.DesignState, ev Event) types.DesignState {
	return ev.Payload.apply(s, ev)
}

// ApplyAll folds events left to right over the initial state.
func ApplyAll(initial types.DesignState, events []Event) types.DesignState {
	s := initial
	for _, ev := range events {
		s = Reduce(s, ev)
	}
	return s
}

// ReplayThrough folds events up to and including index. An index below zero
// yields the initial state; an index past the end folds everything. This is
// the whole undo/redo mechanism: a cursor over the event array.
func ReplayThrough(initial types.DesignState, events []Event, index int) types.DesignState {
	if index < 0 {
		return initial
	}
	if index >= len(events) {
		index = len(events) - 1
	}
	return ApplyAll(initial, events[:index+1])
}

func (p CanvasConfigChanged) apply(s types.DesignState, ev Event) types.DesignState {
	s.Config = p.Changes.mergeInto(s.Config)
	return s
}

func (p SurfaceAdded) apply(s types.DesignState, ev Event) types.DesignState {
	if s.Config.MaxSurfaces > 0 && len(s.Surfaces) >= s.Config.MaxSurfaces {
		return s
	}
	surfaces := make([]types.Surface, len(s.Surfaces), len(s.Surfaces)+1)
	copy(surfaces, s.Surfaces)
	s.Surfaces = append(surfaces, p.Surface)
	return s
}

func (p SurfaceUpdated) apply(s types.DesignState, ev Event) types.DesignState {
	s.Surfaces = mapSurface(s.Surfaces, p.ID, p.Changes.mergeInto)
	return s
}

func (p SurfaceRemoved) apply(s types.DesignState, ev Event) types.DesignState {
	surfaces := make([]types.Surface, 0, len(s.Surfaces))
	removed := false
	for _, sf := range s.Surfaces {
		if sf.ID == p.ID {
			removed = true
			continue
		}
		surfaces = append(surfaces, sf)
	}
	if !removed {
		return s
	}
	s.Surfaces = surfaces
	// cascade: elements owned by the removed surface go with it
	elements := make([]types.Element, 0, len(s.Elements))
	for _, el := range s.Elements {
		if el.SurfaceID == p.ID {
			continue
		}
		elements = append(elements, el)
	}
	s.Elements = elements
	return s
}

func (p SurfaceMoved) apply(s types.DesignState, ev Event) types.DesignState {
	s.Surfaces = mapSurface(s.Surfaces, p.ID, func(sf types.Surface) types.Surface {
		sf.X, sf.Y = p.X, p.Y
		return sf
	})
	return s
}

func (p SurfaceResized) apply(s types.DesignState, ev Event) types.DesignState {
	s.Surfaces = mapSurface(s.Surfaces, p.ID, func(sf types.Surface) types.Surface {
		sf.Width, sf.Height = p.Width, p.Height
		return sf
	})
	return s
}

func (p ElementAdded) apply(s types.DesignState, ev Event) types.DesignState {
	elements := make([]types.Element, len(s.Elements), len(s.Elements)+1)
	copy(elements, s.Elements)
	s.Elements = append(elements, p.Element)
	return s
}

func (p ElementUpdated) apply(s types.DesignState, ev Event) types.DesignState {
	s.Elements = mapElement(s.Elements, p.ID, p.Changes.mergeInto)
	return s
}

func (p ElementRemoved) apply(s types.DesignState, ev Event) types.DesignState {
	if _, ok := s.ElementByID(p.ID); !ok {
		return s
	}
	elements := make([]types.Element, 0, len(s.Elements)-1)
	for _, el := range s.Elements {
		if el.ID == p.ID {
			continue
		}
		elements = append(elements, el)
	}
	s.Elements = elements
	return s
}

func (p ElementMoved) apply(s types.DesignState, ev Event) types.DesignState {
	s.Elements = mapElement(s.Elements, p.ID, func(el types.Element) types.Element {
		el.X, el.Y = p.X, p.Y
		return el
	})
	return s
}

func (p ElementResized) apply(s types.DesignState, ev Event) types.DesignState {
	s.Elements = mapElement(s.Elements, p.ID, func(el types.Element) types.Element {
		el.Width, el.Height = p.Width, p.Height
		return el
	})
	return s
}

func (p ElementsMoved) apply(s types.DesignState, ev Event) types.DesignState {
	targets := make(map[string]bool, len(p.IDs))
	for _, id := range p.IDs {
		targets[id] = true
	}
	matched := false
	for _, el := range s.Elements {
		if targets[el.ID] {
			matched = true
			break
		}
	}
	if !matched {
		return s
	}
	elements := make([]types.Element, len(s.Elements))
	for i, el := range s.Elements {
		if targets[el.ID] {
			el.X += p.DeltaX
			el.Y += p.DeltaY
		}
		elements[i] = el
	}
	s.Elements = elements
	return s
}

func (p ElementsRemoved) apply(s types.DesignState, ev Event) types.DesignState {
	targets := make(map[string]bool, len(p.IDs))
	for _, id := range p.IDs {
		targets[id] = true
	}
	elements := make([]types.Element, 0, len(s.Elements))
	for _, el := range s.Elements {
		if targets[el.ID] {
			continue
		}
		elements = append(elements, el)
	}
	if len(elements) == len(s.Elements) {
		return s
	}
	s.Elements = elements
	return s
}

func (p SelectionChanged) apply(s types.DesignState, ev Event) types.DesignState {
	// selection is ephemeral UI state; recorded in the log, no state effect
	return s
}

func (p BlockInserted) apply(s types.DesignState, ev Event) types.DesignState {
	// element ids derive from the event id so replay is reproducible
	for _, added := range ExpandBlock(ev.ID, p.BlockID, p.SurfaceID, p.X, p.Y) {
		s = added.apply(s, ev)
	}
	return s
}

// mapSurface returns a copy of surfaces with fn applied to the matching
// entry. A non-matching id returns the input slice unchanged.
func mapSurface(surfaces []types.Surface, id string, fn func(types.Surface) types.Surface) []types.Surface {
	for i, sf := range surfaces {
		if sf.ID != id {
			continue
		}
		out := make([]types.Surface, len(surfaces))
		copy(out, surfaces)
		out[i] = fn(sf)
		return out
	}
	return surfaces
}

func mapElement(elements []types.Element, id string, fn func(types.Element) types.Element) []types.Element {
	for i, el := range elements {
		if el.ID != id {
			continue
		}
		out := make([]types.Element, len(elements))
		copy(out, elements)
		out[i] = fn(el)
		return out
	}
	return elements
}
