package state

import (
	"encoding/json"
	"fmt"
	"time"
)

// envelope is the wire form of an event: the payload is tagged by type so
// the log can be stored with any structured-data format.
type envelope struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
}

// payloadFactories maps wire tags to constructors. The exhaustiveness test
// checks this table against every Payload variant, so a variant added to the
// union without a factory fails the test suite.
var payloadFactories = map[string]func() Payload{
	TypeCanvasConfigChanged: func() Payload { return &CanvasConfigChanged{} },
	TypeSurfaceAdded:        func() Payload { return &SurfaceAdded{} },
	TypeSurfaceUpdated:      func() Payload { return &SurfaceUpdated{} },
	TypeSurfaceRemoved:      func() Payload { return &SurfaceRemoved{} },
	TypeSurfaceMoved:        func() Payload { return &SurfaceMoved{} },
	TypeSurfaceResized:      func() Payload { return &SurfaceResized{} },
	TypeElementAdded:        func() Payload { return &ElementAdded{} },
	TypeElementUpdated:      func() Payload { return &ElementUpdated{} },
	TypeElementRemoved:      func() Payload { return &ElementRemoved{} },
	TypeElementMoved:        func() Payload { return &ElementMoved{} },
	TypeElementResized:      func() Payload { return &ElementResized{} },
	TypeElementsMoved:       func() Payload { return &ElementsMoved{} },
	TypeElementsRemoved:     func() Payload { return &ElementsRemoved{} },
	TypeSelectionChanged:    func() Payload { return &SelectionChanged{} },
	TypeBlockInserted:       func() Payload { return &BlockInserted{} },
}

// MarshalJSON encodes the event as a tagged envelope.
func (ev Event) MarshalJSON() ([]byte, error) {
	if ev.Payload == nil {
		return nil, fmt.Errorf("event %s has no payload", ev.ID)
	}
	raw, err := json.Marshal(ev.Payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", ev.Payload.EventType(), err)
	}
	return json.Marshal(envelope{
		ID:        ev.ID,
		Timestamp: ev.Timestamp,
		Type:      ev.Payload.EventType(),
		Payload:   raw,
	})
}

// UnmarshalJSON decodes a tagged envelope back into a typed event.
func (ev *Event) UnmarshalJSON(data []byte) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("unmarshal event envelope: %w", err)
	}
	factory, ok := payloadFactories[env.Type]
	if !ok {
		return fmt.Errorf("unknown event type %q", env.Type)
	}
	payload := factory()
	if err := json.Unmarshal(env.Payload, payload); err != nil {
		return fmt.Errorf("unmarshal %s payload: %w", env.Type, err)
	}
	ev.ID = env.ID
	ev.Timestamp = env.Timestamp
	ev.Payload = derefPayload(payload)
	return nil
}

// derefPayload converts the pointer the factory produced back to the value
// form the rest of the package works with.
func derefPayload(p Payload) Payload {
	switch v := p.(type) {
	case *CanvasConfigChanged:
		return *v
	case *SurfaceAdded:
		return *v
	case *SurfaceUpdated:
		return *v
	case *SurfaceRemoved:
		return *v
	case *SurfaceMoved:
		return *v
	case *SurfaceResized:
		return *v
	case *ElementAdded:
		return *v
	case *ElementUpdated:
		return *v
	case *ElementRemoved:
		return *v
	case *ElementMoved:
		return *v
	case *ElementResized:
		return *v
	case *ElementsMoved:
		return *v
	case *ElementsRemoved:
		return *v
	case *SelectionChanged:
		return *v
	case *BlockInserted:
		return *v
	}
	return p
}
