// Package types provides common type definitions shared across the Pagewright
// compilation pipeline. This package contains value types only, to avoid
// circular dependencies between the state, compiler, and generator packages.
package types

// GridConfig holds the baseline-grid settings used when lowering a design.
type GridConfig struct {
	// Enabled turns grid snapping on for elements that opt in
	Enabled bool `json:"enabled" yaml:"enabled"`
	// Unit is the alignment increment in pixels; must be positive when Enabled
	Unit float64 `json:"unit" yaml:"unit"`
	// Visible controls whether the editor overlays grid lines (no effect on output)
	Visible bool `json:"visible" yaml:"visible"`
}

// DocumentConfig holds canvas-level settings for a design document.
type DocumentConfig struct {
	// Background is the canvas background color (any CSS color string)
	Background string `json:"background"`
	// ContentWidth is the default content width in pixels for shared variables
	ContentWidth float64 `json:"contentWidth"`
	// MaxSurfaces caps how many surfaces the editor will allow
	MaxSurfaces int `json:"maxSurfaces"`
}

// Surface represents one artboard in the designer. A surface becomes a
// compiled page only when IsPublishTarget is set.
type Surface struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Description feeds the generated page's meta description and
	// Open Graph block; empty means no such block is emitted
	Description     string  `json:"description,omitempty"`
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	Background      string  `json:"background"`
	ShowGrid        bool    `json:"showGrid"`
	IsPublishTarget bool    `json:"isPublishTarget"`
}

// Element represents one placed object. SurfaceID is empty for elements that
// have been detached from every surface; such elements are kept in the state
// but never compiled.
type Element struct {
	ID        string  `json:"id"`
	SurfaceID string  `json:"surfaceId,omitempty"`
	// Kind is the raw semantic kind assigned by the editor (e.g. "heading",
	// "paragraph", "button"). Unknown kinds lower to a generic container.
	Kind       string  `json:"kind"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Rotation   float64 `json:"rotation,omitempty"`
	Opacity    float64 `json:"opacity"`
	Text       string  `json:"text,omitempty"`
	Fill       string  `json:"fill,omitempty"`
	TextColor  string  `json:"textColor,omitempty"`
	FontSize   float64 `json:"fontSize,omitempty"`
	FontWeight int     `json:"fontWeight,omitempty"`
	Src        string  `json:"src,omitempty"`
	Alt        string  `json:"alt,omitempty"`
	Href       string  `json:"href,omitempty"`
	// SnapToGrid opts this element into baseline-grid alignment during lowering
	SnapToGrid bool `json:"snapToGrid,omitempty"`
}

// DesignState is the derived document model: the left fold of every design
// event over an empty initial state. It is a cache of the event log, never
// the source of truth, and is always treated as an immutable value.
type DesignState struct {
	Config   DocumentConfig `json:"config"`
	Surfaces []Surface      `json:"surfaces"`
	Elements []Element      `json:"elements"`
}

// SurfaceByID returns the surface with the given id, if present.
func (s DesignState) SurfaceByID(id string) (Surface, bool) {
	for _, sf := range s.Surfaces {
		if sf.ID == id {
			return sf, true
		}
	}
	return Surface{}, false
}

// ElementByID returns the element with the given id, if present.
func (s DesignState) ElementByID(id string) (Element, bool) {
	for _, el := range s.Elements {
		if el.ID == id {
			return el, true
		}
	}
	return Element{}, false
}
