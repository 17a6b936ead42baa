package state

import (
	"fmt"

	"github.com/pagewright/pagewright/internal/types"
)

// BlockElement is one element template inside a reusable block. Offsets are
// relative to the insertion point.
type BlockElement struct {
	Kind       string
	OffsetX    float64
	OffsetY    float64
	Width      float64
	Height     float64
	Text       string
	Fill       string
	TextColor  string
	FontSize   float64
	FontWeight int
}

// blockLibrary is the static reusable-block table, initialized once at
// process start. It is configuration, not mutable state: compilation never
// writes to it.
var blockLibrary = map[string][]BlockElement{
	"hero": {
		{Kind: "title", OffsetY: 0, Width: 600, Height: 64, Text: "Welcome", TextColor: "#1a1a2e", FontSize: 48, FontWeight: 700},
		{Kind: "paragraph", OffsetY: 80, Width: 600, Height: 48, Text: "A short introduction goes here.", TextColor: "#4a4a5e", FontSize: 18},
		{Kind: "button", OffsetY: 152, Width: 160, Height: 48, Text: "Get started", Fill: "#2563eb", TextColor: "#ffffff", FontSize: 16, FontWeight: 600},
	},
	"cta": {
		{Kind: "heading", OffsetY: 0, Width: 480, Height: 40, Text: "Ready to begin?", TextColor: "#1a1a2e", FontSize: 28, FontWeight: 600},
		{Kind: "button", OffsetY: 64, Width: 140, Height: 44, Text: "Sign up", Fill: "#16a34a", TextColor: "#ffffff", FontSize: 16, FontWeight: 600},
	},
	"footer": {
		{Kind: "text", OffsetY: 0, Width: 480, Height: 24, Text: "© Example Co.", TextColor: "#6b7280", FontSize: 14},
		{Kind: "link", OffsetY: 32, Width: 120, Height: 20, Text: "Privacy", TextColor: "#2563eb", FontSize: 14},
	},
}

// BlockIDs lists the reusable blocks available for insertion.
func BlockIDs() []string {
	ids := make([]string, 0, len(blockLibrary))
	for id := range blockLibrary {
		ids = append(ids, id)
	}
	return ids
}

// ExpandBlock resolves a reusable block into element-added payloads anchored
// at (x, y) on the given surface. Element ids derive from the inserting
// event's id and the template index, so replay always regenerates the same
// ids. Unknown block ids expand to nothing, consistent with the reducer's
// stale-id tolerance.
func ExpandBlock(eventID, blockID, surfaceID string, x, y float64) []ElementAdded {
	templates, ok := blockLibrary[blockID]
	if !ok {
		return nil
	}
	added := make([]ElementAdded, 0, len(templates))
	for i, tpl := range templates {
		added = append(added, ElementAdded{Element: types.Element{
			ID:         fmt.Sprintf("%s-%d", eventID, i),
			SurfaceID:  surfaceID,
			Kind:       tpl.Kind,
			X:          x + tpl.OffsetX,
			Y:          y + tpl.OffsetY,
			Width:      tpl.Width,
			Height:     tpl.Height,
			Opacity:    1,
			Text:       tpl.Text,
			Fill:       tpl.Fill,
			TextColor:  tpl.TextColor,
			FontSize:   tpl.FontSize,
			FontWeight: tpl.FontWeight,
		}})
	}
	return added
}
