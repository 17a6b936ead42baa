// Package compiler lowers a derived DesignState into the normalized
// DocumentIR consumed by the validator, optimizer, and code generators.
//
// Lowering never fails: malformed input (a zero-size surface, an element of
// unknown kind) passes through unchanged or falls back to a generic node.
// Flagging problems is the validator's job, not the compiler's.
package compiler

import (
	"fmt"

	"github.com/pagewright/pagewright/internal/grid"
	"github.com/pagewright/pagewright/internal/types"
)

// rawKinds maps editor element kinds to semantic IR kinds. It is a static
// table initialized at process start; unknown kinds lower to a container.
var rawKinds = map[string]string{
	"title":     types.KindHeading1,
	"subtitle":  types.KindHeading2,
	"heading":   types.KindHeading3,
	"heading1":  types.KindHeading1,
	"heading2":  types.KindHeading2,
	"heading3":  types.KindHeading3,
	"heading4":  types.KindHeading4,
	"heading5":  types.KindHeading5,
	"heading6":  types.KindHeading6,
	"paragraph": types.KindParagraph,
	"text":      types.KindText,
	"button":    types.KindButton,
	"image":     types.KindImage,
	"link":      types.KindLink,
	"box":       types.KindContainer,
	"group":     types.KindContainer,
}

// ResolveKind returns the semantic kind for a raw editor kind.
func ResolveKind(raw string) string {
	if kind, ok := rawKinds[raw]; ok {
		return kind
	}
	return types.KindContainer
}

// KnownKind reports whether a raw editor kind has a semantic mapping.
func KnownKind(raw string) bool {
	_, ok := rawKinds[raw]
	return ok
}

// Lower compiles a design state into a DocumentIR. Surfaces marked as
// publish targets become pages in order; each page's children are the
// elements owned by its surface, in element order. Grid snapping is applied
// to elements that opt in when the grid is enabled; this is the single
// integration point between the alignment engine and the compiler.
func Lower(s types.DesignState, gridCfg types.GridConfig) types.DocumentIR {
	ir := types.DocumentIR{
		Metadata: types.IRMetadata{
			Grid:            gridCfg,
			SharedVariables: sharedVariables(s.Config, gridCfg),
		},
	}

	for _, sf := range s.Surfaces {
		if !sf.IsPublishTarget {
			continue
		}
		page := types.PageNode{
			ID:          sf.ID,
			Name:        sf.Name,
			Slug:        Slugify(sf.Name),
			Description: sf.Description,
			Width:       sf.Width,
			Height:      sf.Height,
			Background:  sf.Background,
		}
		if page.Background == "" {
			page.Background = s.Config.Background
		}
		for _, el := range s.Elements {
			if el.SurfaceID != sf.ID {
				continue
			}
			page.Children = append(page.Children, lowerElement(el, gridCfg))
		}
		ir.Pages = append(ir.Pages, page)
	}

	return ir
}

func lowerElement(el types.Element, gridCfg types.GridConfig) types.ElementNode {
	x, y := el.X, el.Y
	w, h := el.Width, el.Height
	fontSize := el.FontSize

	if el.SnapToGrid && gridCfg.Enabled {
		unit := gridCfg.Unit
		x = grid.Snap(x, unit)
		y = grid.Snap(y, unit)
		w = grid.SnapDimension(w, unit, unit)
		h = grid.SnapDimension(h, unit, unit)
		if fontSize > 0 {
			fontSize = grid.SnapDimension(fontSize, unit, unit)
		}
	}

	styles := map[string]interface{}{
		"position": "absolute",
		"left":     x,
		"top":      y,
		"width":    w,
		"height":   h,
	}
	if el.Rotation != 0 {
		styles["transform"] = fmt.Sprintf("rotate(%gdeg)", el.Rotation)
	}
	if el.Opacity != 1 {
		styles["opacity"] = el.Opacity
	}
	if el.Fill != "" {
		styles["background-color"] = el.Fill
	}
	if el.TextColor != "" {
		styles["color"] = el.TextColor
	}
	if fontSize > 0 {
		styles["font-size"] = fontSize
	}
	if el.FontWeight > 0 {
		styles["font-weight"] = float64(el.FontWeight)
	}

	node := types.ElementNode{
		ID:     el.ID,
		Kind:   ResolveKind(el.Kind),
		Styles: styles,
	}

	props := map[string]string{}
	if el.Text != "" {
		props["text"] = el.Text
	}
	if el.Src != "" {
		props["src"] = el.Src
	}
	if el.Alt != "" {
		props["alt"] = el.Alt
	}
	if el.Href != "" {
		props["href"] = el.Href
	}
	if len(props) > 0 {
		node.Props = props
	}

	return node
}

// sharedVariables collects the cross-page custom properties emitted into the
// stylesheet's :root block.
func sharedVariables(cfg types.DocumentConfig, gridCfg types.GridConfig) map[string]string {
	vars := map[string]string{
		"canvas-background": cfg.Background,
		"content-width":     fmt.Sprintf("%gpx", cfg.ContentWidth),
	}
	if gridCfg.Enabled {
		vars["grid-unit"] = fmt.Sprintf("%gpx", gridCfg.Unit)
	}
	return vars
}
