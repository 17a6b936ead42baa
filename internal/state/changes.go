package state

import "github.com/pagewright/pagewright/internal/types"

// ConfigChanges is a partial DocumentConfig; nil fields are left untouched
// by the merge.
type ConfigChanges struct {
	Background   *string  `json:"background,omitempty"`
	ContentWidth *float64 `json:"contentWidth,omitempty"`
	MaxSurfaces  *int     `json:"maxSurfaces,omitempty"`
}

func (c ConfigChanges) mergeInto(cfg types.DocumentConfig) types.DocumentConfig {
	if c.Background != nil {
		cfg.Background = *c.Background
	}
	if c.ContentWidth != nil {
		cfg.ContentWidth = *c.ContentWidth
	}
	if c.MaxSurfaces != nil {
		cfg.MaxSurfaces = *c.MaxSurfaces
	}
	return cfg
}

// SurfaceChanges is a partial Surface for shallow-merge updates.
type SurfaceChanges struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	X               *float64 `json:"x,omitempty"`
	Y               *float64 `json:"y,omitempty"`
	Width           *float64 `json:"width,omitempty"`
	Height          *float64 `json:"height,omitempty"`
	Background      *string  `json:"background,omitempty"`
	ShowGrid        *bool    `json:"showGrid,omitempty"`
	IsPublishTarget *bool    `json:"isPublishTarget,omitempty"`
}

func (c SurfaceChanges) mergeInto(s types.Surface) types.Surface {
	if c.Name != nil {
		s.Name = *c.Name
	}
	if c.Description != nil {
		s.Description = *c.Description
	}
	if c.X != nil {
		s.X = *c.X
	}
	if c.Y != nil {
		s.Y = *c.Y
	}
	if c.Width != nil {
		s.Width = *c.Width
	}
	if c.Height != nil {
		s.Height = *c.Height
	}
	if c.Background != nil {
		s.Background = *c.Background
	}
	if c.ShowGrid != nil {
		s.ShowGrid = *c.ShowGrid
	}
	if c.IsPublishTarget != nil {
		s.IsPublishTarget = *c.IsPublishTarget
	}
	return s
}

// ElementChanges is a partial Element for shallow-merge updates.
type ElementChanges struct {
	SurfaceID  *string  `json:"surfaceId,omitempty"`
	Kind       *string  `json:"kind,omitempty"`
	X          *float64 `json:"x,omitempty"`
	Y          *float64 `json:"y,omitempty"`
	Width      *float64 `json:"width,omitempty"`
	Height     *float64 `json:"height,omitempty"`
	Rotation   *float64 `json:"rotation,omitempty"`
	Opacity    *float64 `json:"opacity,omitempty"`
	Text       *string  `json:"text,omitempty"`
	Fill       *string  `json:"fill,omitempty"`
	TextColor  *string  `json:"textColor,omitempty"`
	FontSize   *float64 `json:"fontSize,omitempty"`
	FontWeight *int     `json:"fontWeight,omitempty"`
	Src        *string  `json:"src,omitempty"`
	Alt        *string  `json:"alt,omitempty"`
	Href       *string  `json:"href,omitempty"`
	SnapToGrid *bool    `json:"snapToGrid,omitempty"`
}

func (c ElementChanges) mergeInto(e types.Element) types.Element {
	if c.SurfaceID != nil {
		e.SurfaceID = *c.SurfaceID
	}
	if c.Kind != nil {
		e.Kind = *c.Kind
	}
	if c.X != nil {
		e.X = *c.X
	}
	if c.Y != nil {
		e.Y = *c.Y
	}
	if c.Width != nil {
		e.Width = *c.Width
	}
	if c.Height != nil {
		e.Height = *c.Height
	}
	if c.Rotation != nil {
		e.Rotation = *c.Rotation
	}
	if c.Opacity != nil {
		e.Opacity = *c.Opacity
	}
	if c.Text != nil {
		e.Text = *c.Text
	}
	if c.Fill != nil {
		e.Fill = *c.Fill
	}
	if c.TextColor != nil {
		e.TextColor = *c.TextColor
	}
	if c.FontSize != nil {
		e.FontSize = *c.FontSize
	}
	if c.FontWeight != nil {
		e.FontWeight = *c.FontWeight
	}
	if c.Src != nil {
		e.Src = *c.Src
	}
	if c.Alt != nil {
		e.Alt = *c.Alt
	}
	if c.Href != nil {
		e.Href = *c.Href
	}
	if c.SnapToGrid != nil {
		e.SnapToGrid = *c.SnapToGrid
	}
	return e
}
