package types

// StyleMode selects how generated styles are attached to generated markup.
type StyleMode string

const (
	// StyleModeEmbedded inlines the full stylesheet in each document head
	StyleModeEmbedded StyleMode = "embedded"
	// StyleModeExternal links a shared stylesheet file from each document
	StyleModeExternal StyleMode = "external"
	// StyleModeInline writes per-element style attributes with no shared rules
	StyleModeInline StyleMode = "inline"
)

// Valid reports whether m is one of the recognized style modes.
func (m StyleMode) Valid() bool {
	switch m {
	case StyleModeEmbedded, StyleModeExternal, StyleModeInline:
		return true
	}
	return false
}

// CodeOptions controls code generation. The zero value is not useful;
// callers should start from DefaultCodeOptions.
type CodeOptions struct {
	StyleMode         StyleMode `json:"styleMode" yaml:"style_mode"`
	PrettyPrint       bool      `json:"prettyPrint" yaml:"pretty_print"`
	MinifyStylesheet  bool      `json:"minifyStylesheet" yaml:"minify_stylesheet"`
	DeduplicateStyles bool      `json:"deduplicateStyles" yaml:"deduplicate_styles"`
	UseVariables      bool      `json:"useVariables" yaml:"use_variables"`
	SemanticTags      bool      `json:"semanticTags" yaml:"semantic_tags"`
	AriaLabels        bool      `json:"ariaLabels" yaml:"aria_labels"`
}

// DefaultCodeOptions returns the generation defaults used by the CLI and
// the preview server when no overrides are configured.
func DefaultCodeOptions() CodeOptions {
	return CodeOptions{
		StyleMode:         StyleModeExternal,
		PrettyPrint:       true,
		DeduplicateStyles: true,
		UseVariables:      true,
		SemanticTags:      true,
		AriaLabels:        true,
	}
}

// File is one generated artifact.
type File struct {
	Path     string `json:"path"`
	Content  string `json:"content"`
	MIMEType string `json:"mimeType"`
}
