package types

// DocumentIR is the compiler's intermediate representation: an ordered list
// of page nodes with fully resolved styles, independent of output format.
// It is produced fresh per compilation and never persisted.
type DocumentIR struct {
	Pages    []PageNode `json:"pages"`
	Metadata IRMetadata `json:"metadata"`
}

// IRMetadata carries cross-page compilation context.
type IRMetadata struct {
	Grid GridConfig `json:"grid"`
	// SharedVariables maps CSS custom property names (without the leading
	// "--") to their values; generators iterate it in sorted key order
	SharedVariables map[string]string `json:"sharedVariables"`
}

// PageNode is one compiled page. Slug is derived from Name and must be
// unique within a DocumentIR; the validator rejects duplicates.
type PageNode struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Description string        `json:"description,omitempty"`
	Width      float64       `json:"width"`
	Height     float64       `json:"height"`
	Background string        `json:"background"`
	Children   []ElementNode `json:"children"`
}

// ElementNode is one typed node in a page's element tree. Styles values are
// either strings (emitted verbatim) or numbers awaiting unit formatting by
// the stylesheet generator.
type ElementNode struct {
	ID    string            `json:"id"`
	Kind  string            `json:"kind"`
	Props map[string]string `json:"props,omitempty"`
	// Styles is keyed by CSS property name; values are string or float64
	Styles   map[string]interface{} `json:"styles,omitempty"`
	Children []ElementNode          `json:"children,omitempty"`
}

// Semantic kinds assigned during lowering. Heading kinds carry their level
// suffix so the markup generator can pick the matching tag.
const (
	KindHeading1  = "heading1"
	KindHeading2  = "heading2"
	KindHeading3  = "heading3"
	KindHeading4  = "heading4"
	KindHeading5  = "heading5"
	KindHeading6  = "heading6"
	KindParagraph = "paragraph"
	KindText      = "text"
	KindButton    = "button"
	KindImage     = "image"
	KindLink      = "link"
	KindContainer = "container"
)
