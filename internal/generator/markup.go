// Package generator turns a validated DocumentIR into emitted artifacts:
// one HTML document per page and a single stylesheet.
//
// Generation is byte-deterministic: the same (ir, options) pair always
// produces identical file contents. Nothing here reads the clock, generates
// ids, or iterates a map without sorting first.
package generator

import (
	"html"
	"sort"
	"strings"

	"github.com/pagewright/pagewright/internal/types"
)

// StylesheetPath is the emitted stylesheet's file name, referenced by
// generated documents in external style mode.
const StylesheetPath = "styles.css"

// kindTags maps semantic kinds to their markup tags. Unknown kinds fall
// back to a generic container tag.
var kindTags = map[string]string{
	types.KindHeading1:  "h1",
	types.KindHeading2:  "h2",
	types.KindHeading3:  "h3",
	types.KindHeading4:  "h4",
	types.KindHeading5:  "h5",
	types.KindHeading6:  "h6",
	types.KindParagraph: "p",
	types.KindText:      "span",
	types.KindButton:    "button",
	types.KindImage:     "img",
	types.KindLink:      "a",
	types.KindContainer: "div",
}

// interactiveKinds receive accessibility labels when enabled.
var interactiveKinds = map[string]bool{
	types.KindButton: true,
	types.KindLink:   true,
}

// Generate emits every artifact for the document: one markup file per page
// plus, in external style mode, the shared stylesheet file.
func Generate(ir types.DocumentIR, opts types.CodeOptions) []types.File {
	files := GenerateMarkup(ir, opts)
	if opts.StyleMode == types.StyleModeExternal {
		files = append(files, types.File{
			Path:     StylesheetPath,
			Content:  GenerateStylesheet(ir, opts),
			MIMEType: "text/css",
		})
	}
	return files
}

// GenerateMarkup emits one HTML document per page node. In embedded style
// mode the full stylesheet is inlined into each document head; in external
// mode a link reference is written instead; in inline mode every element
// carries its own style attribute and no shared stylesheet exists.
func GenerateMarkup(ir types.DocumentIR, opts types.CodeOptions) []types.File {
	var embedded string
	if opts.StyleMode == types.StyleModeEmbedded {
		embedded = GenerateStylesheet(ir, opts)
	}
	files := make([]types.File, 0, len(ir.Pages))
	for _, page := range ir.Pages {
		path := page.Slug + ".html"
		if page.Slug == "" {
			path = page.ID + ".html"
		}
		files = append(files, types.File{
			Path:     path,
			Content:  renderPage(page, embedded, opts),
			MIMEType: "text/html",
		})
	}
	return files
}

func renderPage(page types.PageNode, embeddedCSS string, opts types.CodeOptions) string {
	w := newMarkupWriter(opts.PrettyPrint)

	w.line(`<!DOCTYPE html>`)
	w.line(`<html lang="en">`)
	w.line(`<head>`)
	w.indent()
	w.line(`<meta charset="utf-8">`)
	w.line(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	w.line(`<title>` + html.EscapeString(page.Name) + `</title>`)
	if page.Description != "" {
		desc := html.EscapeString(page.Description)
		w.line(`<meta name="description" content="` + desc + `">`)
		w.line(`<meta property="og:title" content="` + html.EscapeString(page.Name) + `">`)
		w.line(`<meta property="og:description" content="` + desc + `">`)
		w.line(`<meta property="og:type" content="website">`)
	}
	switch opts.StyleMode {
	case types.StyleModeExternal:
		w.line(`<link rel="stylesheet" href="` + StylesheetPath + `">`)
	case types.StyleModeEmbedded:
		w.line(`<style>`)
		w.raw(embeddedCSS)
		w.line(`</style>`)
	}
	w.dedent()
	w.line(`</head>`)
	w.line(`<body>`)
	w.indent()

	pageStyle := "position:relative;margin:0 auto;overflow:hidden;" +
		"width:" + FormatValue("width", page.Width) + ";" +
		"height:" + FormatValue("height", page.Height)
	if page.Background != "" {
		pageStyle += ";background-color:" + page.Background
	}
	w.line(`<main class="pw-page" style="` + pageStyle + `">`)
	w.indent()
	for _, child := range page.Children {
		renderNode(w, child, opts)
	}
	w.dedent()
	w.line(`</main>`)
	w.dedent()
	w.line(`</body>`)
	w.line(`</html>`)

	return w.String()
}

func renderNode(w *markupWriter, node types.ElementNode, opts types.CodeOptions) {
	tag := tagFor(node.Kind, opts)
	attrs := attributesFor(node, opts)

	if tag == "img" {
		w.line("<" + tag + attrs + ">")
		return
	}

	text := html.EscapeString(node.Props["text"])
	if len(node.Children) == 0 {
		w.line("<" + tag + attrs + ">" + text + "</" + tag + ">")
		return
	}

	w.line("<" + tag + attrs + ">")
	w.indent()
	for _, child := range node.Children {
		renderNode(w, child, opts)
	}
	w.dedent()
	w.line("</" + tag + ">")
}

func tagFor(kind string, opts types.CodeOptions) string {
	if !opts.SemanticTags {
		// images keep their tag: a div cannot carry src/alt
		if kind == types.KindImage {
			return "img"
		}
		return "div"
	}
	if tag, ok := kindTags[kind]; ok {
		return tag
	}
	return "div"
}

// attributesFor renders the attribute list in a fixed order so output is
// stable: class, style, src, alt, href, type, aria-label.
func attributesFor(node types.ElementNode, opts types.CodeOptions) string {
	var b strings.Builder
	b.WriteString(` class="` + ClassName(node.Kind) + `"`)

	if opts.StyleMode == types.StyleModeInline && len(node.Styles) > 0 {
		b.WriteString(` style="` + html.EscapeString(inlineStyle(node.Styles)) + `"`)
	}
	if src, ok := node.Props["src"]; ok {
		b.WriteString(` src="` + html.EscapeString(src) + `"`)
	}
	if alt, ok := node.Props["alt"]; ok {
		b.WriteString(` alt="` + html.EscapeString(alt) + `"`)
	}
	if href, ok := node.Props["href"]; ok {
		b.WriteString(` href="` + html.EscapeString(href) + `"`)
	}
	if node.Kind == types.KindButton {
		b.WriteString(` type="button"`)
	}
	if opts.AriaLabels && interactiveKinds[node.Kind] {
		if label, ok := node.Props["text"]; ok {
			b.WriteString(` aria-label="` + html.EscapeString(label) + `"`)
		}
	}
	return b.String()
}

// inlineStyle renders a style dictionary as a style attribute value with
// sorted property order. No merging happens across elements in inline mode.
func inlineStyle(styles map[string]interface{}) string {
	props := make([]string, 0, len(styles))
	for prop := range styles {
		props = append(props, prop)
	}
	sort.Strings(props)
	parts := make([]string, 0, len(props))
	for _, prop := range props {
		parts = append(parts, prop+":"+FormatValue(prop, styles[prop]))
	}
	return strings.Join(parts, ";")
}

// markupWriter accumulates lines with optional indentation. In compact mode
// lines are concatenated without whitespace.
type markupWriter struct {
	b      strings.Builder
	pretty bool
	depth  int
}

func newMarkupWriter(pretty bool) *markupWriter {
	return &markupWriter{pretty: pretty}
}

func (w *markupWriter) line(s string) {
	if w.pretty {
		w.b.WriteString(strings.Repeat("  ", w.depth))
		w.b.WriteString(s)
		w.b.WriteByte('\n')
		return
	}
	w.b.WriteString(s)
}

// raw writes preformatted content (the embedded stylesheet) untouched.
func (w *markupWriter) raw(s string) {
	w.b.WriteString(s)
	if w.pretty && !strings.HasSuffix(s, "\n") {
		w.b.WriteByte('\n')
	}
}

func (w *markupWriter) indent() { w.depth++ }

func (w *markupWriter) dedent() {
	if w.depth > 0 {
		w.depth--
	}
}

func (w *markupWriter) String() string { return w.b.String() }
