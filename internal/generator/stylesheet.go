package generator

import (
	"sort"
	"strings"

	"github.com/pagewright/pagewright/internal/types"
)

// ClassName derives the deterministic selector class for a semantic kind.
// The markup generator writes the same name, which is what keeps generated
// rules and generated tags in agreement.
func ClassName(kind string) string {
	return "pw-" + kind
}

// GenerateStylesheet emits the document stylesheet: custom properties (when
// enabled), a universal reset, base rules, then one rule per semantic kind
// in first-appearance order. Output is byte-deterministic for a given
// (ir, opts) pair.
func GenerateStylesheet(ir types.DocumentIR, opts types.CodeOptions) string {
	var b strings.Builder
	b.WriteString("/* Generated by pagewright. Do not edit by hand. */\n\n")

	if opts.UseVariables && len(ir.Metadata.SharedVariables) > 0 {
		names := make([]string, 0, len(ir.Metadata.SharedVariables))
		for name := range ir.Metadata.SharedVariables {
			names = append(names, name)
		}
		sort.Strings(names)
		b.WriteString(":root {\n")
		for _, name := range names {
			b.WriteString("  --" + name + ": " + ir.Metadata.SharedVariables[name] + ";\n")
		}
		b.WriteString("}\n\n")
	}

	// universal reset
	b.WriteString("* {\n  margin: 0;\n  padding: 0;\n  box-sizing: border-box;\n}\n\n")

	// base rules
	b.WriteString("body {\n")
	b.WriteString("  font-family: -apple-system, BlinkMacSystemFont, \"Segoe UI\", sans-serif;\n")
	if opts.UseVariables {
		b.WriteString("  background-color: var(--canvas-background);\n")
	}
	b.WriteString("}\n\n")
	b.WriteString(".pw-page {\n  position: relative;\n  margin: 0 auto;\n  overflow: hidden;\n}\n\n")

	for _, kind := range kindsInOrder(ir) {
		instances := collectStyles(ir, kind)
		rule := ruleFor(instances, opts.DeduplicateStyles)
		if len(rule) == 0 {
			continue
		}
		b.WriteString("." + ClassName(kind) + " {\n")
		props := make([]string, 0, len(rule))
		for prop := range rule {
			props = append(props, prop)
		}
		sort.Strings(props)
		for _, prop := range props {
			b.WriteString("  " + prop + ": " + FormatValue(prop, rule[prop]) + ";\n")
		}
		b.WriteString("}\n\n")
	}

	css := strings.TrimRight(b.String(), "\n") + "\n"
	if opts.MinifyStylesheet {
		css = Minify(css)
	}
	return css
}

// kindsInOrder walks the tree and returns each distinct semantic kind in
// first-appearance order, which keeps rule order stable across runs.
func kindsInOrder(ir types.DocumentIR) []string {
	var kinds []string
	seen := map[string]bool{}
	var walk func(nodes []types.ElementNode)
	walk = func(nodes []types.ElementNode) {
		for _, node := range nodes {
			if !seen[node.Kind] {
				seen[node.Kind] = true
				kinds = append(kinds, node.Kind)
			}
			walk(node.Children)
		}
	}
	for _, page := range ir.Pages {
		walk(page.Children)
	}
	return kinds
}

func collectStyles(ir types.DocumentIR, kind string) []map[string]interface{} {
	var styles []map[string]interface{}
	var walk func(nodes []types.ElementNode)
	walk = func(nodes []types.ElementNode) {
		for _, node := range nodes {
			if node.Kind == kind && node.Styles != nil {
				styles = append(styles, node.Styles)
			}
			walk(node.Children)
		}
	}
	for _, page := range ir.Pages {
		walk(page.Children)
	}
	return styles
}

// ruleFor computes the shared rule for one kind. With deduplication the rule
// is the strict intersection: a property survives only if every instance
// carries it with the same value. Without deduplication the first instance's
// full dictionary is used as-is. The strictness is deliberate; a single
// divergent instance suppresses the shared property for its whole kind.
func ruleFor(instances []map[string]interface{}, deduplicate bool) map[string]interface{} {
	if len(instances) == 0 {
		return nil
	}
	if !deduplicate {
		return instances[0]
	}
	shared := map[string]interface{}{}
	for prop, value := range instances[0] {
		agreed := true
		for _, other := range instances[1:] {
			otherValue, ok := other[prop]
			if !ok || otherValue != value {
				agreed = false
				break
			}
		}
		if agreed {
			shared[prop] = value
		}
	}
	return shared
}

// Minify strips comments and insignificant whitespace from a stylesheet
// without touching property order, selector order, or value strings.
func Minify(css string) string {
	var b strings.Builder
	b.Grow(len(css))
	inComment := false
	pendingSpace := false
	var last byte
	for i := 0; i < len(css); i++ {
		c := css[i]
		if inComment {
			if c == '*' && i+1 < len(css) && css[i+1] == '/' {
				inComment = false
				i++
			}
			continue
		}
		if c == '/' && i+1 < len(css) && css[i+1] == '*' {
			inComment = true
			i++
			continue
		}
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			pendingSpace = true
			continue
		}
		if pendingSpace {
			// keep a space only where dropping it would fuse two tokens,
			// e.g. between a value and the next identifier
			if last != 0 && !isDelimiter(last) && !isDelimiter(c) {
				b.WriteByte(' ')
			}
			pendingSpace = false
		}
		b.WriteByte(c)
		last = c
	}
	return b.String()
}

func isDelimiter(c byte) bool {
	switch c {
	case '{', '}', ';', ':', ',':
		return true
	}
	return false
}
