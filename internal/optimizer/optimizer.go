// Package optimizer rewrites a DocumentIR without changing its meaning.
//
// The only pass today removes container nodes with nothing to contain; an
// empty container carries no information in the output. Style deduplication
// deliberately does not live here: merging property dictionaries differs
// between embedded and external stylesheets, so the generators own it.
package optimizer

import "github.com/pagewright/pagewright/internal/types"

// Optimize returns a copy of the IR with empty container nodes removed,
// recursively. Every other node keeps its identifier, attributes, and order.
func Optimize(ir types.DocumentIR) types.DocumentIR {
	out := ir
	out.Pages = make([]types.PageNode, len(ir.Pages))
	for i, page := range ir.Pages {
		page.Children = pruneEmptyContainers(page.Children)
		out.Pages[i] = page
	}
	return out
}

func pruneEmptyContainers(nodes []types.ElementNode) []types.ElementNode {
	if nodes == nil {
		return nil
	}
	out := make([]types.ElementNode, 0, len(nodes))
	for _, node := range nodes {
		node.Children = pruneEmptyContainers(node.Children)
		if node.Kind == types.KindContainer && len(node.Children) == 0 {
			continue
		}
		out = append(out, node)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
