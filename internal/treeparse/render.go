package treeparse

import (
	"strings"

	"ofsconsole/internal/domain"
)

// DefaultIndent is the per-depth indentation Render uses when given none
const DefaultIndent = "  "

// Render writes the forest back out depth-first, one node per line, with
// directories suffixed by the path separator. Parsing the result yields the
// same names and kinds for any forest with a single top-level directory.
func Render(forest *domain.Forest, indent string) string {
	if forest == nil {
		return ""
	}
	if indent == "" {
		indent = DefaultIndent
	}

	var b strings.Builder
	for _, root := range forest.Roots {
		renderNode(&b, root, 0, indent)
	}
	return b.String()
}

func renderNode(b *strings.Builder, n *domain.TreeNode, depth int, indent string) {
	b.WriteString(strings.Repeat(indent, depth))
	b.WriteString(n.Name)
	if n.IsDir() {
		b.WriteString(domain.PathSeparator)
	}
	b.WriteString("\n")
	for _, child := range n.Children {
		renderNode(b, child, depth+1, indent)
	}
}
