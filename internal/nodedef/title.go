package nodedef

import (
	"strings"

	"github.com/vk/portgraph/internal/node"
)

// retitle stores the current title of n and reports whether it changed.
func retitle(n *node.Node, t node.Titler) bool {
	title := t.Title(n)
	if title == n.Title {
		return false
	}
	n.Title = title
	return true
}

// renderGenerics replaces every "{Name}" in tmpl with what the generic
// currently stands for on n, or its name while unresolved.
func renderGenerics(n *node.Node, tmpl string, generics []string) string {
	if len(generics) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, 2*len(generics))
	for _, name := range generics {
		value := name
		if t, ok := n.ResolvedGeneric(name); ok {
			value = t.String()
		}
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// genericSuffix builds "<{A}, {B}>" for the given names.
func genericSuffix(generics []string) string {
	if len(generics) == 0 {
		return ""
	}
	parts := make([]string, len(generics))
	for i, g := range generics {
		parts[i] = "{" + g + "}"
	}
	return "<" + strings.Join(parts, ", ") + ">"
}
