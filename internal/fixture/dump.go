package fixture

import (
	"fmt"
	"io"
	"strings"

	"utp/internal/harness"
)

// Dump prints the hierarchy at node depth first. The root suite itself is
// never printed and its children start over at depth zero. Top level names
// end with a dot; deeper names print their unqualified suffix, indented
// two spaces per level.
func Dump(w io.Writer, node *harness.Node, depth int) {
	if node == nil {
		return
	}
	if node.Name == harness.RootName {
		for _, child := range node.Children {
			Dump(w, child, 0)
		}
		return
	}

	indent := strings.Repeat("  ", depth)
	if depth == 0 {
		fmt.Fprintf(w, "%s%s.\n", indent, node.Name)
	} else {
		fmt.Fprintf(w, "%s%s\n", indent, unqualified(node.Name))
	}
	for _, child := range node.Children {
		Dump(w, child, depth+1)
	}
}

// unqualified returns the name part after the last colon. Names without a
// colon come back whole.
func unqualified(name string) string {
	return name[strings.LastIndex(name, ":")+1:]
}
