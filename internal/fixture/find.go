package fixture

import "utp/internal/harness"

// Find returns the first node whose name matches, depth first. A node
// matches on its full name or on its unqualified suffix. Returns nil when
// nothing matches.
func Find(node *harness.Node, name string) *harness.Node {
	if node == nil {
		return nil
	}
	if node.Name == name || unqualified(node.Name) == name {
		return node
	}
	for _, child := range node.Children {
		if found := Find(child, name); found != nil {
			return found
		}
	}
	return nil
}
