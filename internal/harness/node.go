package harness

// Node is one element of the test hierarchy. Interior nodes are suites,
// leaves carry a runnable case.
type Node struct {
	Name     string
	Children []*Node

	run func(*Collector)
}

// Leaf reports whether the node is a runnable case.
func (n *Node) Leaf() bool {
	return n.run != nil
}

// Run executes every case at or below the node, depth first, feeding
// results into col. Cases run sequentially so collected IDs follow the
// hierarchy order.
func (n *Node) Run(col *Collector) {
	if n.run != nil {
		n.run(col)
		return
	}
	for _, child := range n.Children {
		child.Run(col)
	}
}
