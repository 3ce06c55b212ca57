// Package harness is the in-process test kit the fixture binaries are built
// on: suites of cases registered at init time, a tree view of the hierarchy,
// and a runner that executes case bodies and collects their outcomes.
package harness

import "fmt"

// RootName is the name of the synthetic root suite.
const RootName = "All Tests"

// Case is a single runnable test case.
type Case struct {
	Name string
	Run  func(*T)
}

// Suite groups cases under a common name. SetUp and TearDown, when set,
// run before and after every case in the suite.
type Suite struct {
	Name     string
	SetUp    func()
	TearDown func()
	Cases    []Case
}

// Registry holds suites in registration order.
type Registry struct {
	suites []*Suite
	names  map[string]struct{}
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// Register adds a suite. A suite without a name, or a second suite with a
// name already taken, panics: fixtures register from init and a bad suite
// is a programming error.
func (r *Registry) Register(s *Suite) {
	if s.Name == "" {
		panic("harness: suite has no name")
	}
	if _, ok := r.names[s.Name]; ok {
		panic(fmt.Sprintf("harness: duplicate suite %q", s.Name))
	}
	r.names[s.Name] = struct{}{}
	r.suites = append(r.suites, s)
}

// Tree builds the runnable hierarchy: a root node named RootName whose
// children are the registered suites, each with one leaf per case. Case
// node names are qualified Suite::case.
func (r *Registry) Tree() *Node {
	root := &Node{Name: RootName}
	for _, s := range r.suites {
		suite := s
		sn := &Node{Name: s.Name}
		for i := range s.Cases {
			c := s.Cases[i]
			sn.Children = append(sn.Children, &Node{
				Name: s.Name + "::" + c.Name,
				run: func(col *Collector) {
					runCase(suite, c, col)
				},
			})
		}
		root.Children = append(root.Children, sn)
	}
	return root
}

// Default is the registry a fixture binary registers its suites into.
// fixture.Main falls back to it when no registry is given.
var Default = NewRegistry()
