// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package scene models the host scene that the curve
// exporter reads from.
package scene

// Scene is a named collection of root nodes.
type Scene struct {
	Name string
	root Node
}

// New creates an empty scene.
func New(name string) *Scene {
	s := &Scene{Name: name}
	s.root.root = true
	return s
}

// Add inserts n as the last root node of s.
func (s *Scene) Add(n *Node) { s.root.Insert(n) }

// ForEach calls f for every node in s.
// Ancestors are processed first.
func (s *Scene) ForEach(f func(*Node)) { s.root.ForEach(f) }

// Lookup returns the first node named name, or nil.
func (s *Scene) Lookup(name string) (n *Node) {
	s.root.Until(func(x *Node) bool {
		if x.Name == name {
			n = x
			return false
		}
		return true
	})
	return
}

// Exportable calls f for every node that the host's
// exporter visits on its own. These are all nodes except
// the members of groups, which are reached through the
// group that contains them. Descendants of members that
// are not groups themselves are visited.
// Ancestors are processed first.
func (s *Scene) Exportable(f func(*Node)) {
	s.ForEach(func(n *Node) {
		if p := n.Parent(); p == nil || p.Kind != Group {
			f(n)
		}
	})
}
