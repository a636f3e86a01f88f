// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/utsuboco/gltfcurve/curve"
)

// Kind is the host's object type.
// Values other than the constants below are valid and
// describe nodes that carry no curve data.
type Kind string

// Kind values.
const (
	Curve Kind = "CURVE"
	Group Kind = "COLLECTION"
	Mesh  Kind = "MESH"
	Empty Kind = "EMPTY"
)

// ErrNoMembers means that a group's members cannot be
// enumerated.
var ErrNoMembers = errors.New("scene: group members cannot be enumerated")

// Node represents a single node in a scene graph.
// Nodes have at most one immediate ancestor and
// an arbitrary number of immediate descendants.
// The descendants of a Group node are its members.
type Node struct {
	next *Node
	prev *Node
	sub  *Node

	// Name identifies the node in the exported glTF.
	Name string
	Kind Kind

	// Data is the curve data of a Curve node.
	// The host may leave it nil, which the exporter
	// treats as a contract violation.
	Data *curve.SourceCurve

	// Names of members that could not be resolved.
	missing []string
	// Set on the root of a Scene.
	root bool
}

// NewNode creates a node.
func NewNode(name string, kind Kind) *Node { return &Node{Name: name, Kind: kind} }

// Insert inserts node sub as the last immediate
// descendant of node n.
// sub must be either a descendant of n or part of
// an unrelated graph - it must not be an ancestor
// of node n.
func (n *Node) Insert(sub *Node) {
	sub.Remove()
	if n.sub == nil {
		sub.prev = n
		n.sub = sub
		return
	}
	last := n.sub
	for last.next != nil {
		last = last.next
	}
	last.next = sub
	sub.prev = last
}

// Remove removes node n from its immediate ancestor.
func (n *Node) Remove() {
	// prev of the first descendant refers to the ancestor.
	if n.prev != nil {
		if n.prev.sub == n {
			n.prev.sub = n.next
		} else {
			n.prev.next = n.next
		}
		if n.next != nil {
			n.next.prev = n.prev
		}
		n.prev = nil
		n.next = nil
	}
}

// Parent returns the immediate ancestor of n, or nil.
func (n *Node) Parent() *Node {
	for x := n; x.prev != nil; x = x.prev {
		if x.prev.sub == x {
			if x.prev.root {
				return nil
			}
			return x.prev
		}
	}
	return nil
}

// Children returns the immediate descendants of n
// in insertion order.
func (n *Node) Children() (s []*Node) {
	for x := n.sub; x != nil; x = x.next {
		s = append(s, x)
	}
	return
}

// Members returns the members of a Group node.
// It fails with ErrNoMembers if n is not a group or
// if some of its members could not be resolved.
func (n *Node) Members() ([]*Node, error) {
	if n.Kind != Group {
		return nil, errors.New("scene: " + n.Name + " is not a group")
	}
	if len(n.missing) > 0 {
		return nil, fmt.Errorf("%w: unresolved %s", ErrNoMembers, strings.Join(n.missing, ", "))
	}
	return n.Children(), nil
}

// ForEach calls f for each descendant of node n.
// Ancestors are processed first.
// The scene graph must not be changed until this
// method returns.
func (n *Node) ForEach(f func(*Node)) {
	n.Until(func(n *Node) bool {
		f(n)
		return true
	})
}

// Until calls f for each descendant of node n.
// Ancestors are processed first. If f returns false,
// Until returns immediately.
// The scene graph must not be changed until this
// method returns.
func (n *Node) Until(f func(*Node) bool) {
	if n.sub == nil {
		return
	}
	que := []*Node{n.sub}
	for len(que) > 0 {
		for nd := que[0]; nd != nil; nd = nd.next {
			if !f(nd) {
				return
			}
			if sub := nd.sub; sub != nil {
				que = append(que, sub)
			}
		}
		que = que[1:]
	}
}
