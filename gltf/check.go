// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package gltf

import (
	"errors"
	"slices"

	"github.com/utsuboco/gltfcurve/internal/mark"
)

func newErr(reason string) error {
	return errors.New("gltf: " + reason)
}

// Check checks that f is valid glTF.
// Only the properties decoded into GLTF are checked.
func (f *GLTF) Check() error {
	if s := f.Scene; s != nil && (*s < 0 || *s >= int64(len(f.Scenes))) {
		return newErr("invalid GLTF.Scene index")
	}
	for i := range f.Scenes {
		if err := f.Scenes[i].Check(f); err != nil {
			return err
		}
	}
	parent := mark.New(len(f.Nodes))
	for i := range f.Nodes {
		if err := f.Nodes[i].Check(f); err != nil {
			return err
		}
		for _, c := range f.Nodes[i].Children {
			if c == int64(i) {
				return newErr("Node.Children contains its own index")
			}
			if parent.Mark(int(c)) {
				return newErr("node has more than one parent")
			}
		}
	}
	for _, e := range f.ExtensionsRequired {
		if !slices.Contains(f.ExtensionsUsed, e) {
			return newErr("extension " + e + " required but not used")
		}
	}
	return nil
}

// Check checks that s is valid glTF.scenes' element.
func (s *Scene) Check(gltf *GLTF) error {
	for _, n := range s.Nodes {
		if n < 0 || n >= int64(len(gltf.Nodes)) {
			return newErr("invalid Scene.Nodes index")
		}
	}
	return nil
}

// Check checks that n is valid glTF.nodes' element.
func (n *Node) Check(gltf *GLTF) error {
	for _, c := range n.Children {
		if c < 0 || c >= int64(len(gltf.Nodes)) {
			return newErr("invalid Node.Children index")
		}
	}
	if n.Camera != nil && *n.Camera < 0 {
		return newErr("invalid Node.Camera index")
	}
	if n.Mesh != nil && *n.Mesh < 0 {
		return newErr("invalid Node.Mesh index")
	}
	return nil
}
