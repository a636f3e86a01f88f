// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package gltf

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
)

// patchOp is a single RFC 6902 operation.
type patchOp struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Attach sets the named extension of node to payload.
// The node's extensions object is created if absent and
// any previous payload for the same extension is replaced.
// name is listed in the root's extensionsUsed exactly once.
// extensionsRequired is never changed.
func (f *File) Attach(node int, name string, payload any) error {
	if node < 0 || node >= len(f.GLTF.Nodes) {
		return newErr("node index out of bounds")
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return newErr(name + ": " + err.Error())
	}
	ops := make([]patchOp, 0, 2)
	base := "/nodes/" + strconv.Itoa(node) + "/extensions"
	if f.GLTF.Nodes[node].Extensions == nil {
		ops = append(ops, patchOp{"add", base, map[string]json.RawMessage{name: raw}})
	} else {
		ops = append(ops, patchOp{"add", base + "/" + pointerEscaper.Replace(name), json.RawMessage(raw)})
	}
	switch {
	case f.GLTF.ExtensionsUsed == nil:
		ops = append(ops, patchOp{"add", "/extensionsUsed", []string{name}})
	case !slices.Contains(f.GLTF.ExtensionsUsed, name):
		ops = append(ops, patchOp{"add", "/extensionsUsed/-", name})
	}
	return f.apply(ops)
}

// apply applies ops to the JSON content of f and
// re-indexes it.
func (f *File) apply(ops []patchOp) error {
	b, err := json.Marshal(ops)
	if err != nil {
		return err
	}
	patch, err := jsonpatch.DecodePatch(b)
	if err != nil {
		return newErr("patch: " + err.Error())
	}
	doc, err := patch.Apply(f.json)
	if err != nil {
		return newErr("patch: " + err.Error())
	}
	prev := f.json
	f.json = doc
	if err := f.index(); err != nil {
		f.json = prev
		return err
	}
	return nil
}
