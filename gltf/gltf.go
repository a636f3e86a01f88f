// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package gltf implements reading, patching and writing of
// glTF 2.0 files.
//
// Only the parts of the glTF object model that are needed
// to locate nodes and their extensions are decoded. Every
// other property is kept as-is in the raw JSON, so a file
// that is decoded, patched and encoded again loses nothing.
package gltf

import (
	"bytes"
	"encoding/json"
	"io"
)

// Root glTF object (partial).
type GLTF struct {
	ExtensionsUsed     []string `json:"extensionsUsed,omitempty"`
	ExtensionsRequired []string `json:"extensionsRequired,omitempty"`
	Asset              struct {
		Generator string `json:"generator,omitempty"`
		Version   string `json:"version"`
	} `json:"asset"`
	Nodes  []Node  `json:"nodes,omitempty"`
	Scene  *int64  `json:"scene,omitempty"`
	Scenes []Scene `json:"scenes,omitempty"`
}

// glTF.nodes' element (partial).
type Node struct {
	Camera     *int64                     `json:"camera,omitempty"`
	Children   []int64                    `json:"children,omitempty"`
	Mesh       *int64                     `json:"mesh,omitempty"`
	Name       string                     `json:"name,omitempty"`
	Extensions map[string]json.RawMessage `json:"extensions,omitempty"`
}

// glTF.scenes' element (partial).
type Scene struct {
	Nodes []int64 `json:"nodes,omitempty"`
	Name  string  `json:"name,omitempty"`
}

// File is a glTF document.
// It may have been read from either a .gltf (JSON) or
// a .glb (binary) blob.
type File struct {
	// GLTF is the decoded view of the JSON.
	// It must not be modified directly; use the
	// methods of File instead.
	GLTF GLTF

	json []byte
	bin  []byte
	glb  bool
}

// Decode decodes r into a new File.
// r may refer to either JSON or GLB data.
func Decode(r io.Reader) (*File, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f := new(File)
	if IsGLB(bytes.NewReader(b)) {
		f.glb = true
		if f.json, f.bin, err = ReadGLB(b); err != nil {
			return nil, err
		}
	} else {
		f.json = b
	}
	if err := f.index(); err != nil {
		return nil, err
	}
	return f, nil
}

// Encode encodes f into w.
// The output is GLB if f was decoded from GLB
// and JSON otherwise.
func Encode(w io.Writer, f *File) error {
	if f.glb {
		return WriteGLB(w, f.json, f.bin)
	}
	_, err := w.Write(f.json)
	return err
}

// IsBinary returns whether f was decoded from GLB.
func (f *File) IsBinary() bool { return f.glb }

// JSON returns the JSON content of f.
// The caller must not modify the returned slice.
func (f *File) JSON() []byte { return f.json }

// index decodes f.json into f.GLTF.
func (f *File) index() error {
	var gltf GLTF
	if err := json.Unmarshal(f.json, &gltf); err != nil {
		return newErr("invalid JSON: " + err.Error())
	}
	if gltf.Asset.Version == "" {
		return newErr("missing asset.version")
	}
	f.GLTF = gltf
	return nil
}

// NodeIndex returns the index of the first node named name.
func (f *File) NodeIndex(name string) (int, bool) {
	for i := range f.GLTF.Nodes {
		if f.GLTF.Nodes[i].Name == name {
			return i, true
		}
	}
	return -1, false
}

// Extension decodes the named extension of node into v.
// It returns false if the node does not have the extension.
func (f *File) Extension(node int, name string, v any) (bool, error) {
	if node < 0 || node >= len(f.GLTF.Nodes) {
		return false, newErr("node index out of bounds")
	}
	raw, ok := f.GLTF.Nodes[node].Extensions[name]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, newErr(name + ": " + err.Error())
	}
	return true, nil
}

// Indent re-indents the JSON content of f.
func (f *File) Indent(prefix, indent string) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, f.json, prefix, indent); err != nil {
		return err
	}
	f.json = buf.Bytes()
	return nil
}
