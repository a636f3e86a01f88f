// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/utsuboco/gltfcurve/curve"
	"github.com/utsuboco/gltfcurve/internal/mark"
)

func newErr(reason string) error { return errors.New("scene: " + reason) }

// Scene description file.
// JSON is accepted as well, since it is a subset of YAML.
type file struct {
	Scene string     `yaml:"scene"`
	Nodes []fileNode `yaml:"nodes"`
}

type fileNode struct {
	Name     string     `yaml:"name"`
	Kind     string     `yaml:"kind"`
	Children []string   `yaml:"children"`
	Curve    *fileCurve `yaml:"curve"`
}

type fileCurve struct {
	Dimensions string       `yaml:"dimensions"` // Default is "3D".
	Splines    []fileSpline `yaml:"splines"`
}

type fileSpline struct {
	Type         string            `yaml:"type"`
	BezierPoints []fileBezierPoint `yaml:"bezier_points"`
	Points       []curve.Coords    `yaml:"points"`
	UseCyclicU   bool              `yaml:"use_cyclic_u"`
	ResolutionU  int               `yaml:"resolution_u"`
	OrderU       int               `yaml:"order_u"`
}

type fileBezierPoint struct {
	Co          curve.Coords `yaml:"co"`
	HandleLeft  curve.Coords `yaml:"handle_left"`
	HandleRight curve.Coords `yaml:"handle_right"`
}

// Load decodes a scene description from r.
//
// Nodes are listed flat and refer to their descendants
// by name. Nodes that no other node refers to become
// root nodes, in file order. A group may refer to names
// that do not exist; such a group fails to enumerate
// its members. Any other dangling reference, a node
// with more than one ancestor or a cycle is an error.
func Load(r io.Reader) (*Scene, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return f.scene()
}

func (f *file) scene() (*Scene, error) {
	nodes := make([]*Node, len(f.Nodes))
	index := make(map[string]int, len(f.Nodes))
	for i := range f.Nodes {
		fn := &f.Nodes[i]
		if fn.Name == "" {
			return nil, newErr(fmt.Sprintf("node %d has no name", i))
		}
		if _, dup := index[fn.Name]; dup {
			return nil, newErr("duplicate node name " + fn.Name)
		}
		index[fn.Name] = i
		nodes[i] = NewNode(fn.Name, Kind(strings.ToUpper(fn.Kind)))
		if fn.Curve != nil {
			nodes[i].Data = fn.Curve.source()
		}
	}

	parented := mark.New(len(nodes))
	for i := range f.Nodes {
		for _, name := range f.Nodes[i].Children {
			j, ok := index[name]
			switch {
			case !ok && nodes[i].Kind == Group:
				nodes[i].missing = append(nodes[i].missing, name)
				continue
			case !ok:
				return nil, newErr(fmt.Sprintf("%s refers to undefined node %s", nodes[i].Name, name))
			case j == i:
				return nil, newErr(nodes[i].Name + " refers to itself")
			case parented.Mark(j):
				return nil, newErr(name + " has more than one ancestor")
			}
			nodes[i].Insert(nodes[j])
		}
	}

	s := New(f.Scene)
	parented.Unmarked(func(i int) { s.Add(nodes[i]) })

	reached := mark.New(len(nodes))
	s.ForEach(func(n *Node) { reached.Mark(index[n.Name]) })
	var cycle []string
	reached.Unmarked(func(i int) { cycle = append(cycle, nodes[i].Name) })
	if len(cycle) > 0 {
		return nil, newErr("cycle among " + strings.Join(cycle, ", "))
	}
	return s, nil
}

func (c *fileCurve) source() *curve.SourceCurve {
	src := &curve.SourceCurve{
		Splines:    make([]curve.SourceSpline, len(c.Splines)),
		Dimensions: c.Dimensions,
	}
	if src.Dimensions == "" {
		src.Dimensions = string(curve.D3)
	}
	for i := range c.Splines {
		fs := &c.Splines[i]
		ss := &src.Splines[i]
		ss.Type = strings.ToUpper(fs.Type)
		ss.Points = fs.Points
		ss.Cyclic = fs.UseCyclicU
		ss.Resolution = fs.ResolutionU
		ss.Order = fs.OrderU
		if len(fs.BezierPoints) > 0 {
			ss.BezierPoints = make([]curve.SourceBezierPoint, len(fs.BezierPoints))
			for j, p := range fs.BezierPoints {
				ss.BezierPoints[j] = curve.SourceBezierPoint{
					Co:          p.Co,
					HandleLeft:  p.HandleLeft,
					HandleRight: p.HandleRight,
				}
			}
		}
	}
	return src
}
