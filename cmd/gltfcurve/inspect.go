// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/scott-cotton/cli"

	"github.com/utsuboco/gltfcurve/curve"
	"github.com/utsuboco/gltfcurve/gltf"
	"github.com/utsuboco/gltfcurve/tess"
)

func (cfg *inspectConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: inspect requires exactly one file", cli.ErrUsage)
	}
	log := newLogger(cfg.Verbose)
	f, err := decodeFile(args[0])
	if err != nil {
		return err
	}
	if err := f.GLTF.Check(); err != nil {
		log.Warn("invalid glTF", "file", args[0], "err", err)
	}
	return inspect(cc.Out, f, colors(cc.Out, cfg.Color), cfg.YUp, log)
}

func decodeFile(name string) (*gltf.File, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	f, err := gltf.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

// nodeName returns the name of node i of f, or its index
// when it has none.
func nodeName(f *gltf.File, i int) string {
	if s := f.GLTF.Nodes[i].Name; s != "" {
		return s
	}
	return "#" + strconv.Itoa(i)
}

// inspect writes a summary of the curves carried by f.
func inspect(w io.Writer, f *gltf.File, p *palette, yup bool, log *slog.Logger) error {
	n := 0
	for i := range f.GLTF.Nodes {
		var doc curve.Document
		ok, err := f.Extension(i, curve.ExtensionName, &doc)
		if err != nil {
			return fmt.Errorf("node %s: %w", nodeName(f, i), err)
		}
		if !ok {
			continue
		}
		n++
		length := "?"
		if l, err := tess.DocumentLength(&doc); err != nil {
			log.Warn("cannot measure curve", "node", nodeName(f, i), "err", err)
		} else {
			length = strconv.FormatFloat(l, 'g', 6, 64)
		}
		fmt.Fprintf(w, "%s %s %s, %s splines, length %s\n",
			p.number("%d", i), p.name("%s", nodeName(f, i)), doc.Dimensions,
			p.number("%d", len(doc.Splines)), p.number("%s", length))
		for j := range doc.Splines {
			s := &doc.Splines[j]
			fmt.Fprintf(w, "  %d %s, %d points, resolution %d", j, p.kind("%s", s.Type()), s.Len(), s.Resolution)
			if o, ok := s.Order(); ok {
				fmt.Fprintf(w, ", order %d", o)
			}
			if s.Cyclic {
				fmt.Fprint(w, ", cyclic")
			}
			if co, ok := first(s); ok {
				if yup {
					v := tess.ToYUp(co)
					co = curve.Point(v)
				}
				fmt.Fprintf(w, ", from %v", co)
			}
			fmt.Fprintln(w)
		}
	}
	if n == 0 {
		fmt.Fprintln(w, "no curves")
	}
	return nil
}

// first returns the position of the first control
// point of s.
func first(s *curve.Spline) (curve.Point, bool) {
	if s.Len() == 0 {
		return curve.Point{}, false
	}
	switch v := s.Variant.(type) {
	case *curve.Bezier:
		return v.Points[0].Co, true
	case *curve.NURBS:
		return v.Points[0].Co, true
	case *curve.Poly:
		return v.Points[0].Co, true
	default:
		panic("unreachable")
	}
}
