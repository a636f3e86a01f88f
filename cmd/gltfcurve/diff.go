// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/utsuboco/gltfcurve/curve"
	"github.com/utsuboco/gltfcurve/gltf"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func (cfg *diffConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 files, got %v", cli.ErrUsage, args)
	}
	a, err := decodeFile(args[0])
	if err != nil {
		return err
	}
	b, err := decodeFile(args[1])
	if err != nil {
		return err
	}
	differ, err := diffFiles(cc.Out, a, b, colors(cc.Out, cfg.Color))
	if err != nil {
		return err
	}
	if differ {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// curveTexts returns the indented JSON of the curve
// payloads of f by node name.
func curveTexts(f *gltf.File) (map[string]string, error) {
	m := make(map[string]string)
	for i := range f.GLTF.Nodes {
		var doc curve.Document
		ok, err := f.Extension(i, curve.ExtensionName, &doc)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", nodeName(f, i), err)
		}
		if !ok {
			continue
		}
		b, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		m[nodeName(f, i)] = string(b) + "\n"
	}
	return m, nil
}

// diffFiles writes a line diff of the curve payloads of
// a and b to w, node by node.
// It returns whether any payload differs.
func diffFiles(w io.Writer, a, b *gltf.File, p *palette) (bool, error) {
	ta, err := curveTexts(a)
	if err != nil {
		return false, err
	}
	tb, err := curveTexts(b)
	if err != nil {
		return false, err
	}
	var names []string
	for k := range ta {
		names = append(names, k)
	}
	for k := range tb {
		if _, ok := ta[k]; !ok {
			names = append(names, k)
		}
	}
	slices.Sort(names)

	dmp := diffpatch.New()
	differ := false
	for _, name := range names {
		x, y := ta[name], tb[name]
		if x == y {
			continue
		}
		differ = true
		fmt.Fprintf(w, "%s %s\n", p.name("@@"), p.name("%s", name))
		cx, cy, lines := dmp.DiffLinesToChars(x, y)
		diffs := dmp.DiffCharsToLines(dmp.DiffMain(cx, cy, false), lines)
		for _, d := range diffs {
			for _, line := range strings.SplitAfter(d.Text, "\n") {
				if line == "" {
					continue
				}
				line = strings.TrimSuffix(line, "\n")
				switch d.Type {
				case diffpatch.DiffInsert:
					fmt.Fprintln(w, p.insert("+ %s", line))
				case diffpatch.DiffDelete:
					fmt.Fprintln(w, p.delete("- %s", line))
				case diffpatch.DiffEqual:
					fmt.Fprintln(w, "  "+line)
				}
			}
		}
	}
	return differ, nil
}
