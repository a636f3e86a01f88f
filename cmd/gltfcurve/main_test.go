// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/utsuboco/gltfcurve/curve"
	"github.com/utsuboco/gltfcurve/export"
	"github.com/utsuboco/gltfcurve/gltf"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func exportTestFile(t *testing.T, cfg export.Config) (*gltf.File, *exportResult) {
	t.Helper()
	return exportTestNode(t, "", cfg)
}

func exportTestNode(t *testing.T, node string, cfg export.Config) (*gltf.File, *exportResult) {
	t.Helper()
	sc, err := loadScene("testdata/scene.yaml")
	require.NoError(t, err)
	in, err := os.Open("testdata/in.gltf")
	require.NoError(t, err)
	defer in.Close()
	f, res, err := exportFile(context.Background(), in, sc, node, cfg, discard)
	require.NoError(t, err)
	return f, res
}

func TestExportFile(t *testing.T) {
	f, res := exportTestFile(t, export.DefaultConfig())
	require.Equal(t, 2, res.Attached)
	require.Equal(t, []string{"Lost"}, res.Missing)
	require.Empty(t, res.Failed)

	var buf bytes.Buffer
	require.NoError(t, gltf.Encode(&buf, f))
	require.Contains(t, buf.String(), "\n  ")

	g, err := gltf.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, []string{curve.ExtensionName}, g.GLTF.ExtensionsUsed)
	require.Nil(t, g.GLTF.ExtensionsRequired)

	var doc curve.Document
	ok, err := g.Extension(0, curve.ExtensionName, &doc)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, doc.Splines, 1)
	require.Equal(t, curve.Tbezier, doc.Splines[0].Type())

	ok, err = g.Extension(3, curve.ExtensionName, &doc)
	require.NoError(t, err)
	require.False(t, ok)

	cfg := export.DefaultConfig()
	cfg.Enabled = false
	f, res = exportTestFile(t, cfg)
	require.Zero(t, res.Attached)
	require.Nil(t, f.GLTF.ExtensionsUsed)
}

func TestExportNode(t *testing.T) {
	f, res := exportTestNode(t, "Curves", export.DefaultConfig())
	require.Equal(t, 1, res.Attached)
	require.Empty(t, res.Missing)
	ok, err := f.Extension(0, curve.ExtensionName, new(curve.Document))
	require.NoError(t, err)
	require.False(t, ok)
	ok, err = f.Extension(2, curve.ExtensionName, new(curve.Document))
	require.NoError(t, err)
	require.True(t, ok)

	sc, err := loadScene("testdata/scene.yaml")
	require.NoError(t, err)
	in, err := os.Open("testdata/in.gltf")
	require.NoError(t, err)
	defer in.Close()
	_, _, err = exportFile(context.Background(), in, sc, "Nope", export.DefaultConfig(), discard)
	require.ErrorContains(t, err, `"Nope"`)
}

func TestSessionConfig(t *testing.T) {
	cfg := &exportConfig{Config: "testdata/config.yaml"}
	ecfg, err := cfg.sessionConfig()
	require.NoError(t, err)
	require.Equal(t, export.Config{Enabled: true, Policy: curve.Lenient, Filter: `kind == "CURVE"`, Workers: 2}, ecfg)

	cfg.Strict = true
	cfg.Disable = true
	cfg.Filter = `name == "Path"`
	ecfg, err = cfg.sessionConfig()
	require.NoError(t, err)
	require.Equal(t, export.Config{Enabled: false, Policy: curve.Strict, Filter: `name == "Path"`, Workers: 2}, ecfg)

	ecfg, err = (&exportConfig{}).sessionConfig()
	require.NoError(t, err)
	require.Equal(t, export.DefaultConfig(), ecfg)

	_, err = (&exportConfig{Config: "testdata/none.yaml"}).sessionConfig()
	require.Error(t, err)
}

func TestInspect(t *testing.T) {
	f, _ := exportTestFile(t, export.DefaultConfig())
	var buf bytes.Buffer
	require.NoError(t, inspect(&buf, f, noColors, false, discard))
	out := buf.String()
	require.Contains(t, out, "0 Path 3D, 1 splines, length 3\n")
	require.Contains(t, out, "  0 BEZIER, 2 points, resolution 12, from [0 0 0]\n")
	require.Contains(t, out, "2 Square 2D, 1 splines, length 4.")
	require.Contains(t, out, "  0 POLY, 4 points, resolution 2, cyclic, from [0 0 0]\n")
	require.NotContains(t, out, "Cube")

	g, err := decodeFile("testdata/in.gltf")
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, inspect(&buf, g, noColors, true, discard))
	require.Equal(t, "no curves\n", buf.String())
}

func TestDiff(t *testing.T) {
	f, _ := exportTestFile(t, export.DefaultConfig())
	var buf bytes.Buffer
	differ, err := diffFiles(&buf, f, f, noColors)
	require.NoError(t, err)
	require.False(t, differ)
	require.Empty(t, buf.String())

	cfg := export.DefaultConfig()
	cfg.Filter = `name != "Square"`
	g, _ := exportTestFile(t, cfg)
	differ, err = diffFiles(&buf, f, g, noColors)
	require.NoError(t, err)
	require.True(t, differ)
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "@@ Square\n"), out)
	require.NotContains(t, out, "@@ Path")
	require.Contains(t, out, "\n- {\n")
	require.Contains(t, out, `"type": "POLY",`)
	require.NotContains(t, out, "+ ")
}

func TestColors(t *testing.T) {
	var buf bytes.Buffer
	require.Same(t, noColors, colors(&buf, false))
	require.NotSame(t, noColors, colors(&buf, true))
}
