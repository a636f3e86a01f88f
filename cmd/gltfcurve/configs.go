// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type exportConfig struct {
	*cli.Command

	Scene   string `cli:"name=scene desc='scene description (YAML or JSON)'"`
	Config  string `cli:"name=config desc='export configuration (YAML)'"`
	Strict  bool   `cli:"name=strict desc='fail a curve when one of its splines cannot be encoded'"`
	Disable bool   `cli:"name=disable desc='do not attach any curve'"`
	Filter  string `cli:"name=filter desc='expression selecting the curves to export'"`
	Node    string `cli:"name=node desc='export only this node (or group)'"`
	Out     string `cli:"name=o desc='output file (default stdout)'"`
	Verbose bool   `cli:"name=v desc='log debug information'"`
}

type inspectConfig struct {
	*cli.Command

	Color   bool `cli:"name=color desc='always use colors'"`
	YUp     bool `cli:"name=yup desc='print first points in the Y-up space of glTF'"`
	Verbose bool `cli:"name=v desc='log debug information'"`
}

type diffConfig struct {
	*cli.Command

	Color   bool `cli:"name=color desc='always use colors'"`
	Verbose bool `cli:"name=v desc='log debug information'"`
}

// newLogger returns the logger of a command.
// Warnings always go to stderr; debug information
// only with -v or GLTFCURVE_DEBUG set.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose || os.Getenv("GLTFCURVE_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// palette colors the output of inspect and diff.
type palette struct {
	name   func(string, ...any) string
	kind   func(string, ...any) string
	number func(string, ...any) string
	insert func(string, ...any) string
	delete func(string, ...any) string
}

var noColors = &palette{fmt.Sprintf, fmt.Sprintf, fmt.Sprintf, fmt.Sprintf, fmt.Sprintf}

func newColors() *palette {
	return &palette{
		name:   color.RGB(128, 216, 236).SprintfFunc(),
		kind:   color.RGB(196, 96, 16).SprintfFunc(),
		number: color.RGB(198, 198, 46).SprintfFunc(),
		insert: color.GreenString,
		delete: color.RedString,
	}
}

// colors returns the palette for w.
// Colors are used when forced or when w is a terminal.
func colors(w io.Writer, force bool) *palette {
	if force {
		color.NoColor = false
		return newColors()
	}
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return noColors
	}
	return newColors()
}
