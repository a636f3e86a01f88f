// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package main

import (
	"github.com/scott-cotton/cli"
)

const mainDescription = `gltfcurve carries curve objects into glTF files.

The curves of a scene description are converted into the payload of the
UTSUBO_curve_extension node extension and attached to the glTF nodes of
the same name.

Commands:
  export   attach the curves of a scene to a .gltf or .glb file
  inspect  list the curves carried by a file
  diff     compare the curves carried by two files

Set GLTFCURVE_DEBUG=1 (or pass -v) to log debug information to stderr.`

// MainCommand returns the root command of gltfcurve.
func MainCommand() *cli.Command {
	return cli.NewCommand("gltfcurve").
		WithSynopsis("gltfcurve command [opts] [args]").
		WithDescription(mainDescription).
		WithSubs(
			ExportCommand(),
			InspectCommand(),
			DiffCommand())
}

// ExportCommand returns the export subcommand.
func ExportCommand() *cli.Command {
	cfg := &exportConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "export").
		WithAliases("x").
		WithSynopsis("export -scene file [-config file] [-strict] [-disable] [-filter expr] [-o out] in.gltf|in.glb").
		WithDescription("attach the curves of a scene to the nodes of a glTF file").
		WithOpts(opts...).
		WithRun(cfg.run)
}

// InspectCommand returns the inspect subcommand.
func InspectCommand() *cli.Command {
	cfg := &inspectConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "inspect").
		WithAliases("i").
		WithSynopsis("inspect [-color] [-yup] file").
		WithDescription("list the nodes of a glTF file that carry curves").
		WithOpts(opts...).
		WithRun(cfg.run)
}

// DiffCommand returns the diff subcommand.
func DiffCommand() *cli.Command {
	cfg := &diffConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "diff").
		WithAliases("d").
		WithSynopsis("diff [-color] a b").
		WithDescription("compare the curves carried by two glTF files node by node").
		WithOpts(opts...).
		WithRun(cfg.run)
}
