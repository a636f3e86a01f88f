// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/scott-cotton/cli"
	"go.uber.org/multierr"

	"github.com/utsuboco/gltfcurve/curve"
	"github.com/utsuboco/gltfcurve/export"
	"github.com/utsuboco/gltfcurve/gltf"
	"github.com/utsuboco/gltfcurve/scene"
)

func (cfg *exportConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 || cfg.Scene == "" {
		return fmt.Errorf("%w: export requires -scene and exactly one input file", cli.ErrUsage)
	}
	log := newLogger(cfg.Verbose)
	curve.SetLogger(log)

	ecfg, err := cfg.sessionConfig()
	if err != nil {
		return err
	}
	sc, err := loadScene(cfg.Scene)
	if err != nil {
		return err
	}
	in, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer in.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	f, res, err := exportFile(ctx, in, sc, cfg.Node, ecfg, log)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	var w io.Writer = cc.Out
	if cfg.Out != "" {
		out, err := os.Create(cfg.Out)
		if err != nil {
			return err
		}
		defer out.Close()
		w = out
	}
	if err := gltf.Encode(w, f); err != nil {
		return err
	}
	log.Info("exported curves", "attached", res.Attached, "missing", len(res.Missing), "failed", len(res.Failed))
	if len(res.Failed) > 0 && ecfg.Policy == curve.Strict {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// sessionConfig returns the export configuration given by
// the -config file, overridden by the other flags.
func (cfg *exportConfig) sessionConfig() (export.Config, error) {
	ecfg := export.DefaultConfig()
	if cfg.Config != "" {
		file, err := os.Open(cfg.Config)
		if err != nil {
			return ecfg, err
		}
		defer file.Close()
		if ecfg, err = export.LoadConfig(file); err != nil {
			return ecfg, fmt.Errorf("%s: %w", cfg.Config, err)
		}
	}
	if cfg.Strict {
		ecfg.Policy = curve.Strict
	}
	if cfg.Disable {
		ecfg.Enabled = false
	}
	if cfg.Filter != "" {
		ecfg.Filter = cfg.Filter
	}
	return ecfg, nil
}

func loadScene(name string) (*scene.Scene, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	sc, err := scene.Load(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return sc, nil
}

// exportResult summarizes an export.
type exportResult struct {
	Attached int
	Missing  []string
	Failed   []error
}

// exportFile attaches the curves of sc to the glTF file
// read from r. If node is not empty, only the node with
// that name is exported.
// Failures of single nodes are logged and listed in the
// result; they do not fail the export.
func exportFile(ctx context.Context, r io.Reader, sc *scene.Scene, node string, cfg export.Config, log *slog.Logger) (*gltf.File, *exportResult, error) {
	f, err := gltf.Decode(r)
	if err != nil {
		return nil, nil, err
	}
	if err := f.GLTF.Check(); err != nil {
		return nil, nil, err
	}
	e, err := export.New(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	var ps []*export.Payload
	if node == "" {
		ps, err = e.GatherAll(ctx, sc)
	} else {
		n := sc.Lookup(node)
		if n == nil {
			return nil, nil, fmt.Errorf("scene has no node %q", node)
		}
		ps, err = e.Gather(n)
	}
	res := new(exportResult)
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, err
		}
		res.Failed = multierr.Errors(err)
	}
	missing, err := e.Attach(f, ps)
	if err != nil {
		return nil, nil, err
	}
	res.Missing = missing
	res.Attached = len(ps) - len(missing)
	if !f.IsBinary() {
		if err := f.Indent("", "  "); err != nil {
			return nil, nil, err
		}
	}
	return f, res, nil
}
