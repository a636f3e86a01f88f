// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package export builds the curve extension payloads of
// the nodes of a scene.
package export

import (
	"context"
	"errors"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/utsuboco/gltfcurve/curve"
	"github.com/utsuboco/gltfcurve/scene"
)

const prefix = "export: "

func newErr(reason string) error { return errors.New(prefix + reason) }

// Payload is the extension payload of one node.
type Payload struct {
	// Name of the node the document belongs to.
	Name     string
	Document *curve.Document
	Report   *curve.Report
}

// filterEnv is the environment of Config.Filter.
type filterEnv struct {
	Name    string `expr:"name"`
	Kind    string `expr:"kind"`
	Splines int    `expr:"splines"`
}

// Exporter builds payloads for the nodes of a scene.
// It can be used concurrently.
type Exporter struct {
	cfg     Config
	builder curve.Builder
	filter  *vm.Program
	log     *slog.Logger
}

// New creates an exporter for cfg.
// log may be nil, in which case curve.Logger() is used.
func New(cfg Config, log *slog.Logger) (*Exporter, error) {
	log = curve.LoggerOr(log)
	e := &Exporter{
		cfg:     cfg,
		builder: curve.Builder{Policy: cfg.Policy, Log: log},
		log:     log,
	}
	if cfg.Filter != "" {
		prg, err := expr.Compile(cfg.Filter, expr.Env(filterEnv{}), expr.AsBool())
		if err != nil {
			return nil, newErr("filter: " + err.Error())
		}
		e.filter = prg
	}
	return e, nil
}

// Config returns the configuration of e.
func (e *Exporter) Config() Config { return e.cfg }

func (e *Exporter) selected(n *scene.Node) (bool, error) {
	if e.filter == nil {
		return true, nil
	}
	env := filterEnv{Name: n.Name, Kind: string(n.Kind)}
	if n.Data != nil {
		env.Splines = len(n.Data.Splines)
	}
	v, err := expr.Run(e.filter, env)
	if err != nil {
		return false, newErr("filter: " + n.Name + ": " + err.Error())
	}
	return v.(bool), nil
}

// Payload builds the payload of a single curve node.
// It returns a nil payload and a nil error when the node
// has no payload: the export is disabled, n is not a
// curve, n was filtered out, or every spline of a
// non-empty curve was dropped.
// A curve with no splines yields an empty document.
func (e *Exporter) Payload(n *scene.Node) (*Payload, error) {
	if !e.cfg.Enabled || n.Kind != scene.Curve {
		return nil, nil
	}
	if ok, err := e.selected(n); !ok || err != nil {
		return nil, err
	}
	doc, rep, err := e.builder.Build(n.Name, n.Data)
	if err != nil {
		return nil, err
	}
	if len(doc.Splines) == 0 && rep.Splines > 0 {
		e.log.Warn("no usable splines", "object", n.Name, "dropped", len(rep.Dropped))
		return nil, nil
	}
	return &Payload{Name: n.Name, Document: doc, Report: rep}, nil
}

// Gather builds the payloads for n.
// A curve node yields its own payload and a group yields
// the payloads of its members, recursively, in member
// order. Other kinds of node yield nothing.
//
// A failure affects only the node that caused it: the
// remaining payloads are still built, and the failures
// are combined into the returned error.
func (e *Exporter) Gather(n *scene.Node) ([]*Payload, error) {
	if !e.cfg.Enabled {
		return nil, nil
	}
	switch n.Kind {
	case scene.Curve:
		p, err := e.Payload(n)
		if p == nil {
			return nil, err
		}
		return []*Payload{p}, nil
	case scene.Group:
		members, err := n.Members()
		if err != nil {
			err := &curve.Error{
				Err:    curve.ErrHostContractViolation,
				Object: n.Name,
				Spline: -1,
				Point:  -1,
				Reason: err.Error(),
			}
			e.log.Error("cannot export group", "object", n.Name, "err", err)
			return nil, err
		}
		var ps []*Payload
		var errs error
		for _, m := range members {
			p, err := e.Gather(m)
			ps = append(ps, p...)
			errs = multierr.Append(errs, err)
		}
		return ps, errs
	default:
		return nil, nil
	}
}

// GatherAll builds the payloads of every exportable node
// of s. Nodes are processed concurrently, but payloads
// are returned in traversal order.
// The error combines the failures of all nodes, unless
// ctx is done, in which case ctx.Err() is returned.
func (e *Exporter) GatherAll(ctx context.Context, s *scene.Scene) ([]*Payload, error) {
	if !e.cfg.Enabled {
		e.log.Debug("curve export disabled")
		return nil, nil
	}
	var nodes []*scene.Node
	s.Exportable(func(n *scene.Node) { nodes = append(nodes, n) })

	res := make([][]*Payload, len(nodes))
	errs := make([]error, len(nodes))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.workers())
	for i, n := range nodes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res[i], errs[i] = e.Gather(n)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var ps []*Payload
	for _, r := range res {
		ps = append(ps, r...)
	}
	e.log.Debug("gathered curve payloads", "nodes", len(nodes), "payloads", len(ps))
	return ps, multierr.Combine(errs...)
}
