// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package curve

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Coords is a host coordinate tuple.
// Its arity and element types are whatever the host
// provides; Coerce is applied to each slot on use.
type Coords []any

// SourceBezierPoint is a host Bézier control point.
type SourceBezierPoint struct {
	Co          Coords
	HandleLeft  Coords
	HandleRight Coords
}

// SourceSpline is a host spline.
// Type is the host's tag ("BEZIER", "NURBS", "POLY" or
// anything else). Bézier splines read BezierPoints and
// every other tag reads Points.
type SourceSpline struct {
	Type         string
	BezierPoints []SourceBezierPoint
	Points       []Coords
	Cyclic       bool
	Resolution   int
	Order        int // Only meaningful for NURBS.
}

// SourceCurve is the curve data of a host object.
type SourceCurve struct {
	Splines    []SourceSpline
	Dimensions string
}

// Coerce converts a host number to float64.
// It accepts every Go integer and floating-point kind
// (including named types), json.Number and numeric strings.
func Coerce(v any) (float64, error) {
	f, err := coerce(v)
	if err != nil {
		return 0, errors.New(prefix + err.Error())
	}
	return f, nil
}

func coerce(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", string(x))
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", x)
		}
		return f, nil
	case nil:
		return 0, errors.New("missing number")
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.CanFloat():
		return rv.Float(), nil
	case rv.CanInt():
		return float64(rv.Int()), nil
	case rv.CanUint():
		return float64(rv.Uint()), nil
	}
	return 0, fmt.Errorf("not a number: %T", v)
}

// Finite reports whether f is neither NaN nor infinite.
func Finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// slot coerces c[i].
func (c Coords) slot(i int) (float64, error) {
	f, err := coerce(c[i])
	if err != nil {
		return 0, fmt.Errorf("slot %d: %w", i, err)
	}
	return f, nil
}

// point coerces the first three slots of c.
// It fails if c has fewer than three slots.
func (c Coords) point() (p Point, err error) {
	if len(c) < 3 {
		err = fmt.Errorf("expected at least 3 coordinates, got %d", len(c))
		return
	}
	for i := range p {
		if p[i], err = c.slot(i); err != nil {
			return
		}
	}
	return
}
