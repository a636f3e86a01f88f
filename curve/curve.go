// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package curve implements the conversion of a curve object's
// splines into the document carried by the UTSUBO_curve_extension
// glTF extension.
package curve

import (
	"errors"
)

// Point is a position in the curve's local object space.
type Point [3]float64

// BezierPoint is a control point of a Bézier spline.
// The three positions are independent of each other.
type BezierPoint struct {
	Co          Point `json:"co"`
	HandleLeft  Point `json:"handle_left"`
	HandleRight Point `json:"handle_right"`
}

// WeightedPoint is a control point of a NURBS spline.
type WeightedPoint struct {
	Co Point   `json:"co"`
	W  float64 `json:"w"` // Default is 1.
}

// PlainPoint is a control point of a poly spline.
type PlainPoint struct {
	Co Point `json:"co"`
}

// Type is the tag identifying a spline variant.
type Type string

// Type values.
const (
	Tbezier Type = "BEZIER"
	Tnurbs  Type = "NURBS"
	Tpoly   Type = "POLY"
)

// ParseType parses s as a Type.
func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case Tbezier, Tnurbs, Tpoly:
		return t, nil
	}
	return "", errors.New(prefix + "undefined spline type " + s)
}

// Dimensions is the declared dimensionality of a curve.
type Dimensions string

// Dimensions values.
const (
	D2 Dimensions = "2D"
	D3 Dimensions = "3D"
)

// ParseDimensions parses s as a Dimensions value.
func ParseDimensions(s string) (Dimensions, error) {
	switch d := Dimensions(s); d {
	case D2, D3:
		return d, nil
	}
	return "", errors.New(prefix + "undefined dimensions " + s)
}

// Variant is the closed set of spline variants.
// It is implemented by *Bezier, *NURBS and *Poly only,
// and a type switch over these three is exhaustive.
type Variant interface {
	// Type returns the tag of the variant.
	Type() Type

	// Len returns the number of control points.
	Len() int

	variant()
}

// Bezier is the Bézier spline variant.
type Bezier struct {
	Points []BezierPoint
}

// NURBS is the NURBS spline variant.
type NURBS struct {
	Points []WeightedPoint
	Order  int
}

// Poly is the poly spline variant.
type Poly struct {
	Points []PlainPoint
}

func (*Bezier) Type() Type { return Tbezier }
func (*NURBS) Type() Type  { return Tnurbs }
func (*Poly) Type() Type   { return Tpoly }

func (v *Bezier) Len() int { return len(v.Points) }
func (v *NURBS) Len() int  { return len(v.Points) }
func (v *Poly) Len() int   { return len(v.Points) }

func (*Bezier) variant() {}
func (*NURBS) variant()  {}
func (*Poly) variant()   {}

// Spline is one continuous segment of a curve.
// The point type is given by the embedded Variant, so the
// spline's tag always agrees with its points.
type Spline struct {
	Variant
	Cyclic     bool
	Resolution int
}

// Order returns the B-spline order of s.
// ok is false unless s is a NURBS spline.
func (s *Spline) Order() (order int, ok bool) {
	if v, isNURBS := s.Variant.(*NURBS); isNURBS {
		return v.Order, true
	}
	return 0, false
}

// Document is the payload of the curve extension.
// It is built anew on every export and never mutated
// afterwards.
type Document struct {
	Splines    []Spline
	Dimensions Dimensions
}

// ExtensionName is the name of the glTF extension whose
// node payload is a Document.
const ExtensionName = "UTSUBO_curve_extension"
