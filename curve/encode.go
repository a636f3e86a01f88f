// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package curve

import (
	"fmt"
)

// Encode converts src into a Spline.
//
// Point order is preserved as given by the host. Tags other
// than BEZIER and NURBS are encoded as POLY; for tags that
// are not POLY either, the returned warnings include an
// ErrUnsupportedSplineType error.
//
// A control point with fewer than three coordinates or with
// a slot that is not a number causes an ErrMalformedControlPoint
// error. A NaN or infinite coordinate causes an
// ErrNonFiniteCoordinate error, which is also reported as a
// warning. Points given in the collection that the tag does
// not read (Points for BEZIER, BezierPoints otherwise) are
// also an ErrMalformedControlPoint error.
// The Spline is the zero value whenever err is non-nil.
//
// Encode does not depend on any state other than src, so
// calling it twice with the same input yields equal output.
func Encode(src *SourceSpline) (s Spline, warns []*Error, err error) {
	var e *Error
	if e = mismatch(src); e != nil {
		return Spline{}, nil, e
	}
	switch Type(src.Type) {
	case Tbezier:
		s.Variant, e = encodeBezier(src.BezierPoints)
	case Tnurbs:
		s.Variant, e = encodeNURBS(src.Points, src.Order)
	case Tpoly:
		s.Variant, e = encodePoly(src.Points)
	default:
		warns = append(warns, &Error{
			Err:    ErrUnsupportedSplineType,
			Spline: -1,
			Point:  -1,
			Reason: fmt.Sprintf("%q encoded as %s", src.Type, Tpoly),
		})
		s.Variant, e = encodePoly(src.Points)
	}
	if e != nil {
		if e.Err == ErrNonFiniteCoordinate {
			warns = append(warns, e)
		}
		return Spline{}, warns, e
	}
	s.Cyclic = src.Cyclic
	s.Resolution = src.Resolution
	return
}

// mismatch checks that src carries no points in the
// collection its tag ignores.
func mismatch(src *SourceSpline) *Error {
	var n int
	var field string
	if Type(src.Type) == Tbezier {
		n, field = len(src.Points), "points"
	} else {
		n, field = len(src.BezierPoints), "bezier points"
	}
	if n == 0 {
		return nil
	}
	return &Error{
		Err:    ErrMalformedControlPoint,
		Spline: -1,
		Point:  -1,
		Reason: fmt.Sprintf("%q spline has %d %s", src.Type, n, field),
	}
}

func encodeBezier(src []SourceBezierPoint) (Variant, *Error) {
	v := &Bezier{Points: make([]BezierPoint, len(src))}
	for i := range src {
		var err *Error
		p := &v.Points[i]
		if p.Co, err = encodePoint(src[i].Co, i, "co"); err != nil {
			return nil, err
		}
		if p.HandleLeft, err = encodePoint(src[i].HandleLeft, i, "handle_left"); err != nil {
			return nil, err
		}
		if p.HandleRight, err = encodePoint(src[i].HandleRight, i, "handle_right"); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func encodeNURBS(src []Coords, order int) (Variant, *Error) {
	v := &NURBS{Points: make([]WeightedPoint, len(src)), Order: order}
	for i := range src {
		var err *Error
		p := &v.Points[i]
		if p.Co, err = encodePoint(src[i], i, "co"); err != nil {
			return nil, err
		}
		p.W = 1
		if len(src[i]) > 3 {
			w, e := src[i].slot(3)
			if e != nil {
				return nil, pointErr(ErrMalformedControlPoint, i, "w: "+e.Error())
			}
			if !Finite(w) {
				return nil, pointErr(ErrNonFiniteCoordinate, i, fmt.Sprintf("w is %v", w))
			}
			p.W = w
		}
	}
	return v, nil
}

func encodePoly(src []Coords) (Variant, *Error) {
	v := &Poly{Points: make([]PlainPoint, len(src))}
	for i := range src {
		var err *Error
		if v.Points[i].Co, err = encodePoint(src[i], i, "co"); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// encodePoint converts the position named field of point i.
func encodePoint(c Coords, i int, field string) (Point, *Error) {
	p, err := c.point()
	if err != nil {
		return Point{}, pointErr(ErrMalformedControlPoint, i, field+": "+err.Error())
	}
	for _, x := range p {
		if !Finite(x) {
			return Point{}, pointErr(ErrNonFiniteCoordinate, i, fmt.Sprintf("%s is %v", field, p))
		}
	}
	return p, nil
}
