// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package curve

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// spline as it appears on the wire.
// Field order is fixed by the struct.
type splineJSON struct {
	Type        Type            `json:"type"`
	Points      json.RawMessage `json:"points"`
	UseCyclicU  bool            `json:"use_cyclic_u"`
	ResolutionU int             `json:"resolution_u"`
	OrderU      *int            `json:"order_u"` // null unless NURBS.
}

// document as it appears on the wire.
type documentJSON struct {
	Splines    []splineJSON `json:"splines"`
	Dimensions Dimensions   `json:"dimensions"`
}

// MarshalJSON implements json.Marshaler.
// The output is deterministic.
func (d Document) MarshalJSON() ([]byte, error) {
	dj := documentJSON{
		Splines:    make([]splineJSON, len(d.Splines)),
		Dimensions: d.Dimensions,
	}
	for i := range d.Splines {
		s := &d.Splines[i]
		if s.Variant == nil {
			return nil, fmt.Errorf("%sspline %d has no variant", prefix, i)
		}
		var pts any
		switch v := s.Variant.(type) {
		case *Bezier:
			if v != nil {
				pts = nonNil(v.Points)
			}
		case *NURBS:
			if v != nil {
				pts = nonNil(v.Points)
				order := v.Order
				dj.Splines[i].OrderU = &order
			}
		case *Poly:
			if v != nil {
				pts = nonNil(v.Points)
			}
		default:
			panic("unreachable")
		}
		if pts == nil {
			return nil, fmt.Errorf("%sspline %d has a nil %s variant", prefix, i, s.Variant.Type())
		}
		b, err := json.Marshal(pts)
		if err != nil {
			return nil, fmt.Errorf("%sspline %d: %w", prefix, i, err)
		}
		dj.Splines[i].Type = s.Type()
		dj.Splines[i].Points = b
		dj.Splines[i].UseCyclicU = s.Cyclic
		dj.Splines[i].ResolutionU = s.Resolution
	}
	return json.Marshal(&dj)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// UnmarshalJSON implements json.Unmarshaler.
// It fails unless b is an array of exactly three numbers.
func (p *Point) UnmarshalJSON(b []byte) error {
	var c []float64
	if err := json.Unmarshal(b, &c); err != nil {
		return err
	}
	if len(c) != 3 {
		return fmt.Errorf("%sexpected 3 coordinates, got %d", prefix, len(c))
	}
	copy(p[:], c)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
// Missing splines decode as none and missing dimensions
// as D3. Unknown spline types, NURBS splines without
// order_u and points with other than three coordinates
// are rejected.
func (d *Document) UnmarshalJSON(b []byte) error {
	var dj struct {
		Splines    []splineJSON `json:"splines"`
		Dimensions *string      `json:"dimensions"`
	}
	if err := json.Unmarshal(b, &dj); err != nil {
		return err
	}
	doc := Document{Splines: make([]Spline, len(dj.Splines)), Dimensions: D3}
	if dj.Dimensions != nil {
		dims, err := ParseDimensions(*dj.Dimensions)
		if err != nil {
			return err
		}
		doc.Dimensions = dims
	}
	for i := range dj.Splines {
		sj := &dj.Splines[i]
		s := &doc.Splines[i]
		s.Cyclic = sj.UseCyclicU
		s.Resolution = sj.ResolutionU
		pts := sj.Points
		if len(bytes.TrimSpace(pts)) == 0 {
			pts = []byte("[]")
		}
		var err error
		switch sj.Type {
		case Tbezier:
			v := &Bezier{}
			err = json.Unmarshal(pts, &v.Points)
			s.Variant = v
		case Tnurbs:
			if sj.OrderU == nil {
				return fmt.Errorf("%sspline %d: NURBS without order_u", prefix, i)
			}
			var raw []struct {
				Co Point    `json:"co"`
				W  *float64 `json:"w"`
			}
			err = json.Unmarshal(pts, &raw)
			v := &NURBS{Points: make([]WeightedPoint, len(raw)), Order: *sj.OrderU}
			for j := range raw {
				v.Points[j] = WeightedPoint{Co: raw[j].Co, W: 1}
				if raw[j].W != nil {
					v.Points[j].W = *raw[j].W
				}
			}
			s.Variant = v
		case Tpoly:
			v := &Poly{}
			err = json.Unmarshal(pts, &v.Points)
			s.Variant = v
		default:
			return fmt.Errorf("%w: %q (spline %d)", ErrUnsupportedSplineType, sj.Type, i)
		}
		if err != nil {
			return fmt.Errorf("%sspline %d: %w", prefix, i, err)
		}
		s.Variant = nonNilPoints(s.Variant)
	}
	*d = doc
	return nil
}

// nonNilPoints makes sure that decoded "points": null and
// "points": [] produce the same value.
func nonNilPoints(v Variant) Variant {
	switch v := v.(type) {
	case *Bezier:
		v.Points = nonNil(v.Points)
	case *NURBS:
		v.Points = nonNil(v.Points)
	case *Poly:
		v.Points = nonNil(v.Points)
	}
	return v
}
