// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package tess

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/utsuboco/gltfcurve/curve"
	"github.com/utsuboco/gltfcurve/linear"
)

const eps = 1e-9

func near(v, w linear.V3) bool { return v.Dist(&w) < eps }

func line() *curve.Spline {
	return &curve.Spline{
		Variant: &curve.Bezier{Points: []curve.BezierPoint{
			{Co: curve.Point{0, 0, 0}, HandleLeft: curve.Point{-1, 0, 0}, HandleRight: curve.Point{1, 0, 0}},
			{Co: curve.Point{3, 0, 0}, HandleLeft: curve.Point{2, 0, 0}, HandleRight: curve.Point{4, 0, 0}},
		}},
		Resolution: 12,
	}
}

func TestSampleBezier(t *testing.T) {
	s := line()
	ps, err := Sample(s, 6)
	if err != nil {
		t.Fatal(err)
	}
	if len(ps) != 7 {
		t.Fatalf("Sample: len\nhave %d\nwant 7", len(ps))
	}
	for i, p := range ps {
		if want := (linear.V3{float64(i) / 2}); !near(p, want) {
			t.Fatalf("Sample: [%d]\nhave %v\nwant %v", i, p, want)
		}
	}

	s.Cyclic = true
	if ps, _ = Sample(s, 8); !near(ps[4], linear.V3{3}) || !near(ps[8], linear.V3{}) {
		t.Fatalf("Sample: cyclic\nhave %v, %v\nwant [3 0 0], [0 0 0]", ps[4], ps[8])
	}

	one := &curve.Spline{Variant: &curve.Bezier{Points: []curve.BezierPoint{{Co: curve.Point{1, 2, 3}}}}}
	if ps, _ = Sample(one, 10); len(ps) != 1 || ps[0] != (linear.V3{1, 2, 3}) {
		t.Fatalf("Sample: single point\nhave %v\nwant [[1 2 3]]", ps)
	}
}

func TestSampleNURBS(t *testing.T) {
	// A clamped cubic with four points is a Bézier curve.
	s := &curve.Spline{Variant: &curve.NURBS{
		Points: []curve.WeightedPoint{
			{Co: curve.Point{0, 0, 0}, W: 1},
			{Co: curve.Point{1, 1, 0}, W: 1},
			{Co: curve.Point{2, 0, 0}, W: 1},
			{Co: curve.Point{3, 1, 0}, W: 1},
		},
		Order: 4,
	}}
	ps, err := Sample(s, 2)
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range [...]linear.V3{{0, 0, 0}, {1.5, 0.5, 0}, {3, 1, 0}} {
		if !near(ps[i], want) {
			t.Fatalf("Sample: [%d]\nhave %v\nwant %v", i, ps[i], want)
		}
	}

	// A rational quadratic quarter circle.
	s = &curve.Spline{Variant: &curve.NURBS{
		Points: []curve.WeightedPoint{
			{Co: curve.Point{1, 0, 0}, W: 1},
			{Co: curve.Point{1, 1, 0}, W: math.Sqrt2 / 2},
			{Co: curve.Point{0, 1, 0}, W: 1},
		},
		Order: 3,
	}}
	ps, err = Sample(s, 16)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range ps {
		if r := p.Len(); math.Abs(r-1) > eps {
			t.Fatalf("Sample: [%d] radius\nhave %v\nwant 1", i, r)
		}
	}

	s.Cyclic = true
	if ps, err = Sample(s, 4); err != nil || len(ps) != 5 {
		t.Fatalf("Sample: cyclic\nhave %d samples, %v\nwant 5, nil", len(ps), err)
	}

	s.Variant.(*curve.NURBS).Order = 4
	if _, err := Sample(s, 4); !errors.Is(err, ErrPoints) {
		t.Fatalf("Sample: order 4, 3 points\nhave %v\nwant %v", err, ErrPoints)
	}
	s.Variant.(*curve.NURBS).Order = 1
	if _, err := Sample(s, 4); !errors.Is(err, ErrOrder) {
		t.Fatalf("Sample: order 1\nhave %v\nwant %v", err, ErrOrder)
	}
}

func TestKnots(t *testing.T) {
	if k, err := Knots(5, 3, false); err != nil || !slices.Equal(k, []float64{0, 0, 0, 1.0 / 3, 2.0 / 3, 1, 1, 1}) {
		t.Fatalf("Knots(5, 3, false)\nhave %v, %v\nwant [0 0 0 1/3 2/3 1 1 1], nil", k, err)
	}
	if k, err := Knots(2, 2, true); err != nil || !slices.Equal(k, []float64{0, 1.0 / 3, 2.0 / 3, 1}) {
		t.Fatalf("Knots(2, 2, true)\nhave %v, %v\nwant [0 1/3 2/3 1], nil", k, err)
	}
	for _, x := range [...]struct {
		n, order int
		cyclic   bool
		want     error
	}{
		{2, 3, false, ErrPoints},
		{0, 0, true, ErrOrder},
		{3, 1, false, ErrOrder},
		{0, 2, true, ErrPoints},
	} {
		if k, err := Knots(x.n, x.order, x.cyclic); !errors.Is(err, x.want) || k != nil {
			t.Fatalf("Knots(%d, %d, %t)\nhave %v, %v\nwant nil, %v", x.n, x.order, x.cyclic, k, err, x.want)
		}
	}
}

func square() *curve.Spline {
	return &curve.Spline{
		Variant: &curve.Poly{Points: []curve.PlainPoint{
			{Co: curve.Point{0, 0, 0}}, {Co: curve.Point{1, 0, 0}}, {Co: curve.Point{1, 1, 0}}, {Co: curve.Point{0, 1, 0}},
		}},
		Cyclic:     true,
		Resolution: 2,
	}
}

func TestSamplePoly(t *testing.T) {
	s := square()
	ps, err := Sample(s, 8)
	if err != nil {
		t.Fatal(err)
	}
	if len(ps) != 9 || ps[8] != ps[0] {
		t.Fatalf("Sample: cyclic poly\nhave %v\nwant 9 samples, closed", ps)
	}
	pts := s.Variant.(*curve.Poly).Points
	for i := 0; i < 4; i++ {
		if want := linear.V3(pts[i].Co); !near(ps[2*i], want) {
			t.Fatalf("Sample: [%d]\nhave %v\nwant %v", 2*i, ps[2*i], want)
		}
	}
	// Centripetal interpolation bulges between corners.
	if want := (linear.V3{0.5, -0.125, 0}); !near(ps[1], want) {
		t.Fatalf("Sample: [1]\nhave %v\nwant %v", ps[1], want)
	}

	// Evenly spaced collinear points give a straight line.
	s = &curve.Spline{Variant: &curve.Poly{Points: []curve.PlainPoint{
		{Co: curve.Point{0, 0, 0}}, {Co: curve.Point{1, 0, 0}}, {Co: curve.Point{2, 0, 0}},
	}}}
	if ps, _ = Sample(s, 4); len(ps) != 5 {
		t.Fatalf("Sample: open poly\nhave %d samples\nwant 5", len(ps))
	}
	for i, p := range ps {
		if want := (linear.V3{float64(i) / 2}); !near(p, want) {
			t.Fatalf("Sample: open poly [%d]\nhave %v\nwant %v", i, p, want)
		}
	}

	one := &curve.Spline{Variant: &curve.Poly{Points: []curve.PlainPoint{{Co: curve.Point{1, 2, 3}}}}, Cyclic: true}
	if ps, _ = Sample(one, 10); len(ps) != 1 || ps[0] != (linear.V3{1, 2, 3}) {
		t.Fatalf("Sample: single point\nhave %v\nwant [[1 2 3]]", ps)
	}
}

func TestToYUp(t *testing.T) {
	if v := ToYUp(curve.Point{1, 2, 3}); v != (linear.V3{1, 3, -2}) {
		t.Fatalf("ToYUp\nhave %v\nwant [1 3 -2]", v)
	}
}

func TestLength(t *testing.T) {
	s := line()
	for _, dims := range [...]curve.Dimensions{curve.D2, curve.D3} {
		l, err := Length(s, dims)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(l-3) > 1e-6 {
			t.Fatalf("Length(%s)\nhave %v\nwant 3", dims, l)
		}
	}

	// The samples include the corners, so the length is at
	// least the perimeter, and the curve stays inside the
	// circumscribed circle.
	l, err := Length(square(), curve.D2)
	if err != nil {
		t.Fatal(err)
	}
	if l <= 4 || l >= math.Pi*math.Sqrt2 {
		t.Fatalf("Length: square\nhave %v\nwant in (4, %v)", l, math.Pi*math.Sqrt2)
	}

	doc := &curve.Document{
		Splines: []curve.Spline{
			*line(),
			{Variant: &curve.Poly{Points: []curve.PlainPoint{
				{Co: curve.Point{0, 0, 0}}, {Co: curve.Point{0, 2, 0}}, {Co: curve.Point{0, 4, 0}},
			}}},
		},
		Dimensions: curve.D3,
	}
	l, err = DocumentLength(doc)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(l-7) > 1e-6 {
		t.Fatalf("DocumentLength\nhave %v\nwant 7", l)
	}

	doc.Splines = append(doc.Splines, curve.Spline{Variant: &curve.NURBS{Order: 3}})
	if _, err := DocumentLength(doc); !errors.Is(err, ErrPoints) {
		t.Fatalf("DocumentLength: empty NURBS\nhave %v\nwant %v", err, ErrPoints)
	}
}

func TestSamples(t *testing.T) {
	for _, x := range [...]struct {
		s    *curve.Spline
		want int
	}{
		{line(), 120},
		{&curve.Spline{Variant: &curve.Poly{}}, 100},
		{&curve.Spline{Variant: &curve.NURBS{}, Resolution: 12}, 200},
		{&curve.Spline{Variant: &curve.NURBS{}}, 200},
		{&curve.Spline{Variant: &curve.NURBS{}, Resolution: 30}, 300},
	} {
		if n := Samples(x.s); n != x.want {
			t.Fatalf("Samples(%v)\nhave %d\nwant %d", x.s.Variant, n, x.want)
		}
	}
}
