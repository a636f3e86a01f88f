// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package tess evaluates curve documents the way a loader
// of the curve extension reconstructs them: Bézier chains,
// rational NURBS over generated knots and Catmull-Rom
// interpolated poly splines.
package tess

import (
	"errors"
	"fmt"
	"math"

	"github.com/utsuboco/gltfcurve/curve"
	"github.com/utsuboco/gltfcurve/linear"

	hcurve "honnef.co/go/curve"
)

const prefix = "tess: "

var (
	ErrOrder  = errors.New(prefix + "NURBS order must be at least 2")
	ErrPoints = errors.New(prefix + "not enough control points for order")
)

// minNURBSSamples is the least number of intervals used
// for NURBS splines.
const minNURBSSamples = 200

// Samples returns the default number of intervals used
// to sample s.
// NURBS splines use at least 200 intervals.
func Samples(s *curve.Spline) int {
	n := 100
	if s.Resolution > 0 {
		n = s.Resolution * 10
	}
	if _, ok := s.Variant.(*curve.NURBS); ok {
		n = max(n, minNURBSSamples)
	}
	return n
}

// ToYUp converts p from the curve's Z-up space to the
// Y-up space of glTF.
func ToYUp(p curve.Point) linear.V3 {
	v := linear.V3(p)
	v.Mul(&linear.ZUpToYUp, &v)
	return v
}

// Sample evaluates s at n+1 evenly spaced parameters.
// Poly splines are interpolated by a centripetal
// Catmull-Rom spline through their control points.
// Cyclic Bézier and poly splines are closed, so their
// last sample repeats the first one. Cyclic NURBS splines
// are evaluated over the periodic knot domain as is.
func Sample(s *curve.Spline, n int) ([]linear.V3, error) {
	if n < 1 {
		n = 1
	}
	switch v := s.Variant.(type) {
	case *curve.Bezier:
		return sampleBezier(v.Points, s.Cyclic, n), nil
	case *curve.NURBS:
		return sampleNURBS(v, s.Cyclic, n)
	case *curve.Poly:
		return samplePoly(v.Points, s.Cyclic, n), nil
	default:
		panic("unreachable")
	}
}

// segments returns the cubic segments of a Bézier spline.
func segments(pts []curve.BezierPoint, cyclic bool) [][4]linear.V3 {
	if len(pts) < 2 {
		return nil
	}
	segs := make([][4]linear.V3, 0, len(pts))
	seg := func(i, j int) [4]linear.V3 {
		return [4]linear.V3{
			linear.V3(pts[i].Co),
			linear.V3(pts[i].HandleRight),
			linear.V3(pts[j].HandleLeft),
			linear.V3(pts[j].Co),
		}
	}
	for i := 0; i < len(pts)-1; i++ {
		segs = append(segs, seg(i, i+1))
	}
	if cyclic {
		segs = append(segs, seg(len(pts)-1, 0))
	}
	return segs
}

// cubic evaluates c at t using de Casteljau's algorithm.
func cubic(c *[4]linear.V3, t float64) linear.V3 {
	var a, b, d, e, f linear.V3
	a.Lerp(&c[0], &c[1], t)
	b.Lerp(&c[1], &c[2], t)
	d.Lerp(&c[2], &c[3], t)
	e.Lerp(&a, &b, t)
	f.Lerp(&b, &d, t)
	a.Lerp(&e, &f, t)
	return a
}

func sampleBezier(pts []curve.BezierPoint, cyclic bool, n int) []linear.V3 {
	segs := segments(pts, cyclic)
	if len(segs) == 0 {
		ps := make([]linear.V3, len(pts))
		for i := range pts {
			ps[i] = linear.V3(pts[i].Co)
		}
		return ps
	}
	ps := make([]linear.V3, n+1)
	m := float64(len(segs))
	for i := range ps {
		u := m * float64(i) / float64(n)
		k := min(int(u), len(segs)-1)
		ps[i] = cubic(&segs[k], u-float64(k))
	}
	return ps
}

// Knots returns the normalized knot vector for a NURBS
// spline with n control points.
// Cyclic splines use a uniform periodic vector and the
// others a clamped one.
// It fails if order is less than 2 or greater than n.
func Knots(n, order int, cyclic bool) ([]float64, error) {
	if order < 2 {
		return nil, ErrOrder
	}
	if n < order {
		return nil, fmt.Errorf("%w (%d < %d)", ErrPoints, n, order)
	}
	knots := make([]float64, 0, n+order)
	if cyclic {
		for i := 0; i < n+order; i++ {
			knots = append(knots, float64(i))
		}
	} else {
		for i := 0; i < order; i++ {
			knots = append(knots, 0)
		}
		for i := 1; i <= n-order; i++ {
			knots = append(knots, float64(i))
		}
		for i := 0; i < order; i++ {
			knots = append(knots, float64(n-order+1))
		}
	}
	last := knots[len(knots)-1]
	for i := range knots {
		knots[i] /= last
	}
	return knots, nil
}

func sampleNURBS(v *curve.NURBS, cyclic bool, n int) ([]linear.V3, error) {
	np := len(v.Points)
	knots, err := Knots(np, v.Order, cyclic)
	if err != nil {
		return nil, err
	}
	p := v.Order - 1
	cps := make([]linear.V4, np)
	for i := range v.Points {
		co := linear.V3(v.Points[i].Co)
		cps[i].Homogeneous(&co, v.Points[i].W)
	}
	lo, hi := knots[p], knots[np]
	ps := make([]linear.V3, n+1)
	d := make([]linear.V4, p+1)
	var x linear.V4
	for i := range ps {
		u := lo + (hi-lo)*float64(i)/float64(n)
		k := span(u, knots, p, np)
		copy(d, cps[k-p:k+1])
		for r := 1; r <= p; r++ {
			for j := p; j >= r; j-- {
				l, h := knots[j+k-p], knots[j+1+k-r]
				a := (u - l) / (h - l)
				x.Scale(1-a, &d[j-1])
				d[j].Scale(a, &d[j])
				d[j].Add(&x, &d[j])
			}
		}
		ps[i] = d[p].Project()
	}
	return ps, nil
}

// span returns the knot span index k such that
// knots[k] <= u < knots[k+1], limited to [p, n-1].
func span(u float64, knots []float64, p, n int) int {
	if u >= knots[n] {
		return n - 1
	}
	k := p
	for k < n-1 && knots[k+1] <= u {
		k++
	}
	return k
}

func samplePoly(pts []curve.PlainPoint, cyclic bool, n int) []linear.V3 {
	cps := make([]linear.V3, len(pts))
	for i := range pts {
		cps[i] = linear.V3(pts[i].Co)
	}
	if len(cps) < 2 {
		return cps
	}
	ps := make([]linear.V3, n+1)
	for i := range ps {
		ps[i] = catmullRom(cps, cyclic, float64(i)/float64(n))
	}
	return ps
}

// catmullRom evaluates the centripetal Catmull-Rom spline
// through pts at t in [0, 1]. Open splines extrapolate
// their end tangents. len(pts) must be at least 2.
func catmullRom(pts []linear.V3, closed bool, t float64) linear.V3 {
	l := len(pts)
	segs := l - 1
	if closed {
		segs = l
	}
	u := float64(segs) * t
	i := int(math.Floor(u))
	w := u - float64(i)
	if !closed && i >= l-1 {
		i, w = l-2, 1
	}
	at := func(k int) linear.V3 { return pts[(k%l+l)%l] }

	var p0, p3 linear.V3
	p1, p2 := at(i), at(i+1)
	if closed || i > 0 {
		p0 = at(i - 1)
	} else {
		p0.Sub(&pts[0], &pts[1])
		p0.Add(&p0, &pts[0])
	}
	if closed || i+2 < l {
		p3 = at(i + 2)
	} else {
		p3.Sub(&pts[l-1], &pts[l-2])
		p3.Add(&p3, &pts[l-1])
	}

	// Knot intervals are the square root of the chord lengths.
	dt0 := math.Sqrt(p0.Dist(&p1))
	dt1 := math.Sqrt(p1.Dist(&p2))
	dt2 := math.Sqrt(p2.Dist(&p3))
	if dt1 < 1e-4 {
		dt1 = 1
	}
	if dt0 < 1e-4 {
		dt0 = dt1
	}
	if dt2 < 1e-4 {
		dt2 = dt1
	}
	t1 := tangent(&p0, &p1, &p2, dt0, dt1, dt1)
	t2 := tangent(&p1, &p2, &p3, dt1, dt2, dt1)

	// Cubic Hermite basis.
	w2, w3 := w*w, w*w*w
	var v, x linear.V3
	v.Scale(2*w3-3*w2+1, &p1)
	x.Scale(3*w2-2*w3, &p2)
	v.Add(&v, &x)
	x.Scale(w3-2*w2+w, &t1)
	v.Add(&v, &x)
	x.Scale(w3-w2, &t2)
	v.Add(&v, &x)
	return v
}

// tangent returns the tangent at b of the non-uniform
// Catmull-Rom segment a, b, c with intervals da and db,
// scaled by s.
func tangent(a, b, c *linear.V3, da, db, s float64) linear.V3 {
	var t, x linear.V3
	t.Sub(b, a)
	t.Scale(1/da, &t)
	x.Sub(c, a)
	x.Scale(1/(da+db), &x)
	t.Sub(&t, &x)
	x.Sub(c, b)
	x.Scale(1/db, &x)
	t.Add(&t, &x)
	t.Scale(s, &t)
	return t
}

// arclenAccuracy is the accuracy used for planar Bézier
// segments.
const arclenAccuracy = 1e-9

// Length returns the arc length of s.
// Bézier splines of 2D documents are measured exactly.
// Everything else is measured along Sample(s, Samples(s)).
func Length(s *curve.Spline, dims curve.Dimensions) (float64, error) {
	if v, ok := s.Variant.(*curve.Bezier); ok && dims == curve.D2 {
		var l float64
		for _, c := range segments(v.Points, s.Cyclic) {
			l += hcurve.CubicBez{
				P0: hcurve.Pt(c[0][0], c[0][1]),
				P1: hcurve.Pt(c[1][0], c[1][1]),
				P2: hcurve.Pt(c[2][0], c[2][1]),
				P3: hcurve.Pt(c[3][0], c[3][1]),
			}.Arclen(arclenAccuracy)
		}
		return l, nil
	}
	ps, err := Sample(s, Samples(s))
	if err != nil {
		return 0, err
	}
	var l float64
	for i := 1; i < len(ps); i++ {
		l += ps[i].Dist(&ps[i-1])
	}
	return l, nil
}

// DocumentLength returns the summed arc length of the
// splines of d.
func DocumentLength(d *curve.Document) (float64, error) {
	var l float64
	for i := range d.Splines {
		x, err := Length(&d.Splines[i], d.Dimensions)
		if err != nil {
			return 0, err
		}
		l += x
	}
	return l, nil
}
