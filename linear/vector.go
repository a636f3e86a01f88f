// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package linear implements the vector math used to
// evaluate curves.
package linear

import (
	"math"
)

// V3 is a 3-component vector of float64.
type V3 [3]float64

// Add sets v to contain l + r.
func (v *V3) Add(l, r *V3) {
	for i := range v {
		v[i] = l[i] + r[i]
	}
}

// Sub sets v to contain l - r.
func (v *V3) Sub(l, r *V3) {
	for i := range v {
		v[i] = l[i] - r[i]
	}
}

// Scale sets v to contain s ⋅ w.
func (v *V3) Scale(s float64, w *V3) {
	for i := range v {
		v[i] = s * w[i]
	}
}

// Lerp sets v to contain the linear interpolation
// between l and r at t.
func (v *V3) Lerp(l, r *V3, t float64) {
	for i := range v {
		v[i] = l[i] + t*(r[i]-l[i])
	}
}

// Dot returns v ⋅ w.
func (v *V3) Dot(w *V3) (d float64) {
	for i := range v {
		d += v[i] * w[i]
	}
	return
}

// Len returns the length of v.
func (v *V3) Len() float64 { return math.Sqrt(v.Dot(v)) }

// Dist returns the distance between v and w.
func (v *V3) Dist(w *V3) float64 {
	var d V3
	d.Sub(v, w)
	return d.Len()
}

// V4 is a 4-component vector of float64.
// It is used for points in homogeneous coordinates.
type V4 [4]float64

// Homogeneous sets v to contain the point p with weight w,
// that is, [w⋅p, w].
func (v *V4) Homogeneous(p *V3, w float64) {
	*v = V4{w * p[0], w * p[1], w * p[2], w}
}

// Add sets v to contain l + r.
func (v *V4) Add(l, r *V4) {
	for i := range v {
		v[i] = l[i] + r[i]
	}
}

// Scale sets v to contain s ⋅ w.
func (v *V4) Scale(s float64, w *V4) {
	for i := range v {
		v[i] = s * w[i]
	}
}

// Project returns v divided by its last component.
// A zero weight yields the unprojected coordinates.
func (v *V4) Project() V3 {
	if v[3] == 0 {
		return V3{v[0], v[1], v[2]}
	}
	return V3{v[0] / v[3], v[1] / v[3], v[2] / v[3]}
}
