// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package curve

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMarshalBezierPoint(t *testing.T) {
	src := &SourceCurve{
		Splines: []SourceSpline{{
			Type: "BEZIER",
			BezierPoints: []SourceBezierPoint{
				{Co: Coords{0, 0, 0}, HandleLeft: Coords{-1, 0, 0}, HandleRight: Coords{1, 0, 0}},
			},
			Resolution: 12,
		}},
		Dimensions: "3D",
	}
	doc, _, err := (&Builder{}).Build("BezierCurve", src)
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	const want = `{"splines":[{"type":"BEZIER","points":[{"co":[0,0,0],"handle_left":[-1,0,0],"handle_right":[1,0,0]}],"use_cyclic_u":false,"resolution_u":12,"order_u":null}],"dimensions":"3D"}`
	if s := string(b); s != want {
		t.Fatalf("json.Marshal:\nhave %s\nwant %s", s, want)
	}
}

func TestMarshalEmpty(t *testing.T) {
	for _, dims := range [...]string{"2D", "3D"} {
		doc, _, err := (&Builder{}).Build("Empty", &SourceCurve{Dimensions: dims})
		if err != nil {
			t.Fatal(err)
		}
		b, err := json.Marshal(doc)
		if err != nil {
			t.Fatal(err)
		}
		want := `{"splines":[],"dimensions":"` + dims + `"}`
		if s := string(b); s != want {
			t.Fatalf("json.Marshal:\nhave %s\nwant %s", s, want)
		}
	}
}

func TestMarshalFields(t *testing.T) {
	doc, _, err := (&Builder{}).Build("Curve", testCurve())
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	var v struct {
		Splines []map[string]any `json:"splines"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		t.Fatal(err)
	}
	for _, s := range v.Splines {
		o, ok := s["order_u"]
		if !ok {
			t.Fatalf("json.Marshal: %s spline lacks order_u", s["type"])
		}
		switch s["type"] {
		case "NURBS":
			if o != 4.0 {
				t.Fatalf("json.Marshal: NURBS order_u\nhave %v\nwant 4", o)
			}
			pts := s["points"].([]any)
			if w := pts[0].(map[string]any)["w"]; w != 1.0 {
				t.Fatalf("json.Marshal: default w\nhave %v\nwant 1", w)
			}
			if w := pts[3].(map[string]any)["w"]; w != 2.0 {
				t.Fatalf("json.Marshal: w\nhave %v\nwant 2", w)
			}
		default:
			if o != nil {
				t.Fatalf("json.Marshal: %s order_u\nhave %v\nwant null", s["type"], o)
			}
		}
	}
}

func TestMarshalDeterministic(t *testing.T) {
	src := testCurve()
	var prev []byte
	for i := 0; i < 4; i++ {
		doc, _, err := (&Builder{}).Build("Curve", src)
		if err != nil {
			t.Fatal(err)
		}
		b, err := json.Marshal(doc)
		if err != nil {
			t.Fatal(err)
		}
		if prev != nil && !bytes.Equal(prev, b) {
			t.Fatalf("json.Marshal: not deterministic\nhave %s\nwant %s", b, prev)
		}
		prev = b
	}
}

func TestMarshalNaN(t *testing.T) {
	doc := &Document{
		Splines:    []Spline{{Variant: &Poly{Points: []PlainPoint{{Point{math.NaN(), 0, 0}}}}}},
		Dimensions: D3,
	}
	if _, err := json.Marshal(doc); err == nil {
		t.Fatal("json.Marshal: NaN\nhave nil error\nwant non-nil")
	}
}

func TestMarshalNilVariant(t *testing.T) {
	for _, v := range [...]Variant{nil, (*Bezier)(nil), (*NURBS)(nil), (*Poly)(nil)} {
		doc := Document{Splines: []Spline{{Variant: v}}, Dimensions: D3}
		if _, err := doc.MarshalJSON(); err == nil {
			t.Fatalf("MarshalJSON: %T variant\nhave nil error\nwant non-nil", v)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	want, _, err := (&Builder{}).Build("Curve", testCurve())
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(want)
	if err != nil {
		t.Fatal(err)
	}
	var have Document
	if err := json.Unmarshal(b, &have); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, &have); diff != "" {
		t.Fatalf("json.Unmarshal: (-want +have)\n%s", diff)
	}
}

func TestUnmarshal(t *testing.T) {
	var d Document
	if err := json.Unmarshal([]byte(`{}`), &d); err != nil {
		t.Fatal(err)
	}
	if d.Dimensions != D3 || len(d.Splines) != 0 {
		t.Fatalf("json.Unmarshal({}):\nhave %+v\nwant {[] 3D}", d)
	}
	in := `{"splines":[{"type":"NURBS","points":[{"co":[1,2,3]}],"use_cyclic_u":true,"resolution_u":3,"order_u":2}],"dimensions":"2D"}`
	if err := json.Unmarshal([]byte(in), &d); err != nil {
		t.Fatal(err)
	}
	want := Document{
		Splines: []Spline{{
			Variant:    &NURBS{Points: []WeightedPoint{{Co: Point{1, 2, 3}, W: 1}}, Order: 2},
			Cyclic:     true,
			Resolution: 3,
		}},
		Dimensions: D2,
	}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Fatalf("json.Unmarshal: (-want +have)\n%s", diff)
	}

	for _, in := range [...]string{
		`{"splines":[{"type":"SPIRAL","points":[]}]}`,
		`{"splines":[{"type":"NURBS","points":[],"order_u":null}]}`,
		`{"splines":[{"type":"POLY","points":[{"co":[1,2]}]}]}`,
		`{"splines":[],"dimensions":"1D"}`,
	} {
		if err := json.Unmarshal([]byte(in), &d); err == nil {
			t.Fatalf("json.Unmarshal(%s):\nhave nil error\nwant non-nil", in)
		}
	}
	err := json.Unmarshal([]byte(`{"splines":[{"type":"SPIRAL"}]}`), &d)
	if !errors.Is(err, ErrUnsupportedSplineType) {
		t.Fatalf("json.Unmarshal:\nhave %v\nwant %v", err, ErrUnsupportedSplineType)
	}
}
