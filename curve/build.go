// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package curve

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Policy selects how the Builder reacts to a spline that
// cannot be encoded.
type Policy int

// Policy values.
const (
	// Lenient drops the spline and records a warning.
	Lenient Policy = iota
	// Strict fails the whole build.
	Strict
)

func (p Policy) String() string {
	switch p {
	case Lenient:
		return "lenient"
	case Strict:
		return "strict"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy parses s (case-insensitive) as a Policy.
// The empty string is Lenient.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "", "lenient":
		return Lenient, nil
	case "strict":
		return Strict, nil
	}
	return 0, errors.New(prefix + "undefined policy " + s)
}

// Report lists what happened while building one document.
type Report struct {
	Object   string
	Splines  int   // Number of source splines.
	Dropped  []int // Source indices of dropped splines.
	Warnings []*Error
}

// Builder builds Documents from host curves.
// It holds no state between calls to Build, so a
// single Builder can be used concurrently.
type Builder struct {
	Policy Policy
	Log    *slog.Logger // Logger() if nil.
}

// Build converts src, the curve data of the object
// identified by name, into a new Document.
//
// Splines are encoded in source order. An empty curve
// produces a Document with no splines. When a spline
// cannot be encoded, b.Policy decides whether it is
// dropped (Lenient) or whether Build fails (Strict).
// A nil src or undefined dimensions is an
// ErrHostContractViolation.
//
// The returned Report is never nil.
func (b *Builder) Build(name string, src *SourceCurve) (*Document, *Report, error) {
	log := LoggerOr(b.Log).With("object", name)
	rep := &Report{Object: name}
	if src == nil {
		err := &Error{Err: ErrHostContractViolation, Object: name, Spline: -1, Point: -1, Reason: "no curve data"}
		log.Error("cannot build curve document", "err", err)
		return nil, rep, err
	}
	rep.Splines = len(src.Splines)
	dims, err := ParseDimensions(src.Dimensions)
	if err != nil {
		err := &Error{Err: ErrHostContractViolation, Object: name, Spline: -1, Point: -1, Reason: fmt.Sprintf("dimensions %q", src.Dimensions)}
		log.Error("cannot build curve document", "err", err)
		return nil, rep, err
	}

	doc := &Document{Splines: make([]Spline, 0, len(src.Splines)), Dimensions: dims}
	for i := range src.Splines {
		s, warns, err := Encode(&src.Splines[i])
		for _, w := range warns {
			w.Object = name
			w.Spline = i
			rep.Warnings = append(rep.Warnings, w)
			log.Warn("curve spline", "spline", i, "warning", w)
		}
		if err == nil {
			doc.Splines = append(doc.Splines, s)
			continue
		}
		e := err.(*Error)
		e.Object = name
		e.Spline = i
		if b.Policy == Strict {
			if e.Err == ErrNonFiniteCoordinate {
				e = &Error{
					Err:    ErrMalformedControlPoint,
					Object: name,
					Spline: i,
					Point:  e.Point,
					Reason: "non-finite coordinate: " + e.Reason,
				}
			}
			log.Error("cannot build curve document", "err", e)
			return nil, rep, e
		}
		rep.Dropped = append(rep.Dropped, i)
		if e.Err != ErrNonFiniteCoordinate {
			// Non-finite values were already recorded as warnings.
			rep.Warnings = append(rep.Warnings, e)
		}
		log.Warn("dropped curve spline", "spline", i, "err", e)
	}
	log.Debug("built curve document", "splines", len(doc.Splines), "dropped", len(rep.Dropped))
	return doc, rep, nil
}
