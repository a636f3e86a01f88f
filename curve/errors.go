// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package curve

import (
	"errors"
	"strconv"
	"strings"
)

const prefix = "curve: "

func newErr(reason string) error { return errors.New(prefix + reason) }

// Error kinds.
// Use errors.Is to match an *Error against these.
var (
	ErrUnsupportedSplineType = newErr("unsupported spline type")
	ErrMalformedControlPoint = newErr("malformed control point")
	ErrNonFiniteCoordinate   = newErr("non-finite coordinate")
	ErrHostContractViolation = newErr("host contract violation")
)

// Error describes a failure or warning scoped to a single
// object, spline or control point.
// Spline and Point are -1 when not applicable.
type Error struct {
	Err    error
	Object string
	Spline int
	Point  int
	Reason string
}

func (e *Error) Error() string {
	var at []string
	if e.Object != "" {
		at = append(at, "object "+strconv.Quote(e.Object))
	}
	if e.Spline >= 0 {
		at = append(at, "spline "+strconv.Itoa(e.Spline))
	}
	if e.Point >= 0 {
		at = append(at, "point "+strconv.Itoa(e.Point))
	}
	s := e.Err.Error()
	if len(at) > 0 {
		s += " (" + strings.Join(at, ", ") + ")"
	}
	if e.Reason != "" {
		s += ": " + e.Reason
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

// pointErr creates an *Error for point i of the current spline.
// The spline index and object name are filled in by the Builder.
func pointErr(kind error, i int, reason string) *Error {
	return &Error{Err: kind, Spline: -1, Point: i, Reason: reason}
}
