package position

import (
	"errors"
	"fmt"
	"strconv"

	"floatpos/pkg/geom"
)

// ErrAmbiguousMiddlewareResult is returned when a middleware sets both
// coordinates and a placement.
var ErrAmbiguousMiddlewareResult = errors.New("middleware result sets both coordinates and placement")

// PartialCoordinates overrides one or both of x and y.
type PartialCoordinates struct {
	X *float64
	Y *float64
}

// MiddlewareResult is either a coordinate override or a new placement. The
// zero value changes nothing.
type MiddlewareResult struct {
	Coordinates *PartialCoordinates
	Placement   geom.Placement
}

// Coords is a MiddlewareResult overriding both coordinates.
func Coords(x, y float64) MiddlewareResult {
	return MiddlewareResult{Coordinates: &PartialCoordinates{X: &x, Y: &y}}
}

// Place is a MiddlewareResult requesting a new placement.
func Place(p geom.Placement) MiddlewareResult {
	return MiddlewareResult{Placement: p}
}

func (r MiddlewareResult) validate() error {
	if r.Coordinates != nil && r.Placement != "" {
		return ErrAmbiguousMiddlewareResult
	}
	if r.Placement != "" {
		if _, err := geom.ParsePlacement(string(r.Placement)); err != nil {
			return fmt.Errorf("middleware result: %w", err)
		}
	}
	return nil
}

// Middleware is a caller-supplied pipeline stage. It must be synchronous
// and must not retain state between calls.
type Middleware func(State) (MiddlewareResult, error)

// MiddlewareOrder places the custom middleware relative to auto-placement.
// The zero value runs it after auto-placement.
type MiddlewareOrder int

const (
	AfterAutoPlacement MiddlewareOrder = iota
	BeforeAutoPlacement
)

func (o MiddlewareOrder) String() string {
	switch o {
	case AfterAutoPlacement:
		return "afterAutoPlacement"
	case BeforeAutoPlacement:
		return "beforeAutoPlacement"
	}
	return strconv.Itoa(int(o))
}

// ParseMiddlewareOrder accepts "beforeAutoPlacement" and
// "afterAutoPlacement"; the empty string means after.
func ParseMiddlewareOrder(s string) (MiddlewareOrder, error) {
	switch s {
	case "", "afterAutoPlacement":
		return AfterAutoPlacement, nil
	case "beforeAutoPlacement":
		return BeforeAutoPlacement, nil
	}
	return 0, &geom.ParseError{Kind: "middleware order", Value: s}
}
