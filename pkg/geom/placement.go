package geom

import (
	"fmt"
	"strings"
)

// Side is the anchor edge the popup sits against.
type Side string

const (
	SideTop    Side = "top"
	SideRight  Side = "right"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
)

// Sides lists every side in evaluation order.
var Sides = []Side{SideTop, SideRight, SideBottom, SideLeft}

// ParseSide validates a side name.
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case SideTop, SideRight, SideBottom, SideLeft:
		return Side(s), nil
	}
	return "", &ParseError{Kind: "side", Value: s}
}

// Opposite returns the side across the anchor.
func (s Side) Opposite() Side {
	switch s {
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	case SideLeft:
		return SideRight
	}
	return SideLeft
}

// Axis is the axis the popup is pushed along when placed on this side:
// Y for top/bottom, X for left/right.
func (s Side) Axis() Axis {
	if s == SideTop || s == SideBottom {
		return AxisY
	}
	return AxisX
}

// IsNegative reports whether moving away from the anchor on this side
// decreases the coordinate (top and left).
func (s Side) IsNegative() bool {
	return s == SideTop || s == SideLeft
}

// Alignment positions the popup along the anchor edge. AlignCenter is the
// absence of an alignment suffix.
type Alignment string

const (
	AlignCenter Alignment = ""
	AlignStart  Alignment = "start"
	AlignEnd    Alignment = "end"
)

// Opposite swaps start and end. Center has no opposite and stays center.
func (a Alignment) Opposite() Alignment {
	switch a {
	case AlignStart:
		return AlignEnd
	case AlignEnd:
		return AlignStart
	}
	return AlignCenter
}

// Axis identifies a coordinate axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Cross returns the perpendicular axis.
func (a Axis) Cross() Axis {
	if a == AxisX {
		return AxisY
	}
	return AxisX
}

// Placement is a side with an optional alignment suffix, e.g. "top" or
// "left-end".
type Placement string

const (
	Top         Placement = "top"
	TopStart    Placement = "top-start"
	TopEnd      Placement = "top-end"
	Right       Placement = "right"
	RightStart  Placement = "right-start"
	RightEnd    Placement = "right-end"
	Bottom      Placement = "bottom"
	BottomStart Placement = "bottom-start"
	BottomEnd   Placement = "bottom-end"
	Left        Placement = "left"
	LeftStart   Placement = "left-start"
	LeftEnd     Placement = "left-end"
)

// AllPlacements lists every placement, grouped by side: bare, start, end.
var AllPlacements = []Placement{
	Top, TopStart, TopEnd,
	Right, RightStart, RightEnd,
	Bottom, BottomStart, BottomEnd,
	Left, LeftStart, LeftEnd,
}

// NewPlacement joins a side and alignment.
func NewPlacement(side Side, align Alignment) Placement {
	if align == AlignCenter {
		return Placement(side)
	}
	return Placement(string(side) + "-" + string(align))
}

// ParsePlacement validates a placement name.
func ParsePlacement(s string) (Placement, error) {
	sideName, alignName, hasAlign := strings.Cut(s, "-")
	side, err := ParseSide(sideName)
	if err != nil {
		return "", &ParseError{Kind: "placement", Value: s}
	}
	if !hasAlign {
		return Placement(side), nil
	}
	switch Alignment(alignName) {
	case AlignStart, AlignEnd:
		return NewPlacement(side, Alignment(alignName)), nil
	}
	return "", &ParseError{Kind: "placement", Value: s}
}

// Side returns the side part of the placement.
func (p Placement) Side() Side {
	side, _, _ := strings.Cut(string(p), "-")
	return Side(side)
}

// Alignment returns the alignment suffix, or AlignCenter.
func (p Placement) Alignment() Alignment {
	_, align, _ := strings.Cut(string(p), "-")
	return Alignment(align)
}

// Opposite flips the side and keeps the alignment.
func (p Placement) Opposite() Placement {
	return NewPlacement(p.Side().Opposite(), p.Alignment())
}

// OppositeAlignment keeps the side and swaps start/end.
func (p Placement) OppositeAlignment() Placement {
	return NewPlacement(p.Side(), p.Alignment().Opposite())
}

// ParseError reports an unrecognised placement, side or strategy name.
type ParseError struct {
	Kind  string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Kind, e.Value)
}
