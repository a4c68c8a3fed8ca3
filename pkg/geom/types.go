// Package geom holds the rectangle and placement vocabulary shared by the
// positioning engine and its collaborators.
package geom

import "math"

// Coordinates is a point in the coordinate space of the chosen strategy.
type Coordinates struct {
	X float64
	Y float64
}

// Dimensions is a width/height pair.
type Dimensions struct {
	Width  float64
	Height float64
}

// Rect is an axis-aligned box.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// ClientRect is a Rect with its edges spelled out, in the shape returned by
// getBoundingClientRect. Right is always X+Width and Bottom Y+Height.
type ClientRect struct {
	Rect
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// NewRect builds a Rect from its origin and size.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Dimensions returns the rect size.
func (r Rect) Dimensions() Dimensions {
	return Dimensions{Width: r.Width, Height: r.Height}
}

// ClientRect derives the edge form of r.
func (r Rect) ClientRect() ClientRect {
	return ClientRect{
		Rect:   r,
		Top:    r.Y,
		Right:  r.X + r.Width,
		Bottom: r.Y + r.Height,
		Left:   r.X,
	}
}

// ClientRectFromEdges builds a ClientRect from its four edges. A right edge
// left of the left edge (or bottom above top) collapses to zero size.
func ClientRectFromEdges(top, right, bottom, left float64) ClientRect {
	width := math.Max(0, right-left)
	height := math.Max(0, bottom-top)
	return NewRect(left, top, width, height).ClientRect()
}

// Intersect returns the overlap of two client rects. Disjoint rects yield a
// zero-sized rect anchored at the overlap's top-left corner.
func (c ClientRect) Intersect(o ClientRect) ClientRect {
	return ClientRectFromEdges(
		math.Max(c.Top, o.Top),
		math.Min(c.Right, o.Right),
		math.Min(c.Bottom, o.Bottom),
		math.Max(c.Left, o.Left),
	)
}

// Length returns the rect extent along axis.
func (r Rect) Length(axis Axis) float64 {
	if axis == AxisX {
		return r.Width
	}
	return r.Height
}

// Strategy selects the coordinate origin of the popup.
type Strategy string

const (
	// StrategyAbsolute positions relative to the popup's offset parent.
	StrategyAbsolute Strategy = "absolute"
	// StrategyFixed positions relative to the viewport.
	StrategyFixed Strategy = "fixed"
)

// ParseStrategy validates a strategy name. The empty string means absolute.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "", StrategyAbsolute:
		return StrategyAbsolute, nil
	case StrategyFixed:
		return StrategyFixed, nil
	}
	return "", &ParseError{Kind: "strategy", Value: s}
}

// ElementRects are the anchor and popup rectangles expressed relative to the
// popup's offset parent. The popup rect always sits at the origin; only its
// size is meaningful.
type ElementRects struct {
	Anchor Rect
	Popup  Rect
}

// Overflow is the signed distance the popup protrudes past the clipping
// boundary on each side. Positive overflows, zero is flush, negative leaves
// room.
type Overflow struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Get returns the overflow on side.
func (o Overflow) Get(side Side) float64 {
	switch side {
	case SideTop:
		return o.Top
	case SideRight:
		return o.Right
	case SideBottom:
		return o.Bottom
	}
	return o.Left
}

// Fits reports whether nothing overflows on any side.
func (o Overflow) Fits() bool {
	return o.Top <= 0 && o.Right <= 0 && o.Bottom <= 0 && o.Left <= 0
}

// OffsetSpec shifts the popup away from the anchor (MainAxis) and along the
// anchor edge (CrossAxis).
type OffsetSpec struct {
	MainAxis  float64
	CrossAxis float64
}

// Offset is the plain-number form of an offset: main axis only.
func Offset(mainAxis float64) OffsetSpec {
	return OffsetSpec{MainAxis: mainAxis}
}
