package position

import (
	"floatpos/pkg/dom"
	"floatpos/pkg/geom"
)

// ElementContext picks which element overflow is measured for.
type ElementContext string

const (
	ContextFloating  ElementContext = "floating"
	ContextReference ElementContext = "reference"
)

// OverflowOptions tunes DetectOverflow. The zero value measures the popup
// flush against the viewport and its clipping ancestors.
type OverflowOptions struct {
	// Padding shrinks the clipping rect on every side.
	Padding float64
	// RootBoundary defaults to RootViewport.
	RootBoundary RootBoundary
	// ElementContext defaults to ContextFloating.
	ElementContext ElementContext
	// AltBoundary clips against the other element's ancestors.
	AltBoundary bool
}

// State is the snapshot one computation works from.
type State struct {
	Anchor       dom.Measurer
	Popup        dom.Node
	Rects        geom.ElementRects
	Coordinates  geom.Coordinates
	Placement    geom.Placement
	Strategy     geom.Strategy
	RTL          bool
	offsetParent dom.Node
	doc          *dom.Document
}

// DetectOverflow returns how far the popup (placed at state.Coordinates)
// or the anchor protrudes past its clipping rect on each side. Positive
// values overflow. Unattached elements have no clipping rect and never
// overflow.
func DetectOverflow(state State, opts OverflowOptions) geom.Overflow {
	root := opts.RootBoundary
	if root == "" {
		root = RootViewport
	}
	context := opts.ElementContext
	if context == "" {
		context = ContextFloating
	}

	clipFor := state.Popup
	if (context == ContextReference) != opts.AltBoundary {
		if n, ok := asNode(state.Anchor); ok {
			clipFor = n
		} else if cm, ok := state.Anchor.(dom.ContextMeasurer); ok && !isNil(cm.ContextElement()) {
			clipFor = cm.ContextElement()
		} else if state.doc != nil {
			clipFor = state.doc.DocumentElement()
		}
	}
	clip, ok := ClippingRect(clipFor, root)
	if !ok {
		return geom.Overflow{}
	}

	var rect geom.Rect
	if context == ContextFloating {
		rect = state.Rects.Popup
		rect.X, rect.Y = state.Coordinates.X, state.Coordinates.Y
	} else {
		rect = state.Rects.Anchor
	}
	el := OffsetParentRectToViewport(rect, state.offsetParent, state.doc, state.Strategy).ClientRect()
	c := clip.ClientRect()

	// Overflow is measured in viewport pixels and reported in the offset
	// parent's pixels, the space the coordinates live in.
	scale := geom.Coordinates{X: 1, Y: 1}
	if state.offsetParent != nil {
		scale = scaleOf(state.offsetParent)
	}
	return geom.Overflow{
		Top:    (c.Top - el.Top + opts.Padding) / scale.Y,
		Right:  (el.Right - c.Right + opts.Padding) / scale.X,
		Bottom: (el.Bottom - c.Bottom + opts.Padding) / scale.Y,
		Left:   (c.Left - el.Left + opts.Padding) / scale.X,
	}
}
