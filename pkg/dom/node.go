// Package dom is the measurement surface the positioning engine reads:
// bounding rects, ancestor traversal through shadow roots and slots,
// computed style, scroll offsets and client boxes.
//
// Element is a synthetic, fully in-memory implementation used by scenes and
// tests. Any other tree (a real browser bridge, a layout engine) can supply
// its own Node.
package dom

import (
	"floatpos/pkg/css"
	"floatpos/pkg/geom"
)

// Measurer is anything that can report a bounding client rect. Virtual
// anchors (cursor positions, text selections) only implement this.
type Measurer interface {
	BoundingClientRect() geom.ClientRect
}

// Node is an element-like participant in a document tree.
type Node interface {
	Measurer

	// NodeName is the lower-case tag name, or "#shadow-root".
	NodeName() string
	// Parent is the parent node, nil at the top of a tree or shadow tree.
	Parent() Node
	IsShadowRoot() bool
	// Host is the shadow host of a shadow root, nil otherwise.
	Host() Node
	// AssignedSlot is the slot a light-DOM child is rendered into, if any.
	AssignedSlot() Node
	ComputedStyle() *css.Style

	// Scroll returns scrollLeft/scrollTop.
	Scroll() geom.Coordinates
	// ClientBox returns clientLeft/clientTop as the origin and
	// clientWidth/clientHeight as the size.
	ClientBox() geom.Rect
	// OffsetSize returns offsetWidth/offsetHeight: the layout size before
	// transforms.
	OffsetSize() geom.Dimensions
	ScrollSize() geom.Dimensions

	OwnerDocument() *Document
}

// ContextMeasurer is a virtual anchor that names a real element whose
// document it belongs to.
type ContextMeasurer interface {
	Measurer
	ContextElement() Node
}

// Contains reports whether child is parent or sits below it, following
// shadow roots out to their hosts.
func Contains(parent, child Node) bool {
	if parent == nil || child == nil {
		return false
	}
	for n := child; n != nil; {
		if n == parent {
			return true
		}
		if n.IsShadowRoot() {
			n = n.Host()
			continue
		}
		n = n.Parent()
	}
	return false
}

// IsElement reports whether m is a real tree node rather than a virtual
// anchor.
func IsElement(m Measurer) bool {
	n, ok := m.(Node)
	return ok && n != nil && !n.IsShadowRoot()
}
