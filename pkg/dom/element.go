package dom

import (
	"strings"

	"floatpos/pkg/css"
	"floatpos/pkg/geom"
)

const shadowRootName = "#shadow-root"

// Element is an in-memory node with fixed measurements.
type Element struct {
	TagName string
	ID      string
	Style   *css.Style

	// Rect is the border box as reported by getBoundingClientRect, i.e.
	// after transforms, in viewport coordinates.
	Rect geom.Rect
	// Offset is offsetWidth/offsetHeight, the untransformed layout size.
	Offset geom.Dimensions
	// Client is clientLeft/clientTop and clientWidth/clientHeight.
	Client geom.Rect
	// ScrollOffset is scrollLeft/scrollTop.
	ScrollOffset geom.Coordinates
	// ScrollExtent is scrollWidth/scrollHeight.
	ScrollExtent geom.Dimensions

	Children []*Element
	parent   *Element
	host     *Element
	shadow   *Element
	slot     *Element
	doc      *Document
}

// NewElement returns an element whose offset, client and scroll boxes all
// match rect, the common case of an unscaled, borderless, unscrolled box.
func NewElement(tag string, rect geom.Rect) *Element {
	return &Element{
		TagName:      strings.ToLower(tag),
		Style:        css.NewStyle(),
		Rect:         rect,
		Offset:       rect.Dimensions(),
		Client:       geom.NewRect(0, 0, rect.Width, rect.Height),
		ScrollExtent: rect.Dimensions(),
		Children:     make([]*Element, 0),
	}
}

// WithStyle replaces the computed style with a parsed inline declaration
// list and returns e for chaining.
func (e *Element) WithStyle(decls string) *Element {
	e.Style = css.ParseInlineStyle(decls)
	return e
}

// WithID sets the id and returns e for chaining.
func (e *Element) WithID(id string) *Element {
	e.ID = id
	return e
}

// AddChild appends a child and sets up the parent relationship
func (e *Element) AddChild(child *Element) *Element {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = e
	child.setDocument(e.doc)
	e.Children = append(e.Children, child)
	return child
}

// RemoveChild removes the given child from this node's children list,
// clears its parent pointer, and returns the removed child.
// Returns nil if child is not found.
func (e *Element) RemoveChild(child *Element) *Element {
	for i, c := range e.Children {
		if c == child {
			e.Children = append(e.Children[:i], e.Children[i+1:]...)
			child.parent = nil
			return child
		}
	}
	return nil
}

// AttachShadow gives e a shadow root and returns it. Children added to the
// root form the shadow tree; calling it twice returns the same root.
func (e *Element) AttachShadow() *Element {
	if e.shadow != nil {
		return e.shadow
	}
	e.shadow = &Element{
		TagName:  shadowRootName,
		Style:    css.NewStyle(),
		Children: make([]*Element, 0),
		host:     e,
		doc:      e.doc,
	}
	return e.shadow
}

// ShadowRoot returns the attached shadow root, or nil.
func (e *Element) ShadowRoot() *Element {
	return e.shadow
}

// AssignSlot renders e inside slot, which lives in its host's shadow tree.
func (e *Element) AssignSlot(slot *Element) {
	e.slot = slot
}

func (e *Element) setDocument(doc *Document) {
	e.doc = doc
	if e.shadow != nil {
		e.shadow.setDocument(doc)
	}
	for _, child := range e.Children {
		child.setDocument(doc)
	}
}

// Walk visits e and its descendants depth first, descending into shadow
// trees before light children. Returning false stops the walk.
func (e *Element) Walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	if e.shadow != nil && !e.shadow.Walk(fn) {
		return false
	}
	for _, child := range e.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// ContainsElement returns true if other is a descendant of e (or e itself),
// including through shadow trees.
func (e *Element) ContainsElement(other *Element) bool {
	return !e.Walk(func(n *Element) bool { return n != other })
}

func (e *Element) BoundingClientRect() geom.ClientRect { return e.Rect.ClientRect() }

func (e *Element) NodeName() string { return e.TagName }

func (e *Element) Parent() Node {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

func (e *Element) IsShadowRoot() bool { return e.host != nil }

func (e *Element) Host() Node {
	if e.host == nil {
		return nil
	}
	return e.host
}

func (e *Element) AssignedSlot() Node {
	if e.slot == nil {
		return nil
	}
	return e.slot
}

func (e *Element) ComputedStyle() *css.Style { return e.Style }

func (e *Element) Scroll() geom.Coordinates { return e.ScrollOffset }

func (e *Element) ClientBox() geom.Rect { return e.Client }

func (e *Element) OffsetSize() geom.Dimensions { return e.Offset }

func (e *Element) ScrollSize() geom.Dimensions { return e.ScrollExtent }

func (e *Element) OwnerDocument() *Document { return e.doc }
