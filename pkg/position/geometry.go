package position

import (
	"math"

	"floatpos/pkg/css"
	"floatpos/pkg/dom"
	"floatpos/pkg/geom"
)

// Offset parents are either elements or the window. The window is spelled
// as a nil dom.Node throughout this file.

// RootBoundary is the outermost clipping rectangle.
type RootBoundary string

const (
	RootViewport RootBoundary = "viewport"
	RootDocument RootBoundary = "document"
)

// scaleTolerance absorbs float noise when comparing a bounding rect with
// the untransformed offset size.
const scaleTolerance = 1e-6

// visualViewportTolerance guards against browsers rounding innerWidth.
const visualViewportTolerance = 0.01

func documentOf(m dom.Measurer) *dom.Document {
	switch v := m.(type) {
	case dom.Node:
		return v.OwnerDocument()
	case dom.ContextMeasurer:
		if ctx := v.ContextElement(); !isNil(ctx) {
			return ctx.OwnerDocument()
		}
	}
	return nil
}

func windowOf(doc *dom.Document) *dom.Window {
	if doc == nil {
		return nil
	}
	return doc.Window
}

func documentElementOf(doc *dom.Document) dom.Node {
	if doc == nil {
		return nil
	}
	return doc.DocumentElement()
}

// isNil reports whether m is nil, including a nil element pointer stored
// in the interface.
func isNil(m dom.Measurer) bool {
	switch v := m.(type) {
	case nil:
		return true
	case *dom.Element:
		return v == nil
	case *dom.VirtualElement:
		return v == nil
	}
	return false
}

func asNode(m dom.Measurer) (dom.Node, bool) {
	if isNil(m) || !dom.IsElement(m) {
		return nil, false
	}
	return m.(dom.Node), true
}

// parentNode steps one level up the composed tree: assigned slot, parent,
// shadow host, then the document element. <html> is its own parent.
func parentNode(n dom.Node) dom.Node {
	if n.NodeName() == "html" {
		return n
	}
	if slot := n.AssignedSlot(); slot != nil {
		return slot
	}
	if p := n.Parent(); p != nil {
		return p
	}
	if n.IsShadowRoot() {
		if host := n.Host(); host != nil {
			return host
		}
	}
	return documentElementOf(n.OwnerDocument())
}

func isRootName(name string) bool {
	return name == "html" || name == "body"
}

func isOverflowElement(n dom.Node) bool {
	return n != nil && !n.IsShadowRoot() && n.ComputedStyle().IsOverflowContainer()
}

func isTableElement(n dom.Node) bool {
	switch n.NodeName() {
	case "table", "td", "th":
		return true
	}
	return false
}

// overflowAncestors lists every overflow container from start up to and
// including <body> (body only when it clips itself).
func overflowAncestors(start dom.Node) []dom.Node {
	var list []dom.Node
	for n := start; n != nil; n = parentNode(n) {
		if isRootName(n.NodeName()) {
			if doc := n.OwnerDocument(); doc != nil && isOverflowElement(doc.Body()) {
				list = append(list, doc.Body())
			}
			break
		}
		if isOverflowElement(n) {
			list = append(list, n)
		}
	}
	return list
}

// clippingAncestors returns the overflow containers that can clip popup.
// An absolute or fixed popup is only clipped by containers that also hold
// its offset parent.
func clippingAncestors(popup dom.Node) []dom.Node {
	start := parentNode(popup)
	if start == nil || start == popup {
		return nil
	}
	clipper := popup
	if popup.ComputedStyle().IsOutOfFlow() {
		clipper = offsetParent(popup)
		if clipper == nil {
			return nil
		}
	}
	var result []dom.Node
	for _, a := range overflowAncestors(start) {
		if a.NodeName() != "body" && dom.Contains(a, clipper) {
			result = append(result, a)
		}
	}
	return result
}

// layoutOffsetParent mirrors HTMLElement.offsetParent: the nearest
// positioned ancestor, a table cell or table, or <body>.
func layoutOffsetParent(n dom.Node) dom.Node {
	if n.ComputedStyle().GetPosition() == css.PositionFixed {
		return nil
	}
	for p := parentNode(n); p != nil; p = parentNode(p) {
		switch p.NodeName() {
		case "html":
			return nil
		case "body":
			return p
		}
		if p.IsShadowRoot() {
			continue
		}
		if p.ComputedStyle().GetPosition() != css.PositionStatic || isTableElement(p) {
			return p
		}
	}
	return nil
}

// containingBlock finds the nearest ancestor that traps fixed and absolute
// descendants through a transform-like property.
func containingBlock(n dom.Node) dom.Node {
	for p := parentNode(n); p != nil && !isRootName(p.NodeName()); p = parentNode(p) {
		if p.IsShadowRoot() {
			continue
		}
		if p.ComputedStyle().IsContainingBlock() {
			return p
		}
	}
	return nil
}

// offsetParent resolves the coordinate origin for the absolute strategy.
// A nil result is the window.
func offsetParent(n dom.Node) dom.Node {
	if n == nil {
		return nil
	}
	op := layoutOffsetParent(n)
	for op != nil && isTableElement(op) && op.ComputedStyle().GetPosition() == css.PositionStatic {
		op = layoutOffsetParent(op)
	}
	if op != nil {
		style := op.ComputedStyle()
		switch op.NodeName() {
		case "html":
			return nil
		case "body":
			if style.GetPosition() == css.PositionStatic && !style.IsContainingBlock() {
				return nil
			}
		}
		return op
	}
	return containingBlock(n)
}

// scaleOf is the ratio between an element's rendered and layout size.
// Zero sizes read as unscaled.
func scaleOf(n dom.Node) geom.Coordinates {
	rect := n.BoundingClientRect()
	size := n.OffsetSize()
	scale := geom.Coordinates{X: 1, Y: 1}
	if size.Width > 0 && rect.Width > 0 {
		scale.X = rect.Width / size.Width
	}
	if size.Height > 0 && rect.Height > 0 {
		scale.Y = rect.Height / size.Height
	}
	return scale
}

func isScaled(n dom.Node) bool {
	s := scaleOf(n)
	return math.Abs(s.X-1) > scaleTolerance || math.Abs(s.Y-1) > scaleTolerance
}

// boundingClientRect measures m, optionally dividing out the scale of
// scaleBy, and adds the visual viewport offset for fixed measurements on
// engines that report visual-viewport-relative rects.
func boundingClientRect(m dom.Measurer, scaleBy dom.Node, fixed bool) geom.ClientRect {
	r := m.BoundingClientRect()
	scale := geom.Coordinates{X: 1, Y: 1}
	if scaleBy != nil {
		scale = scaleOf(scaleBy)
	}
	var dx, dy float64
	if win := windowOf(documentOf(m)); fixed && win != nil && win.VisualFixedRects && win.VisualViewport != nil {
		dx, dy = win.VisualViewport.OffsetLeft, win.VisualViewport.OffsetTop
	}
	return geom.NewRect(
		(r.Left+dx)/scale.X,
		(r.Top+dy)/scale.Y,
		r.Width/scale.X,
		r.Height/scale.Y,
	).ClientRect()
}

// nodeScroll returns the scroll offset of an element. The window and the
// document element both report the window's page offset.
func nodeScroll(n dom.Node, doc *dom.Document) geom.Coordinates {
	if n == nil || n.NodeName() == "html" {
		if win := windowOf(doc); win != nil {
			return geom.Coordinates{X: win.PageXOffset, Y: win.PageYOffset}
		}
		return geom.Coordinates{}
	}
	return n.Scroll()
}

// windowScrollBarX is the width of a scrollbar gutter on the left edge of
// the page, non-zero only in RTL layouts.
func windowScrollBarX(doc *dom.Document) float64 {
	html := documentElementOf(doc)
	if html == nil {
		return 0
	}
	return boundingClientRect(html, nil, false).Left + nodeScroll(html, doc).X
}

func documentDirection(doc *dom.Document) css.Direction {
	if dir, ok := doc.Body().ComputedStyle().Get("direction"); ok {
		return css.Direction(dir)
	}
	return doc.DocumentElement().ComputedStyle().GetDirection()
}

// DocumentRect is the full scrollable extent of the page, positioned in
// viewport coordinates.
func DocumentRect(doc *dom.Document) geom.Rect {
	if doc == nil {
		return geom.Rect{}
	}
	html, body := doc.DocumentElement(), doc.Body()
	scroll := nodeScroll(html, doc)
	width := max(html.ScrollSize().Width, html.ClientBox().Width, body.ScrollSize().Width, body.ClientBox().Width)
	height := max(html.ScrollSize().Height, html.ClientBox().Height, body.ScrollSize().Height, body.ClientBox().Height)
	x := -scroll.X + windowScrollBarX(doc)
	y := -scroll.Y
	if documentDirection(doc) == css.DirectionRTL {
		x += max(html.ClientBox().Width, body.ClientBox().Width) - width
	}
	return geom.NewRect(x, y, width, height)
}

// ViewportRect is the visible region: the visual viewport where one exists,
// else the document element's client box.
func ViewportRect(doc *dom.Document) geom.Rect {
	if doc == nil {
		return geom.Rect{}
	}
	client := doc.DocumentElement().ClientBox()
	rect := geom.NewRect(0, 0, client.Width, client.Height)
	win := doc.Window
	if win == nil || win.VisualViewport == nil {
		return rect
	}
	vv := win.VisualViewport
	rect.Width, rect.Height = vv.Width, vv.Height
	scale := vv.Scale
	if scale == 0 {
		scale = 1
	}
	if math.Abs(win.InnerWidth/scale-vv.Width) < visualViewportTolerance {
		rect.X, rect.Y = vv.OffsetLeft, vv.OffsetTop
	}
	return rect
}

// innerClientRect is the padding box of an element in viewport
// coordinates: the area its scrolling content is clipped to.
func innerClientRect(n dom.Node) geom.ClientRect {
	rect := boundingClientRect(n, nil, false)
	client := n.ClientBox()
	scale := scaleOf(n)
	return geom.NewRect(
		rect.Left+client.X*scale.X,
		rect.Top+client.Y*scale.Y,
		client.Width*scale.X,
		client.Height*scale.Y,
	).ClientRect()
}

func rootBoundaryRect(doc *dom.Document, root RootBoundary) geom.ClientRect {
	if root == RootDocument {
		return DocumentRect(doc).ClientRect()
	}
	return ViewportRect(doc).ClientRect()
}

// ClippingRect intersects the root boundary with the client area of every
// clipping ancestor of popup. ok is false when popup is not attached to a
// document.
func ClippingRect(popup dom.Node, root RootBoundary) (rect geom.Rect, ok bool) {
	if isNil(popup) || popup.OwnerDocument() == nil {
		return geom.Rect{}, false
	}
	acc := rootBoundaryRect(popup.OwnerDocument(), root)
	for _, a := range clippingAncestors(popup) {
		acc = acc.Intersect(innerClientRect(a))
	}
	return acc.Rect, true
}

// rectRelativeToOffsetParent expresses the bounding rect of m in the
// coordinate space of op (nil meaning the window) for strategy.
func rectRelativeToOffsetParent(m dom.Measurer, op dom.Node, doc *dom.Document, strategy geom.Strategy) geom.Rect {
	if m == nil {
		return geom.Rect{}
	}
	var scaleBy dom.Node
	if op != nil && isScaled(op) {
		scaleBy = op
	}
	rect := boundingClientRect(m, scaleBy, strategy == geom.StrategyFixed)

	var scroll, offsets geom.Coordinates
	if op != nil || strategy != geom.StrategyFixed {
		if op == nil || op.NodeName() != "body" || isOverflowElement(documentElementOf(doc)) {
			scroll = nodeScroll(op, doc)
		}
		if op != nil {
			opRect := boundingClientRect(op, scaleBy, false)
			client := op.ClientBox()
			offsets = geom.Coordinates{X: opRect.X + client.X, Y: opRect.Y + client.Y}
		} else {
			offsets.X = windowScrollBarX(doc)
		}
	}
	return geom.NewRect(
		rect.Left+scroll.X-offsets.X,
		rect.Top+scroll.Y-offsets.Y,
		rect.Width,
		rect.Height,
	)
}

// OffsetParentRectToViewport is the inverse of measuring relative to the
// offset parent: it maps a rect in op's coordinate space back to viewport
// coordinates. A rect relative to the document element is returned as is.
func OffsetParentRectToViewport(rect geom.Rect, op dom.Node, doc *dom.Document, strategy geom.Strategy) geom.Rect {
	if op != nil && op == documentElementOf(doc) {
		return rect
	}
	scale := geom.Coordinates{X: 1, Y: 1}
	var scroll, offsets geom.Coordinates
	if op != nil || strategy != geom.StrategyFixed {
		if op == nil || op.NodeName() != "body" || isOverflowElement(documentElementOf(doc)) {
			scroll = nodeScroll(op, doc)
		}
		if op != nil {
			opRect := boundingClientRect(op, nil, false)
			client := op.ClientBox()
			scale = scaleOf(op)
			offsets = geom.Coordinates{
				X: opRect.X + client.X*scale.X,
				Y: opRect.Y + client.Y*scale.Y,
			}
		} else {
			offsets.X = windowScrollBarX(doc)
		}
	}
	return geom.NewRect(
		rect.X*scale.X-scroll.X*scale.X+offsets.X,
		rect.Y*scale.Y-scroll.Y*scale.Y+offsets.Y,
		rect.Width*scale.X,
		rect.Height*scale.Y,
	)
}

// popupDimensions uses the layout size of real elements, so transforms on
// the popup itself do not feed back into its placement.
func popupDimensions(m dom.Measurer) geom.Dimensions {
	if n, ok := asNode(m); ok {
		return n.OffsetSize()
	}
	if m == nil {
		return geom.Dimensions{}
	}
	return m.BoundingClientRect().Dimensions()
}

// measureElementRects takes the single snapshot of anchor and popup a
// computation works from.
func measureElementRects(anchor dom.Measurer, popup dom.Node, strategy geom.Strategy) (geom.ElementRects, dom.Node, *dom.Document) {
	var op dom.Node
	doc := documentOf(anchor)
	if popup != nil {
		op = offsetParent(popup)
		if d := popup.OwnerDocument(); d != nil {
			doc = d
		}
	}
	dims := popupDimensions(popup)
	return geom.ElementRects{
		Anchor: rectRelativeToOffsetParent(anchor, op, doc, strategy),
		Popup:  geom.NewRect(0, 0, dims.Width, dims.Height),
	}, op, doc
}
