package dom

import "floatpos/pkg/geom"

// VisualViewport is the pinch-zoomable viewport. Width and Height are in CSS
// pixels of the visible region; Scale is the pinch-zoom factor.
type VisualViewport struct {
	Width      float64
	Height     float64
	Scale      float64
	OffsetLeft float64
	OffsetTop  float64
}

// Window is the browsing context a document is shown in.
type Window struct {
	InnerWidth  float64
	InnerHeight float64
	PageXOffset float64
	PageYOffset float64
	// VisualViewport is nil on platforms without one.
	VisualViewport *VisualViewport
	// VisualFixedRects is set on engines whose client rects are relative to
	// the visual viewport, so fixed-strategy measurements need the visual
	// viewport offset added back.
	VisualFixedRects bool
}

// Document owns the <html> and <body> elements and the window.
type Document struct {
	Window *Window

	documentElement *Element
	body            *Element
}

// NewDocument creates <html> and <body> filling the window's layout
// viewport, scrolled by the window's page offsets.
func NewDocument(win *Window) *Document {
	if win == nil {
		win = &Window{}
	}
	doc := &Document{Window: win}
	rect := geom.NewRect(-win.PageXOffset, -win.PageYOffset, win.InnerWidth, win.InnerHeight)
	doc.documentElement = NewElement("html", rect)
	doc.documentElement.doc = doc
	doc.body = doc.documentElement.AddChild(NewElement("body", rect))
	return doc
}

// DocumentElement returns <html>.
func (d *Document) DocumentElement() *Element { return d.documentElement }

// Body returns <body>.
func (d *Document) Body() *Element { return d.body }

// GetElementByID walks the tree, shadow trees included, and returns the
// first element with a matching id.
func (d *Document) GetElementByID(id string) *Element {
	var found *Element
	d.documentElement.Walk(func(e *Element) bool {
		if e.ID == id {
			found = e
			return false
		}
		return true
	})
	return found
}

// VirtualElement is an anchor backed only by a rectangle.
type VirtualElement struct {
	Rect    geom.Rect
	Context Node
}

func (v *VirtualElement) BoundingClientRect() geom.ClientRect { return v.Rect.ClientRect() }

func (v *VirtualElement) ContextElement() Node { return v.Context }
