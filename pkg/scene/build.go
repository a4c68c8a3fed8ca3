package scene

import (
	"fmt"

	"floatpos/pkg/config"
	"floatpos/pkg/css"
	"floatpos/pkg/dom"
	"floatpos/pkg/geom"
	"floatpos/pkg/position"
)

// Built is a scene turned into live objects, ready for ComputePosition.
type Built struct {
	Document *dom.Document
	Anchor   dom.Measurer
	Popup    *dom.Element
	Config   position.Config
}

// Build constructs the document and request. Fields the scene leaves empty
// take their values from defaults.
func (s *Scene) Build(defaults config.ComputeConfig) (*Built, error) {
	doc, err := s.buildDocument()
	if err != nil {
		return nil, err
	}
	cfg, err := s.Compute.config(defaults)
	if err != nil {
		return nil, err
	}

	popup, err := lookup(doc, "compute.popup", s.Compute.Popup)
	if err != nil {
		return nil, err
	}

	var anchor dom.Measurer
	switch {
	case len(s.Compute.VirtualAnchor) > 0:
		r, err := rectOf("compute.virtualAnchor", s.Compute.VirtualAnchor)
		if err != nil {
			return nil, err
		}
		anchor = &dom.VirtualElement{Rect: r, Context: popup}
	default:
		el, err := lookup(doc, "compute.anchor", s.Compute.Anchor)
		if err != nil {
			return nil, err
		}
		anchor = el
	}

	return &Built{Document: doc, Anchor: anchor, Popup: popup, Config: cfg}, nil
}

func lookup(doc *dom.Document, field, id string) (*dom.Element, error) {
	if id != "" {
		if el := doc.GetElementByID(id); el != nil {
			return el, nil
		}
	}
	return nil, fmt.Errorf("%s: %w %q", field, ErrUnknownElement, id)
}

func (c ComputeSpec) config(defaults config.ComputeConfig) (position.Config, error) {
	placement := c.Placement
	if placement == "" {
		placement = defaults.Placement
	}
	p, err := geom.ParsePlacement(placement)
	if err != nil {
		return position.Config{}, fmt.Errorf("compute.placement: %w", err)
	}

	strategy := c.Strategy
	if strategy == "" {
		strategy = defaults.Strategy
	}
	st, err := geom.ParseStrategy(strategy)
	if err != nil {
		return position.Config{}, fmt.Errorf("compute.strategy: %w", err)
	}

	orderName := c.MiddlewareOrder
	if orderName == "" {
		orderName = defaults.MiddlewareOrder
	}
	order, err := position.ParseMiddlewareOrder(orderName)
	if err != nil {
		return position.Config{}, fmt.Errorf("compute.middlewareOrder: %w", err)
	}

	auto := c.AutoPlacement
	if !auto.Enabled && defaults.AutoPlacement {
		auto.Enabled = true
	}

	return position.Config{
		Placement: p,
		Strategy:  st,
		RTL:       c.RTL,
		AutoPlacement: position.AutoPlacement{
			Enabled:      auto.Enabled,
			ExcludeSides: auto.ExcludeSides,
			Padding:      auto.Padding,
		},
		Offset:          c.Offset.OffsetSpec,
		MiddlewareOrder: order,
	}, nil
}

func (s *Scene) buildDocument() (*dom.Document, error) {
	w := s.Window
	win := &dom.Window{
		InnerWidth:       w.Width,
		InnerHeight:      w.Height,
		PageXOffset:      w.ScrollX,
		PageYOffset:      w.ScrollY,
		VisualFixedRects: w.VisualFixedRects,
	}
	if vv := w.VisualViewport; vv != nil {
		win.VisualViewport = &dom.VisualViewport{
			Width:      vv.Width,
			Height:     vv.Height,
			Scale:      vv.Scale,
			OffsetLeft: vv.OffsetLeft,
			OffsetTop:  vv.OffsetTop,
		}
	}
	doc := dom.NewDocument(win)
	s.Document.apply(doc)

	ids := make(map[string]bool)
	slots := make(map[*dom.Element]string)
	for i, spec := range s.Elements {
		if err := addElement(doc.Body(), spec, fmt.Sprintf("elements[%d]", i), ids, slots); err != nil {
			return nil, err
		}
	}
	for el, id := range slots {
		slot, err := lookup(doc, "slot", id)
		if err != nil {
			return nil, err
		}
		el.AssignSlot(slot)
	}
	return doc, nil
}

// apply sizes <html> and <body>. A scrollbar takes width from the client
// area and, in right-to-left documents, sits on the left edge.
func (d DocumentSpec) apply(doc *dom.Document) {
	win := doc.Window
	width, height := d.Width, d.Height
	if width == 0 {
		width = win.InnerWidth
	}
	if height == 0 {
		height = win.InnerHeight
	}
	clientWidth := max(0, win.InnerWidth-d.ScrollbarWidth)
	left := -win.PageXOffset
	if d.Direction == "rtl" {
		left += d.ScrollbarWidth
	}

	html, body := doc.DocumentElement(), doc.Body()
	if d.HTMLStyle != "" {
		html.WithStyle(d.HTMLStyle)
	}
	if d.BodyStyle != "" {
		body.WithStyle(d.BodyStyle)
	}
	if d.Direction != "" {
		body.Style.Set("direction", d.Direction)
	}
	for _, el := range []*dom.Element{html, body} {
		el.Rect = geom.NewRect(left, -win.PageYOffset, clientWidth, height)
		el.Offset = el.Rect.Dimensions()
		el.Client = geom.NewRect(0, 0, clientWidth, win.InnerHeight)
		el.ScrollExtent = geom.Dimensions{Width: width, Height: height}
	}
}

// styleBoxes derives the layout size and client box from the rendered
// rect: a scale() transform divides the rect back to layout pixels and the
// border widths inset the client box.
func styleBoxes(style *css.Style, rect geom.Rect) (geom.Dimensions, geom.Rect) {
	sx, sy := style.GetScale()
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	offset := geom.Dimensions{Width: rect.Width / sx, Height: rect.Height / sy}
	top, _ := style.GetLength("border-top-width")
	right, _ := style.GetLength("border-right-width")
	bottom, _ := style.GetLength("border-bottom-width")
	left, _ := style.GetLength("border-left-width")
	client := geom.NewRect(left, top, max(0, offset.Width-left-right), max(0, offset.Height-top-bottom))
	return offset, client
}

func addElement(parent *dom.Element, spec ElementSpec, path string, ids map[string]bool, slots map[*dom.Element]string) error {
	rect, err := rectOf(path+".rect", spec.Rect)
	if err != nil {
		return err
	}
	tag := spec.Tag
	if tag == "" {
		tag = "div"
	}
	el := dom.NewElement(tag, rect).WithStyle(spec.Style).WithID(spec.ID)
	el.Offset, el.Client = styleBoxes(el.Style, rect)
	if spec.ID != "" {
		if ids[spec.ID] {
			return fmt.Errorf("%s: %w %q", path, ErrDuplicateID, spec.ID)
		}
		ids[spec.ID] = true
	}
	if spec.Offset != nil {
		d, err := dimensionsOf(path+".offset", spec.Offset)
		if err != nil {
			return err
		}
		el.Offset = d
	}
	if spec.Client != nil {
		c, err := rectOf(path+".client", spec.Client)
		if err != nil {
			return err
		}
		el.Client = c
	}
	if spec.Scroll != nil {
		if len(spec.Scroll) != 2 {
			return fmt.Errorf("%s.scroll: %w: want [left, top]", path, ErrBadBox)
		}
		el.ScrollOffset = geom.Coordinates{X: spec.Scroll[0], Y: spec.Scroll[1]}
	}
	el.ScrollExtent = el.Client.Dimensions()
	if spec.ScrollSize != nil {
		d, err := dimensionsOf(path+".scrollSize", spec.ScrollSize)
		if err != nil {
			return err
		}
		el.ScrollExtent = d
	}
	if spec.Slot != "" {
		slots[el] = spec.Slot
	}

	parent.AddChild(el)
	if len(spec.Shadow) > 0 {
		root := el.AttachShadow()
		for i, child := range spec.Shadow {
			if err := addElement(root, child, fmt.Sprintf("%s.shadow[%d]", path, i), ids, slots); err != nil {
				return err
			}
		}
	}
	for i, child := range spec.Children {
		if err := addElement(el, child, fmt.Sprintf("%s.children[%d]", path, i), ids, slots); err != nil {
			return err
		}
	}
	return nil
}

func rectOf(path string, v []float64) (geom.Rect, error) {
	if len(v) != 4 {
		return geom.Rect{}, fmt.Errorf("%s: %w: want [x, y, width, height], got %d values", path, ErrBadBox, len(v))
	}
	if v[2] < 0 || v[3] < 0 {
		return geom.Rect{}, fmt.Errorf("%s: %w: negative size", path, ErrBadBox)
	}
	return geom.NewRect(v[0], v[1], v[2], v[3]), nil
}

func dimensionsOf(path string, v []float64) (geom.Dimensions, error) {
	if len(v) != 2 || v[0] < 0 || v[1] < 0 {
		return geom.Dimensions{}, fmt.Errorf("%s: %w: want [width, height]", path, ErrBadBox)
	}
	return geom.Dimensions{Width: v[0], Height: v[1]}, nil
}
