// Package render draws a positioning result as a picture: the document's
// boxes, the clipping rectangle, the anchor and the placed popup.
package render

import (
	"fmt"
	"image"
	"io"

	"github.com/fogleman/gg"

	"floatpos/pkg/css"
	"floatpos/pkg/dom"
	"floatpos/pkg/geom"
	"floatpos/pkg/position"
)

type Renderer struct {
	context *gg.Context
	// Labels draws the anchor and placement names next to their boxes.
	Labels bool
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{context: gg.NewContext(width, height)}
}

// Render paints one frame. Element rects are viewport coordinates, which
// map one to one onto canvas pixels. popup is skipped during the document
// pass and drawn at ex.PopupRect instead.
func (r *Renderer) Render(doc *dom.Document, anchor dom.Measurer, popup *dom.Element, ex position.Explanation) {
	r.context.SetRGB(1, 1, 1)
	r.context.Clear()

	if doc != nil {
		r.drawDocument(doc, popup)
	}
	if ex.HasClipping {
		r.drawClippingRect(ex.ClippingRect)
	}
	if anchor != nil {
		r.drawAnchor(anchor.BoundingClientRect())
	}
	r.drawPopup(popup, ex)
}

func (r *Renderer) drawDocument(doc *dom.Document, popup *dom.Element) {
	doc.DocumentElement().Walk(func(el *dom.Element) bool {
		switch {
		case el == popup, el.IsShadowRoot():
			return true
		case el == doc.DocumentElement() || el == doc.Body():
			return true
		}
		r.drawBox(el)
		return true
	})
}

// drawBox fills an element with its background color and outlines it.
// Overflow containers get a dashed outline.
func (r *Renderer) drawBox(el *dom.Element) {
	rect := el.Rect
	if rect.Width <= 0 || rect.Height <= 0 {
		return
	}
	if c, ok := el.Style.GetBackgroundColor(); ok {
		r.setColor(c, 1)
		r.context.DrawRectangle(rect.X, rect.Y, rect.Width, rect.Height)
		r.context.Fill()
	}

	r.context.SetRGB(0.6, 0.6, 0.6)
	r.context.SetLineWidth(1)
	if el.Style.IsOverflowContainer() {
		r.context.SetDash(4, 3)
	}
	r.context.DrawRectangle(rect.X+0.5, rect.Y+0.5, rect.Width-1, rect.Height-1)
	r.context.Stroke()
	r.context.SetDash()
}

func (r *Renderer) drawClippingRect(rect geom.Rect) {
	if rect.Width <= 0 || rect.Height <= 0 {
		return
	}
	r.context.SetRGB(0.85, 0.1, 0.1)
	r.context.SetLineWidth(2)
	r.context.SetDash(8, 4)
	r.context.DrawRectangle(rect.X+1, rect.Y+1, rect.Width-2, rect.Height-2)
	r.context.Stroke()
	r.context.SetDash()
}

func (r *Renderer) drawAnchor(rect geom.ClientRect) {
	r.context.SetRGBA(0.2, 0.4, 0.9, 0.35)
	r.context.DrawRectangle(rect.X, rect.Y, rect.Width, rect.Height)
	r.context.Fill()

	r.context.SetRGB(0.2, 0.4, 0.9)
	r.context.SetLineWidth(2)
	r.context.DrawRectangle(rect.X, rect.Y, rect.Width, rect.Height)
	r.context.Stroke()

	if r.Labels {
		r.context.DrawStringAnchored("anchor", rect.X, rect.Y-3, 0, 0)
	}
}

// drawPopup fills the popup box with its own background color, or orange
// when it has none. The outline turns red if the popup still overflows its
// clipping rect.
func (r *Renderer) drawPopup(popup *dom.Element, ex position.Explanation) {
	rect := ex.PopupRect
	if rect.Width <= 0 || rect.Height <= 0 {
		return
	}

	fill := css.Color{R: 255, G: 165, B: 0}
	if popup != nil && popup.Style != nil {
		if c, ok := popup.Style.GetBackgroundColor(); ok {
			fill = c
		}
	}
	r.setColor(fill, 1)
	r.context.DrawRectangle(rect.X, rect.Y, rect.Width, rect.Height)
	r.context.Fill()

	if ex.HasClipping && !ex.Overflow.Fits() {
		r.context.SetRGB(0.85, 0.1, 0.1)
	} else {
		r.context.SetRGB(0.2, 0.2, 0.2)
	}
	r.context.SetLineWidth(2)
	r.context.DrawRectangle(rect.X, rect.Y, rect.Width, rect.Height)
	r.context.Stroke()

	if r.Labels {
		label := string(ex.Result.Placement)
		if ex.Requested != "" && ex.Requested != ex.Result.Placement {
			label = fmt.Sprintf("%s (requested %s)", ex.Result.Placement, ex.Requested)
		}
		r.context.SetRGB(0.2, 0.2, 0.2)
		r.context.DrawStringAnchored(label, rect.X, rect.Y+rect.Height+3, 0, 1)
	}
}

func (r *Renderer) setColor(c css.Color, alpha float64) {
	r.context.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, alpha)
}

// Image returns the canvas.
func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

func (r *Renderer) SavePNG(filename string) error {
	return r.context.SavePNG(filename)
}

func (r *Renderer) EncodePNG(w io.Writer) error {
	return r.context.EncodePNG(w)
}
