package render

import (
	"bytes"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"floatpos/pkg/dom"
	"floatpos/pkg/geom"
	"floatpos/pkg/position"
)

type frame struct {
	doc    *dom.Document
	anchor *dom.Element
	popup  *dom.Element
	ex     position.Explanation
}

func newFrame(t *testing.T) frame {
	t.Helper()
	doc := dom.NewDocument(&dom.Window{InnerWidth: 200, InnerHeight: 150})
	doc.Body().AddChild(dom.NewElement("div", geom.NewRect(120, 20, 40, 40)).WithStyle("background-color: silver"))
	anchor := doc.Body().AddChild(dom.NewElement("button", geom.NewRect(50, 50, 40, 20)))
	popup := doc.Body().AddChild(dom.NewElement("div", geom.NewRect(0, 0, 30, 10)).WithStyle("position: absolute; background-color: green"))

	ex, err := position.Explain(anchor, popup, position.Config{})
	if err != nil {
		t.Fatal(err)
	}
	return frame{doc: doc, anchor: anchor, popup: popup, ex: ex}
}

func rgba(r *Renderer, x, y int) color.RGBA {
	return color.RGBAModel.Convert(r.Image().At(x, y)).(color.RGBA)
}

func TestRenderPopupAtComputedPosition(t *testing.T) {
	f := newFrame(t)
	if f.ex.PopupRect != geom.NewRect(55, 70, 30, 10) {
		t.Fatalf("popup rect = %+v", f.ex.PopupRect)
	}

	r := NewRenderer(200, 150)
	r.Render(f.doc, f.anchor, f.popup, f.ex)

	if got := rgba(r, 70, 75); got != (color.RGBA{0, 128, 0, 255}) {
		t.Errorf("popup center = %v, want green", got)
	}
	// The popup element's own rect sits at the origin and is not painted.
	if got := rgba(r, 15, 5); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("stale popup rect painted: %v", got)
	}
}

func TestRenderDocumentBoxes(t *testing.T) {
	f := newFrame(t)
	r := NewRenderer(200, 150)
	r.Render(f.doc, f.anchor, f.popup, f.ex)

	if got := rgba(r, 140, 40); got != (color.RGBA{192, 192, 192, 255}) {
		t.Errorf("background box = %v, want silver", got)
	}

	anchor := rgba(r, 70, 60)
	if anchor.B <= anchor.R || anchor.R > 200 {
		t.Errorf("anchor fill = %v, want a translucent blue", anchor)
	}
}

func TestRenderWithoutPopup(t *testing.T) {
	f := newFrame(t)
	r := NewRenderer(200, 150)
	r.Labels = true
	r.Render(f.doc, f.anchor, nil, position.Explanation{})

	if got := rgba(r, 190, 140); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("background = %v, want white", got)
	}
}

func TestSaveAndEncodePNG(t *testing.T) {
	f := newFrame(t)
	r := NewRenderer(200, 150)
	r.Labels = true
	r.Render(f.doc, f.anchor, f.popup, f.ex)

	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 150 {
		t.Errorf("bounds = %v", b)
	}

	if err := r.SavePNG(filepath.Join(t.TempDir(), "frame.png")); err != nil {
		t.Fatal(err)
	}
}
