package position

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"floatpos/pkg/dom"
	"floatpos/pkg/geom"
)

const tolerance = 1e-9

var approx = cmpopts.EquateApprox(0, tolerance)

// newViewport returns a 1000x800 document with nothing scrolled.
func newViewport() *dom.Document {
	return dom.NewDocument(&dom.Window{InnerWidth: 1000, InnerHeight: 800})
}

// addPopup appends an absolutely positioned popup of the given layout size.
func addPopup(parent *dom.Element, w, h float64) *dom.Element {
	return parent.AddChild(dom.NewElement("div", geom.NewRect(0, 0, w, h)).WithStyle("position: absolute").WithID("popup"))
}

func rectsOf(anchor geom.Rect, w, h float64) geom.ElementRects {
	return geom.ElementRects{Anchor: anchor, Popup: geom.NewRect(0, 0, w, h)}
}

func requireApprox(t *testing.T, want, got any) {
	t.Helper()
	if diff := cmp.Diff(want, got, approx); diff != "" {
		require.Failf(t, "values differ", "(-want +got):\n%s", diff)
	}
}
