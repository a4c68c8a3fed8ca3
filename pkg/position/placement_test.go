package position

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"floatpos/pkg/geom"
)

func TestCoordsFromPlacement_Sides(t *testing.T) {
	rects := rectsOf(geom.NewRect(100, 100, 50, 20), 30, 10)
	tests := []struct {
		placement geom.Placement
		want      geom.Coordinates
	}{
		{geom.Top, geom.Coordinates{X: 110, Y: 90}},
		{geom.Bottom, geom.Coordinates{X: 110, Y: 120}},
		{geom.Left, geom.Coordinates{X: 70, Y: 105}},
		{geom.Right, geom.Coordinates{X: 150, Y: 105}},
		{geom.TopStart, geom.Coordinates{X: 100, Y: 90}},
		{geom.TopEnd, geom.Coordinates{X: 120, Y: 90}},
		{geom.BottomStart, geom.Coordinates{X: 100, Y: 120}},
		{geom.RightStart, geom.Coordinates{X: 150, Y: 100}},
		{geom.RightEnd, geom.Coordinates{X: 150, Y: 110}},
		{geom.LeftEnd, geom.Coordinates{X: 70, Y: 110}},
	}
	for _, tt := range tests {
		t.Run(string(tt.placement), func(t *testing.T) {
			got := CoordsFromPlacement(rects, tt.placement, geom.OffsetSpec{}, false)
			requireApprox(t, tt.want, got)
		})
	}
}

func TestCoordsFromPlacement_RTLFlipsHorizontalAlignmentOnly(t *testing.T) {
	rects := rectsOf(geom.NewRect(100, 100, 50, 20), 30, 10)

	ltr := CoordsFromPlacement(rects, geom.TopStart, geom.OffsetSpec{}, false)
	rtl := CoordsFromPlacement(rects, geom.TopStart, geom.OffsetSpec{}, true)
	assert.Equal(t, 100.0, ltr.X)
	assert.Equal(t, 120.0, rtl.X)
	assert.Equal(t, ltr.Y, rtl.Y)

	// Vertical alignment on left/right placements is unaffected by direction.
	assert.Equal(t,
		CoordsFromPlacement(rects, geom.RightStart, geom.OffsetSpec{}, false),
		CoordsFromPlacement(rects, geom.RightStart, geom.OffsetSpec{}, true))
}

func TestCoordsFromPlacement_MainAxisOffsetMovesAway(t *testing.T) {
	rects := rectsOf(geom.NewRect(300, 200, 80, 40), 120, 30)
	const delta = 7.5
	for _, p := range geom.AllPlacements {
		for _, rtl := range []bool{false, true} {
			base := CoordsFromPlacement(rects, p, geom.Offset(4), rtl)
			moved := CoordsFromPlacement(rects, p, geom.Offset(4+delta), rtl)
			dx, dy := moved.X-base.X, moved.Y-base.Y
			switch p.Side() {
			case geom.SideTop:
				assert.Equal(t, -delta, dy, p)
				assert.Zero(t, dx, p)
			case geom.SideBottom:
				assert.Equal(t, delta, dy, p)
				assert.Zero(t, dx, p)
			case geom.SideLeft:
				assert.Equal(t, -delta, dx, p)
				assert.Zero(t, dy, p)
			case geom.SideRight:
				assert.Equal(t, delta, dx, p)
				assert.Zero(t, dy, p)
			}
		}
	}
}

func TestCoordsFromPlacement_CrossAxisOffset(t *testing.T) {
	rects := rectsOf(geom.NewRect(100, 100, 50, 20), 30, 10)
	off := geom.OffsetSpec{CrossAxis: 5}

	start := CoordsFromPlacement(rects, geom.BottomStart, off, false)
	assert.Equal(t, 105.0, start.X)

	end := CoordsFromPlacement(rects, geom.BottomEnd, off, false)
	assert.Equal(t, 115.0, end.X)

	rtlStart := CoordsFromPlacement(rects, geom.BottomStart, off, true)
	assert.Equal(t, 115.0, rtlStart.X)

	right := CoordsFromPlacement(rects, geom.Right, off, true)
	assert.Equal(t, 110.0, right.Y)
}

func TestCoordsFromPlacement_ZeroSizeStaysFinite(t *testing.T) {
	rects := rectsOf(geom.Rect{}, 0, 0)
	for _, p := range geom.AllPlacements {
		c := CoordsFromPlacement(rects, p, geom.OffsetSpec{MainAxis: 3, CrossAxis: 2}, true)
		assert.False(t, math.IsNaN(c.X) || math.IsInf(c.X, 0), p)
		assert.False(t, math.IsNaN(c.Y) || math.IsInf(c.Y, 0), p)
	}
}

func TestAlignmentSides(t *testing.T) {
	small := rectsOf(geom.NewRect(0, 0, 20, 20), 100, 100)
	large := rectsOf(geom.NewRect(0, 0, 300, 300), 100, 100)

	tests := []struct {
		name      string
		rects     geom.ElementRects
		placement geom.Placement
		rtl       bool
		main      geom.Side
		cross     geom.Side
	}{
		{"bottom-start small anchor", small, geom.BottomStart, false, geom.SideRight, geom.SideLeft},
		{"bottom-end small anchor", small, geom.BottomEnd, false, geom.SideLeft, geom.SideRight},
		{"bottom-start large anchor", large, geom.BottomStart, false, geom.SideLeft, geom.SideRight},
		{"bottom-start rtl", small, geom.BottomStart, true, geom.SideLeft, geom.SideRight},
		{"top-end rtl", small, geom.TopEnd, true, geom.SideRight, geom.SideLeft},
		{"right-start small anchor", small, geom.RightStart, false, geom.SideBottom, geom.SideTop},
		{"left-end small anchor", small, geom.LeftEnd, false, geom.SideTop, geom.SideBottom},
		{"left-end large anchor", large, geom.LeftEnd, false, geom.SideBottom, geom.SideTop},
		{"bare top", small, geom.Top, false, geom.SideLeft, geom.SideRight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			main, cross := alignmentSides(tt.placement, tt.rects, tt.rtl)
			assert.Equal(t, tt.main, main)
			assert.Equal(t, tt.cross, cross)
		})
	}
}
